package cli

import (
	"strings"

	"wikispace/internal/content"

	"github.com/spf13/cobra"
)

type searchHit struct {
	ID      string `json:"id"`
	SpaceID string `json:"spaceId"`
	Title   string `json:"title"`
	Emoji   string `json:"emoji"`
	Excerpt string `json:"excerpt"`
}

func newSearchCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Case-insensitive substring search over page titles and content",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			query := strings.Join(args, " ")
			hits := []searchHit{}
			for _, p := range st.SearchPages(query) {
				if limit > 0 && len(hits) == limit {
					break
				}
				hits = append(hits, searchHit{
					ID:      p.ID,
					SpaceID: p.SpaceID,
					Title:   p.Title,
					Emoji:   p.Emoji,
					Excerpt: content.Excerpt(p.Content, 80),
				})
			}
			return writeOut(cmd, app, map[string]any{
				"data": hits,
				"meta": map[string]any{"query": query, "count": len(hits)},
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max results (0 = all)")
	return cmd
}
