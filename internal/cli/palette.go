package cli

import (
	"strings"

	"wikispace/internal/palette"

	"github.com/spf13/cobra"
)

func newPaletteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "palette [query]",
		Short: "Show what the command palette offers for a query",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			entries := palette.Results(st, strings.Join(args, " "))
			if entries == nil {
				entries = []palette.Entry{}
			}
			return writeOut(cmd, app, map[string]any{"data": entries})
		},
	}
}
