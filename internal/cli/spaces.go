package cli

import (
	"wikispace/internal/model"

	"github.com/spf13/cobra"
)

func newSpacesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spaces",
		Short: "Space commands",
	}
	cmd.AddCommand(newSpacesListCmd(app))
	cmd.AddCommand(newSpacesShowCmd(app))
	return cmd
}

func newSpacesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List spaces (seed order)",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": st.Spaces()})
		},
	}
}

func newSpacesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <space-id>",
		Short: "Show a space with its root pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			sp, ok := st.GetSpace(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("space", args[0]))
			}
			roots := st.RootPages(sp.ID)
			if roots == nil {
				roots = []model.Page{}
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"space":     sp,
					"pageCount": len(st.GetPagesForSpace(sp.ID)),
					"rootPages": roots,
				},
			})
		},
	}
}
