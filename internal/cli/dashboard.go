package cli

import (
	"time"

	"wikispace/internal/dashboard"

	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Workspace summary: totals, recent pages, favourites, per-space counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": dashboard.Summarize(st, time.Now())})
		},
	}
}
