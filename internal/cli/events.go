package cli

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var limit int
	var opsFile string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List in-memory activity (newest first); use --apply to replay an ops file first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := loadStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if opsFile != "" {
				ops, err := loadOps(opsFile)
				if err != nil {
					return writeErr(cmd, err)
				}
				if _, err := applyOps(st, ops); err != nil {
					return writeErr(cmd, err)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": st.RecentEvents(limit)})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 200, "Max events to return (0 = all)")
	cmd.Flags().StringVar(&opsFile, "apply", "", "Ops file to apply before listing")
	return cmd
}
