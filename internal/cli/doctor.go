package cli

import (
	"os"
	"path/filepath"

	"wikispace/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the seed data for ids, parents and spaces that won't display as intended",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.loadConfig()
			source := firstNonEmpty(app.Seed, app.cfg.Seed)

			sd := store.DefaultSeed()
			if source != "" {
				b, err := os.ReadFile(source)
				if err != nil {
					return writeErr(cmd, err)
				}
				// Decode without validating: the point is to list every problem.
				if sd, err = store.DecodeSeed(b, filepath.Ext(source)); err != nil {
					return writeErr(cmd, err)
				}
			} else {
				source = "built-in"
			}

			report := store.DoctorSeed(sd)
			if err := writeOut(cmd, app, map[string]any{
				"data": report,
				"meta": map[string]any{
					"source":    source,
					"issues":    len(report.Issues),
					"hasErrors": report.HasErrors(),
				},
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	return cmd
}
