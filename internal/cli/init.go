package cli

import (
	"strings"

	"wikispace/internal/store"

	"github.com/spf13/cobra"
)

const defaultSeedPath = "wikispace.yaml"

func newInitCmd(app *App) *cobra.Command {
	var (
		force bool
		use   bool
		empty bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter seed file (.yaml|.toml|.json) from the demo workspace",
		Long: strings.TrimSpace(`
Writes the built-in demo spaces and pages to a seed file you can edit and pass
back with --seed. The format follows the file extension.

With --use the file is also recorded as the default seed in the user config.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultSeedPath
			if len(args) == 1 {
				path = args[0]
			}

			sd := store.DefaultSeed()
			if empty {
				sd = store.Seed{Spaces: sd.Spaces[:1]}
			}
			if err := store.WriteSeedFile(path, sd, force); err != nil {
				return writeErr(cmd, err)
			}

			if use {
				app.loadConfig()
				if err := app.cfg.SetConfigValue("seed", path); err != nil {
					return writeErr(cmd, err)
				}
				if err := store.SaveConfig(app.cfg); err != nil {
					return writeErr(cmd, err)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"path":   path,
					"spaces": len(sd.Spaces),
					"pages":  len(sd.Pages),
					"inUse":  use,
				},
				"_hints": []string{
					"wikispace --seed " + path + " pages tree --space " + sd.Spaces[0].ID,
					"wikispace doctor --seed " + path,
				},
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing file")
	cmd.Flags().BoolVar(&use, "use", false, "Also set this file as the default seed in the user config")
	cmd.Flags().BoolVar(&empty, "empty", false, "Write a single empty space instead of the full demo")
	return cmd
}
