package cli

import (
	"fmt"
	"os"
	"strings"

	"wikispace/internal/format"
	"wikispace/internal/logging"
	"wikispace/internal/store"
	"wikispace/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Format     string
	PrettyJSON bool
	Seed       string
	LogLevel   string
	LogFile    string

	cfg *store.GlobalConfig
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "wikispace",
		Short:        "Wikispace: spaces of nested pages (TUI + CLI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  wikispace

  # Scriptable commands
  wikispace pages list --space space-1
  wikispace search deploy

  # Direct page lookup (shortcut for: wikispace pages show <page-id>)
  wikispace page-3

  # Start from your own data instead of the demo workspace
  wikispace --seed ./wiki.yaml pages tree --space eng
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(c *cobra.Command, args []string) error {
		app.loadConfig()
		if c == cmd {
			// The TUI configures its own (quiet) logging.
			return nil
		}
		if err := configureLogging(app, false); err != nil {
			return writeErr(c, err)
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("WIKISPACE_FORMAT", "json"), "Output format (json|edn|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")
	cmd.PersistentFlags().StringVar(&app.Seed, "seed", envOr("WIKISPACE_SEED", ""), "Seed file (.yaml|.toml|.json) instead of the built-in demo data")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", "", "Append logs to this file")

	cmd.AddCommand(newSpacesCmd(app))
	cmd.AddCommand(newPagesCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newPaletteCmd(app))
	cmd.AddCommand(newDashboardCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newApplyCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

func runTUI(app *App) error {
	if err := configureLogging(app, true); err != nil {
		return err
	}
	defer logging.Close()

	st, err := loadStore(app)
	if err != nil {
		return err
	}
	return tui.Run(st, tui.Options{
		Debounce:     app.cfg.EditorDebounce(),
		Glyphs:       app.cfg.Glyphs(),
		SidebarWidth: sidebarWidth(app.cfg),
	})
}

// loadConfig reads ~/.wikispace/config.json best-effort; a broken file is logged and
// ignored so the CLI stays usable.
func (app *App) loadConfig() {
	if app.cfg != nil {
		return
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		logging.NewLogger("cli").WithError(err).Warn("ignoring unreadable config")
		cfg = &store.GlobalConfig{}
	}
	app.cfg = cfg
}

// configureLogging applies flag > env > config file precedence.
func configureLogging(app *App, quiet bool) error {
	app.loadConfig()
	return logging.Configure(logging.Options{
		Level: firstNonEmpty(app.LogLevel, os.Getenv("WIKISPACE_LOG_LEVEL"), app.cfg.LogLevel),
		File:  firstNonEmpty(app.LogFile, os.Getenv("WIKISPACE_LOG_FILE"), app.cfg.LogFile),
		Quiet: quiet,
	})
}

// loadStore builds the per-invocation store. Nothing is persisted between runs.
func loadStore(app *App) (*store.Store, error) {
	app.loadConfig()
	opts := []store.Option{store.WithLogger(logging.NewLogger("store"))}

	if path := firstNonEmpty(app.Seed, app.cfg.Seed); path != "" {
		sd, err := store.LoadSeedFile(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sd.Option())
	}
	return store.New(opts...), nil
}

func sidebarWidth(cfg *store.GlobalConfig) int {
	if cfg == nil || cfg.TUI == nil {
		return 0
	}
	return cfg.TUI.SidebarWidth
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return reportedError{err: err}
}
