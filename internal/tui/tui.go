package tui

import (
	"time"

	"wikispace/internal/debounce"
	"wikispace/internal/logging"
	"wikispace/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// Options are the user preferences the TUI honors.
type Options struct {
	// Debounce is the editor quiet period before content is written to the store.
	Debounce time.Duration
	// Glyphs is "unicode" or "ascii"; WIKISPACE_TUI_GLYPHS overrides it.
	Glyphs string
	// SidebarWidth is the expanded sidebar width in cells (0 means default).
	SidebarWidth int
}

func Run(st *store.Store, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	setGlyphsFromName(opts.Glyphs)
	applyGlyphPreference()

	deb := debounce.New[string](opts.Debounce)
	defer deb.Stop()

	m := newAppModel(st, deb, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()

	// Anything still inside its quiet period is written before we exit.
	if n := deb.FlushAll(); n > 0 {
		logging.NewLogger("tui").WithField("pending", n).Debug("flushed pending edits on exit")
	}
	return err
}
