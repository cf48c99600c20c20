package tui

import (
	"os"
	"strings"
	"sync"
)

// Terminals can't change the user's font, so affordances (twisties, separators, the
// favorite star) come in a Unicode and an ASCII set.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// parseGlyphSet maps a config/env value to a set. Unknown values report false.
func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	}
	return glyphSetUnicode, false
}

func setGlyphsFromName(name string) {
	if gs, ok := parseGlyphSet(name); ok {
		setGlyphs(gs)
	}
}

// applyGlyphPreference lets WIKISPACE_TUI_GLYPHS override the configured set.
func applyGlyphPreference() {
	v, set := os.LookupEnv("WIKISPACE_TUI_GLYPHS")
	if !set || strings.TrimSpace(v) == "" {
		return
	}
	setGlyphsFromName(v)
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphTwistyCollapsed() string { return pick("▸", ">") }
func glyphTwistyExpanded() string  { return pick("▾", "v") }
func glyphBullet() string          { return pick("•", "*") }
func glyphCrumbSep() string        { return pick("›", ">") }
func glyphHRule() string           { return pick("─", "-") }
func glyphStar() string            { return pick("★", "*") }
func glyphSaving() string          { return pick("●", "~") }
