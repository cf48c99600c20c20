package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	defaultSidebarWidth = 32
	minSidebarWidth     = 18
	maxModalWidth       = 72
)

// normalizePane forces s to exactly width columns (ANSI-aware) and height lines, so
// lipgloss.JoinHorizontal lines the panes up.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}

	for i, ln := range lines {
		// Bound the width computation on pathological lines.
		if width > 0 && len(ln) > 8192 {
			ln = truncateCells(ln, width)
		}
		w := xansi.StringWidth(ln)
		if w > width {
			ln = truncateCells(ln, width)
			w = xansi.StringWidth(ln)
		}
		if w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

// truncateCells cuts s to width cells, marking the cut with an ellipsis.
func truncateCells(s string, width int) string {
	switch {
	case width <= 0:
		return ""
	case width == 1:
		return xansi.Cut(s, 0, 1)
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

// modalWidth is the outer modal width for a screen of width w.
func modalWidth(w int) int {
	mw := w - 8
	if mw > maxModalWidth {
		mw = maxModalWidth
	}
	if mw < 24 {
		mw = 24
	}
	return mw
}

// modalBodyWidth is the usable text width inside a modal of outer width w (border
// and one cell of padding on each side).
func modalBodyWidth(w int) int {
	bw := w - 4
	if bw < 10 {
		bw = 10
	}
	return bw
}

func renderModalBox(width int, title, body string) string {
	bodyW := modalBodyWidth(width)
	header := lipgloss.NewStyle().
		Width(bodyW).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorModalHeaderBg).
		Render(" " + title)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorModalBorder).
		Padding(0, 1).
		Width(bodyW + 2).
		Render(header + "\n\n" + body)
}

// placeModal centers a rendered modal on a w x h screen.
func placeModal(w, h int, modal string) string {
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modal,
		lipgloss.WithWhitespaceChars(" "))
}
