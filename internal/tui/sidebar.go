package tui

import (
	"strings"

	"wikispace/internal/palette"
	"wikispace/internal/store"

	"github.com/charmbracelet/lipgloss"
)

type rowKind int

const (
	rowHeader rowKind = iota
	rowFavorite
	rowSpace
	rowPage
)

type sidebarRow struct {
	kind        rowKind
	id          string
	label       string
	icon        string
	depth       int
	hasChildren bool
	expanded    bool
}

func (r sidebarRow) selectable() bool { return r.kind != rowHeader }

// isPage reports whether the row points at a page (tree row or favorite).
func (r sidebarRow) isPage() bool { return r.kind == rowPage || r.kind == rowFavorite }

// buildSidebarRows lists favorites, then spaces. The selected space is followed by
// its visible tree rows.
func buildSidebarRows(st *store.Store) []sidebarRow {
	ui := st.UI()
	var rows []sidebarRow

	if favs := st.Favorites(); len(favs) > 0 {
		rows = append(rows, sidebarRow{kind: rowHeader, label: palette.SectionFavorites})
		for _, p := range favs {
			rows = append(rows, sidebarRow{kind: rowFavorite, id: p.ID, label: pageLabel(p.Title), icon: p.Emoji})
		}
	}

	rows = append(rows, sidebarRow{kind: rowHeader, label: palette.SectionSpaces})
	for _, sp := range st.Spaces() {
		open := sp.ID == ui.SelectedSpace()
		rows = append(rows, sidebarRow{kind: rowSpace, id: sp.ID, label: sp.Name, icon: sp.Icon, expanded: open})
		if !open {
			continue
		}
		for _, n := range store.VisibleRows(st.Tree(sp.ID)) {
			rows = append(rows, sidebarRow{
				kind:        rowPage,
				id:          n.Page.ID,
				label:       pageLabel(n.Page.Title),
				icon:        n.Page.Emoji,
				depth:       n.Depth + 1,
				hasChildren: len(n.Children) > 0,
				expanded:    n.Expanded,
			})
		}
	}
	return rows
}

func pageLabel(title string) string {
	if strings.TrimSpace(title) == "" {
		return "Untitled"
	}
	return title
}

// nextSelectable walks from i in direction dir (±1) to the next selectable row.
// It returns i when there is none.
func nextSelectable(rows []sidebarRow, i, dir int) int {
	for j := i + dir; j >= 0 && j < len(rows); j += dir {
		if rows[j].selectable() {
			return j
		}
	}
	return i
}

// clampCursor keeps the cursor on a selectable row.
func clampCursor(rows []sidebarRow, i int) int {
	if len(rows) == 0 {
		return 0
	}
	if i >= len(rows) {
		i = len(rows) - 1
	}
	if i < 0 {
		i = 0
	}
	if rows[i].selectable() {
		return i
	}
	if j := nextSelectable(rows, i, 1); j != i {
		return j
	}
	return nextSelectable(rows, i, -1)
}

// rowIndex finds the first row of kind k with id.
func rowIndex(rows []sidebarRow, k rowKind, id string) int {
	for i, r := range rows {
		if r.kind == k && r.id == id {
			return i
		}
	}
	return -1
}

func renderSidebar(rows []sidebarRow, cursor int, focused bool, selectedPage string, width, height int) string {
	var b strings.Builder
	title := styleAccent().Render("wikispace")
	b.WriteString(" " + title + "\n")
	b.WriteString(styleMuted().Render(strings.Repeat(glyphHRule(), max(width, 1))) + "\n")

	// Keep the cursor row on screen.
	avail := height - 2
	start := 0
	if avail > 0 && cursor >= avail {
		start = cursor - avail + 1
	}

	for i := start; i < len(rows); i++ {
		r := rows[i]
		line := sidebarLine(r, width)
		switch {
		case r.kind == rowHeader:
			line = styleChrome().Bold(true).Render(line)
		case i == cursor && focused:
			line = styleSelectedRow().Render(normalizePane(line, width, 1))
		case r.isPage() && r.id == selectedPage:
			line = lipgloss.NewStyle().Foreground(colorAccent).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return normalizePane(strings.TrimRight(b.String(), "\n"), width, height)
}

func sidebarLine(r sidebarRow, width int) string {
	switch r.kind {
	case rowHeader:
		return " " + strings.ToUpper(r.label)
	case rowSpace:
		twisty := glyphTwistyCollapsed()
		if r.expanded {
			twisty = glyphTwistyExpanded()
		}
		return truncateCells(" "+twisty+" "+withIcon(r.icon, r.label), width)
	case rowFavorite:
		return truncateCells("   "+withIcon(r.icon, r.label), width)
	}

	indent := strings.Repeat("  ", r.depth)
	twisty := " "
	if r.hasChildren {
		twisty = glyphTwistyCollapsed()
		if r.expanded {
			twisty = glyphTwistyExpanded()
		}
	}
	return truncateCells(" "+indent+twisty+" "+withIcon(r.icon, r.label), width)
}

func withIcon(icon, label string) string {
	if strings.TrimSpace(icon) == "" {
		return label
	}
	return icon + " " + label
}
