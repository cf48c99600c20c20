package tui

import (
	"fmt"
	"strings"
	"time"

	"wikispace/internal/content"
	"wikispace/internal/dashboard"
	"wikispace/internal/palette"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m appModel) View() string {
	ui := m.st.UI()

	switch {
	case ui.CommandPaletteOpen:
		return placeModal(m.width, m.height, m.viewPalette())
	case m.modal == modalConfirmDelete:
		return placeModal(m.width, m.height, m.viewConfirmDelete())
	case m.modal == modalRename:
		return placeModal(m.width, m.height, m.viewRename())
	}

	sw := m.sidebarWidth()
	mw := m.mainWidth()
	bodyH := m.height - 1 // footer

	main := m.viewMain(mw, bodyH)
	screen := main
	if sw > 0 {
		side := renderSidebar(m.rows, m.cursor, m.focus == focusSidebar && m.session == nil, ui.SelectedPage(), sw, bodyH)
		divider := styleMuted().Render(strings.TrimRight(strings.Repeat("│\n", bodyH), "\n"))
		if glyphs() == glyphSetASCII {
			divider = styleMuted().Render(strings.TrimRight(strings.Repeat("|\n", bodyH), "\n"))
		}
		screen = lipgloss.JoinHorizontal(lipgloss.Top, side, divider, main)
	}
	return normalizePane(screen, m.width, bodyH) + "\n" + m.viewFooter()
}

func (m appModel) viewMain(width, height int) string {
	top := m.viewTopBar(width - 2)
	var body string
	if id := m.st.UI().SelectedPage(); id != "" {
		body = m.viewPage(id, width-2)
	} else {
		body = m.viewDashboard(width - 2)
	}
	pane := lipgloss.NewStyle().Padding(0, 1).Render(top + "\n\n" + body)
	return normalizePane(pane, width, height)
}

// viewTopBar renders the breadcrumb: space, ancestors, page.
func (m appModel) viewTopBar(width int) string {
	ui := m.st.UI()
	sep := styleMuted().Render(" " + glyphCrumbSep() + " ")

	var crumbs []string
	if sp, ok := m.st.GetSpace(ui.SelectedSpace()); ok {
		crumbs = append(crumbs, styleChrome().Render(withIcon(sp.Icon, sp.Name)))
	} else {
		crumbs = append(crumbs, styleChrome().Render("Home"))
	}
	if id := ui.SelectedPage(); id != "" {
		for _, a := range m.st.Ancestors(id) {
			crumbs = append(crumbs, styleChrome().Render(pageLabel(a.Title)))
		}
		if p, ok := m.st.GetPage(id); ok {
			crumbs = append(crumbs, styleHeading().Render(pageLabel(p.Title)))
		}
	} else {
		crumbs = append(crumbs, styleHeading().Render("Dashboard"))
	}

	line := strings.Join(crumbs, sep)
	if m.session != nil {
		state := styleMuted().Render("saved")
		if m.session.Dirty() {
			state = lipgloss.NewStyle().Foreground(colorFavorite).Render(glyphSaving() + " editing")
		}
		line += "  " + state
	}
	return truncateCells(line, width)
}

func (m appModel) viewPage(id string, width int) string {
	p, ok := m.st.GetPage(id)
	if !ok {
		return styleMuted().Render("This page no longer exists.")
	}

	title := pageLabel(p.Title)
	if p.Emoji != "" {
		title = p.Emoji + "  " + title
	}
	header := styleHeading().Render(title)
	if p.IsFavorite {
		header += " " + lipgloss.NewStyle().Foreground(colorFavorite).Render(glyphStar())
	}

	metaParts := []string{"Updated " + humanize.Time(p.UpdatedAt)}
	if kids := m.st.GetChildPages(p.ID); len(kids) > 0 {
		metaParts = append(metaParts, fmt.Sprintf("%d sub-pages", len(kids)))
	}
	metaParts = append(metaParts, fmt.Sprintf("%d words", content.WordCount(p.Content)))
	meta := styleMuted().Render(strings.Join(metaParts, "  "+glyphBullet()+"  "))

	rule := styleMuted().Render(strings.Repeat(glyphHRule(), max(width, 1)))
	var body string
	if m.session != nil && m.session.PageID() == p.ID {
		body = m.textarea.View()
	} else {
		body = m.view.View()
	}
	return strings.Join([]string{header, meta, rule, body}, "\n")
}

func (m appModel) viewDashboard(width int) string {
	sum := dashboard.Summarize(m.st, time.Now())
	var b strings.Builder

	b.WriteString(styleHeading().Render("Welcome back"))
	b.WriteString("\n")
	b.WriteString(styleMuted().Render(fmt.Sprintf("%d pages  %s  %d spaces  %s  %d favorites",
		sum.TotalPages, glyphBullet(), sum.TotalSpaces, glyphBullet(), sum.Favorites)))
	b.WriteString("\n\n")

	section := func(title string) {
		b.WriteString(styleAccent().Render(title))
		b.WriteString("\n")
	}

	section("Recently updated")
	if len(sum.Recent) == 0 {
		b.WriteString(styleMuted().Render("  No pages yet. Press n to create one."))
		b.WriteString("\n")
	}
	for _, c := range sum.Recent {
		line := "  " + withIcon(c.Emoji, pageLabel(c.Title)) + styleMuted().Render("  "+c.SpaceName+"  "+c.UpdatedAgo)
		b.WriteString(truncateCells(line, width))
		b.WriteString("\n")
		if c.Excerpt != "" {
			b.WriteString(truncateCells(styleMuted().Render("    "+c.Excerpt), width))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")

	if len(sum.Starred) > 0 {
		section("Favorites")
		for _, c := range sum.Starred {
			b.WriteString(truncateCells("  "+glyphStar()+" "+withIcon(c.Emoji, pageLabel(c.Title)), width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	section("Spaces")
	for _, sp := range sum.Spaces {
		b.WriteString(truncateCells(fmt.Sprintf("  %s  %s", withIcon(sp.Icon, sp.Name), styleMuted().Render(fmt.Sprintf("%d pages", sp.Pages))), width))
		b.WriteString("\n")
	}

	if len(sum.Activity) > 0 {
		b.WriteString("\n")
		section("Activity")
		for _, a := range sum.Activity {
			label := a.Title
			if label == "" {
				label = a.EntityID
			}
			b.WriteString(truncateCells(fmt.Sprintf("  %s %s  %s", string(a.Type), label, styleMuted().Render(a.Ago)), width))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m appModel) viewFooter() string {
	if m.flash != "" {
		return normalizePane(" "+lipgloss.NewStyle().Foreground(colorAccent).Render(m.flash), m.width, 1)
	}
	var km help.KeyMap = browseKeys{m.keys}
	if m.session != nil {
		km = editKeys{m.keys}
	}
	h := m.help
	h.ShowAll = m.showHelp && m.session == nil
	if h.ShowAll {
		// Full help is multi-line; keep only what fits in the footer row.
		lines := strings.Split(h.View(km), "\n")
		return normalizePane(" "+lines[0], m.width, 1)
	}
	return normalizePane(" "+h.View(km), m.width, 1)
}

func (m appModel) viewPalette() string {
	w := modalWidth(m.width)
	bodyW := modalBodyWidth(w)
	entries := m.pal.Entries()

	var lines []string
	lines = append(lines, renderInputLine(bodyW, m.palInput.View()), "")

	if len(entries) == 0 {
		lines = append(lines, styleMuted().Render("No results"))
	}

	// Only the part of the list around the cursor fits on small screens.
	maxRows := max(m.height-12, 5)
	start := 0
	if c := m.pal.Cursor(); c >= maxRows {
		start = c - maxRows + 1
	}
	section := ""
	shown := 0
	for i := start; i < len(entries) && shown < maxRows; i++ {
		e := entries[i]
		if e.Section != section {
			section = e.Section
			lines = append(lines, styleChrome().Bold(true).Render(strings.ToUpper(section)))
		}
		lines = append(lines, paletteLine(e, bodyW, i == m.pal.Cursor()))
		shown++
	}

	lines = append(lines, "", styleMuted().Render("↑/↓ move   enter open   esc close"))
	return renderModalBox(w, "Go to…", strings.Join(lines, "\n"))
}

func paletteLine(e palette.Entry, width int, selected bool) string {
	label := highlightMatches(e.Label, e.MatchedIndexes, selected)
	line := " " + withIcon(e.Icon, label)
	if e.Hint != "" {
		line += "  " + styleMuted().Render(e.Hint)
	}
	line = normalizePane(truncateCells(line, width), width, 1)
	if selected {
		return styleSelectedRow().Render(line)
	}
	return line
}

// highlightMatches underlines the runes the fuzzy matcher hit.
func highlightMatches(label string, idx []int, selected bool) string {
	if len(idx) == 0 {
		return label
	}
	hit := make(map[int]bool, len(idx))
	for _, i := range idx {
		hit[i] = true
	}
	st := lipgloss.NewStyle().Underline(true).Foreground(colorAccent)
	if selected {
		st = st.Foreground(colorAccentFg)
	}
	var b strings.Builder
	for i, r := range []rune(label) {
		if hit[i] {
			b.WriteString(st.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (m appModel) viewConfirmDelete() string {
	w := modalWidth(m.width)
	title := "this page"
	if p, ok := m.st.GetPage(m.pendingID); ok {
		title = "“" + pageLabel(p.Title) + "”"
	}
	body := "Delete " + title + "?"
	if n := len(m.st.Descendants(m.pendingID)); n > 0 {
		body += fmt.Sprintf(" Its %d sub-pages will be deleted too.", n)
	}
	return renderConfirmModal(w, "Delete page", body, "Delete", "Cancel", m.confirmFocus)
}

func (m appModel) viewRename() string {
	w := modalWidth(m.width)
	bodyW := modalBodyWidth(w)
	body := strings.Join([]string{
		renderInputLine(bodyW, m.renameInput.View()),
		"",
		styleMuted().Render("enter: save   esc: cancel"),
	}, "\n")
	return renderModalBox(w, "Rename page", body)
}
