package tui

import (
	"strings"
	"testing"
	"time"

	"wikispace/internal/debounce"
	"wikispace/internal/palette"
	"wikispace/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) (appModel, *store.Store) {
	t.Helper()
	st := store.New()
	// Long enough that nothing fires on its own during a test.
	deb := debounce.New[string](time.Hour)
	t.Cleanup(deb.Stop)

	m := newAppModel(st, deb, Options{})
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return mm.(appModel), st
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+k":
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, m appModel, keys ...string) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var mm tea.Model
		mm, cmd = m.Update(keyMsg(k))
		m = mm.(appModel)
	}
	return m, cmd
}

// openPage moves the sidebar cursor onto the tree row for id and presses enter.
func openPage(t *testing.T, m appModel, id string) appModel {
	t.Helper()
	i := rowIndex(m.rows, rowPage, id)
	if i < 0 {
		t.Fatalf("page %s not visible in sidebar", id)
	}
	m.focus = focusSidebar
	m.cursor = i
	m, _ = press(t, m, "enter")
	if got := m.st.UI().SelectedPage(); got != id {
		t.Fatalf("expected %s selected; got %q", id, got)
	}
	return m
}

func TestSidebar_InitialRows(t *testing.T) {
	m, _ := newTestModel(t)

	r, ok := m.cursorRow()
	if !ok || r.kind != rowSpace || r.id != "space-1" {
		t.Fatalf("expected cursor on space-1; got %+v", r)
	}
	var favs, pages []string
	for _, r := range m.rows {
		switch r.kind {
		case rowFavorite:
			favs = append(favs, r.id)
		case rowPage:
			pages = append(pages, r.id)
		}
	}
	if strings.Join(favs, ",") != "page-1,page-4,page-6,page-9" {
		t.Fatalf("favorites: %v", favs)
	}
	// Only the selected space is open, and children stay folded.
	if strings.Join(pages, ",") != "page-1,page-2,page-5" {
		t.Fatalf("tree rows: %v", pages)
	}
}

func TestSidebar_EnterOpensPage(t *testing.T) {
	m, st := newTestModel(t)

	m, _ = press(t, m, "down", "enter")
	if got := st.UI().SelectedPage(); got != "page-1" {
		t.Fatalf("expected page-1; got %q", got)
	}
	if m.focus != focusMain {
		t.Fatalf("expected focus to move to the page")
	}
	if v := m.View(); !strings.Contains(v, "Getting Started") {
		t.Fatalf("page view missing title:\n%s", v)
	}
}

func TestSidebar_SpaceExpandsChildren(t *testing.T) {
	m, st := newTestModel(t)

	m.cursor = rowIndex(m.rows, rowPage, "page-2")
	m, _ = press(t, m, "space")
	if !st.IsExpanded("page-2") {
		t.Fatalf("expected page-2 expanded")
	}
	if rowIndex(m.rows, rowPage, "page-3") < 0 || rowIndex(m.rows, rowPage, "page-4") < 0 {
		t.Fatalf("children not visible after expand")
	}
	if r, _ := m.cursorRow(); r.id != "page-2" {
		t.Fatalf("cursor should stay on page-2; got %q", r.id)
	}

	m, _ = press(t, m, "space")
	if rowIndex(m.rows, rowPage, "page-3") >= 0 {
		t.Fatalf("children still visible after collapse")
	}
}

func TestSidebar_EnterOnOpenSpaceFoldsIt(t *testing.T) {
	m, st := newTestModel(t)

	m, _ = press(t, m, "enter")
	if st.UI().SelectedSpaceID != nil {
		t.Fatalf("expected space selection cleared")
	}
	if rowIndex(m.rows, rowPage, "page-1") >= 0 {
		t.Fatalf("tree rows should be hidden when no space is open")
	}
}

func TestSpaceCycle(t *testing.T) {
	m, st := newTestModel(t)

	m, _ = press(t, m, "]")
	if got := st.UI().SelectedSpace(); got != "space-2" {
		t.Fatalf("expected space-2; got %q", got)
	}
	m, _ = press(t, m, "[", "[")
	if got := st.UI().SelectedSpace(); got != "space-4" {
		t.Fatalf("expected wrap to space-4; got %q", got)
	}
	if r, _ := m.cursorRow(); r.kind != rowSpace || r.id != "space-4" {
		t.Fatalf("cursor should follow the space; got %+v", r)
	}
}

func TestPalette_OpenSearchSelect(t *testing.T) {
	m, st := newTestModel(t)

	m, _ = press(t, m, "ctrl+k")
	if !st.UI().CommandPaletteOpen {
		t.Fatalf("expected palette open")
	}
	if v := m.View(); !strings.Contains(v, "FAVORITES") {
		t.Fatalf("empty query should list favorites:\n%s", v)
	}

	m, _ = press(t, m, "Typography")
	if q := m.pal.Query(); q != "Typography" {
		t.Fatalf("query: %q", q)
	}
	sel, ok := m.pal.Selected()
	if !ok || sel.Kind != palette.KindPage {
		t.Fatalf("expected a page result first; got %+v", sel)
	}

	m, _ = press(t, m, "enter")
	if st.UI().CommandPaletteOpen {
		t.Fatalf("expected palette closed after choosing")
	}
	if got := st.UI().SelectedPage(); got != sel.ID {
		t.Fatalf("expected %s selected; got %q", sel.ID, got)
	}
	if m.focus != focusMain {
		t.Fatalf("expected focus on the page")
	}
}

func TestPalette_EscAndToggleClose(t *testing.T) {
	m, st := newTestModel(t)

	m, _ = press(t, m, "ctrl+k", "esc")
	if st.UI().CommandPaletteOpen {
		t.Fatalf("esc should close the palette")
	}
	m, _ = press(t, m, "ctrl+k", "ctrl+k")
	if st.UI().CommandPaletteOpen {
		t.Fatalf("ctrl+k should toggle the palette closed")
	}

	// Reopening starts from an empty query.
	m, _ = press(t, m, "ctrl+k", "zzz", "esc", "ctrl+k")
	if q := m.pal.Query(); q != "" {
		t.Fatalf("expected empty query on reopen; got %q", q)
	}
}

func TestPalette_CommandTogglesSidebar(t *testing.T) {
	m, st := newTestModel(t)

	m, _ = press(t, m, "ctrl+k", "toggle sidebar")
	sel, ok := m.pal.Selected()
	if !ok || sel.ID != palette.CommandToggleSidebar {
		t.Fatalf("expected toggle-sidebar command; got %+v", sel)
	}
	m, _ = press(t, m, "enter")
	if !st.UI().SidebarCollapsed {
		t.Fatalf("expected sidebar collapsed")
	}
	if m.focus != focusMain {
		t.Fatalf("focus should leave the hidden sidebar")
	}
}

func TestNewPage_UsesSelectedSpace(t *testing.T) {
	m, st := newTestModel(t)

	m, _ = press(t, m, "]", "n")
	id := st.UI().SelectedPage()
	p, ok := st.GetPage(id)
	if !ok {
		t.Fatalf("expected new page selected")
	}
	if p.Title != "Untitled" || p.SpaceID != "space-2" || p.ParentID != nil {
		t.Fatalf("unexpected page: %+v", p)
	}
	if rowIndex(m.rows, rowPage, id) < 0 {
		t.Fatalf("new page missing from sidebar")
	}
	if !strings.Contains(m.flash, "Created") {
		t.Fatalf("flash: %q", m.flash)
	}
}

func TestNewChild_ExpandsParent(t *testing.T) {
	m, st := newTestModel(t)
	m = openPage(t, m, "page-5")

	m, _ = press(t, m, "N")
	id := st.UI().SelectedPage()
	p, _ := st.GetPage(id)
	if p.Parent() != "page-5" {
		t.Fatalf("expected child of page-5; got %+v", p)
	}
	if !st.IsExpanded("page-5") {
		t.Fatalf("parent should be expanded to show the child")
	}
	if i := rowIndex(m.rows, rowPage, id); i < 0 || m.rows[i].depth != 2 {
		t.Fatalf("child row missing or at wrong depth")
	}
}

func TestFavoriteToggle(t *testing.T) {
	m, st := newTestModel(t)
	m = openPage(t, m, "page-5")

	m, _ = press(t, m, "f")
	if p, _ := st.GetPage("page-5"); !p.IsFavorite {
		t.Fatalf("expected page-5 favorited")
	}
	if rowIndex(m.rows, rowFavorite, "page-5") < 0 {
		t.Fatalf("favorites section not refreshed")
	}
	m, _ = press(t, m, "f")
	if p, _ := st.GetPage("page-5"); p.IsFavorite {
		t.Fatalf("expected page-5 unfavorited")
	}
}

func TestDelete_ConfirmModal(t *testing.T) {
	m, st := newTestModel(t)
	m = openPage(t, m, "page-2")

	m, _ = press(t, m, "D")
	if m.modal != modalConfirmDelete {
		t.Fatalf("expected confirm modal")
	}
	if v := m.View(); !strings.Contains(v, "sub-pages") {
		t.Fatalf("modal should warn about sub-pages:\n%s", v)
	}

	// Cancel has focus by default.
	m, _ = press(t, m, "enter")
	if m.modal != modalNone {
		t.Fatalf("expected modal closed")
	}
	if _, ok := st.GetPage("page-2"); !ok {
		t.Fatalf("cancel must not delete")
	}

	m, _ = press(t, m, "D", "tab", "enter")
	for _, id := range []string{"page-2", "page-3", "page-4"} {
		if _, ok := st.GetPage(id); ok {
			t.Fatalf("%s should be deleted", id)
		}
	}
	if st.UI().SelectedPage() != "" {
		t.Fatalf("selection should clear with the deleted page")
	}
	if rowIndex(m.rows, rowFavorite, "page-4") >= 0 {
		t.Fatalf("deleted favorite still in sidebar")
	}
}

func TestDelete_YesNoShortcuts(t *testing.T) {
	m, st := newTestModel(t)
	m = openPage(t, m, "page-5")

	m, _ = press(t, m, "D", "n")
	if _, ok := st.GetPage("page-5"); !ok {
		t.Fatalf("n must cancel")
	}
	m, _ = press(t, m, "D", "y")
	if _, ok := st.GetPage("page-5"); ok {
		t.Fatalf("y must delete")
	}
	if m.modal != modalNone {
		t.Fatalf("expected modal closed")
	}
}

func TestRename(t *testing.T) {
	m, st := newTestModel(t)
	m = openPage(t, m, "page-5")

	m, _ = press(t, m, "r")
	if m.modal != modalRename || m.renameInput.Value() != "Deployment Guide" {
		t.Fatalf("expected rename modal prefilled; got %q", m.renameInput.Value())
	}
	m, _ = press(t, m, " v2", "enter")
	if p, _ := st.GetPage("page-5"); p.Title != "Deployment Guide v2" {
		t.Fatalf("title: %q", p.Title)
	}

	// Blank titles are ignored.
	m.renameInput.SetValue("")
	m.modal = modalRename
	m, _ = press(t, m, "enter")
	if p, _ := st.GetPage("page-5"); p.Title != "Deployment Guide v2" {
		t.Fatalf("blank rename changed the title to %q", p.Title)
	}
}

func TestEdit_DebouncesUntilEsc(t *testing.T) {
	m, st := newTestModel(t)
	m = openPage(t, m, "page-5")
	before, _ := st.GetPage("page-5")

	m, _ = press(t, m, "e")
	if m.session == nil {
		t.Fatalf("expected edit session")
	}
	m, cmd := press(t, m, "!")
	if cmd == nil {
		t.Fatalf("expected a save check to be scheduled")
	}
	if p, _ := st.GetPage("page-5"); p.Content != before.Content {
		t.Fatalf("content written before the quiet period ended")
	}
	if !m.session.Dirty() {
		t.Fatalf("session should be dirty")
	}

	m, _ = press(t, m, "esc")
	if m.session != nil {
		t.Fatalf("esc should leave edit mode")
	}
	after, _ := st.GetPage("page-5")
	if after.Content == before.Content || !strings.Contains(after.Content, "!") {
		t.Fatalf("edit not flushed on close")
	}
}

func TestEdit_CtrlSSavesImmediately(t *testing.T) {
	m, st := newTestModel(t)
	m = openPage(t, m, "page-1")

	m, _ = press(t, m, "e", "?", "ctrl+s")
	if p, _ := st.GetPage("page-1"); !strings.Contains(p.Content, "?") {
		t.Fatalf("ctrl+s should write the pending edit")
	}
	if m.session == nil {
		t.Fatalf("ctrl+s keeps editing")
	}
}

func TestEdit_RequiresOpenPage(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "e")
	if m.session != nil {
		t.Fatalf("no page open; edit should not start")
	}
}

func TestQuit_FlushesPendingEdits(t *testing.T) {
	m, st := newTestModel(t)
	m = openPage(t, m, "page-1")

	m, _ = press(t, m, "e", "#")
	_, cmd := press(t, m, "ctrl+c")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("expected tea.Quit; got %T", msg)
	}
	if p, _ := st.GetPage("page-1"); !strings.Contains(p.Content, "#") {
		t.Fatalf("pending edit lost on quit")
	}
}

func TestSidebarToggle(t *testing.T) {
	m, st := newTestModel(t)

	m, _ = press(t, m, "ctrl+b")
	if !st.UI().SidebarCollapsed || m.focus != focusMain {
		t.Fatalf("expected collapsed sidebar with main focus")
	}
	if v := m.View(); strings.Contains(v, "SPACES") {
		t.Fatalf("collapsed sidebar still rendered")
	}
	m, _ = press(t, m, "ctrl+b")
	if st.UI().SidebarCollapsed || m.focus != focusSidebar {
		t.Fatalf("expected sidebar back with focus")
	}
}

func TestDashboard_ViewAndReturn(t *testing.T) {
	m, st := newTestModel(t)

	v := m.View()
	for _, want := range []string{"Dashboard", "Recently updated", "Spaces"} {
		if !strings.Contains(v, want) {
			t.Fatalf("dashboard missing %q:\n%s", want, v)
		}
	}

	m = openPage(t, m, "page-1")
	m, _ = press(t, m, "g")
	if st.UI().SelectedPage() != "" {
		t.Fatalf("g should return to the dashboard")
	}
	if st.UI().SelectedSpace() != "space-1" {
		t.Fatalf("dashboard keeps the selected space")
	}
}

func TestView_FitsWindow(t *testing.T) {
	m, _ := newTestModel(t)
	m = openPage(t, m, "page-2")

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 40 {
		t.Fatalf("expected 40 lines; got %d", len(lines))
	}
}

func TestFlashClears(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, "n")
	seq := m.flashSeq

	mm, _ := m.Update(flashClearMsg{seq: seq - 1})
	m = mm.(appModel)
	if m.flash == "" {
		t.Fatalf("stale clear should be ignored")
	}
	mm, _ = m.Update(flashClearMsg{seq: seq})
	m = mm.(appModel)
	if m.flash != "" {
		t.Fatalf("expected flash cleared")
	}
}
