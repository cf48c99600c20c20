package tui

import (
	"fmt"
	"strings"
	"time"

	"wikispace/internal/dashboard"
	"wikispace/internal/editor"
	"wikispace/internal/model"
	"wikispace/internal/palette"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.syncPageView()
		return m, nil

	case saveCheckMsg:
		// The debounced write happened off the UI goroutine; pick it up.
		m.refreshRows()
		m.syncPageView()
		return m, nil

	case flashClearMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m appModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.st.UI().CommandPaletteOpen:
		return m.updatePalette(msg)
	case m.modal == modalConfirmDelete:
		return m.updateConfirmDelete(msg)
	case m.modal == modalRename:
		return m.updateRename(msg)
	case m.session != nil:
		return m.updateEditor(msg)
	}
	return m.updateBrowse(msg)
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	ui := m.st.UI()

	switch {
	case key.Matches(msg, k.Quit):
		m.deb.FlushAll()
		return m, tea.Quit

	case key.Matches(msg, k.Palette):
		m.openPalette()
		return m, nil

	case key.Matches(msg, k.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, k.Sidebar):
		m.st.ToggleSidebar()
		if m.st.UI().SidebarCollapsed {
			m.focus = focusMain
		} else {
			m.focus = focusSidebar
		}
		m.resize()
		m.syncPageView()
		return m, nil

	case key.Matches(msg, k.Focus):
		if ui.SidebarCollapsed {
			return m, nil
		}
		if m.focus == focusSidebar {
			m.focus = focusMain
		} else {
			m.focus = focusSidebar
		}
		return m, nil

	case key.Matches(msg, k.Dashboard):
		m.st.ClearPageSelection()
		m.syncPageView()
		return m, nil

	case key.Matches(msg, k.NewPage):
		p, ok := dashboard.CreateUntitledInSelected(m.st)
		if !ok {
			return m, m.setFlash("No space to create a page in")
		}
		return m, m.afterCreate(p)

	case key.Matches(msg, k.NewChild):
		parent, ok := m.st.GetPage(m.targetPageID())
		if !ok {
			return m, m.setFlash("Select a page first")
		}
		pid := parent.ID
		p := m.st.CreatePage(parent.SpaceID, dashboard.UntitledTitle, &pid)
		if !m.st.IsExpanded(pid) {
			m.st.ToggleNode(pid)
		}
		m.st.SelectPage(p.ID)
		return m, m.afterCreate(p)

	case key.Matches(msg, k.Favorite):
		id := m.targetPageID()
		if !m.st.ToggleFavorite(id) {
			return m, nil
		}
		m.refreshRows()
		if p, ok := m.st.GetPage(id); ok && p.IsFavorite {
			return m, m.setFlash(glyphStar() + " Added to favorites")
		}
		return m, m.setFlash("Removed from favorites")

	case key.Matches(msg, k.Delete):
		id := m.targetPageID()
		if _, ok := m.st.GetPage(id); !ok {
			return m, nil
		}
		m.modal = modalConfirmDelete
		m.pendingID = id
		m.confirmFocus = confirmFocusCancel
		return m, nil

	case key.Matches(msg, k.Rename):
		p, ok := m.st.GetPage(m.targetPageID())
		if !ok {
			return m, nil
		}
		m.modal = modalRename
		m.renameTarget = p.ID
		m.renameInput.SetValue(p.Title)
		m.renameInput.CursorEnd()
		return m, m.renameInput.Focus()

	case key.Matches(msg, k.Edit):
		return m.startEditing()

	case key.Matches(msg, k.PrevSpace):
		m.cycleSpace(-1)
		return m, nil

	case key.Matches(msg, k.NextSpace):
		m.cycleSpace(1)
		return m, nil
	}

	if m.focus == focusSidebar && !ui.SidebarCollapsed {
		return m.updateSidebar(msg)
	}
	return m.updateMain(msg)
}

func (m appModel) updateSidebar(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		m.cursor = nextSelectable(m.rows, m.cursor, -1)
	case key.Matches(msg, k.Down):
		m.cursor = nextSelectable(m.rows, m.cursor, 1)
	case key.Matches(msg, k.Expand):
		r, ok := m.cursorRow()
		if !ok {
			break
		}
		switch {
		case r.kind == rowPage && r.hasChildren:
			m.st.ToggleNode(r.id)
			m.refreshRows()
		case r.kind == rowSpace:
			m.toggleSpace(r.id)
		}
	case key.Matches(msg, k.Open):
		r, ok := m.cursorRow()
		if !ok {
			break
		}
		switch r.kind {
		case rowSpace:
			m.toggleSpace(r.id)
		case rowPage, rowFavorite:
			m.st.SelectPage(r.id)
			m.refreshRows()
			if r.kind == rowFavorite {
				m.syncCursorToSelection()
			}
			m.focus = focusMain
			m.syncPageView()
		}
	}
	return m, nil
}

// toggleSpace opens a space in the sidebar, or folds it when it is already open.
// Either way the main pane shows the dashboard.
func (m *appModel) toggleSpace(id string) {
	if m.st.UI().SelectedSpace() == id {
		m.st.SelectSpace(nil)
	} else {
		m.st.SelectSpace(&id)
	}
	m.refreshRows()
	m.syncPageView()
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	if m.st.UI().SelectedPage() == "" {
		return m, nil
	}
	switch {
	case key.Matches(msg, k.Up):
		m.view.LineUp(1)
	case key.Matches(msg, k.Down):
		m.view.LineDown(1)
	case key.Matches(msg, k.PageUp):
		m.view.HalfViewUp()
	case key.Matches(msg, k.PageDown):
		m.view.HalfViewDown()
	case key.Matches(msg, k.Back):
		m.st.ClearPageSelection()
		m.syncPageView()
	}
	return m, nil
}

func (m *appModel) cycleSpace(dir int) {
	spaces := m.st.Spaces()
	if len(spaces) == 0 {
		return
	}
	cur := m.st.UI().SelectedSpace()
	idx := -1
	for i, sp := range spaces {
		if sp.ID == cur {
			idx = i
			break
		}
	}
	next := (idx + dir + len(spaces)) % len(spaces)
	if idx < 0 && dir < 0 {
		next = len(spaces) - 1
	}
	id := spaces[next].ID
	m.st.SelectSpace(&id)
	m.refreshRows()
	m.syncCursorToSelection()
	m.syncPageView()
}

func (m *appModel) afterCreate(p model.Page) tea.Cmd {
	m.refreshRows()
	m.syncCursorToSelection()
	m.syncPageView()
	return m.setFlash("Created " + pageLabel(p.Title))
}

func (m *appModel) openPalette() {
	m.st.OpenCommandPalette()
	m.pal.Reset()
	m.palInput.SetValue("")
	m.palInput.Focus()
}

func (m appModel) updatePalette(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Back), key.Matches(msg, k.Palette):
		m.st.CloseCommandPalette()
		m.palInput.Blur()
		return m, nil
	case key.Matches(msg, k.PaletteUp):
		m.pal.Move(-1)
		return m, nil
	case key.Matches(msg, k.PaletteDown):
		m.pal.Move(1)
		return m, nil
	case key.Matches(msg, k.Open):
		out := m.pal.ChooseSelected()
		m.palInput.Blur()
		return m, m.afterPalette(out.PageID, out.CommandID, out.Dashboard)
	case msg.Type == tea.KeyCtrlC:
		m.deb.FlushAll()
		return m, tea.Quit
	}

	var cmd tea.Cmd
	before := m.palInput.Value()
	m.palInput, cmd = m.palInput.Update(msg)
	if v := m.palInput.Value(); v != before {
		m.pal.SetQuery(v)
	}
	return m, cmd
}

func (m *appModel) afterPalette(pageID, commandID string, dashboardView bool) tea.Cmd {
	if commandID == palette.CommandToggleSidebar {
		if m.st.UI().SidebarCollapsed {
			m.focus = focusMain
		}
		m.resize()
	}
	m.refreshRows()
	m.syncCursorToSelection()
	m.syncPageView()

	switch {
	case pageID != "":
		if _, ok := m.st.GetPage(pageID); !ok {
			return m.setFlash("That page no longer exists")
		}
		m.focus = focusMain
		if commandID == palette.CommandNewPage {
			return m.setFlash("Created " + dashboard.UntitledTitle)
		}
	case commandID == palette.CommandNewPage:
		return m.setFlash("No space to create a page in")
	case dashboardView && !m.st.UI().SidebarCollapsed:
		m.focus = focusSidebar
	}
	return nil
}

func (m appModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	confirmed := false
	switch {
	case key.Matches(msg, k.Back), key.Matches(msg, k.ConfirmNo):
		m.modal = modalNone
		m.pendingID = ""
		return m, nil
	case key.Matches(msg, k.ConfirmYes):
		confirmed = true
	case key.Matches(msg, k.Open):
		confirmed = m.confirmFocus == confirmFocusConfirm
		if !confirmed {
			m.modal = modalNone
			m.pendingID = ""
			return m, nil
		}
	case key.Matches(msg, k.ToggleChoice):
		m.confirmFocus = m.confirmFocus.toggle()
		return m, nil
	default:
		return m, nil
	}

	id := m.pendingID
	title := ""
	if p, ok := m.st.GetPage(id); ok {
		title = pageLabel(p.Title)
	}
	removed := m.st.DeletePage(id)
	for _, rid := range removed {
		m.deb.Cancel(rid)
	}
	m.modal = modalNone
	m.pendingID = ""
	m.refreshRows()
	m.syncCursorToSelection()
	m.syncPageView()
	m.log.WithField("page", id).WithField("removed", len(removed)).Debug("deleted from tui")

	if len(removed) > 1 {
		return m, m.setFlash(fmt.Sprintf("Deleted %s and %d sub-pages", title, len(removed)-1))
	}
	return m, m.setFlash("Deleted " + title)
}

func (m appModel) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Back):
		m.modal = modalNone
		m.renameInput.Blur()
		return m, nil
	case key.Matches(msg, k.Open):
		title := strings.TrimSpace(m.renameInput.Value())
		m.modal = modalNone
		m.renameInput.Blur()
		if title == "" {
			return m, m.setFlash("Title unchanged")
		}
		m.st.UpdatePage(m.renameTarget, model.PageUpdate{Title: &title})
		m.refreshRows()
		return m, m.setFlash("Renamed to " + title)
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

func (m appModel) startEditing() (tea.Model, tea.Cmd) {
	id := m.st.UI().SelectedPage()
	if id == "" {
		return m, m.setFlash("Open a page to edit it")
	}
	s, ok := editor.Open(m.st, m.deb, id, m.log)
	if !ok {
		return m, nil
	}
	m.session = s
	m.textarea.SetValue(s.Load())
	m.focus = focusMain
	return m, m.textarea.Focus()
}

func (m appModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Back):
		m.session.Close()
		m.session = nil
		m.textarea.Blur()
		m.refreshRows()
		m.syncPageView()
		return m, nil
	case key.Matches(msg, k.Save):
		m.session.Flush()
		m.syncPageView()
		return m, m.setFlash("Saved")
	case msg.Type == tea.KeyCtrlC:
		m.session.Close()
		m.deb.FlushAll()
		return m, tea.Quit
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if v := m.textarea.Value(); v != before {
		m.session.Change(v)
		id := m.session.PageID()
		check := tea.Tick(m.deb.Delay()+50*time.Millisecond, func(time.Time) tea.Msg { return saveCheckMsg{pageID: id} })
		return m, tea.Batch(cmd, check)
	}
	return m, cmd
}
