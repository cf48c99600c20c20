package tui

import (
	"time"

	"wikispace/internal/debounce"
	"wikispace/internal/editor"
	"wikispace/internal/logging"
	"wikispace/internal/palette"
	"wikispace/internal/store"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

type paneFocus int

const (
	focusSidebar paneFocus = iota
	focusMain
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalRename
)

// saveCheckMsg re-renders once a debounced save should have landed.
type saveCheckMsg struct{ pageID string }

// flashClearMsg drops the status flash if nothing newer replaced it.
type flashClearMsg struct{ seq int }

const flashDuration = 2 * time.Second

// appModel renders the store. Selection, sidebar and palette visibility live in the
// store's UI state; the model only keeps widgets and cursors.
type appModel struct {
	st   *store.Store
	deb  *debounce.Debouncer[string]
	log  *logrus.Entry
	opts Options
	keys keyMap

	width  int
	height int

	focus  paneFocus
	rows   []sidebarRow
	cursor int

	pal      *palette.Palette
	palInput textinput.Model

	modal         modalKind
	confirmFocus  confirmModalFocus
	pendingID     string
	renameInput   textinput.Model
	renameTarget  string
	session       *editor.Session
	textarea      textarea.Model
	view          viewport.Model
	viewPageID    string
	viewUpdatedAt time.Time
	viewWidth     int

	help     help.Model
	showHelp bool

	flash    string
	flashSeq int
}

func newAppModel(st *store.Store, deb *debounce.Debouncer[string], opts Options) appModel {
	if opts.SidebarWidth <= 0 {
		opts.SidebarWidth = defaultSidebarWidth
	}
	if opts.SidebarWidth < minSidebarWidth {
		opts.SidebarWidth = minSidebarWidth
	}

	m := appModel{
		st:     st,
		deb:    deb,
		log:    logging.NewLogger("tui"),
		opts:   opts,
		keys:   defaultKeyMap(),
		width:  100,
		height: 30,
		pal:    palette.New(st),
		help:   help.New(),
	}

	m.palInput = textinput.New()
	m.palInput.Placeholder = "Search pages or type a command…"
	m.palInput.Prompt = "› "
	m.palInput.CharLimit = 200

	m.renameInput = textinput.New()
	m.renameInput.Prompt = ""
	m.renameInput.CharLimit = 200

	m.textarea = textarea.New()
	m.textarea.Placeholder = "Write…"
	m.textarea.CharLimit = 0
	m.textarea.MaxHeight = 0
	m.textarea.ShowLineNumbers = false

	m.view = viewport.New(0, 0)

	if st.UI().SidebarCollapsed {
		m.focus = focusMain
	}
	m.refreshRows()
	m.syncCursorToSelection()
	m.resize()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

// refreshRows rebuilds the sidebar and keeps the cursor on the same row when it
// still exists.
func (m *appModel) refreshRows() {
	var prev sidebarRow
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		prev = m.rows[m.cursor]
	}
	m.rows = buildSidebarRows(m.st)
	if prev.id != "" {
		if i := rowIndex(m.rows, prev.kind, prev.id); i >= 0 {
			m.cursor = i
		}
	}
	m.cursor = clampCursor(m.rows, m.cursor)
}

// syncCursorToSelection moves the cursor to the selected page's tree row, or the
// selected space.
func (m *appModel) syncCursorToSelection() {
	ui := m.st.UI()
	if id := ui.SelectedPage(); id != "" {
		if i := rowIndex(m.rows, rowPage, id); i >= 0 {
			m.cursor = i
			return
		}
	}
	if id := ui.SelectedSpace(); id != "" {
		if i := rowIndex(m.rows, rowSpace, id); i >= 0 {
			m.cursor = i
		}
	}
	m.cursor = clampCursor(m.rows, m.cursor)
}

func (m appModel) cursorRow() (sidebarRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return sidebarRow{}, false
	}
	return m.rows[m.cursor], true
}

// targetPageID is the page an action applies to: the row under the sidebar cursor
// when the sidebar has focus, otherwise the open page.
func (m appModel) targetPageID() string {
	if m.focus == focusSidebar && !m.st.UI().SidebarCollapsed {
		if r, ok := m.cursorRow(); ok && r.isPage() {
			return r.id
		}
	}
	return m.st.UI().SelectedPage()
}

func (m appModel) sidebarWidth() int {
	if m.st.UI().SidebarCollapsed {
		return 0
	}
	w := m.opts.SidebarWidth
	if w > m.width/2 {
		w = m.width / 2
	}
	return w
}

func (m appModel) mainWidth() int {
	w := m.width - m.sidebarWidth()
	if m.sidebarWidth() > 0 {
		w-- // divider
	}
	return max(w, 10)
}

// bodyHeight is the main pane height below the top bar and above the footer.
func (m appModel) bodyHeight() int {
	return max(m.height-4, 3)
}

func (m *appModel) resize() {
	w := m.mainWidth() - 2
	m.view.Width = w
	m.view.Height = max(m.bodyHeight()-2, 1)
	m.textarea.SetWidth(w)
	m.textarea.SetHeight(max(m.bodyHeight()-3, 1))
	m.help.Width = m.width
	m.palInput.Width = modalBodyWidth(modalWidth(m.width)) - 4
	m.renameInput.Width = modalBodyWidth(modalWidth(m.width)) - 4
	m.viewPageID = "" // force a re-render at the new width
}

// syncPageView re-renders the page viewport when the selection, the page's
// content or the width changed.
func (m *appModel) syncPageView() {
	id := m.st.UI().SelectedPage()
	if id == "" {
		m.viewPageID = ""
		return
	}
	p, ok := m.st.GetPage(id)
	if !ok {
		return
	}
	if id == m.viewPageID && p.UpdatedAt.Equal(m.viewUpdatedAt) && m.view.Width == m.viewWidth {
		return
	}
	body := renderPageContent(p.Content, m.view.Width)
	if body == "" {
		body = styleMuted().Render("This page is empty. Press e to start writing.")
	}
	if m.viewPageID != id {
		m.view.GotoTop()
	}
	m.view.SetContent(body)
	m.viewPageID = id
	m.viewUpdatedAt = p.UpdatedAt
	m.viewWidth = m.view.Width
}

func (m *appModel) setFlash(msg string) tea.Cmd {
	m.flashSeq++
	m.flash = msg
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashClearMsg{seq: seq} })
}
