package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down     key.Binding
	Open         key.Binding
	Expand       key.Binding
	Focus        key.Binding
	Palette      key.Binding
	Sidebar      key.Binding
	Dashboard    key.Binding
	NewPage      key.Binding
	NewChild     key.Binding
	Favorite     key.Binding
	Delete       key.Binding
	Edit         key.Binding
	Rename       key.Binding
	PrevSpace    key.Binding
	NextSpace    key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Help         key.Binding
	Quit         key.Binding
	Save         key.Binding
	Back         key.Binding
	PaletteUp    key.Binding
	PaletteDown  key.Binding
	ConfirmYes   key.Binding
	ConfirmNo    key.Binding
	ToggleChoice key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Expand:       key.NewBinding(key.WithKeys(" ", "right", "l"), key.WithHelp("space", "expand")),
		Focus:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Palette:      key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "palette")),
		Sidebar:      key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "sidebar")),
		Dashboard:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "dashboard")),
		NewPage:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new page")),
		NewChild:     key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "new child")),
		Favorite:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Delete:       key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Rename:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		PrevSpace:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev space")),
		NextSpace:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next space")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "scroll up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "scroll down")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Save:         key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save now")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		PaletteUp:    key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "prev")),
		PaletteDown:  key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next")),
		ConfirmYes:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		ConfirmNo:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		ToggleChoice: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab", "switch")),
	}
}

// browseKeys is the help.KeyMap shown while browsing.
type browseKeys struct{ k keyMap }

func (b browseKeys) ShortHelp() []key.Binding {
	return []key.Binding{b.k.Palette, b.k.Open, b.k.NewPage, b.k.Edit, b.k.Help, b.k.Quit}
}

func (b browseKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{b.k.Up, b.k.Down, b.k.Open, b.k.Expand, b.k.Focus},
		{b.k.Palette, b.k.Sidebar, b.k.Dashboard, b.k.PrevSpace, b.k.NextSpace},
		{b.k.NewPage, b.k.NewChild, b.k.Edit, b.k.Rename, b.k.Favorite, b.k.Delete},
		{b.k.PageUp, b.k.PageDown, b.k.Help, b.k.Quit},
	}
}

// editKeys is the help.KeyMap shown while editing.
type editKeys struct{ k keyMap }

func (e editKeys) ShortHelp() []key.Binding {
	return []key.Binding{e.k.Save, e.k.Back}
}

func (e editKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{e.ShortHelp()}
}
