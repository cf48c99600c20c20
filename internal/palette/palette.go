package palette

import (
	"strings"

	"wikispace/internal/dashboard"
	"wikispace/internal/model"
	"wikispace/internal/store"

	"github.com/sahilm/fuzzy"
)

const (
	FavoritesLimit = 6
	ResultsLimit   = 10

	SectionFavorites = "Favorites"
	SectionSpaces    = "Spaces"
	SectionResults   = "Results"
	SectionCommands  = "Commands"
)

type Kind string

const (
	KindPage    Kind = "page"
	KindSpace   Kind = "space"
	KindCommand Kind = "command"
)

type Entry struct {
	Kind    Kind   `json:"kind"`
	Section string `json:"section"`
	ID      string `json:"id"`
	Label   string `json:"label"`
	Icon    string `json:"icon,omitempty"`
	Hint    string `json:"hint,omitempty"`

	// MatchedIndexes are label rune positions hit by the fuzzy matcher (commands only).
	MatchedIndexes []int `json:"-"`
}

// Outcome reports what a choice did so the caller can move focus.
type Outcome struct {
	PageID    string
	SpaceID   string
	CommandID string
	// Dashboard is set when the choice left page view.
	Dashboard bool
	Closed    bool
}

type command struct {
	id       string
	label    string
	icon     string
	keywords string
	run      func(st *store.Store) Outcome
}

// Palette holds the query and cursor for one open palette. The open/closed flag
// itself lives in the store's UI state.
type Palette struct {
	st      *store.Store
	query   string
	entries []Entry
	cursor  int
}

func New(st *store.Store) *Palette {
	p := &Palette{st: st}
	p.refresh()
	return p
}

// Reset clears the query and cursor, for reopening.
func (p *Palette) Reset() {
	p.query = ""
	p.cursor = 0
	p.refresh()
}

func (p *Palette) Query() string { return p.query }

func (p *Palette) SetQuery(q string) {
	p.query = q
	p.refresh()
	p.cursor = 0
}

func (p *Palette) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

func (p *Palette) Cursor() int { return p.cursor }

// Move shifts the cursor by delta, clamped to the entries.
func (p *Palette) Move(delta int) {
	p.cursor += delta
	if p.cursor >= len(p.entries) {
		p.cursor = len(p.entries) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *Palette) Selected() (Entry, bool) {
	if p.cursor < 0 || p.cursor >= len(p.entries) {
		return Entry{}, false
	}
	return p.entries[p.cursor], true
}

// ChooseSelected chooses the entry under the cursor. With no entries it only closes.
func (p *Palette) ChooseSelected() Outcome {
	e, ok := p.Selected()
	if !ok {
		p.st.CloseCommandPalette()
		return Outcome{Closed: true}
	}
	return p.Choose(e)
}

// Choose applies an entry. Every choice closes the palette.
func (p *Palette) Choose(e Entry) Outcome {
	switch e.Kind {
	case KindPage:
		p.st.SelectFromPalette(e.ID)
		return Outcome{PageID: e.ID, Closed: true}
	case KindSpace:
		id := e.ID
		p.st.SelectSpace(&id)
		p.st.CloseCommandPalette()
		return Outcome{SpaceID: id, Dashboard: true, Closed: true}
	case KindCommand:
		out := Outcome{CommandID: e.ID}
		if c, ok := p.command(e.ID); ok {
			out = c.run(p.st)
			out.CommandID = e.ID
		}
		p.st.CloseCommandPalette()
		out.Closed = true
		return out
	}
	p.st.CloseCommandPalette()
	return Outcome{Closed: true}
}

// Results computes entries for a query without touching palette state.
func Results(st *store.Store, query string) []Entry {
	query = strings.TrimSpace(query)
	spaces := st.Spaces()
	names := spaceNames(spaces)

	var out []Entry
	if query == "" {
		for i, pg := range st.Favorites() {
			if i == FavoritesLimit {
				break
			}
			out = append(out, pageEntry(pg, SectionFavorites, names))
		}
		for _, sp := range spaces {
			out = append(out, Entry{Kind: KindSpace, Section: SectionSpaces, ID: sp.ID, Label: sp.Name, Icon: sp.Icon, Hint: sp.Description})
		}
		for _, c := range staticCommands() {
			out = append(out, Entry{Kind: KindCommand, Section: SectionCommands, ID: c.id, Label: c.label, Icon: c.icon})
		}
		return out
	}

	for i, pg := range st.SearchPages(query) {
		if i == ResultsLimit {
			break
		}
		out = append(out, pageEntry(pg, SectionResults, names))
	}

	cmds := allCommands(spaces)
	for _, m := range fuzzy.FindFrom(query, commandSource(cmds)) {
		c := cmds[m.Index]
		e := Entry{Kind: KindCommand, Section: SectionCommands, ID: c.id, Label: c.label, Icon: c.icon}
		for _, idx := range m.MatchedIndexes {
			if idx < len([]rune(c.label)) {
				e.MatchedIndexes = append(e.MatchedIndexes, idx)
			}
		}
		out = append(out, e)
	}
	return out
}

func (p *Palette) refresh() {
	p.entries = Results(p.st, p.query)
	p.Move(0)
}

func (p *Palette) command(id string) (command, bool) {
	for _, c := range allCommands(p.st.Spaces()) {
		if c.id == id {
			return c, true
		}
	}
	return command{}, false
}

func pageEntry(pg model.Page, section string, names map[string]string) Entry {
	return Entry{Kind: KindPage, Section: section, ID: pg.ID, Label: pg.Title, Icon: pg.Emoji, Hint: names[pg.SpaceID]}
}

func spaceNames(spaces []model.Space) map[string]string {
	out := make(map[string]string, len(spaces))
	for _, sp := range spaces {
		out[sp.ID] = sp.Name
	}
	return out
}

const (
	CommandNewPage       = "new-page"
	CommandToggleSidebar = "toggle-sidebar"
	CommandDashboard     = "dashboard"
	commandSpacePrefix   = "space:"
)

func staticCommands() []command {
	return []command{
		{
			id: CommandNewPage, label: "New page", icon: "+", keywords: "create add untitled",
			run: func(st *store.Store) Outcome {
				pg, ok := dashboard.CreateUntitledInSelected(st)
				if !ok {
					return Outcome{}
				}
				return Outcome{PageID: pg.ID}
			},
		},
		{
			id: CommandToggleSidebar, label: "Toggle sidebar", icon: "⇤", keywords: "hide show collapse",
			run: func(st *store.Store) Outcome {
				st.ToggleSidebar()
				return Outcome{}
			},
		},
		{
			id: CommandDashboard, label: "Go to dashboard", icon: "⌂", keywords: "home overview",
			run: func(st *store.Store) Outcome {
				st.ClearPageSelection()
				return Outcome{Dashboard: true}
			},
		},
	}
}

// allCommands adds one jump command per space to the static set.
func allCommands(spaces []model.Space) []command {
	out := staticCommands()
	for _, sp := range spaces {
		id := sp.ID
		out = append(out, command{
			id:       commandSpacePrefix + id,
			label:    "Go to space: " + sp.Name,
			icon:     sp.Icon,
			keywords: "jump switch",
			run: func(st *store.Store) Outcome {
				st.SelectSpace(&id)
				return Outcome{SpaceID: id, Dashboard: true}
			},
		})
	}
	return out
}

type commandSource []command

func (c commandSource) Len() int { return len(c) }

func (c commandSource) String(i int) string {
	return c[i].label + " " + c[i].keywords
}
