package dashboard

import (
	"sort"
	"time"

	"wikispace/internal/content"
	"wikispace/internal/model"
	"wikispace/internal/store"

	"github.com/dustin/go-humanize"
)

const (
	RecentLimit   = 6
	ActivityLimit = 10
	UntitledTitle = "Untitled"
)

type PageCard struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Emoji      string `json:"emoji"`
	SpaceID    string `json:"spaceId"`
	SpaceName  string `json:"spaceName"`
	Excerpt    string `json:"excerpt"`
	UpdatedAt  string `json:"updatedAt"`
	UpdatedAgo string `json:"updatedAgo"`
	IsFavorite bool   `json:"isFavorite"`
}

type SpaceCount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Pages int    `json:"pages"`
}

type Activity struct {
	Type     model.EventType `json:"type"`
	EntityID string          `json:"entityId"`
	Title    string          `json:"title,omitempty"`
	Ago      string          `json:"ago"`
}

type Summary struct {
	TotalPages  int          `json:"totalPages"`
	TotalSpaces int          `json:"totalSpaces"`
	Favorites   int          `json:"favorites"`
	Recent      []PageCard   `json:"recent"`
	Starred     []PageCard   `json:"starred"`
	Spaces      []SpaceCount `json:"spaces"`
	Activity    []Activity   `json:"activity"`
}

// Summarize derives the dashboard from a store snapshot. now only feeds the
// relative-time labels.
func Summarize(st *store.Store, now time.Time) Summary {
	spaces := st.Spaces()
	pages := st.Pages()

	names := make(map[string]string, len(spaces))
	counts := make(map[string]int, len(spaces))
	for _, sp := range spaces {
		names[sp.ID] = sp.Name
	}
	for _, p := range pages {
		counts[p.SpaceID]++
	}

	out := Summary{
		TotalPages:  len(pages),
		TotalSpaces: len(spaces),
		Recent:      []PageCard{},
		Starred:     []PageCard{},
		Spaces:      make([]SpaceCount, 0, len(spaces)),
		Activity:    []Activity{},
	}

	for _, p := range RecentPages(pages, RecentLimit) {
		out.Recent = append(out.Recent, card(p, names, now))
	}
	for _, p := range st.Favorites() {
		out.Starred = append(out.Starred, card(p, names, now))
	}
	out.Favorites = len(out.Starred)

	for _, sp := range spaces {
		out.Spaces = append(out.Spaces, SpaceCount{ID: sp.ID, Name: sp.Name, Icon: sp.Icon, Pages: counts[sp.ID]})
	}

	for _, ev := range st.RecentEvents(ActivityLimit) {
		a := Activity{Type: ev.Type, EntityID: ev.EntityID, Ago: humanize.RelTime(ev.TS, now, "ago", "from now")}
		if p, ok := st.GetPage(ev.EntityID); ok {
			a.Title = p.Title
		}
		out.Activity = append(out.Activity, a)
	}
	return out
}

// RecentPages returns up to n pages, most recently updated first. Ties keep store order.
func RecentPages(pages []model.Page, n int) []model.Page {
	sorted := make([]model.Page, len(pages))
	copy(sorted, pages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func card(p model.Page, names map[string]string, now time.Time) PageCard {
	return PageCard{
		ID:         p.ID,
		Title:      p.Title,
		Emoji:      p.Emoji,
		SpaceID:    p.SpaceID,
		SpaceName:  names[p.SpaceID],
		Excerpt:    content.Excerpt(p.Content, 120),
		UpdatedAt:  p.UpdatedAt.UTC().Format(time.RFC3339),
		UpdatedAgo: humanize.RelTime(p.UpdatedAt, now, "ago", "from now"),
		IsFavorite: p.IsFavorite,
	}
}

// CreateUntitled is the dashboard's quick create: a root "Untitled" page in the first
// space, selected afterwards. ok is false when there are no spaces.
func CreateUntitled(st *store.Store) (model.Page, bool) {
	spaces := st.Spaces()
	if len(spaces) == 0 {
		return model.Page{}, false
	}
	return createIn(st, spaces[0].ID), true
}

// CreateUntitledInSelected is the top bar's variant: the selected space wins, the first
// space is the fallback.
func CreateUntitledInSelected(st *store.Store) (model.Page, bool) {
	if id := st.UI().SelectedSpace(); id != "" {
		if _, ok := st.GetSpace(id); ok {
			return createIn(st, id), true
		}
	}
	return CreateUntitled(st)
}

func createIn(st *store.Store, spaceID string) model.Page {
	p := st.CreatePage(spaceID, UntitledTitle, nil)
	st.SelectPage(p.ID)
	return p
}
