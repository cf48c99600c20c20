package store

import (
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"wikispace/internal/model"
)

// tickClock returns a clock that advances one second per call.
func tickClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	cur := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		cur = cur.Add(time.Second)
		return cur
	}
}

func newTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	base := []Option{WithClock(tickClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))}
	return New(append(base, opts...)...)
}

func pageIDs(pages []model.Page) []string {
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.ID)
	}
	return out
}

func TestNew_SeedsMockData(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if got := len(s.Spaces()); got != 4 {
		t.Fatalf("expected 4 spaces, got %d", got)
	}
	if got := len(s.Pages()); got != 14 {
		t.Fatalf("expected 14 pages, got %d", got)
	}
	ui := s.UI()
	if ui.SelectedSpace() != "space-1" {
		t.Fatalf("expected first space selected, got %q", ui.SelectedSpace())
	}
	if ui.SelectedPageID != nil || ui.SidebarCollapsed || ui.CommandPaletteOpen || len(ui.ExpandedNodes) != 0 {
		t.Fatalf("unexpected initial ui state: %#v", ui)
	}
}

func TestNew_InstancesDoNotShareState(t *testing.T) {
	t.Parallel()

	a := newTestStore(t)
	b := newTestStore(t)
	a.DeletePage("page-2")
	if _, ok := b.GetPage("page-2"); !ok {
		t.Fatalf("deleting from one store must not affect another")
	}
	if got := len(MockPages()); got != 14 {
		t.Fatalf("mock data mutated: %d pages", got)
	}
}

func TestGetSpaceAndPage_Miss(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if _, ok := s.GetSpace("space-404"); ok {
		t.Fatalf("expected space miss")
	}
	if _, ok := s.GetPage("page-404"); ok {
		t.Fatalf("expected page miss")
	}
	sp, ok := s.GetSpace("space-3")
	if !ok || sp.Name != "Design" {
		t.Fatalf("GetSpace(space-3) = %#v, %v", sp, ok)
	}
}

func TestGetPage_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	p, _ := s.GetPage("page-3")
	p.Title = "mutated"
	*p.ParentID = "page-1"

	again, _ := s.GetPage("page-3")
	if again.Title != "Database Schema" || again.Parent() != "page-2" {
		t.Fatalf("store state leaked through returned page: %#v", again)
	}
}

func TestGetPagesForSpace_InsertionOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	got := pageIDs(s.GetPagesForSpace("space-1"))
	want := []string{"page-1", "page-2", "page-3", "page-4", "page-5"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("pages for space-1: got %v want %v", got, want)
	}
	if again := pageIDs(s.GetPagesForSpace("space-1")); !reflect.DeepEqual(again, got) {
		t.Fatalf("order not stable across calls: %v vs %v", again, got)
	}
	if got := s.GetPagesForSpace("space-404"); len(got) != 0 {
		t.Fatalf("expected no pages for unknown space, got %v", pageIDs(got))
	}
}

func TestCreatePage_Defaults(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	p := s.CreatePage("space-2", "Draft", nil)

	if p.ID == "" || !strings.HasPrefix(p.ID, "page-") {
		t.Fatalf("expected generated page id, got %q", p.ID)
	}
	if p.ParentID != nil {
		t.Fatalf("expected root page, got parent %q", *p.ParentID)
	}
	if p.Content != "" || p.IsFavorite || p.Emoji != DefaultPageEmoji {
		t.Fatalf("unexpected defaults: %#v", p)
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt, got %v / %v", p.CreatedAt, p.UpdatedAt)
	}
	got, ok := s.GetPage(p.ID)
	if !ok || !reflect.DeepEqual(*got, p) {
		t.Fatalf("GetPage after create: %#v", got)
	}
	all := s.Pages()
	if all[len(all)-1].ID != p.ID {
		t.Fatalf("expected new page appended last")
	}
}

func TestCreatePageWith_IsOneCreation(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	p := s.CreatePageWith("space-1", "Launch", model.StringPtr("page-1"), model.PageUpdate{
		Content:    model.StringPtr("<p>go</p>"),
		Emoji:      model.StringPtr("🚀"),
		IsFavorite: model.BoolPtr(true),
		Title:      model.StringPtr("ignored"),
	})

	if p.Title != "Launch" || p.Content != "<p>go</p>" || p.Emoji != "🚀" || !p.IsFavorite || p.Parent() != "page-1" {
		t.Fatalf("unexpected page: %#v", p)
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt, got %v / %v", p.CreatedAt, p.UpdatedAt)
	}
	evs := s.RecentEvents(0)
	if len(evs) != 1 || evs[0].Type != model.EventPageCreate || evs[0].EntityID != p.ID {
		t.Fatalf("expected a single create event, got %#v", evs)
	}
}

func TestCreatePage_WithParentAppearsAsChild(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	parent := "page-7"
	p := s.CreatePage("space-2", "Search v2", &parent)
	parent = "mutated after call"

	if p.Parent() != "page-7" {
		t.Fatalf("parent id should be copied, got %q", p.Parent())
	}
	got := pageIDs(s.GetChildPages("page-7"))
	want := []string{"page-8", p.ID}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("children of page-7: got %v want %v", got, want)
	}
}

func TestCreatePage_UnknownReferencesAreAccepted(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	ghost := "page-ghost"
	p := s.CreatePage("space-404", "Orphan", &ghost)
	if _, ok := s.GetPage(p.ID); !ok {
		t.Fatalf("orphan page should still be stored")
	}
	for _, sp := range s.Spaces() {
		for _, n := range VisibleRows(s.Tree(sp.ID)) {
			if n.Page.ID == p.ID {
				t.Fatalf("orphan page must not appear in any space tree")
			}
		}
	}
}

func TestCreatePage_IDsAreUnique(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	seen := map[string]bool{}
	for _, p := range s.Pages() {
		seen[p.ID] = true
	}
	for i := 0; i < 200; i++ {
		p := s.CreatePage("space-1", "n", nil)
		if seen[p.ID] {
			t.Fatalf("duplicate id %q", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestUpdatePage_MergesAndBumpsUpdatedAt(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	before, _ := s.GetPage("page-5")

	if !s.UpdatePage("page-5", model.PageUpdate{Title: model.StringPtr("X")}) {
		t.Fatalf("expected update to match page-5")
	}
	after, _ := s.GetPage("page-5")
	if after.Title != "X" {
		t.Fatalf("title not merged: %q", after.Title)
	}
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("expected updatedAt to move forward: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
	if after.Content != before.Content || after.Emoji != before.Emoji || after.IsFavorite != before.IsFavorite {
		t.Fatalf("unrelated fields changed: %#v", after)
	}
	if !after.CreatedAt.Equal(before.CreatedAt) {
		t.Fatalf("createdAt must not change")
	}
}

func TestUpdatePage_EmptyUpdateStillTouches(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	before, _ := s.GetPage("page-1")
	s.UpdatePage("page-1", model.PageUpdate{})
	after, _ := s.GetPage("page-1")
	if !after.UpdatedAt.After(before.UpdatedAt) {
		t.Fatalf("expected updatedAt bump on empty update")
	}
}

func TestUpdatePage_MissIsNoop(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	before := s.Pages()
	if s.UpdatePage("page-404", model.PageUpdate{Title: model.StringPtr("X")}) {
		t.Fatalf("expected no match")
	}
	if !reflect.DeepEqual(before, s.Pages()) {
		t.Fatalf("pages changed on missed update")
	}
}

func TestUpdatePage_ReparentMovesChildIndex(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.UpdatePage("page-3", model.PageUpdate{Parent: &model.ParentUpdate{ID: model.StringPtr("page-1")}})
	if got := pageIDs(s.GetChildPages("page-2")); !reflect.DeepEqual(got, []string{"page-4"}) {
		t.Fatalf("children of page-2: %v", got)
	}
	if got := pageIDs(s.GetChildPages("page-1")); !reflect.DeepEqual(got, []string{"page-3"}) {
		t.Fatalf("children of page-1: %v", got)
	}

	s.UpdatePage("page-3", model.PageUpdate{Parent: &model.ParentUpdate{ID: nil}})
	p, _ := s.GetPage("page-3")
	if p.ParentID != nil {
		t.Fatalf("expected page-3 to become a root page")
	}
	if got := s.GetChildPages("page-1"); len(got) != 0 {
		t.Fatalf("expected page-1 to have no children, got %v", pageIDs(got))
	}
}

func TestToggleFavorite_TwiceRestoresAndKeepsUpdatedAt(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	orig, _ := s.GetPage("page-2")

	s.ToggleFavorite("page-2")
	mid, _ := s.GetPage("page-2")
	if mid.IsFavorite == orig.IsFavorite {
		t.Fatalf("expected favorite to flip")
	}
	if !mid.UpdatedAt.Equal(orig.UpdatedAt) {
		t.Fatalf("toggleFavorite must not touch updatedAt")
	}

	s.ToggleFavorite("page-2")
	end, _ := s.GetPage("page-2")
	if end.IsFavorite != orig.IsFavorite || !end.UpdatedAt.Equal(orig.UpdatedAt) {
		t.Fatalf("expected original state restored, got %#v", end)
	}
	if s.ToggleFavorite("page-404") {
		t.Fatalf("expected miss on unknown id")
	}
}

func TestDeletePage_Cascades(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	a := s.CreatePage("space-1", "A", nil)
	b := s.CreatePage("space-1", "B", &a.ID)
	c := s.CreatePage("space-1", "C", &b.ID)
	other := s.CreatePage("space-1", "Other", nil)

	removed := s.DeletePage(a.ID)
	if want := []string{a.ID, b.ID, c.ID}; !reflect.DeepEqual(removed, want) {
		t.Fatalf("removed: got %v want %v", removed, want)
	}
	for _, id := range []string{a.ID, b.ID, c.ID} {
		if _, ok := s.GetPage(id); ok {
			t.Fatalf("expected %s to be deleted", id)
		}
	}
	if _, ok := s.GetPage(other.ID); !ok {
		t.Fatalf("sibling page should survive")
	}
	if got := s.GetChildPages(a.ID); len(got) != 0 {
		t.Fatalf("child index still lists children of deleted page: %v", pageIDs(got))
	}
}

func TestDeletePage_SeedSubtree(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.DeletePage("page-2")
	got := pageIDs(s.GetPagesForSpace("space-1"))
	if want := []string{"page-1", "page-5"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("space-1 after delete: got %v want %v", got, want)
	}
	if got := len(s.Pages()); got != 11 {
		t.Fatalf("expected 11 pages left, got %d", got)
	}
}

func TestDeletePage_ClearsSelectionWhenAncestorDeleted(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	a := s.CreatePage("space-1", "A", nil)
	b := s.CreatePage("space-1", "B", &a.ID)
	s.SelectPage(b.ID)
	s.ToggleNode(a.ID)

	s.DeletePage(a.ID)
	ui := s.UI()
	if ui.SelectedPageID != nil {
		t.Fatalf("expected selection cleared, got %q", ui.SelectedPage())
	}
	if ui.SelectedSpace() != "space-1" {
		t.Fatalf("space selection should remain, got %q", ui.SelectedSpace())
	}
	if s.IsExpanded(a.ID) {
		t.Fatalf("expanded state for deleted page should be dropped")
	}
}

func TestDeletePage_KeepsUnrelatedSelection(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.SelectPage("page-1")
	s.DeletePage("page-2")
	if got := s.UI().SelectedPage(); got != "page-1" {
		t.Fatalf("unrelated selection changed: %q", got)
	}
}

func TestDeletePage_UnknownIsNoop(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	before := s.Pages()
	if removed := s.DeletePage("page-404"); len(removed) != 0 {
		t.Fatalf("expected nothing removed, got %v", removed)
	}
	if !reflect.DeepEqual(before, s.Pages()) {
		t.Fatalf("pages changed on unknown delete")
	}
}

func TestDeletePage_DeepChainIsIterative(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, WithEventLimit(0))
	root := s.CreatePage("space-1", "root", nil)
	parent := root.ID
	for i := 0; i < 5000; i++ {
		p := s.CreatePage("space-1", "n", &parent)
		parent = p.ID
	}
	removed := s.DeletePage(root.ID)
	if len(removed) != 5001 {
		t.Fatalf("expected 5001 removed, got %d", len(removed))
	}
	if got := len(s.Pages()); got != 14 {
		t.Fatalf("expected seed pages only, got %d", got)
	}
}

func TestSearchPages_CaseInsensitive(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	upper := pageIDs(s.SearchPages("ROADMAP"))
	lower := pageIDs(s.SearchPages("roadmap"))
	if !reflect.DeepEqual(upper, lower) {
		t.Fatalf("case sensitivity mismatch: %v vs %v", upper, lower)
	}
	if !reflect.DeepEqual(lower, []string{"page-6"}) {
		t.Fatalf("expected page-6 only, got %v", lower)
	}

	// Content-only hit.
	if got := pageIDs(s.SearchPages("crdts")); !reflect.DeepEqual(got, []string{"page-8"}) {
		t.Fatalf("content search: %v", got)
	}
	if got := s.SearchPages("no such phrase anywhere"); len(got) != 0 {
		t.Fatalf("expected no results, got %v", pageIDs(got))
	}
	if got := len(s.SearchPages("")); got != 14 {
		t.Fatalf("empty query should match every page, got %d", got)
	}
}

func TestSelectPage_SetsSpace(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if !s.SelectPage("page-10") {
		t.Fatalf("expected page-10 to be found")
	}
	ui := s.UI()
	if ui.SelectedPage() != "page-10" || ui.SelectedSpace() != "space-3" {
		t.Fatalf("unexpected selection: %#v", ui)
	}

	if s.SelectPage("page-404") {
		t.Fatalf("expected miss")
	}
	if again := s.UI(); again.SelectedPage() != "page-10" || again.SelectedSpace() != "space-3" {
		t.Fatalf("miss must not change selection: %#v", again)
	}
}

func TestSelectSpace_ClearsPage(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.SelectPage("page-6")
	id := "space-4"
	s.SelectSpace(&id)
	ui := s.UI()
	if ui.SelectedSpace() != "space-4" || ui.SelectedPageID != nil {
		t.Fatalf("unexpected selection: %#v", ui)
	}
	s.SelectSpace(nil)
	if s.UI().SelectedSpaceID != nil {
		t.Fatalf("expected space cleared")
	}
}

func TestToggles(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.ToggleSidebar()
	s.ToggleCommandPalette()
	s.ToggleNode("page-2")
	s.ToggleNode("page-9")
	ui := s.UI()
	if !ui.SidebarCollapsed || !ui.CommandPaletteOpen {
		t.Fatalf("expected both flags set: %#v", ui)
	}
	if !reflect.DeepEqual(ui.ExpandedNodes, []string{"page-2", "page-9"}) {
		t.Fatalf("expanded: %v", ui.ExpandedNodes)
	}
	s.ToggleNode("page-2")
	if s.IsExpanded("page-2") || !s.IsExpanded("page-9") {
		t.Fatalf("toggleNode should remove page-2 only")
	}
}

func TestCommandPalette_Transitions(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.CloseCommandPalette()
	if s.UI().CommandPaletteOpen {
		t.Fatalf("closing a closed palette must keep it closed")
	}
	s.OpenCommandPalette()
	if !s.UI().CommandPaletteOpen {
		t.Fatalf("expected open")
	}
	if !s.SelectFromPalette("page-12") {
		t.Fatalf("expected page-12 to be selectable")
	}
	ui := s.UI()
	if ui.CommandPaletteOpen || ui.SelectedPage() != "page-12" || ui.SelectedSpace() != "space-4" {
		t.Fatalf("select-then-close failed: %#v", ui)
	}

	s.OpenCommandPalette()
	if s.SelectFromPalette("page-404") {
		t.Fatalf("expected miss")
	}
	if got := s.UI(); got.CommandPaletteOpen || got.SelectedPage() != "page-12" {
		t.Fatalf("palette should close and keep selection on miss: %#v", got)
	}
}

func TestRecentEvents_NewestFirstAndBounded(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, WithEventLimit(3))
	p := s.CreatePage("space-1", "a", nil)
	s.UpdatePage(p.ID, model.PageUpdate{Title: model.StringPtr("b")})
	s.ToggleFavorite(p.ID)
	s.DeletePage(p.ID)

	evs := s.RecentEvents(0)
	if len(evs) != 3 {
		t.Fatalf("expected 3 events, got %d", len(evs))
	}
	wantTypes := []model.EventType{model.EventPageDelete, model.EventPageFavorite, model.EventPageUpdate}
	for i, ev := range evs {
		if ev.Type != wantTypes[i] || ev.EntityID != p.ID {
			t.Fatalf("event %d: got %s/%s", i, ev.Type, ev.EntityID)
		}
	}
	if got := s.RecentEvents(1); len(got) != 1 || got[0].Type != model.EventPageDelete {
		t.Fatalf("RecentEvents(1) = %#v", got)
	}
}

func TestEndToEnd_CreateInSeededSpace(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	p := s.CreatePage("space-1", "Notes", nil)
	if p.SpaceID != "space-1" || p.ParentID != nil || p.ID == "" {
		t.Fatalf("unexpected page: %#v", p)
	}
	if got := len(s.GetPagesForSpace("space-1")); got != 6 {
		t.Fatalf("expected 6 pages in space-1, got %d", got)
	}
}

func TestStore_ConcurrentReadersAndWriter(t *testing.T) {
	t.Parallel()

	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.SearchPages("guide")
				_ = s.Tree("space-1")
			}
		}()
	}
	for j := 0; j < 100; j++ {
		s.UpdatePage("page-1", model.PageUpdate{Content: model.StringPtr("<p>rev</p>")})
	}
	wg.Wait()
}
