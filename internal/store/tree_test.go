package store

import (
	"reflect"
	"testing"

	"wikispace/internal/model"
)

func collectIDs(forest []*model.TreeNode) []string {
	var out []string
	var walk func(ns []*model.TreeNode)
	walk = func(ns []*model.TreeNode) {
		for _, n := range ns {
			out = append(out, n.Page.ID)
			walk(n.Children)
		}
	}
	walk(forest)
	return out
}

func TestGetChildPages_MatchesParentRelation(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	for _, parent := range s.Pages() {
		want := []string{}
		for _, p := range s.Pages() {
			if p.Parent() == parent.ID {
				want = append(want, p.ID)
			}
		}
		if got := pageIDs(s.GetChildPages(parent.ID)); !reflect.DeepEqual(got, want) {
			t.Fatalf("children of %s: got %v want %v", parent.ID, got, want)
		}
	}
	if got := s.GetChildPages(""); len(got) != 0 {
		t.Fatalf("empty parent id should match nothing, got %v", pageIDs(got))
	}
}

func TestTree_NoRevisitsAndFullCoverage(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	a := s.CreatePage("space-3", "Icons", model.StringPtr("page-9"))
	s.CreatePage("space-3", "Glyph sizes", &a.ID)

	for _, sp := range s.Spaces() {
		ids := collectIDs(s.Tree(sp.ID))
		seen := map[string]bool{}
		for _, id := range ids {
			if seen[id] {
				t.Fatalf("space %s: id %s visited twice", sp.ID, id)
			}
			seen[id] = true
		}
		if got, want := len(ids), len(s.GetPagesForSpace(sp.ID)); got != want {
			t.Fatalf("space %s: tree has %d pages, space has %d", sp.ID, got, want)
		}
	}
}

func TestTree_DepthAndExpansion(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	forest := s.Tree("space-1")
	if got := collectIDs(forest); !reflect.DeepEqual(got, []string{"page-1", "page-2", "page-3", "page-4", "page-5"}) {
		t.Fatalf("tree order: %v", got)
	}

	rows := VisibleRows(forest)
	if got := len(rows); got != 3 {
		t.Fatalf("collapsed tree should show 3 root rows, got %d", got)
	}

	s.ToggleNode("page-2")
	rows = VisibleRows(s.Tree("space-1"))
	var ids []string
	var depths []int
	for _, r := range rows {
		ids = append(ids, r.Page.ID)
		depths = append(depths, r.Depth)
	}
	if !reflect.DeepEqual(ids, []string{"page-1", "page-2", "page-3", "page-4", "page-5"}) {
		t.Fatalf("expanded rows: %v", ids)
	}
	if !reflect.DeepEqual(depths, []int{0, 0, 1, 1, 0}) {
		t.Fatalf("depths: %v", depths)
	}
}

func TestTree_CycleInSeedDoesNotLoop(t *testing.T) {
	t.Parallel()

	s := New(WithSeed(
		[]model.Space{{ID: "sp"}},
		[]model.Page{
			{ID: "root", SpaceID: "sp"},
			{ID: "x", SpaceID: "sp", ParentID: model.StringPtr("y")},
			{ID: "y", SpaceID: "sp", ParentID: model.StringPtr("x")},
		},
	))
	if got := collectIDs(s.Tree("sp")); !reflect.DeepEqual(got, []string{"root"}) {
		t.Fatalf("tree: %v", got)
	}
	if got := s.DeletePage("x"); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Fatalf("delete of cyclic pair: %v", got)
	}
}

func TestDescendantsAndAncestors(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	leaf := s.CreatePage("space-1", "Indexes", model.StringPtr("page-3"))

	if got := s.Descendants("page-2"); !reflect.DeepEqual(got, []string{"page-3", leaf.ID, "page-4"}) {
		t.Fatalf("descendants: %v", got)
	}
	if got := s.Descendants("page-404"); len(got) != 0 {
		t.Fatalf("descendants of unknown: %v", got)
	}
	if got := pageIDs(s.Ancestors(leaf.ID)); !reflect.DeepEqual(got, []string{"page-2", "page-3"}) {
		t.Fatalf("ancestors: %v", got)
	}
	if got := s.Ancestors("page-1"); len(got) != 0 {
		t.Fatalf("root page has no ancestors: %v", pageIDs(got))
	}
}
