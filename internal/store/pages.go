package store

import (
	"strings"

	"wikispace/internal/model"

	"github.com/sirupsen/logrus"
)

// DefaultPageEmoji is the glyph every new page starts with.
const DefaultPageEmoji = "📄"

func (s *Store) Pages() []model.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePages(s.pages)
}

func (s *Store) GetPage(id string) (*model.Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.findPageLocked(id)
	if !ok {
		return nil, false
	}
	cp := clonePage(*p)
	return &cp, true
}

// GetPagesForSpace returns the space's pages in collection order.
func (s *Store) GetPagesForSpace(spaceID string) []model.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(p model.Page) bool { return p.SpaceID == spaceID })
}

// GetChildPages returns the direct children of parentID in collection order.
func (s *Store) GetChildPages(parentID string) []model.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.childrenLocked(parentID)
}

// RootPages returns the pages of a space that have no parent.
func (s *Store) RootPages(spaceID string) []model.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(p model.Page) bool { return p.SpaceID == spaceID && p.ParentID == nil })
}

func (s *Store) Favorites() []model.Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(p model.Page) bool { return p.IsFavorite })
}

// SearchPages matches query as a case-insensitive substring of title or content.
// An empty query matches every page; callers wanting a different empty-state handle
// that themselves.
func (s *Store) SearchPages(query string) []model.Page {
	q := strings.ToLower(query)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterLocked(func(p model.Page) bool {
		return strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Content), q)
	})
}

// CreatePage appends a new page and returns it. spaceID and parentID are not checked
// against existing entities; passing unknown ids yields a page no tree will show.
func (s *Store) CreatePage(spaceID, title string, parentID *string) model.Page {
	return s.CreatePageWith(spaceID, title, parentID, model.PageUpdate{})
}

// CreatePageWith is CreatePage with initial content, emoji and favourite flag taken
// from initial. It is still one creation: UpdatedAt equals CreatedAt and a single
// create event is recorded. The other fields of initial are ignored.
func (s *Store) CreatePageWith(spaceID, title string, parentID *string, initial model.PageUpdate) model.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	p := model.Page{
		ID:        s.newID(s.pageExistsLocked),
		SpaceID:   spaceID,
		Title:     title,
		Content:   "",
		Emoji:     DefaultPageEmoji,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if parentID != nil {
		pid := *parentID
		p.ParentID = &pid
	}
	if initial.Content != nil {
		p.Content = *initial.Content
	}
	if initial.Emoji != nil {
		p.Emoji = *initial.Emoji
	}
	if initial.IsFavorite != nil {
		p.IsFavorite = *initial.IsFavorite
	}

	s.pages = append(s.pages, p)
	s.pageIdx[p.ID] = len(s.pages) - 1
	if p.ParentID != nil {
		s.idxChildrenByParent[*p.ParentID] = append(s.idxChildrenByParent[*p.ParentID], p.ID)
	}

	s.recordLocked(model.EventPageCreate, p.ID, map[string]any{"spaceId": spaceID, "title": title, "parentId": p.ParentID})
	s.log.WithFields(logrus.Fields{"page": p.ID, "space": spaceID, "parent": p.Parent()}).Debug("page created")
	return clonePage(p)
}

// UpdatePage merges u into the page and refreshes UpdatedAt. Unknown ids are ignored;
// the return value reports whether a page matched.
func (s *Store) UpdatePage(id string, u model.PageUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findPageLocked(id)
	if !ok {
		return false
	}

	reindex := false
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Emoji != nil {
		p.Emoji = *u.Emoji
	}
	if u.SpaceID != nil {
		p.SpaceID = *u.SpaceID
	}
	if u.IsFavorite != nil {
		p.IsFavorite = *u.IsFavorite
	}
	if u.Parent != nil {
		if u.Parent.ID == nil {
			p.ParentID = nil
		} else {
			pid := *u.Parent.ID
			p.ParentID = &pid
		}
		reindex = true
	}
	p.UpdatedAt = s.now()

	if reindex {
		s.rebuildIndexLocked()
	}

	s.recordLocked(model.EventPageUpdate, id, updatedFields(u))
	s.log.WithFields(logrus.Fields{"page": id, "fields": updatedFields(u)}).Debug("page updated")
	return true
}

// DeletePage removes the page and its whole subtree. If the selected page is removed
// the selection is cleared. Returns the removed ids (empty when id is unknown).
func (s *Store) DeletePage(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pageIdx[id]; !ok {
		return []string{}
	}

	removed := s.subtreeLocked(id)
	drop := make(map[string]bool, len(removed))
	for _, rid := range removed {
		drop[rid] = true
	}

	kept := s.pages[:0]
	for _, p := range s.pages {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	// Clear the tail so removed pages are not retained by the backing array.
	for i := len(kept); i < len(s.pages); i++ {
		s.pages[i] = model.Page{}
	}
	s.pages = kept
	s.rebuildIndexLocked()

	if s.ui.selectedPageID != nil && drop[*s.ui.selectedPageID] {
		s.ui.selectedPageID = nil
	}
	for _, rid := range removed {
		delete(s.ui.expanded, rid)
	}

	s.recordLocked(model.EventPageDelete, id, map[string]any{"removed": removed})
	s.log.WithFields(logrus.Fields{"page": id, "removed": len(removed)}).Debug("page deleted")
	return removed
}

// ToggleFavorite flips the favorite flag. It deliberately leaves UpdatedAt alone.
func (s *Store) ToggleFavorite(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findPageLocked(id)
	if !ok {
		return false
	}
	p.IsFavorite = !p.IsFavorite

	s.recordLocked(model.EventPageFavorite, id, map[string]any{"isFavorite": p.IsFavorite})
	s.log.WithFields(logrus.Fields{"page": id, "favorite": p.IsFavorite}).Debug("favorite toggled")
	return true
}

func (s *Store) pageExistsLocked(id string) bool {
	_, ok := s.pageIdx[id]
	return ok
}

func (s *Store) filterLocked(keep func(model.Page) bool) []model.Page {
	out := []model.Page{}
	for _, p := range s.pages {
		if keep(p) {
			out = append(out, clonePage(p))
		}
	}
	return out
}

func updatedFields(u model.PageUpdate) []string {
	var fields []string
	if u.Title != nil {
		fields = append(fields, "title")
	}
	if u.Content != nil {
		fields = append(fields, "content")
	}
	if u.Emoji != nil {
		fields = append(fields, "emoji")
	}
	if u.SpaceID != nil {
		fields = append(fields, "spaceId")
	}
	if u.Parent != nil {
		fields = append(fields, "parentId")
	}
	if u.IsFavorite != nil {
		fields = append(fields, "isFavorite")
	}
	return fields
}
