package store

import (
	"sort"

	"github.com/sirupsen/logrus"
)

type uiState struct {
	selectedSpaceID    *string
	selectedPageID     *string
	sidebarCollapsed   bool
	commandPaletteOpen bool
	expanded           map[string]bool
}

func newUIState() uiState {
	return uiState{expanded: map[string]bool{}}
}

// UIState is a snapshot of the session state. It is never persisted.
type UIState struct {
	SelectedSpaceID    *string  `json:"selectedSpaceId"`
	SelectedPageID     *string  `json:"selectedPageId"`
	SidebarCollapsed   bool     `json:"isSidebarCollapsed"`
	CommandPaletteOpen bool     `json:"isCommandPaletteOpen"`
	ExpandedNodes      []string `json:"expandedNodes"`
}

func (u UIState) SelectedSpace() string {
	if u.SelectedSpaceID == nil {
		return ""
	}
	return *u.SelectedSpaceID
}

func (u UIState) SelectedPage() string {
	if u.SelectedPageID == nil {
		return ""
	}
	return *u.SelectedPageID
}

func (s *Store) UI() UIState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := UIState{
		SidebarCollapsed:   s.ui.sidebarCollapsed,
		CommandPaletteOpen: s.ui.commandPaletteOpen,
		ExpandedNodes:      make([]string, 0, len(s.ui.expanded)),
	}
	if s.ui.selectedSpaceID != nil {
		id := *s.ui.selectedSpaceID
		out.SelectedSpaceID = &id
	}
	if s.ui.selectedPageID != nil {
		id := *s.ui.selectedPageID
		out.SelectedPageID = &id
	}
	for id := range s.ui.expanded {
		out.ExpandedNodes = append(out.ExpandedNodes, id)
	}
	sort.Strings(out.ExpandedNodes)
	return out
}

// SelectSpace sets the selected space (nil clears it) and always leaves page view.
func (s *Store) SelectSpace(id *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		s.ui.selectedSpaceID = nil
	} else {
		v := *id
		s.ui.selectedSpaceID = &v
	}
	s.ui.selectedPageID = nil
}

// SelectPage selects an existing page and its space. Unknown ids change nothing.
func (s *Store) SelectPage(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectPageLocked(id)
}

func (s *Store) selectPageLocked(id string) bool {
	p, ok := s.findPageLocked(id)
	if !ok {
		return false
	}
	pid := p.ID
	sid := p.SpaceID
	s.ui.selectedPageID = &pid
	s.ui.selectedSpaceID = &sid
	return true
}

// ClearPageSelection returns to the dashboard without changing the selected space.
func (s *Store) ClearPageSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.selectedPageID = nil
}

func (s *Store) ToggleSidebar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.sidebarCollapsed = !s.ui.sidebarCollapsed
}

func (s *Store) ToggleCommandPalette() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.commandPaletteOpen = !s.ui.commandPaletteOpen
	s.log.WithField("open", s.ui.commandPaletteOpen).Trace("command palette toggled")
}

func (s *Store) OpenCommandPalette() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.commandPaletteOpen = true
}

// CloseCommandPalette is the escape transition. Closing a closed palette is a no-op.
func (s *Store) CloseCommandPalette() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui.commandPaletteOpen = false
}

// SelectFromPalette selects a page and closes the palette as one transition. The
// palette closes even when the page vanished in the meantime.
func (s *Store) SelectFromPalette(pageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.selectPageLocked(pageID)
	s.ui.commandPaletteOpen = false
	s.log.WithFields(logrus.Fields{"page": pageID, "found": ok}).Trace("palette selection")
	return ok
}

func (s *Store) ToggleNode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ui.expanded[id] {
		delete(s.ui.expanded, id)
		return
	}
	s.ui.expanded[id] = true
}

func (s *Store) IsExpanded(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ui.expanded[id]
}
