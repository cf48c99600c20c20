package store

import (
	"sync"
	"time"

	"wikispace/internal/logging"
	"wikispace/internal/model"

	"github.com/sirupsen/logrus"
)

const defaultEventLimit = 200

// Store owns every space, page and piece of UI state. Construct one with New and pass
// it by pointer to whatever needs it; there is no package-level instance.
//
// All methods are safe to call from the editor's debounce goroutine as well as from
// the UI loop. Values handed out are copies.
type Store struct {
	mu sync.RWMutex

	spaces []model.Space
	pages  []model.Page

	// Derived indexes. Rebuilt whenever the page slice is compacted or a parent changes.
	pageIdx             map[string]int
	idxChildrenByParent map[string][]string

	ui uiState

	events     []model.Event
	eventLimit int

	now   func() time.Time
	newID func(exists func(string) bool) string
	log   *logrus.Entry
}

type Option func(*Store)

// WithSeed replaces the built-in demo data.
func WithSeed(spaces []model.Space, pages []model.Page) Option {
	return func(s *Store) {
		s.spaces = cloneSpaces(spaces)
		s.pages = clonePages(pages)
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides page id generation. The generator must return ids that
// do not collide with existing pages.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = func(func(string) bool) string { return gen() }
		}
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithEventLimit bounds the in-memory activity feed. n <= 0 disables it.
func WithEventLimit(n int) Option {
	return func(s *Store) { s.eventLimit = n }
}

// New builds a store seeded with MockSpaces/MockPages unless WithSeed is given.
// The first space is selected initially.
func New(opts ...Option) *Store {
	s := &Store{
		spaces:     MockSpaces(),
		pages:      MockPages(),
		eventLimit: defaultEventLimit,
		now:        time.Now,
		newID:      newPageID,
		log:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ui = newUIState()
	if len(s.spaces) > 0 {
		id := s.spaces[0].ID
		s.ui.selectedSpaceID = &id
	}
	s.rebuildIndexLocked()
	return s
}

// Empty builds a store with no spaces or pages.
func Empty(opts ...Option) *Store {
	return New(append([]Option{WithSeed(nil, nil)}, opts...)...)
}

func (s *Store) Spaces() []model.Space {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSpaces(s.spaces)
}

func (s *Store) GetSpace(id string) (*model.Space, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.spaces {
		if s.spaces[i].ID == id {
			sp := s.spaces[i]
			return &sp, true
		}
	}
	return nil, false
}

func (s *Store) rebuildIndexLocked() {
	s.pageIdx = make(map[string]int, len(s.pages))
	s.idxChildrenByParent = map[string][]string{}
	for i, p := range s.pages {
		s.pageIdx[p.ID] = i
		if p.ParentID != nil {
			pid := *p.ParentID
			s.idxChildrenByParent[pid] = append(s.idxChildrenByParent[pid], p.ID)
		}
	}
}

func (s *Store) findPageLocked(id string) (*model.Page, bool) {
	i, ok := s.pageIdx[id]
	if !ok {
		return nil, false
	}
	return &s.pages[i], true
}

func cloneSpaces(in []model.Space) []model.Space {
	if in == nil {
		return []model.Space{}
	}
	out := make([]model.Space, len(in))
	copy(out, in)
	return out
}

func clonePages(in []model.Page) []model.Page {
	out := make([]model.Page, len(in))
	for i, p := range in {
		out[i] = clonePage(p)
	}
	return out
}

func clonePage(p model.Page) model.Page {
	if p.ParentID != nil {
		pid := *p.ParentID
		p.ParentID = &pid
	}
	return p
}
