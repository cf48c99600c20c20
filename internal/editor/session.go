package editor

import (
	"sync"

	"wikispace/internal/debounce"
	"wikispace/internal/logging"
	"wikispace/internal/model"

	"github.com/sirupsen/logrus"
)

// PageWriter is the slice of the store an editor session needs.
type PageWriter interface {
	GetPage(id string) (*model.Page, bool)
	UpdatePage(id string, u model.PageUpdate) bool
}

// Session edits one page. Content edits are coalesced through the shared debouncer
// (one pending write per page id); title and emoji changes are written immediately.
type Session struct {
	pageID string
	pages  PageWriter
	deb    *debounce.Debouncer[string]
	log    *logrus.Entry

	mu     sync.Mutex
	last   string
	dirty  bool
	closed bool
	writes int
}

// Open starts a session for pageID. ok is false when the page does not exist.
func Open(pages PageWriter, deb *debounce.Debouncer[string], pageID string, log *logrus.Entry) (*Session, bool) {
	p, found := pages.GetPage(pageID)
	if !found {
		return nil, false
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Session{
		pageID: pageID,
		pages:  pages,
		deb:    deb,
		log:    log.WithField("page", pageID),
		last:   p.Content,
	}, true
}

func (s *Session) PageID() string { return s.pageID }

// Load returns the content as currently stored, verbatim.
func (s *Session) Load() string {
	p, ok := s.pages.GetPage(s.pageID)
	if !ok {
		return ""
	}
	return p.Content
}

// Change records new editor output. The store sees it after the quiet period, or
// on Flush/Close, whichever is first.
func (s *Session) Change(content string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.last = content
	s.dirty = true
	s.mu.Unlock()

	s.deb.Trigger(s.pageID, s.write)
}

func (s *Session) write() {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return
	}
	content := s.last
	s.dirty = false
	s.mu.Unlock()

	if !s.pages.UpdatePage(s.pageID, model.PageUpdate{Content: &content}) {
		s.log.Debug("page vanished before save; dropping edit")
		return
	}
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
	s.log.WithField("bytes", len(content)).Debug("content saved")
}

// Dirty reports whether an edit is waiting for the quiet period.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Writes counts content writes that reached the store.
func (s *Session) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Flush writes any pending edit now.
func (s *Session) Flush() {
	if !s.deb.Flush(s.pageID) {
		// Nothing scheduled under this key; still honor a dirty buffer.
		s.write()
	}
}

func (s *Session) SetTitle(title string) bool {
	return s.pages.UpdatePage(s.pageID, model.PageUpdate{Title: &title})
}

func (s *Session) SetEmoji(emoji string) bool {
	return s.pages.UpdatePage(s.pageID, model.PageUpdate{Emoji: &emoji})
}

// Close flushes and detaches. Further Change calls are ignored.
func (s *Session) Close() {
	s.Flush()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
