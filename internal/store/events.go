package store

import "wikispace/internal/model"

// recordLocked appends to the in-memory activity feed, dropping the oldest entries
// beyond eventLimit.
func (s *Store) recordLocked(typ model.EventType, entityID string, payload any) {
	if s.eventLimit <= 0 {
		return
	}
	s.events = append(s.events, model.Event{
		ID:       newEventID(),
		TS:       s.now(),
		Type:     typ,
		EntityID: entityID,
		Payload:  payload,
	})
	if over := len(s.events) - s.eventLimit; over > 0 {
		copy(s.events, s.events[over:])
		s.events = s.events[:s.eventLimit]
	}
}

// RecentEvents returns up to n events, newest first. n <= 0 returns all of them.
func (s *Store) RecentEvents(n int) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.events) {
		n = len(s.events)
	}
	out := make([]model.Event, 0, n)
	for i := len(s.events) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.events[i])
	}
	return out
}
