package api

import (
	"sync"
	"time"

	"github.com/pressfeed/pressfeed/app/feed"
)

// Sessions maps session ids to feed controllers. Each controller serializes
// its own transitions; the registry only guards the map itself.
type Sessions struct {
	builder *feed.Builder
	mu      sync.Mutex
	entries map[string]*session
}

type session struct {
	controller *feed.Controller
	lastSeen   time.Time
}

func NewSessions(builder *feed.Builder) *Sessions {
	return &Sessions{
		builder: builder,
		entries: make(map[string]*session),
	}
}

// Get returns the controller for the session, creating one on first use, and
// marks the session as active.
func (s *Sessions) Get(id string) *feed.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		entry = &session{controller: feed.NewController(s.builder)}
		s.entries[id] = entry
	}
	entry.lastSeen = time.Now()

	return entry.controller
}

func (s *Sessions) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// PruneIdle removes sessions idle for longer than maxIdle and returns how
// many were dropped. A pruned reader simply starts over with default state.
func (s *Sessions) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	pruned := 0
	for id, entry := range s.entries {
		if entry.lastSeen.Before(cutoff) {
			delete(s.entries, id)
			pruned++
		}
	}

	return pruned
}
