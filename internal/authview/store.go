package authview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type storeEntry struct {
	view     *View
	lastSeen time.Time
}

// Store keeps one View per browser session, keyed by an opaque id that the
// HTTP layer stores in the session cookie. Idle views are evicted by Sweep.
type Store struct {
	newView func() *View
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	views map[string]*storeEntry
}

// NewStore creates a store that builds views with newView and forgets them
// after ttl without access.
func NewStore(ttl time.Duration, newView func() *View) *Store {
	return &Store{
		newView: newView,
		ttl:     ttl,
		now:     time.Now,
		views:   make(map[string]*storeEntry),
	}
}

// Create registers a fresh view and returns its id.
func (s *Store) Create() (string, *View) {
	id := uuid.NewString()
	v := s.newView()

	s.mu.Lock()
	s.views[id] = &storeEntry{view: v, lastSeen: s.now()}
	s.mu.Unlock()
	return id, v
}

// Get returns the view for id and marks it as recently used.
func (s *Store) Get(id string) (*View, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.views[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.now()
	return e.view, true
}

// GetOrCreate returns the view for id, creating a new one (with a new id) when
// id is unknown or expired.
func (s *Store) GetOrCreate(id string) (string, *View) {
	if v, ok := s.Get(id); ok {
		return id, v
	}
	return s.Create()
}

// Delete forgets the view for id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.views, id)
	s.mu.Unlock()
}

// Len returns the number of live views.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Sweep evicts views idle for longer than the TTL and returns how many were
// removed. Views with a submission in flight are kept.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.views {
		if e.lastSeen.After(cutoff) || e.view.Status().Loading {
			continue
		}
		delete(s.views, id)
		removed++
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				slog.Debug("Evicted idle auth views", "count", n, "remaining", s.Len())
			}
		}
	}
}
