package monitor

import (
	"sync"
	"time"
)

// SnapshotStore holds the most recent analysis snapshot, refreshed in the
// background so the API can serve without re-fetching feeds on every request.
type SnapshotStore struct {
	mu     sync.RWMutex
	latest *Snapshot
}

// NewSnapshotStore constructs an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Set replaces the stored snapshot.
func (s *SnapshotStore) Set(snapshot *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = snapshot
}

// Latest returns the stored snapshot, or nil when none has been taken yet.
func (s *SnapshotStore) Latest() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// FreshWithin reports whether the stored snapshot exists and was taken
// within the given age.
func (s *SnapshotStore) FreshWithin(age time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest != nil && time.Since(s.latest.AsOf) <= age
}
