package repository

import (
	"context"
	"sync"

	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/metrics"
)

// SnapshotStore implements Store with a single snapshot behind an RWMutex.
// Reads serve whatever snapshot was last installed; Replace enforces the
// monotonic sequence so an out-of-order completion can never overwrite a
// newer result.
type SnapshotStore struct {
	mu      sync.RWMutex
	current model.Snapshot
	hasData bool
	index   map[string]int // subject name -> entry position, rebuilt on Replace
}

// NewSnapshotStore creates an empty snapshot store.
func NewSnapshotStore(_ context.Context) *SnapshotStore {
	return &SnapshotStore{index: make(map[string]int)}
}

// Replace installs snap when its sequence is newer than the current one.
func (s *SnapshotStore) Replace(ctx context.Context, snap model.Snapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasData && snap.Seq <= s.current.Seq {
		metrics.RecordStaleSnapshotDiscarded()
		return false
	}

	s.current = snap
	s.hasData = true
	s.index = make(map[string]int, len(snap.Entries))
	for i, e := range snap.Entries {
		s.index[e.Name] = i
	}

	metrics.UpdateSnapshotEntries(len(snap.Entries))
	metrics.UpdateSnapshotSeq(snap.Seq)
	metrics.RecordSnapshotReplace()
	return true
}

// Latest returns the current snapshot, if any.
func (s *SnapshotStore) Latest(ctx context.Context) (model.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.hasData
}

// TopN returns up to n entries ordered by rank.
func (s *SnapshotStore) TopN(ctx context.Context, n int) ([]model.Entry, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.current.Entries) {
		n = len(s.current.Entries)
	}
	out := make([]model.Entry, n)
	copy(out, s.current.Entries[:n])
	return out, nil
}

// Rank returns the entry for a subject name.
func (s *SnapshotStore) Rank(ctx context.Context, name string) (model.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[name]
	if !ok {
		return model.Entry{}, ErrNotFound
	}
	return s.current.Entries[i], nil
}

// Count returns the number of subjects in the current snapshot.
func (s *SnapshotStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.current.Entries)
}
