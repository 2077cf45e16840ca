package store

import (
	"context"
	"sync"
)

// NullStore discards every run.
type NullStore struct{}

// Save assigns an ID and discards the run.
func (NullStore) Save(_ context.Context, run *Run) error {
	prepare(run)
	return nil
}

// List returns no runs.
func (NullStore) List(context.Context, int) ([]Run, error) { return nil, nil }

// Close is a no-op.
func (NullStore) Close(context.Context) error { return nil }

// MemoryStore keeps the most recent runs in memory. It is safe for
// concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	runs     []Run
	capacity int
}

// NewMemoryStore keeps at most capacity runs; capacity <= 0 keeps
// DefaultListLimit.
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{capacity: listLimit(capacity)}
}

// Save appends run, dropping the oldest run when full.
func (s *MemoryStore) Save(_ context.Context, run *Run) error {
	prepare(run)
	cp := *run
	cp.Clique = append([]int(nil), run.Clique...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, cp)
	if len(s.runs) > s.capacity {
		s.runs = s.runs[len(s.runs)-s.capacity:]
	}
	return nil
}

// List returns up to limit runs, newest first.
func (s *MemoryStore) List(_ context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit = min(listLimit(limit), len(s.runs))
	out := make([]Run, 0, limit)
	for i := len(s.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[i])
	}
	return out, nil
}

// Close is a no-op.
func (s *MemoryStore) Close(context.Context) error { return nil }

var (
	_ Store = NullStore{}
	_ Store = (*MemoryStore)(nil)
)
