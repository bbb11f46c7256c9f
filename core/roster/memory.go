package roster

import (
	"context"
	"sync"
	"time"

	"github.com/kilianp07/solarsim/core/model"
)

type memoryEntry struct {
	name    string
	setupOn time.Time
}

// MemoryStore keeps the roster in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []memoryEntry
	now     Clock
}

// NewMemoryStore returns an empty MemoryStore. A nil clock defaults to
// time.Now.
func NewMemoryStore(clock Clock) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{now: clock}
}

// Replace swaps the whole roster.
func (s *MemoryStore) Replace(_ context.Context, plants []model.PowerPlant) error {
	if err := CheckAges(plants); err != nil {
		return err
	}
	now := s.now()
	next := make([]memoryEntry, len(plants))
	for i, p := range plants {
		next[i] = memoryEntry{name: p.Name, setupOn: SetupDate(now, p.Age)}
	}
	s.mu.Lock()
	s.entries = next
	s.mu.Unlock()
	return nil
}

// List returns the roster in insertion order.
func (s *MemoryStore) List(_ context.Context) ([]model.PowerPlant, error) {
	s.mu.RLock()
	entries := s.entries
	s.mu.RUnlock()
	now := s.now()
	res := make([]model.PowerPlant, len(entries))
	for i, e := range entries {
		res[i] = model.PowerPlant{Name: e.name, Age: AgeOn(now, e.setupOn)}
	}
	return res, nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
