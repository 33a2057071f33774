package drift

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is the in-process Store used for tests and single-shot runs
// without external storage.
type MemoryStore struct {
	mu sync.Mutex
	m  map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]Record)}
}

func recordKey(fixtureID int64, marketKey, bookmaker string) string {
	return fmt.Sprintf("%d|%s|%s", fixtureID, marketKey, bookmaker)
}

func (s *MemoryStore) Get(_ context.Context, fixtureID int64, marketKey, bookmaker string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.m[recordKey(fixtureID, marketKey, bookmaker)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Upsert(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[recordKey(rec.FixtureID, rec.MarketKey, rec.Bookmaker)] = rec
	return nil
}
