package suncache

import (
	"context"
	"sync"
	"time"

	"github.com/botalearn/plantcare/internal/domain/sunlight"
)

// MemoryStore provides an in-process record cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	record    sunlight.DayRecord
	expiresAt time.Time
}

// NewMemoryStore constructs a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (sunlight.DayRecord, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return sunlight.DayRecord{}, false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return sunlight.DayRecord{}, false, nil
	}
	return entry.record, true, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, record sunlight.DayRecord, ttl time.Duration) error {
	entry := memoryEntry{record: record}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
