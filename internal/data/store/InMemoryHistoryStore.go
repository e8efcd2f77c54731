package store

import (
	"context"
	"sync"

	"github.com/akolanti/SyllabusQA/internal/domain/commonModels"
)

type InMemoryHistoryStore struct {
	mu      sync.RWMutex
	entries []commonModels.ChatEntry
}

func NewInMemoryHistoryStore() *InMemoryHistoryStore {
	return &InMemoryHistoryStore{}
}

func (s *InMemoryHistoryStore) Append(ctx context.Context, entry commonModels.ChatEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, stamp(entry))
	return nil
}

func (s *InMemoryHistoryStore) Recent(ctx context.Context, limit int) ([]commonModels.ChatEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := 0
	if limit > 0 && len(s.entries) > limit {
		start = len(s.entries) - limit
	}
	out := make([]commonModels.ChatEntry, len(s.entries)-start)
	copy(out, s.entries[start:])
	return out, nil
}

func (s *InMemoryHistoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
	return nil
}
