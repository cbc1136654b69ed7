package memstore

import (
	"sort"
	"sync"

	"senti/internal/domain"
)

// MemoryStore is an in-memory ResultStore used for tests and ephemeral
// serving. Nothing survives process exit.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]domain.Analysis
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		analyses: make(map[string]domain.Analysis),
	}
}

func (s *MemoryStore) PutAnalysis(a domain.Analysis) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[a.ID] = a
	return nil
}

func (s *MemoryStore) GetAnalysis(id string) (domain.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.analyses[id]
	if !ok {
		return domain.Analysis{}, domain.ErrNotFound
	}
	return a, nil
}

func (s *MemoryStore) ListAnalyses(limit int) ([]domain.Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	analyses := make([]domain.Analysis, 0, len(s.analyses))
	for _, a := range s.analyses {
		analyses = append(analyses, a)
	}
	// Newest first; ID breaks timestamp ties so the order is stable.
	sort.Slice(analyses, func(i, j int) bool {
		if !analyses[i].CreatedAt.Equal(analyses[j].CreatedAt) {
			return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
		}
		return analyses[i].ID > analyses[j].ID
	})

	if limit > 0 && len(analyses) > limit {
		analyses = analyses[:limit]
	}
	return analyses, nil
}

func (s *MemoryStore) DeleteAnalysis(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.analyses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.analyses, id)
	return nil
}

func (s *MemoryStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.analyses), nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses = make(map[string]domain.Analysis)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
