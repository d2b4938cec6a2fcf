package cache

import (
	"context"
	"sync"
	"time"

	"podcast-guest-tracker/internal/models"
)

// entry is owned exclusively by the store; destroyed on expiry or overwrite.
type entry struct {
	rec       models.Recommendation
	createdAt time.Time
	expiresAt time.Time
}

// MemoryStore is the default in-process result cache. Expired entries are
// treated as absent and purged lazily on lookup.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewMemoryStoreWithClock injects the clock, for deterministic expiry tests.
func NewMemoryStoreWithClock(ttl time.Duration, now func() time.Time) *MemoryStore {
	s := NewMemoryStore(ttl)
	s.now = now
	return s
}

func (s *MemoryStore) Get(_ context.Context, req models.AnalysisRequest) (*models.Recommendation, error) {
	key := req.CacheKey()

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	if !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a fresh Put may have replaced it.
		if cur, ok := s.entries[key]; ok && !s.now().Before(cur.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, nil
	}

	rec := e.rec
	return &rec, nil
}

func (s *MemoryStore) Put(_ context.Context, req models.AnalysisRequest, rec models.Recommendation) error {
	now := s.now()
	s.mu.Lock()
	s.entries[req.CacheKey()] = entry{
		rec:       rec,
		createdAt: now,
		expiresAt: now.Add(s.ttl),
	}
	s.mu.Unlock()
	return nil
}

// Len reports live (unexpired) entries.
func (s *MemoryStore) Len() int {
	now := s.now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}
