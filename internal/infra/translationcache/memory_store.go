package translationcache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/faq-translate/internal/domain/translation"
	"github.com/yanqian/faq-translate/pkg/util"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-memory translation cache for tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     util.Clock
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock lets tests move time forward.
func NewMemoryStoreWithClock(now util.Clock) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Get implements translation.Cache.
func (s *MemoryStore) Get(_ context.Context, text, lang string) (string, bool, error) {
	key := translation.CacheKey(text, lang)
	s.mu.RLock()
	record, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if s.hasExpired(record.expiresAt) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && s.hasExpired(current.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return record.value, true, nil
}

// Set caches the translation with optional TTL.
func (s *MemoryStore) Set(_ context.Context, text, lang, translated string, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = s.now().Add(ttl)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[translation.CacheKey(text, lang)] = entry{value: translated, expiresAt: exp}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return !s.now().Before(ts)
}

var _ translation.Cache = (*MemoryStore)(nil)
