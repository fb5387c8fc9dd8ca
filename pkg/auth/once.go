package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// OnceStore holds short-lived values that may be read exactly once.
type OnceStore interface {
	// Put stores value under key unless the key is already present.
	Put(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// Take returns and deletes the value. ok is false for unknown or expired keys.
	Take(ctx context.Context, key string) (value string, ok bool, err error)
}

type onceEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryOnceStore is an in-process OnceStore for single-instance deployments
// and tests. Entries never outlive maxTTL even if Put asks for more.
type MemoryOnceStore struct {
	mu     sync.Mutex
	cache  *lru.LRU[string, onceEntry]
	maxTTL time.Duration
	now    func() time.Time
}

// NewMemoryOnceStore keeps at most size entries.
func NewMemoryOnceStore(size int, maxTTL time.Duration) *MemoryOnceStore {
	if size <= 0 {
		size = 10_000
	}
	if maxTTL <= 0 {
		maxTTL = 10 * time.Minute
	}
	return &MemoryOnceStore{
		cache:  lru.NewLRU[string, onceEntry](size, nil, maxTTL),
		maxTTL: maxTTL,
		now:    time.Now,
	}
}

func (s *MemoryOnceStore) Put(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	if ttl <= 0 || ttl > s.maxTTL {
		ttl = s.maxTTL
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.cache.Peek(key); ok && s.now().Before(e.expiresAt) {
		return false, nil
	}
	s.cache.Add(key, onceEntry{value: value, expiresAt: s.now().Add(ttl)})
	return true, nil
}

func (s *MemoryOnceStore) Take(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cache.Peek(key)
	if !ok {
		return "", false, nil
	}
	s.cache.Remove(key)

	if !s.now().Before(e.expiresAt) {
		return "", false, nil
	}
	return e.value, true, nil
}

var _ OnceStore = (*MemoryOnceStore)(nil)

// randomKey returns a URL-safe random string with n bytes of entropy.
func randomKey(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random key: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
