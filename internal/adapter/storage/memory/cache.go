package memory

import (
	"context"
	"sync"
	"time"

	"nft-royalty-vault/internal/core/ports"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"
)

type expiring struct {
	value     []byte
	expiresAt time.Time
}

// ttlMap is a mutex-guarded map whose entries lapse after their TTL.
type ttlMap struct {
	mu      sync.Mutex
	clock   clockwork.Clock
	entries map[string]expiring
}

func newTTLMap(clock clockwork.Clock) *ttlMap {
	return &ttlMap{clock: clock, entries: make(map[string]expiring)}
}

func (m *ttlMap) get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.clock.Now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return e.value, true
}

// set stores value, or with onlyIfAbsent keeps a live entry. It reports whether it stored.
func (m *ttlMap) set(key string, value []byte, ttl time.Duration, onlyIfAbsent bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.clock.Now()
	if e, ok := m.entries[key]; ok && onlyIfAbsent && now.Before(e.expiresAt) {
		return false
	}
	m.entries[key] = expiring{value: value, expiresAt: now.Add(ttl)}
	return true
}

// IdempotencyCache implements ports.IdempotencyCache in process.
type IdempotencyCache struct {
	entries *ttlMap
}

// NewIdempotencyCache creates an in-process idempotency cache.
func NewIdempotencyCache(clock clockwork.Clock) *IdempotencyCache {
	return &IdempotencyCache{entries: newTTLMap(clock)}
}

func (c *IdempotencyCache) Get(ctx context.Context, key string) ([]byte, error) {
	v, _ := c.entries.get(key)
	return v, nil
}

func (c *IdempotencyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.entries.set(key, append([]byte(nil), value...), ttl, false)
	return nil
}

// NonceStore implements ports.NonceStore in process.
type NonceStore struct {
	entries *ttlMap
}

// NewNonceStore creates an in-process nonce store.
func NewNonceStore(clock clockwork.Clock) *NonceStore {
	return &NonceStore{entries: newTTLMap(clock)}
}

// CheckAndSet returns true if the nonce had not been seen by signer within ttl.
func (s *NonceStore) CheckAndSet(ctx context.Context, signer string, nonce string, ttl time.Duration) (bool, error) {
	return s.entries.set(signer+":"+nonce, nil, ttl, true), nil
}

// RateLimitStore implements ports.RateLimitStore with a token bucket per key.
// A bucket holds limit tokens and refills at limit per window.
type RateLimitStore struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	limiters map[string]*rate.Limiter
}

// NewRateLimitStore creates an in-process rate limiter.
func NewRateLimitStore(clock clockwork.Clock) *RateLimitStore {
	return &RateLimitStore{clock: clock, limiters: make(map[string]*rate.Limiter)}
}

func (s *RateLimitStore) Allow(ctx context.Context, key string, limit int64, window time.Duration) (*ports.RateLimitResult, error) {
	now := s.clock.Now()

	s.mu.Lock()
	lim, ok := s.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), int(limit))
		s.limiters[key] = lim
	}
	s.mu.Unlock()

	allowed := lim.AllowN(now, 1)
	remaining := int64(lim.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}
	return &ports.RateLimitResult{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   now.Add(window).Unix(),
	}, nil
}
