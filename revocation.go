package users

import (
	"context"
	"sync"
	"time"
)

// TokenRevoker tracks revoked token strings. Implementations must be safe
// for concurrent use by request handlers.
type TokenRevoker interface {
	Record(token string, expiresAt time.Time)
	IsRevoked(token string) bool
}

// MemoryRevoker is an in-process TokenRevoker. Each entry is kept only until
// the token's natural expiry so the set stays bounded by the number of live
// tokens; state is lost on restart, which matches the tokens themselves.
type MemoryRevoker struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevoker creates an empty revocation registry.
func NewMemoryRevoker() *MemoryRevoker {
	return &MemoryRevoker{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Record marks a token string as revoked until expiresAt. Recording the same
// token again is a no-op unless the new expiry is later. Any string is
// accepted, valid token or not.
func (r *MemoryRevoker) Record(token string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.entries[token]; ok && existing.After(expiresAt) {
		return
	}
	r.entries[token] = expiresAt

	// Amortized sweep keeps the map bounded even without the janitor.
	if len(r.entries)%128 == 0 {
		r.purgeLocked(r.now())
	}
}

// IsRevoked reports whether the exact token string has been revoked and is
// still inside its expiry window.
func (r *MemoryRevoker) IsRevoked(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	expiresAt, ok := r.entries[token]
	return ok && expiresAt.After(r.now())
}

// Purge drops entries whose expiry has passed and returns how many were
// removed.
func (r *MemoryRevoker) Purge() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.purgeLocked(r.now())
}

// Len returns the number of tracked entries, expired or not.
func (r *MemoryRevoker) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// StartJanitor purges expired entries every interval until ctx is done.
func (r *MemoryRevoker) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Purge()
			}
		}
	}()
}

func (r *MemoryRevoker) purgeLocked(now time.Time) int {
	removed := 0
	for token, expiresAt := range r.entries {
		if !expiresAt.After(now) {
			delete(r.entries, token)
			removed++
		}
	}
	return removed
}
