// Package revocation holds the in-memory index consulted on every token
// verification. The index is authoritative for liveness decisions at
// runtime; the token store is the durable ledger it is seeded from.
package revocation

import "sync"

// Index tracks revoked jtis and the set of refresh jtis still eligible for
// rotation. All methods are safe for concurrent use.
type Index struct {
	mu           sync.RWMutex
	revoked      map[string]struct{}
	validRefresh map[string]struct{}
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		revoked:      make(map[string]struct{}),
		validRefresh: make(map[string]struct{}),
	}
}

// Revoke marks a jti as revoked and removes it from the valid refresh set.
// Revoking an unknown or already revoked jti is a no-op.
func (i *Index) Revoke(jti string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.revoked[jti] = struct{}{}
	delete(i.validRefresh, jti)
}

// IsRevoked reports whether the jti has been revoked.
func (i *Index) IsRevoked(jti string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()

	_, ok := i.revoked[jti]
	return ok
}

// AddRefresh registers a refresh jti as eligible for rotation.
func (i *Index) AddRefresh(jti string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.validRefresh[jti] = struct{}{}
}

// Retire atomically removes the jti from the valid refresh set and marks it
// revoked. It returns true only for the caller that performed the removal,
// so concurrent rotations of the same refresh token yield exactly one
// winner.
func (i *Index) Retire(jti string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.validRefresh[jti]; !ok {
		return false
	}

	delete(i.validRefresh, jti)
	i.revoked[jti] = struct{}{}
	return true
}

// Seed replaces the index contents with the given revoked jtis and live
// refresh jtis, typically read from the token store at startup.
func (i *Index) Seed(revoked, validRefresh []string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.revoked = make(map[string]struct{}, len(revoked))
	for _, jti := range revoked {
		i.revoked[jti] = struct{}{}
	}

	i.validRefresh = make(map[string]struct{}, len(validRefresh))
	for _, jti := range validRefresh {
		i.validRefresh[jti] = struct{}{}
	}
}

// Len returns the number of revoked and valid refresh entries, for
// startup logging and readiness reporting.
func (i *Index) Len() (revoked, validRefresh int) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	return len(i.revoked), len(i.validRefresh)
}
