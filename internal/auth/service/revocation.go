package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blogware/sessiond/internal/auth/revocation"
	"github.com/blogware/sessiond/internal/auth/store"
	"github.com/blogware/sessiond/pkg/slogx"
)

// timeNow is overridable for tests.
var timeNow = time.Now

// RevocationService is the single write path for revocations: every caller
// (logout, rotation cleanup, admin action) goes through it so the in-memory
// index and the durable ledger never drift apart.
type RevocationService struct {
	Store store.Store
	Index *revocation.Index
}

func NewRevocationService(st store.Store, index *revocation.Index) *RevocationService {
	return &RevocationService{Store: st, Index: index}
}

// Revoke marks the jti revoked in both the index and the store. It is
// idempotent; the returned bool reports whether this call changed anything
// durable (false for repeats and unknown jtis).
func (s *RevocationService) Revoke(ctx context.Context, jti string) (bool, error) {
	// Index first so in-flight verifications see the revocation immediately.
	s.Index.Revoke(jti)

	flipped, err := s.Store.Tokens().MarkTokenRevoked(ctx, jti)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	if flipped {
		slogx.FromContext(ctx).Info("token revoked", "jti", jti)
	}
	return flipped, nil
}

// SeedIndex loads the revocation and live-refresh sets from the store into
// the index. Called once at startup before the server accepts traffic.
func (s *RevocationService) SeedIndex(ctx context.Context) error {
	now := timeNow()

	revoked, err := s.Store.Tokens().ListRevokedJTIs(ctx, now)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	live, err := s.Store.Tokens().ListLiveRefreshJTIs(ctx, now)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	s.Index.Seed(revoked, live)

	slogx.FromContext(ctx).Info("revocation index seeded",
		"revoked", len(revoked),
		"live_refresh", len(live),
	)
	return nil
}
