package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func createTestUser(t *testing.T, s *Store, username string) int64 {
	t.Helper()

	id, err := s.Users().CreateUser(context.Background(), domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$fake",
		Role:         domain.RoleUser,
		IsActive:     true,
		Permissions:  domain.DefaultPermissions,
	})
	require.NoError(t, err)
	return id
}

func TestCreateAndGetToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := createTestUser(t, s, "alice")

	now := time.Now().UTC().Truncate(time.Second)
	rec := domain.TokenRecord{
		JTI:       "jti-access-1",
		UserID:    userID,
		TokenType: "access",
		ExpiresAt: now.Add(15 * time.Minute),
		CreatedAt: now,
	}
	require.NoError(t, s.Tokens().CreateToken(ctx, rec))

	got, err := s.Tokens().GetTokenByJTI(ctx, "jti-access-1")
	require.NoError(t, err)
	require.Equal(t, userID, got.UserID)
	require.Equal(t, "access", got.TokenType)
	require.False(t, got.Revoked)
	require.WithinDuration(t, rec.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestGetTokenNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Tokens().GetTokenByJTI(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestMarkTokenRevoked(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := createTestUser(t, s, "bob")
	now := time.Now().UTC()

	require.NoError(t, s.Tokens().CreateToken(ctx, domain.TokenRecord{
		JTI:       "jti-r1",
		UserID:    userID,
		TokenType: "refresh",
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}))

	flipped, err := s.Tokens().MarkTokenRevoked(ctx, "jti-r1")
	require.NoError(t, err)
	require.True(t, flipped)

	// Second revoke reports nothing flipped but no error.
	flipped, err = s.Tokens().MarkTokenRevoked(ctx, "jti-r1")
	require.NoError(t, err)
	require.False(t, flipped)

	// Unknown jti behaves the same.
	flipped, err = s.Tokens().MarkTokenRevoked(ctx, "missing")
	require.NoError(t, err)
	require.False(t, flipped)

	got, err := s.Tokens().GetTokenByJTI(ctx, "jti-r1")
	require.NoError(t, err)
	require.True(t, got.Revoked)
}

func TestListTokensByUserNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := createTestUser(t, s, "carol")
	base := time.Now().UTC().Truncate(time.Second)

	for i, jti := range []string{"old", "mid", "new"} {
		require.NoError(t, s.Tokens().CreateToken(ctx, domain.TokenRecord{
			JTI:       jti,
			UserID:    userID,
			TokenType: "access",
			ExpiresAt: base.Add(time.Hour),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := s.Tokens().ListTokensByUser(ctx, userID, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "new", list[0].JTI)
	require.Equal(t, "mid", list[1].JTI)
}

func TestSeedListings(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := createTestUser(t, s, "dave")
	now := time.Now().UTC()

	seed := []struct {
		jti       string
		tokenType string
		expiresAt time.Time
		revoked   bool
	}{
		{"live-refresh", "refresh", now.Add(time.Hour), false},
		{"revoked-refresh", "refresh", now.Add(time.Hour), true},
		{"expired-refresh", "refresh", now.Add(-time.Hour), false},
		{"revoked-access", "access", now.Add(time.Hour), true},
		{"revoked-expired", "access", now.Add(-time.Hour), true},
	}
	for _, row := range seed {
		require.NoError(t, s.Tokens().CreateToken(ctx, domain.TokenRecord{
			JTI:       row.jti,
			UserID:    userID,
			TokenType: row.tokenType,
			ExpiresAt: row.expiresAt,
			Revoked:   row.revoked,
			CreatedAt: now,
		}))
	}

	revoked, err := s.Tokens().ListRevokedJTIs(ctx, now)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"revoked-refresh", "revoked-access"}, revoked)

	live, err := s.Tokens().ListLiveRefreshJTIs(ctx, now)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"live-refresh"}, live)
}

func TestDeleteExpiredTokens(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := createTestUser(t, s, "erin")
	now := time.Now().UTC()

	require.NoError(t, s.Tokens().CreateToken(ctx, domain.TokenRecord{
		JTI: "stale", UserID: userID, TokenType: "access",
		ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, s.Tokens().CreateToken(ctx, domain.TokenRecord{
		JTI: "fresh", UserID: userID, TokenType: "access",
		ExpiresAt: now.Add(time.Hour), CreatedAt: now,
	}))

	n, err := s.Tokens().DeleteExpiredTokens(ctx, now)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	_, err = s.Tokens().GetTokenByJTI(ctx, "stale")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Tokens().GetTokenByJTI(ctx, "fresh")
	require.NoError(t, err)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	userID := createTestUser(t, s, "frank")
	now := time.Now().UTC()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Tokens().CreateToken(ctx, domain.TokenRecord{
			JTI: "tx-jti", UserID: userID, TokenType: "refresh",
			ExpiresAt: now.Add(time.Hour), CreatedAt: now,
		}); err != nil {
			return err
		}
		return context.Canceled
	})
	require.Error(t, err)

	_, err = s.Tokens().GetTokenByJTI(ctx, "tx-jti")
	require.ErrorIs(t, err, store.ErrNotFound)
}
