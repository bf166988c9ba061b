package sqlite

import (
	"context"
	"testing"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/internal/auth/store"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAndFetch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.Users().CreateUser(ctx, domain.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$argon2id$fake",
		Role:         domain.RoleUser,
		Name:         "Alice",
		IsActive:     true,
		Permissions:  []string{"read_post", "create_post"},
	})
	require.NoError(t, err)
	require.Positive(t, id)

	byID, err := s.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
	require.ElementsMatch(t, []string{"read_post", "create_post"}, byID.Permissions)

	byName, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, id, byName.ID)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users().CreateUser(ctx, domain.User{
		Username: "bob", Email: "bob@example.com",
		PasswordHash: "h", Role: domain.RoleUser, IsActive: true,
	})
	require.NoError(t, err)

	_, err = s.Users().CreateUser(ctx, domain.User{
		Username: "bob", Email: "bob2@example.com",
		PasswordHash: "h", Role: domain.RoleUser, IsActive: true,
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Users().GetUserByID(context.Background(), 999)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.Users().GetUserByUsername(context.Background(), "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddUserPermissionIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := createTestUser(t, s, "carol")

	require.NoError(t, s.Users().AddUserPermission(ctx, id, "edit_post"))
	require.NoError(t, s.Users().AddUserPermission(ctx, id, "edit_post"))

	perms, err := s.Users().ListUserPermissions(ctx, id)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"read_post", "edit_post"}, perms)
}

func TestSetUserActive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := createTestUser(t, s, "dave")

	require.NoError(t, s.Users().SetUserActive(ctx, id, false))

	u, err := s.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.False(t, u.IsActive)

	require.ErrorIs(t, s.Users().SetUserActive(ctx, 999, false), store.ErrNotFound)
}

func TestUsersIsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	createTestUser(t, s, "erin")

	empty, err = s.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.False(t, empty)
}
