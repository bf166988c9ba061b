package store

import (
	"context"
	"errors"
	"time"

	"github.com/blogware/sessiond/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Tokens() Tokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user with its permissions resolved.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user and returns the assigned id.
	// Permissions on the given user are written to user_permissions.
	CreateUser(ctx context.Context, u domain.User) (int64, error)

	// AddUserPermission grants a permission to a user (no-op if present).
	AddUserPermission(ctx context.Context, userID int64, permission string) error

	// ListUserPermissions returns the permission names for a user.
	ListUserPermissions(ctx context.Context, userID int64) ([]string, error)

	// FindUserIDs resolves an admin filter string to user ids. The query
	// matches username, email, or a numeric id.
	FindUserIDs(ctx context.Context, query string) ([]int64, error)

	// SetUserActive flips the is_active flag.
	SetUserActive(ctx context.Context, userID int64, active bool) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Tokens interface {
	// CreateToken stores a ledger entry for a freshly issued token.
	CreateToken(ctx context.Context, t domain.TokenRecord) error

	// GetTokenByJTI returns the ledger entry for a jti.
	GetTokenByJTI(ctx context.Context, jti string) (domain.TokenRecord, error)

	// MarkTokenRevoked flips revoked=1. The returned bool reports whether a
	// row was actually flipped, so callers can distinguish a fresh
	// revocation from a repeat or an unknown jti.
	MarkTokenRevoked(ctx context.Context, jti string) (bool, error)

	// ListTokensByUser returns a user's tokens newest-first, capped at limit.
	ListTokensByUser(ctx context.Context, userID int64, limit int) ([]domain.TokenRecord, error)

	// ListTokens returns all tokens newest-first, capped at limit.
	ListTokens(ctx context.Context, limit int) ([]domain.TokenRecord, error)

	// ListRevokedJTIs returns the jtis of revoked, not-yet-expired tokens.
	// Used to seed the in-memory revocation index at startup.
	ListRevokedJTIs(ctx context.Context, now time.Time) ([]string, error)

	// ListLiveRefreshJTIs returns the jtis of unrevoked, unexpired refresh
	// tokens. Used to seed the rotation eligibility set at startup.
	ListLiveRefreshJTIs(ctx context.Context, now time.Time) ([]string, error)

	// DeleteExpiredTokens removes ledger rows past their expiry (housekeeping).
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}
