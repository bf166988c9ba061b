package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/internal/auth/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, email, password_hash, role, name, is_active, created_at`

func (r *usersRepo) scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Name,
		&u.IsActive,
		&u.CreatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return domain.User{}, err
	}

	u.Permissions, err = r.ListUserPermissions(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	if err != nil {
		return domain.User{}, err
	}

	u.Permissions, err = r.ListUserPermissions(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, role, name, is_active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.Role, u.Name, u.IsActive,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, store.ErrAlreadyExists
		}
		return 0, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, perm := range u.Permissions {
		if err := r.AddUserPermission(ctx, id, perm); err != nil {
			return 0, err
		}
	}

	return id, nil
}

func (r *usersRepo) AddUserPermission(ctx context.Context, userID int64, permission string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO user_permissions (user_id, permission) VALUES (?, ?)`,
		userID, permission,
	)
	return err
}

func (r *usersRepo) ListUserPermissions(ctx context.Context, userID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT permission FROM user_permissions WHERE user_id = ? ORDER BY permission`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

func (r *usersRepo) FindUserIDs(ctx context.Context, query string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM users
		 WHERE username = ? OR email = ? OR CAST(id AS TEXT) = ?
		 ORDER BY id`,
		query, query, query,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *usersRepo) SetUserActive(ctx context.Context, userID int64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = ? WHERE id = ?`, active, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// isUniqueViolation detects sqlite unique constraint failures without
// depending on driver-specific error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, store.ErrAlreadyExists) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
