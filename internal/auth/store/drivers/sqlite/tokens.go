package sqlite

import (
	"context"
	"time"

	"github.com/blogware/sessiond/internal/auth/domain"
)

type tokensRepo struct {
	db dbtx
}

const tokenColumns = `jti, user_id, token_type, expires_at, revoked, created_at`

func (r *tokensRepo) CreateToken(ctx context.Context, t domain.TokenRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tokens (jti, user_id, token_type, expires_at, revoked, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.JTI, t.UserID, t.TokenType, t.ExpiresAt.UTC(), t.Revoked, t.CreatedAt.UTC(),
	)
	return err
}

func (r *tokensRepo) GetTokenByJTI(ctx context.Context, jti string) (domain.TokenRecord, error) {
	var t domain.TokenRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT `+tokenColumns+` FROM tokens WHERE jti = ?`, jti,
	).Scan(&t.JTI, &t.UserID, &t.TokenType, &t.ExpiresAt, &t.Revoked, &t.CreatedAt)
	if err != nil {
		return domain.TokenRecord{}, mapNotFound(err)
	}
	return t, nil
}

func (r *tokensRepo) MarkTokenRevoked(ctx context.Context, jti string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tokens SET revoked = 1 WHERE jti = ? AND revoked = 0`, jti)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *tokensRepo) ListTokensByUser(ctx context.Context, userID int64, limit int) ([]domain.TokenRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tokenColumns+` FROM tokens
		 WHERE user_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TokenRecord
	for rows.Next() {
		var t domain.TokenRecord
		if err := rows.Scan(&t.JTI, &t.UserID, &t.TokenType, &t.ExpiresAt, &t.Revoked, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tokensRepo) ListTokens(ctx context.Context, limit int) ([]domain.TokenRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tokenColumns+` FROM tokens
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TokenRecord
	for rows.Next() {
		var t domain.TokenRecord
		if err := rows.Scan(&t.JTI, &t.UserID, &t.TokenType, &t.ExpiresAt, &t.Revoked, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tokensRepo) ListRevokedJTIs(ctx context.Context, now time.Time) ([]string, error) {
	return r.listJTIs(ctx,
		`SELECT jti FROM tokens WHERE revoked = 1 AND expires_at > ?`, now.UTC())
}

func (r *tokensRepo) ListLiveRefreshJTIs(ctx context.Context, now time.Time) ([]string, error) {
	return r.listJTIs(ctx,
		`SELECT jti FROM tokens WHERE token_type = 'refresh' AND revoked = 0 AND expires_at > ?`, now.UTC())
}

func (r *tokensRepo) listJTIs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jtis []string
	for rows.Next() {
		var jti string
		if err := rows.Scan(&jti); err != nil {
			return nil, err
		}
		jtis = append(jtis, jti)
	}
	return jtis, rows.Err()
}

func (r *tokensRepo) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tokens WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
