package service

import (
	"context"
	"fmt"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/internal/auth/store"
)

const (
	// MaxTokenListLimit caps admin token listings.
	MaxTokenListLimit = 200
)

// AdminService backs the administrative token surface.
type AdminService struct {
	Store store.Store
}

func NewAdminService(st store.Store) *AdminService {
	return &AdminService{Store: st}
}

// ListTokens returns issued tokens newest-first. When userQuery is non-empty
// it is resolved against username, email, or numeric id; an unresolvable
// query yields ErrUserNotFound. limit is clamped to MaxTokenListLimit.
func (s *AdminService) ListTokens(ctx context.Context, userQuery string, limit int) ([]domain.TokenRecord, error) {
	if limit <= 0 || limit > MaxTokenListLimit {
		limit = MaxTokenListLimit
	}

	if userQuery == "" {
		out, err := s.Store.Tokens().ListTokens(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
		}
		return out, nil
	}

	ids, err := s.Store.Users().FindUserIDs(ctx, userQuery)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	if len(ids) == 0 {
		return nil, ErrUserNotFound
	}

	var out []domain.TokenRecord
	for _, id := range ids {
		records, err := s.Store.Tokens().ListTokensByUser(ctx, id, limit-len(out))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
		}
		out = append(out, records...)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}
