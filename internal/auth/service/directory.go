package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/internal/auth/store"
)

// UserDirectory resolves users with their permission sets, mapping store
// misses to the service error taxonomy.
type UserDirectory struct {
	Store store.Store
}

func NewUserDirectory(st store.Store) *UserDirectory {
	return &UserDirectory{Store: st}
}

// LookupByID returns the user with permissions resolved.
func (d *UserDirectory) LookupByID(ctx context.Context, id int64) (domain.User, error) {
	user, err := d.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return user, nil
}

// LookupByUsername returns the user with permissions resolved.
func (d *UserDirectory) LookupByUsername(ctx context.Context, username string) (domain.User, error) {
	user, err := d.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return user, nil
}
