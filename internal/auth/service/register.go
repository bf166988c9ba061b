package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/internal/auth/store"
	"github.com/blogware/sessiond/pkg/cryptox"
	"github.com/blogware/sessiond/pkg/slogx"
)

// RegistrationService creates accounts through the public registration
// endpoint. Self-registered users get the default permissions plus posting
// rights.
type RegistrationService struct {
	Store store.Store
}

func NewRegistrationService(st store.Store) *RegistrationService {
	return &RegistrationService{Store: st}
}

// RegisterParams are the caller-supplied account fields.
type RegisterParams struct {
	Username string
	Email    string
	Password string
	Name     string
}

// Register hashes the password and creates the account.
func (s *RegistrationService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)

	if p.Username == "" || p.Email == "" || p.Password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	perms := make([]string, 0, len(domain.DefaultPermissions)+len(domain.SelfRegisterPermissions))
	perms = append(perms, domain.DefaultPermissions...)
	perms = append(perms, domain.SelfRegisterPermissions...)

	user := domain.User{
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		Name:         p.Name,
		IsActive:     true,
		Permissions:  perms,
	}

	id, err := s.Store.Users().CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	user.ID = id
	slogx.FromContext(ctx).Info("user registered", "user_id", id, "username", user.Username)
	return user, nil
}
