package service

import (
	"context"
	"errors"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/pkg/cryptox"
	"github.com/blogware/sessiond/pkg/slogx"
)

// LoginService authenticates username/password credentials and issues a
// token pair. Unknown users and bad passwords are indistinguishable to the
// caller.
type LoginService struct {
	Directory *UserDirectory
	Issuer    *IssuerService
}

func NewLoginService(directory *UserDirectory, issuer *IssuerService) *LoginService {
	return &LoginService{Directory: directory, Issuer: issuer}
}

// Login checks the credentials and issues tokens.
func (s *LoginService) Login(ctx context.Context, username, password string) (*domain.TokenPair, domain.User, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Directory.LookupByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			l.Info("login failed", "username", username, "reason", "unknown_user")
			return nil, domain.User{}, ErrInvalidCredentials
		}
		return nil, domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		l.Info("login failed", "username", username, "reason", "bad_password")
		return nil, domain.User{}, ErrInvalidCredentials
	}

	if !user.IsActive {
		l.Info("login failed", "username", username, "reason", "inactive")
		return nil, domain.User{}, ErrInactiveUser
	}

	pair, err := s.Issuer.IssuePair(ctx, user)
	if err != nil {
		return nil, domain.User{}, err
	}

	l.Info("login succeeded", "user_id", user.ID)
	return pair, user, nil
}
