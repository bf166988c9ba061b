package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/internal/auth/revocation"
	"github.com/blogware/sessiond/internal/auth/store"
	"github.com/blogware/sessiond/pkg/jwtx"
	"github.com/blogware/sessiond/pkg/slogx"
)

// RotationService exchanges a live refresh token for a fresh token pair,
// retiring the presented token so it can never rotate again.
//
// The in-memory Retire is the atomic gate: when two requests race on the
// same refresh token, exactly one passes it. The losing request fails with
// ErrInvalidOrRevoked before touching the store.
type RotationService struct {
	Verifier  *VerifierService
	Issuer    *IssuerService
	Store     store.Store
	Index     *revocation.Index
	Directory *UserDirectory
}

func NewRotationService(verifier *VerifierService, issuer *IssuerService, st store.Store, index *revocation.Index, directory *UserDirectory) *RotationService {
	return &RotationService{
		Verifier:  verifier,
		Issuer:    issuer,
		Store:     st,
		Index:     index,
		Directory: directory,
	}
}

// Rotate verifies the refresh token, retires it, and issues a new pair for
// its user.
func (s *RotationService) Rotate(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	l := slogx.FromContext(ctx)

	claims, err := s.Verifier.Verify(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRevoked) {
			return nil, ErrInvalidOrRevoked
		}
		return nil, err
	}

	if claims.TokenType != jwtx.TokenTypeRefresh {
		return nil, ErrNotARefreshToken
	}

	if !s.Index.Retire(claims.ID) {
		l.Info("refresh rotation rejected", "jti", claims.ID)
		return nil, ErrInvalidOrRevoked
	}

	// The index decision is already final; the store write makes it durable
	// so it survives the next restart's seed.
	if _, err := s.Store.Tokens().MarkTokenRevoked(ctx, claims.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	user, err := s.Directory.LookupByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	pair, err := s.Issuer.IssuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	l.Info("refresh token rotated", "user_id", user.ID, "retired_jti", claims.ID)
	return pair, nil
}
