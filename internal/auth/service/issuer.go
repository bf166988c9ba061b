package service

import (
	"context"
	"fmt"
	"time"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/internal/auth/revocation"
	"github.com/blogware/sessiond/internal/auth/store"
	"github.com/blogware/sessiond/pkg/jwtx"
	"github.com/blogware/sessiond/pkg/slogx"
)

// IssuerService signs new access and refresh tokens and records them in the
// token store. A token is only ever handed out once its ledger row has been
// written; if the write fails the token is discarded.
type IssuerService struct {
	Signer     *jwtx.Signer
	Store      store.Store
	Index      *revocation.Index
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is overridable for tests. Defaults to time.Now.
	Now func() time.Time
}

func NewIssuerService(signer *jwtx.Signer, st store.Store, index *revocation.Index, issuer, audience string, accessTTL, refreshTTL time.Duration) *IssuerService {
	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}

	return &IssuerService{
		Signer:     signer,
		Store:      st,
		Index:      index,
		Issuer:     issuer,
		Audience:   audience,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		Now:        time.Now,
	}
}

// IssueOption tweaks a single issuance.
type IssueOption func(*issueOptions)

type issueOptions struct {
	ttl time.Duration
}

// WithTTL overrides the service default lifetime for one token.
func WithTTL(ttl time.Duration) IssueOption {
	return func(o *issueOptions) { o.ttl = ttl }
}

func applyIssueOptions(defaultTTL time.Duration, opts []IssueOption) issueOptions {
	o := issueOptions{ttl: defaultTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ttl <= 0 {
		o.ttl = defaultTTL
	}
	return o
}

// IssueAccessToken signs an access token for the user and persists its
// ledger entry.
func (s *IssuerService) IssueAccessToken(ctx context.Context, user domain.User, opts ...IssueOption) (domain.IssuedToken, error) {
	o := applyIssueOptions(s.AccessTTL, opts)

	// Accounts without explicit grants still carry the baseline claims.
	perms := user.Permissions
	if len(perms) == 0 {
		perms = domain.DefaultPermissions
	}
	role := user.Role
	if role == "" {
		role = domain.RoleUser
	}

	now := s.Now()
	claims := jwtx.NewAccessClaims(user.ID, user.Email, role, user.Name, perms,
		o.ttl, s.Issuer, s.Audience, now)

	return s.signAndRecord(ctx, claims, user.ID)
}

// IssueRefreshToken signs a refresh token for the user, persists its ledger
// entry, and registers it as rotation-eligible. The index registration only
// happens after the durable write succeeds.
func (s *IssuerService) IssueRefreshToken(ctx context.Context, user domain.User, opts ...IssueOption) (domain.IssuedToken, error) {
	o := applyIssueOptions(s.RefreshTTL, opts)
	now := s.Now()
	claims := jwtx.NewRefreshClaims(user.ID, o.ttl, s.Issuer, s.Audience, now)

	issued, err := s.signAndRecord(ctx, claims, user.ID)
	if err != nil {
		return domain.IssuedToken{}, err
	}

	s.Index.AddRefresh(issued.JTI)
	return issued, nil
}

// IssuePair issues an access and refresh token together, the shape returned
// by login and rotation.
func (s *IssuerService) IssuePair(ctx context.Context, user domain.User) (*domain.TokenPair, error) {
	access, err := s.IssueAccessToken(ctx, user)
	if err != nil {
		return nil, err
	}

	refresh, err := s.IssueRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	l := slogx.FromContext(ctx)
	l.Info("issued token pair",
		"user_id", user.ID,
		"access_jti", access.JTI,
		"refresh_jti", refresh.JTI,
	)

	return &domain.TokenPair{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.AccessTTL.Seconds()),
	}, nil
}

func (s *IssuerService) signAndRecord(ctx context.Context, claims jwtx.Claims, userID int64) (domain.IssuedToken, error) {
	tokenStr, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	rec := domain.TokenRecord{
		JTI:       claims.ID,
		UserID:    userID,
		TokenType: claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
		CreatedAt: claims.IssuedAt.Time,
	}

	if err := s.Store.Tokens().CreateToken(ctx, rec); err != nil {
		return domain.IssuedToken{}, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	return domain.IssuedToken{
		Token:     tokenStr,
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
