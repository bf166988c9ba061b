package service

import (
	"context"
	"time"

	"github.com/blogware/sessiond/internal/auth/revocation"
	"github.com/blogware/sessiond/pkg/jwtx"
)

// VerifyOptions selects which claim checks run on top of signature
// verification. Both default to true through NewVerifierService.
type VerifyOptions struct {
	CheckAudience bool
	CheckIssuer   bool
}

// VerifierService validates a compact JWT and answers with its claims.
//
// Checks run in a fixed order and stop at the first failure: presence,
// signature, expiry, audience, issuer, revocation. The revocation check is
// answered entirely by the in-memory index; the token store is never
// consulted on the verification path.
type VerifierService struct {
	Verifier *jwtx.Verifier
	Index    *revocation.Index
	Issuer   string
	Audience string

	// Now is overridable for tests. Defaults to time.Now.
	Now func() time.Time
}

func NewVerifierService(verifier *jwtx.Verifier, index *revocation.Index, issuer, audience string) *VerifierService {
	return &VerifierService{
		Verifier: verifier,
		Index:    index,
		Issuer:   issuer,
		Audience: audience,
		Now:      time.Now,
	}
}

// Verify validates tokenStr with audience and issuer checks enabled.
func (s *VerifierService) Verify(ctx context.Context, tokenStr string) (*jwtx.Claims, error) {
	return s.VerifyWithOptions(ctx, tokenStr, VerifyOptions{CheckAudience: true, CheckIssuer: true})
}

// VerifyWithOptions validates tokenStr with the given claim checks.
func (s *VerifierService) VerifyWithOptions(ctx context.Context, tokenStr string, opts VerifyOptions) (*jwtx.Claims, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.Verifier.Parse(tokenStr)
	if err != nil {
		// Malformed tokens, unknown kids, and signature failures all fail
		// closed as a signature problem.
		return nil, ErrInvalidSignature
	}

	now := s.Now()

	if err := claims.ValidateExpiry(now); err != nil {
		return nil, ErrExpired
	}

	if opts.CheckAudience {
		if err := claims.ValidateAudience(s.Audience); err != nil {
			return nil, ErrInvalidAudience
		}
	}

	if opts.CheckIssuer {
		if err := claims.ValidateIssuer(s.Issuer); err != nil {
			return nil, ErrInvalidIssuer
		}
	}

	if s.Index.IsRevoked(claims.ID) {
		return nil, ErrRevoked
	}

	return claims, nil
}
