package jwtx

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type values carried in the "type" claim. Access and refresh tokens
// share the jti namespace but carry different payloads.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Default TTLs for the two token types.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims is the session-token payload. Access tokens carry the authorization
// fields (user_id, email, role, name, permissions); refresh tokens carry only
// type and user_id on top of the registered claims.
type Claims struct {
	jwt.RegisteredClaims

	// TokenType is "access" or "refresh".
	TokenType string `json:"type"`

	// UserID is the numeric account id the subject string is derived from.
	UserID int64 `json:"user_id,omitempty"`

	// Email is optional; accounts may not have one.
	Email string `json:"email,omitempty"`

	// Role is the coarse authorization tier ("user", "editor", "admin").
	Role string `json:"role,omitempty"`

	// Name is the display name, falls back to the username.
	Name string `json:"name,omitempty"`

	// Permissions is an unordered set of permission strings.
	Permissions []string `json:"permissions,omitempty"`
}

// NewAccessClaims builds the claim set for an access token. now is truncated
// to whole seconds so iat/nbf/exp survive the NumericDate round trip exactly.
func NewAccessClaims(
	userID int64,
	email, role, name string,
	permissions []string,
	ttl time.Duration,
	issuer, audience string,
	now time.Time,
) Claims {
	now = now.UTC().Truncate(time.Second)
	return Claims{
		RegisteredClaims: registeredClaims(userID, ttl, issuer, audience, now),
		TokenType:        TokenTypeAccess,
		UserID:           userID,
		Email:            email,
		Role:             role,
		Name:             name,
		Permissions:      permissions,
	}
}

// NewRefreshClaims builds the claim set for a refresh token. Refresh tokens
// never carry role, email, or permissions.
func NewRefreshClaims(userID int64, ttl time.Duration, issuer, audience string, now time.Time) Claims {
	now = now.UTC().Truncate(time.Second)
	return Claims{
		RegisteredClaims: registeredClaims(userID, ttl, issuer, audience, now),
		TokenType:        TokenTypeRefresh,
		UserID:           userID,
	}
}

func registeredClaims(userID int64, ttl time.Duration, issuer, audience string, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   SubjectForUser(userID),
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        NewJTI(),
	}
}

// NewJTI returns a globally unique identifier for the "jti" claim. Access and
// refresh tokens draw from the same namespace; a jti is never reused.
func NewJTI() string {
	return uuid.NewString()
}

// SubjectForUser renders the stable subject string for an account id.
func SubjectForUser(userID int64) string {
	return fmt.Sprintf("user_%d", userID)
}

// ValidateIssuer checks the issuer matches the expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks the expected audience is present.
func (c *Claims) ValidateAudience(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if !slices.Contains(c.Audience, expected) {
		return ErrAudience
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't used
// before it is valid (nbf).
func (c *Claims) ValidateExpiry(now time.Time) error {
	now = now.UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
