package service

import "errors"

// Verification failures, in the order checks run. A token that fails more
// than one check is reported with the first failure.
var (
	ErrMissingToken     = errors.New("missing_token")
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrExpired          = errors.New("token_expired")
	ErrInvalidAudience  = errors.New("invalid_audience")
	ErrInvalidIssuer    = errors.New("invalid_issuer")
	ErrRevoked          = errors.New("token_revoked")
)

// Rotation failures.
var (
	ErrNotARefreshToken = errors.New("not_a_refresh_token")
	ErrInvalidOrRevoked = errors.New("invalid_or_revoked_refresh_token")
	ErrUserNotFound     = errors.New("user_not_found")
)

// Account and persistence failures.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUsernameTaken      = errors.New("username_taken")
	ErrInactiveUser       = errors.New("inactive_user")
	ErrPersistenceFailure = errors.New("persistence_failure")
)
