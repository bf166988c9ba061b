package http

import (
	"errors"
	"net/http"

	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/pkg/httpx"
)

// RejectionError is the JSON error body returned by every endpoint.
type RejectionError struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
	Status      int    `json:"-"`
}

func (e RejectionError) Error() string { return e.Code }

// WriteError writes the rejection as a JSON response.
func (e RejectionError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.Status, e)
}

var (
	ErrInvalidRequest = RejectionError{
		Code: "invalid_request", Description: "The request is missing a required parameter or is malformed.",
		Status: http.StatusBadRequest,
	}
	ErrInvalidContentType = RejectionError{
		Code: "invalid_request", Description: "Content-Type must be application/x-www-form-urlencoded.",
		Status: http.StatusBadRequest,
	}
	ErrInvalidFormBody = RejectionError{
		Code: "invalid_request", Description: "Unable to parse the request body.",
		Status: http.StatusBadRequest,
	}
	ErrInvalidCredentials = RejectionError{
		Code: "invalid_credentials", Description: "Incorrect username or password.",
		Status: http.StatusUnauthorized,
	}
	ErrInactiveUser = RejectionError{
		Code: "inactive_user", Description: "The account is deactivated.",
		Status: http.StatusForbidden,
	}
	ErrInvalidToken = RejectionError{
		Code: "invalid_token", Description: "The token is missing, malformed, or failed verification.",
		Status: http.StatusUnauthorized,
	}
	ErrExpiredToken = RejectionError{
		Code: "token_expired", Description: "The token has expired.",
		Status: http.StatusUnauthorized,
	}
	ErrRevokedToken = RejectionError{
		Code: "token_revoked", Description: "The token has been revoked.",
		Status: http.StatusUnauthorized,
	}
	ErrNotARefreshToken = RejectionError{
		Code: "invalid_grant", Description: "The presented token is not a refresh token.",
		Status: http.StatusBadRequest,
	}
	ErrInvalidGrant = RejectionError{
		Code: "invalid_grant", Description: "The refresh token is invalid or has been revoked.",
		Status: http.StatusUnauthorized,
	}
	ErrForbidden = RejectionError{
		Code: "forbidden", Description: "The token does not carry the required role.",
		Status: http.StatusForbidden,
	}
	ErrUsernameTaken = RejectionError{
		Code: "username_taken", Description: "An account with that username or email already exists.",
		Status: http.StatusConflict,
	}
	ErrNotFound = RejectionError{
		Code: "not_found", Description: "The requested record does not exist.",
		Status: http.StatusNotFound,
	}
	ErrServerError = RejectionError{
		Code: "server_error", Description: "The server encountered an unexpected condition.",
		Status: http.StatusInternalServerError,
	}
)

// rejectionForVerifyError maps verification failures to their HTTP rejection.
func rejectionForVerifyError(err error) RejectionError {
	switch {
	case errors.Is(err, service.ErrExpired):
		return ErrExpiredToken
	case errors.Is(err, service.ErrRevoked):
		return ErrRevokedToken
	case errors.Is(err, service.ErrMissingToken),
		errors.Is(err, service.ErrInvalidSignature),
		errors.Is(err, service.ErrInvalidAudience),
		errors.Is(err, service.ErrInvalidIssuer):
		return ErrInvalidToken
	default:
		return ErrServerError
	}
}
