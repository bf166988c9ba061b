package http

import (
	"net/http"
	"time"

	"github.com/blogware/sessiond/internal/auth/domain"
)

// TokenResponse is the body returned by login and refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UserInfoResponse echoes the verified claims of the caller.
type UserInfoResponse struct {
	UserID      int64    `json:"user_id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// RegisterResponse is returned on successful account creation.
type RegisterResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenListResponse wraps the admin token listing.
type TokenListResponse struct {
	Tokens []domain.TokenRecord `json:"tokens"`
	Count  int                  `json:"count"`
}

// RevokeResponse reports whether an admin revocation changed anything.
type RevokeResponse struct {
	JTI     string `json:"jti"`
	Revoked bool   `json:"revoked"`
}

// HealthChecks reports per-dependency health on readyz.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// HealthResponse is the body for livez and readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

// setTokenCookies mirrors the token pair into httponly cookies for browser
// clients. API clients can ignore them and use the JSON body.
func setTokenCookies(w http.ResponseWriter, pair *domain.TokenPair, refreshTTL time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessCookieName,
		Value:    pair.AccessToken,
		Path:     "/",
		MaxAge:   int(pair.ExpiresIn),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    pair.RefreshToken,
		Path:     "/",
		MaxAge:   int(refreshTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearTokenCookies expires both token cookies.
func clearTokenCookies(w http.ResponseWriter) {
	for _, name := range []string{accessCookieName, refreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
