package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/pkg/httpx"
	"github.com/blogware/sessiond/pkg/slogx"
)

// RefreshHandler serves POST /v1/token/refresh.
// The refresh token is taken from the Authorization header, the
// refresh_token form field, or the refresh_token cookie, in that order.
type RefreshHandler struct {
	RotationService *service.RotationService
}

// refreshTokenFromRequest finds the presented refresh token.
func refreshTokenFromRequest(r *http.Request) string {
	if tok := BearerToken(r); tok != "" {
		return tok
	}
	if err := r.ParseForm(); err == nil {
		if tok := strings.TrimSpace(r.Form.Get("refresh_token")); tok != "" {
			return tok
		}
	}
	if c, err := r.Cookie(refreshCookieName); err == nil {
		return c.Value
	}
	return ""
}

// ServeHTTP godoc
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a live refresh token for a new access/refresh pair. The presented refresh token is retired and can never be used again.
//	@Tags			Tokens
//	@Produce		json
//	@Param			refresh_token	formData	string			false	"Refresh token (alternatively via Authorization header or cookie)"
//	@Success		200				{object}	TokenResponse	"access_token, refresh_token, token_type, expires_in"
//	@Failure		400				{object}	RejectionError	"error, error_description"
//	@Failure		401				{object}	RejectionError	"error, error_description"
//	@Header			200				{string}	Cache-Control	"no-store"
//	@Router			/v1/token/refresh [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	refreshToken := refreshTokenFromRequest(r)
	if refreshToken == "" {
		ErrInvalidToken.WriteError(w)
		return
	}

	pair, err := h.RotationService.Rotate(ctx, refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotARefreshToken):
			ErrNotARefreshToken.WriteError(w)
		case errors.Is(err, service.ErrInvalidOrRevoked),
			errors.Is(err, service.ErrUserNotFound):
			ErrInvalidGrant.WriteError(w)
		case errors.Is(err, service.ErrMissingToken),
			errors.Is(err, service.ErrInvalidSignature),
			errors.Is(err, service.ErrExpired),
			errors.Is(err, service.ErrInvalidAudience),
			errors.Is(err, service.ErrInvalidIssuer):
			rejectionForVerifyError(err).WriteError(w)
		default:
			log.Error("refresh rotation failed", "err", err)
			ErrServerError.WriteError(w)
		}
		return
	}

	setTokenCookies(w, pair, h.RotationService.Issuer.RefreshTTL)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	})
}
