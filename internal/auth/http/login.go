package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/pkg/httpx"
	"github.com/blogware/sessiond/pkg/slogx"
)

// LoginHandler serves POST /v1/login.
// Accepts application/x-www-form-urlencoded credentials.
type LoginHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP godoc
//
//	@Summary		Login
//	@Description	Authenticates username/password credentials and issues an access/refresh token pair. Tokens are also mirrored into httponly cookies.
//	@Tags			Tokens
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string			true	"Username"
//	@Param			password	formData	string			true	"Password"
//	@Success		200			{object}	TokenResponse	"access_token, refresh_token, token_type, expires_in"
//	@Failure		400			{object}	RejectionError	"error, error_description"
//	@Failure		401			{object}	RejectionError	"error, error_description"
//	@Failure		403			{object}	RejectionError	"error, error_description"
//	@Header			200			{string}	Cache-Control	"no-store"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		ErrInvalidContentType.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		ErrInvalidFormBody.WriteError(w)
		return
	}

	username := strings.TrimSpace(r.Form.Get("username"))
	password := r.Form.Get("password")
	if username == "" || password == "" {
		ErrInvalidRequest.WriteError(w)
		return
	}

	pair, _, err := h.LoginService.Login(ctx, username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			ErrInvalidCredentials.WriteError(w)
		case errors.Is(err, service.ErrInactiveUser):
			ErrInactiveUser.WriteError(w)
		default:
			log.Error("login failed", "err", err)
			ErrServerError.WriteError(w)
		}
		return
	}

	setTokenCookies(w, pair, h.LoginService.Issuer.RefreshTTL)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
	})
}
