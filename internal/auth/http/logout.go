package http

import (
	"net/http"

	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/pkg/httpx"
	"github.com/blogware/sessiond/pkg/slogx"
)

// LogoutHandler serves POST /v1/logout.
// Revokes the presented access token and any refresh token cookie, then
// clears both cookies. Revocation is best-effort and idempotent; logging out
// twice is not an error.
type LogoutHandler struct {
	VerifierService   *service.VerifierService
	RevocationService *service.RevocationService
}

// ServeHTTP godoc
//
//	@Summary		Logout
//	@Description	Revokes the caller's tokens and clears the token cookies.
//	@Tags			Tokens
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		401	{object}	RejectionError	"error, error_description"
//	@Router			/v1/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		ErrInvalidToken.WriteError(w)
		return
	}

	if _, err := h.RevocationService.Revoke(ctx, claims.ID); err != nil {
		log.Error("logout revocation failed", "jti", claims.ID, "err", err)
		ErrServerError.WriteError(w)
		return
	}

	// Also burn the refresh cookie when one rides along. Verification
	// failures are ignored; a dead cookie is already logged out.
	if c, err := r.Cookie(refreshCookieName); err == nil && c.Value != "" {
		if refreshClaims, err := h.VerifierService.Verify(ctx, c.Value); err == nil {
			if _, err := h.RevocationService.Revoke(ctx, refreshClaims.ID); err != nil {
				log.Warn("refresh cookie revocation failed", "err", err)
			}
		}
	}

	clearTokenCookies(w)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}
