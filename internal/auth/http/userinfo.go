package http

import (
	"net/http"

	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/pkg/httpx"
	"github.com/blogware/sessiond/pkg/slogx"
)

// UserInfoHandler serves GET /v1/userinfo.
type UserInfoHandler struct {
	Directory *service.UserDirectory
}

// ServeHTTP godoc
//
//	@Summary		Get user information
//	@Description	Returns the account behind the verified access token.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	UserInfoResponse
//	@Failure		401	{object}	RejectionError	"error, error_description"
//	@Failure		500	{object}	RejectionError	"error, error_description"
//	@Router			/v1/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.Directory.LookupByID(ctx, claims.UserID)
	if err != nil {
		log.Warn("failed to load user", "user_id", claims.UserID, "err", err)
		ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, UserInfoResponse{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		Permissions: user.Permissions,
	})
}
