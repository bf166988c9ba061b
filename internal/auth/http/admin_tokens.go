package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/pkg/httpx"
	"github.com/blogware/sessiond/pkg/slogx"
)

// AdminTokensHandler serves the administrative token surface.
type AdminTokensHandler struct {
	AdminService      *service.AdminService
	RevocationService *service.RevocationService
}

// HandleList godoc
//
//	@Summary		List issued tokens
//	@Description	Returns issued tokens newest-first, optionally filtered by user (username, email, or id). Capped at 200 records.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			user	query		string	false	"Username, email, or numeric user id"
//	@Param			limit	query		int		false	"Maximum records to return (default and cap 200)"
//	@Success		200		{object}	TokenListResponse
//	@Failure		401		{object}	RejectionError	"error, error_description"
//	@Failure		403		{object}	RejectionError	"error, error_description"
//	@Failure		404		{object}	RejectionError	"error, error_description"
//	@Router			/v1/admin/tokens [get].
func (h *AdminTokensHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userQuery := strings.TrimSpace(r.URL.Query().Get("user"))

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ErrInvalidRequest.WriteError(w)
			return
		}
		limit = n
	}

	records, err := h.AdminService.ListTokens(ctx, userQuery, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			ErrNotFound.WriteError(w)
		default:
			log.Error("token listing failed", "err", err)
			ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, TokenListResponse{
		Tokens: records,
		Count:  len(records),
	})
}

type revokeRequest struct {
	JTI string `json:"jti"`
}

// HandleRevoke godoc
//
//	@Summary		Revoke a token
//	@Description	Revokes a token by jti. Responds 404 when no ledger record exists; revoking an already revoked token succeeds with revoked=false.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		revokeRequest	true	"jti to revoke"
//	@Success		200		{object}	RevokeResponse
//	@Failure		400		{object}	RejectionError	"error, error_description"
//	@Failure		404		{object}	RejectionError	"error, error_description"
//	@Router			/v1/admin/revoke [post].
func (h *AdminTokensHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req revokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.JTI) == "" {
		ErrInvalidRequest.WriteError(w)
		return
	}

	if _, err := h.AdminService.Store.Tokens().GetTokenByJTI(ctx, req.JTI); err != nil {
		ErrNotFound.WriteError(w)
		return
	}

	flipped, err := h.RevocationService.Revoke(ctx, req.JTI)
	if err != nil {
		log.Error("admin revocation failed", "jti", req.JTI, "err", err)
		ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, RevokeResponse{
		JTI:     req.JTI,
		Revoked: flipped,
	})
}
