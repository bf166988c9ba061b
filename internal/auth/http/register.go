package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/pkg/httpx"
	"github.com/blogware/sessiond/pkg/slogx"
)

// RegisterHandler serves POST /v1/register.
type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// ServeHTTP godoc
//
//	@Summary		Register
//	@Description	Creates a new account. Self-registered accounts receive read and posting permissions.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Account fields"
//	@Success		201		{object}	RegisterResponse
//	@Failure		400		{object}	RejectionError	"error, error_description"
//	@Failure		409		{object}	RejectionError	"error, error_description"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ErrInvalidRequest.WriteError(w)
		return
	}

	user, err := h.RegistrationService.Register(ctx, service.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken):
			ErrUsernameTaken.WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			ErrInvalidRequest.WriteError(w)
		default:
			log.Error("registration failed", "err", err)
			ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, RegisterResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
