package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/pkg/httpx"
	"github.com/blogware/sessiond/pkg/jwtx"
	"github.com/blogware/sessiond/pkg/slogx"
)

type claimsCtxKey struct{}

// ClaimsFromContext returns the verified access token claims stashed by
// AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (*jwtx.Claims, bool) {
	claims, ok := ctx.Value(claimsCtxKey{}).(*jwtx.Claims)
	return claims, ok
}

// BearerToken extracts the compact token from the Authorization header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// AuthnMiddleware verifies the bearer access token and stashes its claims
// and subject in the request context. Refresh tokens are rejected; they only
// belong on the rotation endpoint.
func AuthnMiddleware(verifier *service.VerifierService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifier.Verify(r.Context(), BearerToken(r))
			if err != nil {
				rejectionForVerifyError(err).WriteError(w)
				return
			}

			if claims.TokenType != jwtx.TokenTypeAccess {
				ErrInvalidToken.WriteError(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsCtxKey{}, claims)
			ctx = httpx.ContextWithUserID(ctx, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects requests whose verified claims do not carry the role.
// Must sit inside AuthnMiddleware.
func RequireRole(role string) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				ErrInvalidToken.WriteError(w)
				return
			}

			if claims.Role != role {
				slogx.FromContext(r.Context()).Info("role check failed",
					"required", role, "got", claims.Role, "user_id", claims.UserID)
				ErrForbidden.WriteError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
