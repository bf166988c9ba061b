package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/internal/auth/store"
	"github.com/blogware/sessiond/pkg/httpx"
	"github.com/blogware/sessiond/pkg/jwtx"
	"github.com/blogware/sessiond/pkg/slogx"

	_ "github.com/blogware/sessiond/api/sessiond" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	VerifierService     *service.VerifierService
	LoginService        *service.LoginService
	RegistrationService *service.RegistrationService
	RotationService     *service.RotationService
	RevocationService   *service.RevocationService
	Directory           *service.UserDirectory
	AdminService        *service.AdminService
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTokens()
	r.registerUsers()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Session Credential Service API
//	@version		0.1.0
//	@description	Issues, verifies, rotates, and revokes signed session credentials (JWT access and refresh tokens).
//	@description
//	@description				All tokens are signed using RS256 (RSA-SHA256) and can be verified using the JWKS endpoint.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTokens() {
	// POST /v1/login - strict rate limit by IP + username to slow brute force
	loginHandler := &LoginHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"),
		),
	)

	// POST /v1/token/refresh - strict rate limit by IP
	refreshHandler := &RefreshHandler{RotationService: r.RotationService}
	r.Mux.Handle("POST /v1/token/refresh",
		httpx.Chain(refreshHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/logout - authenticated, moderate limit
	logoutHandler := &LogoutHandler{
		VerifierService:   r.VerifierService,
		RevocationService: r.RevocationService,
	}
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(logoutHandler,
			AuthnMiddleware(r.VerifierService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /.well-known/jwks.json - public endpoint with high limit
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerUsers() {
	// POST /v1/register - strict rate limit by IP (public signup endpoint)
	registerHandler := &RegisterHandler{RegistrationService: r.RegistrationService}
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /v1/userinfo - authenticated, lenient limit by user
	userInfoHandler := &UserInfoHandler{Directory: r.Directory}
	r.Mux.Handle("GET /v1/userinfo",
		httpx.Chain(userInfoHandler,
			AuthnMiddleware(r.VerifierService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminTokensHandler{
		AdminService:      r.AdminService,
		RevocationService: r.RevocationService,
	}

	// Both endpoints require a verified access token with the admin role.
	r.Mux.Handle("GET /v1/admin/tokens",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			AuthnMiddleware(r.VerifierService),
			RequireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/admin/revoke",
		httpx.Chain(http.HandlerFunc(h.HandleRevoke),
			AuthnMiddleware(r.VerifierService),
			RequireRole(domain.RoleAdmin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
