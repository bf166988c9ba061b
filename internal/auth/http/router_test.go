package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/blogware/sessiond/internal/auth/domain"
	"github.com/blogware/sessiond/internal/auth/revocation"
	"github.com/blogware/sessiond/internal/auth/service"
	"github.com/blogware/sessiond/internal/auth/store/drivers/sqlite"
	"github.com/blogware/sessiond/pkg/cryptox"
	"github.com/blogware/sessiond/pkg/jwtx"
	"github.com/blogware/sessiond/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*Router, *sqlite.Store) {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	privPEM, _, err := cryptox.GenerateRSAKeyPair(2048)
	require.NoError(t, err)
	signer, err := jwtx.NewSignerRS256("test-key", privPEM)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	index := revocation.NewIndex()
	issuer := service.NewIssuerService(signer, s, index, "myblogapp.com", "myblogapp_users",
		15*time.Minute, 30*24*time.Hour)
	verifier := service.NewVerifierService(jwtx.NewVerifierRS256(keys), index,
		"myblogapp.com", "myblogapp_users")
	directory := service.NewUserDirectory(s)

	logger := slogx.New(slogx.Config{Service: "sessiond-test", Level: "error", Format: "text"})

	r := NewRouter(keys, "test", s, logger)
	r.VerifierService = verifier
	r.LoginService = service.NewLoginService(directory, issuer)
	r.RegistrationService = service.NewRegistrationService(s)
	r.RotationService = service.NewRotationService(verifier, issuer, s, index, directory)
	r.RevocationService = service.NewRevocationService(s, index)
	r.Directory = directory
	r.AdminService = service.NewAdminService(s)
	r.ApplyRoutes()

	return r, s
}

func createAccount(t *testing.T, s *sqlite.Store, username, password, role string) int64 {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	id, err := s.Users().CreateUser(context.Background(), domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		Permissions:  domain.DefaultPermissions,
	})
	require.NoError(t, err)
	return id
}

func doLogin(t *testing.T, r *Router, username, password string) (TokenResponse, *http.Response) {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/v1/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body TokenResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return body, rec.Result()
}

func TestLoginEndpoint(t *testing.T) {
	r, s := newTestRouter(t)
	createAccount(t, s, "alice", "s3cret", domain.RoleUser)

	tokens, resp := doLogin(t, r, "alice", "s3cret")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "Bearer", tokens.TokenType)
	require.NotEmpty(t, tokens.AccessToken)
	require.NotEmpty(t, tokens.RefreshToken)
	require.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

	var names []string
	for _, c := range resp.Cookies() {
		names = append(names, c.Name)
		require.True(t, c.HttpOnly)
	}
	require.ElementsMatch(t, []string{"access_token", "refresh_token"}, names)

	_, resp = doLogin(t, r, "alice", "wrong")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegisterEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"username":"newbie","email":"newbie@example.com","password":"hunter2!","name":"New"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created RegisterResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Positive(t, created.UserID)

	// Duplicate username conflicts.
	req = httptest.NewRequest(http.MethodPost, "/v1/register", strings.NewReader(body))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestUserInfoEndpoint(t *testing.T) {
	r, s := newTestRouter(t)
	createAccount(t, s, "alice", "s3cret", domain.RoleUser)

	tokens, _ := doLogin(t, r, "alice", "s3cret")

	req := httptest.NewRequest(http.MethodGet, "/v1/userinfo", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var info UserInfoResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.Equal(t, "alice", info.Username)
	require.Equal(t, []string{"read_post"}, info.Permissions)

	// No token.
	req = httptest.NewRequest(http.MethodGet, "/v1/userinfo", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Refresh token is not an access token.
	req = httptest.NewRequest(http.MethodGet, "/v1/userinfo", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshEndpoint(t *testing.T) {
	r, s := newTestRouter(t)
	createAccount(t, s, "alice", "s3cret", domain.RoleUser)

	tokens, _ := doLogin(t, r, "alice", "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/v1/token/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var rotated TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rotated))
	require.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The spent refresh token is gone.
	req = httptest.NewRequest(http.MethodPost, "/v1/token/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Access tokens are rejected outright.
	req = httptest.NewRequest(http.MethodPost, "/v1/token/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+rotated.AccessToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshFromCookie(t *testing.T) {
	r, s := newTestRouter(t)
	createAccount(t, s, "alice", "s3cret", domain.RoleUser)

	tokens, _ := doLogin(t, r, "alice", "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/v1/token/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: tokens.RefreshToken})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutEndpoint(t *testing.T) {
	r, s := newTestRouter(t)
	createAccount(t, s, "alice", "s3cret", domain.RoleUser)

	tokens, _ := doLogin(t, r, "alice", "s3cret")

	req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: tokens.RefreshToken})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// Both tokens are dead now.
	req = httptest.NewRequest(http.MethodGet, "/v1/userinfo", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/token/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.RefreshToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	r, s := newTestRouter(t)
	createAccount(t, s, "alice", "s3cret", domain.RoleUser)
	createAccount(t, s, "root", "sup3r", domain.RoleAdmin)

	userTokens, _ := doLogin(t, r, "alice", "s3cret")
	adminTokens, _ := doLogin(t, r, "root", "sup3r")

	// Plain users are forbidden.
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/tokens", nil)
	req.Header.Set("Authorization", "Bearer "+userTokens.AccessToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// Admins can list, newest first, filtered by user.
	req = httptest.NewRequest(http.MethodGet, "/v1/admin/tokens?user=alice", nil)
	req.Header.Set("Authorization", "Bearer "+adminTokens.AccessToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list TokenListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, 2, list.Count) // alice's access + refresh

	// Unknown user filter is a 404.
	req = httptest.NewRequest(http.MethodGet, "/v1/admin/tokens?user=nobody", nil)
	req.Header.Set("Authorization", "Bearer "+adminTokens.AccessToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRevoke(t *testing.T) {
	r, s := newTestRouter(t)
	createAccount(t, s, "alice", "s3cret", domain.RoleUser)
	createAccount(t, s, "root", "sup3r", domain.RoleAdmin)

	userTokens, _ := doLogin(t, r, "alice", "s3cret")
	adminTokens, _ := doLogin(t, r, "root", "sup3r")

	// Find alice's access jti through the listing.
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/tokens?user=alice", nil)
	req.Header.Set("Authorization", "Bearer "+adminTokens.AccessToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list TokenListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.NotEmpty(t, list.Tokens)

	var accessJTI string
	for _, rec := range list.Tokens {
		if rec.TokenType == jwtx.TokenTypeAccess {
			accessJTI = rec.JTI
		}
	}
	require.NotEmpty(t, accessJTI)

	revoke := func(jti string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/revoke",
			strings.NewReader(`{"jti":"`+jti+`"}`))
		req.Header.Set("Authorization", "Bearer "+adminTokens.AccessToken)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec = revoke(accessJTI)
	require.Equal(t, http.StatusOK, rec.Code)
	var out RevokeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.True(t, out.Revoked)

	// Idempotent repeat.
	rec = revoke(accessJTI)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.False(t, out.Revoked)

	// Unknown jti is a 404.
	rec = revoke("never-issued")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Alice's revoked access token no longer verifies.
	req = httptest.NewRequest(http.MethodGet, "/v1/userinfo", nil)
	req.Header.Set("Authorization", "Bearer "+userTokens.AccessToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWKSEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var jwks jwtx.JWKS
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jwks))
	require.Len(t, jwks.Keys, 1)
	require.Equal(t, "test-key", jwks.Keys[0].Kid)
	require.Equal(t, "RS256", jwks.Keys[0].Alg)
}

func TestHealthEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/livez", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, path)

		var health HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
		require.Equal(t, "ok", health.Status, path)
	}
}
