package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	httpmiddleware "storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/metrics"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	t     *testing.T
	echo  *echo.Echo
	store *memory.Store
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth:    &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Metrics: &config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	cfg.HTTP.MaxRequestBodySize = "1KB"
	cfg.Session = config.SessionConfig{
		Secret:     "test_session_secret_key_very_long_for_testing",
		CookieName: "session",
		TTL:        time.Hour,
		Issuer:     "storefront-test",
	}

	return cfg
}

func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()

	cfg := newTestConfig()
	for _, fn := range mutate {
		fn(cfg)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := metrics.NewRegistry()
	collector := metrics.NewMetricsCollector(cfg, registry)

	sessions, err := auth.NewJWTSessionAuthority(cfg)
	require.NoError(t, err)

	oldPrice := 129.99
	store := memory.NewStore()
	store.SeedProducts(
		&entity.Product{ID: 1, Type: "laptops", Name: "Aero 14", Price: 99.99, OldPrice: &oldPrice, InStock: true, ImgSrc: "/img/aero.png"},
		&entity.Product{ID: 2, Type: "laptops", Name: "Aero 16", Price: 149.99, InStock: false, ImgSrc: "/img/aero16.png"},
		&entity.Product{ID: 3, Type: "phones", Name: "Pocket", Price: 49.5, InStock: true, ImgSrc: "/img/pocket.png"},
	)

	identityRepo := memory.NewIdentityRepository(store)
	accountUC := impl.NewAccountService(impl.AccountServiceParams{
		TxManager:      memory.NewTransactionManager(store),
		CredentialRepo: memory.NewCredentialRepository(store),
		IdentityRepo:   identityRepo,
		Hasher:         auth.NewBcryptHasher(cfg),
		Sessions:       sessions,
		Metrics:        collector,
		Logger:         logger,
	})
	profileUC := impl.NewProfileService(impl.ProfileServiceParams{IdentityRepo: identityRepo, Logger: logger})
	catalogUC := impl.NewCatalogService(memory.NewProductRepository(store))
	reviewUC := impl.NewReviewService(impl.ReviewServiceParams{ReviewRepo: memory.NewReviewRepository(store), Logger: logger})

	sessionMiddleware := httpmiddleware.NewSessionMiddleware(sessions, collector, cfg, logger)

	e := newEcho(cfg, logger, registry)
	router.NewRouter(router.RouterParams{
		Config:            cfg,
		AccountHandler:    handler.NewAccountHandler(accountUC, sessionMiddleware),
		ProfileHandler:    handler.NewProfileHandler(profileUC),
		CatalogHandler:    handler.NewCatalogHandler(catalogUC),
		ReviewHandler:     handler.NewReviewHandler(reviewUC),
		SessionMiddleware: sessionMiddleware,
	}).RegisterRoutes(e)

	return &testServer{t: t, echo: e, store: store}
}

func (s *testServer) do(method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	return rec
}

// login registers an account and returns its id and session cookie.
func (s *testServer) login(email, name, password string) (string, *http.Cookie) {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/register", `{"email":"`+email+`","name":"`+name+`","password":"`+password+`"}`)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/login", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &body))

	cookies := rec.Result().Cookies()
	require.Len(s.t, cookies, 1)

	return body["userId"].(string), cookies[0]
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) domainerrors.ErrorResponse {
	t.Helper()

	var body domainerrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

func TestServer_RegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/register", `{"email":"  Alice@Example.com ","name":"Alice","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))

	var registered map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.Equal(t, "alice@example.com", registered["email"])
	assert.Equal(t, "Alice", registered["name"])
	assert.NotEmpty(t, registered["id"])
	assert.NotEmpty(t, registered["joined"])
	assert.NotContains(t, registered, "password")

	rec = s.do(http.MethodPost, "/login", `{"email":" ALICE@example.com ","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loggedIn map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loggedIn))
	assert.Equal(t, map[string]any{"userId": registered["id"], "name": "Alice"}, loggedIn)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "session", cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)
}

func TestServer_RegisterDuplicate(t *testing.T) {
	s := newTestServer(t)

	body := `{"email":"bob@example.com","name":"Bob","password":"pw-one"}`
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/register", body).Code)

	rec := s.do(http.MethodPost, "/register", `{"email":"BOB@example.com","name":"Bobby","password":"pw-two"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, domainerrors.ErrDuplicateRegistration.ErrorCode(), decodeError(t, rec).Code)

	credentials, identities := s.store.Counts()
	assert.Equal(t, 1, credentials)
	assert.Equal(t, 1, identities)
}

func TestServer_RegisterRejectsBadInput(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "missing password", body: `{"email":"a@example.com","name":"A"}`},
		{name: "invalid email", body: `{"email":"not-an-email","name":"A","password":"pw"}`},
		{name: "malformed json", body: `{"email":`},
		{name: "password longer than bcrypt accepts", body: `{"email":"a@example.com","name":"A","password":"` + strings.Repeat("x", 73) + `"}`},
		{name: "multibyte password over 72 bytes", body: `{"email":"a@example.com","name":"A","password":"` + strings.Repeat("é", 40) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(http.MethodPost, "/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), decodeError(t, rec).Code)
		})
	}

	credentials, identities := s.store.Counts()
	assert.Zero(t, credentials)
	assert.Zero(t, identities)
}

func TestServer_RegisterAcceptsMultibytePasswordWithinLimit(t *testing.T) {
	s := newTestServer(t)

	// 36 runes, 72 bytes.
	password := strings.Repeat("é", 36)
	rec := s.do(http.MethodPost, "/register", `{"email":"eve@example.com","name":"Eve","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/login", `{"email":"eve@example.com","password":"`+password+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestServer_RegisterBodyTooLarge(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/register", `{"email":"a@example.com","name":"`+strings.Repeat("n", 2048)+`","password":"pw"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "REQUEST_TOO_LARGE", decodeError(t, rec).Code)
}

func TestServer_LoginFailuresLookAlike(t *testing.T) {
	s := newTestServer(t)
	s.login("carol@example.com", "Carol", "right-password")

	wrongPassword := s.do(http.MethodPost, "/login", `{"email":"carol@example.com","password":"right-passworD"}`)
	unknownEmail := s.do(http.MethodPost, "/login", `{"email":"nobody@example.com","password":"right-password"}`)

	for _, rec := range []*httptest.ResponseRecorder{wrongPassword, unknownEmail} {
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())

		body := decodeError(t, rec)
		assert.Equal(t, "Invalid credentials", body.Error)
		assert.Equal(t, domainerrors.ErrInvalidCredentials.ErrorCode(), body.Code)
	}
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestServer_Profile(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceCookie := s.login("alice@example.com", "Alice", "pw-alice")
	bobID, _ := s.login("bob@example.com", "Bob", "pw-bob")

	rec := s.do(http.MethodGet, "/profile/"+aliceID, "", aliceCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var profile map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, aliceID, profile["id"])
	assert.Equal(t, "alice@example.com", profile["email"])
	assert.Equal(t, "Alice", profile["name"])

	rec = s.do(http.MethodGet, "/profile/"+aliceID, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, domainerrors.ErrUnauthenticated.ErrorCode(), decodeError(t, rec).Code)

	rec = s.do(http.MethodGet, "/profile/"+bobID, "", aliceCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodGet, "/profile/not-a-uuid", "", aliceCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_TamperedSessionIsAnonymous(t *testing.T) {
	s := newTestServer(t)
	aliceID, cookie := s.login("alice@example.com", "Alice", "pw-alice")

	// Flip one character inside the signature.
	tampered := *cookie
	pos := len(cookie.Value) - 5
	replacement := byte('A')
	if cookie.Value[pos] == replacement {
		replacement = 'B'
	}
	tampered.Value = cookie.Value[:pos] + string(replacement) + cookie.Value[pos+1:]

	rec := s.do(http.MethodGet, "/profile/"+aliceID, "", &tampered)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_session_rejected_total 1")
	assert.Contains(t, rec.Body.String(), `storefront_logins_total{outcome="success"} 1`)
}

func TestServer_Products(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/products/type/laptops", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listing []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	require.Len(t, listing, 2)
	assert.EqualValues(t, 1, listing[0]["id"])
	assert.InDelta(t, 129.99, listing[0]["oldprice"], 0.001)
	assert.Nil(t, listing[1]["oldprice"])
	assert.Contains(t, listing[1], "oldprice")

	rec = s.do(http.MethodGet, "/products/type/tablets", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(http.MethodGet, "/products/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var product map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	assert.Equal(t, "Aero 14", product["name"])
	assert.Equal(t, true, product["instock"])
	assert.NotContains(t, product, "oldprice")

	for _, path := range []string{"/products/999", "/products/abc"} {
		rec = s.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, path)

		body := decodeError(t, rec)
		assert.Equal(t, domainerrors.ErrNotFound.ErrorCode(), body.Code)
		assert.NotContains(t, rec.Body.String(), "price")
	}
}

func TestServer_Reviews(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceCookie := s.login("alice@example.com", "Alice", "pw-alice")
	bobID, _ := s.login("bob@example.com", "Bob", "pw-bob")

	rec := s.do(http.MethodGet, "/reviews", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reviews":[]}`, rec.Body.String())

	body := `{"userId":"` + aliceID + `","comment":"Great laptop"}`

	rec = s.do(http.MethodPost, "/reviews", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/reviews", `{"userId":"`+bobID+`","comment":"Not mine"}`, aliceCookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/reviews", `{"userId":"`+aliceID+`","comment":""}`, aliceCookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/reviews", body, aliceCookie)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"content":"Great laptop","userName":"Alice"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/reviews", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"reviews":[{"content":"Great laptop","userId":"`+aliceID+`","userName":"Alice"}]}`, rec.Body.String())
}

func TestServer_RateLimitsCredentialEndpoints(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit = &config.RateLimitConfig{Enabled: true, RPS: 0.01, Burst: 1, ExpiresIn: time.Minute}
	})

	body := `{"email":"nobody@example.com","password":"pw"}`
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/login", body).Code)

	rec := s.do(http.MethodPost, "/login", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "RATE_LIMITED", decodeError(t, rec).Code)

	// Reads are never throttled.
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/reviews", "").Code)
}

func TestServer_HealthAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = s.do(http.MethodGet, "/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, domainerrors.ErrNotFound.ErrorCode(), decodeError(t, rec).Code)
}

func TestServer_MetricsDisabled(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Metrics.Enabled = false
	})

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/metrics", "").Code)
}
