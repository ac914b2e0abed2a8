package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/mock"
	"github.com/MKhiriev/go-auth-portal/internal/service"
	"github.com/MKhiriev/go-auth-portal/models"
)

var testAuthConfig = config.Auth{
	SessionTTL:        14 * 24 * time.Hour,
	SessionCookieName: "sessionid",
	CSRFCookieName:    "csrftoken",
	CSRFKey:           "test-csrf-key",
	CookieSameSite:    "lax",
	LoginURL:          "/login",
	LoginRedirectURL:  "/dashboard",
	LogoutRedirectURL: "/login",
	SignupRedirectURL: "/dashboard",
}

// newTestHandler returns a Handler with a nop logger and no services, enough
// for middleware that does not reach the service layer.
func newTestHandler() *Handler {
	return &Handler{cfg: testAuthConfig, pages: defaultPages, logger: logger.Nop()}
}

// testEnv is a full router over a mocked AuthService, a mocked
// AppInfoService and the real CSRF service.
type testEnv struct {
	router  http.Handler
	handler *Handler
	auth    *mock.MockAuthService
	appInfo *mock.MockAppInfoService
	csrf    service.CSRFService

	// csrfSecret is sent as the CSRF cookie by post; csrfToken is its form
	// token.
	csrfSecret string
	csrfToken  string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	auth := mock.NewMockAuthService(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)
	csrf := service.NewCSRFService(testAuthConfig)

	secret, err := csrf.NewSecret()
	require.NoError(t, err)

	h := NewHandler(&service.Services{
		AuthService:    auth,
		CSRFService:    csrf,
		AppInfoService: appInfo,
	}, testAuthConfig, logger.Nop())

	return &testEnv{
		router:     h.Init(),
		handler:    h,
		auth:       auth,
		appInfo:    appInfo,
		csrf:       csrf,
		csrfSecret: secret,
		csrfToken:  csrf.Token(secret),
	}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return e.do(req)
}

// post submits values as a form together with a valid CSRF cookie and token.
func (e *testEnv) post(path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	if values == nil {
		values = url.Values{}
	}
	values.Set(csrfFormField, e.csrfToken)

	req := newFormRequest(path, values)
	req.AddCookie(&http.Cookie{Name: testAuthConfig.CSRFCookieName, Value: e.csrfSecret})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return e.do(req)
}

func newFormRequest(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: testAuthConfig.SessionCookieName, Value: token}
}

// responseCookie returns the Set-Cookie entry called name, or nil.
func responseCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func testUser() models.User {
	return models.User{
		UserID:     1,
		Username:   "alice",
		Email:      "a@x.com",
		IsActive:   true,
		DateJoined: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func testSession() models.Session {
	now := time.Now()
	return models.Session{
		Token:     "session-token",
		TokenHash: "session-token-hash",
		UserID:    1,
		CreatedAt: now,
		ExpiresAt: now.Add(testAuthConfig.SessionTTL),
	}
}

func TestNewHandler(t *testing.T) {
	svc := &service.Services{}
	log := logger.Nop()

	h := NewHandler(svc, testAuthConfig, log)

	require.NotNil(t, h)
	assert.Same(t, svc, h.services)
	assert.Same(t, log, h.logger)
	assert.Equal(t, testAuthConfig, h.cfg)
	assert.NotNil(t, h.pages)
	assert.NotSame(t, h, NewHandler(svc, testAuthConfig, log))
}
