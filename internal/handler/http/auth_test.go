package http

import (
	"errors"
	"html"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-auth-portal/internal/app"
	"github.com/MKhiriev/go-auth-portal/internal/service"
	"github.com/MKhiriev/go-auth-portal/models"
)

func signupValues() url.Values {
	return url.Values{
		models.FieldUsername:             {"alice"},
		models.FieldEmail:                {"a@x.com"},
		models.FieldPassword:             {"Str0ngPass!"},
		models.FieldPasswordConfirmation: {"Str0ngPass!"},
		models.FieldBio:                  {"hello"},
	}
}

func TestSignupPage(t *testing.T) {
	e := newTestEnv(t)

	rr := e.get("/signup")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), `action="/signup"`)
	assert.Contains(t, rr.Body.String(), `name="password_confirmation"`)

	csrfCookie := responseCookie(rr, testAuthConfig.CSRFCookieName)
	require.NotNil(t, csrfCookie, "a CSRF cookie must be issued with the form")
	assert.Contains(t, rr.Body.String(), e.csrf.Token(csrfCookie.Value))
}

func TestSignup_Success(t *testing.T) {
	e := newTestEnv(t)

	e.auth.EXPECT().Signup(gomock.Any(), models.SignupForm{
		Username:             "alice",
		Email:                "a@x.com",
		Password:             "Str0ngPass!",
		PasswordConfirmation: "Str0ngPass!",
		Bio:                  "hello",
	}).Return(testUser(), testSession(), nil)

	rr := e.post("/signup", signupValues())

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, testAuthConfig.SignupRedirectURL, rr.Header().Get("Location"))

	session := responseCookie(rr, testAuthConfig.SessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "session-token", session.Value)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, session.SameSite)
	assert.Equal(t, int(testAuthConfig.SessionTTL.Seconds()), session.MaxAge)
	assert.Equal(t, "/", session.Path)

	csrfCookie := responseCookie(rr, testAuthConfig.CSRFCookieName)
	require.NotNil(t, csrfCookie, "CSRF secret must be rotated on signup")
	assert.NotEqual(t, e.csrfSecret, csrfCookie.Value)
	assert.True(t, e.csrf.ValidSecret(csrfCookie.Value))
}

func TestSignup_ValidationError(t *testing.T) {
	e := newTestEnv(t)

	fields := models.FieldErrors{}
	fields.Add(models.FieldPasswordConfirmation, "The two password fields didn't match.")
	fields.Add(models.FieldEmail, service.MsgEmailTaken)

	e.auth.EXPECT().Signup(gomock.Any(), gomock.Any()).
		Return(models.User{}, models.Session{}, &service.ValidationError{Fields: fields})

	values := signupValues()
	values.Set(models.FieldPasswordConfirmation, "different")
	rr := e.post("/signup", values)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, html.EscapeString("The two password fields didn't match."))
	assert.Contains(t, body, service.MsgEmailTaken)
	assert.Contains(t, body, `value="alice"`, "username is refilled")
	assert.Contains(t, body, "hello", "bio is refilled")
	assert.NotContains(t, body, "Str0ngPass!", "passwords are never echoed")
	assert.Nil(t, responseCookie(rr, testAuthConfig.SessionCookieName))
}

func TestSignup_UnexpectedError(t *testing.T) {
	e := newTestEnv(t)

	e.auth.EXPECT().Signup(gomock.Any(), gomock.Any()).
		Return(models.User{}, models.Session{}, errors.New("db is down"))

	rr := e.post("/signup", signupValues())

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "db is down")
	assert.Nil(t, responseCookie(rr, testAuthConfig.SessionCookieName))
}

func TestLoginPage(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		wantNext string
	}{
		{name: "no next", path: "/login"},
		{name: "local next is kept", path: "/login?next=%2Fdashboard%3Ftab%3D1", wantNext: `name="next" value="/dashboard?tab=1"`},
		{name: "absolute next is dropped", path: "/login?next=https%3A%2F%2Fevil.example%2F"},
		{name: "scheme-relative next is dropped", path: "/login?next=%2F%2Fevil.example"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)

			rr := e.get(tt.path)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Contains(t, rr.Body.String(), `action="/login"`)
			if tt.wantNext != "" {
				assert.Contains(t, rr.Body.String(), tt.wantNext)
			} else {
				assert.NotContains(t, rr.Body.String(), `name="next"`)
			}
		})
	}
}

func TestLogin_Success(t *testing.T) {
	tests := []struct {
		name         string
		next         string
		wantLocation string
	}{
		{name: "default redirect", wantLocation: testAuthConfig.LoginRedirectURL},
		{name: "safe next", next: "/dashboard?from=login", wantLocation: "/dashboard?from=login"},
		{name: "unsafe next falls back", next: "https://evil.example/", wantLocation: testAuthConfig.LoginRedirectURL},
		{name: "scheme-relative next falls back", next: "//evil.example", wantLocation: testAuthConfig.LoginRedirectURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)

			e.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ any, form models.LoginForm) (models.User, models.Session, error) {
					assert.Equal(t, "alice", form.Username)
					assert.Equal(t, "Str0ngPass!", form.Password)
					return testUser(), testSession(), nil
				})

			rr := e.post("/login", url.Values{
				models.FieldUsername: {"alice"},
				models.FieldPassword: {"Str0ngPass!"},
				formFieldNext:        {tt.next},
			})

			require.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))

			session := responseCookie(rr, testAuthConfig.SessionCookieName)
			require.NotNil(t, session)
			assert.Equal(t, "session-token", session.Value)

			csrfCookie := responseCookie(rr, testAuthConfig.CSRFCookieName)
			require.NotNil(t, csrfCookie, "CSRF secret must be rotated on login")
			assert.NotEqual(t, e.csrfSecret, csrfCookie.Value)
		})
	}
}

func TestLogin_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	e := newTestEnv(t)

	gomock.InOrder(
		e.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(models.User{}, models.Session{}, service.ErrInvalidCredentials),
		e.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(models.User{}, models.Session{}, service.ErrInvalidCredentials),
	)

	wrongPassword := e.post("/login", url.Values{
		models.FieldUsername: {"alice"},
		models.FieldPassword: {"wrong-password"},
	})
	unknownUser := e.post("/login", url.Values{
		models.FieldUsername: {"nobody"},
		models.FieldPassword: {"wrong-password"},
	})

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.Bytes(), unknownUser.Body.Bytes())
	assert.Contains(t, wrongPassword.Body.String(), html.EscapeString(app.MsgInvalidCredentials))
	assert.NotContains(t, wrongPassword.Body.String(), "alice")
	assert.Nil(t, responseCookie(wrongPassword, testAuthConfig.SessionCookieName))
}

func TestLogin_ValidationError(t *testing.T) {
	e := newTestEnv(t)

	fields := models.FieldErrors{}
	fields.Add(models.FieldPassword, "This field is required.")
	e.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, models.Session{}, &service.ValidationError{Fields: fields})

	rr := e.post("/login", url.Values{models.FieldUsername: {"alice"}})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "This field is required.")
}

func TestLogin_UnexpectedError(t *testing.T) {
	e := newTestEnv(t)

	e.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(models.User{}, models.Session{}, errors.New("connection refused"))

	rr := e.post("/login", url.Values{
		models.FieldUsername: {"alice"},
		models.FieldPassword: {"Str0ngPass!"},
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection refused")
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name      string
		cookie    bool
		logoutErr error
	}{
		{name: "with session", cookie: true},
		{name: "without session cookie", cookie: false},
		{name: "destroy failure still logs out", cookie: true, logoutErr: errors.New("redis timeout")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEnv(t)

			var cookies []*http.Cookie
			if tt.cookie {
				cookies = append(cookies, sessionCookie("session-token"))
				e.auth.EXPECT().Logout(gomock.Any(), "session-token").Return(tt.logoutErr)
			}

			rr := e.post("/logout", nil, cookies...)

			require.Equal(t, http.StatusSeeOther, rr.Code)
			assert.Equal(t, testAuthConfig.LogoutRedirectURL, rr.Header().Get("Location"))

			cleared := responseCookie(rr, testAuthConfig.SessionCookieName)
			require.NotNil(t, cleared)
			assert.Empty(t, cleared.Value)
			assert.Negative(t, cleared.MaxAge)
		})
	}
}

func TestLogout_GetIsNotAllowed(t *testing.T) {
	e := newTestEnv(t)

	rr := e.get("/logout", sessionCookie("session-token"))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}

func TestSafeNext(t *testing.T) {
	assert.Equal(t, "/dashboard", safeNext("/dashboard"))
	assert.Empty(t, safeNext(""))
	assert.Empty(t, safeNext("https://evil.example"))
	assert.Empty(t, safeNext("//evil.example"))
	assert.Empty(t, safeNext("/\\evil.example"))
}
