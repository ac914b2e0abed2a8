package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-auth-portal/models"
)

// AuthService implements the signup, login, logout and request
// authentication workflow on top of users and sessions.
type AuthService interface {
	// Signup validates form, creates the user and opens a session for it.
	// Field problems, including an already taken username or email, are
	// reported together as *ValidationError; nothing is stored then.
	Signup(ctx context.Context, form models.SignupForm) (models.User, models.Session, error)

	// Login checks the credentials and opens a session. Every credential
	// failure is reported as ErrInvalidCredentials.
	Login(ctx context.Context, form models.LoginForm) (models.User, models.Session, error)

	// Logout destroys the session of token. Unknown tokens are not an error.
	Logout(ctx context.Context, token string) error

	// Authenticate resolves a session token to its active user.
	Authenticate(ctx context.Context, token string) (models.User, models.Session, error)
}

// SessionService manages the lifecycle of server-side sessions:
// created → active → {expired | destroyed}.
type SessionService interface {
	Create(ctx context.Context, userID int64) (models.Session, error)
	// Validate returns ErrSessionNotFound or ErrSessionExpired for tokens
	// that do not name an active session. Expired sessions are deleted.
	Validate(ctx context.Context, token string) (models.Session, error)
	Destroy(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

// CSRFService derives and checks anti-forgery tokens. The secret lives in a
// cookie; forms carry a token derived from it with a server-side key.
type CSRFService interface {
	NewSecret() (string, error)
	Token(secret string) string
	ValidSecret(secret string) bool
	Verify(secret, token string) bool
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
