package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-portal/models"
)

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with UserID assigned. Returns
	// [ErrUsernameAlreadyExists] or [ErrEmailAlreadyExists] on collisions.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByUsername returns [ErrNoUserWasFound] for unknown usernames.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

// SessionRepository persists sessions keyed by the hash of their token.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session) error
	// FindSession returns [ErrSessionNotFound] for unknown hashes. Expiry is
	// checked by the caller.
	FindSession(ctx context.Context, tokenHash string) (models.Session, error)
	// DeleteSession succeeds when the session does not exist.
	DeleteSession(ctx context.Context, tokenHash string) error
	// DeleteExpiredSessions removes sessions expired at now and reports how
	// many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
