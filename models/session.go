package models

import "time"

// Session binds an opaque token to a user until ExpiresAt.
//
// Token is the raw value handed to the client in a cookie. It is only
// populated right after creation; the storage layer persists TokenHash and
// never sees the raw token.
type Session struct {
	// Token is the raw session token. Empty for sessions loaded from storage.
	Token string `json:"-"`

	// TokenHash is the hex SHA-256 digest of Token, the storage key.
	TokenHash string `json:"token_hash"`

	// UserID references the owning user.
	UserID int64 `json:"user_id"`

	// CreatedAt is the session creation time.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the moment after which the session is no longer valid.
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// IsExpired reports whether the session is expired at the given moment.
func (s Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
