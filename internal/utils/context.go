// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// redirect safety checks and trace identifiers.
package utils

import (
	"context"

	"github.com/MKhiriev/go-auth-portal/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

var (
	// UserIDCtxKey is the key used to store the authenticated user identifier.
	//
	//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, int64(42))
	UserIDCtxKey = contextKey("userID")

	// UserCtxKey holds the authenticated models.User.
	UserCtxKey = contextKey("user")

	// SessionCtxKey holds the models.Session the request was authenticated with.
	SessionCtxKey = contextKey("session")

	// CSRFTokenCtxKey holds the form token to embed in rendered forms.
	CSRFTokenCtxKey = contextKey("csrfToken")
)

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID of type int64 and an ok flag:
//   - ok == true  - value is found and has the correct int64 type
//   - ok == false - value is missing or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(int64)
	return userID, ok
}

// GetUserFromContext returns the user stored by the access-control gate.
func GetUserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserCtxKey).(models.User)
	return user, ok
}

// GetSessionFromContext returns the session stored by the access-control gate.
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(SessionCtxKey).(models.Session)
	return session, ok
}

// GetCSRFTokenFromContext returns the form token or "" when none was issued.
func GetCSRFTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenCtxKey).(string)
	return token
}

// WithAuthenticated stores user and session under their keys, plus the user
// identifier under UserIDCtxKey.
func WithAuthenticated(ctx context.Context, user models.User, session models.Session) context.Context {
	ctx = context.WithValue(ctx, UserCtxKey, user)
	ctx = context.WithValue(ctx, SessionCtxKey, session)
	return context.WithValue(ctx, UserIDCtxKey, user.UserID)
}
