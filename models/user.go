package models

import "time"

// User represents an account entity used for authentication.
// PasswordHash holds an encoded one-way hash and is never the plaintext
// password; it must never leave the server.
type User struct {
	// UserID is the server-assigned unique identifier of the user.
	UserID int64 `json:"-"`

	// Username is the unique login name. Case-sensitive.
	Username string `json:"username"`

	// Email is the unique e-mail address with a lower-cased domain part.
	Email string `json:"email"`

	// PasswordHash is the encoded credential hash
	// (e.g. "$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>").
	PasswordHash string `json:"-"`

	// FirstName, LastName and Bio are optional profile fields.
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Bio       string `json:"bio,omitempty"`

	// IsActive marks whether the account may log in.
	IsActive bool `json:"is_active"`

	// DateJoined is the account creation time.
	DateJoined time.Time `json:"date_joined"`

	// LastLogin is the time of the latest successful login, nil if the
	// user never logged in.
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// DisplayName returns the full name when set, otherwise the username.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Username
	}
}
