package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUsernameAlreadyExists is returned when a new user collides with an
	// existing username.
	ErrUsernameAlreadyExists = errors.New("username already exists")

	// ErrEmailAlreadyExists is returned when a new user collides with an
	// existing e-mail address.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrAlreadyExists is returned for unique violations on constraints the
	// repository does not know by name.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrSessionNotFound is returned when no session matches the token hash.
	ErrSessionNotFound = errors.New("session was not found")

	// ErrSessionNotSaved is returned when a session INSERT affects no rows.
	ErrSessionNotSaved = errors.New("session was not saved")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrEncodingSession and ErrDecodingSession wrap JSON failures of the
	// Redis session store.
	ErrEncodingSession = errors.New("failed to encode session")
	ErrDecodingSession = errors.New("failed to decode session")
)
