package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/models"
)

const usersTable = "users"

var userColumns = []string{
	"user_id",
	"username",
	"email",
	"password_hash",
	"first_name",
	"last_name",
	"bio",
	"is_active",
	"date_joined",
	"last_login",
}

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table. It works with both PostgreSQL and SQLite; the dialect only
// changes the placeholder format of the generated statements.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with UserID set.
// DateJoined defaults to the current time when zero.
//
// Error handling:
//   - unique violation on username → [ErrUsernameAlreadyExists].
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}
	user.DateJoined = dbTime(user.DateJoined)

	query, args, err := r.db.builder.
		Insert(usersTable).
		Columns("username", "email", "password_hash", "first_name", "last_name", "bio", "is_active", "date_joined").
		Values(user.Username, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Bio, user.IsActive, user.DateJoined).
		Suffix("RETURNING user_id").
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// create user in db
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Err(); err != nil {
		return models.User{}, r.insertError(log, err)
	}

	// scan assigned id
	if err = row.Scan(&user.UserID); err != nil {
		return models.User{}, r.insertError(log, err)
	}

	return user, nil
}

func (r *userRepository) insertError(log *logger.Logger, err error) error {
	if target, ok := uniqueViolation(err); ok {
		log.Debug().Str("func", "*userRepository.CreateUser").Err(err).Msg("unique violation")
		return target
	}

	log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

// FindUserByUsername returns the user with exactly this username.
// Returns [ErrNoUserWasFound] when there is none.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByUsername", sq.Eq{"username": username})
}

// FindUserByID returns the user with the given id.
// Returns [ErrNoUserWasFound] when there is none.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", sq.Eq{"user_id": userID})
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// ExistsByUsername reports whether a user with this exact username exists.
func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "*userRepository.ExistsByUsername", sq.Eq{"username": username})
}

// ExistsByEmail reports whether a user with this exact e-mail exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "*userRepository.ExistsByEmail", sq.Eq{"email": email})
}

func (r *userRepository) exists(ctx context.Context, funcName string, where sq.Eq) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select("1").
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return true, nil
}

// UpdateLastLogin stamps the time of a successful login.
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	return r.update(ctx, "*userRepository.UpdateLastLogin", userID, "last_login", dbTime(at))
}

// UpdatePasswordHash replaces the stored credential hash, e.g. after a
// rehash with stronger parameters.
func (r *userRepository) UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error {
	return r.update(ctx, "*userRepository.UpdatePasswordHash", userID, "password_hash", passwordHash)
}

func (r *userRepository) update(ctx context.Context, funcName string, userID int64, column string, value any) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Update(usersTable).
		Set(column, value).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error updating user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		lastLogin sql.NullTime
	)

	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.IsActive,
		&user.DateJoined,
		&lastLogin,
	)
	if err != nil {
		return models.User{}, err
	}

	if lastLogin.Valid {
		at := lastLogin.Time
		user.LastLogin = &at
	}

	return user, nil
}

// dbTime normalises timestamps to whole seconds in UTC so that SQLite's
// textual representation orders the same way as the instants it encodes.
func dbTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
