package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
)

// Names of the unique constraints declared by the migrations. PostgreSQL
// reports them in pgconn.PgError.ConstraintName.
const (
	constraintUsernameUnique = "users_username_unique"
	constraintEmailUnique    = "users_email_unique"
)

func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open(string(DialectPostgres), cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	// setup connections
	if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxOpenConns / 2)
	}

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return newDB(conn, DialectPostgres, log), nil
}

// postgresError returns the SQLSTATE code of a PostgreSQL error or "".
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// postgresUniqueViolation maps a unique_violation to the sentinel of the
// violated column.
func postgresUniqueViolation(err error) (error, bool) {
	if postgresError(err) != pgerrcode.UniqueViolation {
		return nil, false
	}

	var pgErr *pgconn.PgError
	errors.As(err, &pgErr)

	switch pgErr.ConstraintName {
	case constraintUsernameUnique:
		return ErrUsernameAlreadyExists, true
	case constraintEmailUnique:
		return ErrEmailAlreadyExists, true
	default:
		return ErrAlreadyExists, true
	}
}
