package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
)

func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open(string(DialectSQLite), sqliteDSN(cfg.DSN))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// sqlite serialises writers; a single connection avoids SQLITE_BUSY and
	// keeps in-memory databases alive between statements
	conn.SetMaxOpenConns(1)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to database successfully")

	return newDB(conn, DialectSQLite, log), nil
}

// sqliteDSN turns on foreign keys so that deleting a user removes its
// sessions, unless the DSN already configures them.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}

	return dsn + "?_foreign_keys=on"
}

// sqliteUniqueViolation maps "UNIQUE constraint failed: users.<column>" to
// the sentinel of that column.
func sqliteUniqueViolation(err error) (error, bool) {
	var liteErr sqlite3.Error
	if !errors.As(err, &liteErr) || liteErr.ExtendedCode != sqlite3.ErrConstraintUnique {
		return nil, false
	}

	msg := liteErr.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return ErrUsernameAlreadyExists, true
	case strings.Contains(msg, "users.email"):
		return ErrEmailAlreadyExists, true
	default:
		return ErrAlreadyExists, true
	}
}

// uniqueViolation recognises unique constraint errors of both dialects.
func uniqueViolation(err error) (error, bool) {
	if target, ok := postgresUniqueViolation(err); ok {
		return target, true
	}

	return sqliteUniqueViolation(err)
}
