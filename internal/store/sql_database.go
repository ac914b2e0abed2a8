package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/migrations"
)

// Dialect is the database/sql driver name of a relational backend.
type Dialect string

const (
	DialectPostgres Dialect = migrations.DialectPostgres
	DialectSQLite   Dialect = migrations.DialectSQLite
)

// DB wraps a connection pool together with the SQL dialect it speaks and a
// statement builder using that dialect's placeholder format.
type DB struct {
	*sql.DB
	dialect Dialect
	builder sq.StatementBuilderType
	logger  *logger.Logger
}

func newDB(conn *sql.DB, dialect Dialect, log *logger.Logger) *DB {
	var placeholders sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		placeholders = sq.Dollar
	}

	return &DB{
		DB:      conn,
		dialect: dialect,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholders),
		logger:  log,
	}
}

// Dialect returns the driver name of the underlying connection.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies the embedded schema of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// DialectFromDSN picks PostgreSQL for postgres:// and postgresql:// URLs
// and SQLite for everything else.
func DialectFromDSN(dsn string) Dialect {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DialectPostgres
	}

	return DialectSQLite
}

// NewConnect opens the relational database named by cfg.DSN and applies
// migrations unless cfg.SkipMigrations is set.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	var (
		db  *DB
		err error
	)

	switch DialectFromDSN(cfg.DSN) {
	case DialectPostgres:
		db, err = NewConnectPostgres(ctx, cfg, log)
	default:
		db, err = NewConnectSQLite(ctx, cfg, log)
	}
	if err != nil {
		return nil, err
	}

	if cfg.SkipMigrations {
		log.Info().Str("func", "NewConnect").Msg("skipping database migrations")
		return db, nil
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewConnect").Msg("error applying migrations")
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return db, nil
}
