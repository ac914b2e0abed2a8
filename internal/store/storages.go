package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
)

// Storages bundles the repositories used by the service layer.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository

	db  *DB
	rdb *redis.Client
}

// NewStorages connects the relational database and, when a Redis URL is
// configured, moves sessions to Redis.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	storages := &Storages{
		UserRepository:    NewUserRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		db:                db,
	}

	if cfg.Redis.URL == "" {
		return storages, nil
	}

	rdb, err := NewRedisClient(ctx, cfg.Redis.URL, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	storages.rdb = rdb
	storages.SessionRepository = NewRedisSessionRepository(rdb, log)

	return storages, nil
}

// Close releases every open connection.
func (s *Storages) Close() error {
	var err error
	if s.rdb != nil {
		err = errors.Join(err, s.rdb.Close())
	}
	if s.db != nil {
		err = errors.Join(err, s.db.Close())
	}

	return err
}
