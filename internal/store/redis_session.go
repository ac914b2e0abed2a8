package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/models"
)

const sessionKeyPrefix = "session:"

// redisSessionRepository keeps each session as a JSON value whose Redis TTL
// matches the session expiry, so Redis evicts expired sessions on its own.
type redisSessionRepository struct {
	rdb    *redis.Client
	logger *logger.Logger
	now    func() time.Time
}

func NewRedisSessionRepository(rdb *redis.Client, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating redis session repository")
	return &redisSessionRepository{
		rdb:    rdb,
		logger: logger,
		now:    time.Now,
	}
}

// NewRedisClient parses a redis:// URL and verifies the server answers.
func NewRedisClient(ctx context.Context, url string, log *logger.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err = rdb.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("error connecting redis (ping)")
		rdb.Close()
		return nil, fmt.Errorf("error connecting redis: %w", err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return rdb, nil
}

func (r *redisSessionRepository) CreateSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	ttl := session.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return ErrSessionNotSaved
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingSession, err)
	}

	if err = r.rdb.Set(ctx, sessionKey(session.TokenHash), payload, ttl).Err(); err != nil {
		log.Err(err).Str("func", "*redisSessionRepository.CreateSession").Msg("error saving session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *redisSessionRepository) FindSession(ctx context.Context, tokenHash string) (models.Session, error) {
	log := logger.FromContext(ctx)

	data, err := r.rdb.Get(ctx, sessionKey(tokenHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*redisSessionRepository.FindSession").Msg("error reading session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var session models.Session
	if err = json.Unmarshal(data, &session); err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrDecodingSession, err)
	}

	return session, nil
}

func (r *redisSessionRepository) DeleteSession(ctx context.Context, tokenHash string) error {
	if err := r.rdb.Del(ctx, sessionKey(tokenHash)).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionRepository.DeleteSession").Msg("error deleting session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// DeleteExpiredSessions is a no-op: keys expire together with their sessions.
func (r *redisSessionRepository) DeleteExpiredSessions(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func sessionKey(tokenHash string) string {
	return sessionKeyPrefix + tokenHash
}
