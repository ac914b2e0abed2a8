package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/crypto"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/store"
	"github.com/MKhiriev/go-auth-portal/models"
)

// sessionService issues opaque random tokens and keeps only their SHA-256
// digests in the session repository, so a leaked table does not yield usable
// cookies.
type sessionService struct {
	// sessionRepository persists sessions keyed by token hash.
	sessionRepository store.SessionRepository

	// ttl is the lifetime of a new session.
	ttl time.Duration

	now    func() time.Time
	logger *logger.Logger
}

func NewSessionService(sessionRepository store.SessionRepository, cfg config.Auth, logger *logger.Logger) SessionService {
	return &sessionService{
		sessionRepository: sessionRepository,
		ttl:               cfg.SessionTTL,
		now:               time.Now,
		logger:            logger,
	}
}

// Create opens a session for userID. The returned session is the only place
// the raw token appears.
func (s *sessionService) Create(ctx context.Context, userID int64) (models.Session, error) {
	token, err := crypto.NewToken(crypto.TokenBytes)
	if err != nil {
		return models.Session{}, fmt.Errorf("error generating session token: %w", err)
	}

	now := s.now().UTC()
	session := models.Session{
		Token:     token,
		TokenHash: crypto.HashToken(token),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err = s.sessionRepository.CreateSession(ctx, session); err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("session creation ended with error")
		return models.Session{}, fmt.Errorf("session creation ended with error: %w", err)
	}

	return session, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (models.Session, error) {
	if token == "" {
		return models.Session{}, ErrSessionNotFound
	}

	log := logger.FromContext(ctx)
	tokenHash := crypto.HashToken(token)

	session, err := s.sessionRepository.FindSession(ctx, tokenHash)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		log.Err(err).Msg("session lookup failed")
		return models.Session{}, fmt.Errorf("session lookup failed: %w", err)
	}

	if session.IsExpired(s.now()) {
		if err = s.sessionRepository.DeleteSession(ctx, tokenHash); err != nil {
			log.Err(err).Int64("user_id", session.UserID).Msg("error deleting expired session")
		}
		return models.Session{}, ErrSessionExpired
	}

	session.Token = token
	return session, nil
}

// Destroy removes the session of token. Destroying an unknown or already
// destroyed session succeeds.
func (s *sessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := s.sessionRepository.DeleteSession(ctx, crypto.HashToken(token)); err != nil {
		logger.FromContext(ctx).Err(err).Msg("session deletion ended with error")
		return fmt.Errorf("session deletion ended with error: %w", err)
	}

	return nil
}

func (s *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	removed, err := s.sessionRepository.DeleteExpiredSessions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("error purging expired sessions: %w", err)
	}

	return removed, nil
}
