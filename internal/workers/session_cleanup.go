package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/service"
)

// SessionCleanup periodically deletes expired sessions. Validation already
// rejects them lazily; this only keeps the session storage small.
type SessionCleanup struct {
	sessions service.SessionService
	interval time.Duration

	logger *logger.Logger
}

func NewSessionCleanup(sessions service.SessionService, interval time.Duration, logger *logger.Logger) *SessionCleanup {
	return &SessionCleanup{
		sessions: sessions,
		interval: interval,
		logger:   logger.Component("session-cleanup"),
	}
}

// Run purges expired sessions every interval until ctx is done. A
// non-positive interval disables the worker.
func (w *SessionCleanup) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info().Msg("session cleanup is disabled")
		return
	}

	w.logger.Info().Dur("interval", w.interval).Msg("session cleanup started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("session cleanup stopped")
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *SessionCleanup) purge(ctx context.Context) {
	purged, err := w.sessions.PurgeExpired(ctx)
	if err != nil {
		w.logger.Err(err).Msg("error purging expired sessions")
		return
	}

	if purged > 0 {
		w.logger.Info().Int64("purged", purged).Msg("expired sessions purged")
	} else {
		w.logger.Debug().Msg("no expired sessions to purge")
	}
}
