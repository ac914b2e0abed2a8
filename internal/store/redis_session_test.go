package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/models"
)

func newTestRedisRepo(t *testing.T, now time.Time) (*redisSessionRepository, redismock.ClientMock) {
	t.Helper()

	rdb, mock := redismock.NewClientMock()
	t.Cleanup(func() { rdb.Close() })

	repo := NewRedisSessionRepository(rdb, logger.Nop()).(*redisSessionRepository)
	repo.now = func() time.Time { return now }

	return repo, mock
}

func TestRedisSessionRepository_CreateSession(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo, mock := newTestRedisRepo(t, now)

	session := models.Session{
		Token:     "raw-token",
		TokenHash: "abc",
		UserID:    42,
		CreatedAt: now,
		ExpiresAt: now.Add(2 * time.Hour),
	}
	payload, err := json.Marshal(session)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "raw-token")

	mock.ExpectSet("session:abc", payload, 2*time.Hour).SetVal("OK")

	require.NoError(t, repo.CreateSession(context.Background(), session))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionRepository_CreateExpiredSession(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo, mock := newTestRedisRepo(t, now)

	err := repo.CreateSession(context.Background(), models.Session{TokenHash: "abc", ExpiresAt: now})
	assert.ErrorIs(t, err, ErrSessionNotSaved)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionRepository_FindSession(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	repo, mock := newTestRedisRepo(t, now)

	stored := models.Session{TokenHash: "abc", UserID: 42, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	payload, err := json.Marshal(stored)
	require.NoError(t, err)

	mock.ExpectGet("session:abc").SetVal(string(payload))
	mock.ExpectGet("session:missing").RedisNil()
	mock.ExpectGet("session:broken").SetVal("{not json")
	mock.ExpectGet("session:down").SetErr(errors.New("connection refused"))

	ctx := context.Background()

	found, err := repo.FindSession(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, int64(42), found.UserID)
	assert.True(t, stored.ExpiresAt.Equal(found.ExpiresAt))

	_, err = repo.FindSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = repo.FindSession(ctx, "broken")
	assert.ErrorIs(t, err, ErrDecodingSession)

	_, err = repo.FindSession(ctx, "down")
	assert.ErrorIs(t, err, ErrExecutingQuery)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionRepository_DeleteSession(t *testing.T) {
	repo, mock := newTestRedisRepo(t, time.Now())

	mock.ExpectDel("session:abc").SetVal(1)
	mock.ExpectDel("session:abc").SetVal(0)

	ctx := context.Background()
	require.NoError(t, repo.DeleteSession(ctx, "abc"))
	require.NoError(t, repo.DeleteSession(ctx, "abc"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisSessionRepository_DeleteExpiredIsNoop(t *testing.T) {
	repo, mock := newTestRedisRepo(t, time.Now())

	removed, err := repo.DeleteExpiredSessions(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}
