package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-auth-portal/internal/config"
	"github.com/MKhiriev/go-auth-portal/internal/crypto"
	"github.com/MKhiriev/go-auth-portal/internal/logger"
	"github.com/MKhiriev/go-auth-portal/internal/mock"
	"github.com/MKhiriev/go-auth-portal/internal/store"
	"github.com/MKhiriev/go-auth-portal/models"
)

var sessionTestNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestSessionSvc(t *testing.T, ctrl *gomock.Controller) (*sessionService, *mock.MockSessionRepository) {
	t.Helper()

	repo := mock.NewMockSessionRepository(ctrl)
	svc := NewSessionService(repo, config.Auth{SessionTTL: time.Hour}, logger.Nop()).(*sessionService)
	svc.now = func() time.Time { return sessionTestNow }

	return svc, repo
}

func TestSessionService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	var stored models.Session
	repo.EXPECT().CreateSession(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Session) error {
			stored = s
			return nil
		},
	)

	session, err := svc.Create(ctx, 42)
	require.NoError(t, err)

	assert.NotEmpty(t, session.Token)
	assert.Equal(t, crypto.HashToken(session.Token), session.TokenHash)
	assert.NotEqual(t, session.Token, session.TokenHash)
	assert.Equal(t, int64(42), session.UserID)
	assert.Equal(t, sessionTestNow, session.CreatedAt)
	assert.Equal(t, sessionTestNow.Add(time.Hour), session.ExpiresAt)
	assert.Equal(t, session.TokenHash, stored.TokenHash)
}

func TestSessionService_Create_TokensAreUnique(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().CreateSession(ctx, gomock.Any()).Return(nil).Times(50)

	seen := make(map[string]struct{}, 50)
	for range 50 {
		session, err := svc.Create(ctx, 1)
		require.NoError(t, err)
		_, dup := seen[session.Token]
		require.False(t, dup)
		seen[session.Token] = struct{}{}
	}
}

func TestSessionService_Create_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestSessionSvc(t, ctrl)

	repo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.Create(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSessionService_Validate(t *testing.T) {
	ctx := context.Background()
	token := "raw-token"
	hash := crypto.HashToken(token)

	t.Run("empty token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _ := newTestSessionSvc(t, ctrl)

		_, err := svc.Validate(ctx, "")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo := newTestSessionSvc(t, ctrl)

		repo.EXPECT().FindSession(ctx, hash).Return(models.Session{}, store.ErrSessionNotFound)

		_, err := svc.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("active", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo := newTestSessionSvc(t, ctrl)

		repo.EXPECT().FindSession(ctx, hash).Return(models.Session{
			TokenHash: hash,
			UserID:    7,
			ExpiresAt: sessionTestNow.Add(time.Second),
		}, nil)

		session, err := svc.Validate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), session.UserID)
		assert.Equal(t, token, session.Token)
	})

	t.Run("expired is deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo := newTestSessionSvc(t, ctrl)

		gomock.InOrder(
			repo.EXPECT().FindSession(ctx, hash).Return(models.Session{
				TokenHash: hash,
				UserID:    7,
				ExpiresAt: sessionTestNow,
			}, nil),
			repo.EXPECT().DeleteSession(ctx, hash).Return(nil),
		)

		_, err := svc.Validate(ctx, token)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo := newTestSessionSvc(t, ctrl)

		repo.EXPECT().FindSession(ctx, hash).Return(models.Session{}, errors.New("timeout"))

		_, err := svc.Validate(ctx, token)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestSessionService_DestroyThenValidate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	hash := crypto.HashToken("tok")
	repo.EXPECT().DeleteSession(ctx, hash).Return(nil).Times(2)
	repo.EXPECT().FindSession(ctx, hash).Return(models.Session{}, store.ErrSessionNotFound)

	require.NoError(t, svc.Destroy(ctx, "tok"))
	require.NoError(t, svc.Destroy(ctx, "tok"))

	_, err := svc.Validate(ctx, "tok")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionService_DestroyEmptyToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestSessionSvc(t, ctrl)

	assert.NoError(t, svc.Destroy(context.Background(), ""))
}

func TestSessionService_PurgeExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo := newTestSessionSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().DeleteExpiredSessions(ctx, sessionTestNow).Return(int64(3), nil)
	repo.EXPECT().DeleteExpiredSessions(ctx, sessionTestNow).Return(int64(0), errors.New("locked"))

	removed, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	_, err = svc.PurgeExpired(ctx)
	assert.Error(t, err)
}
