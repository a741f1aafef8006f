package impl

import (
	"context"
	"testing"

	"coachly/internal/domain/entity"
	domainerrors "coachly/internal/domain/errors"
	"coachly/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_GetActiveSessions_UserNotFound(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	sessions, err := fx.service.GetActiveSessions(ctx, userID)

	require.Error(t, err)
	assert.Nil(t, sessions)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	fx.refreshTokenRepo.AssertNotCalled(t, "FindActiveByUserID", mock.Anything, mock.Anything)
}

func TestSessionService_RevokeSession_NotFound(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	userID := uuid.New()
	sessionID := uuid.New()

	fx.refreshTokenRepo.On("FindRefreshTokenByID", ctx, sessionID).
		Return(nil, repository.ErrRefreshTokenNotFound)

	err := fx.service.RevokeSession(ctx, userID, sessionID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))
	assert.Contains(t, err.Error(), "session not found")
}

func TestSessionService_RevokeSession_WrongOwner(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()
	userID := uuid.New()
	sessionID := uuid.New()

	fx.refreshTokenRepo.On("FindRefreshTokenByID", ctx, sessionID).
		Return(&entity.RefreshToken{ID: sessionID, UserID: uuid.New()}, nil)

	err := fx.service.RevokeSession(ctx, userID, sessionID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	// One user must not be able to end another user's session.
	fx.refreshTokenRepo.AssertNotCalled(t, "RevokeRefreshToken", mock.Anything, mock.Anything)
}

func TestSessionService_CleanupExpiredSessions_RepositoryError(t *testing.T) {
	fx := createTestSessionService(t)

	ctx := context.Background()

	fx.refreshTokenRepo.On("DeleteExpiredRefreshTokens", ctx).
		Return(int64(0), errors.New("connection refused"))

	deleted, err := fx.service.CleanupExpiredSessions(ctx)

	require.Error(t, err)
	assert.Equal(t, int64(0), deleted)
}
