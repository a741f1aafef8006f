// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"coachly/internal/domain/entity"
	"coachly/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for refresh token persistence.
var (
	// ErrRefreshTokenNotFound is returned when a refresh token is not found.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	// ErrRefreshTokenExpired is returned when a refresh token has expired.
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
)

// RefreshTokenRepository defines the interface for refresh token and session management operations.
// This supports multi-device login and remote logout functionality.
type RefreshTokenRepository interface {
	// CreateRefreshToken persists a new refresh token, representing a user session.
	CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error

	// FindRefreshTokenByHash retrieves a refresh token record by its securely stored hash.
	FindRefreshTokenByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// FindRefreshTokenByID retrieves a refresh token record by its unique ID.
	FindRefreshTokenByID(ctx context.Context, id uuid.UUID) (*entity.RefreshToken, error)

	// FindActiveByUserID retrieves all live (not revoked, not expired) sessions
	// for a specific user, oldest first.
	FindActiveByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.RefreshToken, error)

	// CountActiveByUserID returns the number of live sessions for a user.
	// Used to enforce the configured session limit.
	CountActiveByUserID(ctx context.Context, userID uuid.UUID) (int, error)

	// RevokeRefreshToken marks a session as ended. Revoking an already
	// revoked session is a no-op.
	RevokeRefreshToken(ctx context.Context, id uuid.UUID) error

	// RevokeAllByUserID marks every live session of a user as ended.
	// This backs "logout from all devices".
	RevokeAllByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpiredRefreshTokens removes expired and revoked rows and reports
	// how many were deleted. Called periodically for cleanup.
	DeleteExpiredRefreshTokens(ctx context.Context) (int64, error)
}
