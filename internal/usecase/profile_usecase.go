// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"coachly/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileUsecase defines the interface for account profile operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error
	DeleteAccount(ctx context.Context, userID uuid.UUID, input *DeleteAccountInput) error
}

// --- Input DTOs ---

// UpdateProfileInput defines the data required to update an account profile.
// Nil fields are left unchanged; the email address is immutable.
type UpdateProfileInput struct {
	Username    *string `json:"username,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// ChangePasswordInput defines the data required to change the account password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// DeleteAccountInput carries the password confirmation for account removal.
type DeleteAccountInput struct {
	Password string `json:"password"`
}
