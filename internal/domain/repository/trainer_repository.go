// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"coachly/internal/domain/entity"
	"coachly/internal/errors"

	"github.com/google/uuid"
)

// ErrTrainerProfileNotFound is returned when a trainer profile is not found.
var ErrTrainerProfileNotFound = errors.New("trainer profile not found")

// TrainerRepository defines the interface for trainer profile persistence.
// A profile exists only for accounts with the trainer role.
type TrainerRepository interface {
	// Upsert creates the trainer profile on first save and updates it afterwards.
	Upsert(ctx context.Context, profile *entity.TrainerProfile) error

	// FindByUserID retrieves the trainer profile of a specific user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TrainerProfile, error)

	// ListAccepting retrieves the profiles of trainers currently taking new clients.
	ListAccepting(ctx context.Context) ([]*entity.TrainerProfile, error)

	// DeleteByUserID removes the trainer profile of a user, if one exists.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
