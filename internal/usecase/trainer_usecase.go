// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"coachly/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpsertTrainerProfileInput defines the data for creating or editing a
// trainer profile. Nil fields are left unchanged; latitude and longitude
// must be set together.
type UpsertTrainerProfileInput struct {
	Bio        *string  `json:"bio,omitempty"`
	Specialty  *string  `json:"specialty,omitempty"`
	HourlyRate *int     `json:"hourly_rate,omitempty"`
	City       *string  `json:"city,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Accepting  *bool    `json:"accepting,omitempty"`
}

// NearbyTrainersInput defines the search point for trainer discovery.
type NearbyTrainersInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius_km"` // 0 means the configured default
}

// --- Output DTOs ---

// TrainerListing combines a trainer profile with the public account fields.
type TrainerListing struct {
	UserID     uuid.UUID
	Username   string
	FullName   string
	Bio        string
	Specialty  string
	HourlyRate int
	City       string
	Accepting  bool
}

// NearbyTrainer is a listing annotated with the distance from the search point.
type NearbyTrainer struct {
	TrainerListing
	DistanceKm float64
}

// TrainerUsecase defines the interface for trainer profile and discovery operations.
type TrainerUsecase interface {
	UpsertOwnProfile(ctx context.Context, userID uuid.UUID, input *UpsertTrainerProfileInput) (*entity.TrainerProfile, error)
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*entity.TrainerProfile, error)
	ListTrainers(ctx context.Context) ([]*TrainerListing, error)
	NearbyTrainers(ctx context.Context, input *NearbyTrainersInput) ([]*NearbyTrainer, error)
	InviteQR(ctx context.Context, userID uuid.UUID) ([]byte, error)
}
