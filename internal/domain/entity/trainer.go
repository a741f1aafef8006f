// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TrainerProfile holds the public, discoverable part of a trainer account.
// It exists only for users with the trainer role.
type TrainerProfile struct {
	UserID      uuid.UUID // Foreign key linking this profile to its User.
	Bio         string    // Short free-form introduction shown on listings.
	Specialty   string    // Main discipline, e.g., "strength", "mobility".
	HourlyRate  int       // Advertised rate in the platform currency, whole units.
	City        string    // City the trainer works in, shown on listings.
	Latitude    float64   // Geographic latitude of the trainer's base location.
	Longitude   float64   // Geographic longitude of the trainer's base location.
	Accepting   bool      // Whether the trainer currently takes new clients.
	UpdatedAt   time.Time // Timestamp of the last modification.
}
