// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity in the system, representing a single account.
// Credentials and profile fields live on the same row because an account
// always has exactly one email/password credential.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Username     string    // The unique handle chosen at registration.
	Email        string    // The user's primary contact email, also the login identifier.
	PasswordHash string    // The bcrypt-encoded password digest. Opaque; never exposed outside persistence and login.
	FullName     string    // The user's real name (first and last).
	PhoneNumber  string    // Contact phone number.
	Role         Role      // Whether this account is a client or a trainer.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
