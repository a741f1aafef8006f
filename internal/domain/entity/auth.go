// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents a long-lived, authorized user session.
// It is used to obtain a new Access Token after the old one expires, without requiring credentials.
type RefreshToken struct {
	ID         uuid.UUID  // The unique ID for this specific refresh token record.
	UserID     uuid.UUID  // Links this session to the User it belongs to.
	TokenHash  string     // Stores a SHA-256 hash of the raw refresh token for secure comparison in the database.
	DeviceInfo string     // Free-form client description (user agent) captured at login.
	ExpiresAt  time.Time  // The exact time when this refresh token will expire and become invalid.
	RevokedAt  *time.Time // Set when the session is explicitly ended; nil while the session is live.
	CreatedAt  time.Time  // Timestamp of when this session was created (i.e., when the user logged in).
}

// Active reports whether the session can still be used at the given time.
func (t *RefreshToken) Active(at time.Time) bool {
	return t.RevokedAt == nil && at.Before(t.ExpiresAt)
}

// SessionInfo is the projection of a RefreshToken shown in session listings.
// The token hash never leaves the persistence layer.
type SessionInfo struct {
	ID         uuid.UUID // The session (refresh token record) ID.
	DeviceInfo string    // Client description captured at login.
	CreatedAt  time.Time // When the session started.
	ExpiresAt  time.Time // When the session will expire on its own.
}
