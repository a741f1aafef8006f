// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Two calls with
	// the same input produce different encodings. A non-nil error means the
	// hashing engine failed, never that the password was merely weak.
	Hash(password string) (string, error)

	// Verify compares a plaintext password with a stored hash. A mismatch is
	// (false, nil); a non-nil error means the stored hash is malformed and
	// must be treated as a system fault, not a failed login.
	Verify(password, hash string) (bool, error)
}
