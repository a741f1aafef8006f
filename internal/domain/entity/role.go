// Package entity contains the core business objects of the project.
package entity

// Role represents the type of account a person holds on the platform.
type Role string

const (
	// RoleClient indicates a client account looking for training.
	RoleClient Role = "client"
	// RoleTrainer indicates a trainer account offering training.
	RoleTrainer Role = "trainer"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// Roles is a slice of Role for convenience.
type Roles []Role

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
