// Package validation holds the pure field validators used for registration
// and profile input. Each validator is stateless and total: the first
// violated rule determines the returned message, and the same input always
// produces the same outcome. Lengths are measured in bytes.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	domainerrors "coachly/internal/domain/errors"
)

// Patterns are compiled once at process start so a malformed pattern fails
// fast instead of surfacing per call.
var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern    = regexp.MustCompile(`^[+]?[\d\s-]{6,20}$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_\.]+$`)
	fullNamePattern = regexp.MustCompile(`^[a-zA-ZąćęłńóśźżĄĆĘŁŃÓŚŹŻ \-\']+$`)
)

// Password checks minimum strength: at least 8 bytes, one ASCII digit, one
// uppercase and one lowercase letter (uppercase and lowercase are checked
// per Unicode categories, not ASCII only).
func Password(password string) error {
	if len(password) < 8 {
		return domainerrors.NewValidationError("Password must be at least 8 characters long")
	}

	if !strings.ContainsAny(password, "0123456789") {
		return domainerrors.NewValidationError("Password must contain at least one digit")
	}

	if !strings.ContainsFunc(password, unicode.IsUpper) {
		return domainerrors.NewValidationError("Password must contain at least one uppercase letter")
	}

	if !strings.ContainsFunc(password, unicode.IsLower) {
		return domainerrors.NewValidationError("Password must contain at least one lowercase letter")
	}

	return nil
}

// Email checks the address shape and the 100-byte length cap.
func Email(email string) error {
	if !emailPattern.MatchString(email) {
		return domainerrors.NewValidationError("Invalid email format")
	}

	if len(email) > 100 {
		return domainerrors.NewValidationError("Email is too long (max 100 characters)")
	}

	// Redundant with the pattern; retained for its distinct message.
	if !strings.Contains(email, "@") {
		return domainerrors.NewValidationError("Email must contain @ character")
	}

	return nil
}

// PhoneNumber checks the allowed character shape and, independently, that
// at least 6 of the characters are digits.
func PhoneNumber(phone string) error {
	if !phonePattern.MatchString(phone) {
		return domainerrors.NewValidationError("Invalid phone number format. Use only digits, spaces, hyphens, and optionally a + prefix")
	}

	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}

	if digits < 6 {
		return domainerrors.NewValidationError("Phone number must contain at least 6 digits")
	}

	return nil
}

// Username checks the 3..50 byte length bounds and the allowed character set.
func Username(username string) error {
	if len(username) < 3 {
		return domainerrors.NewValidationError("Username must be at least 3 characters long")
	}

	if len(username) > 50 {
		return domainerrors.NewValidationError("Username is too long (max 50 characters)")
	}

	if !usernamePattern.MatchString(username) {
		return domainerrors.NewValidationError("Username can only contain letters, numbers, underscores and dots")
	}

	return nil
}

// FullName checks the 2..100 byte length bounds, requires at least a first
// and a last name, and restricts characters to Latin letters with the Polish
// diacritic set plus spaces, hyphens and apostrophes. It is deliberately not
// a general Unicode name validator.
func FullName(name string) error {
	if len(name) < 2 {
		return domainerrors.NewValidationError("Full name must be at least 2 characters long")
	}

	if len(name) > 100 {
		return domainerrors.NewValidationError("Full name is too long (max 100 characters)")
	}

	if len(strings.Fields(name)) < 2 {
		return domainerrors.NewValidationError("Full name must include both first and last name")
	}

	if !fullNamePattern.MatchString(name) {
		return domainerrors.NewValidationError("Full name can only contain letters, spaces, hyphens and apostrophes")
	}

	return nil
}

// Role matches the role case-insensitively against the known account roles
// and returns the normalized lower-case form.
func Role(role string) (string, error) {
	normalized := strings.ToLower(role)

	switch normalized {
	case "client", "trainer":
		return normalized, nil
	default:
		return "", domainerrors.NewValidationError("Invalid role. Must be 'client' or 'trainer'")
	}
}
