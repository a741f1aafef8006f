package validation

import (
	"strings"
	"testing"

	domainerrors "coachly/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertRejected(t *testing.T, err error, wantMessage string) {
	t.Helper()

	require.Error(t, err)
	assert.EqualError(t, err, wantMessage)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t, "VALIDATION_ERROR", appErr.ErrorCode())
}

func TestPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{name: "valid mixed password", password: "Secret123"},
		{name: "valid with symbols", password: "V3ry-Str0ng-Pass"},
		{name: "multibyte letters count as bytes", password: "Pa1łłł"},
		{name: "too short", password: "Ab1", wantErr: "Password must be at least 8 characters long"},
		{name: "seven bytes", password: "Abcdef1", wantErr: "Password must be at least 8 characters long"},
		{name: "missing digit", password: "Abcdefgh", wantErr: "Password must contain at least one digit"},
		{name: "missing uppercase", password: "abcdefg1", wantErr: "Password must contain at least one uppercase letter"},
		{name: "missing lowercase", password: "ABCDEFG1", wantErr: "Password must contain at least one lowercase letter"},
		{name: "unicode uppercase satisfies the rule", password: "łukasz123Ż"},
		{name: "length beats missing digit", password: "Abc", wantErr: "Password must be at least 8 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Password(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			assertRejected(t, err, tt.wantErr)
		})
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		email   string
		wantErr string
	}{
		{name: "plain address", email: "user@example.com"},
		{name: "tagged local part", email: "user.name+tag@example.co"},
		{name: "subdomain", email: "anna@mail.coachly.io"},
		{name: "empty domain label", email: "user@.com", wantErr: "Invalid email format"},
		{name: "missing at sign", email: "userexample.com", wantErr: "Invalid email format"},
		{name: "missing tld", email: "user@example", wantErr: "Invalid email format"},
		{name: "one letter tld", email: "user@example.c", wantErr: "Invalid email format"},
		{name: "space inside domain", email: "user@exam ple.com", wantErr: "Invalid email format"},
		{name: "over 100 bytes", email: strings.Repeat("a", 101) + "@b.co", wantErr: "Email is too long (max 100 characters)"},
		{name: "exactly 100 bytes", email: strings.Repeat("a", 95) + "@b.co"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Email(tt.email)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			assertRejected(t, err, tt.wantErr)
		})
	}
}

func TestPhoneNumber(t *testing.T) {
	t.Parallel()

	const formatErr = "Invalid phone number format. Use only digits, spaces, hyphens, and optionally a + prefix"

	tests := []struct {
		name    string
		phone   string
		wantErr string
	}{
		{name: "international with spaces", phone: "+48 123 456 789"},
		{name: "plain digits", phone: "123456"},
		{name: "hyphenated", phone: "600-700-800"},
		{name: "letters", phone: "abc-def", wantErr: formatErr},
		{name: "too short for the pattern", phone: "123", wantErr: formatErr},
		{name: "over 20 characters", phone: "+123456789012345678901", wantErr: formatErr},
		{name: "plus in the middle", phone: "123+456", wantErr: formatErr},
		{name: "enough characters but five digits", phone: "12-34-5", wantErr: "Phone number must contain at least 6 digits"},
		{name: "spaces padding five digits", phone: "12345 ", wantErr: "Phone number must contain at least 6 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := PhoneNumber(tt.phone)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			assertRejected(t, err, tt.wantErr)
		})
	}
}

func TestUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		wantErr  string
	}{
		{name: "letters digits separators", username: "john_doe.99"},
		{name: "minimum length", username: "abc"},
		{name: "maximum length", username: strings.Repeat("a", 50)},
		{name: "too short", username: "jo", wantErr: "Username must be at least 3 characters long"},
		{name: "too long", username: strings.Repeat("a", 51), wantErr: "Username is too long (max 50 characters)"},
		{name: "space not allowed", username: "john doe", wantErr: "Username can only contain letters, numbers, underscores and dots"},
		{name: "hyphen not allowed", username: "john-doe", wantErr: "Username can only contain letters, numbers, underscores and dots"},
		{name: "diacritics not allowed", username: "łukasz", wantErr: "Username can only contain letters, numbers, underscores and dots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Username(tt.username)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			assertRejected(t, err, tt.wantErr)
		})
	}
}

func TestFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fullName string
		wantErr  string
	}{
		{name: "first and last", fullName: "Anna Kowalska"},
		{name: "polish diacritics", fullName: "Łukasz Brzęczyszczykiewicz"},
		{name: "hyphen and apostrophe", fullName: "Anne-Marie O'Neill"},
		{name: "extra spaces between parts", fullName: "Jan  Kowalski"},
		{name: "single part", fullName: "Anna", wantErr: "Full name must include both first and last name"},
		{name: "digits rejected", fullName: "Anna123 Kowalska", wantErr: "Full name can only contain letters, spaces, hyphens and apostrophes"},
		{name: "single byte", fullName: "A", wantErr: "Full name must be at least 2 characters long"},
		{name: "over 100 bytes", fullName: strings.Repeat("a", 99) + " b", wantErr: "Full name is too long (max 100 characters)"},
		{name: "multibyte single part passes length first", fullName: "Żó", wantErr: "Full name must include both first and last name"},
		{name: "tab separator fails the character set", fullName: "Anna\tKowalska", wantErr: "Full name can only contain letters, spaces, hyphens and apostrophes"},
		{name: "non-polish diacritics rejected", fullName: "José García", wantErr: "Full name can only contain letters, spaces, hyphens and apostrophes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := FullName(tt.fullName)
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			assertRejected(t, err, tt.wantErr)
		})
	}
}

func TestRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		role    string
		want    string
		wantErr string
	}{
		{name: "client lowercase", role: "client", want: "client"},
		{name: "trainer lowercase", role: "trainer", want: "trainer"},
		{name: "mixed case normalized", role: "Trainer", want: "trainer"},
		{name: "upper case normalized", role: "CLIENT", want: "client"},
		{name: "unknown role", role: "admin", wantErr: "Invalid role. Must be 'client' or 'trainer'"},
		{name: "empty", role: "", wantErr: "Invalid role. Must be 'client' or 'trainer'"},
		{name: "whitespace not trimmed", role: " trainer", wantErr: "Invalid role. Must be 'client' or 'trainer'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Role(tt.role)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)

				return
			}
			assertRejected(t, err, tt.wantErr)
			assert.Empty(t, got)
		})
	}
}

func TestValidatorsAreDeterministic(t *testing.T) {
	t.Parallel()

	first := Password("abcdefg1")
	second := Password("abcdefg1")

	require.Error(t, first)
	require.Error(t, second)
	assert.Equal(t, first.Error(), second.Error())
}
