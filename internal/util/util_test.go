package util

import (
	"testing"
)

func TestMaskEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "typical address", email: "jan.kowalski@example.com", expected: "j***@example.com"},
		{name: "single letter local part", email: "a@b.c", expected: "a***@b.c"},
		{name: "unicode local part", email: "łukasz@example.com", expected: "ł***@example.com"},
		{name: "missing at sign", email: "not-an-email", expected: "***"},
		{name: "leading at sign", email: "@example.com", expected: "***"},
		{name: "empty string", email: "", expected: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := MaskEmail(tt.email); got != tt.expected {
				t.Fatalf("MaskEmail(%q) = %s, want %s", tt.email, got, tt.expected)
			}
		})
	}
}

func TestMaskPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		phone    string
		expected string
	}{
		{name: "spaced number", phone: "+48 123 456 789", expected: "***89"},
		{name: "hyphenated number", phone: "123-456-789", expected: "***89"},
		{name: "plain digits", phone: "123456", expected: "***56"},
		{name: "single digit", phone: "7", expected: "***"},
		{name: "no digits", phone: "+- ", expected: "***"},
		{name: "empty string", phone: "", expected: "***"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := MaskPhone(tt.phone); got != tt.expected {
				t.Fatalf("MaskPhone(%q) = %s, want %s", tt.phone, got, tt.expected)
			}
		})
	}
}
