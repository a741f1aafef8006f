package util

import (
	"strings"
	"unicode/utf8"
)

// MaskEmail hides most of the local part of an email address so it can be
// logged. "jan.kowalski@example.com" becomes "j***@example.com".
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}

	first, _ := utf8.DecodeRuneInString(email)

	return string(first) + "***" + email[at:]
}

// MaskPhone keeps only the last two digits of a phone number so it can be
// logged. "+48 123 456 789" becomes "***89".
func MaskPhone(phone string) string {
	digits := make([]rune, 0, len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits = append(digits, r)
		}
	}
	if len(digits) < 2 {
		return "***"
	}

	return "***" + string(digits[len(digits)-2:])
}
