package domain

import (
	"net/mail"
	"strings"
)

// NormalizeEmail trims and lower-cases an address for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks that a normalized address is present and parses as a
// single bare address.
func ValidateEmail(email string) error {
	if email == "" {
		return NewValidationError("email", "required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return NewValidationError("email", "invalid address")
	}
	return nil
}
