package model

import (
	"time"
	"unicode/utf8"
)

// AdminCredential is the single administrator account.
type AdminCredential struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MinPasswordLength is the minimum length of a new admin password, in
// characters.
const MinPasswordLength = 8

// ValidatePassword checks a new password against the password rules.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return Errorf(ErrValidation, "New password must be at least %d characters.", MinPasswordLength)
	}
	return nil
}
