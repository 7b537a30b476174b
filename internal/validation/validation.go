package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxUsernameLength matches the width of the users.username column
const MaxUsernameLength = 80

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername checks a username after trimming surrounding whitespace
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return ValidationError{Field: "username", Message: fmt.Sprintf("username must be at most %d characters", MaxUsernameLength)}
	}
	return nil
}

// ValidatePassword checks that a password was supplied
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	return nil
}
