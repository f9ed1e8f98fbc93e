package auth

import (
	"fmt"
	"regexp"
	"unicode"
)

// ValidationError ties a message to the form field it concerns, so the UI
// can surface it inline next to the offending input.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
var usernamePattern = regexp.MustCompile(`^[a-z0-9_]{3,20}$`)

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) *ValidationError {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailPattern.MatchString(email) {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	return nil
}

// ValidatePassword enforces minimum password strength: at least 8 characters
// containing a letter and a digit.
func ValidatePassword(password string) *ValidationError {
	if len(password) < 8 {
		return &ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return &ValidationError{Field: "password", Message: "password must contain a letter and a digit"}
	}
	return nil
}

// ValidateUsername enforces the username constraints: 3-20 characters,
// lowercase letters, digits and underscores.
func ValidateUsername(username string) *ValidationError {
	if username == "" {
		return &ValidationError{Field: "username", Message: "username is required"}
	}
	if !usernamePattern.MatchString(username) {
		return &ValidationError{Field: "username", Message: "username must be 3-20 characters of a-z, 0-9 or _"}
	}
	return nil
}

// ValidateRegistration validates a full registration form and returns every
// failing field at once.
func ValidateRegistration(email, password, username string) []*ValidationError {
	var errs []*ValidationError
	if err := ValidateEmail(email); err != nil {
		errs = append(errs, err)
	}
	if err := ValidatePassword(password); err != nil {
		errs = append(errs, err)
	}
	if err := ValidateUsername(username); err != nil {
		errs = append(errs, err)
	}
	return errs
}
