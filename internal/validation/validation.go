// Package validation rejects malformed user input at the front-end
// boundary, before it can reach the store.
package validation

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError reports which field failed and why.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsername checks a username. The delimiter byte is forbidden
// because the serialised user record is delimiter-joined.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ValidationError{Field: "username", Message: "username is required"}
	}
	if len(username) > 96 {
		return ValidationError{Field: "username", Message: "username must be at most 96 characters"}
	}
	if strings.ContainsAny(username, "|\n") {
		return ValidationError{Field: "username", Message: "username contains an invalid character"}
	}
	return nil
}

// ValidatePassword checks that a password meets requirements.
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks a display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.ContainsAny(name, "|\n") {
		return ValidationError{Field: "name", Message: "name contains an invalid character"}
	}
	return nil
}

// ValidateBirthday checks a date of birth. Empty is allowed; anything
// else must be an ISO date.
func ValidateBirthday(birthday string) error {
	if birthday == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", birthday); err != nil {
		return ValidationError{Field: "birthday", Message: "birthday must be YYYY-MM-DD"}
	}
	return nil
}

// ValidateWordText checks a dictionary word before it enters the store.
func ValidateWordText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ValidationError{Field: "word", Message: "word is required"}
	}
	if len(text) > 96 {
		return ValidationError{Field: "word", Message: "word must be at most 96 characters"}
	}
	if strings.ContainsAny(text, "|\n") {
		return ValidationError{Field: "word", Message: "word contains an invalid character"}
	}
	return nil
}

// ValidateWordDefinition checks a word's definition. Empty is allowed;
// the delimiter and newlines would break the word's serialised record
// and the line-oriented list files, so they are forbidden in every
// field, not just the word itself.
func ValidateWordDefinition(definition string) error {
	if strings.ContainsAny(definition, "|\n") {
		return ValidationError{Field: "definition", Message: "definition contains an invalid character"}
	}
	return nil
}

// ValidateWordExample checks a word's example sentence. Empty is
// allowed; the delimiter and newlines are forbidden as in the
// definition.
func ValidateWordExample(example string) error {
	if strings.ContainsAny(example, "|\n") {
		return ValidationError{Field: "example", Message: "example contains an invalid character"}
	}
	return nil
}
