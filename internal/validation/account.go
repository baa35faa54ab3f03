// Package validation provides form-level field validation. It rejects
// malformed submissions before any domain operation runs.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > 250 {
		return fmt.Errorf("username must not exceed 250 characters")
	}
	return nil
}

// ValidateEmail checks if an email address looks structurally valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if len(email) > 250 {
		return fmt.Errorf("email must not exceed 250 characters")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}

// ValidatePassword checks if a password is acceptable
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	// bcrypt truncates input beyond 72 bytes; reject rather than silently
	// hash a prefix.
	if len(password) > 72 {
		return fmt.Errorf("password must not exceed 72 characters")
	}
	return nil
}

// ValidatePostFields checks the create/edit post form fields.
func ValidatePostFields(title, subtitle, body string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > 250 {
		return fmt.Errorf("title must not exceed 250 characters")
	}
	if len(subtitle) > 250 {
		return fmt.Errorf("subtitle must not exceed 250 characters")
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("body is required")
	}
	return nil
}
