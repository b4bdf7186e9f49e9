package validation

import (
	"regexp"
	"unicode"
)

// Validation rule constants
var (
	// EmailPattern matches ordinary addresses; TLD length is capped at 6
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,6}$`

	PasswordMinLength = 8

	NameMinLength = 2
	NameMaxLength = 100
)

var emailRegex = regexp.MustCompile(EmailPattern)

// IsValidEmail reports whether the address matches the email pattern.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword requires minimum length plus at least one letter and one digit.
func IsValidPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
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
	return hasLetter && hasDigit
}

// IsValidName checks display-name length bounds.
func IsValidName(name string) bool {
	return len(name) >= NameMinLength && len(name) <= NameMaxLength
}
