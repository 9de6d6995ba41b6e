// Package validation contains input validation helpers shared by handlers.
package validation

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,150}$`)

// ValidateUsername checks username length and allowed characters.
func ValidateUsername(username string) error {
	if !usernameRe.MatchString(username) {
		return errors.New("username must be 3-150 characters of letters, digits, '_', '.' or '-'")
	}
	return nil
}

// ValidateEmail checks the email address format.
func ValidateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidatePassword enforces minimum password strength.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
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
		return errors.New("password must contain at least one letter and one digit")
	}
	return nil
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9-]+`)
var slugDashRe = regexp.MustCompile(`-{2,}`)

// Slugify converts free text into a URL-safe slug. It does not guarantee
// uniqueness; callers rely on the database unique index for that.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
