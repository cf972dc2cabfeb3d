package common

import (
	"regexp"
	"strings"
)

var (
	emailRegex    = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9_]+$`)
)

const MaxTweetLength = 255

// NormalizeUsername is applied before any username comparison or storage so
// lookups are case-insensitive.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// NormalizeEmail lower-cases the address before storage or lookup, matching
// what the unique email index expects.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateUsername(username string) error {
	username = NormalizeUsername(username)
	if len(username) < 3 || len(username) > 50 {
		return E(KindInvalidArgument, "username must be between 3 and 50 characters")
	}
	if !usernameRegex.MatchString(username) {
		return E(KindInvalidArgument, "username can only contain letters, numbers, and underscores")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 6 {
		return E(KindInvalidArgument, "password must be atleast 6 characters long")
	}
	if len(password) > 100 {
		return E(KindInvalidArgument, "password is too long")
	}
	return nil
}

func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRegex.MatchString(email) {
		return E(KindInvalidArgument, "invalid email format")
	}
	return nil
}
