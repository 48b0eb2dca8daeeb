package utils

import (
	"regexp"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-@]+$`)

func ValidateUsername(username string) bool {
	username = strings.TrimSpace(username)
	return len(username) >= 3 && len(username) <= 64 && usernameRegex.MatchString(username)
}

func ValidatePassword(password string) bool {
	return len(password) >= 6 && len(password) <= 72
}
