// Package user names the local peer of an editing session.
package user

import (
	"os"
	"os/user"
	"strings"

	"github.com/google/uuid"
)

// suffixLen is how much of a random uuid tells two sessions of the same
// user apart.
const suffixLen = 8

// GetCurrentUsername returns the current system username.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. "unknown" - final fallback to ensure a non-empty value
func GetCurrentUsername() string {
	currentUser, err := user.Current()
	if err == nil && currentUser.Username != "" {
		return currentUser.Username
	}
	if username := os.Getenv("USER"); username != "" {
		return username
	}
	return "unknown"
}

// PeerID returns the id this session publishes its transactions under:
// the username plus a short random suffix, e.g. "ana-1b9d6bcd".
func PeerID() string {
	name := strings.ReplaceAll(GetCurrentUsername(), " ", "_")
	return name + "-" + uuid.NewString()[:suffixLen]
}
