package pkg

import "github.com/google/uuid"

// GeneratePlayerID - generates a new unique player id.
func GeneratePlayerID() string {
	return uuid.NewString()
}

// GenerateSessionID - generates a new unique game session id.
func GenerateSessionID() string {
	return uuid.NewString()
}
