package util

import "github.com/google/uuid"

// GenerateID returns a UUIDv7: a millisecond timestamp prefix plus 74 random bits,
// so ids sort by creation time.
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does
		return uuid.NewString()
	}
	return id.String()
}
