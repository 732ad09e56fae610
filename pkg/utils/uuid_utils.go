package utils

import "github.com/google/uuid"

// GenerateUUIDv7 returns a time-ordered UUID. Wallet, catalog and folder
// ids are v7 so they sort by creation time.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to v4
		return uuid.New()
	}
	return id
}
