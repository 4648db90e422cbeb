package domain

import "github.com/google/uuid"

// generateID returns a random id for a kick snapshot row.
func generateID() string {
	return uuid.New().String()
}
