package services

import "github.com/google/uuid"

// newID returns the first 8 characters of a fresh UUID, the id shape used for
// reservations, rentals and admin-created bikes.
func newID() string {
	return uuid.NewString()[:8]
}
