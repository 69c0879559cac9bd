package domain

import "time"

// Reservation is a user's claim on a specific bike, held until it is either
// consumed into a rental or released by the expiry sweeper.
type Reservation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BikeID    string    `json:"bike_id"`
	StartTime time.Time `json:"start_time"`
}
