package domain

import "time"

// Rental is the active usage period of a bike. BikeID and UserID are
// denormalized from the reservation the rental was started from, since the
// reservation is deleted when it is consumed. ReservationID is kept for
// traceability only.
type Rental struct {
	ID            string         `json:"id"`
	ReservationID string         `json:"reservation_id"`
	BikeID        string         `json:"bike_id"`
	UserID        string         `json:"user_id"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       *time.Time     `json:"end_time,omitempty"`
	Duration      *time.Duration `json:"duration,omitempty"`
	Fees          *float64       `json:"fees,omitempty"`
}

// Ended reports whether the rental is closed. A closed rental is immutable.
func (r *Rental) Ended() bool {
	return r.EndTime != nil
}
