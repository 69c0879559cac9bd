package domain

// Bike is a fleet unit. Available is false while the bike backs an open
// reservation or an unended rental.
type Bike struct {
	ID        string `json:"id"`
	Available bool   `json:"available"`
}
