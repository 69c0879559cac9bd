package domain

// Request payloads for the core operations. Services validate these with
// go-playground/validator before touching state.

type LoginRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ReserveRequest struct {
	UserID string `json:"user_id" validate:"required"`
	BikeID string `json:"bike_id" validate:"required"`
}

type StartRentalRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	ReservationID string `json:"reservation_id" validate:"required"`
}

type EndRentalRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	RentalID string `json:"rental_id" validate:"required"`
}

type InventoryUpdateRequest struct {
	AdminID string `json:"admin_id" validate:"required"`
	Delta   int    `json:"delta" validate:"required"`
}
