package domain

import "time"

type AuditAction string

const (
	ActionLoginSuccess         AuditAction = "LOGIN_SUCCESS"
	ActionLoginFailure         AuditAction = "LOGIN_FAILURE"
	ActionReservationCreate    AuditAction = "RESERVATION_CREATE"
	ActionRentalStart          AuditAction = "RENTAL_START"
	ActionRentalEnd            AuditAction = "RENTAL_END"
	ActionAdminInventoryUpdate AuditAction = "ADMIN_INVENTORY_UPDATE"
)

// AuditEvent is one variant per auditable action, each carrying its own typed
// field set. Actor returns the acting user id and the client IP.
type AuditEvent interface {
	Action() AuditAction
	Actor() (userID, ip string)
	Fields() map[string]interface{}
}

type LoginSucceeded struct {
	UserID string
	IP     string
}

func (e LoginSucceeded) Action() AuditAction            { return ActionLoginSuccess }
func (e LoginSucceeded) Actor() (string, string)        { return e.UserID, e.IP }
func (e LoginSucceeded) Fields() map[string]interface{} { return nil }

type LoginFailed struct {
	UserID string
	IP     string
}

func (e LoginFailed) Action() AuditAction            { return ActionLoginFailure }
func (e LoginFailed) Actor() (string, string)        { return e.UserID, e.IP }
func (e LoginFailed) Fields() map[string]interface{} { return nil }

type ReservationCreated struct {
	UserID        string
	IP            string
	BikeID        string
	ReservationID string
}

func (e ReservationCreated) Action() AuditAction     { return ActionReservationCreate }
func (e ReservationCreated) Actor() (string, string) { return e.UserID, e.IP }
func (e ReservationCreated) Fields() map[string]interface{} {
	return map[string]interface{}{
		"bike_id":        e.BikeID,
		"reservation_id": e.ReservationID,
	}
}

type RentalStarted struct {
	UserID   string
	IP       string
	RentalID string
	BikeID   string
}

func (e RentalStarted) Action() AuditAction     { return ActionRentalStart }
func (e RentalStarted) Actor() (string, string) { return e.UserID, e.IP }
func (e RentalStarted) Fields() map[string]interface{} {
	return map[string]interface{}{
		"rental_id": e.RentalID,
		"bike_id":   e.BikeID,
	}
}

type RentalEnded struct {
	UserID   string
	IP       string
	RentalID string
	Duration time.Duration
	Fees     float64
}

func (e RentalEnded) Action() AuditAction     { return ActionRentalEnd }
func (e RentalEnded) Actor() (string, string) { return e.UserID, e.IP }
func (e RentalEnded) Fields() map[string]interface{} {
	return map[string]interface{}{
		"rental_id":    e.RentalID,
		"duration_ms":  e.Duration.Milliseconds(),
		"fees_charged": e.Fees,
	}
}

type InventoryAdjusted struct {
	AdminID        string
	IP             string
	RequestedDelta int
	AppliedDelta   int
}

func (e InventoryAdjusted) Action() AuditAction     { return ActionAdminInventoryUpdate }
func (e InventoryAdjusted) Actor() (string, string) { return e.AdminID, e.IP }
func (e InventoryAdjusted) Fields() map[string]interface{} {
	return map[string]interface{}{
		"requested_delta": e.RequestedDelta,
		"applied_delta":   e.AppliedDelta,
	}
}
