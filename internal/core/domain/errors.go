package domain

import "errors"

// ErrCode classifies expected, recoverable outcomes. Services return these as
// values; the transport layer maps them to status codes.
type ErrCode string

const (
	ErrNotFound           ErrCode = "NOT_FOUND"
	ErrSoldOut            ErrCode = "SOLD_OUT"
	ErrUnauthorized       ErrCode = "UNAUTHORIZED"
	ErrExternalDependency ErrCode = "EXTERNAL_DEPENDENCY"
	ErrInvalidReservation ErrCode = "INVALID_RESERVATION"
	ErrInvalidRental      ErrCode = "INVALID_RENTAL"
	ErrInvalidState       ErrCode = "INVALID_STATE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }

func NewError(c ErrCode) error { return codedError{code: c} }

// Code extracts the error code, or "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
