package ports

import (
	"context"
	"time"
)

// PaymentAuthorizer is the downstream payment/authorization collaborator
// consulted before a reservation is created. The call may suspend for a
// bounded wall-clock time and may fail; callers must not hold any store lock
// while it runs. The returned duration is the observed latency.
type PaymentAuthorizer interface {
	Authorize(ctx context.Context) (time.Duration, error)
}

// RentalVerifier is the collaborator consulted before a reservation is
// consumed into a rental.
type RentalVerifier interface {
	Verify(ctx context.Context) (time.Duration, error)
}
