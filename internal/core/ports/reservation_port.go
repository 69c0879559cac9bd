package ports

import (
	"context"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
)

type ReservationRepository interface {
	Save(ctx context.Context, res *domain.Reservation) error
	Find(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// Take removes and returns the reservation in one step. Concurrent
	// callers racing to consume the same reservation see exactly one winner.
	Take(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// TakeExpired removes and returns every reservation started before the
	// cutoff, for the expiry sweeper.
	TakeExpired(ctx context.Context, cutoff time.Time) ([]domain.Reservation, error)
}
