package ports

import (
	"context"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
)

type RentalRepository interface {
	Save(ctx context.Context, rental *domain.Rental) error
	Find(ctx context.Context, rentalID string) (*domain.Rental, error)

	// Close ends an open rental: it sets the end time, the duration and the
	// fee computed by fees(elapsed), all under the store's lock. An already
	// ended rental yields INVALID_STATE and stays untouched.
	Close(ctx context.Context, rentalID string, endTime time.Time, fees func(elapsed time.Duration) float64) (*domain.Rental, error)
}
