package ports

import (
	"context"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
)

// BikeRepository owns the fleet state. Implementations must serialize
// mutations per bike and hand out copies, never aliases of stored records.
type BikeRepository interface {
	ListAvailable(ctx context.Context) ([]domain.Bike, error)
	Find(ctx context.Context, bikeID string) (*domain.Bike, error)
	SetAvailability(ctx context.Context, bikeID string, available bool) error
	Add(ctx context.Context, bike domain.Bike) error
	Remove(ctx context.Context, bikeID string) error

	// Claim atomically flips an available bike to unavailable. It fails with
	// SOLD_OUT when the bike is already claimed, so exactly one of several
	// concurrent callers wins.
	Claim(ctx context.Context, bikeID string) error

	// RemoveIfAvailable deletes the bike only while it is available, so a
	// reserved or rented bike can never be removed out from under its holder.
	RemoveIfAvailable(ctx context.Context, bikeID string) error
}
