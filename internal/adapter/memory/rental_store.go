package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
)

type RentalStore struct {
	mu      sync.RWMutex
	rentals map[string]*domain.Rental
}

func NewRentalStore() *RentalStore {
	return &RentalStore{
		rentals: make(map[string]*domain.Rental),
	}
}

func (s *RentalStore) Save(ctx context.Context, rental *domain.Rental) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rentals[rental.ID]; ok {
		return domain.NewError(domain.ErrInvalidState)
	}
	stored := *rental
	s.rentals[rental.ID] = &stored
	return nil
}

func (s *RentalStore) Find(ctx context.Context, rentalID string) (*domain.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rentals[rentalID]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound)
	}
	return copyRental(r), nil
}

// Close ends an open rental under the store lock. Ending an already ended
// rental yields INVALID_STATE and leaves the record untouched, which makes the
// operation safe to retry.
func (s *RentalStore) Close(ctx context.Context, rentalID string, endTime time.Time, fees func(elapsed time.Duration) float64) (*domain.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rentals[rentalID]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound)
	}
	if r.Ended() {
		return nil, domain.NewError(domain.ErrInvalidState)
	}

	elapsed := endTime.Sub(r.StartTime)
	charged := fees(elapsed)

	r.EndTime = &endTime
	r.Duration = &elapsed
	r.Fees = &charged
	return copyRental(r), nil
}

// copyRental deep-copies the optional fields so callers can never mutate a
// stored record through the returned pointer.
func copyRental(r *domain.Rental) *domain.Rental {
	rental := *r
	if r.EndTime != nil {
		end := *r.EndTime
		rental.EndTime = &end
	}
	if r.Duration != nil {
		d := *r.Duration
		rental.Duration = &d
	}
	if r.Fees != nil {
		f := *r.Fees
		rental.Fees = &f
	}
	return &rental
}
