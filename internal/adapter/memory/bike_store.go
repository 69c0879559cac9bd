package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
)

// BikeStore keeps the fleet in process memory behind a single mutex, so every
// mutation of a given bike is serialized and readers always see a consistent
// snapshot.
type BikeStore struct {
	mu    sync.RWMutex
	bikes map[string]*domain.Bike
}

func NewBikeStore(seed ...domain.Bike) *BikeStore {
	s := &BikeStore{
		bikes: make(map[string]*domain.Bike, len(seed)),
	}
	for _, b := range seed {
		bike := b
		s.bikes[bike.ID] = &bike
	}
	return s
}

func (s *BikeStore) ListAvailable(ctx context.Context) ([]domain.Bike, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	available := make([]domain.Bike, 0, len(s.bikes))
	for _, b := range s.bikes {
		if b.Available {
			available = append(available, *b)
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })
	return available, nil
}

func (s *BikeStore) Find(ctx context.Context, bikeID string) (*domain.Bike, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bikes[bikeID]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound)
	}
	bike := *b
	return &bike, nil
}

func (s *BikeStore) SetAvailability(ctx context.Context, bikeID string, available bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bikes[bikeID]
	if !ok {
		return domain.NewError(domain.ErrNotFound)
	}
	b.Available = available
	return nil
}

func (s *BikeStore) Add(ctx context.Context, bike domain.Bike) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bikes[bike.ID]; ok {
		return domain.NewError(domain.ErrInvalidState)
	}
	b := bike
	s.bikes[bike.ID] = &b
	return nil
}

func (s *BikeStore) Remove(ctx context.Context, bikeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bikes[bikeID]; !ok {
		return domain.NewError(domain.ErrNotFound)
	}
	delete(s.bikes, bikeID)
	return nil
}

// Claim flips an available bike to unavailable in one critical section.
// Exactly one of several concurrent claimants succeeds.
func (s *BikeStore) Claim(ctx context.Context, bikeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bikes[bikeID]
	if !ok {
		return domain.NewError(domain.ErrNotFound)
	}
	if !b.Available {
		return domain.NewError(domain.ErrSoldOut)
	}
	b.Available = false
	return nil
}

// RemoveIfAvailable deletes the bike only while it is still available, so a
// bike claimed between a listing and the removal stays in the fleet.
func (s *BikeStore) RemoveIfAvailable(ctx context.Context, bikeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bikes[bikeID]
	if !ok {
		return domain.NewError(domain.ErrNotFound)
	}
	if !b.Available {
		return domain.NewError(domain.ErrInvalidState)
	}
	delete(s.bikes, bikeID)
	return nil
}
