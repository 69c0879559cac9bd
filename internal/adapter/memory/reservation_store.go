package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
)

type ReservationStore struct {
	mu           sync.RWMutex
	reservations map[string]*domain.Reservation
}

func NewReservationStore() *ReservationStore {
	return &ReservationStore{
		reservations: make(map[string]*domain.Reservation),
	}
}

func (s *ReservationStore) Save(ctx context.Context, res *domain.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[res.ID]; ok {
		return domain.NewError(domain.ErrInvalidState)
	}
	stored := *res
	s.reservations[res.ID] = &stored
	return nil
}

func (s *ReservationStore) Find(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reservations[reservationID]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound)
	}
	res := *r
	return &res, nil
}

// Take removes and returns the reservation atomically, so a reservation can
// only ever be consumed once.
func (s *ReservationStore) Take(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[reservationID]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound)
	}
	delete(s.reservations, reservationID)
	res := *r
	return &res, nil
}

func (s *ReservationStore) TakeExpired(ctx context.Context, cutoff time.Time) ([]domain.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []domain.Reservation
	for id, r := range s.reservations {
		if r.StartTime.Before(cutoff) {
			expired = append(expired, *r)
			delete(s.reservations, id)
		}
	}
	return expired, nil
}
