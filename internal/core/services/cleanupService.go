package services

import (
	"context"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
)

// Sweeper releases bikes held by reservations that were never started within
// the TTL. A TTL of zero disables expiry entirely.
type Sweeper struct {
	reservationRepo ports.ReservationRepository
	bikeRepo        ports.BikeRepository
	logger          ports.LoggerPort
	ttl             time.Duration
	interval        time.Duration
	now             func() time.Time
}

func NewSweeper(
	reservationRepo ports.ReservationRepository,
	bikeRepo ports.BikeRepository,
	logger ports.LoggerPort,
	ttl time.Duration,
	interval time.Duration,
) *Sweeper {
	return &Sweeper{
		reservationRepo: reservationRepo,
		bikeRepo:        bikeRepo,
		logger:          logger,
		ttl:             ttl,
		interval:        interval,
		now:             time.Now,
	}
}

func (s *Sweeper) ReleaseExpired(ctx context.Context) (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}

	expired, err := s.reservationRepo.TakeExpired(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, err
	}

	for _, res := range expired {
		if err := s.bikeRepo.SetAvailability(ctx, res.BikeID, true); err != nil {
			s.logger.Warn("Failed to release bike for expired reservation", map[string]interface{}{
				"reservation_id": res.ID,
				"bike_id":        res.BikeID,
				"error":          err.Error(),
			})
		}
	}

	if len(expired) > 0 {
		s.logger.Info("Released expired reservations", map[string]interface{}{
			"count": len(expired),
		})
	}

	return len(expired), nil
}

// Run sweeps on a ticker until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	if s.ttl <= 0 || s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.ReleaseExpired(ctx); err != nil {
				s.logger.Error("Reservation sweep failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
