package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"

	"github.com/go-playground/validator/v10"
)

// RentalService consumes reservations into rentals and settles them. Billing
// is $HourlyRate per hour, pro-rated by the second and rounded to cents.
type RentalService struct {
	bikeRepo        ports.BikeRepository
	reservationRepo ports.ReservationRepository
	rentalRepo      ports.RentalRepository
	verifier        ports.RentalVerifier
	logger          ports.LoggerPort
	audit           ports.AuditPort
	metrics         ports.MetricsPort
	validate        *validator.Validate
	hourlyRate      float64
	now             func() time.Time
}

func NewRentalService(
	bikeRepo ports.BikeRepository,
	reservationRepo ports.ReservationRepository,
	rentalRepo ports.RentalRepository,
	verifier ports.RentalVerifier,
	logger ports.LoggerPort,
	audit ports.AuditPort,
	metrics ports.MetricsPort,
	validate *validator.Validate,
	hourlyRate float64,
) *RentalService {
	return &RentalService{
		bikeRepo:        bikeRepo,
		reservationRepo: reservationRepo,
		rentalRepo:      rentalRepo,
		verifier:        verifier,
		logger:          logger,
		audit:           audit,
		metrics:         metrics,
		validate:        validate,
		hourlyRate:      hourlyRate,
		now:             time.Now,
	}
}

func (s *RentalService) Start(ctx context.Context, req domain.StartRentalRequest, ip string) (*domain.Rental, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Error("Start rental validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	res, err := s.reservationRepo.Find(ctx, req.ReservationID)
	if err != nil || res.UserID != req.UserID {
		s.logger.Error("Start rental failed", map[string]interface{}{
			"reservation_id": req.ReservationID,
			"error":          string(domain.ErrInvalidReservation),
		})
		return nil, domain.NewError(domain.ErrInvalidReservation)
	}

	latency, err := s.verifyRental(ctx)
	s.metrics.RecordExternalCall("verification", latency, err != nil)
	if err != nil {
		s.logger.Error("Verification failed", map[string]interface{}{
			"reservation_id": req.ReservationID,
			"error":          err.Error(),
		})
		return nil, domain.NewError(domain.ErrInvalidReservation)
	}

	// The reservation may have been consumed or expired while the
	// verification call was suspended; Take settles the race.
	taken, err := s.reservationRepo.Take(ctx, req.ReservationID)
	if err != nil {
		s.logger.Error("Start rental failed", map[string]interface{}{
			"reservation_id": req.ReservationID,
			"error":          string(domain.ErrInvalidReservation),
		})
		return nil, domain.NewError(domain.ErrInvalidReservation)
	}

	rental := &domain.Rental{
		ID:            newID(),
		ReservationID: taken.ID,
		BikeID:        taken.BikeID,
		UserID:        taken.UserID,
		StartTime:     s.now(),
	}
	if err := s.rentalRepo.Save(ctx, rental); err != nil {
		// put the reservation back rather than losing the claim
		_ = s.reservationRepo.Save(ctx, taken)
		return nil, err
	}

	s.audit.Record(ctx, domain.RentalStarted{
		UserID:   taken.UserID,
		IP:       ip,
		RentalID: rental.ID,
		BikeID:   taken.BikeID,
	})
	s.logger.Info("Rental started", map[string]interface{}{
		"rental_id":      rental.ID,
		"reservation_id": taken.ID,
		"user_id":        taken.UserID,
	})

	return rental, nil
}

func (s *RentalService) End(ctx context.Context, req domain.EndRentalRequest, ip string) (*domain.Rental, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Error("End rental validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	rental, err := s.rentalRepo.Find(ctx, req.RentalID)
	if err != nil || rental.UserID != req.UserID {
		s.logger.Error("End rental failed", map[string]interface{}{
			"rental_id": req.RentalID,
			"error":     string(domain.ErrInvalidRental),
		})
		return nil, domain.NewError(domain.ErrInvalidRental)
	}

	closed, err := s.rentalRepo.Close(ctx, req.RentalID, s.now(), s.fees)
	if err != nil {
		if domain.Code(err) == domain.ErrInvalidState {
			s.logger.Error("End rental failed", map[string]interface{}{
				"rental_id": req.RentalID,
				"error":     string(domain.ErrInvalidState),
			})
			return nil, err
		}
		return nil, domain.NewError(domain.ErrInvalidRental)
	}

	if err := s.bikeRepo.SetAvailability(ctx, closed.BikeID, true); err != nil {
		s.logger.Warn("Failed to release bike after rental", map[string]interface{}{
			"bike_id":   closed.BikeID,
			"rental_id": closed.ID,
			"error":     err.Error(),
		})
	}

	s.audit.Record(ctx, domain.RentalEnded{
		UserID:   closed.UserID,
		IP:       ip,
		RentalID: closed.ID,
		Duration: *closed.Duration,
		Fees:     *closed.Fees,
	})
	s.logger.Info("Rental ended", map[string]interface{}{
		"rental_id":   closed.ID,
		"duration_ms": closed.Duration.Milliseconds(),
		"fees":        *closed.Fees,
	})

	return closed, nil
}

func (s *RentalService) fees(elapsed time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	amount := elapsed.Hours() * s.hourlyRate
	return math.Round(amount*100) / 100
}

func (s *RentalService) verifyRental(ctx context.Context) (latency time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rental verification panic: %v", r)
		}
	}()
	return s.verifier.Verify(ctx)
}
