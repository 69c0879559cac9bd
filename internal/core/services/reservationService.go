package services

import (
	"context"
	"fmt"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"

	"github.com/go-playground/validator/v10"
)

// ReservationService creates reservations: it checks inventory, consults the
// payment authorizer, then atomically claims the bike. The store lock is never
// held across the external call, so availability is re-validated afterwards.
type ReservationService struct {
	bikeRepo        ports.BikeRepository
	reservationRepo ports.ReservationRepository
	payment         ports.PaymentAuthorizer
	logger          ports.LoggerPort
	audit           ports.AuditPort
	metrics         ports.MetricsPort
	validate        *validator.Validate
	slowThreshold   time.Duration
	now             func() time.Time
}

func NewReservationService(
	bikeRepo ports.BikeRepository,
	reservationRepo ports.ReservationRepository,
	payment ports.PaymentAuthorizer,
	logger ports.LoggerPort,
	audit ports.AuditPort,
	metrics ports.MetricsPort,
	validate *validator.Validate,
	slowThreshold time.Duration,
) *ReservationService {
	return &ReservationService{
		bikeRepo:        bikeRepo,
		reservationRepo: reservationRepo,
		payment:         payment,
		logger:          logger,
		audit:           audit,
		metrics:         metrics,
		validate:        validate,
		slowThreshold:   slowThreshold,
		now:             time.Now,
	}
}

func (s *ReservationService) Reserve(ctx context.Context, req domain.ReserveRequest, ip string) (*domain.Reservation, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Error("Reserve validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("validation error: %w", err)
	}

	bike, err := s.bikeRepo.Find(ctx, req.BikeID)
	if err != nil || !bike.Available {
		s.logger.Error("Reservation failed", map[string]interface{}{
			"bike_id": req.BikeID,
			"error":   string(domain.ErrSoldOut),
		})
		return nil, domain.NewError(domain.ErrSoldOut)
	}

	latency, err := s.authorizePayment(ctx)
	s.metrics.RecordExternalCall("payment", latency, err != nil)
	if err != nil {
		s.logger.Error("Reservation failed due to payment error", map[string]interface{}{
			"bike_id": req.BikeID,
			"error":   err.Error(),
		})
		return nil, domain.NewError(domain.ErrExternalDependency)
	}
	if latency > s.slowThreshold {
		s.logger.Warn("Payment service slow", map[string]interface{}{
			"elapsed_ms":     latency.Milliseconds(),
			"using_fallback": false,
		})
	}

	// Inventory may have changed while the payment call was suspended, so the
	// claim re-checks availability under the store lock.
	if err := s.bikeRepo.Claim(ctx, req.BikeID); err != nil {
		s.logger.Error("Reservation failed", map[string]interface{}{
			"bike_id": req.BikeID,
			"error":   string(domain.ErrSoldOut),
		})
		return nil, domain.NewError(domain.ErrSoldOut)
	}

	res := &domain.Reservation{
		ID:        newID(),
		UserID:    req.UserID,
		BikeID:    req.BikeID,
		StartTime: s.now(),
	}
	if err := s.reservationRepo.Save(ctx, res); err != nil {
		// release the claim so the bike is not stranded
		_ = s.bikeRepo.SetAvailability(ctx, req.BikeID, true)
		return nil, err
	}

	s.audit.Record(ctx, domain.ReservationCreated{
		UserID:        req.UserID,
		IP:            ip,
		BikeID:        req.BikeID,
		ReservationID: res.ID,
	})
	s.logger.Info("Reservation created", map[string]interface{}{
		"reservation_id": res.ID,
		"user_id":        req.UserID,
		"bike_id":        req.BikeID,
	})

	return res, nil
}

// authorizePayment contains faults from the collaborator at the operation
// boundary: a panic inside the simulated call surfaces as an error, never past
// Reserve.
func (s *ReservationService) authorizePayment(ctx context.Context) (latency time.Duration, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("payment authorization panic: %v", r)
		}
	}()
	return s.payment.Authorize(ctx)
}
