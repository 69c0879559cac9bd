package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/adapter/memory"
	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func newRentalService(
	bikes *memory.BikeStore,
	reservations *memory.ReservationStore,
	rentals *memory.RentalStore,
	verifier ports.RentalVerifier,
	audit *spyAudit,
) *RentalService {
	return NewRentalService(
		bikes, reservations, rentals, verifier, &spyLogger{}, audit, nopMetrics{}, validator.New(), 10.0)
}

// seedReservation puts a claimed bike and its live reservation in place.
func seedReservation(t *testing.T, bikes *memory.BikeStore, reservations *memory.ReservationStore, resID, userID, bikeID string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, bikes.Add(ctx, domain.Bike{ID: bikeID, Available: true}))
	require.NoError(t, bikes.Claim(ctx, bikeID))
	require.NoError(t, reservations.Save(ctx, &domain.Reservation{
		ID: resID, UserID: userID, BikeID: bikeID, StartTime: time.Now(),
	}))
}

func TestStartRental_UnknownReservation(t *testing.T) {
	svc := newRentalService(memory.NewBikeStore(), memory.NewReservationStore(), memory.NewRentalStore(), &fakeVerifier{}, &spyAudit{})

	_, err := svc.Start(context.Background(), domain.StartRentalRequest{UserID: "u1", ReservationID: "nope"}, "ip")
	require.Equal(t, domain.ErrInvalidReservation, domain.Code(err))
}

func TestStartRental_WrongUser(t *testing.T) {
	bikes := memory.NewBikeStore()
	reservations := memory.NewReservationStore()
	seedReservation(t, bikes, reservations, "r-1", "u1", "b-42")
	svc := newRentalService(bikes, reservations, memory.NewRentalStore(), &fakeVerifier{}, &spyAudit{})

	_, err := svc.Start(context.Background(), domain.StartRentalRequest{UserID: "u2", ReservationID: "r-1"}, "ip")
	require.Equal(t, domain.ErrInvalidReservation, domain.Code(err))

	// the reservation survives the rejected attempt
	_, err = reservations.Find(context.Background(), "r-1")
	require.NoError(t, err)
}

func TestStartRental_VerificationFailure(t *testing.T) {
	bikes := memory.NewBikeStore()
	reservations := memory.NewReservationStore()
	seedReservation(t, bikes, reservations, "r-1", "u1", "b-42")
	verifier := &fakeVerifier{fn: func(ctx context.Context) (time.Duration, error) {
		return 80 * time.Millisecond, errors.New("verification failed")
	}}
	audit := &spyAudit{}
	svc := newRentalService(bikes, reservations, memory.NewRentalStore(), verifier, audit)

	_, err := svc.Start(context.Background(), domain.StartRentalRequest{UserID: "u1", ReservationID: "r-1"}, "ip")
	require.Equal(t, domain.ErrInvalidReservation, domain.Code(err))

	_, err = reservations.Find(context.Background(), "r-1")
	require.NoError(t, err)
	require.Empty(t, audit.actions())
}

func TestStartRental_Success(t *testing.T) {
	ctx := context.Background()
	bikes := memory.NewBikeStore()
	reservations := memory.NewReservationStore()
	rentals := memory.NewRentalStore()
	seedReservation(t, bikes, reservations, "r-1", "u1", "b-42")
	audit := &spyAudit{}
	svc := newRentalService(bikes, reservations, rentals, &fakeVerifier{}, audit)

	rental, err := svc.Start(ctx, domain.StartRentalRequest{UserID: "u1", ReservationID: "r-1"}, "ip")
	require.NoError(t, err)
	require.Equal(t, "r-1", rental.ReservationID)
	require.Equal(t, "b-42", rental.BikeID)
	require.Equal(t, "u1", rental.UserID)
	require.False(t, rental.Ended())

	// consumed: the reservation cannot be started twice
	_, err = reservations.Find(ctx, "r-1")
	require.Equal(t, domain.ErrNotFound, domain.Code(err))

	_, err = svc.Start(ctx, domain.StartRentalRequest{UserID: "u1", ReservationID: "r-1"}, "ip")
	require.Equal(t, domain.ErrInvalidReservation, domain.Code(err))

	require.Equal(t, []domain.AuditAction{domain.ActionRentalStart}, audit.actions())
}

func TestEndRental_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	bikes := memory.NewBikeStore()
	reservations := memory.NewReservationStore()
	rentals := memory.NewRentalStore()
	seedReservation(t, bikes, reservations, "r-1", "u1", "b-42")
	audit := &spyAudit{}
	svc := newRentalService(bikes, reservations, rentals, &fakeVerifier{}, audit)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	rental, err := svc.Start(ctx, domain.StartRentalRequest{UserID: "u1", ReservationID: "r-1"}, "ip")
	require.NoError(t, err)

	// not in the available list while rented
	available, err := bikes.ListAvailable(ctx)
	require.NoError(t, err)
	require.Empty(t, available)

	svc.now = func() time.Time { return start.Add(30 * time.Minute) }

	ended, err := svc.End(ctx, domain.EndRentalRequest{UserID: "u1", RentalID: rental.ID}, "ip")
	require.NoError(t, err)
	require.True(t, ended.Ended())
	require.Equal(t, 30*time.Minute, *ended.Duration)
	require.InDelta(t, 5.0, *ended.Fees, 1e-9) // half an hour at $10/h

	available, err = bikes.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	require.Equal(t, "b-42", available[0].ID)

	require.Equal(t, []domain.AuditAction{domain.ActionRentalStart, domain.ActionRentalEnd}, audit.actions())
	endedEvent := audit.last().(domain.RentalEnded)
	require.Equal(t, 30*time.Minute, endedEvent.Duration)
	require.InDelta(t, 5.0, endedEvent.Fees, 1e-9)
}

func TestEndRental_IdempotencySafety(t *testing.T) {
	ctx := context.Background()
	bikes := memory.NewBikeStore()
	reservations := memory.NewReservationStore()
	seedReservation(t, bikes, reservations, "r-1", "u1", "b-42")
	svc := newRentalService(bikes, reservations, memory.NewRentalStore(), &fakeVerifier{}, &spyAudit{})

	rental, err := svc.Start(ctx, domain.StartRentalRequest{UserID: "u1", ReservationID: "r-1"}, "ip")
	require.NoError(t, err)

	_, err = svc.End(ctx, domain.EndRentalRequest{UserID: "u1", RentalID: rental.ID}, "ip")
	require.NoError(t, err)

	_, err = svc.End(ctx, domain.EndRentalRequest{UserID: "u1", RentalID: rental.ID}, "ip")
	require.Equal(t, domain.ErrInvalidState, domain.Code(err))

	// bike released exactly once, still available
	bike, err := bikes.Find(ctx, "b-42")
	require.NoError(t, err)
	require.True(t, bike.Available)
}

func TestEndRental_WrongUser(t *testing.T) {
	ctx := context.Background()
	bikes := memory.NewBikeStore()
	reservations := memory.NewReservationStore()
	seedReservation(t, bikes, reservations, "r-1", "u1", "b-42")
	svc := newRentalService(bikes, reservations, memory.NewRentalStore(), &fakeVerifier{}, &spyAudit{})

	rental, err := svc.Start(ctx, domain.StartRentalRequest{UserID: "u1", ReservationID: "r-1"}, "ip")
	require.NoError(t, err)

	_, err = svc.End(ctx, domain.EndRentalRequest{UserID: "u2", RentalID: rental.ID}, "ip")
	require.Equal(t, domain.ErrInvalidRental, domain.Code(err))

	// untouched: the owner can still end it
	_, err = svc.End(ctx, domain.EndRentalRequest{UserID: "u1", RentalID: rental.ID}, "ip")
	require.NoError(t, err)
}

func TestEndRental_UnknownRental(t *testing.T) {
	svc := newRentalService(memory.NewBikeStore(), memory.NewReservationStore(), memory.NewRentalStore(), &fakeVerifier{}, &spyAudit{})

	_, err := svc.End(context.Background(), domain.EndRentalRequest{UserID: "u1", RentalID: "nope"}, "ip")
	require.Equal(t, domain.ErrInvalidRental, domain.Code(err))
}

func TestFees_MonotonicInDuration(t *testing.T) {
	svc := newRentalService(memory.NewBikeStore(), memory.NewReservationStore(), memory.NewRentalStore(), &fakeVerifier{}, &spyAudit{})

	prev := -1.0
	for _, elapsed := range []time.Duration{
		0, time.Second, time.Minute, 30 * time.Minute, time.Hour, 90 * time.Minute, 24 * time.Hour,
	} {
		fee := svc.fees(elapsed)
		require.GreaterOrEqual(t, fee, prev, "fee must not decrease with duration")
		require.GreaterOrEqual(t, fee, 0.0)
		prev = fee
	}

	require.InDelta(t, 10.0, svc.fees(time.Hour), 1e-9)
	require.InDelta(t, 15.0, svc.fees(90*time.Minute), 1e-9)
}
