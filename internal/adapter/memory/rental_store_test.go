package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func flatRate(rate float64) func(time.Duration) float64 {
	return func(elapsed time.Duration) float64 {
		return elapsed.Hours() * rate
	}
}

func TestRentalStore_CloseComputesFees(t *testing.T) {
	s := NewRentalStore()
	ctx := context.Background()
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, &domain.Rental{ID: "t-1", BikeID: "b-1", UserID: "u1", StartTime: start}))

	closed, err := s.Close(ctx, "t-1", start.Add(30*time.Minute), flatRate(10))
	require.NoError(t, err)
	require.True(t, closed.Ended())
	require.Equal(t, 30*time.Minute, *closed.Duration)
	require.InDelta(t, 5.0, *closed.Fees, 1e-9)
}

func TestRentalStore_CloseTwice(t *testing.T) {
	s := NewRentalStore()
	ctx := context.Background()
	start := time.Now()

	require.NoError(t, s.Save(ctx, &domain.Rental{ID: "t-1", StartTime: start}))

	_, err := s.Close(ctx, "t-1", start.Add(time.Minute), flatRate(10))
	require.NoError(t, err)

	_, err = s.Close(ctx, "t-1", start.Add(2*time.Minute), flatRate(10))
	require.Equal(t, domain.ErrInvalidState, domain.Code(err))

	// first close stands
	found, err := s.Find(ctx, "t-1")
	require.NoError(t, err)
	require.Equal(t, time.Minute, *found.Duration)
}

func TestRentalStore_FindReturnsDeepCopy(t *testing.T) {
	s := NewRentalStore()
	ctx := context.Background()
	start := time.Now()

	require.NoError(t, s.Save(ctx, &domain.Rental{ID: "t-1", StartTime: start}))
	_, err := s.Close(ctx, "t-1", start.Add(time.Minute), flatRate(10))
	require.NoError(t, err)

	found, err := s.Find(ctx, "t-1")
	require.NoError(t, err)

	// a closed rental is immutable through returned pointers
	*found.Fees = 999
	*found.Duration = time.Hour

	again, err := s.Find(ctx, "t-1")
	require.NoError(t, err)
	require.Equal(t, time.Minute, *again.Duration)
	require.NotEqual(t, 999.0, *again.Fees)
}

func TestRentalStore_CloseUnknown(t *testing.T) {
	s := NewRentalStore()

	_, err := s.Close(context.Background(), "nope", time.Now(), flatRate(10))
	require.Equal(t, domain.ErrNotFound, domain.Code(err))
}
