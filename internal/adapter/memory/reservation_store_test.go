package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestReservationStore_SaveAndFind(t *testing.T) {
	s := NewReservationStore()
	ctx := context.Background()

	res := &domain.Reservation{ID: "r-1", UserID: "u1", BikeID: "b-1", StartTime: time.Now()}
	require.NoError(t, s.Save(ctx, res))

	found, err := s.Find(ctx, "r-1")
	require.NoError(t, err)
	require.Equal(t, "u1", found.UserID)
	require.Equal(t, "b-1", found.BikeID)

	err = s.Save(ctx, &domain.Reservation{ID: "r-1"})
	require.Equal(t, domain.ErrInvalidState, domain.Code(err))
}

func TestReservationStore_TakeConsumesOnce(t *testing.T) {
	s := NewReservationStore()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, &domain.Reservation{ID: "r-1", UserID: "u1"}))

	const takers = 20
	var wg sync.WaitGroup
	wins := make(chan *domain.Reservation, takers)

	for i := 0; i < takers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if res, err := s.Take(ctx, "r-1"); err == nil {
				wins <- res
			}
		}()
	}
	wg.Wait()
	close(wins)

	require.Len(t, wins, 1)

	_, err := s.Find(ctx, "r-1")
	require.Equal(t, domain.ErrNotFound, domain.Code(err))
}

func TestReservationStore_TakeExpired(t *testing.T) {
	s := NewReservationStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Save(ctx, &domain.Reservation{ID: "old", BikeID: "b-1", StartTime: now.Add(-time.Hour)}))
	require.NoError(t, s.Save(ctx, &domain.Reservation{ID: "fresh", BikeID: "b-2", StartTime: now}))

	expired, err := s.TakeExpired(ctx, now.Add(-30*time.Minute))
	require.NoError(t, err)
	require.Len(t, expired, 1)
	require.Equal(t, "old", expired[0].ID)

	_, err = s.Find(ctx, "old")
	require.Equal(t, domain.ErrNotFound, domain.Code(err))
	_, err = s.Find(ctx, "fresh")
	require.NoError(t, err)
}
