package extsim

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCall_AlwaysFails(t *testing.T) {
	sim := NewSimulator("payment", 0, 0, 1.0, rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		_, err := sim.Authorize(context.Background())
		require.EqualError(t, err, "payment call failed")
	}
}

func TestCall_NeverFails(t *testing.T) {
	sim := NewSimulator("verification", 0, 0, 0.0, rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		_, err := sim.Verify(context.Background())
		require.NoError(t, err)
	}
}

func TestCall_DelayWithinBounds(t *testing.T) {
	min := 5 * time.Millisecond
	max := 20 * time.Millisecond
	sim := NewSimulator("payment", min, max, 0.0, rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		delay, err := sim.Authorize(context.Background())
		require.NoError(t, err)
		require.GreaterOrEqual(t, delay, min)
		require.Less(t, delay, max)
	}
}

func TestCall_ContextCancellation(t *testing.T) {
	sim := NewSimulator("payment", time.Second, 2*time.Second, 0.0, rand.New(rand.NewSource(1)))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := sim.Authorize(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Less(t, time.Since(start), time.Second)
}

func TestCall_SeededSequencesMatch(t *testing.T) {
	a := NewSimulator("payment", 0, 10*time.Millisecond, 0.5, rand.New(rand.NewSource(7)))
	b := NewSimulator("payment", 0, 10*time.Millisecond, 0.5, rand.New(rand.NewSource(7)))

	for i := 0; i < 10; i++ {
		delayA, errA := a.Authorize(context.Background())
		delayB, errB := b.Authorize(context.Background())
		require.Equal(t, delayA, delayB)
		require.Equal(t, errA == nil, errB == nil)
	}
}
