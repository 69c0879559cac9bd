// Package extsim simulates the downstream payment-authorization and rental
// verification services: a bounded random delay plus a configurable failure
// probability. The randomness source is injected so tests run deterministic
// substitutes.
package extsim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
)

type Simulator struct {
	name        string
	minLatency  time.Duration
	maxLatency  time.Duration
	failureRate float64

	mu  sync.Mutex // guards rng, which is not safe for concurrent use
	rng *rand.Rand
}

func NewSimulator(name string, minLatency, maxLatency time.Duration, failureRate float64, rng *rand.Rand) *Simulator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{
		name:        name,
		minLatency:  minLatency,
		maxLatency:  maxLatency,
		failureRate: failureRate,
		rng:         rng,
	}
}

func (s *Simulator) Authorize(ctx context.Context) (time.Duration, error) {
	return s.call(ctx)
}

func (s *Simulator) Verify(ctx context.Context) (time.Duration, error) {
	return s.call(ctx)
}

func (s *Simulator) call(ctx context.Context) (time.Duration, error) {
	s.mu.Lock()
	delay := s.minLatency
	if span := s.maxLatency - s.minLatency; span > 0 {
		delay += time.Duration(s.rng.Int63n(int64(span)))
	}
	failed := s.rng.Float64() < s.failureRate
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return delay, ctx.Err()
		}
	}

	if failed {
		return delay, fmt.Errorf("%s call failed", s.name)
	}
	return delay, nil
}

var (
	_ ports.PaymentAuthorizer = (*Simulator)(nil)
	_ ports.RentalVerifier    = (*Simulator)(nil)
)
