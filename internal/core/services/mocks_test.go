package services

import (
	"context"
	"sync"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
)

type fakeAuthorizer struct {
	fn func(ctx context.Context) (time.Duration, error)
}

var _ ports.PaymentAuthorizer = (*fakeAuthorizer)(nil)

func (f *fakeAuthorizer) Authorize(ctx context.Context) (time.Duration, error) {
	if f.fn == nil {
		return 0, nil
	}
	return f.fn(ctx)
}

type fakeVerifier struct {
	fn func(ctx context.Context) (time.Duration, error)
}

var _ ports.RentalVerifier = (*fakeVerifier)(nil)

func (f *fakeVerifier) Verify(ctx context.Context) (time.Duration, error) {
	if f.fn == nil {
		return 0, nil
	}
	return f.fn(ctx)
}

type spyAudit struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

var _ ports.AuditPort = (*spyAudit)(nil)

func (s *spyAudit) Record(ctx context.Context, event domain.AuditEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

func (s *spyAudit) actions() []domain.AuditAction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Action())
	}
	return out
}

func (s *spyAudit) last() domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == 0 {
		return nil
	}
	return s.events[len(s.events)-1]
}

type spyLogger struct {
	mu    sync.Mutex
	warns []string
	errs  []string
}

var _ ports.LoggerPort = (*spyLogger)(nil)

func (l *spyLogger) Debug(msg string, fields map[string]interface{}) {}
func (l *spyLogger) Info(msg string, fields map[string]interface{})  {}

func (l *spyLogger) Warn(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *spyLogger) Error(msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errs = append(l.errs, msg)
}

func (l *spyLogger) warned(msg string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, w := range l.warns {
		if w == msg {
			return true
		}
	}
	return false
}

type nopMetrics struct{}

var _ ports.MetricsPort = nopMetrics{}

func (nopMetrics) RecordRequest(method, path string, status int, elapsed time.Duration) {}
func (nopMetrics) SetAvailableBikes(count int) {}
func (nopMetrics) RecordExternalCall(name string, elapsed time.Duration, failed bool) {}

