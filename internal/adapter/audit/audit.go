// Package audit renders lifecycle events as structured, append-only JSON
// records, kept apart from operational logging.
package audit

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
	"github.com/cphbikes/bikeshare-backend/internal/correlation"
)

type Emitter struct {
	log *slog.Logger
}

func NewEmitter() *Emitter {
	return NewEmitterWithOutput(os.Stdout)
}

func NewEmitterWithOutput(out io.Writer) *Emitter {
	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &Emitter{log: slog.New(handler)}
}

func (e *Emitter) Record(ctx context.Context, event domain.AuditEvent) {
	userID, ip := event.Actor()

	attrs := []slog.Attr{
		slog.String("action", string(event.Action())),
		slog.String("user_id", userID),
		slog.String("ip", ip),
		slog.String("log_type", "audit"),
		slog.String("service", "city-bikes"),
	}
	if cid := correlation.FromContext(ctx); cid != "" {
		attrs = append(attrs, slog.String("correlation_id", cid))
	}
	for k, v := range event.Fields() {
		attrs = append(attrs, slog.Any(k, v))
	}

	e.log.LogAttrs(ctx, slog.LevelInfo, "USER_ACTION", attrs...)
}

var _ ports.AuditPort = (*Emitter)(nil)
