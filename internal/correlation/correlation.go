// Package correlation carries the per-request correlation identifier through
// context.Context, so every log and audit record produced while handling one
// logical request can be traced back to it.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

func NewID() string {
	return uuid.NewString()
}

func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the correlation id, or "" when none was attached.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
