package ports

import (
	"context"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
)

// AuditPort receives lifecycle events for the append-only audit trail. The
// adapter attaches the correlation id carried by ctx; the core never sees its
// representation.
type AuditPort interface {
	Record(ctx context.Context, event domain.AuditEvent)
}
