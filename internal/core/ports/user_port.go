package ports

import (
	"context"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
)

type UserRepository interface {
	Find(ctx context.Context, userID string) (*domain.User, error)
}
