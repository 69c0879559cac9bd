package memory

import (
	"context"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
)

// UserStore is a read-only credential set seeded at startup.
type UserStore struct {
	users map[string]domain.User
}

func NewUserStore(seed ...domain.User) *UserStore {
	s := &UserStore{users: make(map[string]domain.User, len(seed))}
	for _, u := range seed {
		s.users[u.ID] = u
	}
	return s
}

func (s *UserStore) Find(ctx context.Context, userID string) (*domain.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound)
	}
	return &u, nil
}
