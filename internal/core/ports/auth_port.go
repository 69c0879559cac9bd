package ports

import "github.com/cphbikes/bikeshare-backend/internal/core/domain"

type TokenService interface {
	CreateToken(user *domain.User) (string, error)
	VerifyToken(token string) (*domain.TokenPayload, error)
}
