package services

import (
	"context"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"

	"github.com/go-playground/validator/v10"
)

// AuthService checks credentials against the static user set. Every attempt is
// audited, success or not.
type AuthService struct {
	userRepo ports.UserRepository
	logger   ports.LoggerPort
	audit    ports.AuditPort
	validate *validator.Validate
}

func NewAuthService(
	userRepo ports.UserRepository,
	logger ports.LoggerPort,
	audit ports.AuditPort,
	validate *validator.Validate,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		logger:   logger,
		audit:    audit,
		validate: validate,
	}
}

// Login returns the user and true on a matching credential, nil and false
// otherwise.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest, ip string) (*domain.User, bool) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Login failure attempt", map[string]interface{}{
			"user_id": req.UserID,
			"error":   err.Error(),
		})
		s.audit.Record(ctx, domain.LoginFailed{UserID: req.UserID, IP: ip})
		return nil, false
	}

	user, err := s.userRepo.Find(ctx, req.UserID)
	if err != nil || user.Password != req.Password {
		s.logger.Warn("Login failure attempt", map[string]interface{}{
			"user_id": req.UserID,
		})
		s.audit.Record(ctx, domain.LoginFailed{UserID: req.UserID, IP: ip})
		return nil, false
	}

	s.audit.Record(ctx, domain.LoginSucceeded{UserID: req.UserID, IP: ip})
	s.logger.Info("Login success", map[string]interface{}{
		"user_id": req.UserID,
	})

	return user, true
}
