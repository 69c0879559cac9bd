package services

import (
	"context"
	"fmt"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"

	"github.com/go-playground/validator/v10"
)

// FleetService exposes the inventory: listing available bikes and the
// admin-only fleet adjustment.
type FleetService struct {
	bikeRepo     ports.BikeRepository
	userRepo     ports.UserRepository
	logger       ports.LoggerPort
	audit        ports.AuditPort
	metrics      ports.MetricsPort
	validate     *validator.Validate
	lowThreshold int
}

func NewFleetService(
	bikeRepo ports.BikeRepository,
	userRepo ports.UserRepository,
	logger ports.LoggerPort,
	audit ports.AuditPort,
	metrics ports.MetricsPort,
	validate *validator.Validate,
	lowThreshold int,
) *FleetService {
	return &FleetService{
		bikeRepo:     bikeRepo,
		userRepo:     userRepo,
		logger:       logger,
		audit:        audit,
		metrics:      metrics,
		validate:     validate,
		lowThreshold: lowThreshold,
	}
}

func (s *FleetService) ListAvailable(ctx context.Context) ([]domain.Bike, error) {
	bikes, err := s.bikeRepo.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}

	s.metrics.SetAvailableBikes(len(bikes))
	if len(bikes) < s.lowThreshold {
		s.logger.Warn("Low inventory", map[string]interface{}{
			"count": len(bikes),
		})
	}
	s.logger.Info("Listed available bikes", map[string]interface{}{
		"count": len(bikes),
	})

	return bikes, nil
}

// AdjustInventory applies a signed fleet delta. A positive delta adds that
// many fresh available bikes; a negative delta removes up to that many bikes,
// touching only available ones. The returned value is the delta actually
// applied, which is what the audit record carries.
func (s *FleetService) AdjustInventory(ctx context.Context, req domain.InventoryUpdateRequest, ip string) (int, error) {
	if err := s.validate.Struct(req); err != nil {
		s.logger.Error("Inventory update validation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return 0, fmt.Errorf("validation error: %w", err)
	}

	admin, err := s.userRepo.Find(ctx, req.AdminID)
	if err != nil || admin.Role != domain.Admin {
		s.logger.Error("Inventory update failed", map[string]interface{}{
			"admin_id": req.AdminID,
			"error":    string(domain.ErrUnauthorized),
		})
		return 0, domain.NewError(domain.ErrUnauthorized)
	}

	applied := 0
	if req.Delta > 0 {
		for i := 0; i < req.Delta; i++ {
			bike := domain.Bike{ID: "b-" + newID(), Available: true}
			if err := s.bikeRepo.Add(ctx, bike); err != nil {
				s.logger.Warn("Failed to add bike", map[string]interface{}{
					"bike_id": bike.ID,
					"error":   err.Error(),
				})
				continue
			}
			applied++
		}
	} else {
		available, err := s.bikeRepo.ListAvailable(ctx)
		if err != nil {
			return 0, err
		}
		for _, bike := range available {
			if applied == req.Delta {
				break
			}
			// the bike may have been claimed since the listing; skip it
			if err := s.bikeRepo.RemoveIfAvailable(ctx, bike.ID); err != nil {
				continue
			}
			applied--
		}
	}

	s.audit.Record(ctx, domain.InventoryAdjusted{
		AdminID:        req.AdminID,
		IP:             ip,
		RequestedDelta: req.Delta,
		AppliedDelta:   applied,
	})
	s.logger.Info("Inventory updated", map[string]interface{}{
		"admin_id":        req.AdminID,
		"requested_delta": req.Delta,
		"applied_delta":   applied,
	})

	return applied, nil
}
