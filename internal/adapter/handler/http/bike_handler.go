package http

import (
	"net/http"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
	"github.com/cphbikes/bikeshare-backend/internal/core/services"

	"github.com/gin-gonic/gin"
)

type BikeHandler struct {
	fleetService *services.FleetService
	logger       ports.LoggerPort
}

type ListBikesResponse struct {
	Bikes []domain.Bike `json:"bikes"`
	Count int           `json:"count"`
}

func NewBikeHandler(fleetService *services.FleetService, logger ports.LoggerPort) *BikeHandler {
	return &BikeHandler{
		fleetService: fleetService,
		logger:       logger,
	}
}

// @Summary List available bikes
// @Description Returns every bike currently available for reservation
// @Tags bikes
// @Produce json
// @Success 200 {object} ListBikesResponse "Available bikes"
// @Router /bikes [get]
func (h *BikeHandler) GetAvailableBikes(c *gin.Context) {
	bikes, err := h.fleetService.ListAvailable(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list bikes", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusInternalServerError, "Failed to list bikes")
		return
	}

	c.JSON(http.StatusOK, ListBikesResponse{
		Bikes: bikes,
		Count: len(bikes),
	})
}
