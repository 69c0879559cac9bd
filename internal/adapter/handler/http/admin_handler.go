package http

import (
	"net/http"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
	"github.com/cphbikes/bikeshare-backend/internal/core/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	fleetService *services.FleetService
	logger       ports.LoggerPort
}

type InventoryUpdateBody struct {
	Delta int `json:"delta" binding:"required" example:"5"`
}

type InventoryUpdateResponse struct {
	RequestedDelta int `json:"requested_delta"`
	AppliedDelta   int `json:"applied_delta"`
}

func NewAdminHandler(fleetService *services.FleetService, logger ports.LoggerPort) *AdminHandler {
	return &AdminHandler{
		fleetService: fleetService,
		logger:       logger,
	}
}

// @Summary Adjust fleet inventory
// @Description Adds or removes bikes; removals only touch available bikes
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body InventoryUpdateBody true "Signed fleet delta"
// @Success 200 {object} InventoryUpdateResponse "Delta applied"
// @Failure 400 {object} errorResponse "Invalid request"
// @Failure 403 {object} errorResponse "Admin access required"
// @Router /admin/inventory [post]
func (h *AdminHandler) UpdateInventory(c *gin.Context) {
	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req InventoryUpdateBody
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in inventory update", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	applied, err := h.fleetService.AdjustInventory(c.Request.Context(), domain.InventoryUpdateRequest{
		AdminID: payload.UserID,
		Delta:   req.Delta,
	}, c.ClientIP())
	if err != nil {
		newErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, InventoryUpdateResponse{
		RequestedDelta: req.Delta,
		AppliedDelta:   applied,
	})
}
