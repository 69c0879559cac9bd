package http

import (
	"net/http"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
	"github.com/cphbikes/bikeshare-backend/internal/core/services"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
	logger             ports.LoggerPort
}

type ReserveBikeRequest struct {
	BikeID string `json:"bike_id" binding:"required" example:"b-42"`
}

type ReservationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BikeID    string    `json:"bike_id"`
	StartTime time.Time `json:"start_time"`
}

func NewReservationHandler(reservationService *services.ReservationService, logger ports.LoggerPort) *ReservationHandler {
	return &ReservationHandler{
		reservationService: reservationService,
		logger:             logger,
	}
}

// @Summary Reserve a bike
// @Description Creates a reservation for an available bike
// @Tags reservations
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ReserveBikeRequest true "Bike to reserve"
// @Success 201 {object} ReservationResponse "Reservation created"
// @Failure 400 {object} errorResponse "Sold out or payment failure"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ReserveBikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in create reservation", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	res, err := h.reservationService.Reserve(c.Request.Context(), domain.ReserveRequest{
		UserID: payload.UserID,
		BikeID: req.BikeID,
	}, c.ClientIP())
	if err != nil {
		newErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	c.JSON(http.StatusCreated, ReservationResponse{
		ID:        res.ID,
		UserID:    res.UserID,
		BikeID:    res.BikeID,
		StartTime: res.StartTime,
	})
}
