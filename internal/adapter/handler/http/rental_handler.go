package http

import (
	"net/http"
	"time"

	"github.com/cphbikes/bikeshare-backend/internal/core/domain"
	"github.com/cphbikes/bikeshare-backend/internal/core/ports"
	"github.com/cphbikes/bikeshare-backend/internal/core/services"

	"github.com/gin-gonic/gin"
)

type RentalHandler struct {
	rentalService *services.RentalService
	logger        ports.LoggerPort
}

type StartRentalRequest struct {
	ReservationID string `json:"reservation_id" binding:"required" example:"1a2b3c4d"`
}

type EndRentalRequest struct {
	RentalID string `json:"rental_id" binding:"required" example:"5e6f7a8b"`
}

type RentalResponse struct {
	ID            string     `json:"id"`
	ReservationID string     `json:"reservation_id"`
	BikeID        string     `json:"bike_id"`
	UserID        string     `json:"user_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	DurationMS    *int64     `json:"duration_ms,omitempty"`
	Fees          *float64   `json:"fees,omitempty"`
}

func NewRentalHandler(rentalService *services.RentalService, logger ports.LoggerPort) *RentalHandler {
	return &RentalHandler{
		rentalService: rentalService,
		logger:        logger,
	}
}

// @Summary Start a rental
// @Description Consumes a reservation and opens a rental
// @Tags rentals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body StartRentalRequest true "Reservation to start from"
// @Success 201 {object} RentalResponse "Rental started"
// @Failure 400 {object} errorResponse "Invalid reservation"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /rentals/start [post]
func (h *RentalHandler) StartRental(c *gin.Context) {
	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req StartRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in start rental", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	rental, err := h.rentalService.Start(c.Request.Context(), domain.StartRentalRequest{
		UserID:        payload.UserID,
		ReservationID: req.ReservationID,
	}, c.ClientIP())
	if err != nil {
		newErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	c.JSON(http.StatusCreated, rentalResponse(rental))
}

// @Summary End a rental
// @Description Closes an open rental, computes fees and releases the bike
// @Tags rentals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body EndRentalRequest true "Rental to end"
// @Success 200 {object} RentalResponse "Rental ended"
// @Failure 400 {object} errorResponse "Invalid rental"
// @Failure 401 {object} errorResponse "Unauthorized"
// @Router /rentals/end [post]
func (h *RentalHandler) EndRental(c *gin.Context) {
	payload, exists := getAuthPayload(c, authorizationPayloadKey)
	if !exists {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req EndRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed JSON parse in end rental", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "Invalid JSON format")
		return
	}

	rental, err := h.rentalService.End(c.Request.Context(), domain.EndRentalRequest{
		UserID:   payload.UserID,
		RentalID: req.RentalID,
	}, c.ClientIP())
	if err != nil {
		newErrorResponse(c, statusFromError(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, rentalResponse(rental))
}

func rentalResponse(r *domain.Rental) RentalResponse {
	resp := RentalResponse{
		ID:            r.ID,
		ReservationID: r.ReservationID,
		BikeID:        r.BikeID,
		UserID:        r.UserID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Fees:          r.Fees,
	}
	if r.Duration != nil {
		ms := r.Duration.Milliseconds()
		resp.DurationMS = &ms
	}
	return resp
}
