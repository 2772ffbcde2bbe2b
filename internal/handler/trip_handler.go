package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wayfarerhq/wayfarer-api/internal/dto"
	"github.com/wayfarerhq/wayfarer-api/internal/service"
	"go.uber.org/zap"
)

// TripHandler handles trip itinerary requests.
type TripHandler struct {
	tripService service.TripService
	logger      *zap.Logger
}

// NewTripHandler creates a new trip handler.
func NewTripHandler(tripService service.TripService, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		logger:      logger,
	}
}

// Generate produces a day-by-day itinerary without persisting it. The client
// reviews the plan and saves it separately.
func (h *TripHandler) Generate(c *gin.Context) {
	var req dto.GenerateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	plan, err := h.tripService.Generate(c.Request.Context(), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// Save persists a generated itinerary for the authenticated user.
func (h *TripHandler) Save(c *gin.Context) {
	var req dto.SaveTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	trip, err := h.tripService.Save(c.Request.Context(), callerID(c), &req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, trip)
}

// List returns the authenticated user's saved trips.
func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.tripService.List(c.Request.Context(), callerID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, trips)
}

// Get returns one of the authenticated user's saved trips.
func (h *TripHandler) Get(c *gin.Context) {
	trip, err := h.tripService.Get(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, trip)
}

// Delete removes one of the authenticated user's saved trips.
func (h *TripHandler) Delete(c *gin.Context) {
	if err := h.tripService.Delete(c.Request.Context(), c.Param("id"), callerID(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Trip deleted"})
}
