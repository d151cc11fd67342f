package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luxetravel/ledger"
	"luxetravel/logger"
	"luxetravel/travel"
)

type BookingRequest struct {
	Type    ledger.Type     `json:"type" binding:"required"`
	Details json.RawMessage `json:"details"`
}

func (h *Handler) ListBookings(c *gin.Context) {
	all, err := h.ledger.Load(c.Request.Context())
	if err != nil {
		logger.Log.Error("[ledger] load failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
		return
	}
	c.JSON(http.StatusOK, all)
}

// ConfirmBooking appends a Confirmed record for the selected flight, hotel or
// itinerary and returns it with its new id.
func (h *Handler) ConfirmBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	raw := strings.TrimSpace(string(req.Details))
	if raw == "" || raw == "null" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "details are required"})
		return
	}
	details, err := ledger.DecodeDetails(req.Type, req.Details)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	details, err = completeDetails(details)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := ledger.Confirm(c.Request.Context(), h.ledger, h.newID, details, h.now())
	if err != nil {
		logger.Log.Error("[ledger] confirm failed", zap.String("type", string(req.Type)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save booking"})
		return
	}

	logger.Log.Info("[ledger] booking confirmed", zap.String("id", rec.ID), zap.String("title", rec.Title()))
	c.JSON(http.StatusCreated, rec)
}

// RemoveBooking is idempotent: removing an unknown id still succeeds.
func (h *Handler) RemoveBooking(c *gin.Context) {
	id := c.Param("id")
	if err := h.ledger.Remove(c.Request.Context(), id); err != nil {
		logger.Log.Error("[ledger] remove failed", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove booking"})
		return
	}
	c.Status(http.StatusNoContent)
}

// completeDetails rejects a selection without its headline field and stores
// Unavailable for every other blank field, as extraction does.
func completeDetails(d ledger.Details) (ledger.Details, error) {
	switch d := d.(type) {
	case ledger.FlightDetails:
		if strings.TrimSpace(d.Airline) == "" {
			return nil, errors.New("flight airline is required")
		}
		for _, f := range []*string{&d.FlightNumber, &d.Departure, &d.Arrival, &d.Price, &d.Duration, &d.Link} {
			orUnavailable(f)
		}
		return d, nil
	case ledger.HotelDetails:
		if strings.TrimSpace(d.Name) == "" {
			return nil, errors.New("hotel name is required")
		}
		for _, f := range []*string{&d.Location, &d.PricePerNight, &d.Rating, &d.Link} {
			orUnavailable(f)
		}
		if d.Amenities == nil {
			d.Amenities = []string{}
		}
		return d, nil
	case ledger.ItineraryDetails:
		if strings.TrimSpace(d.Prompt) == "" {
			return nil, errors.New("itinerary prompt is required")
		}
	}
	return d, nil
}

func orUnavailable(s *string) {
	if strings.TrimSpace(*s) == "" {
		*s = travel.Unavailable
	}
}
