package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"luxetravel/ledger"
	"luxetravel/services"
)

// Handler carries the collaborators every route needs.
type Handler struct {
	ai       services.Concierge
	ledger   ledger.Store
	sessions *services.SessionStore
	backend  string

	newID ledger.IDGenerator
	now   func() time.Time
}

func NewHandler(ai services.Concierge, store ledger.Store, sessions *services.SessionStore, backend string) *Handler {
	return &Handler{
		ai:       ai,
		ledger:   store,
		sessions: sessions,
		backend:  backend,
		newID:    ledger.NewID,
		now:      time.Now,
	}
}

// Register mounts every route on the /api group.
func (h *Handler) Register(api *gin.RouterGroup) {
	api.GET("/health", h.Health)
	api.POST("/sessions", h.CreateSession)

	api.POST("/flights/search", h.SearchFlights)
	api.GET("/flights", h.ListFlights)
	api.POST("/hotels/search", h.SearchHotels)
	api.GET("/hotels", h.ListHotels)

	api.POST("/itinerary", h.GenerateItinerary)
	api.POST("/chat", h.Chat)
	api.POST("/transcribe", h.Transcribe)
	api.POST("/speak", h.Speak)

	api.GET("/bookings", h.ListBookings)
	api.POST("/bookings", h.ConfirmBooking)
	api.DELETE("/bookings/:id", h.RemoveBooking)
	api.GET("/bookings/:id/pdf", h.DownloadBooking)
}

func (h *Handler) CreateSession(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"session_id": h.sessions.Create()})
}

// resolveSession returns id, or a fresh session when id is empty. It writes
// the error response itself and reports false when the session is unknown.
func (h *Handler) resolveSession(c *gin.Context, id string) (string, bool) {
	if id == "" {
		return h.sessions.Create(), true
	}
	if err := h.sessions.Touch(id); err != nil {
		sessionError(c, err)
		return "", false
	}
	return id, true
}

func sessionError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

type pinger interface {
	Ping(ctx context.Context) error
}

func (h *Handler) Health(c *gin.Context) {
	ledgerStatus := "ok"
	if p, ok := h.ledger.(pinger); ok {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			ledgerStatus = "error: " + err.Error()
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "LuxeTravel API",
		"ledger":   h.backend,
		"database": ledgerStatus,
		"sessions": h.sessions.Len(),
	})
}
