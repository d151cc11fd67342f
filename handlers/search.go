package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"luxetravel/logger"
	"luxetravel/services"
	"luxetravel/travel"
)

type FlightSearchRequest struct {
	SessionID string                   `json:"session_id"`
	Segments  []services.FlightSegment `json:"segments" binding:"required"`
}

type HotelSearchRequest struct {
	SessionID string `json:"session_id"`
	Location  string `json:"location" binding:"required"`
}

// FlightView is a flight as extracted plus the normalized values the UI
// sorts and renders with.
type FlightView struct {
	travel.Flight
	DepartureInfo   travel.Endpoint `json:"departureInfo"`
	ArrivalInfo     travel.Endpoint `json:"arrivalInfo"`
	PriceValue      float64         `json:"priceValue"`
	DurationMinutes int             `json:"durationMinutes"`
}

type FlightsResponse struct {
	SessionID  string                   `json:"session_id"`
	Outcome    services.Outcome         `json:"outcome"`
	Overview   string                   `json:"overview"`
	Summary    string                   `json:"summary"`
	Sources    []travel.GroundingSource `json:"sources"`
	Flights    []FlightView             `json:"flights"`
	Sort       travel.SortMode          `json:"sort,omitempty"`
	Superseded bool                     `json:"superseded,omitempty"`
}

type HotelsResponse struct {
	SessionID  string                   `json:"session_id"`
	Outcome    services.Outcome         `json:"outcome"`
	Overview   string                   `json:"overview"`
	Summary    string                   `json:"summary"`
	Sources    []travel.GroundingSource `json:"sources"`
	Hotels     []travel.Hotel           `json:"hotels"`
	Amenities  []string                 `json:"amenities"`
	Selected   []string                 `json:"selected,omitempty"`
	Superseded bool                     `json:"superseded,omitempty"`
}

// ─── Search ───────────────────────────────────────────────────────────────────

func (h *Handler) SearchFlights(c *gin.Context) {
	var req FlightSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	query, err := services.FlightQuery(req.Segments)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, ok := h.resolveSession(c, req.SessionID)
	if !ok {
		return
	}
	rs, superseded, ok := h.search(c, sessionID, services.KindFlights, query, services.FlightFallback, travel.FlightMarker,
		func(text string, rs *services.ResultSet) int {
			rs.Flights = travel.ExtractFlights(text)
			return len(rs.Flights)
		})
	if !ok {
		return
	}
	if rs.Flights == nil {
		rs.Flights = []travel.Flight{}
	}

	c.JSON(http.StatusOK, FlightsResponse{
		SessionID:  sessionID,
		Outcome:    rs.Outcome,
		Overview:   rs.Overview,
		Summary:    rs.Summary,
		Sources:    rs.Sources,
		Flights:    flightViews(rs.Flights),
		Superseded: superseded,
	})
}

func (h *Handler) SearchHotels(c *gin.Context) {
	var req HotelSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	query, err := services.HotelQuery(req.Location)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID, ok := h.resolveSession(c, req.SessionID)
	if !ok {
		return
	}
	rs, superseded, ok := h.search(c, sessionID, services.KindHotels, query, services.HotelFallback, travel.HotelMarker,
		func(text string, rs *services.ResultSet) int {
			rs.Hotels = travel.ExtractHotels(text)
			return len(rs.Hotels)
		})
	if !ok {
		return
	}
	if rs.Hotels == nil {
		rs.Hotels = []travel.Hotel{}
	}

	c.JSON(http.StatusOK, HotelsResponse{
		SessionID:  sessionID,
		Outcome:    rs.Outcome,
		Overview:   rs.Overview,
		Summary:    rs.Summary,
		Sources:    rs.Sources,
		Hotels:     rs.Hotels,
		Amenities:  travel.AmenityFacets(rs.Hotels),
		Superseded: superseded,
	})
}

// search runs one generation of a search: take a token, ask the AI, extract
// records and commit. A collaborator failure becomes an error outcome carrying
// the fallback message; it is never retried. superseded reports that a newer
// search of the same kind started meanwhile, so rs was not made visible.
func (h *Handler) search(
	c *gin.Context,
	sessionID string,
	kind services.Kind,
	query, fallback, marker string,
	extract func(text string, rs *services.ResultSet) int,
) (rs services.ResultSet, superseded bool, ok bool) {
	token, err := h.sessions.Begin(sessionID, kind)
	if err != nil {
		sessionError(c, err)
		return rs, false, false
	}

	rs = services.ResultSet{Token: token, Sources: []travel.GroundingSource{}}
	res, err := h.ai.Search(c.Request.Context(), query)
	if err != nil {
		logger.Log.Warn("[search] AI search failed, using fallback",
			zap.String("kind", string(kind)), zap.String("session", sessionID), zap.Error(err))
		rs.Outcome = services.OutcomeError
		rs.Summary = fallback
	} else {
		rs.Summary = res.Text
		rs.Overview = travel.Overview(res.Text, marker)
		if res.Sources != nil {
			rs.Sources = res.Sources
		}
		if extract(res.Text, &rs) > 0 {
			rs.Outcome = services.OutcomeOK
		} else {
			rs.Outcome = services.OutcomeEmpty
		}
		logger.Log.Info("[search] results extracted",
			zap.String("kind", string(kind)), zap.String("outcome", string(rs.Outcome)),
			zap.Int("sources", len(rs.Sources)))
	}

	committed, err := h.sessions.Commit(sessionID, kind, rs)
	if err != nil {
		sessionError(c, err)
		return rs, false, false
	}
	return rs, !committed, true
}

// ─── Views ────────────────────────────────────────────────────────────────────

// ListFlights re-renders the session's current flights in the requested order.
func (h *Handler) ListFlights(c *gin.Context) {
	sessionID := c.Query("session_id")
	mode, err := travel.ParseSortMode(c.Query("sort"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rs, err := h.sessions.Results(sessionID, services.KindFlights)
	if err != nil {
		sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, FlightsResponse{
		SessionID: sessionID,
		Outcome:   rs.Outcome,
		Overview:  rs.Overview,
		Summary:   rs.Summary,
		Sources:   nonNilSources(rs.Sources),
		Flights:   flightViews(travel.SortFlights(rs.Flights, mode)),
		Sort:      mode,
	})
}

// ListHotels narrows the session's hotels to those offering every selected
// amenity.
func (h *Handler) ListHotels(c *gin.Context) {
	sessionID := c.Query("session_id")
	selected := c.QueryArray("amenity")
	rs, err := h.sessions.Results(sessionID, services.KindHotels)
	if err != nil {
		sessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, HotelsResponse{
		SessionID: sessionID,
		Outcome:   rs.Outcome,
		Overview:  rs.Overview,
		Summary:   rs.Summary,
		Sources:   nonNilSources(rs.Sources),
		Hotels:    travel.FilterHotels(rs.Hotels, selected),
		Amenities: travel.AmenityFacets(rs.Hotels),
		Selected:  selected,
	})
}

func flightViews(flights []travel.Flight) []FlightView {
	views := make([]FlightView, len(flights))
	for i, f := range flights {
		views[i] = FlightView{
			Flight:          f,
			DepartureInfo:   travel.SplitTimeLocation(f.Departure),
			ArrivalInfo:     travel.SplitTimeLocation(f.Arrival),
			PriceValue:      travel.ParsePrice(f.Price),
			DurationMinutes: travel.ParseDurationMinutes(f.Duration),
		}
	}
	return views
}

func nonNilSources(s []travel.GroundingSource) []travel.GroundingSource {
	if s == nil {
		return []travel.GroundingSource{}
	}
	return s
}
