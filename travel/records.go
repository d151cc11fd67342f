// Package travel turns the labeled text blocks returned by the search
// collaborator into Flight and Hotel records, and derives the sort keys,
// normalized endpoints and amenity facets the API serves from them.
package travel

// Unavailable is stored in any record field whose label was missing from the
// source text. Callers treat it as "unknown".
const Unavailable = "N/A"

// Record-start markers. A block runs from one marker to the next.
const (
	FlightMarker = "- Airline:"
	HotelMarker  = "- Hotel Name:"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type Flight struct {
	Airline      string `json:"airline"`
	FlightNumber string `json:"flightNumber"`
	Departure    string `json:"departure"` // raw "time, location"
	Arrival      string `json:"arrival"`
	Price        string `json:"price"` // raw currency text
	Duration     string `json:"duration"`
	Link         string `json:"link"`
}

type Hotel struct {
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	PricePerNight string   `json:"pricePerNight"`
	Rating        string   `json:"rating"`
	Amenities     []string `json:"amenities"`
	Link          string   `json:"link"`
}

// GroundingSource is a citation returned by the search collaborator next to
// the generated text.
type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// Endpoint is the normalized form of a Departure or Arrival field.
type Endpoint struct {
	Time        string `json:"time"`
	Location    string `json:"location"`
	AirportCode string `json:"airportCode"`
}
