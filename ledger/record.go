// Package ledger persists confirmed bookings. A Store holds an ordered list
// of BookingRecord addressed by id; search results are never stored here.
package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"luxetravel/travel"
)

type Type string

const (
	TypeFlight    Type = "flight"
	TypeHotel     Type = "hotel"
	TypeItinerary Type = "itinerary"
)

type Status string

const (
	StatusConfirmed Status = "Confirmed"
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCompleted:
		return true
	}
	return false
}

// Details is the payload of a booking. The set of implementations is closed:
// FlightDetails, HotelDetails and ItineraryDetails.
type Details interface {
	BookingType() Type
	sealed()
}

type FlightDetails struct {
	travel.Flight
}

type HotelDetails struct {
	travel.Hotel
}

type ItineraryDetails struct {
	Prompt    string `json:"prompt"`
	Itinerary string `json:"itinerary,omitempty"`
}

func (FlightDetails) BookingType() Type    { return TypeFlight }
func (HotelDetails) BookingType() Type     { return TypeHotel }
func (ItineraryDetails) BookingType() Type { return TypeItinerary }

func (FlightDetails) sealed()    {}
func (HotelDetails) sealed()     {}
func (ItineraryDetails) sealed() {}

type BookingRecord struct {
	ID      string
	Type    Type
	Details Details
	Date    time.Time
	Status  Status
}

// NewBooking stamps a confirmed booking for details at now.
func NewBooking(id string, details Details, now time.Time) BookingRecord {
	return BookingRecord{
		ID:      id,
		Type:    details.BookingType(),
		Details: details,
		Date:    now.UTC(),
		Status:  StatusConfirmed,
	}
}

// Title is the one-line label shown for a booking.
func (b BookingRecord) Title() string {
	switch d := b.Details.(type) {
	case FlightDetails:
		return d.Airline
	case HotelDetails:
		return d.Name
	case ItineraryDetails:
		return "Custom Itinerary"
	}
	return string(b.Type)
}

type wireRecord struct {
	ID      string          `json:"id"`
	Type    Type            `json:"type"`
	Details json.RawMessage `json:"details"`
	Date    time.Time       `json:"date"`
	Status  Status          `json:"status"`
}

func (b BookingRecord) MarshalJSON() ([]byte, error) {
	if b.Details == nil {
		return nil, fmt.Errorf("booking %s has no details", b.ID)
	}
	if b.Details.BookingType() != b.Type {
		return nil, fmt.Errorf("booking %s: type %q does not match %q details", b.ID, b.Type, b.Details.BookingType())
	}
	details, err := json.Marshal(b.Details)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireRecord{
		ID:      b.ID,
		Type:    b.Type,
		Details: details,
		Date:    b.Date,
		Status:  b.Status,
	})
}

func (b *BookingRecord) UnmarshalJSON(data []byte) error {
	var w wireRecord
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.ID == "" {
		return fmt.Errorf("booking without id")
	}
	if !w.Status.Valid() {
		return fmt.Errorf("booking %s: unknown status %q", w.ID, w.Status)
	}
	details, err := DecodeDetails(w.Type, w.Details)
	if err != nil {
		return fmt.Errorf("booking %s: %w", w.ID, err)
	}

	*b = BookingRecord{
		ID:      w.ID,
		Type:    w.Type,
		Details: details,
		Date:    w.Date,
		Status:  w.Status,
	}
	return nil
}

// DecodeDetails picks the Details variant from the type discriminant.
func DecodeDetails(t Type, raw []byte) (Details, error) {
	switch t {
	case TypeFlight:
		var d FlightDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("invalid flight details: %w", err)
		}
		return d, nil
	case TypeHotel:
		var d HotelDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("invalid hotel details: %w", err)
		}
		if d.Amenities == nil {
			d.Amenities = []string{}
		}
		return d, nil
	case TypeItinerary:
		var d ItineraryDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("invalid itinerary details: %w", err)
		}
		return d, nil
	}
	return nil, fmt.Errorf("unknown booking type %q", t)
}
