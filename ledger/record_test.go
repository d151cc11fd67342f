package ledger

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxetravel/travel"
)

func TestBookingRecord_JSONLayout(t *testing.T) {
	data, err := json.Marshal(sampleFlight())
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "FL-ABC1234", wire["id"])
	assert.Equal(t, "flight", wire["type"])
	assert.Equal(t, "Confirmed", wire["status"])
	assert.Equal(t, "2026-03-14T09:30:00Z", wire["date"])

	details := wire["details"].(map[string]any)
	assert.Equal(t, "Delta", details["airline"])
	assert.Equal(t, "DL100", details["flightNumber"])
}

func TestBookingRecord_DecodeDispatchesOnType(t *testing.T) {
	data, err := json.Marshal([]BookingRecord{sampleFlight(), sampleHotel(), sampleItinerary()})
	require.NoError(t, err)

	var got []BookingRecord
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 3)

	_, ok := got[0].Details.(FlightDetails)
	assert.True(t, ok)
	hotel, ok := got[1].Details.(HotelDetails)
	require.True(t, ok)
	assert.Equal(t, []string{"Spa", "Pool"}, hotel.Amenities)
	itin, ok := got[2].Details.(ItineraryDetails)
	require.True(t, ok)
	assert.Equal(t, "A week in Kyoto", itin.Prompt)
}

func TestBookingRecord_Rejects(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"unknown type", `{"id":"X","type":"cruise","details":{},"date":"2026-01-01T00:00:00Z","status":"Confirmed"}`},
		{"unknown status", `{"id":"X","type":"hotel","details":{},"date":"2026-01-01T00:00:00Z","status":"Cancelled"}`},
		{"missing id", `{"type":"hotel","details":{},"date":"2026-01-01T00:00:00Z","status":"Pending"}`},
		{"details wrong shape", `{"id":"X","type":"flight","details":[1,2],"date":"2026-01-01T00:00:00Z","status":"Pending"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b BookingRecord
			assert.Error(t, json.Unmarshal([]byte(tt.json), &b))
		})
	}
}

func TestBookingRecord_MarshalTypeMismatch(t *testing.T) {
	b := sampleHotel()
	b.Type = TypeFlight
	_, err := json.Marshal(b)
	assert.Error(t, err)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Delta", sampleFlight().Title())
	assert.Equal(t, "Aman Tokyo", sampleHotel().Title())
	assert.Equal(t, "Custom Itinerary", sampleItinerary().Title())
}

func TestNewID(t *testing.T) {
	shape := regexp.MustCompile(`^(FL|LT|IT)-[0-9A-Z]{7}$`)

	seen := map[string]bool{}
	for _, typ := range []Type{TypeFlight, TypeHotel, TypeItinerary} {
		for i := 0; i < 200; i++ {
			id := NewID(typ)
			assert.Regexp(t, shape, id)
			assert.Equal(t, Prefix(typ), id[:3])
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	}
}

func TestNewBooking(t *testing.T) {
	b := NewBooking("LT-1", HotelDetails{travel.Hotel{Name: "Ritz"}}, bookedAt)
	assert.Equal(t, TypeHotel, b.Type)
	assert.Equal(t, StatusConfirmed, b.Status)
	assert.True(t, b.Date.Equal(bookedAt))
}
