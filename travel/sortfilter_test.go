package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flightNumbers(flights []Flight) []string {
	out := make([]string, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.FlightNumber)
	}
	return out
}

func TestSortFlights(t *testing.T) {
	flights := []Flight{
		{FlightNumber: "A", Price: "$1,200", Duration: "2h 30m", Departure: "TBD"},
		{FlightNumber: "B", Price: "Contact airline", Duration: "45m", Departure: "6:15 PM, Rome (FCO)"},
		{FlightNumber: "C", Price: "$450", Duration: "3h", Departure: "7:00 AM, Rome (FCO)"},
		{FlightNumber: "D", Price: "$450", Duration: "45m", Departure: "07:00, Rome (CIA)"},
	}

	tests := []struct {
		mode SortMode
		want []string
	}{
		{SortNone, []string{"A", "B", "C", "D"}},
		{SortPrice, []string{"B", "C", "D", "A"}},
		{SortDuration, []string{"B", "D", "A", "C"}},
		{SortDeparture, []string{"C", "D", "B", "A"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			got := SortFlights(flights, tt.mode)
			assert.Equal(t, tt.want, flightNumbers(got))
		})
	}

	// the source slice is never reordered
	assert.Equal(t, []string{"A", "B", "C", "D"}, flightNumbers(flights))
}

func TestSortFlights_Empty(t *testing.T) {
	got := SortFlights(nil, SortPrice)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestParseSortMode(t *testing.T) {
	mode, err := ParseSortMode("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, mode)

	mode, err = ParseSortMode(" Price ")
	require.NoError(t, err)
	assert.Equal(t, SortPrice, mode)

	_, err = ParseSortMode("rating")
	assert.Error(t, err)
}

func TestFilterHotels_AndSemantics(t *testing.T) {
	hotels := []Hotel{
		{Name: "Aman", Amenities: []string{"Spa", "Pool"}},
		{Name: "Hoxton", Amenities: []string{"Gym"}},
	}

	got := FilterHotels(hotels, []string{"Spa"})
	require.Len(t, got, 1)
	assert.Equal(t, "Aman", got[0].Name)

	assert.Empty(t, FilterHotels(hotels, []string{"Spa", "Gym"}))
	assert.Empty(t, FilterHotels(hotels, []string{"spa"}))
	assert.Len(t, FilterHotels(hotels, nil), 2)
}

func TestAmenityFacets(t *testing.T) {
	hotels := []Hotel{
		{Name: "Aman", Amenities: []string{"Spa", "Pool"}},
		{Name: "Hoxton", Amenities: []string{"Gym"}},
		{Name: "Ritz", Amenities: []string{"Spa", "spa"}},
	}

	assert.Equal(t, []string{"Gym", "Pool", "Spa"}, AmenityFacets(hotels[:2]))
	assert.Equal(t, []string{"Gym", "Pool", "Spa", "spa"}, AmenityFacets(hotels))
	assert.Equal(t, []string{}, AmenityFacets(nil))
}
