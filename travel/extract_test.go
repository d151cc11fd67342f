package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deltaText = "Intro.\n- Airline: Delta\n- Flight Number: DL100\n- Departure: 10:00 AM, New York (JFK)\n- Arrival: 1:00 PM, London (LHR)\n- Price: $450\n- Duration: 7h 0m\n- Link: N/A"

func TestExtractFlights_SingleBlock(t *testing.T) {
	flights := ExtractFlights(deltaText)
	require.Len(t, flights, 1)

	f := flights[0]
	assert.Equal(t, "Delta", f.Airline)
	assert.Equal(t, "DL100", f.FlightNumber)
	assert.Equal(t, "$450", f.Price)
	assert.Equal(t, "7h 0m", f.Duration)
	assert.Equal(t, Unavailable, f.Link)

	dep := SplitTimeLocation(f.Departure)
	assert.Equal(t, Endpoint{Time: "10:00 AM", Location: "New York", AirportCode: "JFK"}, dep)

	arr := SplitTimeLocation(f.Arrival)
	assert.Equal(t, Endpoint{Time: "1:00 PM", Location: "London", AirportCode: "LHR"}, arr)
}

func TestExtractFlights_OrderAndMissingFields(t *testing.T) {
	text := `Here are your options.

- Airline: United
- Flight Number: UA1
- Price: $300

- Airline: Lufthansa
- Duration: 9h 15m
- Price: $1,200.

- Airline: KLM
- Flight Number: KL643`

	flights := ExtractFlights(text)
	require.Len(t, flights, 3)

	assert.Equal(t, "United", flights[0].Airline)
	assert.Equal(t, "Lufthansa", flights[1].Airline)
	assert.Equal(t, "KLM", flights[2].Airline)

	assert.Equal(t, Unavailable, flights[0].Duration)
	assert.Equal(t, "$1,200.", flights[1].Price)
	assert.Equal(t, Unavailable, flights[1].FlightNumber)
	assert.Equal(t, Unavailable, flights[2].Price)
}

func TestExtractFlights_FieldsInAnyOrderAndCase(t *testing.T) {
	text := "- Airline:   Air France  \n- price: €520\n- FLIGHT NUMBER: AF22\n- departure: 08:30, Paris (CDG)"

	flights := ExtractFlights(text)
	require.Len(t, flights, 1)
	assert.Equal(t, "Air France", flights[0].Airline)
	assert.Equal(t, "€520", flights[0].Price)
	assert.Equal(t, "AF22", flights[0].FlightNumber)
	assert.Equal(t, "08:30, Paris (CDG)", flights[0].Departure)
}

func TestExtractFlights_NoBlocks(t *testing.T) {
	for _, text := range []string{"", "No flights matched your dates.", "Airline: Delta"} {
		flights := ExtractFlights(text)
		assert.NotNil(t, flights)
		assert.Empty(t, flights)
	}
}

func TestExtractFlights_EmptyValueDoesNotReadNextLine(t *testing.T) {
	flights := ExtractFlights("- Airline: Iberia\n- Link:\n- Price: $90")
	require.Len(t, flights, 1)
	assert.Equal(t, Unavailable, flights[0].Link)
	assert.Equal(t, "$90", flights[0].Price)
}

func TestExtractHotels_Amenities(t *testing.T) {
	text := `The Paris luxury market is busy this season.
- Hotel Name: Le Meurice
- Location: 1st Arr.
- Price: $1,100
- Rating: 4.8 out of 5
- Amenities: Spa, Pool, , Spa
- Link: https://example.com/meurice
- Hotel Name: Plaza Athenee
- Location: 8th Arr.
- Price: $1,300`

	hotels := ExtractHotels(text)
	require.Len(t, hotels, 2)

	assert.Equal(t, "Le Meurice", hotels[0].Name)
	assert.Equal(t, "1st Arr.", hotels[0].Location)
	assert.Equal(t, "$1,100", hotels[0].PricePerNight)
	assert.Equal(t, "4.8 out of 5", hotels[0].Rating)
	assert.Equal(t, []string{"Spa", "Pool", "Spa"}, hotels[0].Amenities)
	assert.Equal(t, "https://example.com/meurice", hotels[0].Link)

	assert.Equal(t, []string{}, hotels[1].Amenities)
	assert.Equal(t, Unavailable, hotels[1].Rating)
}

func TestSplitBlocks(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "prelude dropped",
			text: "hello\n- Airline: A\n- Airline: B",
			want: []string{"- Airline: A\n", "- Airline: B"},
		},
		{
			name: "starts with marker",
			text: "- Airline: A",
			want: []string{"- Airline: A"},
		},
		{
			name: "no marker",
			text: "nothing here",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitBlocks(tt.text, FlightMarker))
		})
	}
}

func TestOverview(t *testing.T) {
	assert.Equal(t, "Intro.", Overview(deltaText, FlightMarker))
	assert.Equal(t, "", Overview("- Airline: A", FlightMarker))
	assert.Equal(t, "All prose", Overview("  All prose \n", FlightMarker))
}

func FuzzExtractFlights(f *testing.F) {
	f.Add(deltaText)
	f.Add("- Airline:\n- Airline:")
	f.Add("")
	f.Fuzz(func(t *testing.T, text string) {
		flights := ExtractFlights(text)
		require.Len(t, flights, len(SplitBlocks(text, FlightMarker)))
		for _, fl := range flights {
			assert.NotEmpty(t, fl.Airline)
			assert.NotEmpty(t, fl.Link)
		}
	})
}
