package travel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTimeLocation(t *testing.T) {
	tests := []struct {
		in   string
		want Endpoint
	}{
		{"10:00 AM, New York (JFK)", Endpoint{"10:00 AM", "New York", "JFK"}},
		{"1:00 PM, London (LHR)", Endpoint{"1:00 PM", "London", "LHR"}},
		{"23:45 - Tokyo HND", Endpoint{"23:45", "Tokyo", "HND"}},
		{"9:05pm: Dubai", Endpoint{"9:05pm", "Dubai", ""}},
		{"Madrid (MAD)", Endpoint{TimeUnknown, "Madrid", "MAD"}},
		{Unavailable, Endpoint{TimeUnknown, Unavailable, ""}},
		{"", Endpoint{TimeUnknown, "", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTimeLocation(tt.in))
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$450", 450},
		{"$1,200", 1200},
		{"€1,234.50 per person", 1234.5},
		{"Contact airline", 0},
		{Unavailable, 0},
		{"", 0},
		{"1.2.3", 1.2},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.in))
		})
	}
}

func TestParseDurationMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2h 30m", 150},
		{"45m", 45},
		{"3h", 180},
		{"7h 0m", 420},
		{"about 11h05m nonstop", 665},
		{Unavailable, 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDurationMinutes(tt.in))
		})
	}
}

func TestParseClockMinutes(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"10:00 AM", 600, true},
		{"12:15 am", 15, true},
		{"12:00 PM", 720, true},
		{"1:30PM", 810, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"13:00 PM", 0, false},
		{TimeUnknown, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseClockMinutes(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func FuzzSplitTimeLocation(f *testing.F) {
	f.Add("10:00 AM, New York (JFK)")
	f.Add("(((")
	f.Add("::--,,")
	f.Fuzz(func(t *testing.T, s string) {
		ep := SplitTimeLocation(s)
		assert.NotEmpty(t, ep.Time)
		if ep.AirportCode != "" {
			assert.Len(t, ep.AirportCode, 3)
		}
		ParsePrice(s)
		ParseDurationMinutes(s)
	})
}
