package services

import (
	"errors"
	"fmt"
	"strings"
)

// Messages shown instead of a collaborator result when the call fails.
const (
	FlightFallback    = "Sorry, I encountered an error finding flight information."
	HotelFallback     = "Unable to retrieve hotel data at this time."
	ItineraryFallback = "Failed to generate itinerary. Please try again."
	ChatFallback      = "I'm sorry, I'm having trouble connecting right now."
	SpeechFallback    = "Unable to generate audio for this itinerary."
	TranscribeFailed  = "Unable to transcribe the recording."
)

const (
	ChatSystemInstruction = "You are LuxeTravel AI assistant. You help users find flights, hotels, and plan trips with a refined, professional, and helpful tone."
	TranscribeInstruction = "Please transcribe this audio accurately."

	speechLimit  = 500
	speechSuffix = "... and much more in your full itinerary."
)

const MaxSegments = 4

var (
	ErrNoSegments      = errors.New("at least one flight segment is required")
	ErrTooManySegments = fmt.Errorf("at most %d flight segments are allowed", MaxSegments)
	ErrNoLocation      = errors.New("location is required")
	ErrNoPrompt        = errors.New("prompt is required")
)

// FlightSegment is one leg of a requested route. Date is free text.
type FlightSegment struct {
	From string `json:"from"`
	To   string `json:"to"`
	Date string `json:"date"`
}

const flightFormat = ` First, provide a one-sentence overview of the travel options.
Then, list each individual flight option exactly in this format:
- Airline: [Name]
- Flight Number: [Number]
- Departure: [Time, Location (Airport Code)]
- Arrival: [Time, Location (Airport Code)]
- Price: [Price]
- Duration: [Time]
- Link: [URL if available]

Only provide real, current information with accurate airport IATA codes (e.g., LHR, JFK).`

const hotelFormat = `
First, provide a one-sentence overview of the hotel market there.
Then, list each hotel exactly in this format:
- Hotel Name: [Name]
- Location: [Specific Area]
- Price: [Price per night]
- Rating: [Rating out of 5]
- Amenities: [Amenity 1, Amenity 2, Amenity 3]
- Link: [URL if available]

Only provide real, current information.`

func ValidateSegments(segments []FlightSegment) error {
	if len(segments) == 0 {
		return ErrNoSegments
	}
	if len(segments) > MaxSegments {
		return ErrTooManySegments
	}
	for i, s := range segments {
		if strings.TrimSpace(s.From) == "" || strings.TrimSpace(s.To) == "" {
			return fmt.Errorf("segment %d needs both from and to", i+1)
		}
	}
	return nil
}

// FlightQuery builds the search prompt. A single segment is a one-way trip,
// more than one is a multi-city route.
func FlightQuery(segments []FlightSegment) (string, error) {
	if err := ValidateSegments(segments); err != nil {
		return "", err
	}

	var query string
	if len(segments) == 1 {
		s := segments[0]
		query = fmt.Sprintf("Find the best current flights from %s to %s around %s.",
			strings.TrimSpace(s.From), strings.TrimSpace(s.To), strings.TrimSpace(s.Date))
	} else {
		legs := make([]string, len(segments))
		for i, s := range segments {
			legs[i] = fmt.Sprintf("Leg %d: %s to %s on %s",
				i+1, strings.TrimSpace(s.From), strings.TrimSpace(s.To), strings.TrimSpace(s.Date))
		}
		query = fmt.Sprintf("Find the best multi-city flight options for the following route: %s.",
			strings.Join(legs, ", "))
	}
	return query + flightFormat, nil
}

func HotelQuery(location string) (string, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return "", ErrNoLocation
	}
	return fmt.Sprintf("Find the best luxury hotels in %s.", location) + hotelFormat, nil
}

func ItineraryPrompt(prompt string) string {
	return fmt.Sprintf("Act as a luxury travel expert. Create a detailed itinerary for: %s. Include specific recommendations for hidden gems and dining.", prompt)
}

// SpeechText trims an itinerary to what is read aloud.
func SpeechText(itinerary string) string {
	r := []rune(itinerary)
	if len(r) > speechLimit {
		r = r[:speechLimit]
	}
	return string(r) + speechSuffix
}
