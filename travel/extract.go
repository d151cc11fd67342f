package travel

import (
	"regexp"
	"strings"
	"sync"
)

// fieldPatterns caches one compiled pattern per label. Labels come from a
// small fixed set, so the cache stays tiny.
var fieldPatterns sync.Map // label -> *regexp.Regexp

func fieldPattern(label string) *regexp.Regexp {
	if re, ok := fieldPatterns.Load(label); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)- ` + regexp.QuoteMeta(label) + `:[ \t]*([^\r\n]*)`)
	actual, _ := fieldPatterns.LoadOrStore(label, re)
	return actual.(*regexp.Regexp)
}

// SplitBlocks cuts text immediately before every occurrence of marker and
// keeps only the segments that start with it, so any prose before the first
// record is dropped.
func SplitBlocks(text, marker string) []string {
	blocks := []string{}
	if marker == "" {
		return blocks
	}

	var starts []int
	for offset := 0; ; {
		i := strings.Index(text[offset:], marker)
		if i < 0 {
			break
		}
		starts = append(starts, offset+i)
		offset += i + len(marker)
	}

	// text[:starts[0]] is the prelude and never becomes a block.
	for i, start := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		blocks = append(blocks, text[start:end])
	}
	return blocks
}

// FieldValue returns the value of the first "- <label>: value" line in block.
// The label match ignores case, the value is trimmed and never spans lines.
// A missing or empty value yields Unavailable.
func FieldValue(block, label string) string {
	m := fieldPattern(label).FindStringSubmatch(block)
	if m == nil {
		return Unavailable
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		return Unavailable
	}
	return v
}

// Overview returns the prose that precedes the first record block.
func Overview(text, marker string) string {
	if i := strings.Index(text, marker); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// ExtractFlights parses every "- Airline:" block of text, in source order.
// No blocks yields an empty, non-nil slice.
func ExtractFlights(text string) []Flight {
	blocks := SplitBlocks(text, FlightMarker)
	flights := make([]Flight, 0, len(blocks))
	for _, b := range blocks {
		flights = append(flights, Flight{
			Airline:      FieldValue(b, "Airline"),
			FlightNumber: FieldValue(b, "Flight Number"),
			Departure:    FieldValue(b, "Departure"),
			Arrival:      FieldValue(b, "Arrival"),
			Price:        FieldValue(b, "Price"),
			Duration:     FieldValue(b, "Duration"),
			Link:         FieldValue(b, "Link"),
		})
	}
	return flights
}

// ExtractHotels parses every "- Hotel Name:" block of text, in source order.
func ExtractHotels(text string) []Hotel {
	blocks := SplitBlocks(text, HotelMarker)
	hotels := make([]Hotel, 0, len(blocks))
	for _, b := range blocks {
		hotels = append(hotels, Hotel{
			Name:          FieldValue(b, "Hotel Name"),
			Location:      FieldValue(b, "Location"),
			PricePerNight: FieldValue(b, "Price"),
			Rating:        FieldValue(b, "Rating"),
			Amenities:     splitAmenities(FieldValue(b, "Amenities")),
			Link:          FieldValue(b, "Link"),
		})
	}
	return hotels
}

func splitAmenities(raw string) []string {
	amenities := []string{}
	if raw == Unavailable {
		return amenities
	}
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			amenities = append(amenities, a)
		}
	}
	return amenities
}
