package travel

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type SortMode string

const (
	SortNone      SortMode = "none"
	SortPrice     SortMode = "price"
	SortDuration  SortMode = "duration"
	SortDeparture SortMode = "departure"
)

// ParseSortMode accepts the API spelling of a sort mode; "" means none.
func ParseSortMode(s string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return SortNone, nil
	case SortNone, SortPrice, SortDuration, SortDeparture:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// SortFlights returns a reordered copy of flights. All modes sort ascending
// and are stable, so equal keys keep extractor order. Departures without a
// readable clock time go last.
func SortFlights(flights []Flight, mode SortMode) []Flight {
	out := slices.Clone(flights)
	if out == nil {
		out = []Flight{}
	}

	switch mode {
	case SortPrice:
		slices.SortStableFunc(out, func(a, b Flight) int {
			return cmp.Compare(ParsePrice(a.Price), ParsePrice(b.Price))
		})
	case SortDuration:
		slices.SortStableFunc(out, func(a, b Flight) int {
			return cmp.Compare(ParseDurationMinutes(a.Duration), ParseDurationMinutes(b.Duration))
		})
	case SortDeparture:
		slices.SortStableFunc(out, func(a, b Flight) int {
			ma, okA := ParseClockMinutes(SplitTimeLocation(a.Departure).Time)
			mb, okB := ParseClockMinutes(SplitTimeLocation(b.Departure).Time)
			switch {
			case okA && okB:
				return cmp.Compare(ma, mb)
			case okA:
				return -1
			case okB:
				return 1
			}
			return 0
		})
	}
	return out
}

// FilterHotels keeps the hotels offering every selected amenity. An empty
// selection keeps all of them. The input slice is not modified.
func FilterHotels(hotels []Hotel, selected []string) []Hotel {
	out := make([]Hotel, 0, len(hotels))
	for _, h := range hotels {
		if hasAll(h.Amenities, selected) {
			out = append(out, h)
		}
	}
	return out
}

func hasAll(amenities, selected []string) bool {
	for _, want := range selected {
		if !slices.Contains(amenities, want) {
			return false
		}
	}
	return true
}

// AmenityFacets is the sorted, de-duplicated union of all amenities.
// Matching is case-sensitive.
func AmenityFacets(hotels []Hotel) []string {
	seen := map[string]struct{}{}
	facets := []string{}
	for _, h := range hotels {
		for _, a := range h.Amenities {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			facets = append(facets, a)
		}
	}
	slices.Sort(facets)
	return facets
}
