package ledger

import (
	"math/big"
	"strings"

	"github.com/google/uuid"
)

const idSuffixLen = 7

// IDGenerator produces a booking id for a booking type.
type IDGenerator func(Type) string

// Prefix distinguishes where a booking came from: FL- flight, LT- hotel,
// IT- itinerary.
func Prefix(t Type) string {
	switch t {
	case TypeFlight:
		return "FL-"
	case TypeHotel:
		return "LT-"
	case TypeItinerary:
		return "IT-"
	}
	return "BK-"
}

// NewID returns the prefix plus 7 upper-case base-36 characters taken from
// the random tail of a v4 uuid. Collisions are unlikely, not impossible.
func NewID(t Type) string {
	u := uuid.New()
	n := new(big.Int).SetBytes(u[9:])
	s := strings.ToUpper(n.Text(36))
	if len(s) < idSuffixLen {
		s = strings.Repeat("0", idSuffixLen-len(s)) + s
	}
	return Prefix(t) + s[len(s)-idSuffixLen:]
}
