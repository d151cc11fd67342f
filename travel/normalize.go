package travel

import (
	"regexp"
	"strconv"
	"strings"
)

// TimeUnknown is reported when a departure/arrival field carries no clock time.
const TimeUnknown = "TBD"

var (
	reClock       = regexp.MustCompile(`(?i)\d{1,2}:\d{2}(?:\s?[AP]M)?`)
	reClockParts  = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})(?:\s?([AP])M)?$`)
	reAirportCode = regexp.MustCompile(`\(?([A-Z]{3})\)?`)
	reNotNumeric  = regexp.MustCompile(`[^0-9.]`)
	reLeadingNum  = regexp.MustCompile(`^(?:\d+(?:\.\d*)?|\.\d+)`)
	reHours       = regexp.MustCompile(`(\d+)h`)
	reMinutes     = regexp.MustCompile(`(\d+)m`)
)

const separators = " \t\r\n\v\f,:-"

func trimSeparators(s string) string {
	return strings.Trim(s, separators)
}

// SplitTimeLocation decomposes a "time, location" field such as
// "10:00 AM, New York (JFK)" into its parts. It is a best-effort heuristic:
// anything it cannot find degrades to TimeUnknown or an empty code.
func SplitTimeLocation(s string) Endpoint {
	ep := Endpoint{Time: TimeUnknown}

	remaining := s
	if m := reClock.FindString(s); m != "" {
		ep.Time = m
		remaining = strings.Replace(remaining, m, "", 1)
	}
	remaining = trimSeparators(remaining)

	if m := reAirportCode.FindStringSubmatch(remaining); m != nil {
		ep.AirportCode = m[1]
		remaining = strings.Replace(remaining, m[0], "", 1)
	}
	ep.Location = trimSeparators(remaining)
	return ep
}

// ParsePrice keeps only digits and decimal points and reads the leading number.
// "$1,200" gives 1200, "Contact airline" gives 0.
func ParsePrice(s string) float64 {
	digits := reLeadingNum.FindString(reNotNumeric.ReplaceAllString(s, ""))
	if digits == "" {
		return 0
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseDurationMinutes sums "<n>h" and "<n>m" found anywhere in s.
// "2h 30m" gives 150, "45m" gives 45, "3h" gives 180.
func ParseDurationMinutes(s string) int {
	return firstInt(reHours, s)*60 + firstInt(reMinutes, s)
}

func firstInt(re *regexp.Regexp, s string) int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// ParseClockMinutes converts a normalized time ("7:05", "10:00 AM", "12:15 pm")
// into minutes after midnight. TimeUnknown and anything else unparsable
// report false.
func ParseClockMinutes(t string) (int, bool) {
	m := reClockParts.FindStringSubmatch(strings.TrimSpace(t))
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if mins > 59 {
		return 0, false
	}

	switch strings.ToUpper(m[3]) {
	case "A":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h == 12 {
			h = 0
		}
	case "P":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h != 12 {
			h += 12
		}
	default:
		if h > 23 {
			return 0, false
		}
	}
	return h*60 + mins, true
}
