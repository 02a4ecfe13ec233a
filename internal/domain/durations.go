package domain

import (
	"log"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultVisitMinutes is assumed when a duration string cannot be parsed.
const DefaultVisitMinutes = 60

var (
	hoursPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:hours?|hrs?|h)\b`)
	minutesPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:minutes?|mins?|m)\b`)
	barePattern    = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// ParseVisitMinutes converts a free-form duration string ("1 hr 20 mins",
// "90 min", "1.5 hours", bare "45") into whole minutes.
//
// Parsing is tolerant: unparsable or non-positive input logs and defaults to
// DefaultVisitMinutes rather than failing.
func ParseVisitMinutes(s string) int {
	raw := s
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultVisitMinutes
	}

	if barePattern.MatchString(s) {
		v, err := strconv.ParseFloat(s, 64)
		if err == nil && v > 0 {
			return int(math.Round(v))
		}
		log.Printf("duration parse: invalid bare number %q, defaulting to %d min", raw, DefaultVisitMinutes)
		return DefaultVisitMinutes
	}

	total := 0.0
	matched := false

	if m := hoursPattern.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			total += v * 60
			matched = true
		}
	}
	if m := minutesPattern.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			total += v
			matched = true
		}
	}

	if !matched || total <= 0 {
		log.Printf("duration parse: unparsable %q, defaulting to %d min", raw, DefaultVisitMinutes)
		return DefaultVisitMinutes
	}
	return int(math.Round(total))
}
