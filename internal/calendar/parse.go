package calendar

import (
	"strings"
	"time"
)

// dayParsers is the ordered list of accepted day formats. The first parser
// to succeed wins; spreadsheet exports and the kanban board use the
// day-first variants.
var dayParsers = []string{
	DayLayout,
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
}

// ParseDay attempts to parse s as a calendar day, trying each accepted
// format in order. It returns the parsed day (UTC midnight) and whether
// parsing succeeded. Empty or malformed input is not an error for the
// scheduler, so no error is returned here.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayParsers {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseDayOr parses s leniently, substituting fallback when s is empty or
// malformed. Scheduling never aborts on a corrupt date.
func ParseDayOr(s string, fallback time.Time) time.Time {
	if d, ok := ParseDay(s); ok {
		return d
	}
	return fallback
}
