package clock

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Timestamp layouts seen in ingested records. Zoned layouts are converted
// to the reference zone; zone-less layouts are interpreted in it directly.
var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var nakedLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// isoPrefix extracts a leading ISO date or datetime out of a string that
// carries extra trailing text ("2024-06-01T10:00:00Z (reviewed)").
var isoPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(?:[T ]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?)?`)

// Normalize converts a raw call timestamp to its calendar date in the
// reference zone. Records whose timestamp cannot be parsed are excluded
// from aggregation by the caller, never coerced to epoch or "now".
func (c ReferenceClock) Normalize(raw string) (Date, error) {
	t, err := c.Instant(raw)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t, c.loc), nil
}

// Instant resolves a raw call timestamp to its precise moment in the
// reference zone. Date-only layouts resolve to midnight, so within one day
// timestamps that carry a time of day order after bare dates.
func (c ReferenceClock) Instant(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if t, ok := c.parse(s); ok {
		return t, nil
	}

	// Retry on a recognizable ISO prefix when the value has trailing text
	if m := isoPrefix.FindString(s); m != "" && m != s {
		if t, ok := c.parse(m); ok {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparseable timestamp %q", raw)
}

func (c ReferenceClock) parse(s string) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(c.loc), true
		}
	}
	for _, layout := range nakedLayouts {
		if t, err := time.ParseInLocation(layout, s, c.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
