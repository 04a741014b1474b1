package utils

import (
	"strings"
	"time"
)

// Layouts the server is known to send for plannedDate.
var plannedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParsePlannedDate parses a plannedDate value. Date-only values are taken
// as midnight in loc.
func ParsePlannedDate(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range plannedDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// FormatPlannedDate renders a plannedDate for the terminal. Values that do
// not parse are shown as sent.
func FormatPlannedDate(raw string, loc *time.Location) string {
	t, ok := ParsePlannedDate(raw, loc)
	if !ok {
		return raw
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("Mon, 02 Jan 2006")
	}
	return t.Format("Mon, 02 Jan 2006 15:04")
}
