// Package dateutil holds the calendar helpers shared by billing and reporting.
// All day arithmetic is done in an explicit location so midnight boundaries
// are the shop's, not the server's.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// StartOfDay truncates t to local midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// ParseDate accepts an RFC3339 timestamp or a bare YYYY-MM-DD date, the latter
// interpreted as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateLayout, value, loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC3339", value)
}

// ArchiveDir returns the YYYY/MM/DD path segments for t in loc.
func ArchiveDir(t time.Time, loc *time.Location) (year, month, day string) {
	t = t.In(loc)
	return fmt.Sprintf("%04d", t.Year()), fmt.Sprintf("%02d", int(t.Month())), fmt.Sprintf("%02d", t.Day())
}
