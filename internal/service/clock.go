package service

import "time"

// Clock supplies the current instant and the calendar location used for
// day and month boundaries.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// SystemClock reads the wall clock in loc.
func SystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return Clock{Now: time.Now, Location: loc}
}

// FixedClock always reports t. Used by seeds and tests.
func FixedClock(t time.Time, loc *time.Location) Clock {
	return Clock{Now: func() time.Time { return t }, Location: loc}
}
