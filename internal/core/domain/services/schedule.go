package services

import "time"

// Operating window bounds, expressed as wall-clock hours in the server's
// local time zone. Both bounds are inclusive of the whole hour.
const (
	OperatingWindowOpeningHour = 8
	OperatingWindowClosingHour = 18
)

// IsWithinOperatingWindow reports whether the given moment falls inside the
// daily window during which pickup, update, and cancellation are permitted.
//
// The window accepts any time from 08:00:00 through 18:59:59: the closing
// bound is inclusive of the entire 18:00 hour, not clipped to 18:00 sharp.
// That is a deliberate compatibility quirk of the public contract, not a bug.
//
// The predicate is pure and performs no I/O; callers supply the clock.
func IsWithinOperatingWindow(now time.Time) bool {
	hour := now.Hour()
	return hour >= OperatingWindowOpeningHour && hour <= OperatingWindowClosingHour
}
