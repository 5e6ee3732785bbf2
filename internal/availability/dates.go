package availability

import "time"

// Appointment dates carry date-only semantics.  Stored values are
// pinned to 12:00 UTC so a conversion between timezones can never
// shift the calendar day, and comparisons zero the time-of-day first
// so partial days cannot cause off-by-one errors.

// Midnight returns the calendar day of d at 00:00 UTC, the canonical
// form for date comparisons.
func Midnight(d time.Time) time.Time {
	y, m, day := d.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// Noon returns the calendar day of d at 12:00 UTC, the canonical form
// for storing and displaying appointment dates.
func Noon(d time.Time) time.Time {
	y, m, day := d.UTC().Date()
	return time.Date(y, m, day, 12, 0, 0, 0, time.UTC)
}

// DateKey returns the canonical YYYY-MM-DD string for the calendar day
// of d.  All availability bookkeeping is keyed by this string.
func DateKey(d time.Time) string {
	return d.UTC().Format("2006-01-02")
}
