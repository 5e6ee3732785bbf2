package config

import (
	"log"
	"strconv"
	"strings"
	"time"
)

// Schedule carries the booking calendar constants.  The studio runs a fixed
// two-day-per-week schedule with an enumerated list of daily time slots; the
// launch date and the promotional grace period widen or gate the customer
// booking window.  All values are supplied through the environment so the
// promotional period can be retired without a code change.
type Schedule struct {
	Slots             []string                  // time-slot labels in canonical booking order
	BusinessDays      map[time.Weekday]struct{} // weekdays on which the studio operates
	LaunchDate        time.Time                 // first bookable calendar date
	GracePeriodEnd    time.Time                 // end of the widened launch window (exclusive)
	HorizonDays       int                       // default customer booking horizon in days
	SearchHorizonDays int                       // how far the next-available search may look
}

// Defaults mirror the launch configuration of the studio: ten hourly slots,
// Tuesdays and Fridays only, catalog live on 2026-01-08 with all of January
// 2026 bookable during the launch promotion.
const (
	defaultSlots        = "10:00,11:00,12:00,13:00,14:00,15:00,16:00,17:00,18:00,19:00"
	defaultBusinessDays = "2,5" // time.Weekday numbering: 2=Tuesday, 5=Friday
	defaultLaunchDate   = "2026-01-08"
	defaultGraceEnd     = "2026-02-01"
)

// LoadSchedule builds a Schedule from environment variables, falling back to
// the launch defaults.  Malformed values are treated as fatal configuration
// errors, the same way Load() treats missing required variables.
func LoadSchedule() Schedule {
	return Schedule{
		Slots:             splitList(getenv("BOOKING_SLOTS", defaultSlots)),
		BusinessDays:      parseWeekdays(getenv("BOOKING_BUSINESS_DAYS", defaultBusinessDays)),
		LaunchDate:        parseDate("BOOKING_LAUNCH_DATE", getenv("BOOKING_LAUNCH_DATE", defaultLaunchDate)),
		GracePeriodEnd:    parseDate("BOOKING_GRACE_PERIOD_END", getenv("BOOKING_GRACE_PERIOD_END", defaultGraceEnd)),
		HorizonDays:       atoiOr("BOOKING_HORIZON_DAYS", 28),
		SearchHorizonDays: atoiOr("BOOKING_SEARCH_HORIZON_DAYS", 365),
	}
}

// IsBusinessDay reports whether the studio operates on the weekday of d.
func (s Schedule) IsBusinessDay(d time.Time) bool {
	_, ok := s.BusinessDays[d.Weekday()]
	return ok
}

// HasSlot reports whether label is one of the configured time slots.
func (s Schedule) HasSlot(label string) bool {
	for _, slot := range s.Slots {
		if slot == label {
			return true
		}
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		log.Fatalf("BOOKING_SLOTS must list at least one slot")
	}
	return out
}

func parseWeekdays(s string) map[time.Weekday]struct{} {
	days := make(map[time.Weekday]struct{})
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 6 {
			log.Fatalf("invalid weekday number in BOOKING_BUSINESS_DAYS: %q", p)
		}
		days[time.Weekday(n)] = struct{}{}
	}
	if len(days) == 0 {
		log.Fatalf("BOOKING_BUSINESS_DAYS must list at least one weekday")
	}
	return days
}

func parseDate(key, s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		log.Fatalf("invalid date for %s: %q (want YYYY-MM-DD)", key, s)
	}
	return t
}

func atoiOr(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}
