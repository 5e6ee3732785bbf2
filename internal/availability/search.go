package availability

import (
	"context"
	"errors"
	"time"
)

// ErrNoAvailability is returned by NextAvailable when the entire search
// horizon holds no free slot.  This is a legitimate empty result, not a
// fault; handlers report it as "no appointment found", not as an error.
var ErrNoAvailability = errors.New("no free appointment within the search horizon")

// NextAvailable scans forward day-by-day from max(today, launch date)
// up to the configured search horizon and returns the first free
// (date, slot) pair.  Only the business-day filter applies during the
// scan: the search may look past the customer booking horizon because
// its purpose is to find any future slot.  Selection is deterministic -
// the lowest-ordered free slot on the earliest eligible day.  The
// returned date is pinned to noon for storage and display.
func (s *Service) NextAvailable(ctx context.Context) (time.Time, string, error) {
	base := Midnight(s.cfg.LaunchDate)
	if today := Midnight(s.now()); today.After(base) {
		base = today
	}

	for i := 0; i <= s.cfg.SearchHorizonDays; i++ {
		day := base.AddDate(0, 0, i)
		if !s.cfg.IsBusinessDay(day) {
			continue
		}
		unavailable, err := s.Unavailable(ctx, day)
		if err != nil {
			// An unreadable day is unknown, not free; surface it.
			return time.Time{}, "", err
		}
		taken := make(map[string]struct{}, len(unavailable))
		for _, slot := range unavailable {
			taken[slot] = struct{}{}
		}
		for _, slot := range s.cfg.Slots {
			if _, ok := taken[slot]; !ok {
				return Noon(day), slot, nil
			}
		}
	}
	return time.Time{}, "", ErrNoAvailability
}
