package availability

import (
	"context"
	"time"
)

// Eligible reports whether the calendar day of the given date may be
// offered as a booking target.  A day is eligible when all of the
// following hold:
//
//  1. it is not earlier than max(today, launch date);
//  2. it lies before today plus the configured horizon days, or before
//     the promotional grace period end when that reaches further and
//     today still lies before it (the wider window applies; both
//     bounds are exclusive);
//  3. its weekday is one of the configured business days;
//  4. it is not fully blocked (see FullyBlockedDates).
//
// Rules 1-3 are pure; rule 4 reads the store, so Eligible can fail
// with a store error that callers must not confuse with "ineligible".
func (s *Service) Eligible(ctx context.Context, day time.Time) (bool, error) {
	d := Midnight(day)
	today := Midnight(s.now())

	lower := Midnight(s.cfg.LaunchDate)
	if today.After(lower) {
		lower = today
	}
	if d.Before(lower) {
		return false, nil
	}

	// Today plus the horizon is the first day past the default window;
	// like the grace end, the bound is exclusive.
	if !d.Before(today.AddDate(0, 0, s.cfg.HorizonDays)) {
		grace := Midnight(s.cfg.GracePeriodEnd)
		if !today.Before(grace) || !d.Before(grace) {
			return false, nil
		}
	}

	if !s.cfg.IsBusinessDay(d) {
		return false, nil
	}

	full, err := s.FullyBlockedDates(ctx)
	if err != nil {
		return false, err
	}
	if _, blocked := full[DateKey(d)]; blocked {
		return false, nil
	}
	return true, nil
}
