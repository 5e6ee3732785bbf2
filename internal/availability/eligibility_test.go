package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkaufhold/headspa-booking/internal/model"
)

// fixedNow pins the service clock for deterministic eligibility checks.
func fixedNow(t *testing.T, svc *Service, date string) {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	svc.now = func() time.Time { return d }
}

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return d
}

func TestEligible_BasicWindow(t *testing.T) {
	svc := New(&staticSource{}, &staticSource{}, nil, testSchedule())
	fixedNow(t, svc, "2026-01-10") // Saturday after launch

	cases := []struct {
		date string
		want bool
		why  string
	}{
		{"2026-01-09", false, "before today"},
		{"2026-01-13", true, "Tuesday inside the horizon"},
		{"2026-01-16", true, "Friday inside the horizon"},
		{"2026-01-14", false, "Wednesday is not a business day"},
		{"2026-01-17", false, "Saturday is not a business day"},
	}
	for _, c := range cases {
		got, err := svc.Eligible(context.Background(), day(t, c.date))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.date, err)
		}
		if got != c.want {
			t.Fatalf("%s (%s): expected eligible=%v, got %v", c.date, c.why, c.want, got)
		}
	}
}

func TestEligible_LaunchDateFloors(t *testing.T) {
	svc := New(&staticSource{}, &staticSource{}, nil, testSchedule())
	fixedNow(t, svc, "2026-01-01") // before launch

	// A business day between today and launch must stay closed.
	got, err := svc.Eligible(context.Background(), day(t, "2026-01-06"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("2026-01-06 precedes the launch date, must be ineligible")
	}

	// The first business day on or after launch opens up.
	got, err = svc.Eligible(context.Background(), day(t, "2026-01-09"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("2026-01-09 is the first bookable Friday, expected eligible")
	}
}

func TestEligible_GraceWidensTheHorizon(t *testing.T) {
	cfg := testSchedule()
	cfg.HorizonDays = 7 // horizon ends 2026-01-17, before the grace end
	svc := New(&staticSource{}, &staticSource{}, nil, cfg)
	fixedNow(t, svc, "2026-01-10")

	// Past the rolling horizon but inside the grace window.
	got, err := svc.Eligible(context.Background(), day(t, "2026-01-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("2026-01-20 lies within the grace window, expected eligible")
	}

	// Past both windows.
	got, err = svc.Eligible(context.Background(), day(t, "2026-02-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("2026-02-03 is past horizon and grace end, expected ineligible")
	}
}

func TestEligible_HorizonUpperBoundExclusive(t *testing.T) {
	// 2026-03-10 is a Tuesday well past the grace period, so only the
	// rolling horizon applies.  2026-04-07 is the Tuesday exactly 28
	// days out: the first day past the window, not the last day in it.
	svc := New(&staticSource{}, &staticSource{}, nil, testSchedule())
	fixedNow(t, svc, "2026-03-10")

	got, err := svc.Eligible(context.Background(), day(t, "2026-04-07"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("today+28 lies on the horizon bound, expected ineligible")
	}

	// Widening the horizon by one day admits the same date.
	cfg := testSchedule()
	cfg.HorizonDays = 29
	svc = New(&staticSource{}, &staticSource{}, nil, cfg)
	fixedNow(t, svc, "2026-03-10")

	got, err = svc.Eligible(context.Background(), day(t, "2026-04-07"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("today+28 lies inside a 29-day horizon, expected eligible")
	}
}

func TestEligible_GraceUpperBoundExclusive(t *testing.T) {
	cfg := testSchedule()
	cfg.HorizonDays = 7
	cfg.GracePeriodEnd = time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC) // a Tuesday
	svc := New(&staticSource{}, &staticSource{}, nil, cfg)
	fixedNow(t, svc, "2026-01-10")

	// The last business day before the grace end is still admitted by
	// the widened window.
	got, err := svc.Eligible(context.Background(), day(t, "2026-01-30"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("2026-01-30 precedes the grace end, expected eligible")
	}

	// The grace end itself is already outside it.
	got, err = svc.Eligible(context.Background(), day(t, "2026-02-03"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("the grace end date is excluded, expected ineligible")
	}
}

func TestEligible_GraceIgnoredOnceExpired(t *testing.T) {
	cfg := testSchedule()
	cfg.HorizonDays = 7
	svc := New(&staticSource{}, &staticSource{}, nil, cfg)
	fixedNow(t, svc, "2026-02-10") // today is past the grace end

	// Inside the rolling horizon: fine.
	got, err := svc.Eligible(context.Background(), day(t, "2026-02-13"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("2026-02-13 is a Friday within the horizon, expected eligible")
	}

	// Beyond the horizon: the expired grace window no longer helps.
	got, err = svc.Eligible(context.Background(), day(t, "2026-02-20"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("2026-02-20 is past the horizon with grace expired, expected ineligible")
	}
}

func TestEligible_FullyBlockedDay(t *testing.T) {
	blocks := &staticSource{refs: []model.SlotRef{
		ref(t, "2026-01-13", "10:00"),
		ref(t, "2026-01-13", "11:00"),
		ref(t, "2026-01-13", "12:00"),
	}}
	svc := New(&staticSource{}, blocks, nil, testSchedule())
	fixedNow(t, svc, "2026-01-10")

	got, err := svc.Eligible(context.Background(), day(t, "2026-01-13"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("every slot of 2026-01-13 is blocked, expected ineligible")
	}
}

func TestEligible_StoreErrorSurfaces(t *testing.T) {
	boom := errors.New("connection refused")
	svc := New(&staticSource{}, &staticSource{err: boom}, nil, testSchedule())
	fixedNow(t, svc, "2026-01-10")

	_, err := svc.Eligible(context.Background(), day(t, "2026-01-13"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
}
