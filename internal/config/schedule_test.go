package config

import (
	"testing"
	"time"
)

func TestLoadSchedule_Defaults(t *testing.T) {
	s := LoadSchedule()

	if len(s.Slots) != 10 {
		t.Fatalf("expected 10 default slots, got %d", len(s.Slots))
	}
	if s.Slots[0] != "10:00" || s.Slots[9] != "19:00" {
		t.Fatalf("unexpected slot bounds: %q .. %q", s.Slots[0], s.Slots[9])
	}
	if !s.IsBusinessDay(time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)) { // Tuesday
		t.Fatalf("Tuesday must be a business day by default")
	}
	if !s.IsBusinessDay(time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC)) { // Friday
		t.Fatalf("Friday must be a business day by default")
	}
	if s.IsBusinessDay(time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)) { // Wednesday
		t.Fatalf("Wednesday must not be a business day by default")
	}
	if got := s.LaunchDate.Format("2006-01-02"); got != "2026-01-08" {
		t.Fatalf("unexpected launch date %s", got)
	}
	if got := s.GracePeriodEnd.Format("2006-01-02"); got != "2026-02-01" {
		t.Fatalf("unexpected grace period end %s", got)
	}
	if s.HorizonDays != 28 || s.SearchHorizonDays != 365 {
		t.Fatalf("unexpected horizons %d/%d", s.HorizonDays, s.SearchHorizonDays)
	}
}

func TestLoadSchedule_Overrides(t *testing.T) {
	t.Setenv("BOOKING_SLOTS", "09:00, 10:30 ,12:00")
	t.Setenv("BOOKING_BUSINESS_DAYS", "1,3,6")
	t.Setenv("BOOKING_HORIZON_DAYS", "14")

	s := LoadSchedule()
	if len(s.Slots) != 3 || s.Slots[1] != "10:30" {
		t.Fatalf("slot list not trimmed and split correctly: %v", s.Slots)
	}
	if !s.IsBusinessDay(time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)) { // Monday
		t.Fatalf("Monday should be enabled by the override")
	}
	if s.IsBusinessDay(time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)) { // Tuesday
		t.Fatalf("Tuesday should be disabled by the override")
	}
	if s.HorizonDays != 14 {
		t.Fatalf("expected horizon override 14, got %d", s.HorizonDays)
	}
}

func TestHasSlot(t *testing.T) {
	s := LoadSchedule()
	if !s.HasSlot("10:00") {
		t.Fatalf("10:00 is a configured slot")
	}
	if s.HasSlot("10:30") {
		t.Fatalf("10:30 is not a configured slot")
	}
}
