package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/mkaufhold/headspa-booking/internal/model"
)

func TestNextAvailable_FirstFreeSlotOnEarliestBusinessDay(t *testing.T) {
	// 2026-01-13 is the first business day after "today"; its first two
	// slots are taken.
	reservations := &staticSource{refs: []model.SlotRef{
		ref(t, "2026-01-13", "10:00"),
	}}
	blocks := &staticSource{refs: []model.SlotRef{
		ref(t, "2026-01-13", "11:00"),
	}}
	svc := New(reservations, blocks, nil, testSchedule())
	fixedNow(t, svc, "2026-01-10")

	got, slot, err := svc.NextAvailable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if DateKey(got) != "2026-01-13" || slot != "12:00" {
		t.Fatalf("expected 2026-01-13 12:00, got %s %s", DateKey(got), slot)
	}
	if got.Hour() != 12 {
		t.Fatalf("expected the returned date pinned to noon, got hour %d", got.Hour())
	}
}

func TestNextAvailable_SkipsFullyBookedDays(t *testing.T) {
	blocks := &staticSource{refs: []model.SlotRef{
		ref(t, "2026-01-13", "10:00"),
		ref(t, "2026-01-13", "11:00"),
		ref(t, "2026-01-13", "12:00"),
	}}
	svc := New(&staticSource{}, blocks, nil, testSchedule())
	fixedNow(t, svc, "2026-01-10")

	got, slot, err := svc.NextAvailable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if DateKey(got) != "2026-01-16" || slot != "10:00" {
		t.Fatalf("expected 2026-01-16 10:00, got %s %s", DateKey(got), slot)
	}
}

func TestNextAvailable_StartsAtLaunchBeforeOpening(t *testing.T) {
	svc := New(&staticSource{}, &staticSource{}, nil, testSchedule())
	fixedNow(t, svc, "2025-12-01")

	got, slot, err := svc.NextAvailable(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// First business day on or after the 2026-01-08 launch.
	if DateKey(got) != "2026-01-09" || slot != "10:00" {
		t.Fatalf("expected 2026-01-09 10:00, got %s %s", DateKey(got), slot)
	}
}

func TestNextAvailable_ExhaustedHorizon(t *testing.T) {
	cfg := testSchedule()
	cfg.SearchHorizonDays = 5 // 2026-01-10 .. 2026-01-15, one business day
	blocks := &staticSource{refs: []model.SlotRef{
		ref(t, "2026-01-13", "10:00"),
		ref(t, "2026-01-13", "11:00"),
		ref(t, "2026-01-13", "12:00"),
	}}
	svc := New(&staticSource{}, blocks, nil, cfg)
	fixedNow(t, svc, "2026-01-10")

	_, _, err := svc.NextAvailable(context.Background())
	if !errors.Is(err, ErrNoAvailability) {
		t.Fatalf("expected ErrNoAvailability, got %v", err)
	}
}

func TestNextAvailable_StoreErrorSurfaces(t *testing.T) {
	boom := errors.New("connection refused")
	svc := New(&staticSource{err: boom}, &staticSource{}, nil, testSchedule())
	fixedNow(t, svc, "2026-01-10")

	_, _, err := svc.NextAvailable(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to surface instead of skipping the day, got %v", err)
	}
}
