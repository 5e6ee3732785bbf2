// Package availability implements the slot-availability subsystem: the
// per-date unavailable-slot query, the calendar eligibility predicate
// and the next-available search.  It reads reservations and blocks
// through narrow slot projections so the same logic serves both the
// anonymous widget (public_reservations view) and the dashboard.
package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/mkaufhold/headspa-booking/internal/config"
	"github.com/mkaufhold/headspa-booking/internal/model"
)

// SlotSource yields the (date, time) pairs of one collection.  Both
// repositories satisfy it.  A failed fetch must return an error, never
// an empty slice: callers treat errors and "zero unavailable slots"
// very differently.
type SlotSource interface {
	SlotRefs(ctx context.Context) ([]model.SlotRef, error)
}

// Service answers availability questions for the booking calendar.
// All methods are read-only and deterministic for a fixed store state.
type Service struct {
	reservations SlotSource
	blocks       SlotSource
	cache        *Cache // may be nil; reads then go straight to the store
	cfg          config.Schedule
	now          func() time.Time
}

// New constructs a Service.  cache may be nil.
func New(reservations, blocks SlotSource, cache *Cache, cfg config.Schedule) *Service {
	return &Service{
		reservations: reservations,
		blocks:       blocks,
		cache:        cache,
		cfg:          cfg,
		now:          time.Now,
	}
}

// Unavailable returns the time-slot labels that cannot be booked on
// the calendar day of the given date: the de-duplicated union of
// reservation and block slots for that day, in canonical slot order.
// An empty slice means every configured slot is free; an error means
// the answer is unknown and must not be treated as availability.
func (s *Service) Unavailable(ctx context.Context, day time.Time) ([]string, error) {
	key := DateKey(day)
	if slots, ok := s.cache.Get(ctx, key); ok {
		return slots, nil
	}

	resRefs, err := s.reservations.SlotRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch reservations: %w", err)
	}
	blockRefs, err := s.blocks.SlotRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch blocks: %w", err)
	}

	taken := make(map[string]struct{})
	for _, ref := range resRefs {
		if DateKey(ref.Date) == key {
			taken[ref.Time] = struct{}{}
		}
	}
	for _, ref := range blockRefs {
		if DateKey(ref.Date) == key {
			taken[ref.Time] = struct{}{}
		}
	}

	// Project onto the configured enumeration to fix the order.
	out := make([]string, 0, len(taken))
	for _, slot := range s.cfg.Slots {
		if _, ok := taken[slot]; ok {
			out = append(out, slot)
		}
	}
	s.cache.Set(ctx, key, out)
	return out, nil
}

// FullyBlockedDates returns the set of canonical date keys whose
// availability snapshot covers every configured slot.  Those days are
// suppressed from the calendar entirely.
func (s *Service) FullyBlockedDates(ctx context.Context) (map[string]struct{}, error) {
	resRefs, err := s.reservations.SlotRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch reservations: %w", err)
	}
	blockRefs, err := s.blocks.SlotRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch blocks: %w", err)
	}

	// Per-day slot sets, not row counts: duplicate rows for one slot
	// must not make a day look fuller than it is.
	perDay := make(map[string]map[string]struct{})
	add := func(refs []model.SlotRef) {
		for _, ref := range refs {
			if !s.cfg.HasSlot(ref.Time) {
				continue
			}
			key := DateKey(ref.Date)
			if perDay[key] == nil {
				perDay[key] = make(map[string]struct{})
			}
			perDay[key][ref.Time] = struct{}{}
		}
	}
	add(resRefs)
	add(blockRefs)

	full := make(map[string]struct{})
	for key, slots := range perDay {
		if len(slots) >= len(s.cfg.Slots) {
			full[key] = struct{}{}
		}
	}
	return full, nil
}

// Slots exposes the configured enumeration in canonical order, for
// handlers that render the full grid.
func (s *Service) Slots() []string { return s.cfg.Slots }
