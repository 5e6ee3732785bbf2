package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mkaufhold/headspa-booking/internal/availability"
	"github.com/mkaufhold/headspa-booking/internal/config"
	"github.com/mkaufhold/headspa-booking/internal/event"
	"github.com/mkaufhold/headspa-booking/internal/model"
)

// ReservationStore is the write side of the commit protocol.  The
// pre-insert check reads the full reservations table (not the public
// view) so the check and the insert observe the same collection.
type ReservationStore interface {
	AllSlotRefs(ctx context.Context) ([]model.SlotRef, error)
	Create(ctx context.Context, res *model.Reservation) error
}

// BlockSource yields the (date, time) pairs of administrator blocks.
type BlockSource interface {
	SlotRefs(ctx context.Context) ([]model.SlotRef, error)
}

// Request carries one booking attempt.  Date has date-only semantics;
// the service pins it to noon before storing.
type Request struct {
	Date    time.Time
	Time    string
	Service string
	Name    string
	Email   string
	Phone   string
}

// Service runs the booking commit protocol.  The re-validation read
// completes before the insert is issued, which mitigates - but cannot
// eliminate - the race where another session books the same slot
// between render and submit.  Two truly concurrent commits can both
// pass the check and both insert; the store enforces no uniqueness
// constraint, so double-booking remains a documented risk of this
// design rather than a bug to patch here.
type Service struct {
	reservations ReservationStore
	blocks       BlockSource
	cache        *availability.Cache // may be nil
	bus          *event.Bus
	cfg          config.Schedule
}

// New constructs a booking Service.  cache may be nil; bus must not be.
func New(reservations ReservationStore, blocks BlockSource, cache *availability.Cache, bus *event.Bus, cfg config.Schedule) *Service {
	return &Service{
		reservations: reservations,
		blocks:       blocks,
		cache:        cache,
		bus:          bus,
		cfg:          cfg,
	}
}

// Book validates the request, re-checks availability and inserts the
// reservation.  On success the new reservation is returned, the slot
// is merged into the cached unavailable set and a BookingCreated
// notification is broadcast (fire-and-forget).  ErrMissingFields and
// ErrUnknownSlot are detected without any store access; ErrSlotTaken
// reports a conflict; any other error is a store failure the caller
// should present as a generic retry prompt while keeping the user's
// input intact.
func (s *Service) Book(ctx context.Context, req Request) (*model.Reservation, error) {
	if req.Date.IsZero() ||
		strings.TrimSpace(req.Time) == "" ||
		strings.TrimSpace(req.Service) == "" ||
		strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		strings.TrimSpace(req.Phone) == "" {
		return nil, ErrMissingFields
	}
	if !s.cfg.HasSlot(req.Time) {
		return nil, ErrUnknownSlot
	}

	dateKey := availability.DateKey(req.Date)

	// Re-validate immediately before writing.
	resRefs, err := s.reservations.AllSlotRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	blockRefs, err := s.blocks.SlotRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("check availability: %w", err)
	}
	if slotTaken(resRefs, dateKey, req.Time) || slotTaken(blockRefs, dateKey, req.Time) {
		// Reflect the conflict in the cached set so the widget shows
		// the slot as taken without a full re-fetch.
		s.cache.MergeSlot(ctx, dateKey, req.Time)
		return nil, ErrSlotTaken
	}

	res := &model.Reservation{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Service: req.Service,
		Date:    availability.Noon(req.Date),
		Time:    req.Time,
	}
	if err := s.reservations.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	s.cache.MergeSlot(ctx, dateKey, res.Time)
	s.bus.Publish(event.BookingCreated{
		ReservationID: res.ID,
		Name:          res.Name,
		Email:         res.Email,
		Service:       res.Service,
		Date:          dateKey,
		Time:          res.Time,
	})
	return res, nil
}

func slotTaken(refs []model.SlotRef, dateKey, slot string) bool {
	for _, ref := range refs {
		if ref.Time == slot && availability.DateKey(ref.Date) == dateKey {
			return true
		}
	}
	return false
}
