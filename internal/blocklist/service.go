// Package blocklist implements administrator block management: marking
// single slots, whole days or date ranges as unavailable, and freeing
// them again.  All creation paths query existing blocks once up front
// and de-duplicate client-side before writing, because the store has
// no uniqueness constraint to lean on.
package blocklist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mkaufhold/headspa-booking/internal/availability"
	"github.com/mkaufhold/headspa-booking/internal/config"
	"github.com/mkaufhold/headspa-booking/internal/event"
	"github.com/mkaufhold/headspa-booking/internal/model"
)

// ErrAlreadyBlocked is returned when the targeted slot, day or range is
// already fully covered by existing blocks; nothing is written.
var ErrAlreadyBlocked = errors.New("already blocked")

// ErrInvalidRange is returned when a range's end date precedes its start.
var ErrInvalidRange = errors.New("end date before start date")

// Store is the slice of the block repository the service needs.
type Store interface {
	SlotRefs(ctx context.Context) ([]model.SlotRef, error)
	CreateBulk(ctx context.Context, blocks []model.Block) error
	DeleteByID(ctx context.Context, id uint64) error
}

// Service creates and removes administrator blocks and broadcasts a
// BlocksChanged notification after every successful mutation so
// dependent views recompute their availability snapshots.
type Service struct {
	store Store
	bus   *event.Bus
	cfg   config.Schedule
}

// New constructs a blocklist Service.
func New(store Store, bus *event.Bus, cfg config.Schedule) *Service {
	return &Service{store: store, bus: bus, cfg: cfg}
}

// BlockSlot blocks a single (date, slot) pair.  ErrAlreadyBlocked is
// reported without writing when the pair is blocked already.
func (s *Service) BlockSlot(ctx context.Context, day time.Time, slot string, reason *string) error {
	existing, err := s.existingKeys(ctx)
	if err != nil {
		return err
	}
	if _, ok := existing[blockKey(day, slot)]; ok {
		return ErrAlreadyBlocked
	}
	b := model.Block{Date: availability.Noon(day), Time: slot, Reason: reason}
	if err := s.store.CreateBulk(ctx, []model.Block{b}); err != nil {
		return fmt.Errorf("create block: %w", err)
	}
	s.bus.Publish(event.BlocksChanged{})
	return nil
}

// BlockDay blocks every configured slot of one day that is not blocked
// yet and returns the number of blocks inserted.  ErrAlreadyBlocked is
// reported when no slot remains.
func (s *Service) BlockDay(ctx context.Context, day time.Time) (int, error) {
	existing, err := s.existingKeys(ctx)
	if err != nil {
		return 0, err
	}
	var toInsert []model.Block
	for _, slot := range s.cfg.Slots {
		if _, ok := existing[blockKey(day, slot)]; ok {
			continue
		}
		toInsert = append(toInsert, model.Block{Date: availability.Noon(day), Time: slot})
	}
	if len(toInsert) == 0 {
		return 0, ErrAlreadyBlocked
	}
	if err := s.store.CreateBulk(ctx, toInsert); err != nil {
		return 0, fmt.Errorf("create blocks: %w", err)
	}
	s.bus.Publish(event.BlocksChanged{})
	return len(toInsert), nil
}

// BlockRange blocks every configured slot of every day in the
// inclusive [start, end] range, filtering the whole batch against
// existing blocks before a single bulk write.  It returns the number
// of days in the range and the number of blocks inserted.
func (s *Service) BlockRange(ctx context.Context, start, end time.Time) (days, inserted int, err error) {
	first := availability.Midnight(start)
	last := availability.Midnight(end)
	if last.Before(first) {
		return 0, 0, ErrInvalidRange
	}
	existing, err := s.existingKeys(ctx)
	if err != nil {
		return 0, 0, err
	}
	var toInsert []model.Block
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		days++
		for _, slot := range s.cfg.Slots {
			if _, ok := existing[blockKey(day, slot)]; ok {
				continue
			}
			toInsert = append(toInsert, model.Block{Date: availability.Noon(day), Time: slot})
		}
	}
	if len(toInsert) == 0 {
		return days, 0, ErrAlreadyBlocked
	}
	if err := s.store.CreateBulk(ctx, toInsert); err != nil {
		return days, 0, fmt.Errorf("create blocks: %w", err)
	}
	s.bus.Publish(event.BlocksChanged{})
	return days, len(toInsert), nil
}

// Unblock removes one block by identifier.
func (s *Service) Unblock(ctx context.Context, id uint64) error {
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.bus.Publish(event.BlocksChanged{})
	return nil
}

// UnblockMany removes several blocks by iterating single deletions and
// returns how many were removed.  It stops at the first store error.
func (s *Service) UnblockMany(ctx context.Context, ids []uint64) (int, error) {
	removed := 0
	for _, id := range ids {
		if err := s.store.DeleteByID(ctx, id); err != nil {
			if removed > 0 {
				s.bus.Publish(event.BlocksChanged{})
			}
			return removed, err
		}
		removed++
	}
	if removed > 0 {
		s.bus.Publish(event.BlocksChanged{})
	}
	return removed, nil
}

// existingKeys loads the (date, slot) keys of all current blocks once,
// for the client-side de-duplication pass.
func (s *Service) existingKeys(ctx context.Context) (map[string]struct{}, error) {
	refs, err := s.store.SlotRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch blocks: %w", err)
	}
	keys := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		keys[blockKey(ref.Date, ref.Time)] = struct{}{}
	}
	return keys, nil
}

func blockKey(day time.Time, slot string) string {
	return availability.DateKey(day) + "|" + slot
}
