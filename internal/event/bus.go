// Package event provides the in-process notification channel connecting
// the booking and blocklist services to the views and forwarders that
// cache or export availability state.  It replaces ad hoc global event
// dispatch with an explicitly passed bus and a closed set of typed
// notification variants.
package event

import "sync"

// Event is one of the notification variants carried by the bus.  The
// set is closed: BookingCreated and BlocksChanged are the only
// implementations.
type Event interface {
	EventName() string
}

// BookingCreated is broadcast after a reservation has been committed.
// The payload lets subscribers (dashboard refresh, external queue
// forwarder) act without re-reading the store.
type BookingCreated struct {
	ReservationID uint64
	Name          string
	Email         string
	Service       string
	Date          string // canonical YYYY-MM-DD
	Time          string
}

// EventName identifies the variant on the wire and in logs.
func (BookingCreated) EventName() string { return "booking.created" }

// BlocksChanged is broadcast after any successful block mutation (and
// after an administrator deletes a reservation, which equally changes
// availability).  It carries no payload; subscribers re-query fresh
// state.
type BlocksChanged struct{}

// EventName identifies the variant on the wire and in logs.
func (BlocksChanged) EventName() string { return "blocks.changed" }

// Bus fans events out to the currently subscribed channels.  There is
// no queuing: an event published while no subscriber is active is
// lost, which is acceptable because subscribers re-query fresh state
// when they activate.  Publish never blocks; a subscriber whose buffer
// is full misses the event and catches up on its next full re-query.
type Bus struct {
	mu   sync.RWMutex
	subs map[uint64]chan Event
	next uint64
}

// NewBus returns an empty bus ready for use.
func NewBus() *Bus {
	return &Bus{subs: make(map[uint64]chan Event)}
}

// Subscribe registers a new subscriber and returns its receive channel
// together with a cancel function.  Cancel must be called when the
// subscriber becomes inactive; it closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers ev to every active subscriber without blocking.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// subscriber is lagging; it will re-query on its own
		}
	}
}
