package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkaufhold/headspa-booking/internal/availability"
	"github.com/mkaufhold/headspa-booking/internal/config"
	"github.com/mkaufhold/headspa-booking/internal/event"
	"github.com/mkaufhold/headspa-booking/internal/model"
)

type fakeReservations struct {
	refs      []model.SlotRef
	readErr   error
	createErr error
	reads     int
	created   []*model.Reservation
}

func (f *fakeReservations) AllSlotRefs(ctx context.Context) ([]model.SlotRef, error) {
	f.reads++
	return f.refs, f.readErr
}

func (f *fakeReservations) Create(ctx context.Context, res *model.Reservation) error {
	if f.createErr != nil {
		return f.createErr
	}
	res.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, res)
	return nil
}

type fakeBlocks struct {
	refs  []model.SlotRef
	reads int
}

func (f *fakeBlocks) SlotRefs(ctx context.Context) ([]model.SlotRef, error) {
	f.reads++
	return f.refs, nil
}

func testSchedule() config.Schedule {
	return config.Schedule{
		Slots: []string{"10:00", "11:00", "12:00"},
		BusinessDays: map[time.Weekday]struct{}{
			time.Tuesday: {},
			time.Friday:  {},
		},
		LaunchDate:        time.Date(2026, 1, 8, 12, 0, 0, 0, time.UTC),
		GracePeriodEnd:    time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		HorizonDays:       28,
		SearchHorizonDays: 365,
	}
}

func validRequest(t *testing.T) Request {
	t.Helper()
	return Request{
		Date:    time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC),
		Time:    "11:00",
		Service: "Signature Head Spa",
		Name:    "Jamie Doe",
		Email:   "jamie@example.com",
		Phone:   "+49 170 1234567",
	}
}

func TestBook_MissingFieldsRejectedWithoutStoreAccess(t *testing.T) {
	res := &fakeReservations{}
	blocks := &fakeBlocks{}
	svc := New(res, blocks, nil, event.NewBus(), testSchedule())

	mutate := []func(*Request){
		func(r *Request) { r.Date = time.Time{} },
		func(r *Request) { r.Time = "  " },
		func(r *Request) { r.Service = "" },
		func(r *Request) { r.Name = "" },
		func(r *Request) { r.Email = "" },
		func(r *Request) { r.Phone = "" },
	}
	for i, m := range mutate {
		req := validRequest(t)
		m(&req)
		if _, err := svc.Book(context.Background(), req); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("case %d: expected ErrMissingFields, got %v", i, err)
		}
	}
	if res.reads != 0 || blocks.reads != 0 || len(res.created) != 0 {
		t.Fatalf("validation failures must not touch the store: reads=%d/%d created=%d",
			res.reads, blocks.reads, len(res.created))
	}
}

func TestBook_UnknownSlotRejectedWithoutStoreAccess(t *testing.T) {
	res := &fakeReservations{}
	svc := New(res, &fakeBlocks{}, nil, event.NewBus(), testSchedule())

	req := validRequest(t)
	req.Time = "09:00"
	if _, err := svc.Book(context.Background(), req); !errors.Is(err, ErrUnknownSlot) {
		t.Fatalf("expected ErrUnknownSlot, got %v", err)
	}
	if res.reads != 0 {
		t.Fatalf("unknown slot must be rejected before the store read")
	}
}

func TestBook_ConflictWithReservation(t *testing.T) {
	res := &fakeReservations{refs: []model.SlotRef{
		{Date: time.Date(2026, 1, 13, 12, 0, 0, 0, time.UTC), Time: "11:00"},
	}}
	svc := New(res, &fakeBlocks{}, nil, event.NewBus(), testSchedule())

	if _, err := svc.Book(context.Background(), validRequest(t)); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if len(res.created) != 0 {
		t.Fatalf("a conflicting request must not insert")
	}
}

func TestBook_ConflictWithBlock(t *testing.T) {
	blocks := &fakeBlocks{refs: []model.SlotRef{
		{Date: time.Date(2026, 1, 13, 12, 0, 0, 0, time.UTC), Time: "11:00"},
	}}
	res := &fakeReservations{}
	svc := New(res, blocks, nil, event.NewBus(), testSchedule())

	if _, err := svc.Book(context.Background(), validRequest(t)); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
	if len(res.created) != 0 {
		t.Fatalf("a blocked slot must not be booked")
	}
}

func TestBook_SuccessStoresNoonDateAndPublishes(t *testing.T) {
	res := &fakeReservations{}
	bus := event.NewBus()
	events, cancel := bus.Subscribe(4)
	defer cancel()

	svc := New(res, &fakeBlocks{}, nil, bus, testSchedule())
	req := validRequest(t)
	req.Name = "  Jamie Doe  " // whitespace is trimmed before storing

	got, err := svc.Book(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == 0 {
		t.Fatalf("expected the store-assigned id on the result")
	}
	if got.Name != "Jamie Doe" {
		t.Fatalf("expected trimmed name, got %q", got.Name)
	}
	if got.Date.Hour() != 12 {
		t.Fatalf("expected the stored date pinned to noon, got %s", got.Date)
	}
	if availability.DateKey(got.Date) != "2026-01-13" {
		t.Fatalf("noon pinning changed the calendar day: %s", got.Date)
	}

	select {
	case ev := <-events:
		created, ok := ev.(event.BookingCreated)
		if !ok {
			t.Fatalf("expected BookingCreated, got %T", ev)
		}
		if created.ReservationID != got.ID || created.Date != "2026-01-13" || created.Time != "11:00" {
			t.Fatalf("unexpected event payload: %+v", created)
		}
	default:
		t.Fatalf("expected a BookingCreated notification on the bus")
	}
}

func TestBook_CreateFailureWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	res := &fakeReservations{createErr: boom}
	bus := event.NewBus()
	events, cancel := bus.Subscribe(4)
	defer cancel()

	svc := New(res, &fakeBlocks{}, nil, bus, testSchedule())
	if _, err := svc.Book(context.Background(), validRequest(t)); !errors.Is(err, boom) {
		t.Fatalf("expected the store error to surface, got %v", err)
	}

	select {
	case ev := <-events:
		t.Fatalf("no event may be published for a failed insert, got %T", ev)
	default:
	}
}
