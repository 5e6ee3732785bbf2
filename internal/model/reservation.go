package model

import "time"

// Reservation records a confirmed customer appointment for one
// (date, time-slot) pair.  Under correct operation at most one
// reservation exists per pair, but the store enforces no uniqueness
// constraint: the invariant is upheld only by the booking commit
// protocol's pre-insert check and can be violated by a true
// concurrent race.  Reservations are created by the commit protocol,
// deleted by an administrator and never mutated in place.
//
// Fields:
//
//	ID        – primary key identifier.
//	Name      – customer name.
//	Email     – customer e-mail address.
//	Phone     – customer phone number.
//	Service   – label of the booked treatment.
//	Date      – calendar date of the appointment; date-only semantics,
//	            pinned to 12:00 UTC so the day never shifts under
//	            timezone conversion.
//	Time      – time-slot label, one of the configured enumeration.
//	CreatedAt – creation timestamp.
type Reservation struct {
	ID        uint64    // reservations.id
	Name      string    // reservations.name
	Email     string    // reservations.email
	Phone     string    // reservations.phone
	Service   string    // reservations.service
	Date      time.Time // reservations.date
	Time      string    // reservations.time
	CreatedAt time.Time // reservations.created_at
}

// SlotRef is the PII-free projection of a reservation or block onto the
// (date, time-slot) dimension.  The anonymous booking widget computes
// availability exclusively from SlotRefs so customer data never reaches
// unauthenticated clients.
type SlotRef struct {
	Date time.Time // calendar date, date-only semantics
	Time string    // time-slot label
}
