// Package booking implements the commit protocol for customer
// bookings: input validation, the pre-insert availability re-check,
// the insert itself and the success/failure notifications.
package booking

import "errors"

// ErrMissingFields is returned when a required booking field is empty.
// Validation happens before any store access; the user is asked to
// fill in all fields and the operation is safely retryable.
var ErrMissingFields = errors.New("all booking fields are required")

// ErrSlotTaken is returned when the pre-insert re-check finds the
// chosen slot already reserved or blocked.  The user is prompted to
// pick another slot; handlers translate this into an HTTP 409.
var ErrSlotTaken = errors.New("time slot is no longer available")

// ErrUnknownSlot is returned when the requested time label is not one
// of the configured slots.  Like ErrMissingFields it is detected
// without contacting the store.
var ErrUnknownSlot = errors.New("unknown time slot")
