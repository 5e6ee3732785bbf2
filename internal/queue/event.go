// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a customer booking has been
// committed.  It contains enough information for downstream consumers
// to log or notify without querying the primary database.
type BookingCreatedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Service       string `json:"service"`
	Date          string `json:"date"` // YYYY-MM-DD
	Time          string `json:"time"` // slot label
	CreatedAt     string `json:"created_at"`
}
