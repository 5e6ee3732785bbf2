package model

import "time"

// Block marks one (date, time-slot) pair as unavailable for customer
// booking by administrator decision.  At most one block should exist
// per pair; creation de-duplicates against existing blocks client-side
// because the store carries no uniqueness constraint.  Blocks are
// created individually, as a full-day batch or as a date-range batch,
// and removed individually.
//
// Fields:
//
//	ID        – primary key identifier.
//	Date      – calendar date, pinned to 12:00 UTC like reservations.
//	Time      – time-slot label being blocked.
//	Reason    – optional free-text note for the dashboard (nullable).
//	CreatedAt – creation timestamp.
type Block struct {
	ID        uint64    // blocks.id
	Date      time.Time // blocks.date
	Time      string    // blocks.time
	Reason    *string   // blocks.reason (nullable)
	CreatedAt time.Time // blocks.created_at
}
