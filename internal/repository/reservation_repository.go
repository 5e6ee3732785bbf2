package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/mkaufhold/headspa-booking/internal/model"
)

// ReservationRepo provides access to the reservations table and to the
// public_reservations view.  The view projects reservations onto
// (date, time) only; the anonymous booking widget's availability path
// must read through it so no customer data leaks to unauthenticated
// clients.  All timestamp fields are stored in UTC with appointment
// dates pinned to 12:00.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Create inserts a new reservation and populates the generated ID and
// creation timestamp on the provided record.  No uniqueness check is
// performed here; the booking commit protocol re-validates availability
// immediately before calling Create, which narrows but does not close
// the double-booking race window.
func (r *ReservationRepo) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations (name, email, phone, service, date, time) VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, res.Name, res.Email, res.Phone, res.Service, res.Date, res.Time)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the created_at default
	const sel = `SELECT created_at FROM reservations WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt)
}

// ListAll returns every reservation ordered by appointment date and slot.
// It is used by the administrator dashboard only and therefore exposes
// the full customer fields.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
	const q = `SELECT id, name, email, phone, service, date, time, created_at
	           FROM reservations
	           ORDER BY date, time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// ListByDate returns the reservations whose appointment falls on the
// calendar day of the given date.  Matching compares the stored
// DATETIME's date part so the 12:00 pinning never excludes a row.
func (r *ReservationRepo) ListByDate(ctx context.Context, day time.Time) ([]model.Reservation, error) {
	const q = `SELECT id, name, email, phone, service, date, time, created_at
	           FROM reservations
	           WHERE DATE(date) = ?
	           ORDER BY time`
	rows, err := r.db.QueryContext(ctx, q, day.UTC().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanReservations(rows)
}

// SlotRefs returns the (date, time) pairs of all reservations read
// through the public_reservations view.  Errors propagate to the
// caller; a failed fetch must never be reported as an empty result.
func (r *ReservationRepo) SlotRefs(ctx context.Context) ([]model.SlotRef, error) {
	const q = `SELECT date, time FROM public_reservations`
	return r.querySlotRefs(ctx, q)
}

// AllSlotRefs returns the (date, time) pairs of all reservations read
// from the reservations table itself.  The booking commit protocol's
// pre-insert check uses this rather than the public view so the check
// and the insert observe the same collection.
func (r *ReservationRepo) AllSlotRefs(ctx context.Context) ([]model.SlotRef, error) {
	const q = `SELECT date, time FROM reservations`
	return r.querySlotRefs(ctx, q)
}

// DeleteByID removes a reservation.  ErrNotFound is returned when no
// row with the given ID exists.
func (r *ReservationRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM reservations WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ReservationRepo) querySlotRefs(ctx context.Context, q string) ([]model.SlotRef, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	refs := make([]model.SlotRef, 0)
	for rows.Next() {
		var ref model.SlotRef
		if err := rows.Scan(&ref.Date, &ref.Time); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return refs, nil
}

func scanReservations(rows *sql.Rows) ([]model.Reservation, error) {
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var res model.Reservation
		if err := rows.Scan(&res.ID, &res.Name, &res.Email, &res.Phone, &res.Service, &res.Date, &res.Time, &res.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
