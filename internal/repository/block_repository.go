package repository

import (
	"context"
	"database/sql"

	"github.com/mkaufhold/headspa-booking/internal/model"
)

// BlockRepo provides access to the blocks table holding
// administrator-imposed unavailability records.  De-duplication of
// (date, time) pairs happens in the blocklist service before writing;
// the table itself carries no uniqueness constraint.
type BlockRepo struct {
	db *sql.DB
}

// NewBlockRepo returns a new BlockRepo bound to the given database.
func NewBlockRepo(db *sql.DB) *BlockRepo { return &BlockRepo{db: db} }

// ListAll returns every block ordered by date and slot for the
// administrator dashboard.
func (r *BlockRepo) ListAll(ctx context.Context) ([]model.Block, error) {
	const q = `SELECT id, date, time, reason, created_at FROM blocks ORDER BY date, time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Block, 0)
	for rows.Next() {
		var b model.Block
		var reason sql.NullString
		if err := rows.Scan(&b.ID, &b.Date, &b.Time, &reason, &b.CreatedAt); err != nil {
			return nil, err
		}
		if reason.Valid {
			v := reason.String
			b.Reason = &v
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SlotRefs returns the (date, time) pairs of all blocks.  Both the
// availability query and the blocklist service's de-duplication pass
// read from here.
func (r *BlockRepo) SlotRefs(ctx context.Context) ([]model.SlotRef, error) {
	const q = `SELECT date, time FROM blocks`
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

// CreateBulk inserts multiple blocks in a single multi-row statement.
// Passing an empty slice has no effect and returns nil.  Generated IDs
// are not read back; callers re-query when they need them.
func (r *BlockRepo) CreateBulk(ctx context.Context, blocks []model.Block) error {
	if len(blocks) == 0 {
		return nil
	}
	query := `INSERT INTO blocks (date, time, reason) VALUES `
	args := make([]interface{}, 0, len(blocks)*3)
	for i, b := range blocks {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		var reason interface{}
		if b.Reason != nil {
			reason = *b.Reason
		}
		args = append(args, b.Date, b.Time, reason)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteByID removes a block.  ErrNotFound is returned when no row
// with the given ID exists.
func (r *BlockRepo) DeleteByID(ctx context.Context, id uint64) error {
	const q = `DELETE FROM blocks WHERE id = ?`
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
