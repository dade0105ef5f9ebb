package repository

import (
	"context"
	"database/sql"
	"errors"
)

// IntentRepo provides data access to attendance_intents.  Rows carry no
// state beyond the (event_id, user_id) pair, so create and delete are
// idempotent by construction: INSERT IGNORE swallows the duplicate-key
// case and a missing row makes delete a no-op.
type IntentRepo struct {
	db *sql.DB
}

// NewIntentRepo returns an IntentRepo bound to the given database.
func NewIntentRepo(db *sql.DB) *IntentRepo { return &IntentRepo{db: db} }

// Upsert records the user's interest in an event.  Returns true when a
// new row was written, false when the intent already existed.
func (r *IntentRepo) Upsert(ctx context.Context, eventID, userID uint64) (bool, error) {
	res, err := q(ctx, r.db).ExecContext(ctx,
		`INSERT IGNORE INTO attendance_intents (event_id, user_id) VALUES (?, ?)`,
		eventID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes the user's interest.  Returns true when a row was
// actually removed.
func (r *IntentRepo) Delete(ctx context.Context, eventID, userID uint64) (bool, error) {
	res, err := q(ctx, r.db).ExecContext(ctx,
		`DELETE FROM attendance_intents WHERE event_id = ? AND user_id = ?`,
		eventID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Exists reports whether the user has an intent on the event.
func (r *IntentRepo) Exists(ctx context.Context, eventID, userID uint64) (bool, error) {
	var one int
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT 1 FROM attendance_intents WHERE event_id = ? AND user_id = ? LIMIT 1`,
		eventID, userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Count returns the number of intents recorded for an event.
func (r *IntentRepo) Count(ctx context.Context, eventID uint64) (int, error) {
	var n int
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance_intents WHERE event_id = ?`, eventID).Scan(&n)
	return n, err
}
