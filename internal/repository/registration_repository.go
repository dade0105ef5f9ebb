package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/munihub/civic-portal/internal/model"
)

// RegistrationRepo provides data access to the registrations table.
// Besides user_id, every row carries a nullable active_user_id column
// that duplicates user_id while the registration is CONFIRMED and is
// NULLed on cancellation.  The unique (item_id, active_user_id) index
// over that column is the authoritative backstop against two concurrent
// confirmed registrations for the same citizen: NULLs never collide, so
// cancelled rows do not block a later re-registration.
type RegistrationRepo struct {
	db *sql.DB
}

// NewRegistrationRepo returns a RegistrationRepo bound to the database.
func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{db: db} }

const registrationColumns = `id, item_id, user_id, protocol_number, status, form_data, cancelled_at, created_at`

// Insert stores a new confirmed registration and populates its ID.  A
// duplicate-key violation on (item_id, active_user_id) is translated to
// ErrDuplicateActive so the caller never sees a raw driver error.
func (r *RegistrationRepo) Insert(ctx context.Context, reg *model.Registration) error {
	formJSON, err := json.Marshal(reg.FormData)
	if err != nil {
		return err
	}
	res, err := q(ctx, r.db).ExecContext(ctx,
		`INSERT INTO registrations
			(item_id, user_id, active_user_id, protocol_number, status, form_data)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		reg.ItemID, reg.UserID, reg.UserID, reg.ProtocolNumber, model.RegistrationConfirmed, formJSON)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrDuplicateActive
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	reg.ID = uint64(id)
	reg.Status = model.RegistrationConfirmed
	return nil
}

// CountConfirmed returns the number of confirmed registrations for an
// item.  Run inside the registration transaction this is the capacity
// recheck; outside it the value is advisory only.
func (r *RegistrationRepo) CountConfirmed(ctx context.Context, itemID uint64) (int, error) {
	var n int
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE item_id = ? AND status = ?`,
		itemID, model.RegistrationConfirmed).Scan(&n)
	return n, err
}

// HasActive reports whether the user already holds a confirmed
// registration for the item.
func (r *RegistrationRepo) HasActive(ctx context.Context, itemID, userID uint64) (bool, error) {
	var one int
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT 1 FROM registrations WHERE item_id = ? AND user_id = ? AND status = ? LIMIT 1`,
		itemID, userID, model.RegistrationConfirmed).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetForUser loads a registration restricted to its owner.  A row owned
// by someone else is indistinguishable from a missing one.
func (r *RegistrationRepo) GetForUser(ctx context.Context, id, userID uint64) (*model.Registration, error) {
	row := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE id = ? AND user_id = ?`,
		id, userID)
	reg, err := scanRegistration(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRegistrationNotFound
	}
	return reg, err
}

// ListByUser returns the user's registrations newest-first with a total
// count for pagination.
func (r *RegistrationRepo) ListByUser(ctx context.Context, userID uint64, page, limit int) ([]model.Registration, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var total int
	if err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := q(ctx, r.db).QueryContext(ctx,
		`SELECT `+registrationColumns+` FROM registrations
		 WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	regs := make([]model.Registration, 0, limit)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, 0, err
		}
		regs = append(regs, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

// Cancel marks one registration cancelled and releases its slot by
// clearing active_user_id.
func (r *RegistrationRepo) Cancel(ctx context.Context, id uint64, at time.Time) error {
	res, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE registrations
		 SET status = ?, cancelled_at = ?, active_user_id = NULL
		 WHERE id = ? AND status = ?`,
		model.RegistrationCancelled, at.UTC().Format("2006-01-02 15:04:05"),
		id, model.RegistrationConfirmed)
	if err != nil {
		return err
	}
	return requireRow(res, ErrRegistrationNotFound)
}

// CancelAllForItem cancels every confirmed registration of an item in
// one statement.  Used by the cascading item cancellation; the caller
// wraps it in the same transaction as the item status change.
func (r *RegistrationRepo) CancelAllForItem(ctx context.Context, itemID uint64, at time.Time) (int64, error) {
	res, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE registrations
		 SET status = ?, cancelled_at = ?, active_user_id = NULL
		 WHERE item_id = ? AND status = ?`,
		model.RegistrationCancelled, at.UTC().Format("2006-01-02 15:04:05"),
		itemID, model.RegistrationConfirmed)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// requireRow converts a zero-rows-affected update into notFound.
func requireRow(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func scanRegistration(s rowScanner) (*model.Registration, error) {
	var (
		reg         model.Registration
		formJSON    []byte
		cancelledAt sql.NullTime
	)
	err := s.Scan(
		&reg.ID, &reg.ItemID, &reg.UserID, &reg.ProtocolNumber,
		&reg.Status, &formJSON, &cancelledAt, &reg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time.UTC()
		reg.CancelledAt = &t
	}
	if len(formJSON) > 0 {
		if err := json.Unmarshal(formJSON, &reg.FormData); err != nil {
			return nil, err
		}
	}
	return &reg, nil
}
