package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/munihub/civic-portal/internal/model"
)

// ItemRepo provides CRUD and invariant-bearing writes for content items
// (events and programs, stored in one table discriminated by kind).
// All timestamps are stored in UTC.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo returns an ItemRepo bound to the given database.
func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemColumns = `id, kind, slug, title, description, status, registration_mode,
	total_slots, form_schema, is_highlighted, starts_at, created_at, updated_at`

// Create inserts a new item in DRAFT status and populates its ID.  The
// form schema is serialized to the form_schema JSON column; a nil
// schema is stored as SQL NULL.  Slug collisions surface as
// ErrSlugExists.
func (r *ItemRepo) Create(ctx context.Context, item *model.ContentItem) error {
	var schemaJSON any
	if item.FormSchema != nil {
		b, err := json.Marshal(item.FormSchema)
		if err != nil {
			return err
		}
		schemaJSON = b
	}
	res, err := q(ctx, r.db).ExecContext(ctx,
		`INSERT INTO content_items
			(kind, slug, title, description, status, registration_mode, total_slots, form_schema, starts_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Kind, item.Slug, item.Title, item.Description, item.Status,
		item.RegistrationMode, item.TotalSlots, schemaJSON,
		item.StartsAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrSlugExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	item.ID = uint64(id)
	return nil
}

// GetByID loads an item by primary key.  Returns ErrItemNotFound when
// no row exists.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (*model.ContentItem, error) {
	row := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM content_items WHERE id = ?`, id)
	return scanItem(row)
}

// GetBySlug loads an item by its slug.
func (r *ItemRepo) GetBySlug(ctx context.Context, slug string) (*model.ContentItem, error) {
	row := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM content_items WHERE slug = ?`, slug)
	return scanItem(row)
}

// GetForUpdate loads an item with a row lock.  It must run inside a
// transaction; the lock serializes concurrent capacity checks and
// status changes on the same item.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id uint64) (*model.ContentItem, error) {
	if txFromContext(ctx) == nil {
		return nil, errors.New("repository: GetForUpdate requires a transaction")
	}
	row := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM content_items WHERE id = ? FOR UPDATE`, id)
	return scanItem(row)
}

// ListPublished returns published items newest-start-first with a total
// count for pagination.
func (r *ItemRepo) ListPublished(ctx context.Context, page, limit int) ([]model.ContentItem, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var total int
	if err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM content_items WHERE status = ?`, model.StatusPublished,
	).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := q(ctx, r.db).QueryContext(ctx,
		`SELECT `+itemColumns+` FROM content_items
		 WHERE status = ? ORDER BY starts_at ASC LIMIT ? OFFSET ?`,
		model.StatusPublished, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := make([]model.ContentItem, 0, limit)
	for rows.Next() {
		item, err := scanItemRows(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateStatus sets the item status.  When clearHighlight is true the
// highlight flag is dropped in the same statement, so a program leaving
// PUBLISHED can never stay highlighted even momentarily.  Callers hold
// the row lock from GetForUpdate, so existence is not rechecked here
// (MySQL reports zero affected rows for value-preserving updates).
func (r *ItemRepo) UpdateStatus(ctx context.Context, id uint64, status string, clearHighlight bool) error {
	query := `UPDATE content_items SET status = ? WHERE id = ?`
	if clearHighlight {
		query = `UPDATE content_items SET status = ?, is_highlighted = 0 WHERE id = ?`
	}
	_, err := q(ctx, r.db).ExecContext(ctx, query, status, id)
	return err
}

// UpdateTotalSlots replaces the capacity.  A nil value means unlimited.
// The confirmed-count guard lives in the service layer, inside the same
// transaction as this write.
func (r *ItemRepo) UpdateTotalSlots(ctx context.Context, id uint64, totalSlots *int) error {
	_, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE content_items SET total_slots = ? WHERE id = ?`, totalSlots, id)
	return err
}

// ClearHighlights drops the highlight flag on every program.  Runs as
// the first half of the clear-then-set highlight swap.
func (r *ItemRepo) ClearHighlights(ctx context.Context) error {
	_, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE content_items SET is_highlighted = 0 WHERE kind = ? AND is_highlighted = 1`,
		model.KindProgram)
	return err
}

// SetHighlight sets or clears the highlight flag on one program.
// Clearing an already-clear flag is a no-op, not an error.
func (r *ItemRepo) SetHighlight(ctx context.Context, id uint64, highlighted bool) error {
	_, err := q(ctx, r.db).ExecContext(ctx,
		`UPDATE content_items SET is_highlighted = ? WHERE id = ?`, highlighted, id)
	return err
}

// SlugExists reports whether a slug is already taken.
func (r *ItemRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var one int
	err := q(ctx, r.db).QueryRowContext(ctx,
		`SELECT 1 FROM content_items WHERE slug = ? LIMIT 1`, slug).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row *sql.Row) (*model.ContentItem, error) {
	item, err := scanItemRows(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return item, err
}

func scanItemRows(s rowScanner) (*model.ContentItem, error) {
	var (
		item       model.ContentItem
		totalSlots sql.NullInt64
		schemaJSON []byte
	)
	err := s.Scan(
		&item.ID, &item.Kind, &item.Slug, &item.Title, &item.Description,
		&item.Status, &item.RegistrationMode, &totalSlots, &schemaJSON,
		&item.IsHighlighted, &item.StartsAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if totalSlots.Valid {
		n := int(totalSlots.Int64)
		item.TotalSlots = &n
	}
	if len(schemaJSON) > 0 {
		if err := json.Unmarshal(schemaJSON, &item.FormSchema); err != nil {
			return nil, err
		}
	}
	item.StartsAt = item.StartsAt.UTC()
	return &item, nil
}
