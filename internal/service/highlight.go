package service

import (
	"context"
	"errors"

	"github.com/munihub/civic-portal/internal/model"
	"github.com/munihub/civic-portal/internal/repository"
)

// HighlightItems is the item store surface needed for the highlight
// swap.
type HighlightItems interface {
	GetForUpdate(ctx context.Context, id uint64) (*model.ContentItem, error)
	ClearHighlights(ctx context.Context) error
	SetHighlight(ctx context.Context, id uint64, highlighted bool) error
}

// HighlightEnforcer keeps the single-highlighted-program invariant: at
// most one program carries the flag, and only while published.  The
// clear-then-set swap runs in one transaction so no reader can observe
// zero-or-two highlighted programs across the swap.
type HighlightEnforcer struct {
	tx    TxRunner
	items HighlightItems
}

// NewHighlightEnforcer wires the highlight invariant enforcer.
func NewHighlightEnforcer(tx TxRunner, items HighlightItems) *HighlightEnforcer {
	return &HighlightEnforcer{tx: tx, items: items}
}

// SetHighlight turns the home page highlight on or off for a program.
// Turning it on requires the program to be published and atomically
// clears the flag everywhere else; turning it off is a single-row
// update with no cross-row effect.
func (e *HighlightEnforcer) SetHighlight(ctx context.Context, programID uint64, want bool) error {
	return e.tx.WithTx(ctx, func(ctx context.Context) error {
		item, err := e.items.GetForUpdate(ctx, programID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return ErrNotFound
			}
			return err
		}
		if item.Kind != model.KindProgram {
			return ErrInvalidHighlight
		}
		if want {
			if item.Status != model.StatusPublished {
				return ErrInvalidHighlight
			}
			if err := e.items.ClearHighlights(ctx); err != nil {
				return err
			}
		}
		return e.items.SetHighlight(ctx, programID, want)
	})
}
