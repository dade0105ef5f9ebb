package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/munihub/civic-portal/internal/lifecycle"
	"github.com/munihub/civic-portal/internal/model"
	"github.com/munihub/civic-portal/internal/queue"
	"github.com/munihub/civic-portal/internal/repository"
)

// LifecycleItems is the item store surface needed for status changes.
type LifecycleItems interface {
	GetForUpdate(ctx context.Context, id uint64) (*model.ContentItem, error)
	UpdateStatus(ctx context.Context, id uint64, status string, clearHighlight bool) error
}

// CascadeStore cancels registrations in bulk during an item
// cancellation.
type CascadeStore interface {
	CancelAllForItem(ctx context.Context, itemID uint64, at time.Time) (int64, error)
}

// LifecycleService applies status transitions to content items.  A
// transition to CANCELLED cascades: every confirmed registration is
// cancelled in the same transaction as the status write, so readers can
// never observe a cancelled item with live registrations.
type LifecycleService struct {
	tx    TxRunner
	items LifecycleItems
	regs  CascadeStore

	publish func(ctx context.Context, ev queue.ItemCancelledEvent) error
	now     func() time.Time
}

// NewLifecycleService wires the lifecycle engine.  publish may be nil.
func NewLifecycleService(tx TxRunner, items LifecycleItems, regs CascadeStore,
	publish func(ctx context.Context, ev queue.ItemCancelledEvent) error) *LifecycleService {
	return &LifecycleService{tx: tx, items: items, regs: regs, publish: publish, now: time.Now}
}

// Transition moves an item to target status.  Illegal moves fail with
// ErrIllegalTransition before any write.  A program leaving PUBLISHED
// loses its highlight in the same status update.
func (s *LifecycleService) Transition(ctx context.Context, itemID uint64, target string) (*model.ContentItem, error) {
	if !lifecycle.IsValidStatus(target) {
		return nil, ErrIllegalTransition
	}
	var (
		updated   *model.ContentItem
		cascaded  int64
		cancelled bool
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		item, err := s.items.GetForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !lifecycle.CanTransition(item.Status, target) {
			return ErrIllegalTransition
		}
		clearHighlight := item.Kind == model.KindProgram &&
			item.Status == model.StatusPublished && target != model.StatusPublished
		if target == model.StatusCancelled {
			n, err := s.regs.CancelAllForItem(ctx, itemID, s.now())
			if err != nil {
				return err
			}
			cascaded = n
			cancelled = true
		}
		if err := s.items.UpdateStatus(ctx, itemID, target, clearHighlight); err != nil {
			return err
		}
		item.Status = target
		if clearHighlight {
			item.IsHighlighted = false
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cancelled && s.publish != nil {
		ev := queue.ItemCancelledEvent{
			ItemID:                 updated.ID,
			ItemKind:               updated.Kind,
			ItemTitle:              updated.Title,
			CancelledRegistrations: cascaded,
			CancelledAt:            s.now().UTC().Format(time.RFC3339),
		}
		if err := s.publish(ctx, ev); err != nil {
			log.Printf("lifecycle: publish cancelled event failed: %v", err)
		}
	}
	return updated, nil
}
