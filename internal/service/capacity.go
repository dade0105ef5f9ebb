package service

import (
	"context"

	"github.com/munihub/civic-portal/internal/model"
)

// CapacityCounter counts confirmed registrations.  Run with a
// transaction in the context, the count joins that transaction.
type CapacityCounter interface {
	CountConfirmed(ctx context.Context, itemID uint64) (int, error)
}

// CapacityLedger computes and guards the available slots of an item.
// The confirmed count is always recomputed by aggregation instead of
// being maintained as stored state, so it cannot drift.
type CapacityLedger struct {
	counts CapacityCounter
}

// NewCapacityLedger returns a ledger reading counts from the store.
func NewCapacityLedger(counts CapacityCounter) *CapacityLedger {
	return &CapacityLedger{counts: counts}
}

// Remaining returns the number of free slots, or nil for unlimited
// items.  Outside a transaction the value is advisory (display only)
// and must never gate a write.
func (l *CapacityLedger) Remaining(ctx context.Context, item *model.ContentItem) (*int, error) {
	if item.TotalSlots == nil {
		return nil, nil
	}
	confirmed, err := l.counts.CountConfirmed(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	left := *item.TotalSlots - confirmed
	if left < 0 {
		left = 0
	}
	return &left, nil
}

// Reserve is the overbooking guard.  It must be called inside the
// registration transaction, after the item row has been locked, so the
// recheck cannot race another writer.  Returns ErrCapacityExceeded when
// the confirmed count has reached the limit.
func (l *CapacityLedger) Reserve(ctx context.Context, item *model.ContentItem) error {
	if item.TotalSlots == nil {
		return nil
	}
	confirmed, err := l.counts.CountConfirmed(ctx, item.ID)
	if err != nil {
		return err
	}
	if confirmed >= *item.TotalSlots {
		return ErrCapacityExceeded
	}
	return nil
}

// GuardReduction rejects a capacity change that would strand confirmed
// registrations.  nil means unlimited and is always allowed.
func (l *CapacityLedger) GuardReduction(ctx context.Context, item *model.ContentItem, newTotal *int) error {
	if newTotal == nil {
		return nil
	}
	if *newTotal < 1 {
		return ErrInvalidCapacity
	}
	confirmed, err := l.counts.CountConfirmed(ctx, item.ID)
	if err != nil {
		return err
	}
	if *newTotal < confirmed {
		return ErrInvalidCapacity
	}
	return nil
}
