package service

import (
	"context"
	"errors"

	"github.com/munihub/civic-portal/internal/model"
	"github.com/munihub/civic-portal/internal/repository"
)

// IntentStore persists attendance intents.  Upsert and Delete are
// idempotent at the storage level.
type IntentStore interface {
	Upsert(ctx context.Context, eventID, userID uint64) (bool, error)
	Delete(ctx context.Context, eventID, userID uint64) (bool, error)
	Exists(ctx context.Context, eventID, userID uint64) (bool, error)
	Count(ctx context.Context, eventID uint64) (int, error)
}

// IntentItems is the read surface the intent counter needs.
type IntentItems interface {
	GetByID(ctx context.Context, id uint64) (*model.ContentItem, error)
}

// IntentCounter tracks non-binding "interested" signals on published
// events.  Intents are decoupled from capacity: they never consume a
// slot and repeated create/delete calls are successful no-ops.
type IntentCounter struct {
	items   IntentItems
	intents IntentStore
}

// NewIntentCounter wires the attendance intent counter.
func NewIntentCounter(items IntentItems, intents IntentStore) *IntentCounter {
	return &IntentCounter{items: items, intents: intents}
}

// IntentState is the per-user view of an event's intent counter.
type IntentState struct {
	Interested bool
	Count      int
}

// requireEvent loads the event and hides anything that is not a
// published event, mirroring the registration surface.
func (c *IntentCounter) requireEvent(ctx context.Context, eventID uint64) error {
	item, err := c.items.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return ErrNotFound
		}
		return err
	}
	if item.Kind != model.KindEvent || item.Status != model.StatusPublished {
		return ErrNotFound
	}
	return nil
}

// Create records the user's interest.  Calling it again is a no-op
// success, not an error.
func (c *IntentCounter) Create(ctx context.Context, eventID, userID uint64) error {
	if err := c.requireEvent(ctx, eventID); err != nil {
		return err
	}
	_, err := c.intents.Upsert(ctx, eventID, userID)
	return err
}

// Delete withdraws the user's interest; deleting a missing intent is a
// no-op success.
func (c *IntentCounter) Delete(ctx context.Context, eventID, userID uint64) error {
	if err := c.requireEvent(ctx, eventID); err != nil {
		return err
	}
	_, err := c.intents.Delete(ctx, eventID, userID)
	return err
}

// Count returns the event's total intent count for anonymous views.
func (c *IntentCounter) Count(ctx context.Context, eventID uint64) (int, error) {
	if err := c.requireEvent(ctx, eventID); err != nil {
		return 0, err
	}
	return c.intents.Count(ctx, eventID)
}

// State returns whether the user is interested and the event's total
// intent count.
func (c *IntentCounter) State(ctx context.Context, eventID, userID uint64) (*IntentState, error) {
	if err := c.requireEvent(ctx, eventID); err != nil {
		return nil, err
	}
	interested, err := c.intents.Exists(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	count, err := c.intents.Count(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return &IntentState{Interested: interested, Count: count}, nil
}
