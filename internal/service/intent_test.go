package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munihub/civic-portal/internal/model"
)

func TestIntentCreateAndCount(t *testing.T) {
	store := newMemStore()
	eventID := seedEvent(store)
	counter := NewIntentCounter(store, store)

	require.NoError(t, counter.Create(context.Background(), eventID, 1))
	require.NoError(t, counter.Create(context.Background(), eventID, 2))
	// Repeating is a no-op success, not a second intent.
	require.NoError(t, counter.Create(context.Background(), eventID, 1))

	state, err := counter.State(context.Background(), eventID, 1)
	require.NoError(t, err)
	assert.True(t, state.Interested)
	assert.Equal(t, 2, state.Count)

	state, err = counter.State(context.Background(), eventID, 3)
	require.NoError(t, err)
	assert.False(t, state.Interested)
	assert.Equal(t, 2, state.Count)
}

func TestIntentDelete(t *testing.T) {
	store := newMemStore()
	eventID := seedEvent(store)
	counter := NewIntentCounter(store, store)

	require.NoError(t, counter.Create(context.Background(), eventID, 1))
	require.NoError(t, counter.Delete(context.Background(), eventID, 1))
	// Deleting a missing intent succeeds quietly.
	require.NoError(t, counter.Delete(context.Background(), eventID, 1))

	state, err := counter.State(context.Background(), eventID, 1)
	require.NoError(t, err)
	assert.False(t, state.Interested)
	assert.Zero(t, state.Count)
}

func TestIntentOnlyOnPublishedEvents(t *testing.T) {
	store := newMemStore()
	draft := seedEvent(store, func(it *model.ContentItem) { it.Status = model.StatusDraft })
	program := seedProgram(store, "night-school")
	counter := NewIntentCounter(store, store)

	assert.ErrorIs(t, counter.Create(context.Background(), draft, 1), ErrNotFound)
	assert.ErrorIs(t, counter.Create(context.Background(), program, 1), ErrNotFound)
	assert.ErrorIs(t, counter.Delete(context.Background(), draft, 1), ErrNotFound)
	_, err := counter.State(context.Background(), 999, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
