package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munihub/civic-portal/internal/model"
)

func seedProgram(store *memStore, slug string, mutate ...func(*model.ContentItem)) uint64 {
	item := model.ContentItem{
		Kind:             model.KindProgram,
		Slug:             slug,
		Title:            "Program " + slug,
		Status:           model.StatusPublished,
		RegistrationMode: model.ModeInformative,
	}
	for _, m := range mutate {
		m(&item)
	}
	return store.addItem(item)
}

func TestHighlightSwap(t *testing.T) {
	store := newMemStore()
	first := seedProgram(store, "night-school")
	second := seedProgram(store, "open-library")
	enforcer := NewHighlightEnforcer(store, store)

	require.NoError(t, enforcer.SetHighlight(context.Background(), first, true))
	assert.True(t, store.item(first).IsHighlighted)

	// Highlighting another program moves the flag in one step.
	require.NoError(t, enforcer.SetHighlight(context.Background(), second, true))
	assert.False(t, store.item(first).IsHighlighted)
	assert.True(t, store.item(second).IsHighlighted)
}

func TestHighlightRequiresPublishedProgram(t *testing.T) {
	store := newMemStore()
	draft := seedProgram(store, "draft-program", func(it *model.ContentItem) { it.Status = model.StatusDraft })
	event := seedEvent(store)
	enforcer := NewHighlightEnforcer(store, store)

	assert.ErrorIs(t, enforcer.SetHighlight(context.Background(), draft, true), ErrInvalidHighlight)
	assert.ErrorIs(t, enforcer.SetHighlight(context.Background(), event, true), ErrInvalidHighlight)
	assert.ErrorIs(t, enforcer.SetHighlight(context.Background(), 999, true), ErrNotFound)
}

func TestHighlightUnsetLeavesOthersAlone(t *testing.T) {
	store := newMemStore()
	first := seedProgram(store, "night-school")
	second := seedProgram(store, "open-library")
	enforcer := NewHighlightEnforcer(store, store)

	require.NoError(t, enforcer.SetHighlight(context.Background(), first, true))
	require.NoError(t, enforcer.SetHighlight(context.Background(), second, false))
	assert.True(t, store.item(first).IsHighlighted)

	require.NoError(t, enforcer.SetHighlight(context.Background(), first, false))
	assert.False(t, store.item(first).IsHighlighted)
}

func TestHighlightUnsetAllowedOffPublished(t *testing.T) {
	store := newMemStore()
	closed := seedProgram(store, "closed-program", func(it *model.ContentItem) {
		it.Status = model.StatusClosed
		it.IsHighlighted = true // should not happen, but unset must still work
	})
	enforcer := NewHighlightEnforcer(store, store)

	require.NoError(t, enforcer.SetHighlight(context.Background(), closed, false))
	assert.False(t, store.item(closed).IsHighlighted)
}
