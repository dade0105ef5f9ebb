package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munihub/civic-portal/internal/form"
	"github.com/munihub/civic-portal/internal/model"
)

func newContentService(store *memStore) *ContentService {
	return NewContentService(store, store, NewCapacityLedger(store))
}

func validCreateInput() CreateItemInput {
	return CreateItemInput{
		Kind:             model.KindEvent,
		Title:            "Riverbank Cleanup Day",
		Description:      "Bring gloves.",
		RegistrationMode: model.ModeRegistration,
		TotalSlots:       intPtr(40),
		FormSchema:       testSchema,
		StartsAt:         time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC),
	}
}

func TestContentCreateItem(t *testing.T) {
	store := newMemStore()
	svc := newContentService(store)

	item, err := svc.CreateItem(context.Background(), validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, item.Status)
	assert.Equal(t, "riverbank-cleanup-day", item.Slug)
	assert.NotZero(t, item.ID)
}

func TestContentCreateItemValidation(t *testing.T) {
	mutations := map[string]struct {
		mutate  func(*CreateItemInput)
		wantErr error
	}{
		"bad kind":          {func(in *CreateItemInput) { in.Kind = "WORKSHOP" }, ErrInvalidItem},
		"empty title":       {func(in *CreateItemInput) { in.Title = "   " }, ErrInvalidItem},
		"zero start":        {func(in *CreateItemInput) { in.StartsAt = time.Time{} }, ErrInvalidItem},
		"bad mode":          {func(in *CreateItemInput) { in.RegistrationMode = "OPEN" }, ErrInvalidItem},
		"zero capacity":     {func(in *CreateItemInput) { in.TotalSlots = intPtr(0) }, ErrInvalidCapacity},
		"negative capacity": {func(in *CreateItemInput) { in.TotalSlots = intPtr(-5) }, ErrInvalidCapacity},
		"registration without schema": {func(in *CreateItemInput) {
			in.FormSchema = nil
		}, form.ErrMissingSchema},
		"informative with schema": {func(in *CreateItemInput) {
			in.RegistrationMode = model.ModeInformative
		}, ErrInvalidItem},
	}
	for name, tc := range mutations {
		t.Run(name, func(t *testing.T) {
			svc := newContentService(newMemStore())
			in := validCreateInput()
			tc.mutate(&in)
			_, err := svc.CreateItem(context.Background(), in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("duplicate field id", func(t *testing.T) {
		svc := newContentService(newMemStore())
		in := validCreateInput()
		in.FormSchema = []model.FieldDef{
			{ID: "name", Type: model.FieldShortText, Label: "Name"},
			{ID: "name", Type: model.FieldShortText, Label: "Name again"},
		}
		_, err := svc.CreateItem(context.Background(), in)
		assert.ErrorIs(t, err, form.ErrInvalidSchema)
	})
}

func TestContentCreateItemSlugCollision(t *testing.T) {
	store := newMemStore()
	svc := newContentService(store)

	first, err := svc.CreateItem(context.Background(), validCreateInput())
	require.NoError(t, err)
	second, err := svc.CreateItem(context.Background(), validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "riverbank-cleanup-day", first.Slug)
	assert.Regexp(t, regexp.MustCompile(`^riverbank-cleanup-day-[0-9a-z]{6}$`), second.Slug)
}

func TestContentUpdateCapacity(t *testing.T) {
	store := newMemStore()
	itemID := seedEvent(store, func(it *model.ContentItem) { it.TotalSlots = intPtr(10) })
	regSvc := newRegistrationService(store, nil)
	for user := uint64(1); user <= 3; user++ {
		_, err := regSvc.Create(context.Background(), user, itemID, validAnswers())
		require.NoError(t, err)
	}
	svc := newContentService(store)

	t.Run("below confirmed count", func(t *testing.T) {
		_, err := svc.UpdateCapacity(context.Background(), itemID, intPtr(2))
		assert.ErrorIs(t, err, ErrInvalidCapacity)
		require.NotNil(t, store.item(itemID).TotalSlots)
		assert.Equal(t, 10, *store.item(itemID).TotalSlots)
	})

	t.Run("down to confirmed count", func(t *testing.T) {
		updated, err := svc.UpdateCapacity(context.Background(), itemID, intPtr(3))
		require.NoError(t, err)
		assert.Equal(t, 3, *updated.TotalSlots)
	})

	t.Run("to unlimited", func(t *testing.T) {
		updated, err := svc.UpdateCapacity(context.Background(), itemID, nil)
		require.NoError(t, err)
		assert.Nil(t, updated.TotalSlots)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.UpdateCapacity(context.Background(), 999, intPtr(5))
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestContentPublicReads(t *testing.T) {
	store := newMemStore()
	published := seedEvent(store, func(it *model.ContentItem) { it.TotalSlots = intPtr(5) })
	seedEvent(store, func(it *model.ContentItem) {
		it.Slug = "hidden-draft"
		it.Status = model.StatusDraft
	})
	regSvc := newRegistrationService(store, nil)
	for user := uint64(1); user <= 2; user++ {
		_, err := regSvc.Create(context.Background(), user, published, validAnswers())
		require.NoError(t, err)
	}
	svc := newContentService(store)

	views, total, err := svc.ListPublished(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].RemainingSlots)
	assert.Equal(t, 3, *views[0].RemainingSlots)

	view, err := svc.GetBySlug(context.Background(), "cleanup-day")
	require.NoError(t, err)
	assert.Equal(t, published, view.Item.ID)
	require.NotNil(t, view.RemainingSlots)
	assert.Equal(t, 3, *view.RemainingSlots)

	_, err = svc.GetBySlug(context.Background(), "hidden-draft")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.GetBySlug(context.Background(), "never-existed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentUnlimitedRemaining(t *testing.T) {
	store := newMemStore()
	seedEvent(store)
	svc := newContentService(store)

	views, _, err := svc.ListPublished(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Nil(t, views[0].RemainingSlots)
}
