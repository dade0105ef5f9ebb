package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/munihub/civic-portal/internal/form"
	"github.com/munihub/civic-portal/internal/model"
	"github.com/munihub/civic-portal/internal/repository"
	"github.com/munihub/civic-portal/internal/utils"
)

// ContentItems is the item store surface for admin content management
// and public browsing.
type ContentItems interface {
	Create(ctx context.Context, item *model.ContentItem) error
	GetByID(ctx context.Context, id uint64) (*model.ContentItem, error)
	GetBySlug(ctx context.Context, slug string) (*model.ContentItem, error)
	GetForUpdate(ctx context.Context, id uint64) (*model.ContentItem, error)
	ListPublished(ctx context.Context, page, limit int) ([]model.ContentItem, int, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	UpdateTotalSlots(ctx context.Context, id uint64, totalSlots *int) error
}

// CreateItemInput carries the admin-provided fields of a new item.
type CreateItemInput struct {
	Kind             string
	Title            string
	Description      string
	RegistrationMode string
	TotalSlots       *int
	FormSchema       []model.FieldDef
	StartsAt         time.Time
}

// ErrInvalidItem is returned for admin input that fails structural
// validation (bad kind/mode, empty title, schema on informative items).
var ErrInvalidItem = errors.New("invalid content item")

// ContentService covers admin item creation and the capacity edit, plus
// the public read projections.  Status changes and highlighting live in
// LifecycleService / HighlightEnforcer.
type ContentService struct {
	tx     TxRunner
	items  ContentItems
	ledger *CapacityLedger
}

// NewContentService wires the content management service.
func NewContentService(tx TxRunner, items ContentItems, ledger *CapacityLedger) *ContentService {
	return &ContentService{tx: tx, items: items, ledger: ledger}
}

// CreateItem validates and stores a new item in DRAFT status.  The slug
// is derived from the title; on collision a random suffix is appended
// once before giving up to the unique index.
func (s *ContentService) CreateItem(ctx context.Context, in CreateItemInput) (*model.ContentItem, error) {
	if in.Kind != model.KindEvent && in.Kind != model.KindProgram {
		return nil, ErrInvalidItem
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrInvalidItem
	}
	if in.StartsAt.IsZero() {
		return nil, ErrInvalidItem
	}
	switch in.RegistrationMode {
	case model.ModeRegistration:
		if err := form.ValidateSchema(in.FormSchema); err != nil {
			return nil, err
		}
	case model.ModeInformative:
		if in.FormSchema != nil {
			return nil, ErrInvalidItem
		}
	default:
		return nil, ErrInvalidItem
	}
	if in.TotalSlots != nil && *in.TotalSlots < 1 {
		return nil, ErrInvalidCapacity
	}

	slug := utils.Slugify(in.Title)
	taken, err := s.items.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if taken {
		slug, err = utils.SlugWithSuffix(in.Title)
		if err != nil {
			return nil, err
		}
	}
	item := &model.ContentItem{
		Kind:             in.Kind,
		Slug:             slug,
		Title:            strings.TrimSpace(in.Title),
		Description:      in.Description,
		Status:           model.StatusDraft,
		RegistrationMode: in.RegistrationMode,
		TotalSlots:       in.TotalSlots,
		FormSchema:       in.FormSchema,
		StartsAt:         in.StartsAt.UTC(),
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateCapacity changes an item's total slots under the reduction
// guard: the new value may never drop below the current confirmed
// count.  Count and write share one transaction with the item locked.
func (s *ContentService) UpdateCapacity(ctx context.Context, itemID uint64, totalSlots *int) (*model.ContentItem, error) {
	var updated *model.ContentItem
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		item, err := s.items.GetForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, repository.ErrItemNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := s.ledger.GuardReduction(ctx, item, totalSlots); err != nil {
			return err
		}
		if err := s.items.UpdateTotalSlots(ctx, itemID, totalSlots); err != nil {
			return err
		}
		item.TotalSlots = totalSlots
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ItemView is the public projection of a published item with its
// advisory remaining-slot count (nil for unlimited).
type ItemView struct {
	Item           model.ContentItem
	RemainingSlots *int
}

// ListPublished returns published items with display-only remaining
// slot counts.
func (s *ContentService) ListPublished(ctx context.Context, page, limit int) ([]ItemView, int, error) {
	items, total, err := s.items.ListPublished(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	views := make([]ItemView, 0, len(items))
	for i := range items {
		left, err := s.ledger.Remaining(ctx, &items[i])
		if err != nil {
			return nil, 0, err
		}
		views = append(views, ItemView{Item: items[i], RemainingSlots: left})
	}
	return views, total, nil
}

// GetBySlug returns a single published item by slug.  Drafts and
// terminal items stay hidden from the public surface.
func (s *ContentService) GetBySlug(ctx context.Context, slug string) (*ItemView, error) {
	item, err := s.items.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.Status != model.StatusPublished {
		return nil, ErrNotFound
	}
	left, err := s.ledger.Remaining(ctx, item)
	if err != nil {
		return nil, err
	}
	return &ItemView{Item: *item, RemainingSlots: left}, nil
}
