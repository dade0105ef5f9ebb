package handler

import (
	"time"

	"github.com/munihub/civic-portal/internal/model"
	"github.com/munihub/civic-portal/internal/service"
)

// itemResp is the JSON projection of a content item shared by the
// admin and public surfaces.
type itemResp struct {
	ID               uint64           `json:"id"`
	Kind             string           `json:"kind"`
	Slug             string           `json:"slug"`
	Title            string           `json:"title"`
	Description      string           `json:"description,omitempty"`
	Status           string           `json:"status"`
	RegistrationMode string           `json:"registration_mode"`
	TotalSlots       *int             `json:"total_slots"`
	RemainingSlots   *int             `json:"remaining_slots,omitempty"`
	FormSchema       []model.FieldDef `json:"form_schema,omitempty"`
	IsHighlighted    bool             `json:"is_highlighted"`
	StartsAt         time.Time        `json:"starts_at"`
	CreatedAt        time.Time        `json:"created_at"`
}

func toItemResp(item *model.ContentItem) itemResp {
	return itemResp{
		ID:               item.ID,
		Kind:             item.Kind,
		Slug:             item.Slug,
		Title:            item.Title,
		Description:      item.Description,
		Status:           item.Status,
		RegistrationMode: item.RegistrationMode,
		TotalSlots:       item.TotalSlots,
		FormSchema:       item.FormSchema,
		IsHighlighted:    item.IsHighlighted,
		StartsAt:         item.StartsAt,
		CreatedAt:        item.CreatedAt,
	}
}

func toItemView(v *service.ItemView) itemResp {
	resp := toItemResp(&v.Item)
	resp.RemainingSlots = v.RemainingSlots
	return resp
}
