package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munihub/civic-portal/internal/model"
	"github.com/munihub/civic-portal/internal/service"
)

// PublicHandler serves unauthenticated browsing of published events
// and programs.  Drafts and terminal items are never visible here.
type PublicHandler struct {
	Content *service.ContentService
	Intents *service.IntentCounter
}

func NewPublicHandler(content *service.ContentService, intents *service.IntentCounter) *PublicHandler {
	return &PublicHandler{Content: content, Intents: intents}
}

// ListItems returns published items with advisory remaining-slot
// counts.
func (h *PublicHandler) ListItems(c echo.Context) error {
	page, limit := pageParams(c)
	views, total, err := h.Content.ListPublished(c.Request().Context(), page, limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]itemResp, 0, len(views))
	for i := range views {
		out = append(out, toItemView(&views[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": out,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GetItem returns a single published item by slug.  Events also carry
// their attendance intent count.
func (h *PublicHandler) GetItem(c echo.Context) error {
	view, err := h.Content.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return writeServiceError(c, err)
	}
	resp := toItemView(view)
	body := echo.Map{"item": resp}
	if view.Item.Kind == model.KindEvent {
		count, err := h.Intents.Count(c.Request().Context(), view.Item.ID)
		if err != nil && !errors.Is(err, service.ErrNotFound) {
			return writeServiceError(c, err)
		}
		body["intent_count"] = count
	}
	return c.JSON(http.StatusOK, body)
}
