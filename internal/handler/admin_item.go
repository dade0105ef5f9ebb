package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/munihub/civic-portal/internal/model"
	"github.com/munihub/civic-portal/internal/service"
)

// AdminItemHandler exposes the municipal staff surface: creating
// events and programs, editing capacity, moving items through their
// lifecycle and managing the home page highlight.
type AdminItemHandler struct {
	Content   *service.ContentService
	Lifecycle *service.LifecycleService
	Highlight *service.HighlightEnforcer
}

func NewAdminItemHandler(content *service.ContentService, lifecycle *service.LifecycleService,
	highlight *service.HighlightEnforcer) *AdminItemHandler {
	return &AdminItemHandler{Content: content, Lifecycle: lifecycle, Highlight: highlight}
}

type createItemReq struct {
	Kind             string           `json:"kind"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	RegistrationMode string           `json:"registration_mode"`
	TotalSlots       *int             `json:"total_slots"`
	FormSchema       []model.FieldDef `json:"form_schema"`
	StartsAt         time.Time        `json:"starts_at"`
}

// CreateItem creates an event or program in DRAFT status.
func (h *AdminItemHandler) CreateItem(c echo.Context) error {
	var req createItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	item, err := h.Content.CreateItem(c.Request().Context(), service.CreateItemInput{
		Kind:             req.Kind,
		Title:            req.Title,
		Description:      req.Description,
		RegistrationMode: req.RegistrationMode,
		TotalSlots:       req.TotalSlots,
		FormSchema:       req.FormSchema,
		StartsAt:         req.StartsAt,
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toItemResp(item))
}

type capacityReq struct {
	TotalSlots *int `json:"total_slots"` // null means unlimited
}

// UpdateCapacity changes an item's total slots.  Reductions below the
// confirmed registration count are rejected.
func (h *AdminItemHandler) UpdateCapacity(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req capacityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	item, err := h.Content.UpdateCapacity(c.Request().Context(), id, req.TotalSlots)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResp(item))
}

type transitionReq struct {
	Status string `json:"status"`
}

// Transition moves an item to a new lifecycle status.  Cancelling
// cascades to the item's confirmed registrations.
func (h *AdminItemHandler) Transition(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var req transitionReq
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}
	item, err := h.Lifecycle.Transition(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResp(item))
}

type highlightReq struct {
	Highlighted bool `json:"highlighted"`
}

// SetHighlight switches the single home page highlight on or off for a
// program.
func (h *AdminItemHandler) SetHighlight(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid program id"})
	}
	var req highlightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Highlight.SetHighlight(c.Request().Context(), id, req.Highlighted); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
