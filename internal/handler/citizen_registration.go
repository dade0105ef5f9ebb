package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/munihub/civic-portal/internal/model"
	"github.com/munihub/civic-portal/internal/service"
)

// RegistrationHandler exposes the citizen registration surface.
type RegistrationHandler struct {
	Regs *service.RegistrationService
}

func NewRegistrationHandler(regs *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{Regs: regs}
}

type createRegistrationReq struct {
	ItemID  uint64         `json:"item_id"`
	Answers map[string]any `json:"answers"`
}

type registrationResp struct {
	ID             uint64         `json:"id"`
	ItemID         uint64         `json:"item_id"`
	ProtocolNumber string         `json:"protocol_number"`
	Status         string         `json:"status"`
	FormData       map[string]any `json:"form_data,omitempty"`
	CancelledAt    *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

func toRegistrationResp(r *model.Registration) registrationResp {
	return registrationResp{
		ID:             r.ID,
		ItemID:         r.ItemID,
		ProtocolNumber: r.ProtocolNumber,
		Status:         r.Status,
		FormData:       r.FormData,
		CancelledAt:    r.CancelledAt,
		CreatedAt:      r.CreatedAt,
	}
}

// Create registers the caller for an item.  The response carries the
// protocol number the citizen quotes at the venue.
func (h *RegistrationHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createRegistrationReq
	if err := c.Bind(&req); err != nil || req.ItemID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "item_id required"})
	}
	reg, err := h.Regs.Create(c.Request().Context(), uid, req.ItemID, req.Answers)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toRegistrationResp(reg))
}

// List returns the caller's registrations, newest first.
func (h *RegistrationHandler) List(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, limit := pageParams(c)
	regs, total, err := h.Regs.ListForUser(c.Request().Context(), uid, page, limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]registrationResp, 0, len(regs))
	for i := range regs {
		out = append(out, toRegistrationResp(&regs[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"registrations": out,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}

// Get returns one of the caller's registrations.
func (h *RegistrationHandler) Get(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	reg, err := h.Regs.GetByID(c.Request().Context(), id, uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toRegistrationResp(reg))
}

// Cancel withdraws one of the caller's registrations.
func (h *RegistrationHandler) Cancel(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid registration id"})
	}
	if err := h.Regs.Cancel(c.Request().Context(), id, uid); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
