package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/munihub/civic-portal/internal/service"
)

// IntentHandler exposes the non-binding "I plan to attend" counter on
// published events.
type IntentHandler struct {
	Intents *service.IntentCounter
}

func NewIntentHandler(intents *service.IntentCounter) *IntentHandler {
	return &IntentHandler{Intents: intents}
}

// Create records the caller's intent.  Repeating the call is a no-op.
func (h *IntentHandler) Create(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Intents.Create(c.Request().Context(), eventID, uid); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete withdraws the caller's intent.  Deleting a missing intent is
// also a no-op.
func (h *IntentHandler) Delete(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	if err := h.Intents.Delete(c.Request().Context(), eventID, uid); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// State returns the caller's intent flag and the event total.
func (h *IntentHandler) State(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	state, err := h.Intents.State(c.Request().Context(), eventID, uid)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"interested": state.Interested,
		"count":      state.Count,
	})
}
