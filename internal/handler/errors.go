package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/munihub/civic-portal/internal/form"
	"github.com/munihub/civic-portal/internal/service"
)

// writeServiceError translates the service error taxonomy into HTTP
// responses.  Unrecognized errors become an opaque 500 so storage
// details never leak to clients.
func writeServiceError(c echo.Context, err error) error {
	var missing *form.MissingFieldsError
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrNotPublished):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "item is not open for registration"})
	case errors.Is(err, service.ErrRegistrationModeDisabled):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "item does not accept registrations"})
	case errors.Is(err, form.ErrMissingSchema):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "registration form is not configured"})
	case errors.As(err, &missing):
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":          "missing required fields",
			"missing_fields": missing.FieldIDs,
		})
	case errors.Is(err, service.ErrDuplicateRegistration):
		return c.JSON(http.StatusConflict, echo.Map{"error": "already registered"})
	case errors.Is(err, service.ErrCapacityExceeded):
		return c.JSON(http.StatusConflict, echo.Map{"error": "no slots left"})
	case errors.Is(err, service.ErrAlreadyCancelled):
		return c.JSON(http.StatusConflict, echo.Map{"error": "registration already cancelled"})
	case errors.Is(err, service.ErrTooLateToCancel):
		return c.JSON(http.StatusConflict, echo.Map{"error": "too late to cancel"})
	case errors.Is(err, service.ErrIllegalTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "illegal status transition"})
	case errors.Is(err, service.ErrInvalidHighlight):
		return c.JSON(http.StatusConflict, echo.Map{"error": "item cannot be highlighted"})
	case errors.Is(err, service.ErrInvalidCapacity):
		return c.JSON(http.StatusConflict, echo.Map{"error": "invalid capacity"})
	case errors.Is(err, service.ErrInvalidItem), errors.Is(err, form.ErrInvalidSchema):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

// currentUserID reads the numeric user ID stored by the JWT middleware.
// The sub claim decodes as float64 from JSON.
func currentUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		return uint64(v), true
	case uint64:
		return v, true
	case string:
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// pageParams reads ?page= and ?limit= with sane defaults.
func pageParams(c echo.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
