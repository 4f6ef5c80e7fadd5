package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amfdata/contact-exchange/internal/service"
)

// ActivityHandler exposes the audit log.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler creates a new handler instance.
func NewActivityHandler(service *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /admin/activities requests, newest entries first.
func (h *ActivityHandler) List(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	perPage := parseIntDefault(c.QueryParam("per_page"), 20)

	activities, err := h.service.ListActivities(c.Request().Context(), page, perPage)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list activities")
	}

	return Success(c, http.StatusOK, "activities retrieved", activities)
}
