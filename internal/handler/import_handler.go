package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amfdata/contact-exchange/internal/dto"
	middleware "github.com/amfdata/contact-exchange/internal/middleware"
	"github.com/amfdata/contact-exchange/internal/service"
)

// ImportHandler exposes the bulk contact import endpoint.
type ImportHandler struct {
	importer *service.ImportService
}

// NewImportHandler constructs a handler instance.
func NewImportHandler(importer *service.ImportService) *ImportHandler {
	return &ImportHandler{importer: importer}
}

// Import handles POST /admin/contacts/import requests. Validation failures
// reject the whole batch with a structured payload describing the offending
// rows; rows whose email already exists are skipped and reported in the
// success body instead.
func (h *ImportHandler) Import(c echo.Context) error {
	var req dto.ImportRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	actor := middleware.ActorFromContext(c)
	report, err := h.importer.ImportContacts(c.Request().Context(), req, actor)
	if err != nil {
		var tooLarge service.BatchTooLargeError
		var dup service.DuplicateEmailsError
		var invalid service.InvalidContactsError
		switch {
		case errors.Is(err, service.ErrEmptyBatch):
			return Error(c, http.StatusBadRequest, "Invalid input: 'rows' array cannot be empty")
		case errors.As(err, &tooLarge):
			return ErrorWithData(c, http.StatusBadRequest, tooLarge.Error(), map[string]any{
				"maxLimit": tooLarge.Limit,
				"provided": tooLarge.Provided,
			})
		case errors.As(err, &dup):
			return ErrorWithData(c, http.StatusBadRequest, dup.Error(), map[string]any{
				"duplicateEmails": dup.Emails,
			})
		case errors.As(err, &invalid):
			return ErrorWithData(c, http.StatusBadRequest, invalid.Error(), map[string]any{
				"invalidContacts": invalid.Invalid,
				"totalInvalid":    invalid.Total,
			})
		default:
			return Error(c, http.StatusInternalServerError, "failed to import contacts")
		}
	}

	return Success(c, http.StatusCreated, report.Message, report)
}
