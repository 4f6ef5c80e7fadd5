package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/amfdata/contact-exchange/internal/dto"
	middleware "github.com/amfdata/contact-exchange/internal/middleware"
	"github.com/amfdata/contact-exchange/internal/repository"
	"github.com/amfdata/contact-exchange/internal/service"
)

// ContactsHandler exposes contact catalogue endpoints.
type ContactsHandler struct {
	service *service.ContactsService
}

// NewContactsHandler creates a new handler instance.
func NewContactsHandler(service *service.ContactsService) *ContactsHandler {
	return &ContactsHandler{service: service}
}

// List handles GET /admin/contacts requests. Admins see only their own
// uploads; superadmins see everything.
func (h *ContactsHandler) List(c echo.Context) error {
	filter := dto.ContactListFilter{
		Search:       strings.TrimSpace(c.QueryParam("search")),
		CompanyName:  strings.TrimSpace(c.QueryParam("company_name")),
		EmployeeSize: strings.TrimSpace(c.QueryParam("employee_size")),
		Revenue:      strings.TrimSpace(c.QueryParam("revenue")),
		Industry:     strings.TrimSpace(c.QueryParam("industry")),
		Country:      strings.TrimSpace(c.QueryParam("country")),
		State:        strings.TrimSpace(c.QueryParam("state")),
		JobTitle:     strings.TrimSpace(c.QueryParam("job_title")),
		JobLevel:     strings.TrimSpace(c.QueryParam("job_level")),
		JobRole:      strings.TrimSpace(c.QueryParam("job_role")),
		Page:         parseIntDefault(c.QueryParam("page"), 1),
		PerPage:      parseIntDefault(c.QueryParam("per_page"), 10),
	}

	if middleware.RoleFromContext(c) != "superadmin" {
		actor := middleware.ActorFromContext(c)
		filter.UploaderID = &actor.ID
	}

	page, err := h.service.ListContacts(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list contacts")
	}

	return Success(c, http.StatusOK, "contacts retrieved", page)
}

// Get handles GET /admin/contacts/:email requests.
func (h *ContactsHandler) Get(c echo.Context) error {
	email := c.Param("email")
	contact, err := h.service.GetContact(c.Request().Context(), email)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return Error(c, http.StatusNotFound, "contact not found")
		}
		if errors.Is(err, service.ErrInvalidEmail) {
			return Error(c, http.StatusBadRequest, "invalid email")
		}
		return Error(c, http.StatusInternalServerError, "failed to fetch contact")
	}
	return Success(c, http.StatusOK, "contact retrieved", contact)
}

// Create handles POST /admin/contacts requests for manual single-contact
// entry.
func (h *ContactsHandler) Create(c echo.Context) error {
	var req dto.CreateContactRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	actor := middleware.ActorFromContext(c)
	contact, err := h.service.CreateContact(c.Request().Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrContactDuplicate):
			return Error(c, http.StatusConflict, "contact already exists")
		case errors.Is(err, service.ErrInvalidEmail):
			return Error(c, http.StatusBadRequest, "invalid email")
		default:
			return Error(c, http.StatusBadRequest, err.Error())
		}
	}

	return Success(c, http.StatusCreated, "contact created", contact)
}
