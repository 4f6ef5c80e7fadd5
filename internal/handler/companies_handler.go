package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/amfdata/contact-exchange/internal/dto"
	"github.com/amfdata/contact-exchange/internal/service"
)

// CompaniesHandler exposes company catalogue endpoints.
type CompaniesHandler struct {
	service *service.CompaniesService
}

// NewCompaniesHandler creates a new handler instance.
func NewCompaniesHandler(service *service.CompaniesService) *CompaniesHandler {
	return &CompaniesHandler{service: service}
}

// List handles GET /admin/companies requests.
func (h *CompaniesHandler) List(c echo.Context) error {
	filter := dto.CompanyListFilter{
		Search:   strings.TrimSpace(c.QueryParam("search")),
		Industry: strings.TrimSpace(c.QueryParam("industry")),
		Country:  strings.TrimSpace(c.QueryParam("country")),
		State:    strings.TrimSpace(c.QueryParam("state")),
		Page:     parseIntDefault(c.QueryParam("page"), 1),
		PerPage:  parseIntDefault(c.QueryParam("per_page"), 10),
	}

	companies, total, err := h.service.ListCompanies(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list companies")
	}

	return Success(c, http.StatusOK, "companies retrieved", map[string]any{
		"companies": companies,
		"total":     total,
		"page":      filter.Page,
		"perPage":   filter.PerPage,
	})
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
