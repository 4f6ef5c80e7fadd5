package dto

import "github.com/amfdata/contact-exchange/internal/entity"

// ActivityPage is one page of audit log entries, newest first.
type ActivityPage struct {
	Activities []entity.Activity `json:"activities"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PerPage    int               `json:"perPage"`
}
