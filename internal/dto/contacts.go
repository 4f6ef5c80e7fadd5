package dto

import (
	"github.com/google/uuid"

	"github.com/amfdata/contact-exchange/internal/entity"
)

// ContactListFilter contains query parameters for contact listing endpoints.
// UploaderID is set by the handler for non-superadmin callers so they only
// see their own uploads.
type ContactListFilter struct {
	Search       string
	CompanyName  string
	EmployeeSize string
	Revenue      string
	Industry     string
	Country      string
	State        string
	JobTitle     string
	JobLevel     string
	JobRole      string
	UploaderID   *uuid.UUID
	Page         int
	PerPage      int
}

// CreateContactRequest captures a single manually created contact.
type CreateContactRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	FullName        string `json:"fullName,omitempty"`
	JobTitle        string `json:"jobTitle"`
	JobLevel        string `json:"jobLevel,omitempty"`
	JobRole         string `json:"jobRole,omitempty"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	DirectPhone     string `json:"directPhone,omitempty"`
	Address1        string `json:"address1,omitempty"`
	Address2        string `json:"address2,omitempty"`
	City            string `json:"city,omitempty"`
	State           string `json:"state,omitempty"`
	ZipCode         string `json:"zipCode,omitempty"`
	Country         string `json:"country,omitempty"`
	OtherCountry    string `json:"otherCountry,omitempty"`
	Website         string `json:"website,omitempty"`
	Industry        string `json:"industry,omitempty"`
	OtherIndustry   string `json:"otherIndustry,omitempty"`
	SubIndustry     string `json:"subIndustry,omitempty"`
	ContactLinkedIn string `json:"contactLinkedIn,omitempty"`
	CompanyName     string `json:"companyName"`
	EmployeeSize    string `json:"employeeSize,omitempty"`
	Revenue         string `json:"revenue,omitempty"`
	AmfNotes        string `json:"amfNotes,omitempty"`
}

// ContactPage is one page of contact listing results. Score is a data-quality
// score computed per record, used by the curation screens.
type ContactPage struct {
	Contacts []ContactWithScore `json:"contacts"`
	Total    int                `json:"total"`
	Page     int                `json:"page"`
	PerPage  int                `json:"perPage"`
}

// ContactWithScore decorates a contact with its completeness score.
type ContactWithScore struct {
	entity.Contact
	Score int `json:"score"`
}
