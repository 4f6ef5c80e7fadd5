package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact represents a business contact record held in the catalogue.
// Email is the natural key: it is unique across the store and a contact is
// never overwritten once imported. CompanyName links to a Company by exact
// name, not by id.
type Contact struct {
	ID              uuid.UUID  `json:"id"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	FullName        string     `json:"fullName"`
	JobTitle        string     `json:"jobTitle"`
	JobLevel        string     `json:"jobLevel,omitempty"`
	JobRole         string     `json:"jobRole,omitempty"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	DirectPhone     string     `json:"directPhone,omitempty"`
	Address1        string     `json:"address1,omitempty"`
	Address2        string     `json:"address2,omitempty"`
	City            string     `json:"city,omitempty"`
	State           string     `json:"state,omitempty"`
	ZipCode         string     `json:"zipCode,omitempty"`
	Country         string     `json:"country,omitempty"`
	OtherCountry    string     `json:"otherCountry,omitempty"`
	Website         string     `json:"website,omitempty"`
	Industry        string     `json:"industry,omitempty"`
	OtherIndustry   string     `json:"otherIndustry,omitempty"`
	SubIndustry     string     `json:"subIndustry,omitempty"`
	Technology      string     `json:"technology,omitempty"`
	ContactLinkedIn string     `json:"contactLinkedIn,omitempty"`
	LastUpdateDate  *time.Time `json:"lastUpdateDate,omitempty"`
	CompanyName     string     `json:"companyName"`
	EmployeeSize    string     `json:"employeeSize,omitempty"`
	Revenue         string     `json:"revenue,omitempty"`
	AmfNotes        string     `json:"amfNotes,omitempty"`
	SyncDate        *time.Time `json:"syncDate,omitempty"`
	CreatedBy       string     `json:"createdBy,omitempty"`
	UploaderID      *uuid.UUID `json:"uploaderId,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
