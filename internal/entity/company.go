package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a business stored in the catalogue. Companies are
// inferred from imported contact rows; CompanyName is unique with an exact,
// case-sensitive match.
type Company struct {
	ID                 uuid.UUID  `json:"id"`
	CompanyName        string     `json:"companyName"`
	Phone              string     `json:"phone,omitempty"`
	Address1           string     `json:"address1,omitempty"`
	Address2           string     `json:"address2,omitempty"`
	City               string     `json:"city,omitempty"`
	State              string     `json:"state,omitempty"`
	ZipCode            string     `json:"zipCode,omitempty"`
	Country            string     `json:"country,omitempty"`
	OtherCountry       string     `json:"otherCountry,omitempty"`
	Website            string     `json:"website,omitempty"`
	Revenue            string     `json:"revenue,omitempty"`
	EmployeeSize       string     `json:"employeeSize,omitempty"`
	Industry           string     `json:"industry,omitempty"`
	OtherIndustry      string     `json:"otherIndustry,omitempty"`
	SubIndustry        string     `json:"subIndustry,omitempty"`
	Technology         string     `json:"technology,omitempty"`
	CompanyLinkedInURL string     `json:"companyLinkedInUrl,omitempty"`
	CreatedBy          string     `json:"createdBy,omitempty"`
	UploaderID         *uuid.UUID `json:"uploaderId,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
