package dto

// ImportContactRow is one raw row of a bulk contact import, exactly as
// supplied by the caller. All values are untrimmed strings; the import
// engine trims and validates them.
type ImportContactRow struct {
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
	Technology      string `json:"technology,omitempty"`
	ContactLinkedIn string `json:"contactLinkedIn,omitempty"`
	LastUpdateDate  string `json:"lastUpdateDate,omitempty"`
	CompanyName     string `json:"companyName"`
	EmployeeSize    string `json:"employeeSize,omitempty"`
	Revenue         string `json:"revenue,omitempty"`
	AmfNotes        string `json:"amfNotes,omitempty"`
}

// ImportRequest is the payload of the bulk import endpoint.
//
// SkipActivityLog suppresses the audit entry for this call; external chunkers
// set it on all but the final chunk. CreateActivityLogWithTotal overrides the
// count recorded in the audit entry, and additionally permits an empty Rows
// slice for a log-only invocation.
type ImportRequest struct {
	Rows                       []ImportContactRow `json:"rows"`
	SkipActivityLog            bool               `json:"skipActivityLog,omitempty"`
	CreateActivityLogWithTotal *int               `json:"createActivityLogWithTotal,omitempty"`
}

// InvalidContact identifies one rejected row and the reason it failed
// validation.
type InvalidContact struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// ImportReport summarises a completed import invocation.
type ImportReport struct {
	Message          string   `json:"message"`
	Imported         int      `json:"imported"`
	Skipped          int      `json:"skipped"`
	ExistingEmails   []string `json:"existingEmails"`
	ImportedEmails   []string `json:"importedEmails"`
	Total            int      `json:"total"`
	ValidContacts    int      `json:"validContacts"`
	CompaniesCreated int      `json:"companiesCreated"`
	CompaniesUpdated int      `json:"companiesUpdated"`
	CompaniesTotal   int      `json:"companiesTotal"`
}
