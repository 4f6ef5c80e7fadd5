package dto

// CompanyListFilter contains query parameters for company listing endpoints.
type CompanyListFilter struct {
	Search   string
	Industry string
	Country  string
	State    string
	Page     int
	PerPage  int
}
