package dto

// SyncRequest asks the LinkedIn verification worker to refresh the listed
// contacts.
type SyncRequest struct {
	Emails []string `json:"emails"`
}

// SyncOutcome reports the per-email result of a sync run.
type SyncOutcome struct {
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	Message string `json:"message,omitempty"`
}

// SyncError identifies an email that could not be processed at all.
type SyncError struct {
	Email string `json:"email"`
	Error string `json:"error"`
}

// SyncSummary totals a sync run.
type SyncSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// SyncReport is the aggregate response of a sync invocation.
type SyncReport struct {
	Results []SyncOutcome `json:"results"`
	Errors  []SyncError   `json:"errors"`
	Summary SyncSummary   `json:"summary"`
}
