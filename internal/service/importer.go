package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amfdata/contact-exchange/internal/dto"
	"github.com/amfdata/contact-exchange/internal/entity"
	"github.com/amfdata/contact-exchange/internal/repository"
)

const (
	// maxImportRows bounds one import invocation.
	maxImportRows = 10000
	// chunkSize bounds a single store round trip.
	chunkSize = 1000

	requiredFieldsReason = "Missing required fields (email, firstName, lastName, jobTitle, or companyName)"
)

// ErrEmptyBatch is returned when an import carries no rows and no activity
// log override.
var ErrEmptyBatch = errors.New("import batch is empty")

// BatchTooLargeError rejects an import that exceeds the row ceiling.
type BatchTooLargeError struct {
	Limit    int
	Provided int
}

func (e BatchTooLargeError) Error() string {
	return fmt.Sprintf("Maximum import limit is %d contacts. You are trying to import %d contacts.", e.Limit, e.Provided)
}

// DuplicateEmailsError rejects a batch that repeats an email within itself.
// Emails is de-duplicated and keeps first-occurrence order.
type DuplicateEmailsError struct {
	Emails []string
}

func (e DuplicateEmailsError) Error() string {
	return "Duplicate emails found in import data"
}

// InvalidContactsError rejects a batch containing rows with missing required
// fields. Invalid holds at most the first 10 offenders; Total is the real
// count.
type InvalidContactsError struct {
	Invalid []dto.InvalidContact
	Total   int
}

func (e InvalidContactsError) Error() string {
	return "Invalid contacts found in import data"
}

// Actor identifies the admin performing an import, used for attribution and
// audit logging.
type Actor struct {
	ID   uuid.UUID
	Name string
}

// ImportService runs the bulk contact import pipeline: validation, duplicate
// resolution, company derivation, and the two-phase bulk commit.
type ImportService struct {
	contacts  repository.ContactsRepository
	companies repository.CompaniesRepository
	activity  repository.ActivityRepository
}

// NewImportService creates a new instance of ImportService.
func NewImportService(contacts repository.ContactsRepository, companies repository.CompaniesRepository, activity repository.ActivityRepository) *ImportService {
	return &ImportService{contacts: contacts, companies: companies, activity: activity}
}

// ImportContacts ingests one batch of raw rows on behalf of the actor.
//
// Any validation failure rejects the whole batch before anything is written.
// Rows whose email already exists in the store are skipped, not rejected.
// Companies implied by the surviving rows are committed first, then the
// contacts themselves; the two phases share no transaction, so a failure
// between them leaves the companies committed.
func (s *ImportService) ImportContacts(ctx context.Context, req dto.ImportRequest, actor Actor) (dto.ImportReport, error) {
	if len(req.Rows) == 0 {
		if req.CreateActivityLogWithTotal == nil {
			return dto.ImportReport{}, ErrEmptyBatch
		}
		// Log-only invocation: the final call of an externally chunked
		// import records one cumulative audit entry.
		if !req.SkipActivityLog {
			s.logActivity(ctx, *req.CreateActivityLogWithTotal, actor)
		}
		return dto.ImportReport{Message: "Activity log created successfully"}, nil
	}
	if len(req.Rows) > maxImportRows {
		return dto.ImportReport{}, BatchTooLargeError{Limit: maxImportRows, Provided: len(req.Rows)}
	}

	valid, invalid, duplicates := validateRows(req.Rows, actor)
	if len(duplicates) > 0 {
		return dto.ImportReport{}, DuplicateEmailsError{Emails: duplicates}
	}
	if len(invalid) > 0 {
		shown := invalid
		if len(shown) > 10 {
			shown = shown[:10]
		}
		return dto.ImportReport{}, InvalidContactsError{Invalid: shown, Total: len(invalid)}
	}

	existingEmails, err := s.findExistingEmails(ctx, valid)
	if err != nil {
		return dto.ImportReport{}, err
	}

	existingSet := make(map[string]struct{}, len(existingEmails))
	for _, email := range existingEmails {
		existingSet[email] = struct{}{}
	}
	toImport := make([]entity.Contact, 0, len(valid))
	for _, c := range valid {
		if _, exists := existingSet[c.Email]; exists {
			continue
		}
		toImport = append(toImport, c)
	}

	if len(toImport) == 0 {
		return dto.ImportReport{
			Message:        fmt.Sprintf("All contacts already exist in the database. Existing emails: %s.", truncatedEmailList(existingEmails)),
			Skipped:        len(existingEmails),
			ExistingEmails: existingEmails,
			Total:          len(req.Rows),
		}, nil
	}

	companiesCreated, companiesUpdated, err := s.commitCompanies(ctx, toImport, actor)
	if err != nil {
		return dto.ImportReport{}, err
	}

	totalInserted, importedEmails, err := s.commitContacts(ctx, toImport)
	if err != nil {
		return dto.ImportReport{}, err
	}

	if !req.SkipActivityLog {
		count := totalInserted
		if req.CreateActivityLogWithTotal != nil {
			count = *req.CreateActivityLogWithTotal
		}
		s.logActivity(ctx, count, actor)
	}

	message := "Contacts and companies imported successfully"
	if len(existingEmails) > 0 {
		message = fmt.Sprintf("%d contacts imported successfully. %d contact(s) already exist and were skipped. Existing emails: %s.",
			totalInserted, len(existingEmails), truncatedEmailList(existingEmails))
	}

	return dto.ImportReport{
		Message:          message,
		Imported:         totalInserted,
		Skipped:          len(existingEmails),
		ExistingEmails:   existingEmails,
		ImportedEmails:   importedEmails,
		Total:            len(req.Rows),
		ValidContacts:    len(valid),
		CompaniesCreated: companiesCreated,
		CompaniesUpdated: companiesUpdated,
		CompaniesTotal:   companiesCreated + companiesUpdated,
	}, nil
}

// validateRows partitions the batch into valid contacts, invalid rows, and
// intra-batch duplicate emails. The first occurrence of an email is kept;
// repeats are duplicates. Rows failing the required-field check never enter
// duplicate detection.
func validateRows(rows []dto.ImportContactRow, actor Actor) ([]entity.Contact, []dto.InvalidContact, []string) {
	var (
		valid      []entity.Contact
		invalid    []dto.InvalidContact
		duplicates []string
	)
	seen := make(map[string]struct{}, len(rows))
	dupSeen := make(map[string]struct{})

	for _, row := range rows {
		if row.Email == "" || row.FirstName == "" || row.LastName == "" || row.JobTitle == "" || row.CompanyName == "" {
			email := row.Email
			if email == "" {
				email = "N/A"
			}
			invalid = append(invalid, dto.InvalidContact{Email: email, Reason: requiredFieldsReason})
			continue
		}

		if _, dup := seen[row.Email]; dup {
			if _, reported := dupSeen[row.Email]; !reported {
				dupSeen[row.Email] = struct{}{}
				duplicates = append(duplicates, row.Email)
			}
			continue
		}
		seen[row.Email] = struct{}{}

		valid = append(valid, buildContact(row, actor))
	}
	return valid, invalid, duplicates
}

// buildContact normalizes one raw row into a contact entity. The "Other"
// override fields only carry when their selector is literally "Other".
func buildContact(row dto.ImportContactRow, actor Actor) entity.Contact {
	firstName := strings.TrimSpace(row.FirstName)
	lastName := strings.TrimSpace(row.LastName)
	fullName := row.FullName
	if fullName == "" {
		fullName = strings.TrimSpace(firstName + " " + lastName)
	}

	c := entity.Contact{
		FirstName:       firstName,
		LastName:        lastName,
		FullName:        fullName,
		JobTitle:        strings.TrimSpace(row.JobTitle),
		JobLevel:        row.JobLevel,
		JobRole:         row.JobRole,
		Email:           strings.TrimSpace(row.Email),
		Phone:           row.Phone,
		DirectPhone:     row.DirectPhone,
		Address1:        row.Address1,
		Address2:        row.Address2,
		City:            row.City,
		State:           row.State,
		ZipCode:         row.ZipCode,
		Country:         row.Country,
		Website:         row.Website,
		Industry:        row.Industry,
		SubIndustry:     row.SubIndustry,
		Technology:      row.Technology,
		ContactLinkedIn: row.ContactLinkedIn,
		CompanyName:     strings.TrimSpace(row.CompanyName),
		EmployeeSize:    row.EmployeeSize,
		Revenue:         row.Revenue,
		AmfNotes:        row.AmfNotes,
		CreatedBy:       actor.Name,
	}
	if row.Country == "Other" {
		c.OtherCountry = row.OtherCountry
	}
	if row.Industry == "Other" {
		c.OtherIndustry = row.OtherIndustry
	}
	if row.LastUpdateDate != "" {
		if ts, err := parseTimestamp(row.LastUpdateDate); err == nil {
			c.LastUpdateDate = &ts
		}
	}
	if actor.ID != uuid.Nil {
		id := actor.ID
		c.UploaderID = &id
	}
	return c
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "01/02/2006"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// findExistingEmails looks up which of the batch emails are already stored,
// in chunks to bound query size.
func (s *ImportService) findExistingEmails(ctx context.Context, contacts []entity.Contact) ([]string, error) {
	emails := make([]string, len(contacts))
	for i, c := range contacts {
		emails[i] = c.Email
	}

	seen := make(map[string]struct{})
	var existing []string
	for start := 0; start < len(emails); start += chunkSize {
		end := start + chunkSize
		if end > len(emails) {
			end = len(emails)
		}
		found, err := s.contacts.FindExistingEmails(ctx, emails[start:end])
		if err != nil {
			return nil, fmt.Errorf("check existing emails: %w", err)
		}
		for _, email := range found {
			if _, dup := seen[email]; dup {
				continue
			}
			seen[email] = struct{}{}
			existing = append(existing, email)
		}
	}
	return existing, nil
}

// commitCompanies derives one company draft per unique company name, merges
// attributes across rows, and commits updates then creations. Updates go out
// as one unordered batch; creations are chunked inserts.
func (s *ImportService) commitCompanies(ctx context.Context, contacts []entity.Contact, actor Actor) (created, updated int, err error) {
	names, drafts := deriveCompanies(contacts, actor)
	if len(names) == 0 {
		return 0, 0, nil
	}

	stored, err := s.companies.FindByNames(ctx, names)
	if err != nil {
		return 0, 0, fmt.Errorf("look up companies: %w", err)
	}
	storedByName := make(map[string]entity.Company, len(stored))
	for _, c := range stored {
		storedByName[c.CompanyName] = c
	}

	var (
		ops       []repository.CompanyUpdateOp
		creations []entity.Company
	)
	for _, name := range names {
		draft := drafts[name]
		existing, ok := storedByName[name]
		if !ok {
			creations = append(creations, draft)
			created++
			continue
		}
		patch := buildCompanyPatch(draft, existing)
		if patch.IsZero() {
			continue
		}
		ops = append(ops, repository.CompanyUpdateOp{ID: existing.ID, Patch: patch})
		updated++
	}

	if len(ops) > 0 {
		if err := s.companies.BulkUpdate(ctx, ops); err != nil {
			return 0, 0, fmt.Errorf("update companies: %w", err)
		}
	}
	for start := 0; start < len(creations); start += chunkSize {
		end := start + chunkSize
		if end > len(creations) {
			end = len(creations)
		}
		if _, err := s.companies.BulkInsert(ctx, creations[start:end]); err != nil {
			return 0, 0, fmt.Errorf("create companies: %w", err)
		}
	}
	return created, updated, nil
}

// deriveCompanies folds the contact rows into one draft per company name,
// preserving first-appearance order.
func deriveCompanies(contacts []entity.Contact, actor Actor) ([]string, map[string]entity.Company) {
	var names []string
	drafts := make(map[string]entity.Company)

	for _, c := range contacts {
		name := strings.TrimSpace(c.CompanyName)
		if name == "" {
			continue
		}
		draft, ok := drafts[name]
		if !ok {
			names = append(names, name)
			draft = entity.Company{
				CompanyName: name,
				CreatedBy:   actor.Name,
			}
			if actor.ID != uuid.Nil {
				id := actor.ID
				draft.UploaderID = &id
			}
		}
		mergeCompanyDraft(&draft, c)
		drafts[name] = draft
	}
	return names, drafts
}

// mergeCompanyDraft copies company-level attributes from a contact row into
// the draft, filling only fields the draft does not have yet. First non-empty
// value wins; later rows never overwrite it. This is the single place the
// merge policy lives.
func mergeCompanyDraft(draft *entity.Company, c entity.Contact) {
	fill := func(dst *string, value string) {
		if *dst == "" && value != "" {
			*dst = value
		}
	}
	fill(&draft.Phone, c.Phone)
	fill(&draft.Address1, c.Address1)
	fill(&draft.Address2, c.Address2)
	fill(&draft.City, c.City)
	fill(&draft.State, c.State)
	fill(&draft.ZipCode, c.ZipCode)
	fill(&draft.Country, c.Country)
	fill(&draft.OtherCountry, c.OtherCountry)
	fill(&draft.Website, c.Website)
	fill(&draft.Revenue, c.Revenue)
	fill(&draft.EmployeeSize, c.EmployeeSize)
	fill(&draft.Industry, c.Industry)
	fill(&draft.OtherIndustry, c.OtherIndustry)
	fill(&draft.SubIndustry, c.SubIndustry)
	fill(&draft.Technology, c.Technology)
	fill(&draft.CompanyLinkedInURL, c.ContactLinkedIn)
}

// buildCompanyPatch keeps the draft fields that would fill a gap in the
// stored company. Fields the stored company already has are left alone, as
// are the identity fields.
func buildCompanyPatch(draft, existing entity.Company) repository.CompanyPatch {
	pick := func(draftValue, existingValue string) string {
		if draftValue != "" && existingValue == "" {
			return draftValue
		}
		return ""
	}
	return repository.CompanyPatch{
		Phone:              pick(draft.Phone, existing.Phone),
		Address1:           pick(draft.Address1, existing.Address1),
		Address2:           pick(draft.Address2, existing.Address2),
		City:               pick(draft.City, existing.City),
		State:              pick(draft.State, existing.State),
		ZipCode:            pick(draft.ZipCode, existing.ZipCode),
		Country:            pick(draft.Country, existing.Country),
		OtherCountry:       pick(draft.OtherCountry, existing.OtherCountry),
		Website:            pick(draft.Website, existing.Website),
		Revenue:            pick(draft.Revenue, existing.Revenue),
		EmployeeSize:       pick(draft.EmployeeSize, existing.EmployeeSize),
		Industry:           pick(draft.Industry, existing.Industry),
		OtherIndustry:      pick(draft.OtherIndustry, existing.OtherIndustry),
		SubIndustry:        pick(draft.SubIndustry, existing.SubIndustry),
		Technology:         pick(draft.Technology, existing.Technology),
		CompanyLinkedInURL: pick(draft.CompanyLinkedInURL, existing.CompanyLinkedInURL),
	}
}

// commitContacts inserts the surviving rows in chunks. The store drops rows
// whose email raced in since the existence check; those are logged and
// counted as not imported, and the remaining chunks still run.
func (s *ImportService) commitContacts(ctx context.Context, contacts []entity.Contact) (int, []string, error) {
	totalInserted := 0
	importedEmails := make([]string, 0, len(contacts))

	for start := 0; start < len(contacts); start += chunkSize {
		end := start + chunkSize
		if end > len(contacts) {
			end = len(contacts)
		}
		chunk := contacts[start:end]

		result, err := s.contacts.BulkInsert(ctx, chunk)
		if err != nil {
			return 0, nil, fmt.Errorf("insert contacts: %w", err)
		}
		if dropped := len(chunk) - len(result.InsertedEmails); dropped > 0 {
			log.Printf("import: chunk %d partially applied rows=%d dropped=%d", start/chunkSize+1, len(result.InsertedEmails), dropped)
		}
		totalInserted += len(result.InsertedEmails)
		importedEmails = append(importedEmails, result.InsertedEmails...)
	}
	return totalInserted, importedEmails, nil
}

// logActivity records the audit entry for an import. Failures are logged and
// swallowed; the import result never depends on the audit log.
func (s *ImportService) logActivity(ctx context.Context, count int, actor Actor) {
	details := fmt.Sprintf("%d Contacts imported by %s", count, actor.Name)
	if err := s.activity.Create(ctx, "Contacts imported", details, actor.ID, actor.Name); err != nil {
		log.Printf("import: create activity log failed error=%v", err)
	}
}

// truncatedEmailList renders at most the first 10 emails, with a suffix
// noting how many more were omitted.
func truncatedEmailList(emails []string) string {
	shown := emails
	if len(shown) > 10 {
		shown = shown[:10]
	}
	list := strings.Join(shown, ", ")
	if len(emails) > 10 {
		list += fmt.Sprintf(" and %d more", len(emails)-10)
	}
	return list
}
