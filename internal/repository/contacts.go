package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amfdata/contact-exchange/internal/dto"
	"github.com/amfdata/contact-exchange/internal/entity"
)

// ErrContactNotFound is returned when no contact matches the lookup criteria.
var ErrContactNotFound = errors.New("contact not found")

// ErrContactDuplicate is returned by Create when the email is already taken.
var ErrContactDuplicate = errors.New("contact already exists")

// BulkInsertResult reports which rows of a bulk insert actually landed.
// Rows whose email already existed are absent from InsertedEmails; they are
// not an error.
type BulkInsertResult struct {
	InsertedEmails []string
}

// ContactsRepository describes persistence operations for contacts.
type ContactsRepository interface {
	FindExistingEmails(ctx context.Context, emails []string) ([]string, error)
	BulkInsert(ctx context.Context, contacts []entity.Contact) (BulkInsertResult, error)
	FindByEmail(ctx context.Context, email string) (*entity.Contact, error)
	Create(ctx context.Context, contact *entity.Contact) error
	List(ctx context.Context, filter dto.ContactListFilter) ([]entity.Contact, int, error)
	UpdateSyncDate(ctx context.Context, email string, syncedAt time.Time, linkedIn string) error
}

// PGXContactsRepository implements ContactsRepository using pgx.
type PGXContactsRepository struct {
	pool pgxPool
}

// NewPGXContactsRepository wires a pgx backed repository.
func NewPGXContactsRepository(pool *pgxpool.Pool) *PGXContactsRepository {
	return &PGXContactsRepository{pool: pool}
}

// FindExistingEmails returns the subset of the given emails that already
// exist in the store. Callers chunk the input to bound query size.
func (r *PGXContactsRepository) FindExistingEmails(ctx context.Context, emails []string) ([]string, error) {
	if len(emails) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, `SELECT email FROM contacts WHERE email = ANY($1)`, emails)
	if err != nil {
		return nil, fmt.Errorf("find existing emails: %w", err)
	}
	defer rows.Close()

	var existing []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan existing email: %w", err)
		}
		existing = append(existing, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate existing emails: %w", err)
	}
	return existing, nil
}

const contactColumns = `
        first_name, last_name, full_name, job_title, job_level, job_role,
        email, phone, direct_phone, address1, address2, city, state, zip_code,
        country, other_country, website, industry, other_industry, sub_industry,
        technology, contact_linkedin, last_update_date, company_name,
        employee_size, revenue, amf_notes, created_by, uploader_id`

const bulkInsertContactsSQL = `
        INSERT INTO contacts (` + contactColumns + `)
        SELECT
            t.first_name, t.last_name, t.full_name, t.job_title, t.job_level, t.job_role,
            t.email, t.phone, t.direct_phone, t.address1, t.address2, t.city, t.state, t.zip_code,
            t.country, t.other_country, t.website, t.industry, t.other_industry, t.sub_industry,
            t.technology, t.contact_linkedin, NULLIF(t.last_update_date, '')::timestamptz, t.company_name,
            t.employee_size, t.revenue, t.amf_notes, t.created_by, NULLIF(t.uploader_id, '')::uuid
        FROM unnest(
            $1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::text[],
            $7::text[], $8::text[], $9::text[], $10::text[], $11::text[], $12::text[], $13::text[], $14::text[],
            $15::text[], $16::text[], $17::text[], $18::text[], $19::text[], $20::text[],
            $21::text[], $22::text[], $23::text[], $24::text[],
            $25::text[], $26::text[], $27::text[], $28::text[], $29::text[]
        ) AS t(
            first_name, last_name, full_name, job_title, job_level, job_role,
            email, phone, direct_phone, address1, address2, city, state, zip_code,
            country, other_country, website, industry, other_industry, sub_industry,
            technology, contact_linkedin, last_update_date, company_name,
            employee_size, revenue, amf_notes, created_by, uploader_id
        )
        ON CONFLICT (email) DO NOTHING
        RETURNING email;
    `

// BulkInsert inserts the given contacts in one round trip. Rows that collide
// with an existing email are skipped by the store and simply missing from the
// result; any other failure fails the whole statement.
func (r *PGXContactsRepository) BulkInsert(ctx context.Context, contacts []entity.Contact) (BulkInsertResult, error) {
	var result BulkInsertResult
	if len(contacts) == 0 {
		return result, nil
	}

	cols := &contactColumnArrays{}
	for _, c := range contacts {
		cols.append(c)
	}

	rows, err := r.pool.Query(ctx, bulkInsertContactsSQL, cols.args()...)
	if err != nil {
		return result, fmt.Errorf("bulk insert contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return result, fmt.Errorf("scan inserted email: %w", err)
		}
		result.InsertedEmails = append(result.InsertedEmails, email)
	}
	if err := rows.Err(); err != nil {
		return result, fmt.Errorf("bulk insert contacts: %w", err)
	}
	return result, nil
}

// contactColumnArrays accumulates contact fields as parallel arrays for the
// unnest-based bulk insert. The field list is fixed and explicit.
type contactColumnArrays struct {
	firstName, lastName, fullName, jobTitle, jobLevel, jobRole       []string
	email, phone, directPhone, address1, address2, city, state, zip  []string
	country, otherCountry, website, industry, otherIndustry, subInd  []string
	technology, contactLinkedIn, lastUpdateDate, companyName         []string
	employeeSize, revenue, amfNotes, createdBy, uploaderID           []string
}

func (a *contactColumnArrays) append(c entity.Contact) {
	a.firstName = append(a.firstName, c.FirstName)
	a.lastName = append(a.lastName, c.LastName)
	a.fullName = append(a.fullName, c.FullName)
	a.jobTitle = append(a.jobTitle, c.JobTitle)
	a.jobLevel = append(a.jobLevel, c.JobLevel)
	a.jobRole = append(a.jobRole, c.JobRole)
	a.email = append(a.email, c.Email)
	a.phone = append(a.phone, c.Phone)
	a.directPhone = append(a.directPhone, c.DirectPhone)
	a.address1 = append(a.address1, c.Address1)
	a.address2 = append(a.address2, c.Address2)
	a.city = append(a.city, c.City)
	a.state = append(a.state, c.State)
	a.zip = append(a.zip, c.ZipCode)
	a.country = append(a.country, c.Country)
	a.otherCountry = append(a.otherCountry, c.OtherCountry)
	a.website = append(a.website, c.Website)
	a.industry = append(a.industry, c.Industry)
	a.otherIndustry = append(a.otherIndustry, c.OtherIndustry)
	a.subInd = append(a.subInd, c.SubIndustry)
	a.technology = append(a.technology, c.Technology)
	a.contactLinkedIn = append(a.contactLinkedIn, c.ContactLinkedIn)
	a.lastUpdateDate = append(a.lastUpdateDate, formatTimestamp(c.LastUpdateDate))
	a.companyName = append(a.companyName, c.CompanyName)
	a.employeeSize = append(a.employeeSize, c.EmployeeSize)
	a.revenue = append(a.revenue, c.Revenue)
	a.amfNotes = append(a.amfNotes, c.AmfNotes)
	a.createdBy = append(a.createdBy, c.CreatedBy)
	a.uploaderID = append(a.uploaderID, uuidOrEmpty(c.UploaderID))
}

func (a *contactColumnArrays) args() []any {
	return []any{
		a.firstName, a.lastName, a.fullName, a.jobTitle, a.jobLevel, a.jobRole,
		a.email, a.phone, a.directPhone, a.address1, a.address2, a.city, a.state, a.zip,
		a.country, a.otherCountry, a.website, a.industry, a.otherIndustry, a.subInd,
		a.technology, a.contactLinkedIn, a.lastUpdateDate, a.companyName,
		a.employeeSize, a.revenue, a.amfNotes, a.createdBy, a.uploaderID,
	}
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func uuidOrEmpty(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

const selectContactSQL = `
        SELECT id,` + contactColumns + `, sync_date, created_at, updated_at
        FROM contacts`

// FindByEmail fetches a contact by its natural key.
func (r *PGXContactsRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	row := r.pool.QueryRow(ctx, selectContactSQL+` WHERE email = $1`, email)
	contact, err := scanContact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrContactNotFound
		}
		return nil, fmt.Errorf("query contact by email: %w", err)
	}
	return contact, nil
}

// Create inserts a single contact row.
func (r *PGXContactsRepository) Create(ctx context.Context, contact *entity.Contact) error {
	if contact == nil {
		return fmt.Errorf("contact payload is nil")
	}

	result, err := r.BulkInsert(ctx, []entity.Contact{*contact})
	if err != nil {
		return err
	}
	if len(result.InsertedEmails) == 0 {
		return fmt.Errorf("contact %q: %w", contact.Email, ErrContactDuplicate)
	}
	return nil
}

// List retrieves contacts matching the provided filter, newest first.
func (r *PGXContactsRepository) List(ctx context.Context, filter dto.ContactListFilter) ([]entity.Contact, int, error) {
	var (
		clauses []string
		args    []any
		idx     = 1
	)

	like := func(column, value string) {
		clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", column, idx))
		args = append(args, fmt.Sprintf("%%%s%%", value))
		idx++
	}

	if filter.CompanyName != "" {
		like("company_name", filter.CompanyName)
	}
	if filter.EmployeeSize != "" {
		like("employee_size", filter.EmployeeSize)
	}
	if filter.Revenue != "" {
		like("revenue", filter.Revenue)
	}
	if filter.Industry != "" {
		like("industry", filter.Industry)
	}
	if filter.Country != "" {
		like("country", filter.Country)
	}
	if filter.State != "" {
		like("state", filter.State)
	}
	if filter.JobTitle != "" {
		like("job_title", filter.JobTitle)
	}
	if filter.JobLevel != "" {
		like("job_level", filter.JobLevel)
	}
	if filter.JobRole != "" {
		like("job_role", filter.JobRole)
	}
	if filter.UploaderID != nil {
		clauses = append(clauses, fmt.Sprintf("uploader_id = $%d", idx))
		args = append(args, *filter.UploaderID)
		idx++
	}
	for _, term := range strings.Fields(filter.Search) {
		pattern := fmt.Sprintf("%%%s%%", term)
		clauses = append(clauses, fmt.Sprintf(
			"(full_name ILIKE $%d OR email ILIKE $%d OR company_name ILIKE $%d OR job_title ILIKE $%d)",
			idx, idx, idx, idx))
		args = append(args, pattern)
		idx++
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM contacts"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	query := fmt.Sprintf("%s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", selectContactSQL, where, idx, idx+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []entity.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, *contact)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, total, nil
}

// UpdateSyncDate stamps a contact after a successful LinkedIn sync, storing
// the resolved profile URL when the worker found one.
func (r *PGXContactsRepository) UpdateSyncDate(ctx context.Context, email string, syncedAt time.Time, linkedIn string) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE contacts
        SET sync_date = $1,
            contact_linkedin = CASE WHEN $2 <> '' THEN $2 ELSE contact_linkedin END,
            updated_at = NOW()
        WHERE email = $3
    `, syncedAt, linkedIn, email)
	if err != nil {
		return fmt.Errorf("update sync date: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrContactNotFound
	}
	return nil
}

func scanContact(row pgx.Row) (*entity.Contact, error) {
	var (
		c              entity.Contact
		lastUpdateDate sql.NullTime
		syncDate       sql.NullTime
		uploaderID     sql.NullString
	)

	err := row.Scan(
		&c.ID,
		&c.FirstName, &c.LastName, &c.FullName, &c.JobTitle, &c.JobLevel, &c.JobRole,
		&c.Email, &c.Phone, &c.DirectPhone, &c.Address1, &c.Address2, &c.City, &c.State, &c.ZipCode,
		&c.Country, &c.OtherCountry, &c.Website, &c.Industry, &c.OtherIndustry, &c.SubIndustry,
		&c.Technology, &c.ContactLinkedIn, &lastUpdateDate, &c.CompanyName,
		&c.EmployeeSize, &c.Revenue, &c.AmfNotes, &c.CreatedBy, &uploaderID,
		&syncDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastUpdateDate.Valid {
		ts := lastUpdateDate.Time
		c.LastUpdateDate = &ts
	}
	if syncDate.Valid {
		ts := syncDate.Time
		c.SyncDate = &ts
	}
	if uploaderID.Valid {
		parsed, err := uuid.Parse(uploaderID.String)
		if err != nil {
			return nil, fmt.Errorf("parse uploader_id: %w", err)
		}
		c.UploaderID = &parsed
	}
	return &c, nil
}
