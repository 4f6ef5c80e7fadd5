package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amfdata/contact-exchange/internal/dto"
	"github.com/amfdata/contact-exchange/internal/entity"
)

// CompanyPatch holds the fields a bulk update may fill in on an existing
// company. Empty strings mean "leave untouched"; identity fields
// (companyName, createdBy, uploaderId) are deliberately absent.
type CompanyPatch struct {
	Phone              string
	Address1           string
	Address2           string
	City               string
	State              string
	ZipCode            string
	Country            string
	OtherCountry       string
	Website            string
	Revenue            string
	EmployeeSize       string
	Industry           string
	OtherIndustry      string
	SubIndustry        string
	Technology         string
	CompanyLinkedInURL string
}

// IsZero reports whether the patch would change nothing.
func (p CompanyPatch) IsZero() bool {
	return p == CompanyPatch{}
}

// CompanyUpdateOp pairs an existing company id with the fields to fill in.
type CompanyUpdateOp struct {
	ID    uuid.UUID
	Patch CompanyPatch
}

// CompaniesRepository describes persistence operations for companies.
type CompaniesRepository interface {
	FindByNames(ctx context.Context, names []string) ([]entity.Company, error)
	BulkUpdate(ctx context.Context, ops []CompanyUpdateOp) error
	BulkInsert(ctx context.Context, companies []entity.Company) (int, error)
	List(ctx context.Context, filter dto.CompanyListFilter) ([]entity.Company, int, error)
}

// PGXCompaniesRepository implements CompaniesRepository using pgx.
type PGXCompaniesRepository struct {
	pool pgxPool
}

// NewPGXCompaniesRepository wires a pgx backed repository.
func NewPGXCompaniesRepository(pool *pgxpool.Pool) *PGXCompaniesRepository {
	return &PGXCompaniesRepository{pool: pool}
}

const companyColumns = `
        company_name, phone, address1, address2, city, state, zip_code,
        country, other_country, website, revenue, employee_size,
        industry, other_industry, sub_industry, technology,
        company_linkedin_url, created_by, uploader_id`

const selectCompanySQL = `SELECT id,` + companyColumns + `, created_at, updated_at FROM companies`

// FindByNames fetches the companies whose name exactly matches any of the
// given names. Matching is case-sensitive.
func (r *PGXCompaniesRepository) FindByNames(ctx context.Context, names []string) ([]entity.Company, error) {
	if len(names) == 0 {
		return nil, nil
	}

	rows, err := r.pool.Query(ctx, selectCompanySQL+` WHERE company_name = ANY($1)`, names)
	if err != nil {
		return nil, fmt.Errorf("find companies by name: %w", err)
	}
	defer rows.Close()

	return collectCompanies(rows)
}

// BulkUpdate applies all update operations in a single batched round trip.
// Each statement only fills fields; identity columns are never touched.
func (r *PGXCompaniesRepository) BulkUpdate(ctx context.Context, ops []CompanyUpdateOp) error {
	if len(ops) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, op := range ops {
		query, args := buildCompanyUpdate(op)
		if query == "" {
			continue
		}
		batch.Queue(query, args...)
	}
	if batch.Len() == 0 {
		return nil
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("bulk update companies: %w", err)
		}
	}
	return nil
}

// buildCompanyUpdate renders one UPDATE statement for the non-empty patch
// fields. The field list is explicit so schema changes surface here.
func buildCompanyUpdate(op CompanyUpdateOp) (string, []any) {
	fields := []struct {
		column string
		value  string
	}{
		{"phone", op.Patch.Phone},
		{"address1", op.Patch.Address1},
		{"address2", op.Patch.Address2},
		{"city", op.Patch.City},
		{"state", op.Patch.State},
		{"zip_code", op.Patch.ZipCode},
		{"country", op.Patch.Country},
		{"other_country", op.Patch.OtherCountry},
		{"website", op.Patch.Website},
		{"revenue", op.Patch.Revenue},
		{"employee_size", op.Patch.EmployeeSize},
		{"industry", op.Patch.Industry},
		{"other_industry", op.Patch.OtherIndustry},
		{"sub_industry", op.Patch.SubIndustry},
		{"technology", op.Patch.Technology},
		{"company_linkedin_url", op.Patch.CompanyLinkedInURL},
	}

	setClauses := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	idx := 1

	for _, f := range fields {
		if f.value == "" {
			continue
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", f.column, idx))
		args = append(args, f.value)
		idx++
	}
	if len(setClauses) == 0 {
		return "", nil
	}

	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, op.ID)
	query := fmt.Sprintf("UPDATE companies SET %s WHERE id = $%d", strings.Join(setClauses, ", "), idx)
	return query, args
}

const bulkInsertCompaniesSQL = `
        INSERT INTO companies (` + companyColumns + `)
        SELECT
            t.company_name, t.phone, t.address1, t.address2, t.city, t.state, t.zip_code,
            t.country, t.other_country, t.website, t.revenue, t.employee_size,
            t.industry, t.other_industry, t.sub_industry, t.technology,
            t.company_linkedin_url, t.created_by, NULLIF(t.uploader_id, '')::uuid
        FROM unnest(
            $1::text[], $2::text[], $3::text[], $4::text[], $5::text[], $6::text[], $7::text[],
            $8::text[], $9::text[], $10::text[], $11::text[], $12::text[],
            $13::text[], $14::text[], $15::text[], $16::text[],
            $17::text[], $18::text[], $19::text[]
        ) AS t(
            company_name, phone, address1, address2, city, state, zip_code,
            country, other_country, website, revenue, employee_size,
            industry, other_industry, sub_industry, technology,
            company_linkedin_url, created_by, uploader_id
        );
    `

// BulkInsert creates the given companies in one statement and returns how
// many rows were written. A name collision (for example when a concurrent
// import created the same company between lookup and insert) fails the whole
// statement; the store's unique constraint arbitrates that race.
func (r *PGXCompaniesRepository) BulkInsert(ctx context.Context, companies []entity.Company) (int, error) {
	if len(companies) == 0 {
		return 0, nil
	}

	var (
		names, phones, addr1s, addr2s, cities, states, zips  []string
		countries, otherCountries, websites, revenues, sizes []string
		industries, otherIndustries, subIndustries, techs    []string
		linkedIns, createdBys, uploaderIDs                   []string
	)
	for _, c := range companies {
		names = append(names, c.CompanyName)
		phones = append(phones, c.Phone)
		addr1s = append(addr1s, c.Address1)
		addr2s = append(addr2s, c.Address2)
		cities = append(cities, c.City)
		states = append(states, c.State)
		zips = append(zips, c.ZipCode)
		countries = append(countries, c.Country)
		otherCountries = append(otherCountries, c.OtherCountry)
		websites = append(websites, c.Website)
		revenues = append(revenues, c.Revenue)
		sizes = append(sizes, c.EmployeeSize)
		industries = append(industries, c.Industry)
		otherIndustries = append(otherIndustries, c.OtherIndustry)
		subIndustries = append(subIndustries, c.SubIndustry)
		techs = append(techs, c.Technology)
		linkedIns = append(linkedIns, c.CompanyLinkedInURL)
		createdBys = append(createdBys, c.CreatedBy)
		uploaderIDs = append(uploaderIDs, uuidOrEmpty(c.UploaderID))
	}

	cmd, err := r.pool.Exec(ctx, bulkInsertCompaniesSQL,
		names, phones, addr1s, addr2s, cities, states, zips,
		countries, otherCountries, websites, revenues, sizes,
		industries, otherIndustries, subIndustries, techs,
		linkedIns, createdBys, uploaderIDs,
	)
	if err != nil {
		return 0, fmt.Errorf("bulk insert companies: %w", err)
	}
	return int(cmd.RowsAffected()), nil
}

// List retrieves companies matching the provided filter, newest first.
func (r *PGXCompaniesRepository) List(ctx context.Context, filter dto.CompanyListFilter) ([]entity.Company, int, error) {
	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if filter.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(company_name ILIKE $%d OR website ILIKE $%d)", idx, idx))
		args = append(args, fmt.Sprintf("%%%s%%", filter.Search))
		idx++
	}
	if filter.Industry != "" {
		clauses = append(clauses, fmt.Sprintf("industry ILIKE $%d", idx))
		args = append(args, fmt.Sprintf("%%%s%%", filter.Industry))
		idx++
	}
	if filter.Country != "" {
		clauses = append(clauses, fmt.Sprintf("country ILIKE $%d", idx))
		args = append(args, fmt.Sprintf("%%%s%%", filter.Country))
		idx++
	}
	if filter.State != "" {
		clauses = append(clauses, fmt.Sprintf("state ILIKE $%d", idx))
		args = append(args, fmt.Sprintf("%%%s%%", filter.State))
		idx++
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM companies"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
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

	query := fmt.Sprintf("%s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", selectCompanySQL, where, idx, idx+1)
	args = append(args, perPage, (page-1)*perPage)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	companies, err := collectCompanies(rows)
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func collectCompanies(rows pgx.Rows) ([]entity.Company, error) {
	var companies []entity.Company
	for rows.Next() {
		var (
			c          entity.Company
			uploaderID sql.NullString
		)
		err := rows.Scan(
			&c.ID,
			&c.CompanyName, &c.Phone, &c.Address1, &c.Address2, &c.City, &c.State, &c.ZipCode,
			&c.Country, &c.OtherCountry, &c.Website, &c.Revenue, &c.EmployeeSize,
			&c.Industry, &c.OtherIndustry, &c.SubIndustry, &c.Technology,
			&c.CompanyLinkedInURL, &c.CreatedBy, &uploaderID,
			&c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		if uploaderID.Valid {
			parsed, err := uuid.Parse(uploaderID.String)
			if err != nil {
				return nil, fmt.Errorf("parse uploader_id: %w", err)
			}
			c.UploaderID = &parsed
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate companies: %w", err)
	}
	return companies, nil
}
