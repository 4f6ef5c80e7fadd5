package handler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/amfdata/contact-exchange/internal/dto"
	"github.com/amfdata/contact-exchange/internal/entity"
	"github.com/amfdata/contact-exchange/internal/repository"
)

type stubContactsRepo struct {
	findExistingEmails func(ctx context.Context, emails []string) ([]string, error)
	bulkInsert         func(ctx context.Context, contacts []entity.Contact) (repository.BulkInsertResult, error)
	findByEmail        func(ctx context.Context, email string) (*entity.Contact, error)
	create             func(ctx context.Context, contact *entity.Contact) error
	list               func(ctx context.Context, filter dto.ContactListFilter) ([]entity.Contact, int, error)
	updateSyncDate     func(ctx context.Context, email string, syncedAt time.Time, linkedIn string) error
}

func (s *stubContactsRepo) FindExistingEmails(ctx context.Context, emails []string) ([]string, error) {
	if s.findExistingEmails != nil {
		return s.findExistingEmails(ctx, emails)
	}
	return nil, nil
}

func (s *stubContactsRepo) BulkInsert(ctx context.Context, contacts []entity.Contact) (repository.BulkInsertResult, error) {
	if s.bulkInsert != nil {
		return s.bulkInsert(ctx, contacts)
	}
	result := repository.BulkInsertResult{}
	for _, c := range contacts {
		result.InsertedEmails = append(result.InsertedEmails, c.Email)
	}
	return result, nil
}

func (s *stubContactsRepo) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	if s.findByEmail != nil {
		return s.findByEmail(ctx, email)
	}
	return nil, repository.ErrContactNotFound
}

func (s *stubContactsRepo) Create(ctx context.Context, contact *entity.Contact) error {
	if s.create != nil {
		return s.create(ctx, contact)
	}
	return nil
}

func (s *stubContactsRepo) List(ctx context.Context, filter dto.ContactListFilter) ([]entity.Contact, int, error) {
	if s.list != nil {
		return s.list(ctx, filter)
	}
	return nil, 0, nil
}

func (s *stubContactsRepo) UpdateSyncDate(ctx context.Context, email string, syncedAt time.Time, linkedIn string) error {
	if s.updateSyncDate != nil {
		return s.updateSyncDate(ctx, email, syncedAt, linkedIn)
	}
	return nil
}

type stubCompaniesRepo struct {
	findByNames func(ctx context.Context, names []string) ([]entity.Company, error)
	bulkUpdate  func(ctx context.Context, ops []repository.CompanyUpdateOp) error
	bulkInsert  func(ctx context.Context, companies []entity.Company) (int, error)
	list        func(ctx context.Context, filter dto.CompanyListFilter) ([]entity.Company, int, error)
}

func (s *stubCompaniesRepo) FindByNames(ctx context.Context, names []string) ([]entity.Company, error) {
	if s.findByNames != nil {
		return s.findByNames(ctx, names)
	}
	return nil, nil
}

func (s *stubCompaniesRepo) BulkUpdate(ctx context.Context, ops []repository.CompanyUpdateOp) error {
	if s.bulkUpdate != nil {
		return s.bulkUpdate(ctx, ops)
	}
	return nil
}

func (s *stubCompaniesRepo) BulkInsert(ctx context.Context, companies []entity.Company) (int, error) {
	if s.bulkInsert != nil {
		return s.bulkInsert(ctx, companies)
	}
	return len(companies), nil
}

func (s *stubCompaniesRepo) List(ctx context.Context, filter dto.CompanyListFilter) ([]entity.Company, int, error) {
	if s.list != nil {
		return s.list(ctx, filter)
	}
	return nil, 0, nil
}

type stubActivityRepo struct {
	created []string
	err     error
}

func (s *stubActivityRepo) Create(ctx context.Context, action, details string, userID uuid.UUID, userName string) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, action)
	return nil
}

func (s *stubActivityRepo) List(ctx context.Context, page, perPage int) ([]entity.Activity, int, error) {
	return nil, 0, nil
}

var errStubUnimplemented = errors.New("not implemented")
