package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/amfdata/contact-exchange/internal/dto"
	"github.com/amfdata/contact-exchange/internal/entity"
	"github.com/amfdata/contact-exchange/internal/repository"
	"github.com/amfdata/contact-exchange/internal/service/scoring"
)

// ContactsService exposes read and single-create operations on the contact
// catalogue. Bulk ingestion lives in ImportService.
type ContactsService struct {
	contacts  repository.ContactsRepository
	companies repository.CompaniesRepository
	activity  repository.ActivityRepository
	validator *ContactValidator
}

// NewContactsService creates a new instance of ContactsService.
func NewContactsService(contacts repository.ContactsRepository, companies repository.CompaniesRepository, activity repository.ActivityRepository, validator *ContactValidator) *ContactsService {
	return &ContactsService{contacts: contacts, companies: companies, activity: activity, validator: validator}
}

// ListContacts returns one page of contacts decorated with their data
// quality score.
func (s *ContactsService) ListContacts(ctx context.Context, filter dto.ContactListFilter) (dto.ContactPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}
	if filter.PerPage > 100 {
		filter.PerPage = 100
	}

	contacts, total, err := s.contacts.List(ctx, filter)
	if err != nil {
		return dto.ContactPage{}, err
	}

	scored := make([]dto.ContactWithScore, 0, len(contacts))
	for _, c := range contacts {
		scored = append(scored, dto.ContactWithScore{
			Contact: c,
			Score:   scoring.ComputeScore(c).Total,
		})
	}
	return dto.ContactPage{
		Contacts: scored,
		Total:    total,
		Page:     filter.Page,
		PerPage:  filter.PerPage,
	}, nil
}

// GetContact fetches a single contact by email.
func (s *ContactsService) GetContact(ctx context.Context, email string) (*entity.Contact, error) {
	normalized, err := s.validator.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	return s.contacts.FindByEmail(ctx, normalized)
}

// CreateContact validates and stores one manually entered contact, creating
// the referenced company when it does not exist yet. The implied company is
// derived the same way the bulk importer derives it.
func (s *ContactsService) CreateContact(ctx context.Context, req dto.CreateContactRequest, actor Actor) (*entity.Contact, error) {
	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.JobTitle == "" || req.CompanyName == "" {
		return nil, errors.New(requiredFieldsReason)
	}

	email, err := s.validator.ValidateEmail(req.Email)
	if err != nil {
		return nil, err
	}

	row := dto.ImportContactRow{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		FullName:        req.FullName,
		JobTitle:        req.JobTitle,
		JobLevel:        req.JobLevel,
		JobRole:         req.JobRole,
		Email:           email,
		Phone:           s.validator.NormalizePhone(req.Phone),
		DirectPhone:     s.validator.NormalizePhone(req.DirectPhone),
		Address1:        req.Address1,
		Address2:        req.Address2,
		City:            req.City,
		State:           req.State,
		ZipCode:         req.ZipCode,
		Country:         req.Country,
		OtherCountry:    req.OtherCountry,
		Website:         req.Website,
		Industry:        req.Industry,
		OtherIndustry:   req.OtherIndustry,
		SubIndustry:     req.SubIndustry,
		ContactLinkedIn: s.validator.SanitizeLinkedIn(req.ContactLinkedIn),
		CompanyName:     req.CompanyName,
		EmployeeSize:    req.EmployeeSize,
		Revenue:         req.Revenue,
		AmfNotes:        req.AmfNotes,
	}
	contact := buildContact(row, actor)

	names, drafts := deriveCompanies([]entity.Contact{contact}, actor)
	if len(names) == 1 {
		existing, err := s.companies.FindByNames(ctx, names)
		if err != nil {
			return nil, fmt.Errorf("look up company: %w", err)
		}
		if len(existing) == 0 {
			if _, err := s.companies.BulkInsert(ctx, []entity.Company{drafts[names[0]]}); err != nil {
				return nil, fmt.Errorf("create company: %w", err)
			}
		}
	}

	if err := s.contacts.Create(ctx, &contact); err != nil {
		return nil, err
	}

	details := fmt.Sprintf("Contact %s created by %s", contact.Email, actor.Name)
	if err := s.activity.Create(ctx, "Contact created", details, actor.ID, actor.Name); err != nil {
		// audit failures never surface to the caller
		log.Printf("contacts: create activity log failed error=%v", err)
	}
	return &contact, nil
}
