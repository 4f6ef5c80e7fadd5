package service

import (
	"context"

	"github.com/amfdata/contact-exchange/internal/dto"
	"github.com/amfdata/contact-exchange/internal/repository"
)

// ActivityService reads the administrative audit log.
type ActivityService struct {
	repo repository.ActivityRepository
}

// NewActivityService creates a new instance of ActivityService.
func NewActivityService(repo repository.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// ListActivities returns one page of audit entries, newest first.
func (s *ActivityService) ListActivities(ctx context.Context, page, perPage int) (dto.ActivityPage, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	activities, total, err := s.repo.List(ctx, page, perPage)
	if err != nil {
		return dto.ActivityPage{}, err
	}
	return dto.ActivityPage{
		Activities: activities,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
	}, nil
}
