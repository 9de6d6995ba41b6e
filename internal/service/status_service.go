package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// StatusService manages the publication status registry. Statuses are an
// open, admin-managed set; the workflow treats the registry as read-only.
type StatusService struct {
	statusRepo repository.StatusRepository
	isStaff    StaffChecker
}

// CreateStatusInput carries the fields for a new publication status.
type CreateStatusInput struct {
	ActorID     uint
	Name        string
	Slug        string
	Description string
	Icon        string
	Color       string
	IsPublished bool
	IsActive    bool
	SortOrder   int
}

// NewStatusService creates a new StatusService.
func NewStatusService(statusRepo repository.StatusRepository, isStaff StaffChecker) *StatusService {
	return &StatusService{statusRepo: statusRepo, isStaff: isStaff}
}

// GetBySlug returns the status with the given slug or NotFound.
func (s *StatusService) GetBySlug(ctx context.Context, slug string) (*models.PostStatus, error) {
	status, err := s.statusRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, "status", slug)
	}
	return status, nil
}

// ListActive returns selectable statuses ordered for display.
func (s *StatusService) ListActive(ctx context.Context) ([]*models.PostStatus, error) {
	return s.statusRepo.ListActive(ctx)
}

// List returns every status, including inactive ones. Staff only.
func (s *StatusService) List(ctx context.Context, actorID uint) ([]*models.PostStatus, error) {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	return s.statusRepo.List(ctx)
}

// Create adds a status to the registry. Staff only.
func (s *StatusService) Create(ctx context.Context, in CreateStatusInput) (*models.PostStatus, error) {
	if err := s.requireStaff(ctx, in.ActorID); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	slug := in.Slug
	if slug == "" {
		slug = validation.Slugify(in.Name)
	}
	if slug == "" {
		return nil, models.NewValidationError("Slug is required")
	}

	status := &models.PostStatus{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
		IsPublished: in.IsPublished,
		IsActive:    in.IsActive,
		SortOrder:   in.SortOrder,
	}
	if err := s.statusRepo.Create(ctx, status); err != nil {
		if isDuplicate(err) {
			return nil, models.NewDuplicateSlugError(slug)
		}
		return nil, err
	}
	return status, nil
}

// Update edits an existing status. Staff only.
func (s *StatusService) Update(ctx context.Context, actorID uint, status *models.PostStatus) error {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return err
	}
	return s.statusRepo.Update(ctx, status)
}

// Deactivate hides a status from selection without deleting it, so posts
// referencing it keep their state.
func (s *StatusService) Deactivate(ctx context.Context, actorID, statusID uint) error {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return err
	}
	status, err := s.statusRepo.GetByID(ctx, statusID)
	if err != nil {
		return notFoundOr(err, "status", statusID)
	}
	status.IsActive = false
	return s.statusRepo.Update(ctx, status)
}

func (s *StatusService) requireStaff(ctx context.Context, actorID uint) error {
	staff, err := s.isStaff(ctx, actorID)
	if err != nil {
		return err
	}
	if !staff {
		return models.NewForbiddenError("Only staff members can manage statuses")
	}
	return nil
}
