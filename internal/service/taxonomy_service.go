package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// TaxonomyService manages categories and tags. Listings are public; writes
// are staff only.
type TaxonomyService struct {
	taxonomyRepo repository.TaxonomyRepository
	isStaff      StaffChecker
}

// CreateCategoryInput carries the fields for a new category.
type CreateCategoryInput struct {
	ActorID     uint
	Name        string
	Slug        string
	Description string
	ParentID    *uint
	Icon        string
	Color       string
	SortOrder   int
}

// CreateTagInput carries the fields for a new tag.
type CreateTagInput struct {
	ActorID     uint
	Name        string
	Slug        string
	Description string
	Color       string
}

// NewTaxonomyService creates a new TaxonomyService.
func NewTaxonomyService(taxonomyRepo repository.TaxonomyRepository, isStaff StaffChecker) *TaxonomyService {
	return &TaxonomyService{taxonomyRepo: taxonomyRepo, isStaff: isStaff}
}

// ListCategories returns the active categories in display order.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.taxonomyRepo.ListActiveCategories(ctx)
}

// GetCategory returns the category with the given slug.
func (s *TaxonomyService) GetCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.taxonomyRepo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, "category", slug)
	}
	return category, nil
}

// CreateCategory adds a category. Staff only.
func (s *TaxonomyService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
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

	category := &models.Category{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		ParentID:    in.ParentID,
		Icon:        in.Icon,
		Color:       in.Color,
		IsActive:    true,
		SortOrder:   in.SortOrder,
	}
	if err := s.taxonomyRepo.CreateCategory(ctx, category); err != nil {
		if isDuplicate(err) {
			return nil, models.NewDuplicateSlugError(slug)
		}
		return nil, err
	}
	return category, nil
}

// UpdateCategory edits a category. Staff only.
func (s *TaxonomyService) UpdateCategory(ctx context.Context, actorID uint, category *models.Category) error {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return err
	}
	return s.taxonomyRepo.UpdateCategory(ctx, category)
}

// DeleteCategory removes a category. Staff only. Posts in the category keep
// their rows with a cleared category reference.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, actorID, categoryID uint) error {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return err
	}
	return s.taxonomyRepo.DeleteCategory(ctx, categoryID)
}

// ListTags returns the active tags alphabetically.
func (s *TaxonomyService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.taxonomyRepo.ListActiveTags(ctx)
}

// GetTag returns the tag with the given slug.
func (s *TaxonomyService) GetTag(ctx context.Context, slug string) (*models.Tag, error) {
	tag, err := s.taxonomyRepo.GetTagBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, "tag", slug)
	}
	return tag, nil
}

// CreateTag adds a tag. Staff only.
func (s *TaxonomyService) CreateTag(ctx context.Context, in CreateTagInput) (*models.Tag, error) {
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

	tag := &models.Tag{
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		Color:       in.Color,
		IsActive:    true,
	}
	if err := s.taxonomyRepo.CreateTag(ctx, tag); err != nil {
		if isDuplicate(err) {
			return nil, models.NewDuplicateSlugError(slug)
		}
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag. Staff only.
func (s *TaxonomyService) DeleteTag(ctx context.Context, actorID, tagID uint) error {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return err
	}
	return s.taxonomyRepo.DeleteTag(ctx, tagID)
}

func (s *TaxonomyService) requireStaff(ctx context.Context, actorID uint) error {
	staff, err := s.isStaff(ctx, actorID)
	if err != nil {
		return err
	}
	if !staff {
		return models.NewForbiddenError("Only staff members can manage categories and tags")
	}
	return nil
}
