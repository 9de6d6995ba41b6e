package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// TaxonomyRepository manages categories and tags.
type TaxonomyRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
	ListActiveCategories(ctx context.Context) ([]*models.Category, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error

	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error)
	GetTagsByID(ctx context.Context, ids []uint) ([]models.Tag, error)
	ListActiveTags(ctx context.Context) ([]*models.Tag, error)
	// AdjustTagUsage bumps usage counters atomically for the given tags.
	AdjustTagUsage(ctx context.Context, tagIDs []uint, delta int) error
	DeleteTag(ctx context.Context, id uint) error
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new TaxonomyRepository.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

func (r *taxonomyRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Create(category).Error
	if err == nil {
		cache.Invalidate(ctx, cache.CategoryListKey)
	}
	return err
}

func (r *taxonomyRepository) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *taxonomyRepository) ListActiveCategories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := cache.Aside(ctx, cache.CategoryListKey, &categories, cache.LookupListTTL, func() error {
		return r.db.WithContext(ctx).
			Where("is_active = ?", true).
			Order("sort_order, name").
			Find(&categories).Error
	})
	return categories, err
}

func (r *taxonomyRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Save(category).Error
	if err == nil {
		cache.Invalidate(ctx, cache.CategoryListKey)
	}
	return err
}

func (r *taxonomyRepository) DeleteCategory(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
	if err == nil {
		cache.Invalidate(ctx, cache.CategoryListKey)
	}
	return err
}

func (r *taxonomyRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	err := r.db.WithContext(ctx).Create(tag).Error
	if err == nil {
		cache.Invalidate(ctx, cache.TagListKey)
	}
	return err
}

func (r *taxonomyRepository) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *taxonomyRepository) GetTagsByID(ctx context.Context, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	if len(ids) == 0 {
		return tags, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

func (r *taxonomyRepository) ListActiveTags(ctx context.Context) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := cache.Aside(ctx, cache.TagListKey, &tags, cache.LookupListTTL, func() error {
		return r.db.WithContext(ctx).
			Where("is_active = ?", true).
			Order("name").
			Find(&tags).Error
	})
	return tags, err
}

func (r *taxonomyRepository) AdjustTagUsage(ctx context.Context, tagIDs []uint, delta int) error {
	if len(tagIDs) == 0 {
		return nil
	}
	q := r.db.WithContext(ctx).Model(&models.Tag{}).Where("id IN ?", tagIDs)
	if delta < 0 {
		q = q.Where("usage_count >= ?", -delta)
	}
	return q.UpdateColumn("usage_count", gorm.Expr("usage_count + ?", delta)).Error
}

func (r *taxonomyRepository) DeleteTag(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Tag{}, id).Error
	if err == nil {
		cache.Invalidate(ctx, cache.TagListKey)
	}
	return err
}
