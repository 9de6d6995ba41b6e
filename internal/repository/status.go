// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// StatusRepository defines the interface for publication status lookups and
// admin-side management.
type StatusRepository interface {
	Create(ctx context.Context, status *models.PostStatus) error
	GetByID(ctx context.Context, id uint) (*models.PostStatus, error)
	GetBySlug(ctx context.Context, slug string) (*models.PostStatus, error)
	// ListActive returns selectable statuses ordered by sort_order, then name.
	ListActive(ctx context.Context) ([]*models.PostStatus, error)
	List(ctx context.Context) ([]*models.PostStatus, error)
	Update(ctx context.Context, status *models.PostStatus) error
	Delete(ctx context.Context, id uint) error
}

type statusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates a new StatusRepository.
func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Create(ctx context.Context, status *models.PostStatus) error {
	err := r.db.WithContext(ctx).Create(status).Error
	if err == nil {
		cache.InvalidateStatusList(ctx)
	}
	return err
}

func (r *statusRepository) GetByID(ctx context.Context, id uint) (*models.PostStatus, error) {
	var status models.PostStatus
	if err := r.db.WithContext(ctx).First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) GetBySlug(ctx context.Context, slug string) (*models.PostStatus, error) {
	var status models.PostStatus
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *statusRepository) ListActive(ctx context.Context) ([]*models.PostStatus, error) {
	var statuses []*models.PostStatus
	err := cache.Aside(ctx, cache.StatusListKey, &statuses, cache.LookupListTTL, func() error {
		return r.db.WithContext(ctx).
			Where("is_active = ?", true).
			Order("sort_order, name").
			Find(&statuses).Error
	})
	return statuses, err
}

func (r *statusRepository) List(ctx context.Context) ([]*models.PostStatus, error) {
	var statuses []*models.PostStatus
	err := r.db.WithContext(ctx).Order("sort_order, name").Find(&statuses).Error
	return statuses, err
}

func (r *statusRepository) Update(ctx context.Context, status *models.PostStatus) error {
	err := r.db.WithContext(ctx).Save(status).Error
	if err == nil {
		cache.InvalidateStatusList(ctx)
	}
	return err
}

func (r *statusRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.PostStatus{}, id).Error
	if err == nil {
		cache.InvalidateStatusList(ctx)
	}
	return err
}
