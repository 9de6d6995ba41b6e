package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// EngagementRepository records per-user interactions with posts and keeps
// the denormalized post counters in step. Counters are only ever touched
// with atomic SQL increments; read-then-write would lose updates under
// concurrent requests.
type EngagementRepository interface {
	// Engage inserts the unique (user, post, type) row and, for likes,
	// bumps the post's like counter in the same transaction. A repeated
	// engagement violates the unique index and surfaces as
	// gorm.ErrDuplicatedKey.
	Engage(ctx context.Context, userID, postID uint, typ models.EngagementType) error
	// Disengage removes the row and decrements the like counter when a row
	// was actually removed.
	Disengage(ctx context.Context, userID, postID uint, typ models.EngagementType) (bool, error)
	Exists(ctx context.Context, userID, postID uint, typ models.EngagementType) (bool, error)
	// ListBookmarkedPosts returns the posts a user has bookmarked, newest
	// bookmark first.
	ListBookmarkedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new EngagementRepository.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) Engage(ctx context.Context, userID, postID uint, typ models.EngagementType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		engagement := &models.PostEngagement{
			UserID: userID,
			PostID: postID,
			Type:   typ,
		}
		if err := tx.Create(engagement).Error; err != nil {
			return err
		}
		if typ == models.EngagementLike {
			return tx.Model(&models.Post{}).
				Where("id = ?", postID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
		}
		return nil
	})
}

func (r *engagementRepository) Disengage(ctx context.Context, userID, postID uint, typ models.EngagementType) (bool, error) {
	var removed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ? AND type = ?", userID, postID, typ).
			Delete(&models.PostEngagement{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected > 0
		if removed && typ == models.EngagementLike {
			return tx.Model(&models.Post{}).
				Where("id = ? AND like_count > 0", postID).
				UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
		}
		return nil
	})
	return removed, err
}

func (r *engagementRepository) Exists(ctx context.Context, userID, postID uint, typ models.EngagementType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PostEngagement{}).
		Where("user_id = ? AND post_id = ? AND type = ?", userID, postID, typ).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) ListBookmarkedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Preload("Author").
		Preload("Status").
		Joins("JOIN post_engagements ON post_engagements.post_id = posts.id").
		Where("post_engagements.user_id = ? AND post_engagements.type = ?", userID, models.EngagementBookmark).
		Order("post_engagements.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}
