package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment persistence, including
// the moderation log that must commit atomically with approval changes.
type CommentRepository interface {
	// Create stores the comment and bumps the post's comment counter in the
	// same transaction, using an atomic SQL increment.
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	// ListForPost returns approved top-level comments, oldest first.
	ListForPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error)
	// ListReplies returns approved direct children of a comment, oldest
	// first. It never recurses; callers walk the tree level by level.
	ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error)
	ListPending(ctx context.Context, limit, offset int) ([]*models.Comment, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int, approvedOnly bool) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	// SetApproval flips is_approved and appends the moderation log entry in
	// one transaction.
	SetApproval(ctx context.Context, commentID uint, approved bool, entry *models.CommentModeration) error
	// SetFlag updates is_flagged; entry may be nil for non-staff flags,
	// which are not moderation decisions.
	SetFlag(ctx context.Context, commentID uint, flagged bool, entry *models.CommentModeration) error
	// LogModeration appends a moderation entry without touching the comment.
	LogModeration(ctx context.Context, entry *models.CommentModeration) error
	ModerationLog(ctx context.Context, commentID uint) ([]*models.CommentModeration, error)
	// DeleteSubtree removes the comment and every descendant, returning how
	// many comments were removed, and decrements the post's comment counter
	// by that amount in the same transaction.
	DeleteSubtree(ctx context.Context, comment *models.Comment) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Author").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListForPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND parent_id IS NULL AND is_approved = ?", postID, true).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_id = ? AND is_approved = ?", parentID, true).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListPending(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("is_approved = ?", false).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int, approvedOnly bool) ([]*models.Comment, error) {
	var comments []*models.Comment
	q := r.db.WithContext(ctx).Where("author_id = ?", authorID)
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) SetApproval(ctx context.Context, commentID uint, approved bool, entry *models.CommentModeration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("is_approved", approved).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *commentRepository) SetFlag(ctx context.Context, commentID uint, flagged bool, entry *models.CommentModeration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("is_flagged", flagged).Error; err != nil {
			return err
		}
		if entry == nil {
			return nil
		}
		return tx.Create(entry).Error
	})
}

func (r *commentRepository) LogModeration(ctx context.Context, entry *models.CommentModeration) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *commentRepository) ModerationLog(ctx context.Context, commentID uint) ([]*models.CommentModeration, error) {
	var entries []*models.CommentModeration
	err := r.db.WithContext(ctx).
		Preload("Moderator").
		Where("comment_id = ?", commentID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *commentRepository) DeleteSubtree(ctx context.Context, comment *models.Comment) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Walk the tree level by level instead of recursing; the schema
		// stores comments flat with a parent id.
		ids := []uint{comment.ID}
		frontier := []uint{comment.ID}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &children).Error; err != nil {
				return err
			}
			ids = append(ids, children...)
			frontier = children
		}
		removed = int64(len(ids))

		// Deleting the root cascades to replies, moderation entries, and
		// reports through the foreign keys.
		if err := tx.Delete(&models.Comment{}, comment.ID).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).
			Where("id = ? AND comment_count >= ?", comment.PostID, removed).
			UpdateColumn("comment_count", gorm.Expr("comment_count - ?", removed)).Error
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
