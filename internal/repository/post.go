package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	List(ctx context.Context, limit, offset int, publishedOnly bool) ([]*models.Post, error)
	ListByAuthor(ctx context.Context, authorID uint, limit, offset int, publishedOnly bool) ([]*models.Post, error)
	// ListUnpublishedByAuthor returns the author's posts whose status is
	// missing or not published-flagged.
	ListUnpublishedByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	ListByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]*models.Post, error)
	ListByTag(ctx context.Context, tagID uint, limit, offset int) ([]*models.Post, error)
	ListFeatured(ctx context.Context, limit int) ([]*models.Post, error)
	ListPopular(ctx context.Context, limit int) ([]*models.Post, error)
	Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	// SetStatus persists the status reference and publication timestamp in a
	// single statement so they commit atomically.
	SetStatus(ctx context.Context, post *models.Post) error
	ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error
	IncrementViewCount(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("Author").Preload("Category").Preload("Status").Preload("Tags")
}

// publishedScope limits a query to publicly visible posts: published-flagged
// status and a publication time that is not in the future.
func publishedScope(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN post_statuses ON post_statuses.id = posts.status_id").
		Where("post_statuses.is_published = ?", true).
		Where("posts.published_at IS NOT NULL AND posts.published_at <= NOW()")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, publishedOnly bool) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.withDetails(r.db.WithContext(ctx))
	if publishedOnly {
		q = publishedScope(q)
	}
	err := q.Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID uint, limit, offset int, publishedOnly bool) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.withDetails(r.db.WithContext(ctx))
	if publishedOnly {
		q = publishedScope(q)
	}
	err := q.Where("posts.author_id = ?", authorID).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListUnpublishedByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withDetails(r.db.WithContext(ctx)).
		Joins("LEFT JOIN post_statuses ON post_statuses.id = posts.status_id").
		Where("posts.author_id = ?", authorID).
		Where("post_statuses.id IS NULL OR post_statuses.is_published = ?", false).
		Order("posts.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := publishedScope(r.withDetails(r.db.WithContext(ctx))).
		Where("posts.category_id = ?", categoryID).
		Order("posts.published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByTag(ctx context.Context, tagID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := publishedScope(r.withDetails(r.db.WithContext(ctx))).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("posts.published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := publishedScope(r.withDetails(r.db.WithContext(ctx))).
		Where("posts.is_featured = ?", true).
		Order("posts.published_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListPopular(ctx context.Context, limit int) ([]*models.Post, error) {
	var posts []*models.Post
	err := publishedScope(r.withDetails(r.db.WithContext(ctx))).
		Order("posts.comment_count DESC, posts.published_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	pattern := "%" + query + "%"
	err := publishedScope(r.withDetails(r.db.WithContext(ctx))).
		Where("posts.title ILIKE ? OR posts.content ILIKE ? OR posts.excerpt ILIKE ?", pattern, pattern, pattern).
		Order("posts.published_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Omit("Tags").Save(post).Error
	if err == nil {
		cache.InvalidatePost(ctx, post.ID, post.Slug)
	}
	return err
}

func (r *postRepository) SetStatus(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).
		Model(post).
		Select("status_id", "published_at", "updated_at").
		Updates(map[string]interface{}{
			"status_id":    post.StatusID,
			"published_at": post.PublishedAt,
		}).Error
	if err == nil {
		cache.InvalidatePost(ctx, post.ID, post.Slug)
	}
	return err
}

func (r *postRepository) ReplaceTags(ctx context.Context, post *models.Post, tags []models.Tag) error {
	return r.db.WithContext(ctx).Model(post).Association("Tags").Replace(tags)
}

func (r *postRepository) IncrementViewCount(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
	if err == nil {
		cache.InvalidatePost(ctx, id, "")
	}
	return err
}
