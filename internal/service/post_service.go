package service

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

const (
	maxTitleLen   = 200
	maxContentLen = 100000
	maxExcerptLen = 300
)

// PostService owns the post publishing lifecycle: creation with slug
// uniqueness, status transitions with the derived published_at rule, and
// the read paths around them.
type PostService struct {
	postRepo     repository.PostRepository
	statusRepo   repository.StatusRepository
	taxonomyRepo repository.TaxonomyRepository
	isStaff      StaffChecker
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	AuthorID         uint
	Title            string
	Slug             string
	Content          string
	Excerpt          string
	CategoryID       *uint
	TagIDs           []uint
	StatusID         *uint
	FeaturedImageURL string
	MetaDescription  string
	MetaKeywords     string
	AllowComments    *bool
}

// UpdatePostInput carries the editable fields of an existing post.
type UpdatePostInput struct {
	ActorID          uint
	PostID           uint
	Title            string
	Content          string
	Excerpt          string
	CategoryID       *uint
	TagIDs           []uint
	FeaturedImageURL string
	MetaDescription  string
	MetaKeywords     string
	AllowComments    *bool
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	statusRepo repository.StatusRepository,
	taxonomyRepo repository.TaxonomyRepository,
	isStaff StaffChecker,
) *PostService {
	return &PostService{
		postRepo:     postRepo,
		statusRepo:   statusRepo,
		taxonomyRepo: taxonomyRepo,
		isStaff:      isStaff,
	}
}

// CreatePost validates and stores a new post. When no status is given the
// registry's "draft" status is used; a missing draft status leaves the post
// without a status rather than failing. A slug collision is reported as
// DuplicateSlug, never silently suffixed.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 200 characters)")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 100000 characters)")
	}
	if len(in.Excerpt) > maxExcerptLen {
		return nil, models.NewValidationError("Excerpt too long (max 300 characters)")
	}

	slug := in.Slug
	if slug == "" {
		slug = validation.Slugify(in.Title)
	}
	if slug == "" {
		return nil, models.NewValidationError("Slug is required")
	}

	status, err := s.resolveInitialStatus(ctx, in.StatusID)
	if err != nil {
		return nil, err
	}

	allowComments := true
	if in.AllowComments != nil {
		allowComments = *in.AllowComments
	}

	post := &models.Post{
		Title:            in.Title,
		Slug:             slug,
		AuthorID:         in.AuthorID,
		Content:          in.Content,
		Excerpt:          in.Excerpt,
		CategoryID:       in.CategoryID,
		FeaturedImageURL: in.FeaturedImageURL,
		MetaDescription:  in.MetaDescription,
		MetaKeywords:     in.MetaKeywords,
		AllowComments:    allowComments,
	}
	post.ApplyStatus(status, time.Now())

	if err := s.postRepo.Create(ctx, post); err != nil {
		if isDuplicate(err) {
			return nil, models.NewDuplicateSlugError(slug)
		}
		return nil, err
	}

	if len(in.TagIDs) > 0 {
		if err := s.syncTags(ctx, post, in.TagIDs); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// resolveInitialStatus picks the status for a new post: the explicit one if
// given (NotFound when it does not exist), otherwise the registry's draft
// status, otherwise none.
func (s *PostService) resolveInitialStatus(ctx context.Context, statusID *uint) (*models.PostStatus, error) {
	if statusID != nil {
		status, err := s.statusRepo.GetByID(ctx, *statusID)
		if err != nil {
			return nil, notFoundOr(err, "status", *statusID)
		}
		return status, nil
	}
	status, err := s.statusRepo.GetBySlug(ctx, models.StatusSlugDraft)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !status.IsActive {
		return nil, nil
	}
	return status, nil
}

// syncTags replaces the post's tag set and adjusts usage counters by the
// delta: newly attached tags gain a use, detached tags lose one. Tags kept
// across the edit are left alone.
func (s *PostService) syncTags(ctx context.Context, post *models.Post, tagIDs []uint) error {
	tags, err := s.taxonomyRepo.GetTagsByID(ctx, tagIDs)
	if err != nil {
		return err
	}

	current := make(map[uint]bool, len(post.Tags))
	for _, t := range post.Tags {
		current[t.ID] = true
	}
	next := make(map[uint]bool, len(tags))
	var added []uint
	for _, t := range tags {
		next[t.ID] = true
		if !current[t.ID] {
			added = append(added, t.ID)
		}
	}
	var removed []uint
	for _, t := range post.Tags {
		if !next[t.ID] {
			removed = append(removed, t.ID)
		}
	}

	if err := s.postRepo.ReplaceTags(ctx, post, tags); err != nil {
		return err
	}
	if len(added) > 0 {
		if err := s.taxonomyRepo.AdjustTagUsage(ctx, added, 1); err != nil {
			return err
		}
	}
	if len(removed) > 0 {
		if err := s.taxonomyRepo.AdjustTagUsage(ctx, removed, -1); err != nil {
			return err
		}
	}
	return nil
}

// GetPost returns a post by ID.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "post", id)
	}
	return post, nil
}

// GetPostBySlug returns a post by slug, bumping the view counter for the
// public read path. The counter bump is a single atomic SQL increment.
func (s *PostService) GetPostBySlug(ctx context.Context, slug string, countView bool) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err, "post", slug)
	}
	if countView {
		if err := s.postRepo.IncrementViewCount(ctx, post.ID); err != nil {
			return nil, err
		}
	}
	return post, nil
}

// SetStatus moves the post to an arbitrary registry status. The registry
// imposes no ordering between statuses; the only gate is that the actor is
// the author or staff. The published_at rule is applied and persisted
// atomically with the status change.
func (s *PostService) SetStatus(ctx context.Context, actorID, postID, statusID uint) (*models.Post, error) {
	post, err := s.authorOrStaffPost(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	status, err := s.statusRepo.GetByID(ctx, statusID)
	if err != nil {
		return nil, notFoundOr(err, "status", statusID)
	}

	post.ApplyStatus(status, time.Now())
	if err := s.postRepo.SetStatus(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Publish transitions a not-yet-published post into the registry's
// published status, stamping published_at.
func (s *PostService) Publish(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	post, err := s.authorOrStaffPost(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != nil && post.Status.IsPublished {
		return nil, models.NewInvalidTransitionError("post is already published")
	}

	status, err := s.statusRepo.GetBySlug(ctx, models.StatusSlugPublished)
	if err != nil {
		return nil, notFoundOr(err, "status", models.StatusSlugPublished)
	}

	post.ApplyStatus(status, time.Now())
	if err := s.postRepo.SetStatus(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Unpublish moves a published post back to the draft status, clearing
// published_at. Republishing later stamps a fresh time; the original
// publish time is never restored. A missing draft status falls back to
// leaving the post without a status, which is equally non-published.
func (s *PostService) Unpublish(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	post, err := s.authorOrStaffPost(ctx, actorID, postID)
	if err != nil {
		return nil, err
	}
	if post.Status == nil || !post.Status.IsPublished {
		return nil, models.NewInvalidTransitionError("post is not published")
	}

	status, err := s.statusRepo.GetBySlug(ctx, models.StatusSlugDraft)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	post.ApplyStatus(status, time.Now())
	if err := s.postRepo.SetStatus(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// UpdatePost edits post content and metadata. Status is untouched here;
// transitions go through SetStatus/Publish/Unpublish.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.authorOrStaffPost(ctx, in.ActorID, in.PostID)
	if err != nil {
		return nil, err
	}
	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	post.Title = in.Title
	post.Content = in.Content
	post.Excerpt = in.Excerpt
	post.CategoryID = in.CategoryID
	post.FeaturedImageURL = in.FeaturedImageURL
	post.MetaDescription = in.MetaDescription
	post.MetaKeywords = in.MetaKeywords
	if in.AllowComments != nil {
		post.AllowComments = *in.AllowComments
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	if in.TagIDs != nil {
		if err := s.syncTags(ctx, post, in.TagIDs); err != nil {
			return nil, err
		}
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post; comments and engagement rows go with it via
// the foreign key cascades.
func (s *PostService) DeletePost(ctx context.Context, actorID, postID uint) error {
	post, err := s.authorOrStaffPost(ctx, actorID, postID)
	if err != nil {
		return err
	}
	if len(post.Tags) > 0 {
		ids := make([]uint, 0, len(post.Tags))
		for _, t := range post.Tags {
			ids = append(ids, t.ID)
		}
		if err := s.taxonomyRepo.AdjustTagUsage(ctx, ids, -1); err != nil {
			return err
		}
	}
	return s.postRepo.Delete(ctx, post.ID)
}

// ListPosts returns posts for the public feed; anonymous callers only see
// published posts.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int, includeUnpublished bool) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, !includeUnpublished)
}

// ListByAuthor returns one author's posts. Unpublished entries are included
// only when the caller may see them (the author themselves or staff).
func (s *PostService) ListByAuthor(ctx context.Context, authorID uint, limit, offset int, includeUnpublished bool) ([]*models.Post, error) {
	return s.postRepo.ListByAuthor(ctx, authorID, limit, offset, !includeUnpublished)
}

// ListDrafts returns the author's not-yet-published posts.
func (s *PostService) ListDrafts(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListUnpublishedByAuthor(ctx, authorID, limit, offset)
}

// ListByCategory returns published posts in a category.
func (s *PostService) ListByCategory(ctx context.Context, categoryID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListByCategory(ctx, categoryID, limit, offset)
}

// ListByTag returns published posts carrying a tag.
func (s *PostService) ListByTag(ctx context.Context, tagID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListByTag(ctx, tagID, limit, offset)
}

// ListFeatured returns published featured posts.
func (s *PostService) ListFeatured(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.postRepo.ListFeatured(ctx, limit)
}

// ListPopular returns published posts ordered by comment volume.
func (s *PostService) ListPopular(ctx context.Context, limit int) ([]*models.Post, error) {
	return s.postRepo.ListPopular(ctx, limit)
}

// Search returns published posts matching the query.
func (s *PostService) Search(ctx context.Context, query string, limit, offset int) ([]*models.Post, error) {
	if query == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.postRepo.Search(ctx, query, limit, offset)
}

// authorOrStaffPost loads the post and checks the actor may manage it.
func (s *PostService) authorOrStaffPost(ctx context.Context, actorID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(err, "post", postID)
	}
	if post.AuthorID == actorID {
		return post, nil
	}
	staff, err := s.isStaff(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !staff {
		return nil, models.NewForbiddenError("You can only manage your own posts")
	}
	return post, nil
}
