package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// EngagementService tracks likes, bookmarks, and views. Like and bookmark
// are idempotent toggles: engaging twice or removing an absent engagement is
// a no-op rather than an error.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
	postRepo       repository.PostRepository
}

// NewEngagementService creates a new EngagementService.
func NewEngagementService(
	engagementRepo repository.EngagementRepository,
	postRepo repository.PostRepository,
) *EngagementService {
	return &EngagementService{engagementRepo: engagementRepo, postRepo: postRepo}
}

// Like records a like for the post. Repeated likes by the same user are
// absorbed by the unique constraint and leave the counter untouched.
func (s *EngagementService) Like(ctx context.Context, userID, postID uint) error {
	return s.engage(ctx, userID, postID, models.EngagementLike)
}

// Unlike removes the user's like if present.
func (s *EngagementService) Unlike(ctx context.Context, userID, postID uint) error {
	_, err := s.engagementRepo.Disengage(ctx, userID, postID, models.EngagementLike)
	return err
}

// Bookmark saves the post to the user's bookmarks.
func (s *EngagementService) Bookmark(ctx context.Context, userID, postID uint) error {
	return s.engage(ctx, userID, postID, models.EngagementBookmark)
}

// Unbookmark removes the post from the user's bookmarks if present.
func (s *EngagementService) Unbookmark(ctx context.Context, userID, postID uint) error {
	_, err := s.engagementRepo.Disengage(ctx, userID, postID, models.EngagementBookmark)
	return err
}

// HasEngagement reports whether the user has the given engagement with the
// post, for rendering like/bookmark state.
func (s *EngagementService) HasEngagement(ctx context.Context, userID, postID uint, typ models.EngagementType) (bool, error) {
	if !typ.Valid() {
		return false, models.NewValidationError("Invalid engagement type")
	}
	return s.engagementRepo.Exists(ctx, userID, postID, typ)
}

// ListBookmarks returns the user's bookmarked posts, newest bookmark first.
func (s *EngagementService) ListBookmarks(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.engagementRepo.ListBookmarkedPosts(ctx, userID, limit, offset)
}

func (s *EngagementService) engage(ctx context.Context, userID, postID uint, typ models.EngagementType) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return notFoundOr(err, "post", postID)
	}
	if err := s.engagementRepo.Engage(ctx, userID, postID, typ); err != nil {
		if isDuplicate(err) {
			return nil
		}
		return err
	}
	return nil
}
