package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const maxCommentLen = 10000

// CommentService owns the comment thread and its moderation workflow:
// threaded creation with the same-post parent rule, the approval gate, and
// the append-only moderation log.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	isStaff     StaffChecker
	// autoApprove makes new comments visible immediately. Default policy is
	// moderation-before-publish (false).
	autoApprove bool
}

// CreateCommentInput carries the fields for a new comment.
type CreateCommentInput struct {
	AuthorID uint
	PostID   uint
	Content  string
	ParentID *uint
}

// ModerateInput identifies a moderation decision on a comment.
type ModerateInput struct {
	ModeratorID uint
	CommentID   uint
	Reason      string
	Notes       string
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	isStaff StaffChecker,
	autoApprove bool,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		isStaff:     isStaff,
		autoApprove: autoApprove,
	}
}

// CreateComment stores a new comment. A reply's parent must be a comment on
// the same post; anything else fails with CrossPostParent and the post is
// never silently reassigned.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, notFoundOr(err, "post", in.PostID)
	}
	if !post.AllowComments {
		return nil, models.NewValidationError("Comments are disabled for this post")
	}
	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if in.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *in.ParentID)
		if err != nil {
			return nil, notFoundOr(err, "comment", *in.ParentID)
		}
		if parent.PostID != post.ID {
			return nil, models.NewCrossPostParentError()
		}
	}

	comment := &models.Comment{
		PostID:     post.ID,
		AuthorID:   in.AuthorID,
		Content:    in.Content,
		ParentID:   in.ParentID,
		IsApproved: s.autoApprove,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// UpdateComment edits a comment's content. Authors edit their own comments;
// staff may edit any and the edit is logged.
func (s *CommentService) UpdateComment(ctx context.Context, actorID, commentID uint, content string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFoundOr(err, "comment", commentID)
	}
	if content == "" {
		return nil, models.NewValidationError("Content is required")
	}

	staffEdit := false
	if comment.AuthorID != actorID {
		staff, err := s.isStaff(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if !staff {
			return nil, models.NewForbiddenError("You can only edit your own comments")
		}
		staffEdit = true
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	if staffEdit {
		entry := &models.CommentModeration{
			CommentID:   comment.ID,
			ModeratorID: actorID,
			Action:      models.ModerationEdited,
		}
		if err := s.commentRepo.LogModeration(ctx, entry); err != nil {
			return nil, err
		}
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// DeleteComment removes a comment and its whole reply subtree.
func (s *CommentService) DeleteComment(ctx context.Context, actorID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return notFoundOr(err, "comment", commentID)
	}
	if comment.AuthorID != actorID {
		staff, err := s.isStaff(ctx, actorID)
		if err != nil {
			return err
		}
		if !staff {
			return models.NewForbiddenError("You can only delete your own comments")
		}
	}
	_, err = s.commentRepo.DeleteSubtree(ctx, comment)
	return err
}

// ListComments returns approved top-level comments for a post.
func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, notFoundOr(err, "post", postID)
	}
	return s.commentRepo.ListForPost(ctx, postID, limit, offset)
}

// ListReplies returns the approved direct replies of a comment, oldest
// first. Unapproved replies are never returned.
func (s *CommentService) ListReplies(ctx context.Context, commentID uint) ([]*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, notFoundOr(err, "comment", commentID)
	}
	return s.commentRepo.ListReplies(ctx, commentID)
}

// ListByAuthor returns a user's comments, newest first. Unapproved comments
// are included only when the caller may see them (the author themselves or
// staff).
func (s *CommentService) ListByAuthor(ctx context.Context, authorID uint, limit, offset int, includeUnapproved bool) ([]*models.Comment, error) {
	return s.commentRepo.ListByAuthor(ctx, authorID, limit, offset, !includeUnapproved)
}

// Approve marks a comment approved and appends the moderation log entry in
// the same transaction. Staff only.
func (s *CommentService) Approve(ctx context.Context, in ModerateInput) error {
	return s.moderate(ctx, in, models.ModerationApproved, true)
}

// Reject marks a comment unapproved and logs the decision. Staff only.
func (s *CommentService) Reject(ctx context.Context, in ModerateInput) error {
	return s.moderate(ctx, in, models.ModerationRejected, false)
}

// MarkSpam rejects a comment recording the spam action. Staff only.
func (s *CommentService) MarkSpam(ctx context.Context, in ModerateInput) error {
	return s.moderate(ctx, in, models.ModerationSpam, false)
}

func (s *CommentService) moderate(ctx context.Context, in ModerateInput, action models.ModerationAction, approved bool) error {
	if err := s.requireStaff(ctx, in.ModeratorID); err != nil {
		return err
	}
	if _, err := s.commentRepo.GetByID(ctx, in.CommentID); err != nil {
		return notFoundOr(err, "comment", in.CommentID)
	}
	entry := &models.CommentModeration{
		CommentID:   in.CommentID,
		ModeratorID: in.ModeratorID,
		Action:      action,
		Reason:      in.Reason,
		Notes:       in.Notes,
	}
	return s.commentRepo.SetApproval(ctx, in.CommentID, approved, entry)
}

// Flag marks a comment for staff attention. Any authenticated user may
// flag; staff flags additionally land in the moderation log.
func (s *CommentService) Flag(ctx context.Context, actorID, commentID uint, reason string) error {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return notFoundOr(err, "comment", commentID)
	}
	staff, err := s.isStaff(ctx, actorID)
	if err != nil {
		return err
	}
	var entry *models.CommentModeration
	if staff {
		entry = &models.CommentModeration{
			CommentID:   commentID,
			ModeratorID: actorID,
			Action:      models.ModerationFlagged,
			Reason:      reason,
		}
	}
	return s.commentRepo.SetFlag(ctx, commentID, true, entry)
}

// Unflag clears a comment's flag. Staff only.
func (s *CommentService) Unflag(ctx context.Context, actorID, commentID uint) error {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return err
	}
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return notFoundOr(err, "comment", commentID)
	}
	return s.commentRepo.SetFlag(ctx, commentID, false, nil)
}

// PendingComments returns the moderation queue. Staff only.
func (s *CommentService) PendingComments(ctx context.Context, actorID uint, limit, offset int) ([]*models.Comment, error) {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListPending(ctx, limit, offset)
}

// ModerationLog returns the decision history for a comment. Staff only.
func (s *CommentService) ModerationLog(ctx context.Context, actorID, commentID uint) ([]*models.CommentModeration, error) {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	return s.commentRepo.ModerationLog(ctx, commentID)
}

func (s *CommentService) requireStaff(ctx context.Context, actorID uint) error {
	staff, err := s.isStaff(ctx, actorID)
	if err != nil {
		return err
	}
	if !staff {
		return models.NewForbiddenError("Only staff members can moderate comments")
	}
	return nil
}
