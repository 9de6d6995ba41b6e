package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listForPostFn   func(context.Context, uint, int, int) ([]*models.Comment, error)
	listRepliesFn   func(context.Context, uint) ([]*models.Comment, error)
	listPendingFn   func(context.Context, int, int) ([]*models.Comment, error)
	listByAuthorFn  func(context.Context, uint, int, int, bool) ([]*models.Comment, error)
	updateFn        func(context.Context, *models.Comment) error
	setApprovalFn   func(context.Context, uint, bool, *models.CommentModeration) error
	setFlagFn       func(context.Context, uint, bool, *models.CommentModeration) error
	logModerationFn func(context.Context, *models.CommentModeration) error
	moderationLogFn func(context.Context, uint) ([]*models.CommentModeration, error)
	deleteSubtreeFn func(context.Context, *models.Comment) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListForPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listForPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, parentID)
}
func (s *commentRepoStub) ListPending(ctx context.Context, limit, offset int) ([]*models.Comment, error) {
	return s.listPendingFn(ctx, limit, offset)
}
func (s *commentRepoStub) ListByAuthor(ctx context.Context, authorID uint, limit, offset int, approvedOnly bool) ([]*models.Comment, error) {
	return s.listByAuthorFn(ctx, authorID, limit, offset, approvedOnly)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) SetApproval(ctx context.Context, commentID uint, approved bool, entry *models.CommentModeration) error {
	return s.setApprovalFn(ctx, commentID, approved, entry)
}
func (s *commentRepoStub) SetFlag(ctx context.Context, commentID uint, flagged bool, entry *models.CommentModeration) error {
	return s.setFlagFn(ctx, commentID, flagged, entry)
}
func (s *commentRepoStub) LogModeration(ctx context.Context, entry *models.CommentModeration) error {
	return s.logModerationFn(ctx, entry)
}
func (s *commentRepoStub) ModerationLog(ctx context.Context, commentID uint) ([]*models.CommentModeration, error) {
	return s.moderationLogFn(ctx, commentID)
}
func (s *commentRepoStub) DeleteSubtree(ctx context.Context, comment *models.Comment) (int64, error) {
	return s.deleteSubtreeFn(ctx, comment)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:  func(_ context.Context, _ *models.Comment) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listForPostFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Comment, error) {
			return nil, nil
		},
		listRepliesFn: func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		listPendingFn: func(_ context.Context, _, _ int) ([]*models.Comment, error) { return nil, nil },
		listByAuthorFn: func(_ context.Context, _ uint, _, _ int, _ bool) ([]*models.Comment, error) {
			return nil, nil
		},
		updateFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		setApprovalFn:   func(_ context.Context, _ uint, _ bool, _ *models.CommentModeration) error { return nil },
		setFlagFn:       func(_ context.Context, _ uint, _ bool, _ *models.CommentModeration) error { return nil },
		logModerationFn: func(_ context.Context, _ *models.CommentModeration) error { return nil },
		moderationLogFn: func(_ context.Context, _ uint) ([]*models.CommentModeration, error) { return nil, nil },
		deleteSubtreeFn: func(_ context.Context, _ *models.Comment) (int64, error) { return 0, nil },
	}
}

func commentablePostRepo() *postRepoStub {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 1, AllowComments: true}, nil
	}
	return repo
}

func TestCommentService_CreateComment(t *testing.T) {
	t.Parallel()

	t.Run("new comment starts unapproved by default", func(t *testing.T) {
		t.Parallel()
		var created *models.Comment
		comments := noopCommentRepo()
		comments.createFn = func(_ context.Context, c *models.Comment) error {
			created = c
			c.ID = 10
			return nil
		}
		comments.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return created, nil }

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(), false)

		comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 2, PostID: 1, Content: "first!",
		})
		require.NoError(t, err)
		assert.False(t, comment.IsApproved)
	})

	t.Run("auto-approve policy makes comments visible immediately", func(t *testing.T) {
		t.Parallel()
		var created *models.Comment
		comments := noopCommentRepo()
		comments.createFn = func(_ context.Context, c *models.Comment) error {
			created = c
			return nil
		}
		comments.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) { return created, nil }

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(), true)

		comment, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 2, PostID: 1, Content: "hello",
		})
		require.NoError(t, err)
		assert.True(t, comment.IsApproved)
	})

	t.Run("comments disabled on the post", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, AllowComments: false}, nil
		}

		svc := NewCommentService(noopCommentRepo(), posts, staffChecker(), false)

		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 2, PostID: 1, Content: "hello",
		})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("empty content", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), commentablePostRepo(), staffChecker(), false)

		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 2, PostID: 1,
		})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("parent on another post is rejected", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 99}, nil
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(), false)

		parentID := uint(7)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 2, PostID: 1, Content: "reply", ParentID: &parentID,
		})
		assertAppErrorCode(t, err, models.CodeCrossPostParent)
	})

	t.Run("missing parent is not found", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(), false)

		parentID := uint(7)
		_, err := svc.CreateComment(context.Background(), CreateCommentInput{
			AuthorID: 2, PostID: 1, Content: "reply", ParentID: &parentID,
		})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestCommentService_Moderation(t *testing.T) {
	t.Parallel()

	t.Run("non-staff cannot approve", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), commentablePostRepo(), staffChecker(), false)

		err := svc.Approve(context.Background(), ModerateInput{ModeratorID: 5, CommentID: 1})
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("approve flips approval and logs the decision", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		var gotApproved bool
		var gotEntry *models.CommentModeration
		comments.setApprovalFn = func(_ context.Context, _ uint, approved bool, entry *models.CommentModeration) error {
			gotApproved = approved
			gotEntry = entry
			return nil
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(9), false)

		err := svc.Approve(context.Background(), ModerateInput{
			ModeratorID: 9, CommentID: 1, Reason: "looks fine",
		})
		require.NoError(t, err)
		assert.True(t, gotApproved)
		require.NotNil(t, gotEntry)
		assert.Equal(t, models.ModerationApproved, gotEntry.Action)
		assert.Equal(t, uint(9), gotEntry.ModeratorID)
		assert.Equal(t, "looks fine", gotEntry.Reason)
	})

	t.Run("reject records the action without approval", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		var gotApproved bool
		var gotEntry *models.CommentModeration
		comments.setApprovalFn = func(_ context.Context, _ uint, approved bool, entry *models.CommentModeration) error {
			gotApproved = approved
			gotEntry = entry
			return nil
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(9), false)

		err := svc.Reject(context.Background(), ModerateInput{ModeratorID: 9, CommentID: 1})
		require.NoError(t, err)
		assert.False(t, gotApproved)
		assert.Equal(t, models.ModerationRejected, gotEntry.Action)
	})

	t.Run("spam uses its own action", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		var gotEntry *models.CommentModeration
		comments.setApprovalFn = func(_ context.Context, _ uint, _ bool, entry *models.CommentModeration) error {
			gotEntry = entry
			return nil
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(9), false)

		err := svc.MarkSpam(context.Background(), ModerateInput{ModeratorID: 9, CommentID: 1})
		require.NoError(t, err)
		assert.Equal(t, models.ModerationSpam, gotEntry.Action)
	})

	t.Run("missing comment is not found", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(9), false)

		err := svc.Approve(context.Background(), ModerateInput{ModeratorID: 9, CommentID: 1})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestCommentService_Flag(t *testing.T) {
	t.Parallel()

	t.Run("non-staff flag carries no log entry", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		var gotFlagged bool
		var gotEntry *models.CommentModeration
		comments.setFlagFn = func(_ context.Context, _ uint, flagged bool, entry *models.CommentModeration) error {
			gotFlagged = flagged
			gotEntry = entry
			return nil
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(), false)

		err := svc.Flag(context.Background(), 5, 1, "rude")
		require.NoError(t, err)
		assert.True(t, gotFlagged)
		assert.Nil(t, gotEntry)
	})

	t.Run("staff flag lands in the moderation log", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		var gotEntry *models.CommentModeration
		comments.setFlagFn = func(_ context.Context, _ uint, _ bool, entry *models.CommentModeration) error {
			gotEntry = entry
			return nil
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(9), false)

		err := svc.Flag(context.Background(), 9, 1, "spammy")
		require.NoError(t, err)
		require.NotNil(t, gotEntry)
		assert.Equal(t, models.ModerationFlagged, gotEntry.Action)
		assert.Equal(t, "spammy", gotEntry.Reason)
	})

	t.Run("unflag is staff only", func(t *testing.T) {
		t.Parallel()
		svc := NewCommentService(noopCommentRepo(), commentablePostRepo(), staffChecker(), false)

		err := svc.Unflag(context.Background(), 5, 1)
		assertAppErrorCode(t, err, models.CodeForbidden)
	})
}

func TestCommentService_UpdateComment(t *testing.T) {
	t.Parallel()

	t.Run("author edits without a log entry", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, AuthorID: 5, Content: "old"}, nil
		}
		logged := false
		comments.logModerationFn = func(_ context.Context, _ *models.CommentModeration) error {
			logged = true
			return nil
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(), false)

		_, err := svc.UpdateComment(context.Background(), 5, 1, "new text")
		require.NoError(t, err)
		assert.False(t, logged)
	})

	t.Run("staff edit of another author's comment is logged", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, AuthorID: 5, Content: "old"}, nil
		}
		var gotEntry *models.CommentModeration
		comments.logModerationFn = func(_ context.Context, entry *models.CommentModeration) error {
			gotEntry = entry
			return nil
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(9), false)

		_, err := svc.UpdateComment(context.Background(), 9, 1, "cleaned up")
		require.NoError(t, err)
		require.NotNil(t, gotEntry)
		assert.Equal(t, models.ModerationEdited, gotEntry.Action)
		assert.Equal(t, uint(9), gotEntry.ModeratorID)
	})

	t.Run("non-author non-staff is forbidden", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, AuthorID: 5}, nil
		}

		svc := NewCommentService(comments, commentablePostRepo(), staffChecker(), false)

		_, err := svc.UpdateComment(context.Background(), 6, 1, "hijack")
		assertAppErrorCode(t, err, models.CodeForbidden)
	})
}

func TestCommentService_PendingComments_StaffOnly(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), commentablePostRepo(), staffChecker(), false)

	_, err := svc.PendingComments(context.Background(), 5, 10, 0)
	assertAppErrorCode(t, err, models.CodeForbidden)
}

func TestCommentService_ListByAuthor_Visibility(t *testing.T) {
	t.Parallel()

	var gotApprovedOnly bool
	comments := noopCommentRepo()
	comments.listByAuthorFn = func(_ context.Context, _ uint, _, _ int, approvedOnly bool) ([]*models.Comment, error) {
		gotApprovedOnly = approvedOnly
		return nil, nil
	}

	svc := NewCommentService(comments, commentablePostRepo(), staffChecker(), false)

	_, err := svc.ListByAuthor(context.Background(), 5, 20, 0, false)
	require.NoError(t, err)
	assert.True(t, gotApprovedOnly)

	_, err = svc.ListByAuthor(context.Background(), 5, 20, 0, true)
	require.NoError(t, err)
	assert.False(t, gotApprovedOnly)
}
