package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// engagementRepoStub is a stub for repository.EngagementRepository.
type engagementRepoStub struct {
	engageFn              func(context.Context, uint, uint, models.EngagementType) error
	disengageFn           func(context.Context, uint, uint, models.EngagementType) (bool, error)
	existsFn              func(context.Context, uint, uint, models.EngagementType) (bool, error)
	listBookmarkedPostsFn func(context.Context, uint, int, int) ([]*models.Post, error)
}

func (s *engagementRepoStub) Engage(ctx context.Context, userID, postID uint, typ models.EngagementType) error {
	return s.engageFn(ctx, userID, postID, typ)
}
func (s *engagementRepoStub) Disengage(ctx context.Context, userID, postID uint, typ models.EngagementType) (bool, error) {
	return s.disengageFn(ctx, userID, postID, typ)
}
func (s *engagementRepoStub) Exists(ctx context.Context, userID, postID uint, typ models.EngagementType) (bool, error) {
	return s.existsFn(ctx, userID, postID, typ)
}
func (s *engagementRepoStub) ListBookmarkedPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.listBookmarkedPostsFn(ctx, userID, limit, offset)
}

func noopEngagementRepo() *engagementRepoStub {
	return &engagementRepoStub{
		engageFn: func(_ context.Context, _, _ uint, _ models.EngagementType) error { return nil },
		disengageFn: func(_ context.Context, _, _ uint, _ models.EngagementType) (bool, error) {
			return true, nil
		},
		existsFn: func(_ context.Context, _, _ uint, _ models.EngagementType) (bool, error) {
			return false, nil
		},
		listBookmarkedPostsFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
	}
}

func TestEngagementService_Like(t *testing.T) {
	t.Parallel()

	t.Run("records the like", func(t *testing.T) {
		t.Parallel()
		engagements := noopEngagementRepo()
		var gotType models.EngagementType
		engagements.engageFn = func(_ context.Context, _, _ uint, typ models.EngagementType) error {
			gotType = typ
			return nil
		}

		svc := NewEngagementService(engagements, noopPostRepo())

		require.NoError(t, svc.Like(context.Background(), 2, 1))
		assert.Equal(t, models.EngagementLike, gotType)
	})

	t.Run("repeated like is a no-op", func(t *testing.T) {
		t.Parallel()
		engagements := noopEngagementRepo()
		engagements.engageFn = func(_ context.Context, _, _ uint, _ models.EngagementType) error {
			return gorm.ErrDuplicatedKey
		}

		svc := NewEngagementService(engagements, noopPostRepo())

		assert.NoError(t, svc.Like(context.Background(), 2, 1))
	})

	t.Run("missing post is not found", func(t *testing.T) {
		t.Parallel()
		posts := noopPostRepo()
		posts.getByIDFn = func(_ context.Context, _ uint) (*models.Post, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewEngagementService(noopEngagementRepo(), posts)

		err := svc.Like(context.Background(), 2, 1)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestEngagementService_Unlike_AbsentRowIsNoop(t *testing.T) {
	t.Parallel()

	engagements := noopEngagementRepo()
	engagements.disengageFn = func(_ context.Context, _, _ uint, _ models.EngagementType) (bool, error) {
		return false, nil
	}

	svc := NewEngagementService(engagements, noopPostRepo())

	assert.NoError(t, svc.Unlike(context.Background(), 2, 1))
}

func TestEngagementService_Bookmark(t *testing.T) {
	t.Parallel()

	engagements := noopEngagementRepo()
	var gotType models.EngagementType
	engagements.engageFn = func(_ context.Context, _, _ uint, typ models.EngagementType) error {
		gotType = typ
		return nil
	}

	svc := NewEngagementService(engagements, noopPostRepo())

	require.NoError(t, svc.Bookmark(context.Background(), 2, 1))
	assert.Equal(t, models.EngagementBookmark, gotType)
}

func TestEngagementService_HasEngagement_InvalidType(t *testing.T) {
	t.Parallel()

	svc := NewEngagementService(noopEngagementRepo(), noopPostRepo())

	_, err := svc.HasEngagement(context.Background(), 2, 1, models.EngagementType("poke"))
	assertAppErrorCode(t, err, models.CodeValidation)
}
