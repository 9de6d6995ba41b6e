package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatusService_Create(t *testing.T) {
	t.Parallel()

	t.Run("non-staff is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewStatusService(registryStatusRepo(), staffChecker())

		_, err := svc.Create(context.Background(), CreateStatusInput{ActorID: 5, Name: "Scheduled"})
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("slug derived from the name", func(t *testing.T) {
		t.Parallel()
		statuses := registryStatusRepo()
		var created *models.PostStatus
		statuses.createFn = func(_ context.Context, st *models.PostStatus) error {
			created = st
			return nil
		}

		svc := NewStatusService(statuses, staffChecker(9))

		status, err := svc.Create(context.Background(), CreateStatusInput{
			ActorID: 9, Name: "In Review", IsActive: true, SortOrder: 15,
		})
		require.NoError(t, err)
		assert.Equal(t, "in-review", status.Slug)
		assert.Equal(t, created, status)
	})

	t.Run("slug collision", func(t *testing.T) {
		t.Parallel()
		statuses := registryStatusRepo()
		statuses.createFn = func(_ context.Context, _ *models.PostStatus) error {
			return gorm.ErrDuplicatedKey
		}

		svc := NewStatusService(statuses, staffChecker(9))

		_, err := svc.Create(context.Background(), CreateStatusInput{ActorID: 9, Name: "Draft"})
		assertAppErrorCode(t, err, models.CodeDuplicateSlug)
	})

	t.Run("name is required", func(t *testing.T) {
		t.Parallel()
		svc := NewStatusService(registryStatusRepo(), staffChecker(9))

		_, err := svc.Create(context.Background(), CreateStatusInput{ActorID: 9})
		assertAppErrorCode(t, err, models.CodeValidation)
	})
}

func TestStatusService_Deactivate(t *testing.T) {
	t.Parallel()

	t.Run("clears is_active without deleting", func(t *testing.T) {
		t.Parallel()
		statuses := registryStatusRepo()
		var updated *models.PostStatus
		statuses.updateFn = func(_ context.Context, st *models.PostStatus) error {
			updated = st
			return nil
		}

		svc := NewStatusService(statuses, staffChecker(9))

		require.NoError(t, svc.Deactivate(context.Background(), 9, 1))
		require.NotNil(t, updated)
		assert.False(t, updated.IsActive)
	})

	t.Run("unknown status is not found", func(t *testing.T) {
		t.Parallel()
		svc := NewStatusService(registryStatusRepo(), staffChecker(9))

		err := svc.Deactivate(context.Background(), 9, 99)
		assertAppErrorCode(t, err, models.CodeNotFound)
	})
}

func TestStatusService_List_StaffOnly(t *testing.T) {
	t.Parallel()

	svc := NewStatusService(registryStatusRepo(), staffChecker())

	_, err := svc.List(context.Background(), 5)
	assertAppErrorCode(t, err, models.CodeForbidden)
}
