// Package service implements the application's business rules on top of the
// repository layer: the publication lifecycle, comment moderation, report
// resolution, and engagement tracking.
package service

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// StaffChecker reports whether a user has staff (moderator) privileges.
type StaffChecker func(ctx context.Context, userID uint) (bool, error)

// notFoundOr converts a gorm record-not-found error into the application's
// NotFound error; any other error passes through unchanged.
func notFoundOr(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return err
}

// isDuplicate reports whether err is a unique constraint violation.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
