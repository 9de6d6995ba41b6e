package service

import (
	"context"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// reportRepoStub is a stub for repository.ReportRepository.
type reportRepoStub struct {
	createFn          func(context.Context, *models.CommentReport) error
	getByIDFn         func(context.Context, uint) (*models.CommentReport, error)
	listOpenFn        func(context.Context, int, int) ([]*models.CommentReport, error)
	listForCommentFn  func(context.Context, uint) ([]*models.CommentReport, error)
	markUnderReviewFn func(context.Context, uint) (int64, error)
	resolveFn         func(context.Context, uint, uint, models.ReportStatus, string, time.Time) (int64, error)
}

func (s *reportRepoStub) Create(ctx context.Context, report *models.CommentReport) error {
	return s.createFn(ctx, report)
}
func (s *reportRepoStub) GetByID(ctx context.Context, id uint) (*models.CommentReport, error) {
	return s.getByIDFn(ctx, id)
}
func (s *reportRepoStub) ListOpen(ctx context.Context, limit, offset int) ([]*models.CommentReport, error) {
	return s.listOpenFn(ctx, limit, offset)
}
func (s *reportRepoStub) ListForComment(ctx context.Context, commentID uint) ([]*models.CommentReport, error) {
	return s.listForCommentFn(ctx, commentID)
}
func (s *reportRepoStub) MarkUnderReview(ctx context.Context, reportID uint) (int64, error) {
	return s.markUnderReviewFn(ctx, reportID)
}
func (s *reportRepoStub) Resolve(ctx context.Context, reportID, resolverID uint, outcome models.ReportStatus, notes string, now time.Time) (int64, error) {
	return s.resolveFn(ctx, reportID, resolverID, outcome, notes, now)
}

func noopReportRepo() *reportRepoStub {
	return &reportRepoStub{
		createFn: func(_ context.Context, _ *models.CommentReport) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.CommentReport, error) {
			return &models.CommentReport{ID: id, Status: models.ReportStatusPending}, nil
		},
		listOpenFn: func(_ context.Context, _, _ int) ([]*models.CommentReport, error) { return nil, nil },
		listForCommentFn: func(_ context.Context, _ uint) ([]*models.CommentReport, error) {
			return nil, nil
		},
		markUnderReviewFn: func(_ context.Context, _ uint) (int64, error) { return 1, nil },
		resolveFn: func(_ context.Context, _, _ uint, _ models.ReportStatus, _ string, _ time.Time) (int64, error) {
			return 1, nil
		},
	}
}

func TestReportService_Report(t *testing.T) {
	t.Parallel()

	t.Run("files a pending report", func(t *testing.T) {
		t.Parallel()
		reports := noopReportRepo()
		var created *models.CommentReport
		reports.createFn = func(_ context.Context, r *models.CommentReport) error {
			created = r
			r.ID = 3
			return nil
		}
		reports.getByIDFn = func(_ context.Context, _ uint) (*models.CommentReport, error) { return created, nil }

		svc := NewReportService(reports, noopCommentRepo(), staffChecker())

		report, err := svc.Report(context.Background(), ReportInput{
			ReporterID: 2, CommentID: 1, Reason: models.ReportReasonSpam, Description: "link farm",
		})
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusPending, report.Status)
		assert.Equal(t, models.ReportReasonSpam, report.Reason)
	})

	t.Run("invalid reason", func(t *testing.T) {
		t.Parallel()
		svc := NewReportService(noopReportRepo(), noopCommentRepo(), staffChecker())

		_, err := svc.Report(context.Background(), ReportInput{
			ReporterID: 2, CommentID: 1, Reason: "because",
		})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("missing comment is not found", func(t *testing.T) {
		t.Parallel()
		comments := noopCommentRepo()
		comments.getByIDFn = func(_ context.Context, _ uint) (*models.Comment, error) {
			return nil, gorm.ErrRecordNotFound
		}

		svc := NewReportService(noopReportRepo(), comments, staffChecker())

		_, err := svc.Report(context.Background(), ReportInput{
			ReporterID: 2, CommentID: 1, Reason: models.ReportReasonSpam,
		})
		assertAppErrorCode(t, err, models.CodeNotFound)
	})

	t.Run("second report by the same user is a duplicate", func(t *testing.T) {
		t.Parallel()
		reports := noopReportRepo()
		reports.createFn = func(_ context.Context, _ *models.CommentReport) error {
			return gorm.ErrDuplicatedKey
		}

		svc := NewReportService(reports, noopCommentRepo(), staffChecker())

		_, err := svc.Report(context.Background(), ReportInput{
			ReporterID: 2, CommentID: 1, Reason: models.ReportReasonSpam,
		})
		assertAppErrorCode(t, err, models.CodeDuplicateReport)
	})
}

func TestReportService_StartReview(t *testing.T) {
	t.Parallel()

	t.Run("non-staff is forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewReportService(noopReportRepo(), noopCommentRepo(), staffChecker())

		_, err := svc.StartReview(context.Background(), 5, 1)
		assertAppErrorCode(t, err, models.CodeForbidden)
	})

	t.Run("terminal report cannot re-enter review", func(t *testing.T) {
		t.Parallel()
		reports := noopReportRepo()
		reports.getByIDFn = func(_ context.Context, id uint) (*models.CommentReport, error) {
			return &models.CommentReport{ID: id, Status: models.ReportStatusResolved}, nil
		}

		svc := NewReportService(reports, noopCommentRepo(), staffChecker(9))

		_, err := svc.StartReview(context.Background(), 9, 1)
		assertAppErrorCode(t, err, models.CodeAlreadyResolved)
	})

	t.Run("zero rows means the report left pending", func(t *testing.T) {
		t.Parallel()
		reports := noopReportRepo()
		reports.markUnderReviewFn = func(_ context.Context, _ uint) (int64, error) { return 0, nil }

		svc := NewReportService(reports, noopCommentRepo(), staffChecker(9))

		_, err := svc.StartReview(context.Background(), 9, 1)
		assertAppErrorCode(t, err, models.CodeInvalidTransition)
	})
}

func TestReportService_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("resolves with resolver and timestamp", func(t *testing.T) {
		t.Parallel()
		reports := noopReportRepo()
		var gotResolver uint
		var gotOutcome models.ReportStatus
		var gotWhen time.Time
		reports.resolveFn = func(_ context.Context, _, resolverID uint, outcome models.ReportStatus, _ string, now time.Time) (int64, error) {
			gotResolver = resolverID
			gotOutcome = outcome
			gotWhen = now
			return 1, nil
		}

		svc := NewReportService(reports, noopCommentRepo(), staffChecker(9))

		_, err := svc.Resolve(context.Background(), ResolveInput{
			ResolverID: 9, ReportID: 1, Outcome: models.ReportStatusResolved, Notes: "removed",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(9), gotResolver)
		assert.Equal(t, models.ReportStatusResolved, gotOutcome)
		assert.WithinDuration(t, time.Now().UTC(), gotWhen, time.Minute)
	})

	t.Run("non-terminal outcome is invalid", func(t *testing.T) {
		t.Parallel()
		svc := NewReportService(noopReportRepo(), noopCommentRepo(), staffChecker(9))

		_, err := svc.Resolve(context.Background(), ResolveInput{
			ResolverID: 9, ReportID: 1, Outcome: models.ReportStatusUnderReview,
		})
		assertAppErrorCode(t, err, models.CodeValidation)
	})

	t.Run("already terminal report", func(t *testing.T) {
		t.Parallel()
		reports := noopReportRepo()
		reports.getByIDFn = func(_ context.Context, id uint) (*models.CommentReport, error) {
			return &models.CommentReport{ID: id, Status: models.ReportStatusDismissed}, nil
		}

		svc := NewReportService(reports, noopCommentRepo(), staffChecker(9))

		_, err := svc.Resolve(context.Background(), ResolveInput{
			ResolverID: 9, ReportID: 1, Outcome: models.ReportStatusResolved,
		})
		assertAppErrorCode(t, err, models.CodeAlreadyResolved)
	})

	t.Run("losing a resolution race surfaces as already resolved", func(t *testing.T) {
		t.Parallel()
		reports := noopReportRepo()
		reports.resolveFn = func(_ context.Context, _, _ uint, _ models.ReportStatus, _ string, _ time.Time) (int64, error) {
			return 0, nil
		}

		svc := NewReportService(reports, noopCommentRepo(), staffChecker(9))

		_, err := svc.Resolve(context.Background(), ResolveInput{
			ResolverID: 9, ReportID: 1, Outcome: models.ReportStatusResolved,
		})
		assertAppErrorCode(t, err, models.CodeAlreadyResolved)
	})
}

func TestReportService_Queues_StaffOnly(t *testing.T) {
	t.Parallel()

	svc := NewReportService(noopReportRepo(), noopCommentRepo(), staffChecker())

	_, err := svc.ListOpen(context.Background(), 5, 10, 0)
	assertAppErrorCode(t, err, models.CodeForbidden)

	_, err = svc.ListForComment(context.Background(), 5, 1)
	assertAppErrorCode(t, err, models.CodeForbidden)

	_, err = svc.GetReport(context.Background(), 5, 1)
	assertAppErrorCode(t, err, models.CodeForbidden)
}
