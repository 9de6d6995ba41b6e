package service

import (
	"context"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// ReportService handles user reports against comments and their forward-only
// resolution workflow: pending, optionally under_review, then a terminal
// resolved or dismissed state that is never reopened.
type ReportService struct {
	reportRepo  repository.ReportRepository
	commentRepo repository.CommentRepository
	isStaff     StaffChecker
	now         func() time.Time
}

// ReportInput carries the fields for a new comment report.
type ReportInput struct {
	ReporterID  uint
	CommentID   uint
	Reason      models.ReportReason
	Description string
}

// ResolveInput carries a staff resolution decision.
type ResolveInput struct {
	ResolverID uint
	ReportID   uint
	Outcome    models.ReportStatus
	Notes      string
}

// NewReportService creates a new ReportService.
func NewReportService(
	reportRepo repository.ReportRepository,
	commentRepo repository.CommentRepository,
	isStaff StaffChecker,
) *ReportService {
	return &ReportService{
		reportRepo:  reportRepo,
		commentRepo: commentRepo,
		isStaff:     isStaff,
		now:         time.Now,
	}
}

// Report files a report against a comment. Each user may report a comment
// once; the unique constraint catches repeats regardless of request timing.
func (s *ReportService) Report(ctx context.Context, in ReportInput) (*models.CommentReport, error) {
	if !in.Reason.Valid() {
		return nil, models.NewValidationError("Invalid report reason")
	}
	if _, err := s.commentRepo.GetByID(ctx, in.CommentID); err != nil {
		return nil, notFoundOr(err, "comment", in.CommentID)
	}

	report := &models.CommentReport{
		CommentID:   in.CommentID,
		ReporterID:  in.ReporterID,
		Reason:      in.Reason,
		Description: in.Description,
		Status:      models.ReportStatusPending,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		if isDuplicate(err) {
			return nil, models.NewDuplicateReportError()
		}
		return nil, err
	}
	return s.reportRepo.GetByID(ctx, report.ID)
}

// StartReview moves a pending report to under_review. Staff only. Reports
// that already left pending fail with InvalidTransition.
func (s *ReportService) StartReview(ctx context.Context, actorID, reportID uint) (*models.CommentReport, error) {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, notFoundOr(err, "report", reportID)
	}
	if report.Status.Terminal() {
		return nil, models.NewAlreadyResolvedError()
	}
	rows, err := s.reportRepo.MarkUnderReview(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.NewInvalidTransitionError("report is not pending")
	}
	return s.reportRepo.GetByID(ctx, reportID)
}

// Resolve closes a report as resolved or dismissed, stamping the resolver
// and time. Staff only. The guarded update means that when two moderators
// race, exactly one resolution wins and the other sees AlreadyResolved.
func (s *ReportService) Resolve(ctx context.Context, in ResolveInput) (*models.CommentReport, error) {
	if err := s.requireStaff(ctx, in.ResolverID); err != nil {
		return nil, err
	}
	if !in.Outcome.Terminal() {
		return nil, models.NewValidationError("Outcome must be resolved or dismissed")
	}
	report, err := s.reportRepo.GetByID(ctx, in.ReportID)
	if err != nil {
		return nil, notFoundOr(err, "report", in.ReportID)
	}
	if report.Status.Terminal() {
		return nil, models.NewAlreadyResolvedError()
	}
	rows, err := s.reportRepo.Resolve(ctx, in.ReportID, in.ResolverID, in.Outcome, in.Notes, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, models.NewAlreadyResolvedError()
	}
	return s.reportRepo.GetByID(ctx, in.ReportID)
}

// GetReport returns a single report. Staff only.
func (s *ReportService) GetReport(ctx context.Context, actorID, reportID uint) (*models.CommentReport, error) {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, notFoundOr(err, "report", reportID)
	}
	return report, nil
}

// ListOpen returns the unresolved report queue, newest first. Staff only.
func (s *ReportService) ListOpen(ctx context.Context, actorID uint, limit, offset int) ([]*models.CommentReport, error) {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	return s.reportRepo.ListOpen(ctx, limit, offset)
}

// ListForComment returns every report filed against a comment. Staff only.
func (s *ReportService) ListForComment(ctx context.Context, actorID, commentID uint) ([]*models.CommentReport, error) {
	if err := s.requireStaff(ctx, actorID); err != nil {
		return nil, err
	}
	return s.reportRepo.ListForComment(ctx, commentID)
}

func (s *ReportService) requireStaff(ctx context.Context, actorID uint) error {
	staff, err := s.isStaff(ctx, actorID)
	if err != nil {
		return err
	}
	if !staff {
		return models.NewForbiddenError("Only staff members can manage reports")
	}
	return nil
}
