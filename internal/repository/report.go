package repository

import (
	"context"
	"time"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ReportRepository defines the interface for comment report persistence.
type ReportRepository interface {
	// Create stores a new report. A second report by the same reporter for
	// the same comment violates the unique index and surfaces as
	// gorm.ErrDuplicatedKey.
	Create(ctx context.Context, report *models.CommentReport) error
	GetByID(ctx context.Context, id uint) (*models.CommentReport, error)
	ListOpen(ctx context.Context, limit, offset int) ([]*models.CommentReport, error)
	ListForComment(ctx context.Context, commentID uint) ([]*models.CommentReport, error)
	// MarkUnderReview advances a pending report. Returns the number of rows
	// changed; zero means the report had already moved on.
	MarkUnderReview(ctx context.Context, reportID uint) (int64, error)
	// Resolve terminates a report. The status guard in the UPDATE makes
	// concurrent resolution attempts lose cleanly: the second one changes
	// zero rows.
	Resolve(ctx context.Context, reportID, resolverID uint, outcome models.ReportStatus, notes string, now time.Time) (int64, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.CommentReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, id uint) (*models.CommentReport, error) {
	var report models.CommentReport
	if err := r.db.WithContext(ctx).
		Preload("Reporter").
		Preload("ResolvedBy").
		First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListOpen(ctx context.Context, limit, offset int) ([]*models.CommentReport, error) {
	var reports []*models.CommentReport
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("status IN ?", []models.ReportStatus{models.ReportStatusPending, models.ReportStatusUnderReview}).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) ListForComment(ctx context.Context, commentID uint) ([]*models.CommentReport, error) {
	var reports []*models.CommentReport
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Where("comment_id = ?", commentID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (r *reportRepository) MarkUnderReview(ctx context.Context, reportID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CommentReport{}).
		Where("id = ? AND status = ?", reportID, models.ReportStatusPending).
		UpdateColumn("status", models.ReportStatusUnderReview)
	return res.RowsAffected, res.Error
}

func (r *reportRepository) Resolve(ctx context.Context, reportID, resolverID uint, outcome models.ReportStatus, notes string, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.CommentReport{}).
		Where("id = ? AND status IN ?", reportID,
			[]models.ReportStatus{models.ReportStatusPending, models.ReportStatusUnderReview}).
		Updates(map[string]interface{}{
			"status":           outcome,
			"resolved_at":      now,
			"resolved_by_id":   resolverID,
			"resolution_notes": notes,
		})
	return res.RowsAffected, res.Error
}
