package models

import "time"

// Comment is a reader comment on a post. Comments form a tree through
// ParentID; the tree is stored flat and walked iteratively, never through
// in-memory recursion. New comments start unapproved and enter the
// moderation queue.
type Comment struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	PostID   uint     `gorm:"not null;index:idx_comments_post_created" json:"post_id"`
	Post     Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID uint     `gorm:"not null;index" json:"author_id"`
	Author   User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	ParentID *uint    `gorm:"index" json:"parent_id,omitempty"`
	Parent   *Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`

	IsApproved bool `gorm:"not null;default:false;index" json:"is_approved"`
	IsFlagged  bool `gorm:"not null;default:false" json:"is_flagged"`

	LikeCount uint `gorm:"not null;default:0" json:"like_count"`

	CreatedAt time.Time `gorm:"index:idx_comments_post_created" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsReply reports whether this comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// ModerationAction is a staff decision recorded about a comment.
type ModerationAction string

const (
	ModerationApproved ModerationAction = "approved"
	ModerationRejected ModerationAction = "rejected"
	ModerationFlagged  ModerationAction = "flagged"
	ModerationSpam     ModerationAction = "spam"
	ModerationEdited   ModerationAction = "edited"
)

// CommentModeration is an append-only log entry recording a moderation
// decision. Entries are never updated or deleted except through the comment
// cascade.
type CommentModeration struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	CommentID   uint             `gorm:"not null;index" json:"comment_id"`
	Comment     Comment          `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	ModeratorID uint             `gorm:"not null;index" json:"moderator_id"`
	Moderator   User             `gorm:"foreignKey:ModeratorID;constraint:OnDelete:CASCADE" json:"moderator,omitempty"`
	Action      ModerationAction `gorm:"type:varchar(20);not null;index" json:"action"`
	Reason      string           `gorm:"type:text" json:"reason"`
	Notes       string           `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time        `json:"created_at"`
}

// ReportReason categorizes a user-submitted comment report.
type ReportReason string

const (
	ReportReasonSpam           ReportReason = "spam"
	ReportReasonHarassment     ReportReason = "harassment"
	ReportReasonInappropriate  ReportReason = "inappropriate"
	ReportReasonOffTopic       ReportReason = "off_topic"
	ReportReasonMisinformation ReportReason = "misinformation"
	ReportReasonCopyright      ReportReason = "copyright"
	ReportReasonOther          ReportReason = "other"
)

// Valid reports whether the reason is one of the known values.
func (r ReportReason) Valid() bool {
	switch r {
	case ReportReasonSpam, ReportReasonHarassment, ReportReasonInappropriate,
		ReportReasonOffTopic, ReportReasonMisinformation, ReportReasonCopyright,
		ReportReasonOther:
		return true
	}
	return false
}

// ReportStatus tracks a report through its resolution workflow. Transitions
// only move forward and stop at a terminal state.
type ReportStatus string

const (
	ReportStatusPending     ReportStatus = "pending"
	ReportStatusUnderReview ReportStatus = "under_review"
	ReportStatusResolved    ReportStatus = "resolved"
	ReportStatusDismissed   ReportStatus = "dismissed"
)

// Terminal reports whether the status ends the resolution workflow.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

// CommentReport is a user-submitted flag of a comment for staff review.
// A user may report a given comment at most once, enforced by a unique
// (comment, reporter) constraint.
type CommentReport struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CommentID   uint         `gorm:"not null;uniqueIndex:idx_reports_comment_reporter" json:"comment_id"`
	Comment     Comment      `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
	ReporterID  uint         `gorm:"not null;uniqueIndex:idx_reports_comment_reporter" json:"reporter_id"`
	Reporter    User         `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"reporter,omitempty"`
	Reason      ReportReason `gorm:"type:varchar(20);not null;index" json:"reason"`
	Description string       `gorm:"type:text" json:"description"`
	Status      ReportStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`
	ResolvedByID    *uint      `json:"resolved_by_id,omitempty"`
	ResolvedBy      *User      `gorm:"foreignKey:ResolvedByID;constraint:OnDelete:SET NULL" json:"resolved_by,omitempty"`
	ResolutionNotes string     `gorm:"type:text" json:"resolution_notes"`

	CreatedAt time.Time `json:"created_at"`
}
