package models

import (
	"strings"
	"time"
)

// wordsPerMinute is the assumed reading speed for the reading time estimate.
const wordsPerMinute = 200

// Post is the main content entity with a status-driven publishing workflow.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:200;not null" json:"title"`
	Slug     string `gorm:"size:200;not null;uniqueIndex" json:"slug"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Excerpt  string `gorm:"size:300" json:"excerpt"`

	CategoryID *uint     `gorm:"index" json:"category_id,omitempty"`
	Category   *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Tags       []Tag     `gorm:"many2many:post_tags" json:"tags,omitempty"`

	StatusID *uint       `gorm:"index" json:"status_id,omitempty"`
	Status   *PostStatus `gorm:"foreignKey:StatusID;constraint:OnDelete:SET NULL" json:"status,omitempty"`

	FeaturedImageURL string `json:"featured_image_url"`
	MetaDescription  string `gorm:"size:160" json:"meta_description"`
	MetaKeywords     string `gorm:"size:255" json:"meta_keywords"`

	// Counters are only ever updated through atomic SQL increments.
	ViewCount    uint `gorm:"not null;default:0" json:"view_count"`
	LikeCount    uint `gorm:"not null;default:0" json:"like_count"`
	CommentCount uint `gorm:"not null;default:0" json:"comment_count"`

	IsFeatured    bool `gorm:"not null;default:false;index" json:"is_featured"`
	AllowComments bool `gorm:"not null;default:true" json:"allow_comments"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `gorm:"index" json:"published_at,omitempty"`
}

// ApplyStatus points the post at the given status and maintains the derived
// publication timestamp: the first transition into a published-type status
// stamps PublishedAt with now, and any transition into a non-published-type
// status clears it unconditionally. A nil status counts as non-published.
// Republishing later re-stamps with a new time; the original publish time is
// never restored.
func (p *Post) ApplyStatus(status *PostStatus, now time.Time) {
	p.Status = status
	if status == nil {
		p.StatusID = nil
		p.PublishedAt = nil
		return
	}
	p.StatusID = &status.ID
	if status.IsPublished {
		if p.PublishedAt == nil {
			t := now
			p.PublishedAt = &t
		}
	} else {
		p.PublishedAt = nil
	}
}

// IsPublished reports whether the post is publicly visible right now.
func (p *Post) IsPublished() bool {
	return p.IsPublishedAt(time.Now())
}

// IsPublishedAt reports whether the post is publicly visible at the given
// instant. Scheduled posts (PublishedAt in the future) are not yet visible.
func (p *Post) IsPublishedAt(now time.Time) bool {
	return p.Status != nil &&
		p.Status.IsPublished &&
		p.PublishedAt != nil &&
		!p.PublishedAt.After(now)
}

// ReadingTime estimates reading time in whole minutes, never less than one.
// Words are counted by whitespace splitting.
func (p *Post) ReadingTime() int {
	words := len(strings.Fields(p.Content))
	if words < wordsPerMinute {
		return 1
	}
	return words / wordsPerMinute
}

// EngagementType classifies a user's interaction with a post.
type EngagementType string

const (
	EngagementLike     EngagementType = "like"
	EngagementBookmark EngagementType = "bookmark"
	EngagementShare    EngagementType = "share"
	EngagementView     EngagementType = "view"
)

// Valid reports whether the engagement type is one of the known values.
func (t EngagementType) Valid() bool {
	switch t {
	case EngagementLike, EngagementBookmark, EngagementShare, EngagementView:
		return true
	}
	return false
}

// PostEngagement records a single user's interaction with a post. The
// (user, post, type) triple is unique so repeated requests cannot inflate
// counters.
type PostEngagement struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_engagement_user_post_type" json:"user_id"`
	PostID    uint           `gorm:"not null;uniqueIndex:idx_engagement_user_post_type;index" json:"post_id"`
	Post      Post           `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Type      EngagementType `gorm:"type:varchar(20);not null;uniqueIndex:idx_engagement_user_post_type" json:"type"`
	CreatedAt time.Time      `json:"created_at"`
}
