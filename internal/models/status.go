package models

import "time"

// PostStatus is an admin-managed publication state. The set of statuses is
// open at runtime; business logic only ever branches on IsPublished, never
// on the name or slug.
type PostStatus struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"size:50" json:"icon"`
	Color       string    `gorm:"size:7" json:"color"`
	IsPublished bool      `gorm:"not null;default:false;index" json:"is_published"`
	IsActive    bool      `gorm:"not null;default:true;index:idx_post_statuses_active_sort" json:"is_active"`
	SortOrder   int       `gorm:"not null;default:0;index:idx_post_statuses_active_sort" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (PostStatus) TableName() string {
	return "post_statuses"
}

// StatusSlugDraft is the conventional slug of the status new posts fall back
// to when none is given. Its absence from the registry is not an error.
const StatusSlugDraft = "draft"

// StatusSlugPublished is the conventional slug Publish transitions into.
const StatusSlugPublished = "published"
