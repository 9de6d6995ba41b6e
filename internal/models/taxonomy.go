package models

import "time"

// Category organizes posts into an optional hierarchy.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	ParentID    *uint     `gorm:"index" json:"parent_id,omitempty"`
	Parent      *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"parent,omitempty"`
	Icon        string    `gorm:"size:50" json:"icon"`
	Color       string    `gorm:"size:7" json:"color"`
	IsActive    bool      `gorm:"not null;default:true;index:idx_categories_active_sort" json:"is_active"`
	SortOrder   int       `gorm:"not null;default:0;index:idx_categories_active_sort" json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Tag labels posts independently of the category hierarchy.
type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	Slug        string    `gorm:"size:50;not null;uniqueIndex" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Color       string    `gorm:"size:7" json:"color"`
	UsageCount  uint      `gorm:"not null;default:0" json:"usage_count"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
