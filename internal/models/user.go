// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account that can author posts and comments.
// Staff users may moderate comments and resolve reports.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email     string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	IsStaff   bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DisplayName returns the user's full name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FirstName != "" && u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	return u.Username
}

// UserProfile holds per-user profile data and notification preferences.
// It is created explicitly in the same transaction as its User; there is
// no implicit creation hook.
type UserProfile struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User               User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Bio                string    `gorm:"size:500" json:"bio"`
	AvatarURL          string    `json:"avatar_url"`
	EmailNotifications bool      `gorm:"not null;default:true" json:"email_notifications"`
	ShowEmailPublicly  bool      `gorm:"not null;default:false" json:"show_email_publicly"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
