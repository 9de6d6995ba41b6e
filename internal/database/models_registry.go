package database

import "inkwell/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Order matters: referenced tables must be created before their dependents.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.UserProfile{},
		&models.Category{},
		&models.Tag{},
		&models.PostStatus{},
		&models.Post{},
		&models.PostEngagement{},
		&models.Comment{},
		&models.CommentModeration{},
		&models.CommentReport{},
	}
}
