// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var (
	categoryNames = []string{
		"Technology", "Programming", "Design", "Writing", "Productivity",
		"Science", "Culture", "Travel", "Food", "Personal",
	}

	tagNames = []string{
		"go", "postgres", "redis", "web", "tutorial", "opinion", "review",
		"howto", "career", "tools", "open-source", "performance",
	}

	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
		"Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan",
		"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen", "Daniel",
		"Lisa", "Matthew", "Nancy", "Anthony", "Margaret", "Mark", "Sandra",
	}

	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Wilson", "Anderson", "Thomas",
		"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	}

	adjectives = []string{
		"practical", "simple", "complete", "honest", "unexpected", "modern",
		"minimal", "thorough", "opinionated", "gentle", "quick", "deep",
	}

	nouns = []string{
		"guide", "introduction", "retrospective", "comparison", "walkthrough",
		"case study", "overview", "checklist", "story", "review", "postmortem",
	}

	topics = []string{
		"structured logging", "database migrations", "comment moderation",
		"content workflows", "caching strategies", "API design", "testing",
		"deployment pipelines", "writing habits", "code review",
	}
)

// Seed populates the database with test data: the status registry, a staff
// account, categories, tags, users, posts, and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := SeedStatuses(db); err != nil {
		return fmt.Errorf("failed to seed statuses: %w", err)
	}
	log.Println("status registry seeded")

	admin, err := ensureAdmin(db)
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	log.Printf("staff account ready: %s", admin.Username)

	categories, err := createCategories(db)
	if err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}
	log.Printf("%d categories available", len(categories))

	tags, err := createTags(db)
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}
	log.Printf("%d tags available", len(tags))

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := createPosts(db, users, categories, tags, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createComments(db, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Println("comments created")

	log.Println("Seeding complete")
	return nil
}

// SeedStatuses ensures the baseline publication statuses exist. It is safe
// to call repeatedly; existing slugs are left untouched.
func SeedStatuses(db *gorm.DB) error {
	statuses := []models.PostStatus{
		{Name: "Draft", Slug: models.StatusSlugDraft, Description: "Work in progress, only visible to the author", Color: "#9ca3af", IsPublished: false, IsActive: true, SortOrder: 10},
		{Name: "In Review", Slug: "review", Description: "Waiting for an editor", Color: "#f59e0b", IsPublished: false, IsActive: true, SortOrder: 20},
		{Name: "Published", Slug: models.StatusSlugPublished, Description: "Live and visible to everyone", Color: "#22c55e", IsPublished: true, IsActive: true, SortOrder: 30},
		{Name: "Archived", Slug: "archived", Description: "No longer listed publicly", Color: "#6b7280", IsPublished: false, IsActive: true, SortOrder: 40},
	}
	for i := range statuses {
		var existing models.PostStatus
		err := db.Where("slug = ?", statuses[i].Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&statuses[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureAdmin(db *gorm.DB) (*models.User, error) {
	var admin models.User
	err := db.Where("username = ?", "admin").First(&admin).Error
	if err == nil {
		return &admin, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	admin = models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hash),
		IsStaff:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}
	profile := models.UserProfile{UserID: admin.ID, EmailNotifications: true}
	if err := db.Create(&profile).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func createCategories(db *gorm.DB) ([]models.Category, error) {
	categories := make([]models.Category, 0, len(categoryNames))
	for i, name := range categoryNames {
		category := models.Category{
			Name:      name,
			Slug:      strings.ToLower(name),
			IsActive:  true,
			SortOrder: i * 10,
		}
		if err := db.Where("slug = ?", category.Slug).FirstOrCreate(&category).Error; err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func createTags(db *gorm.DB) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag := models.Tag{
			Name:     name,
			Slug:     name,
			IsActive: true,
		}
		if err := db.Where("slug = ?", tag.Slug).FirstOrCreate(&tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first := firstNames[rand.Intn(len(firstNames))]
		last := lastNames[rand.Intn(len(lastNames))]
		user := models.User{
			Username:  fmt.Sprintf("%s%s%d", strings.ToLower(first), strings.ToLower(last), i),
			Email:     fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Password:  string(hash),
			FirstName: first,
			LastName:  last,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		profile := models.UserProfile{UserID: user.ID, EmailNotifications: true}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, categories []models.Category, tags []models.Tag, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	var published, draft models.PostStatus
	if err := db.Where("slug = ?", models.StatusSlugPublished).First(&published).Error; err != nil {
		return nil, err
	}
	if err := db.Where("slug = ?", models.StatusSlugDraft).First(&draft).Error; err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		title := fmt.Sprintf("A %s %s of %s",
			adjectives[rand.Intn(len(adjectives))],
			nouns[rand.Intn(len(nouns))],
			topics[rand.Intn(len(topics))])

		post := models.Post{
			Title:         title,
			Slug:          fmt.Sprintf("%s-%d", slugish(title), i),
			AuthorID:      author.ID,
			Content:       loremContent(),
			Excerpt:       "Some thoughts on " + topics[rand.Intn(len(topics))] + ".",
			AllowComments: true,
		}
		if category := categories[rand.Intn(len(categories))]; category.ID != 0 {
			post.CategoryID = &category.ID
		}

		// Roughly four out of five posts are published, the rest drafts.
		if rand.Intn(5) != 0 {
			post.ApplyStatus(&published, time.Now().Add(-time.Duration(rand.Intn(720))*time.Hour))
		} else {
			post.ApplyStatus(&draft, time.Now())
		}

		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}

		if len(tags) > 0 {
			picked := tags[rand.Intn(len(tags))]
			if err := db.Model(&post).Association("Tags").Append(&picked); err == nil {
				db.Model(&models.Tag{}).Where("id = ?", picked.ID).
					UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
			}
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}
	for _, post := range posts {
		n := rand.Intn(4)
		for i := 0; i < n; i++ {
			author := users[rand.Intn(len(users))]
			comment := models.Comment{
				PostID:     post.ID,
				AuthorID:   author.ID,
				Content:    fmt.Sprintf("Really %s take on %s.", adjectives[rand.Intn(len(adjectives))], topics[rand.Intn(len(topics))]),
				IsApproved: rand.Intn(4) != 0,
			}
			if err := db.Create(&comment).Error; err != nil {
				return err
			}
			if err := db.Model(&models.Post{}).Where("id = ?", post.ID).
				UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func loremContent() string {
	paragraphs := rand.Intn(4) + 2
	var b strings.Builder
	for i := 0; i < paragraphs; i++ {
		sentences := rand.Intn(4) + 3
		for j := 0; j < sentences; j++ {
			b.WriteString(fmt.Sprintf("The %s %s %s everything about %s. ",
				adjectives[rand.Intn(len(adjectives))],
				nouns[rand.Intn(len(nouns))],
				[]string{"changed", "explained", "improved", "simplified"}[rand.Intn(4)],
				topics[rand.Intn(len(topics))]))
		}
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

func slugish(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	return s
}

func clearData(db *gorm.DB) error {
	// Order matters: children before parents.
	tables := []string{
		"comment_reports", "comment_moderations", "comments",
		"post_engagements", "post_tags", "posts",
		"tags", "categories", "user_profiles", "users",
	}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
