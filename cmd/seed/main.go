// Command seed populates the database with development data.
package main

import (
	"flag"
	"fmt"
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	users := flag.Int("users", 10, "number of users to create")
	posts := flag.Int("posts", 40, "number of posts to create")
	clean := flag.Bool("clean", false, "delete existing data first")
	flag.Parse()

	if err := run(*users, *posts, *clean); err != nil {
		log.Fatal(err)
	}
}

func run(users, posts int, clean bool) error {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	return seed.Seed(db, seed.Options{
		NumUsers:    users,
		NumPosts:    posts,
		ShouldClean: clean,
	})
}
