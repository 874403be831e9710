package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/eazydocs/eazydocs-backend/config"
	"github.com/eazydocs/eazydocs-backend/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@eazydocs.io"
	password := "password123"
	username := "demoUser"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, username, password, name, verified)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, email, username, hash, "Demo User").Scan(&userID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s username=%s password=%s\n", userID, email, username, password)

	title := "Welcome to Eazydocs"
	slug := helpers.BlogSlug(title, userID, helpers.SlugTitleMax)
	var blogID string
	err = db.QueryRow(`
		INSERT INTO blogs (title, subtitle, content, author, tags, slug, is_published, approved)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, TRUE)
		ON CONFLICT (slug) DO UPDATE SET content = EXCLUDED.content
		RETURNING id
	`, title, "Getting started", "This is a seeded post. Write your own!",
		userID, []string{"welcome"}, slug).Scan(&blogID)
	if err != nil {
		log.Fatalf("failed to seed blog: %v", err)
	}
	if _, err := db.Exec(`
		UPDATE users SET blogs = array_append(blogs, $1)
		WHERE id = $2 AND NOT ($1 = ANY (blogs))
	`, blogID, userID); err != nil {
		log.Fatalf("failed to link blog to user: %v", err)
	}
	fmt.Printf("seeded blog: id=%s slug=%s\n", blogID, slug)
}
