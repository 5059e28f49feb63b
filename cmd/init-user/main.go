package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerbase/ledgerbase/config"
	"github.com/ledgerbase/ledgerbase/internal/core/auth"
	"github.com/ledgerbase/ledgerbase/internal/storage/postgres"
)

// Creates the first user account without going through the HTTP API.
func main() {
	email := os.Getenv("BOOTSTRAP_EMAIL")
	password := os.Getenv("BOOTSTRAP_PASSWORD")
	name := os.Getenv("BOOTSTRAP_NAME")

	if email == "" || password == "" {
		log.Fatal("BOOTSTRAP_EMAIL and BOOTSTRAP_PASSWORD environment variables are required")
	}
	if name == "" {
		name = email
	}

	cfg := config.Load()

	db, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	authRepo := auth.NewRepository(db)

	existing, err := authRepo.GetUserByEmail(ctx, email)
	if err != nil {
		log.Fatalf("Failed to check for existing user: %v", err)
	}
	if existing != nil {
		fmt.Printf("User '%s' already exists\n", email)
		os.Exit(0)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &auth.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       "active",
	}

	if err := authRepo.CreateUser(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Successfully created user: %s\n", email)
}
