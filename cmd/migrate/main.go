package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/skhartaye/SMOKI/internal/auth"
	"github.com/skhartaye/SMOKI/internal/model"
	"github.com/skhartaye/SMOKI/internal/repository/sqlite"
)

func main() {
	_ = godotenv.Load()

	dbPath := flag.String("db", filepath.Join("data", "smoki.db"), "Database path")
	adminUser := flag.String("admin-user", envOr("ADMIN_USERNAME", "admin"), "Admin username to seed")
	adminPass := flag.String("admin-pass", os.Getenv("ADMIN_PASSWORD"), "Admin password to seed")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	// Opening the database runs the schema migration.
	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Schema migrated: %s\n", *dbPath)

	if *adminPass == "" {
		fmt.Println("No admin password given (-admin-pass or ADMIN_PASSWORD), skipping user seed")
		return
	}

	users := sqlite.NewUserRepository(db)
	existing, err := users.GetByUsername(*adminUser)
	if err != nil {
		log.Fatalf("Failed to look up user %s: %v", *adminUser, err)
	}
	if existing != nil {
		fmt.Printf("User %s already exists, nothing to do\n", *adminUser)
		return
	}

	hash, err := auth.HashPassword(*adminPass)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	if _, err := users.Insert(&model.User{
		Username:       *adminUser,
		HashedPassword: hash,
		Role:           "admin",
		FullName:       "Administrator",
	}); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	fmt.Printf("Seeded admin user %s\n", *adminUser)
}

func envOr(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}
