// Command setupdb applies the schema and seeds an initial admin user.
// Safe to run repeatedly: the schema is idempotent and the admin is
// only created when the email is not taken.
package main

import (
	"database/sql"
	"os"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"agendabooking/config"
	"agendabooking/internal/adapters/auth"
)

const schemaPath = "migrations/schema.sql"

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	schema, err := os.ReadFile(schemaPath)
	if err != nil {
		logger.Error("failed to read schema", "path", schemaPath, "error", err)
		os.Exit(1)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}
	logger.Info("schema applied")

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		logger.Info("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	salt, err := hasher.GenerateSalt()
	if err != nil {
		logger.Error("failed to generate salt", "error", err)
		os.Exit(1)
	}
	hash, err := hasher.Hash(salt, adminPassword)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	res, err := db.Exec(`
		INSERT INTO users (name, email, password_hash, salt, role, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'admin', TRUE, NOW(), NOW())
		ON CONFLICT (email) DO NOTHING`,
		"Administrator", adminEmail, hash, salt,
	)
	if err != nil {
		logger.Error("failed to seed admin", "error", err)
		os.Exit(1)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		logger.Info("admin already exists", "email", adminEmail)
		return
	}
	logger.Info("admin user created", "email", adminEmail)
}
