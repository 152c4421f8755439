package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/seva-samiti/connect-backend/config"
	"github.com/seva-samiti/connect-backend/pkg/password"
)

// Seeds (or refreshes) the admin account. Override the defaults with
// ADMIN_EMAIL / ADMIN_PASSWORD / ADMIN_NAME.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	email := strings.ToLower(getenv("ADMIN_EMAIL", "admin@sevasamiti.org"))
	plain := getenv("ADMIN_PASSWORD", "admin123")
	name := getenv("ADMIN_NAME", "Administrator")

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := password.Hash(plain)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, name, password_hash, is_admin)
		VALUES ($1, $2, $3, TRUE)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, is_admin = TRUE
		RETURNING id
	`, email, name, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", id, email)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
