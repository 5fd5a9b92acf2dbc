package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"charmforge-be/internal/config"

	_ "github.com/lib/pq"
)

// InitDB opens the Postgres pool the storefront runs on. Startup is the
// only caller, so failures are fatal rather than returned.
func InitDB(cfg *config.Config) *sql.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// Checkout holds a connection only for the order insert transaction,
	// so a small pool is plenty.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	log.Println("database connection established")
	return db
}
