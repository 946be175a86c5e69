package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/Sandvich/runnersbackend/app/database"

	_ "github.com/lib/pq"
)

type Config struct {
	DB    *sql.DB
	Store database.Store
}

var AppConfig *Config

func env(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func InitDB() {
	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		env("DB_HOST", "localhost"),
		env("DB_PORT", "5432"),
		env("DB_USER", "postgres"),
		env("DB_PASSWORD", "postgres"),
		env("DB_NAME", "runnershub"),
		env("DB_SSLMODE", "disable"),
	)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Set DB_HOST, DB_PORT, DB_USER, DB_PASSWORD and DB_NAME to point at a reachable PostgreSQL instance")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{
		DB:    db,
		Store: database.NewSQLStore(db),
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func GetStore() database.Store {
	return AppConfig.Store
}

// SetStore swaps the active store. Tests use it to run handlers against a
// MemoryStore without a database.
func SetStore(store database.Store) {
	if AppConfig == nil {
		AppConfig = &Config{}
	}
	AppConfig.Store = store
}

// ListenAddr is the address the HTTP server binds to.
func ListenAddr() string {
	return ":" + env("PORT", "8080")
}
