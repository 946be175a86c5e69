package database

import (
	"database/sql"
	"log"
)

// RunMigrations checks and applies necessary schema updates
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	if err := createTables(db); err != nil {
		return err
	}
	if err := seedRoles(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createTables(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(100) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY,
			name VARCHAR(80) UNIQUE NOT NULL,
			description VARCHAR(255) NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role_id UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, role_id)
		);

		CREATE TABLE IF NOT EXISTS pcs (
			id UUID PRIMARY KEY,
			name VARCHAR(80) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status VARCHAR(7) NOT NULL DEFAULT 'Active',
			owner_id UUID NOT NULL REFERENCES users(id),
			karma INTEGER NOT NULL,
			nuyen INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_pcs_owner_status ON pcs (owner_id, status);

		CREATE TABLE IF NOT EXISTS npcs (
			id UUID PRIMARY KEY,
			name VARCHAR(80) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			status VARCHAR(7) NOT NULL DEFAULT 'Active',
			security VARCHAR(80) NOT NULL,
			connection INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS contacts (
			id UUID PRIMARY KEY,
			character_id UUID NOT NULL REFERENCES pcs(id) ON DELETE CASCADE,
			contact_id UUID NOT NULL REFERENCES npcs(id) ON DELETE CASCADE,
			security VARCHAR(80) NOT NULL,
			connection INTEGER NOT NULL DEFAULT 1,
			loyalty INTEGER NOT NULL,
			chips INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_contacts_character ON contacts (character_id);
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to create tables: %v", err)
		return err
	}
	return nil
}

func seedRoles(db *sql.DB) error {
	query := `
		INSERT INTO roles (id, name, description) VALUES
			(gen_random_uuid(), 'Player', 'Basic player access'),
			(gen_random_uuid(), 'GM', 'Runs games in the campaign'),
			(gen_random_uuid(), 'Campaign Owner', 'Owns and administers the campaign'),
			(gen_random_uuid(), 'Admin', 'Site administrator')
		ON CONFLICT (name) DO NOTHING;
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to seed roles: %v", err)
		return err
	}
	return nil
}
