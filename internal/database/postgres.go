package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL database
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	// Set connection pool settings
	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize tables
	if err = InitPostgresTables(); err != nil {
		return err
	}

	return nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables() error {
	queries := []string{
		// Users table (created on first login, profile refreshed on each login)
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			first_name VARCHAR(255),
			last_name VARCHAR(255),
			profile_image_url TEXT,
			role VARCHAR(20) NOT NULL DEFAULT 'user',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Scans table. A row is created in 'scanning' state and updated exactly
		// once to 'completed' or 'failed'; rows are never deleted.
		`CREATE TABLE IF NOT EXISTS scans (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id),
			type VARCHAR(20) NOT NULL,
			target TEXT NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			threat_level VARCHAR(20) NOT NULL DEFAULT 'safe',
			risk_score NUMERIC(5,2) NOT NULL DEFAULT 0.00,
			findings JSONB,
			metadata JSONB,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Threat intelligence advisories (admin/feed curated)
		`CREATE TABLE IF NOT EXISTS threats (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			type VARCHAR(50) NOT NULL,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			severity VARCHAR(20) NOT NULL,
			source VARCHAR(255),
			indicators JSONB,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Historical breach reference data (append-only)
		`CREATE TABLE IF NOT EXISTS breaches (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) NOT NULL,
			breach_name VARCHAR(255) NOT NULL,
			breach_date TIMESTAMP,
			compromised_data JSONB,
			source VARCHAR(255) NOT NULL DEFAULT 'HaveIBeenPwned',
			severity VARCHAR(20) NOT NULL DEFAULT 'medium',
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Create indexes for better performance
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_user_id ON scans(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_user_id_created_at ON scans(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_type ON scans(type)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_threat_level ON scans(threat_level)`,
		`CREATE INDEX IF NOT EXISTS idx_threats_is_active ON threats(is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_threats_created_at ON threats(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_breaches_email ON breaches(email)`,
		`CREATE INDEX IF NOT EXISTS idx_breaches_created_at ON breaches(created_at)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
