// internal/common/database/migrate.go
// Schema bootstrap. Statements are idempotent so startup can always run them.

package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		phone VARCHAR(30) NOT NULL DEFAULT '',
		display_name VARCHAR(255) NOT NULL DEFAULT '',
		account_type VARCHAR(20) NOT NULL DEFAULT 'individual',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS provider_profiles (
		user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		display_name VARCHAR(255) NOT NULL DEFAULT '',
		account_type VARCHAR(20) NOT NULL DEFAULT 'individual',
		role VARCHAR(20) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		skills JSONB NOT NULL DEFAULT '[]',
		services JSONB NOT NULL DEFAULT '[]',
		certifications JSONB NOT NULL DEFAULT '[]',
		city VARCHAR(120) NOT NULL DEFAULT '',
		region VARCHAR(120) NOT NULL DEFAULT '',
		country VARCHAR(120) NOT NULL DEFAULT '',
		years_in_business INT NOT NULL DEFAULT 0,
		annual_revenue_range VARCHAR(40) NOT NULL DEFAULT '',
		experience_level VARCHAR(20) NOT NULL DEFAULT '',
		hourly_rate NUMERIC,
		daily_rate NUMERIC,
		availability_start TIMESTAMPTZ,
		availability_end TIMESTAMPTZ,
		payment_preference VARCHAR(10),
		barter_offers JSONB NOT NULL DEFAULT '[]',
		key_projects JSONB NOT NULL DEFAULT '[]',
		core_values JSONB NOT NULL DEFAULT '[]',
		strengths JSONB NOT NULL DEFAULT '[]',
		objectives JSONB NOT NULL DEFAULT '[]',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS opportunities (
		id BIGSERIAL PRIMARY KEY,
		creator_id BIGINT NOT NULL REFERENCES users(id),
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		model_type VARCHAR(10) NOT NULL,
		relationship_type VARCHAR(5) NOT NULL,
		intent_type VARCHAR(20),
		payment_mode VARCHAR(10),
		status VARCHAR(20) NOT NULL DEFAULT 'draft',
		attributes JSONB NOT NULL DEFAULT '{}',
		matches_generated INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_opportunities_status ON opportunities(status)`,
	`CREATE INDEX IF NOT EXISTS idx_opportunities_creator ON opportunities(creator_id)`,

	`CREATE TABLE IF NOT EXISTS collaboration_applications (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		opportunity_id BIGINT NOT NULL REFERENCES opportunities(id),
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_applications_user ON collaboration_applications(user_id)`,

	`CREATE TABLE IF NOT EXISTS matches (
		id BIGSERIAL PRIMARY KEY,
		reference UUID NOT NULL UNIQUE,
		project_id BIGINT NOT NULL,
		provider_id BIGINT NOT NULL REFERENCES users(id),
		opportunity_id BIGINT NOT NULL REFERENCES opportunities(id),
		model_type VARCHAR(10) NOT NULL,
		opportunity_type VARCHAR(30) NOT NULL DEFAULT 'collaboration',
		score INT NOT NULL,
		criteria JSONB NOT NULL DEFAULT '{}',
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		notified_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (opportunity_id, provider_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_matches_provider ON matches(provider_id)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		type VARCHAR(30) NOT NULL,
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		data JSONB NOT NULL DEFAULT '{}',
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id, is_read)`,
}

// RunMigrations applies the schema statements in order.
func RunMigrations(db *sqlx.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
