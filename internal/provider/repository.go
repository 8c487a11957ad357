// internal/provider/repository.go

package provider

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrProfileNotFound = errors.New("provider profile not found")

// Repository defines provider profile storage operations
type Repository interface {
	Upsert(ctx context.Context, profile *Profile) error
	GetByUserID(ctx context.Context, userID int64) (*Profile, error)
	SetStatus(ctx context.Context, userID int64, status ProfileStatus) error
	ListByStatus(ctx context.Context, status ProfileStatus, limit, offset int) ([]*Profile, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a provider repository backed by PostgreSQL
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const profileColumns = `
	user_id, display_name, account_type, role, status,
	skills, services, certifications,
	city, region, country,
	years_in_business, annual_revenue_range, experience_level,
	hourly_rate, daily_rate, availability_start, availability_end,
	payment_preference, barter_offers, key_projects,
	core_values, strengths, objectives,
	created_at, updated_at`

// Upsert creates or replaces a profile. A rewritten profile goes back to
// pending review.
func (r *postgresRepository) Upsert(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO provider_profiles (
			user_id, display_name, account_type, role,
			skills, services, certifications,
			city, region, country,
			years_in_business, annual_revenue_range, experience_level,
			hourly_rate, daily_rate, availability_start, availability_end,
			payment_preference, barter_offers, key_projects,
			core_values, strengths, objectives
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23
		)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			account_type = EXCLUDED.account_type,
			role = EXCLUDED.role,
			status = 'pending',
			skills = EXCLUDED.skills,
			services = EXCLUDED.services,
			certifications = EXCLUDED.certifications,
			city = EXCLUDED.city,
			region = EXCLUDED.region,
			country = EXCLUDED.country,
			years_in_business = EXCLUDED.years_in_business,
			annual_revenue_range = EXCLUDED.annual_revenue_range,
			experience_level = EXCLUDED.experience_level,
			hourly_rate = EXCLUDED.hourly_rate,
			daily_rate = EXCLUDED.daily_rate,
			availability_start = EXCLUDED.availability_start,
			availability_end = EXCLUDED.availability_end,
			payment_preference = EXCLUDED.payment_preference,
			barter_offers = EXCLUDED.barter_offers,
			key_projects = EXCLUDED.key_projects,
			core_values = EXCLUDED.core_values,
			strengths = EXCLUDED.strengths,
			objectives = EXCLUDED.objectives,
			updated_at = NOW()
		RETURNING status, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		profile.UserID, profile.DisplayName, profile.AccountType, profile.Role,
		profile.Skills, profile.Services, profile.Certifications,
		profile.City, profile.Region, profile.Country,
		profile.YearsInBusiness, profile.AnnualRevenueRange, profile.ExperienceLevel,
		profile.HourlyRate, profile.DailyRate, profile.AvailabilityStart, profile.AvailabilityEnd,
		profile.PaymentPreference, profile.BarterOffers, profile.KeyProjects,
		profile.Values, profile.Strengths, profile.Objectives,
	).Scan(&profile.Status, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var profile Profile
	query := `SELECT ` + profileColumns + ` FROM provider_profiles WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (r *postgresRepository) SetStatus(ctx context.Context, userID int64, status ProfileStatus) error {
	query := `UPDATE provider_profiles SET status = $1, updated_at = NOW() WHERE user_id = $2`

	result, err := r.db.ExecContext(ctx, query, status, userID)
	if err != nil {
		return fmt.Errorf("failed to update profile status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *postgresRepository) ListByStatus(ctx context.Context, status ProfileStatus, limit, offset int) ([]*Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM provider_profiles
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	profiles := []*Profile{}
	if err := r.db.SelectContext(ctx, &profiles, query, status, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}
