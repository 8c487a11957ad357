package matching

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Repository interface {
	// Opportunities (read-only here; the opportunity package owns writes)
	GetOpportunity(ctx context.Context, id int64) (*Opportunity, error)
	GetActiveOpportunities(ctx context.Context) ([]*Opportunity, error)
	IncrementMatchesGenerated(ctx context.Context, opportunityID int64, n int) error

	// Provider profiles (read-only; the provider package owns writes)
	GetCandidate(ctx context.Context, userID int64) (*CandidateProfile, error)
	GetApprovedCandidates(ctx context.Context, accountTypes []string, excludeUserID int64, limit int) ([]*CandidateProfile, error)

	// Collaboration applications
	GetApplicationStats(ctx context.Context, userID int64) (*ApplicationStats, error)

	// Matches
	CreateMatch(ctx context.Context, match *Match) error
	MarkMatchNotified(ctx context.Context, matchID int64) error
	HasMatch(ctx context.Context, opportunityID, providerID int64) (bool, error)
	GetMatchesForOpportunity(ctx context.Context, opportunityID int64) ([]*Match, error)
	GetMatchesForProvider(ctx context.Context, providerID int64) ([]*Match, error)

	GetDB() *sqlx.DB
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetDB() *sqlx.DB {
	return r.db
}

func (r *postgresRepository) GetOpportunity(ctx context.Context, id int64) (*Opportunity, error) {
	var opp Opportunity
	query := `
		SELECT id, creator_id, title, model_type, relationship_type,
		       intent_type, payment_mode, status, attributes,
		       matches_generated, created_at, updated_at
		FROM opportunities
		WHERE id = $1
	`
	err := r.db.GetContext(ctx, &opp, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOpportunityNotFound
	}
	if err != nil {
		return nil, err
	}
	return &opp, nil
}

func (r *postgresRepository) GetActiveOpportunities(ctx context.Context) ([]*Opportunity, error) {
	var opps []*Opportunity
	query := `
		SELECT id, creator_id, title, model_type, relationship_type,
		       intent_type, payment_mode, status, attributes,
		       matches_generated, created_at, updated_at
		FROM opportunities
		WHERE status = 'active'
		ORDER BY created_at
	`
	err := r.db.SelectContext(ctx, &opps, query)
	return opps, err
}

func (r *postgresRepository) IncrementMatchesGenerated(ctx context.Context, opportunityID int64, n int) error {
	query := `
		UPDATE opportunities
		SET matches_generated = matches_generated + $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, opportunityID, n)
	return err
}

const candidateColumns = `
	user_id, display_name, account_type, role, status, skills, services,
	certifications, city, region, country, years_in_business,
	annual_revenue_range, experience_level, hourly_rate, daily_rate,
	availability_start, availability_end, payment_preference,
	barter_offers, key_projects, core_values, strengths, objectives
`

func (r *postgresRepository) GetCandidate(ctx context.Context, userID int64) (*CandidateProfile, error) {
	var profile CandidateProfile
	query := `SELECT ` + candidateColumns + ` FROM provider_profiles WHERE user_id = $1`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *postgresRepository) GetApprovedCandidates(ctx context.Context, accountTypes []string, excludeUserID int64, limit int) ([]*CandidateProfile, error) {
	var profiles []*CandidateProfile
	query := `
		SELECT ` + candidateColumns + `
		FROM provider_profiles
		WHERE status = 'approved'
		  AND account_type = ANY($1)
		  AND user_id <> $2
		ORDER BY user_id
		LIMIT $3
	`
	err := r.db.SelectContext(ctx, &profiles, query, pq.Array(accountTypes), excludeUserID, limit)
	return profiles, err
}

func (r *postgresRepository) GetApplicationStats(ctx context.Context, userID int64) (*ApplicationStats, error) {
	var stats ApplicationStats
	query := `
		SELECT COUNT(*) AS total,
		       COUNT(CASE WHEN status IN ('completed', 'approved') THEN 1 END) AS completed
		FROM collaboration_applications
		WHERE user_id = $1
	`
	err := r.db.GetContext(ctx, &stats, query, userID)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *postgresRepository) CreateMatch(ctx context.Context, match *Match) error {
	query := `
		INSERT INTO matches (
			reference, project_id, provider_id, opportunity_id,
			model_type, opportunity_type, score, criteria, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(
		ctx, query,
		match.Reference, match.ProjectID, match.ProviderID, match.OpportunityID,
		match.ModelType, match.OpportunityType, match.Score, match.Criteria, match.Status,
	).Scan(&match.ID, &match.CreatedAt)
}

func (r *postgresRepository) MarkMatchNotified(ctx context.Context, matchID int64) error {
	query := `
		UPDATE matches
		SET status = 'notified', notified_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, matchID)
	return err
}

func (r *postgresRepository) HasMatch(ctx context.Context, opportunityID, providerID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM matches
			WHERE opportunity_id = $1 AND provider_id = $2
		)
	`
	err := r.db.GetContext(ctx, &exists, query, opportunityID, providerID)
	return exists, err
}

func (r *postgresRepository) GetMatchesForOpportunity(ctx context.Context, opportunityID int64) ([]*Match, error) {
	var matches []*Match
	query := `
		SELECT * FROM matches
		WHERE opportunity_id = $1
		ORDER BY score DESC, created_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, opportunityID)
	return matches, err
}

func (r *postgresRepository) GetMatchesForProvider(ctx context.Context, providerID int64) ([]*Match, error) {
	var matches []*Match
	query := `
		SELECT * FROM matches
		WHERE provider_id = $1
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &matches, query, providerID)
	return matches, err
}
