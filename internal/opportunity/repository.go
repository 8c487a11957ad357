// internal/opportunity/repository.go

package opportunity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/collabhub/collabhub-backend/internal/matching"
)

var (
	ErrOpportunityNotFound = errors.New("opportunity not found")
	ErrNotCreator          = errors.New("user is not the opportunity creator")
)

// Repository defines opportunity storage operations
type Repository interface {
	Create(ctx context.Context, opp *matching.Opportunity, description string) error
	GetByID(ctx context.Context, id int64) (*matching.Opportunity, error)
	Update(ctx context.Context, opp *matching.Opportunity, description *string) error
	SetStatus(ctx context.Context, id int64, status string) error
	ListByCreator(ctx context.Context, creatorID int64, limit, offset int) ([]*matching.Opportunity, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*matching.Opportunity, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates an opportunity repository backed by PostgreSQL
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const opportunityColumns = `
	id, creator_id, title, model_type, relationship_type,
	intent_type, payment_mode, status, attributes,
	matches_generated, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, opp *matching.Opportunity, description string) error {
	query := `
		INSERT INTO opportunities (
			creator_id, title, description, model_type, relationship_type,
			intent_type, payment_mode, status, attributes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		opp.CreatorID, opp.Title, description, opp.ModelType, opp.RelationshipType,
		opp.IntentType, opp.PaymentMode, opp.Status, opp.Attributes,
	).Scan(&opp.ID, &opp.CreatedAt, &opp.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create opportunity: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*matching.Opportunity, error) {
	var opp matching.Opportunity
	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE id = $1`

	if err := r.db.GetContext(ctx, &opp, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOpportunityNotFound
		}
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}

	return &opp, nil
}

func (r *postgresRepository) Update(ctx context.Context, opp *matching.Opportunity, description *string) error {
	query := `
		UPDATE opportunities SET
			title = $1,
			payment_mode = $2,
			attributes = $3,
			description = COALESCE($4, description),
			updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		opp.Title, opp.PaymentMode, opp.Attributes, description, opp.ID,
	).Scan(&opp.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOpportunityNotFound
		}
		return fmt.Errorf("failed to update opportunity: %w", err)
	}

	return nil
}

func (r *postgresRepository) SetStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE opportunities SET status = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update opportunity status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOpportunityNotFound
	}

	return nil
}

func (r *postgresRepository) ListByCreator(ctx context.Context, creatorID int64, limit, offset int) ([]*matching.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE creator_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	opportunities := []*matching.Opportunity{}
	if err := r.db.SelectContext(ctx, &opportunities, query, creatorID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}

	return opportunities, nil
}

func (r *postgresRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*matching.Opportunity, error) {
	query := `SELECT ` + opportunityColumns + `
		FROM opportunities
		WHERE status = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	opportunities := []*matching.Opportunity{}
	if err := r.db.SelectContext(ctx, &opportunities, query, status, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list opportunities: %w", err)
	}

	return opportunities, nil
}
