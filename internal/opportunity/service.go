// internal/opportunity/service.go
// Opportunity lifecycle: draft -> active -> closed. Activation hands the
// opportunity to the matching engine.

package opportunity

import (
	"context"
	"errors"
	"fmt"

	"github.com/collabhub/collabhub-backend/internal/common/utils"
	"github.com/collabhub/collabhub-backend/internal/matching"
)

var (
	ErrInvalidModelType     = errors.New("unknown collaboration model type")
	ErrModelNotApplicable   = errors.New("model does not apply to this relationship type")
	ErrNotEditable          = errors.New("only draft opportunities can be edited")
	ErrInvalidStatusChange  = errors.New("invalid status transition")
)

// MatchTrigger kicks off match generation for an opportunity. The matching
// service satisfies this.
type MatchTrigger interface {
	TriggerMatching(opportunityID int64)
}

// Service defines opportunity operations
type Service interface {
	CreateOpportunity(ctx context.Context, creatorID int64, req *CreateOpportunityRequest) (*matching.Opportunity, error)
	GetOpportunity(ctx context.Context, id int64) (*matching.Opportunity, error)
	UpdateOpportunity(ctx context.Context, id, userID int64, req *UpdateOpportunityRequest) (*matching.Opportunity, error)
	ActivateOpportunity(ctx context.Context, id, userID int64) error
	CloseOpportunity(ctx context.Context, id, userID int64) error
	ListMyOpportunities(ctx context.Context, creatorID int64, limit, offset int) (*OpportunitiesResponse, error)
	ListActiveOpportunities(ctx context.Context, limit, offset int) (*OpportunitiesResponse, error)
}

type service struct {
	repo    Repository
	trigger MatchTrigger
}

// NewService creates a new opportunity service
func NewService(repo Repository, trigger MatchTrigger) Service {
	return &service{repo: repo, trigger: trigger}
}

func (s *service) CreateOpportunity(ctx context.Context, creatorID int64, req *CreateOpportunityRequest) (*matching.Opportunity, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	model := matching.GetModel(req.ModelType)
	if model == nil {
		return nil, ErrInvalidModelType
	}

	relationship := matching.RelationshipType(req.RelationshipType)
	if !model.AppliesTo(relationship) {
		return nil, fmt.Errorf("%w: %s cannot be used for %s", ErrModelNotApplicable, model.Name, relationship)
	}

	if req.Attributes.BudgetMax > 0 && req.Attributes.BudgetMin > req.Attributes.BudgetMax {
		return nil, errors.New("budget minimum exceeds maximum")
	}

	opp := &matching.Opportunity{
		CreatorID:        creatorID,
		Title:            req.Title,
		ModelType:        req.ModelType,
		RelationshipType: relationship,
		Status:           matching.OpportunityStatusDraft,
		Attributes:       req.Attributes.toAttributes(),
	}
	if req.IntentType != nil {
		intent := matching.IntentType(*req.IntentType)
		opp.IntentType = &intent
	}
	if req.PaymentMode != nil {
		mode := matching.PaymentMode(*req.PaymentMode)
		opp.PaymentMode = &mode
	}

	if err := s.repo.Create(ctx, opp, req.Description); err != nil {
		return nil, err
	}

	return opp, nil
}

func (s *service) GetOpportunity(ctx context.Context, id int64) (*matching.Opportunity, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateOpportunity(ctx context.Context, id, userID int64, req *UpdateOpportunityRequest) (*matching.Opportunity, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	opp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if opp.CreatorID != userID {
		return nil, ErrNotCreator
	}
	if opp.Status != matching.OpportunityStatusDraft {
		return nil, ErrNotEditable
	}

	if req.Title != nil {
		opp.Title = *req.Title
	}
	if req.PaymentMode != nil {
		mode := matching.PaymentMode(*req.PaymentMode)
		opp.PaymentMode = &mode
	}
	if req.Attributes != nil {
		opp.Attributes = req.Attributes.toAttributes()
	}

	if err := s.repo.Update(ctx, opp, req.Description); err != nil {
		return nil, err
	}

	return opp, nil
}

// ActivateOpportunity publishes a draft and schedules match generation.
func (s *service) ActivateOpportunity(ctx context.Context, id, userID int64) error {
	opp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if opp.CreatorID != userID {
		return ErrNotCreator
	}
	if opp.Status != matching.OpportunityStatusDraft {
		return ErrInvalidStatusChange
	}

	if err := s.repo.SetStatus(ctx, id, matching.OpportunityStatusActive); err != nil {
		return err
	}

	if s.trigger != nil {
		s.trigger.TriggerMatching(id)
	}

	return nil
}

func (s *service) CloseOpportunity(ctx context.Context, id, userID int64) error {
	opp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if opp.CreatorID != userID {
		return ErrNotCreator
	}
	if opp.Status == matching.OpportunityStatusClosed {
		return ErrInvalidStatusChange
	}

	return s.repo.SetStatus(ctx, id, matching.OpportunityStatusClosed)
}

func (s *service) ListMyOpportunities(ctx context.Context, creatorID int64, limit, offset int) (*OpportunitiesResponse, error) {
	limit, offset = clampPage(limit, offset)

	opportunities, err := s.repo.ListByCreator(ctx, creatorID, limit, offset)
	if err != nil {
		return nil, err
	}

	return &OpportunitiesResponse{Opportunities: opportunities, Count: len(opportunities)}, nil
}

func (s *service) ListActiveOpportunities(ctx context.Context, limit, offset int) (*OpportunitiesResponse, error) {
	limit, offset = clampPage(limit, offset)

	opportunities, err := s.repo.ListByStatus(ctx, matching.OpportunityStatusActive, limit, offset)
	if err != nil {
		return nil, err
	}

	return &OpportunitiesResponse{Opportunities: opportunities, Count: len(opportunities)}, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
