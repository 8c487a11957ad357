package matching

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

var (
	ErrOpportunityNotFound   = errors.New("opportunity not found")
	ErrProviderNotFound      = errors.New("provider profile not found")
	ErrIncompatibleIntent    = errors.New("provider role incompatible with opportunity intent")
	ErrIncompatiblePayment   = errors.New("payment modes are incompatible")
	ErrUnknownModelType      = errors.New("unknown collaboration model type")
	ErrModelNotApplicable    = errors.New("model does not apply to this relationship type")
	ErrBelowThreshold        = errors.New("score below match threshold")
	ErrAlreadyMatched        = errors.New("provider already matched to this opportunity")
	ErrOpportunityNotActive  = errors.New("opportunity is not active")
)

// Barter adjustment applied after scoring when the opportunity settles in
// Barter or Hybrid: a poor trade fit costs 20 points, a strong one earns 5.
const (
	barterIncompatibleBelow = 30.0
	barterPenalty           = 20
	barterCompatibleAt      = 70.0
	barterBoost             = 5
)

// Notifier delivers match notifications. The engine treats delivery as
// best-effort: a failed notification never rolls back a match.
type Notifier interface {
	NotifyMatch(ctx context.Context, providerID int64, match *Match) error
}

// Engine scores a single opportunity/provider pair and persists the match
// when it clears the threshold.
type Engine interface {
	MatchOpportunity(ctx context.Context, opportunityID, userID int64) (*Match, error)
	CalculateCompatibility(ctx context.Context, opportunityID, userID int64) (*MatchResult, error)
}

type engine struct {
	repo     Repository
	notifier Notifier
}

// NewEngine wires the matching engine.
func NewEngine(repo Repository, notifier Notifier) Engine {
	return &engine{repo: repo, notifier: notifier}
}

// MatchOpportunity runs the full orchestration for one candidate: fetch,
// gate, score, adjust, persist, notify. Every failure path returns a
// distinct sentinel error so callers can tell a missing record from a
// failed gate from a sub-threshold score.
func (e *engine) MatchOpportunity(ctx context.Context, opportunityID, userID int64) (*Match, error) {
	opp, err := e.repo.GetOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}

	user, err := e.repo.GetCandidate(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !intentCompatible(opp.IntentType, user.Role) {
		RecordGateFailure("intent")
		return nil, ErrIncompatibleIntent
	}

	if !paymentCompatible(opp.PaymentMode, user.PaymentPreference) {
		RecordGateFailure("payment")
		return nil, ErrIncompatiblePayment
	}

	model := GetModel(opp.ModelType)
	if model == nil {
		RecordGateFailure("model")
		return nil, ErrUnknownModelType
	}
	if !model.AppliesTo(opp.RelationshipType) {
		RecordGateFailure("relationship")
		return nil, ErrModelNotApplicable
	}

	result, err := e.scoreByModel(ctx, opp, user)
	if err != nil {
		return nil, err
	}

	e.applyBarterAdjustment(opp, user, result)
	RecordMatchScore(float64(result.FinalScore))

	if !result.MeetsThreshold {
		return nil, ErrBelowThreshold
	}

	exists, err := e.repo.HasMatch(ctx, opp.ID, user.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyMatched
	}

	criteria, err := json.Marshal(result.Scores)
	if err != nil {
		return nil, err
	}

	match := &Match{
		Reference:       uuid.NewString(),
		ProjectID:       opp.ID,
		ProviderID:      user.UserID,
		OpportunityID:   opp.ID,
		ModelType:       opp.ModelType,
		OpportunityType: OpportunityTypeCollaboration,
		Score:           result.FinalScore,
		Criteria:        criteria,
		Status:          MatchStatusPending,
	}

	if err := e.repo.CreateMatch(ctx, match); err != nil {
		return nil, err
	}
	RecordMatchCreated(opp.ModelType)

	if e.notifier != nil {
		if err := e.notifier.NotifyMatch(ctx, user.UserID, match); err != nil {
			log.Printf("matching: failed to notify provider %d for match %s: %v", user.UserID, match.Reference, err)
		}
	}

	if err := e.repo.MarkMatchNotified(ctx, match.ID); err != nil {
		log.Printf("matching: failed to mark match %d notified: %v", match.ID, err)
	} else {
		now := time.Now()
		match.Status = MatchStatusNotified
		match.NotifiedAt = &now
	}

	return match, nil
}

// CalculateCompatibility scores a pair without gates or persistence. Used
// by the preview endpoint; results are computed fresh every call.
func (e *engine) CalculateCompatibility(ctx context.Context, opportunityID, userID int64) (*MatchResult, error) {
	opp, err := e.repo.GetOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	user, err := e.repo.GetCandidate(ctx, userID)
	if err != nil {
		return nil, err
	}
	result, err := e.scoreByModel(ctx, opp, user)
	if err != nil {
		return nil, err
	}
	e.applyBarterAdjustment(opp, user, result)
	return result, nil
}

// applyBarterAdjustment nudges the final score for barter-settled
// opportunities based on how well the trade lines up, then re-settles the
// threshold flag.
func (e *engine) applyBarterAdjustment(opp *Opportunity, user *CandidateProfile, result *MatchResult) {
	if opp.PaymentMode == nil {
		return
	}
	if *opp.PaymentMode != PaymentBarter && *opp.PaymentMode != PaymentHybrid {
		return
	}

	wanted := opp.Attributes.BarterWanted
	if len(wanted) == 0 {
		wanted = opp.Attributes.BarterOffered
	}
	barterScore := barterCompatibility(wanted, user.BarterOffers)
	result.Scores[ScoreBarter] = barterScore

	switch {
	case barterScore < barterIncompatibleBelow:
		result.FinalScore -= barterPenalty
		if result.FinalScore < 0 {
			result.FinalScore = 0
		}
	case barterScore >= barterCompatibleAt:
		result.FinalScore += barterBoost
		if result.FinalScore > 100 {
			result.FinalScore = 100
		}
	}
	result.MeetsThreshold = result.FinalScore >= MatchThreshold
}

// intentCompatible checks the opportunity's intent against the provider's
// service role. Absent intent or role passes: legacy records predate both
// fields.
func intentCompatible(intent *IntentType, role string) bool {
	if intent == nil || *intent == IntentBoth {
		return true
	}
	if role == "" {
		return true
	}
	switch *intent {
	case IntentRequestService:
		return role == RoleProvider || role == RoleBoth
	case IntentOfferService:
		return role == RoleClient || role == RoleBoth
	default:
		return true
	}
}

// paymentCompatible treats Hybrid and unspecified as universally
// compatible; Cash and Barter exclude each other.
func paymentCompatible(oppMode, userMode *PaymentMode) bool {
	if oppMode == nil || userMode == nil {
		return true
	}
	if *oppMode == PaymentHybrid || *userMode == PaymentHybrid {
		return true
	}
	return *oppMode == *userMode
}
