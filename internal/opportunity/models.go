// internal/opportunity/models.go

package opportunity

import (
	"time"

	"github.com/collabhub/collabhub-backend/internal/matching"
)

// AttributesRequest carries the model-specific matching attributes of an
// opportunity. Which fields matter depends on the collaboration model.
type AttributesRequest struct {
	RequiredSkills        []string            `json:"required_skills"`
	RequiredRoles         []string            `json:"required_roles"`
	Contributions         []string            `json:"contributions"`
	Sector                string              `json:"sector" validate:"max=120"`
	Qualifications        []string            `json:"qualifications"`
	TechnicalRequirements []string            `json:"technical_requirements"`
	ExperienceLevel       string              `json:"experience_level" validate:"omitempty,oneof=junior mid-level senior expert"`
	BudgetMin             float64             `json:"budget_min" validate:"min=0"`
	BudgetMax             float64             `json:"budget_max" validate:"min=0"`
	TimelineStart         *time.Time          `json:"timeline_start,omitempty"`
	TimelineEnd           *time.Time          `json:"timeline_end,omitempty"`
	Objectives            []string            `json:"objectives"`
	DesiredStrengths      []string            `json:"desired_strengths"`
	Values                []string            `json:"values"`
	BarterOffered         []string            `json:"barter_offered"`
	BarterWanted          []string            `json:"barter_wanted"`
	EquityStructure       string     `json:"equity_structure,omitempty"`
	City                  string     `json:"city" validate:"max=120"`
	Region                string     `json:"region" validate:"max=120"`
}

// CreateOpportunityRequest represents a request to create an opportunity
type CreateOpportunityRequest struct {
	Title            string            `json:"title" validate:"required,max=255"`
	Description      string            `json:"description"`
	ModelType        string            `json:"model_type" validate:"required"`
	RelationshipType string            `json:"relationship_type" validate:"required,oneof=B2B B2P P2B P2P"`
	IntentType       *string           `json:"intent_type,omitempty" validate:"omitempty,oneof=REQUEST_SERVICE OFFER_SERVICE BOTH"`
	PaymentMode      *string           `json:"payment_mode,omitempty" validate:"omitempty,oneof=Cash Barter Hybrid"`
	Attributes       AttributesRequest `json:"attributes"`
}

// UpdateOpportunityRequest represents a request to update an opportunity.
// Only draft opportunities can be edited.
type UpdateOpportunityRequest struct {
	Title       *string            `json:"title,omitempty" validate:"omitempty,max=255"`
	Description *string            `json:"description,omitempty"`
	PaymentMode *string            `json:"payment_mode,omitempty" validate:"omitempty,oneof=Cash Barter Hybrid"`
	Attributes  *AttributesRequest `json:"attributes,omitempty"`
}

// OpportunitiesResponse represents a paginated list of opportunities
type OpportunitiesResponse struct {
	Opportunities []*matching.Opportunity `json:"opportunities"`
	Count         int                     `json:"count"`
}

func (a *AttributesRequest) toAttributes() matching.OpportunityAttributes {
	attrs := matching.OpportunityAttributes{
		RequiredSkills:        a.RequiredSkills,
		RequiredRoles:         a.RequiredRoles,
		Contributions:         a.Contributions,
		Sector:                a.Sector,
		Qualifications:        a.Qualifications,
		TechnicalRequirements: a.TechnicalRequirements,
		ExperienceLevel:       a.ExperienceLevel,
		Objectives:            a.Objectives,
		DesiredStrengths:      a.DesiredStrengths,
		Values:                a.Values,
		BarterOffered:         a.BarterOffered,
		BarterWanted:          a.BarterWanted,
		EquityStructure:       a.EquityStructure,
		City:                  a.City,
		Region:                a.Region,
	}

	if a.BudgetMin > 0 || a.BudgetMax > 0 {
		attrs.BudgetRange = &matching.BudgetRange{Min: a.BudgetMin, Max: a.BudgetMax}
	}
	if a.TimelineStart != nil && a.TimelineEnd != nil {
		attrs.Timeline = &matching.DateRange{Start: *a.TimelineStart, End: *a.TimelineEnd}
	}

	return attrs
}
