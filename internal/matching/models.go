package matching

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// RelationshipType classifies an opportunity on the business/person axis.
type RelationshipType string

const (
	RelationshipB2B RelationshipType = "B2B"
	RelationshipB2P RelationshipType = "B2P"
	RelationshipP2B RelationshipType = "P2B"
	RelationshipP2P RelationshipType = "P2P"
)

// IntentType says whether the opportunity requests or offers a service.
// Legacy opportunities may carry no intent at all.
type IntentType string

const (
	IntentRequestService IntentType = "REQUEST_SERVICE"
	IntentOfferService   IntentType = "OFFER_SERVICE"
	IntentBoth           IntentType = "BOTH"
)

// PaymentMode is how the collaboration is settled.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "Cash"
	PaymentBarter PaymentMode = "Barter"
	PaymentHybrid PaymentMode = "Hybrid"
)

// Account types on the provider side.
const (
	AccountBusiness   = "business"
	AccountIndividual = "individual"
)

// Service roles on the provider side. An opportunity requesting a service
// needs a provider-side role; one offering a service needs a consumer-side
// role.
const (
	RoleProvider = "provider"
	RoleClient   = "client"
	RoleBoth     = "both"
)

// BudgetRange is the money an opportunity can commit.
type BudgetRange struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// DateRange is a closed interval of calendar time.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// OpportunityAttributes is the model-specific field bag. Which fields are
// meaningful depends entirely on the opportunity's model type; the engine
// reads what the dispatched scorer needs and ignores the rest. No
// cross-model validation happens here - that is the creator flow's job.
type OpportunityAttributes struct {
	RequiredSkills        []string     `json:"required_skills,omitempty"`
	RequiredRoles         []string     `json:"required_roles,omitempty"`
	Contributions         []string     `json:"contributions,omitempty"`
	Sector                string       `json:"sector,omitempty"`
	Qualifications        []string     `json:"qualifications,omitempty"`
	TechnicalRequirements []string     `json:"technical_requirements,omitempty"`
	ExperienceLevel       string       `json:"experience_level,omitempty"`
	BudgetRange           *BudgetRange `json:"budget_range,omitempty"`
	Timeline              *DateRange   `json:"timeline,omitempty"`
	Objectives            []string     `json:"objectives,omitempty"`
	DesiredStrengths      []string     `json:"desired_strengths,omitempty"`
	Values                []string     `json:"values,omitempty"`
	BarterOffered         []string     `json:"barter_offered,omitempty"`
	BarterWanted          []string     `json:"barter_wanted,omitempty"`
	EquityStructure       string       `json:"equity_structure,omitempty"`
	City                  string       `json:"city,omitempty"`
	Region                string       `json:"region,omitempty"`
}

// Value implements driver.Valuer so attributes persist as JSONB.
func (a OpportunityAttributes) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *OpportunityAttributes) Scan(value interface{}) error {
	if value == nil {
		*a = OpportunityAttributes{}
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into OpportunityAttributes", value)
	}
	return json.Unmarshal(b, a)
}

// Opportunity is the engine's read model of a posted collaboration request.
type Opportunity struct {
	ID               int64                 `json:"id" db:"id"`
	CreatorID        int64                 `json:"creator_id" db:"creator_id"`
	Title            string                `json:"title" db:"title"`
	ModelType        string                `json:"model_type" db:"model_type"`
	RelationshipType RelationshipType      `json:"relationship_type" db:"relationship_type"`
	IntentType       *IntentType           `json:"intent_type,omitempty" db:"intent_type"`
	PaymentMode      *PaymentMode          `json:"payment_mode,omitempty" db:"payment_mode"`
	Status           string                `json:"status" db:"status"`
	Attributes       OpportunityAttributes `json:"attributes" db:"attributes"`
	MatchesGenerated int                   `json:"matches_generated" db:"matches_generated"`
	CreatedAt        time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at" db:"updated_at"`
}

// StringList stores a []string as JSONB.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
	return json.Unmarshal(b, l)
}

// CandidateProfile is the engine's read model of a provider. It is owned by
// the provider store; the engine only reads it.
type CandidateProfile struct {
	UserID             int64       `json:"user_id" db:"user_id"`
	DisplayName        string      `json:"display_name" db:"display_name"`
	AccountType        string      `json:"account_type" db:"account_type"`
	Role               string      `json:"role" db:"role"`
	Status             string      `json:"status" db:"status"`
	Skills             StringList  `json:"skills" db:"skills"`
	Services           StringList  `json:"services" db:"services"`
	Certifications     StringList  `json:"certifications" db:"certifications"`
	City               string      `json:"city" db:"city"`
	Region             string      `json:"region" db:"region"`
	Country            string      `json:"country" db:"country"`
	YearsInBusiness    int         `json:"years_in_business" db:"years_in_business"`
	AnnualRevenueRange string      `json:"annual_revenue_range" db:"annual_revenue_range"`
	ExperienceLevel    string      `json:"experience_level" db:"experience_level"`
	HourlyRate         *float64    `json:"hourly_rate,omitempty" db:"hourly_rate"`
	DailyRate          *float64    `json:"daily_rate,omitempty" db:"daily_rate"`
	AvailabilityStart  *time.Time  `json:"availability_start,omitempty" db:"availability_start"`
	AvailabilityEnd    *time.Time  `json:"availability_end,omitempty" db:"availability_end"`
	PaymentPreference  *PaymentMode `json:"payment_preference,omitempty" db:"payment_preference"`
	BarterOffers       StringList  `json:"barter_offers" db:"barter_offers"`
	KeyProjects        StringList  `json:"key_projects" db:"key_projects"`
	Values             StringList  `json:"values" db:"core_values"`
	Strengths          StringList  `json:"strengths" db:"strengths"`
	Objectives         StringList  `json:"objectives" db:"objectives"`
}

// ApplicationStats summarizes a provider's collaboration-application
// history, used for past-performance scoring.
type ApplicationStats struct {
	Total     int `db:"total"`
	Completed int `db:"completed"`
}

// MatchResult is the output of a single scorer run. It is computed fresh on
// every call and never cached.
type MatchResult struct {
	Scores         map[string]float64 `json:"scores"`
	FinalScore     int                `json:"final_score"`
	MeetsThreshold bool               `json:"meets_threshold"`
}

// Match is persisted once a score clears the threshold.
type Match struct {
	ID              int64           `json:"id" db:"id"`
	Reference       string          `json:"reference" db:"reference"`
	ProjectID       int64           `json:"project_id" db:"project_id"`
	ProviderID      int64           `json:"provider_id" db:"provider_id"`
	OpportunityID   int64           `json:"opportunity_id" db:"opportunity_id"`
	ModelType       string          `json:"model_type" db:"model_type"`
	OpportunityType string          `json:"opportunity_type" db:"opportunity_type"`
	Score           int             `json:"score" db:"score"`
	Criteria        json.RawMessage `json:"criteria" db:"criteria"`
	Status          string          `json:"status" db:"status"`
	NotifiedAt      *time.Time      `json:"notified_at,omitempty" db:"notified_at"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// Match statuses.
const (
	MatchStatusPending  = "pending"
	MatchStatusNotified = "notified"
)

// OpportunityTypeCollaboration tags matches produced by this engine.
const OpportunityTypeCollaboration = "collaboration"
