// internal/provider/models.go

package provider

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ProfileStatus represents the review state of a provider profile
type ProfileStatus string

const (
	StatusPending  ProfileStatus = "pending"
	StatusApproved ProfileStatus = "approved"
	StatusRejected ProfileStatus = "rejected"
)

// StringList is a JSONB-backed list of strings
type StringList []string

// Scan implements sql.Scanner interface
func (sl *StringList) Scan(value interface{}) error {
	if value == nil {
		*sl = StringList{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("unsupported type for StringList")
	}

	return json.Unmarshal(bytes, sl)
}

// Value implements driver.Valuer interface
func (sl StringList) Value() (driver.Value, error) {
	if sl == nil {
		return "[]", nil
	}
	return json.Marshal(sl)
}

// Profile represents a provider profile
type Profile struct {
	UserID             int64         `json:"user_id" db:"user_id"`
	DisplayName        string        `json:"display_name" db:"display_name"`
	AccountType        string        `json:"account_type" db:"account_type"`
	Role               string        `json:"role" db:"role"`
	Status             ProfileStatus `json:"status" db:"status"`
	Skills             StringList    `json:"skills" db:"skills"`
	Services           StringList    `json:"services" db:"services"`
	Certifications     StringList    `json:"certifications" db:"certifications"`
	City               string        `json:"city" db:"city"`
	Region             string        `json:"region" db:"region"`
	Country            string        `json:"country" db:"country"`
	YearsInBusiness    int           `json:"years_in_business" db:"years_in_business"`
	AnnualRevenueRange string        `json:"annual_revenue_range" db:"annual_revenue_range"`
	ExperienceLevel    string        `json:"experience_level" db:"experience_level"`
	HourlyRate         *float64      `json:"hourly_rate,omitempty" db:"hourly_rate"`
	DailyRate          *float64      `json:"daily_rate,omitempty" db:"daily_rate"`
	AvailabilityStart  *time.Time    `json:"availability_start,omitempty" db:"availability_start"`
	AvailabilityEnd    *time.Time    `json:"availability_end,omitempty" db:"availability_end"`
	PaymentPreference  *string       `json:"payment_preference,omitempty" db:"payment_preference"`
	BarterOffers       StringList    `json:"barter_offers" db:"barter_offers"`
	KeyProjects        StringList    `json:"key_projects" db:"key_projects"`
	Values             StringList    `json:"values" db:"core_values"`
	Strengths          StringList    `json:"strengths" db:"strengths"`
	Objectives         StringList    `json:"objectives" db:"objectives"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
}

// UpsertProfileRequest represents a request to create or update a profile
type UpsertProfileRequest struct {
	DisplayName        string     `json:"display_name" validate:"required,max=255"`
	AccountType        string     `json:"account_type" validate:"required,oneof=business individual"`
	Role               string     `json:"role" validate:"omitempty,oneof=provider client both"`
	Skills             []string   `json:"skills"`
	Services           []string   `json:"services"`
	Certifications     []string   `json:"certifications"`
	City               string     `json:"city" validate:"max=120"`
	Region             string     `json:"region" validate:"max=120"`
	Country            string     `json:"country" validate:"max=120"`
	YearsInBusiness    int        `json:"years_in_business" validate:"min=0"`
	AnnualRevenueRange string     `json:"annual_revenue_range" validate:"max=40"`
	ExperienceLevel    string     `json:"experience_level" validate:"omitempty,oneof=junior mid-level senior expert"`
	HourlyRate         *float64   `json:"hourly_rate,omitempty"`
	DailyRate          *float64   `json:"daily_rate,omitempty"`
	AvailabilityStart  *time.Time `json:"availability_start,omitempty"`
	AvailabilityEnd    *time.Time `json:"availability_end,omitempty"`
	PaymentPreference  *string    `json:"payment_preference,omitempty" validate:"omitempty,oneof=Cash Barter Hybrid"`
	BarterOffers       []string   `json:"barter_offers"`
	KeyProjects        []string   `json:"key_projects"`
	Values             []string   `json:"values"`
	Strengths          []string   `json:"strengths"`
	Objectives         []string   `json:"objectives"`
}

// ReviewProfileRequest represents an approval decision
type ReviewProfileRequest struct {
	Status ProfileStatus `json:"status" validate:"required,oneof=approved rejected"`
}
