// internal/provider/service.go

package provider

import (
	"context"

	"github.com/collabhub/collabhub-backend/internal/common/utils"
)

// Service defines provider profile operations
type Service interface {
	UpsertProfile(ctx context.Context, userID int64, req *UpsertProfileRequest) (*Profile, error)
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	ReviewProfile(ctx context.Context, userID int64, req *ReviewProfileRequest) error
	ListPendingProfiles(ctx context.Context, limit, offset int) ([]*Profile, error)
}

type service struct {
	repo Repository
}

// NewService creates a new provider service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) UpsertProfile(ctx context.Context, userID int64, req *UpsertProfileRequest) (*Profile, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	profile := &Profile{
		UserID:             userID,
		DisplayName:        req.DisplayName,
		AccountType:        req.AccountType,
		Role:               req.Role,
		Skills:             StringList(req.Skills),
		Services:           StringList(req.Services),
		Certifications:     StringList(req.Certifications),
		City:               req.City,
		Region:             req.Region,
		Country:            req.Country,
		YearsInBusiness:    req.YearsInBusiness,
		AnnualRevenueRange: req.AnnualRevenueRange,
		ExperienceLevel:    req.ExperienceLevel,
		HourlyRate:         req.HourlyRate,
		DailyRate:          req.DailyRate,
		AvailabilityStart:  req.AvailabilityStart,
		AvailabilityEnd:    req.AvailabilityEnd,
		PaymentPreference:  req.PaymentPreference,
		BarterOffers:       StringList(req.BarterOffers),
		KeyProjects:        StringList(req.KeyProjects),
		Values:             StringList(req.Values),
		Strengths:          StringList(req.Strengths),
		Objectives:         StringList(req.Objectives),
	}

	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) ReviewProfile(ctx context.Context, userID int64, req *ReviewProfileRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}
	return s.repo.SetStatus(ctx, userID, req.Status)
}

func (s *service) ListPendingProfiles(ctx context.Context, limit, offset int) ([]*Profile, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByStatus(ctx, StatusPending, limit, offset)
}
