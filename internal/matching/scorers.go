package matching

import (
	"context"
	"math"
)

// MatchThreshold is the engine-wide bar a final score must clear before a
// match is persisted. It is deliberately a single constant: no model
// overrides it.
const MatchThreshold = 80

// Sub-score names as they appear in MatchResult.Scores and the persisted
// match criteria.
const (
	ScoreSkillScope       = "skillScopeMatch"
	ScoreFinancial        = "financialCapacity"
	ScorePastPerformance  = "pastPerformance"
	ScoreStrategic        = "strategicAlignment"
	ScoreComplementary    = "complementaryStrengths"
	ScoreCultural         = "culturalCompatibility"
	ScoreTimeline         = "timelineAlignment"
	ScoreGeographic       = "geographicProximity"
	ScoreBarter           = "barterCompatibility"
	ScoreQualification    = "qualificationSkillMatch"
	ScoreAvailability     = "availability"
	ScoreBudget           = "budgetCompatibility"
	ScoreTechnical        = "technical"
	ScorePrice            = "price"
	ScoreInnovation       = "innovation"
)

// weightTables holds the five weight templates the 13 scorers share. Each
// table sums to 1.0.
var weightTables = map[ModelGroup]map[string]float64{
	GroupDelivery: {
		ScoreSkillScope:      0.50,
		ScoreFinancial:       0.30,
		ScorePastPerformance: 0.20,
	},
	GroupStrategic: {
		ScoreStrategic:     0.40,
		ScoreComplementary: 0.35,
		ScoreCultural:      0.25,
	},
	GroupPooling: {
		ScoreTimeline:   0.40,
		ScoreGeographic: 0.35,
		ScoreBarter:     0.25,
	},
	GroupHiring: {
		ScoreQualification: 0.50,
		ScoreAvailability:  0.25,
		ScoreBudget:        0.25,
	},
	GroupCompetition: {
		ScoreTechnical:  0.40,
		ScorePrice:      0.30,
		ScoreInnovation: 0.30,
	},
}

// combineScores applies a weight table to the computed sub-scores and
// settles the threshold check. The final score is always an integer in
// [0,100].
func combineScores(group ModelGroup, scores map[string]float64) *MatchResult {
	weights := weightTables[group]
	total := 0.0
	for name, weight := range weights {
		total += clampScore(scores[name]) * weight
	}
	final := int(math.Round(total))
	return &MatchResult{
		Scores:         scores,
		FinalScore:     final,
		MeetsThreshold: final >= MatchThreshold,
	}
}

// scoreByModel dispatches to the weight template for the opportunity's
// model. The caller has already resolved the model, so an unknown code here
// is a registry/dispatch mismatch.
func (e *engine) scoreByModel(ctx context.Context, opp *Opportunity, user *CandidateProfile) (*MatchResult, error) {
	model := GetModel(opp.ModelType)
	if model == nil {
		return nil, ErrUnknownModelType
	}
	switch model.Group {
	case GroupDelivery:
		return e.scoreDelivery(ctx, opp, user), nil
	case GroupStrategic:
		return scoreStrategic(opp, user), nil
	case GroupPooling:
		return scorePooling(opp, user), nil
	case GroupHiring:
		return scoreHiring(opp, user), nil
	case GroupCompetition:
		return scoreCompetition(opp, user), nil
	default:
		return nil, ErrUnknownModelType
	}
}

// deliverySkillScore is the one thing the four delivery models disagree on:
// what "skill scope" means. Task-based matches required skills, consortium
// matches roles, project JVs match contribution areas, SPVs match sector.
func deliverySkillScore(opp *Opportunity, user *CandidateProfile) float64 {
	offered := append([]string{}, user.Skills...)
	offered = append(offered, user.Services...)

	switch opp.ModelType {
	case ModelConsortium:
		return skillMatchScore(opp.Attributes.RequiredRoles, offered)
	case ModelProjectJV:
		return skillMatchScore(opp.Attributes.Contributions, offered)
	case ModelSPV:
		if opp.Attributes.Sector == "" {
			return scoreNeutral
		}
		return skillMatchScore([]string{opp.Attributes.Sector}, offered)
	default: // ModelTaskBased
		return skillMatchScore(opp.Attributes.RequiredSkills, offered)
	}
}

func (e *engine) scoreDelivery(ctx context.Context, opp *Opportunity, user *CandidateProfile) *MatchResult {
	var requiredAmount float64
	if opp.Attributes.BudgetRange != nil {
		requiredAmount = opp.Attributes.BudgetRange.Max
	}
	scores := map[string]float64{
		ScoreSkillScope:      deliverySkillScore(opp, user),
		ScoreFinancial:       financialCapacity(requiredAmount, user.AnnualRevenueRange),
		ScorePastPerformance: e.pastPerformanceScore(ctx, user.UserID),
	}
	return combineScores(GroupDelivery, scores)
}

func scoreStrategic(opp *Opportunity, user *CandidateProfile) *MatchResult {
	scores := map[string]float64{
		ScoreStrategic:     strategicAlignment(opp.Attributes.Objectives, user.Objectives),
		ScoreComplementary: complementaryStrengths(opp.Attributes.DesiredStrengths, user.Strengths),
		ScoreCultural:      culturalCompatibility(opp.Attributes.Values, user.Values),
	}
	return combineScores(GroupStrategic, scores)
}

func scorePooling(opp *Opportunity, user *CandidateProfile) *MatchResult {
	scores := map[string]float64{
		ScoreTimeline:   timelineAlignment(opp.Attributes.Timeline, user.AvailabilityStart, user.AvailabilityEnd),
		ScoreGeographic: geographicProximity(opp.Attributes.City, opp.Attributes.Region, user.City, user.Region),
		ScoreBarter:     barterCompatibility(opp.Attributes.BarterWanted, user.BarterOffers),
	}
	return combineScores(GroupPooling, scores)
}

func scoreHiring(opp *Opportunity, user *CandidateProfile) *MatchResult {
	scores := map[string]float64{
		ScoreQualification: qualificationSkillMatch(opp, user),
		ScoreAvailability:  timelineAlignment(opp.Attributes.Timeline, user.AvailabilityStart, user.AvailabilityEnd),
		ScoreBudget:        rateVersusBudget(opp.Attributes.BudgetRange, user.HourlyRate, user.DailyRate),
	}
	return combineScores(GroupHiring, scores)
}

func scoreCompetition(opp *Opportunity, user *CandidateProfile) *MatchResult {
	requirements := opp.Attributes.TechnicalRequirements
	if len(requirements) == 0 {
		requirements = opp.Attributes.RequiredSkills
	}
	have := append([]string{}, user.Skills...)
	have = append(have, user.Certifications...)
	signals := append([]string{}, user.KeyProjects...)
	signals = append(signals, user.Services...)

	scores := map[string]float64{
		ScoreTechnical:  technicalScore(requirements, have),
		ScorePrice:      rateVersusBudget(opp.Attributes.BudgetRange, user.HourlyRate, user.DailyRate),
		ScoreInnovation: innovationScore(signals),
	}
	return combineScores(GroupCompetition, scores)
}

// pastPerformanceScore derives a score from the provider's completed
// collaboration applications. No history is neutral-leaning (75); any
// history lands in [50,100] tracking the completion rate.
func (e *engine) pastPerformanceScore(ctx context.Context, userID int64) float64 {
	stats, err := e.repo.GetApplicationStats(ctx, userID)
	if err != nil || stats == nil || stats.Total == 0 {
		return scoreNeutralHigh
	}
	completionRate := float64(stats.Completed) / float64(stats.Total) * 100
	return clampScore(math.Round(50 + 0.5*completionRate))
}
