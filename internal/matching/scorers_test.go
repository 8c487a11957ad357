package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightTablesSumToOne(t *testing.T) {
	for group, weights := range weightTables {
		total := 0.0
		for _, w := range weights {
			total += w
		}
		assert.InDelta(t, 1.0, total, 0.001, "weight table for group %s", group)
	}
}

func TestEveryModelHasAWeightTable(t *testing.T) {
	for _, model := range AllModels() {
		_, ok := weightTables[model.Group]
		assert.True(t, ok, "model %s (%s) has no weight table", model.Code, model.Name)
	}
}

func TestCombineScoresBoundsAndThreshold(t *testing.T) {
	tests := []struct {
		name   string
		scores map[string]float64
		final  int
		meets  bool
	}{
		{
			name:   "all maxed",
			scores: map[string]float64{ScoreSkillScope: 100, ScoreFinancial: 100, ScorePastPerformance: 100},
			final:  100,
			meets:  true,
		},
		{
			name:   "all zero",
			scores: map[string]float64{ScoreSkillScope: 0, ScoreFinancial: 0, ScorePastPerformance: 0},
			final:  0,
			meets:  false,
		},
		{
			name:   "exactly at threshold",
			scores: map[string]float64{ScoreSkillScope: 80, ScoreFinancial: 80, ScorePastPerformance: 80},
			final:  80,
			meets:  true,
		},
		{
			name:   "just under threshold",
			scores: map[string]float64{ScoreSkillScope: 79, ScoreFinancial: 79, ScorePastPerformance: 79},
			final:  79,
			meets:  false,
		},
		{
			name:   "out-of-range inputs are clamped",
			scores: map[string]float64{ScoreSkillScope: 250, ScoreFinancial: -40, ScorePastPerformance: 100},
			final:  70,
			meets:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := combineScores(GroupDelivery, tt.scores)
			assert.Equal(t, tt.final, result.FinalScore)
			assert.Equal(t, tt.meets, result.MeetsThreshold)
			assert.GreaterOrEqual(t, result.FinalScore, 0)
			assert.LessOrEqual(t, result.FinalScore, 100)
		})
	}
}

func TestThresholdIsUniformAcrossGroups(t *testing.T) {
	// The same sub-score level must settle the threshold identically no
	// matter which weight template combines it.
	for group, weights := range weightTables {
		at := make(map[string]float64, len(weights))
		under := make(map[string]float64, len(weights))
		for name := range weights {
			at[name] = 80
			under[name] = 79
		}
		assert.True(t, combineScores(group, at).MeetsThreshold, "group %s at 80", group)
		assert.False(t, combineScores(group, under).MeetsThreshold, "group %s at 79", group)
	}
}

func TestTaskBasedWeldingScenario(t *testing.T) {
	repo := newFakeRepo()
	repo.opportunities[1] = &Opportunity{
		ID:               1,
		CreatorID:        9,
		ModelType:        ModelTaskBased,
		RelationshipType: RelationshipB2B,
		Status:           OpportunityStatusActive,
		Attributes: OpportunityAttributes{
			RequiredSkills: []string{"welding"},
			BudgetRange:    &BudgetRange{Max: 1000},
		},
	}
	repo.candidates[2] = &CandidateProfile{
		UserID:             2,
		AccountType:        AccountBusiness,
		Status:             "approved",
		Skills:             StringList{"Welding", "electrical"},
		AnnualRevenueRange: "50M",
	}

	e := NewEngine(repo, nil)
	result, err := e.CalculateCompatibility(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.Scores[ScoreSkillScope])
	assert.Equal(t, 100.0, result.Scores[ScoreFinancial])
	assert.Equal(t, 75.0, result.Scores[ScorePastPerformance])
	assert.Equal(t, 95, result.FinalScore)
	assert.True(t, result.MeetsThreshold)
}

func TestTaskBasedLowRevenueScenario(t *testing.T) {
	repo := newFakeRepo()
	repo.opportunities[1] = &Opportunity{
		ID:               1,
		ModelType:        ModelTaskBased,
		RelationshipType: RelationshipB2B,
		Status:           OpportunityStatusActive,
		Attributes: OpportunityAttributes{
			RequiredSkills: []string{"welding"},
			BudgetRange:    &BudgetRange{Max: 1000},
		},
	}
	repo.candidates[2] = &CandidateProfile{
		UserID:             2,
		Skills:             StringList{"Welding", "electrical"},
		AnnualRevenueRange: "5K",
	}

	e := NewEngine(repo, nil)
	result, err := e.CalculateCompatibility(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 20.0, result.Scores[ScoreFinancial])
	assert.Equal(t, 71, result.FinalScore)
	assert.False(t, result.MeetsThreshold)
}

func TestCompetitionOverBudgetScenario(t *testing.T) {
	hourly := 150.0
	repo := newFakeRepo()
	repo.opportunities[1] = &Opportunity{
		ID:               1,
		ModelType:        ModelCompetition,
		RelationshipType: RelationshipB2B,
		Status:           OpportunityStatusActive,
		Attributes: OpportunityAttributes{
			BudgetRange: &BudgetRange{Max: 100},
		},
	}
	repo.candidates[2] = &CandidateProfile{
		UserID:     2,
		HourlyRate: &hourly,
	}

	e := NewEngine(repo, nil)
	result, err := e.CalculateCompatibility(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 25.0, result.Scores[ScorePrice])
	assert.Equal(t, 50.0, result.Scores[ScoreTechnical])
	assert.Equal(t, 50.0, result.Scores[ScoreInnovation])
	assert.Equal(t, 43, result.FinalScore)
	assert.False(t, result.MeetsThreshold)
}

func TestDeliverySkillScopeVariants(t *testing.T) {
	user := &CandidateProfile{
		Skills:   StringList{"civil engineering"},
		Services: StringList{"project management"},
	}

	t.Run("consortium matches roles", func(t *testing.T) {
		opp := &Opportunity{
			ModelType:  ModelConsortium,
			Attributes: OpportunityAttributes{RequiredRoles: []string{"project management"}},
		}
		assert.Equal(t, 100.0, deliverySkillScore(opp, user))
	})

	t.Run("project JV matches contributions", func(t *testing.T) {
		opp := &Opportunity{
			ModelType:  ModelProjectJV,
			Attributes: OpportunityAttributes{Contributions: []string{"civil engineering", "funding"}},
		}
		assert.Equal(t, 50.0, deliverySkillScore(opp, user))
	})

	t.Run("SPV matches sector, empty sector is neutral", func(t *testing.T) {
		opp := &Opportunity{ModelType: ModelSPV}
		assert.Equal(t, 50.0, deliverySkillScore(opp, user))

		opp.Attributes.Sector = "civil engineering"
		assert.Equal(t, 100.0, deliverySkillScore(opp, user))
	})

	t.Run("task-based matches required skills", func(t *testing.T) {
		opp := &Opportunity{
			ModelType:  ModelTaskBased,
			Attributes: OpportunityAttributes{RequiredSkills: []string{"civil engineering"}},
		}
		assert.Equal(t, 100.0, deliverySkillScore(opp, user))
	})
}

func TestPastPerformanceScore(t *testing.T) {
	repo := newFakeRepo()
	e := &engine{repo: repo}
	ctx := context.Background()

	t.Run("no history is neutral-leaning", func(t *testing.T) {
		assert.Equal(t, 75.0, e.pastPerformanceScore(ctx, 1))
	})

	t.Run("perfect completion", func(t *testing.T) {
		repo.stats[2] = &ApplicationStats{Total: 4, Completed: 4}
		assert.Equal(t, 100.0, e.pastPerformanceScore(ctx, 2))
	})

	t.Run("half completion", func(t *testing.T) {
		repo.stats[3] = &ApplicationStats{Total: 4, Completed: 2}
		assert.Equal(t, 75.0, e.pastPerformanceScore(ctx, 3))
	})

	t.Run("zero completion still floors at 50", func(t *testing.T) {
		repo.stats[4] = &ApplicationStats{Total: 3, Completed: 0}
		assert.Equal(t, 50.0, e.pastPerformanceScore(ctx, 4))
	})
}
