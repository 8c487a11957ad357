package matching

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repository for engine and finder tests.
type fakeRepo struct {
	opportunities map[int64]*Opportunity
	candidates    map[int64]*CandidateProfile
	stats         map[int64]*ApplicationStats
	matches       []*Match
	increments    map[int64]int
	nextMatchID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		opportunities: make(map[int64]*Opportunity),
		candidates:    make(map[int64]*CandidateProfile),
		stats:         make(map[int64]*ApplicationStats),
		increments:    make(map[int64]int),
	}
}

func (f *fakeRepo) GetOpportunity(ctx context.Context, id int64) (*Opportunity, error) {
	opp, ok := f.opportunities[id]
	if !ok {
		return nil, ErrOpportunityNotFound
	}
	return opp, nil
}

func (f *fakeRepo) GetActiveOpportunities(ctx context.Context) ([]*Opportunity, error) {
	var active []*Opportunity
	for _, opp := range f.opportunities {
		if opp.Status == OpportunityStatusActive {
			active = append(active, opp)
		}
	}
	return active, nil
}

func (f *fakeRepo) IncrementMatchesGenerated(ctx context.Context, opportunityID int64, n int) error {
	f.increments[opportunityID] += n
	return nil
}

func (f *fakeRepo) GetCandidate(ctx context.Context, userID int64) (*CandidateProfile, error) {
	user, ok := f.candidates[userID]
	if !ok {
		return nil, ErrProviderNotFound
	}
	return user, nil
}

func (f *fakeRepo) GetApprovedCandidates(ctx context.Context, accountTypes []string, excludeUserID int64, limit int) ([]*CandidateProfile, error) {
	allowed := make(map[string]bool, len(accountTypes))
	for _, t := range accountTypes {
		allowed[t] = true
	}
	var pool []*CandidateProfile
	for _, c := range f.candidates {
		if c.UserID == excludeUserID || c.Status != "approved" || !allowed[c.AccountType] {
			continue
		}
		pool = append(pool, c)
		if len(pool) == limit {
			break
		}
	}
	return pool, nil
}

func (f *fakeRepo) GetApplicationStats(ctx context.Context, userID int64) (*ApplicationStats, error) {
	return f.stats[userID], nil
}

func (f *fakeRepo) CreateMatch(ctx context.Context, match *Match) error {
	f.nextMatchID++
	match.ID = f.nextMatchID
	f.matches = append(f.matches, match)
	return nil
}

func (f *fakeRepo) MarkMatchNotified(ctx context.Context, matchID int64) error {
	return nil
}

func (f *fakeRepo) HasMatch(ctx context.Context, opportunityID, providerID int64) (bool, error) {
	for _, m := range f.matches {
		if m.OpportunityID == opportunityID && m.ProviderID == providerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) GetMatchesForOpportunity(ctx context.Context, opportunityID int64) ([]*Match, error) {
	var out []*Match
	for _, m := range f.matches {
		if m.OpportunityID == opportunityID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetMatchesForProvider(ctx context.Context, providerID int64) ([]*Match, error) {
	var out []*Match
	for _, m := range f.matches {
		if m.ProviderID == providerID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetDB() *sqlx.DB { return nil }

// fakeNotifier records deliveries.
type fakeNotifier struct {
	notified []int64
}

func (n *fakeNotifier) NotifyMatch(ctx context.Context, providerID int64, match *Match) error {
	n.notified = append(n.notified, providerID)
	return nil
}

func strongPair() (*Opportunity, *CandidateProfile) {
	opp := &Opportunity{
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
	user := &CandidateProfile{
		UserID:             2,
		AccountType:        AccountBusiness,
		Status:             "approved",
		Skills:             StringList{"Welding", "electrical"},
		AnnualRevenueRange: "50M",
	}
	return opp, user
}

func TestMatchOpportunityPersistsAndNotifies(t *testing.T) {
	repo := newFakeRepo()
	opp, user := strongPair()
	repo.opportunities[opp.ID] = opp
	repo.candidates[user.UserID] = user

	notifier := &fakeNotifier{}
	e := NewEngine(repo, notifier)

	match, err := e.MatchOpportunity(context.Background(), opp.ID, user.UserID)
	require.NoError(t, err)
	require.NotNil(t, match)

	assert.Equal(t, 95, match.Score)
	assert.Equal(t, opp.ID, match.OpportunityID)
	assert.Equal(t, opp.ID, match.ProjectID)
	assert.Equal(t, user.UserID, match.ProviderID)
	assert.Equal(t, OpportunityTypeCollaboration, match.OpportunityType)
	assert.Equal(t, MatchStatusNotified, match.Status)
	assert.NotNil(t, match.NotifiedAt)
	assert.NotEmpty(t, match.Reference)
	assert.NotEmpty(t, match.Criteria)

	assert.Len(t, repo.matches, 1)
	assert.Equal(t, []int64{user.UserID}, notifier.notified)
}

func TestMatchOpportunityMissingRecords(t *testing.T) {
	repo := newFakeRepo()
	opp, user := strongPair()
	e := NewEngine(repo, nil)

	_, err := e.MatchOpportunity(context.Background(), opp.ID, user.UserID)
	assert.ErrorIs(t, err, ErrOpportunityNotFound)

	repo.opportunities[opp.ID] = opp
	_, err = e.MatchOpportunity(context.Background(), opp.ID, user.UserID)
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestIntentGate(t *testing.T) {
	request := IntentRequestService
	offer := IntentOfferService
	both := IntentBoth

	tests := []struct {
		name   string
		intent *IntentType
		role   string
		pass   bool
	}{
		{"absent intent passes", nil, "client", true},
		{"BOTH passes any role", &both, "client", true},
		{"empty role passes", &request, "", true},
		{"request needs provider", &request, "provider", true},
		{"request accepts both", &request, "both", true},
		{"request rejects client", &request, "client", false},
		{"offer needs client", &offer, "client", true},
		{"offer rejects provider", &offer, "provider", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pass, intentCompatible(tt.intent, tt.role))
		})
	}
}

func TestIntentGateBlocksMatch(t *testing.T) {
	repo := newFakeRepo()
	opp, user := strongPair()
	intent := IntentRequestService
	opp.IntentType = &intent
	user.Role = RoleClient
	repo.opportunities[opp.ID] = opp
	repo.candidates[user.UserID] = user

	e := NewEngine(repo, nil)
	_, err := e.MatchOpportunity(context.Background(), opp.ID, user.UserID)
	assert.ErrorIs(t, err, ErrIncompatibleIntent)
	assert.Empty(t, repo.matches)
}

func TestPaymentGate(t *testing.T) {
	cash := PaymentCash
	barter := PaymentBarter
	hybrid := PaymentHybrid

	assert.True(t, paymentCompatible(nil, &cash))
	assert.True(t, paymentCompatible(&cash, nil))
	assert.True(t, paymentCompatible(&hybrid, &barter))
	assert.True(t, paymentCompatible(&cash, &hybrid))
	assert.True(t, paymentCompatible(&cash, &cash))
	assert.False(t, paymentCompatible(&cash, &barter))
	assert.False(t, paymentCompatible(&barter, &cash))
}

func TestRelationshipApplicabilityGate(t *testing.T) {
	// A sub-score-perfect pair still fails when the model does not list
	// the opportunity's relationship type.
	repo := newFakeRepo()
	opp, user := strongPair()
	opp.ModelType = ModelConsortium // B2B only
	opp.RelationshipType = RelationshipP2P
	opp.Attributes.RequiredRoles = []string{"welding"}
	repo.opportunities[opp.ID] = opp
	repo.candidates[user.UserID] = user

	e := NewEngine(repo, nil)
	_, err := e.MatchOpportunity(context.Background(), opp.ID, user.UserID)
	assert.ErrorIs(t, err, ErrModelNotApplicable)
	assert.Empty(t, repo.matches)
}

func TestUnknownModelType(t *testing.T) {
	repo := newFakeRepo()
	opp, user := strongPair()
	opp.ModelType = "9.9"
	repo.opportunities[opp.ID] = opp
	repo.candidates[user.UserID] = user

	e := NewEngine(repo, nil)
	_, err := e.MatchOpportunity(context.Background(), opp.ID, user.UserID)
	assert.ErrorIs(t, err, ErrUnknownModelType)
}

func TestBelowThreshold(t *testing.T) {
	repo := newFakeRepo()
	opp, user := strongPair()
	user.AnnualRevenueRange = "5K"
	repo.opportunities[opp.ID] = opp
	repo.candidates[user.UserID] = user

	e := NewEngine(repo, nil)
	_, err := e.MatchOpportunity(context.Background(), opp.ID, user.UserID)
	assert.ErrorIs(t, err, ErrBelowThreshold)
	assert.Empty(t, repo.matches)
}

func TestAlreadyMatched(t *testing.T) {
	repo := newFakeRepo()
	opp, user := strongPair()
	repo.opportunities[opp.ID] = opp
	repo.candidates[user.UserID] = user

	e := NewEngine(repo, nil)
	ctx := context.Background()

	_, err := e.MatchOpportunity(ctx, opp.ID, user.UserID)
	require.NoError(t, err)

	_, err = e.MatchOpportunity(ctx, opp.ID, user.UserID)
	assert.ErrorIs(t, err, ErrAlreadyMatched)
	assert.Len(t, repo.matches, 1)
}

func TestBarterAdjustment(t *testing.T) {
	barter := PaymentBarter
	cash := PaymentCash

	t.Run("incompatible barter penalizes", func(t *testing.T) {
		opp, user := strongPair()
		opp.PaymentMode = &barter
		opp.Attributes.BarterWanted = []string{"accounting"}
		user.BarterOffers = StringList{"welding"}

		e := &engine{repo: newFakeRepo()}
		result := combineScores(GroupDelivery, map[string]float64{
			ScoreSkillScope: 100, ScoreFinancial: 100, ScorePastPerformance: 75,
		})
		require.Equal(t, 95, result.FinalScore)

		e.applyBarterAdjustment(opp, user, result)
		assert.Equal(t, 0.0, result.Scores[ScoreBarter])
		assert.Equal(t, 75, result.FinalScore)
		assert.False(t, result.MeetsThreshold)
	})

	t.Run("strong barter fit boosts", func(t *testing.T) {
		opp, user := strongPair()
		opp.PaymentMode = &barter
		opp.Attributes.BarterWanted = []string{"welding"}
		user.BarterOffers = StringList{"Welding Services"}

		e := &engine{repo: newFakeRepo()}
		result := combineScores(GroupDelivery, map[string]float64{
			ScoreSkillScope: 100, ScoreFinancial: 100, ScorePastPerformance: 100,
		})
		require.Equal(t, 100, result.FinalScore)

		e.applyBarterAdjustment(opp, user, result)
		assert.Equal(t, 100, result.FinalScore, "boost caps at 100")
		assert.True(t, result.MeetsThreshold)
	})

	t.Run("cash opportunities are untouched", func(t *testing.T) {
		opp, user := strongPair()
		opp.PaymentMode = &cash
		opp.Attributes.BarterWanted = []string{"accounting"}

		e := &engine{repo: newFakeRepo()}
		result := combineScores(GroupDelivery, map[string]float64{
			ScoreSkillScope: 100, ScoreFinancial: 100, ScorePastPerformance: 75,
		})
		e.applyBarterAdjustment(opp, user, result)
		assert.Equal(t, 95, result.FinalScore)
		assert.NotContains(t, result.Scores, ScoreBarter)
	})

	t.Run("falls back to offered list when wanted is empty", func(t *testing.T) {
		opp, user := strongPair()
		opp.PaymentMode = &barter
		opp.Attributes.BarterOffered = []string{"welding"}
		user.BarterOffers = StringList{"welding"}

		e := &engine{repo: newFakeRepo()}
		result := combineScores(GroupDelivery, map[string]float64{
			ScoreSkillScope: 100, ScoreFinancial: 20, ScorePastPerformance: 75,
		})
		before := result.FinalScore

		e.applyBarterAdjustment(opp, user, result)
		assert.Equal(t, before+5, result.FinalScore)
	})
}

func TestBarterPenaltyFloorsAtZero(t *testing.T) {
	barter := PaymentBarter
	opp, user := strongPair()
	opp.PaymentMode = &barter
	opp.Attributes.BarterWanted = []string{"accounting"}

	e := &engine{repo: newFakeRepo()}
	result := combineScores(GroupDelivery, map[string]float64{
		ScoreSkillScope: 10, ScoreFinancial: 10, ScorePastPerformance: 10,
	})
	require.Equal(t, 10, result.FinalScore)

	e.applyBarterAdjustment(opp, user, result)
	assert.Equal(t, 0, result.FinalScore)
}
