package matching

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// triggerDelay yields briefly before an async batch run so the write that
// triggered it commits first.
const triggerDelay = 100 * time.Millisecond

// triggerLockTTL deduplicates concurrent batch runs for one opportunity.
const triggerLockTTL = 30 * time.Second

type Service interface {
	MatchOpportunity(ctx context.Context, opportunityID, userID int64) (*Match, error)
	CalculateCompatibility(ctx context.Context, opportunityID, userID int64) (*MatchResult, error)
	FindMatchesForOpportunity(ctx context.Context, opportunityID int64) ([]*Match, error)
	TriggerMatching(opportunityID int64)
	GetOpportunityMatches(ctx context.Context, opportunityID int64) ([]*Match, error)
	GetProviderMatches(ctx context.Context, providerID int64) ([]*Match, error)
	Models() []*CollaborationModel
}

type service struct {
	repo   Repository
	engine Engine
	finder *Finder
	redis  *redis.Client
}

// NewService wires the matching service. redisClient may be nil; triggers
// then run without cross-instance deduplication.
func NewService(repo Repository, engine Engine, finder *Finder, redisClient *redis.Client) Service {
	return &service{
		repo:   repo,
		engine: engine,
		finder: finder,
		redis:  redisClient,
	}
}

func (s *service) MatchOpportunity(ctx context.Context, opportunityID, userID int64) (*Match, error) {
	return s.engine.MatchOpportunity(ctx, opportunityID, userID)
}

func (s *service) CalculateCompatibility(ctx context.Context, opportunityID, userID int64) (*MatchResult, error) {
	return s.engine.CalculateCompatibility(ctx, opportunityID, userID)
}

func (s *service) FindMatchesForOpportunity(ctx context.Context, opportunityID int64) ([]*Match, error) {
	return s.finder.FindMatchesForOpportunity(ctx, opportunityID)
}

// TriggerMatching schedules a batch run for one opportunity without
// blocking the caller. A short redis lock swallows duplicate triggers
// fired in quick succession (status flaps, double submits).
func (s *service) TriggerMatching(opportunityID int64) {
	go func() {
		time.Sleep(triggerDelay)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if !s.acquireTriggerLock(ctx, opportunityID) {
			return
		}

		if _, err := s.finder.FindMatchesForOpportunity(ctx, opportunityID); err != nil {
			log.Printf("matching: triggered run for opportunity %d failed: %v", opportunityID, err)
		}
	}()
}

func (s *service) acquireTriggerLock(ctx context.Context, opportunityID int64) bool {
	if s.redis == nil {
		return true
	}
	key := triggerLockKey(opportunityID)
	ok, err := s.redis.SetNX(ctx, key, time.Now().Unix(), triggerLockTTL).Result()
	if err != nil {
		// Redis being down should degrade to running, not to silence.
		log.Printf("matching: trigger lock for opportunity %d unavailable: %v", opportunityID, err)
		return true
	}
	return ok
}

func triggerLockKey(opportunityID int64) string {
	return "matching:run:" + strconv.FormatInt(opportunityID, 10)
}

func (s *service) GetOpportunityMatches(ctx context.Context, opportunityID int64) ([]*Match, error) {
	return s.repo.GetMatchesForOpportunity(ctx, opportunityID)
}

func (s *service) GetProviderMatches(ctx context.Context, providerID int64) ([]*Match, error) {
	return s.repo.GetMatchesForProvider(ctx, providerID)
}

func (s *service) Models() []*CollaborationModel {
	return AllModels()
}
