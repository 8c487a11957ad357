package matching

import (
	"context"
	"errors"
	"log"
	"time"
)

// Opportunity statuses the finder cares about.
const (
	OpportunityStatusDraft  = "draft"
	OpportunityStatusActive = "active"
	OpportunityStatusClosed = "closed"
)

// defaultCandidateLimit bounds a single batch sweep. The original scanned
// the whole user table; a cap keeps one hot opportunity from starving the
// scheduler.
const defaultCandidateLimit = 500

// Finder enumerates eligible candidates for an opportunity and runs the
// engine against each one.
type Finder struct {
	repo           Repository
	engine         Engine
	candidateLimit int
}

// NewFinder creates a batch finder. limit <= 0 falls back to the default.
func NewFinder(repo Repository, engine Engine, limit int) *Finder {
	if limit <= 0 {
		limit = defaultCandidateLimit
	}
	return &Finder{repo: repo, engine: engine, candidateLimit: limit}
}

// candidateAccountTypes maps a relationship type to the account types that
// belong in the candidate pool. B2B/B2P opportunities draw from business
// accounts, P2B/P2P from individuals; anything unrecognized unions both.
func candidateAccountTypes(rt RelationshipType) []string {
	switch rt {
	case RelationshipB2B, RelationshipB2P:
		return []string{AccountBusiness}
	case RelationshipP2B, RelationshipP2P:
		return []string{AccountIndividual}
	default:
		return []string{AccountBusiness, AccountIndividual}
	}
}

// FindMatchesForOpportunity runs the engine over every approved candidate
// in the pool, excluding the creator. Inactive opportunities are a no-op.
// Per-candidate failures (failed gates, sub-threshold scores, missing
// data) are skipped, not propagated: one bad profile must not sink the
// batch.
func (f *Finder) FindMatchesForOpportunity(ctx context.Context, opportunityID int64) ([]*Match, error) {
	opp, err := f.repo.GetOpportunity(ctx, opportunityID)
	if err != nil {
		return nil, err
	}
	if opp.Status != OpportunityStatusActive {
		return nil, nil
	}

	started := time.Now()
	candidates, err := f.repo.GetApprovedCandidates(ctx, candidateAccountTypes(opp.RelationshipType), opp.CreatorID, f.candidateLimit)
	if err != nil {
		return nil, err
	}

	var matches []*Match
	for _, candidate := range candidates {
		match, err := f.engine.MatchOpportunity(ctx, opp.ID, candidate.UserID)
		if err != nil {
			if !isExpectedMiss(err) {
				log.Printf("matching: candidate %d for opportunity %d: %v", candidate.UserID, opp.ID, err)
			}
			continue
		}
		matches = append(matches, match)
	}

	if len(matches) > 0 {
		if err := f.repo.IncrementMatchesGenerated(ctx, opp.ID, len(matches)); err != nil {
			log.Printf("matching: failed to bump matches_generated for opportunity %d: %v", opp.ID, err)
		}
	}

	RecordBatchRun(time.Since(started), len(candidates), len(matches))
	return matches, nil
}

// isExpectedMiss separates "this pair just doesn't match" outcomes from
// real faults worth logging.
func isExpectedMiss(err error) bool {
	return errors.Is(err, ErrBelowThreshold) ||
		errors.Is(err, ErrIncompatibleIntent) ||
		errors.Is(err, ErrIncompatiblePayment) ||
		errors.Is(err, ErrModelNotApplicable) ||
		errors.Is(err, ErrAlreadyMatched)
}
