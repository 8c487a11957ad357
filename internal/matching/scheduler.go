package matching

import (
	"context"
	"log"
	"time"
)

// Scheduler periodically sweeps every active opportunity through the batch
// finder so matches surface even when nothing retriggers them.
type Scheduler struct {
	repo     Repository
	finder   *Finder
	interval time.Duration
}

func NewScheduler(repo Repository, finder *Finder, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Scheduler{repo: repo, finder: finder, interval: interval}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				log.Printf("matching: scheduled sweep failed: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) error {
	opportunities, err := s.repo.GetActiveOpportunities(ctx)
	if err != nil {
		return err
	}
	for _, opp := range opportunities {
		if _, err := s.finder.FindMatchesForOpportunity(ctx, opp.ID); err != nil {
			log.Printf("matching: sweep of opportunity %d failed: %v", opp.ID, err)
		}
	}
	return nil
}
