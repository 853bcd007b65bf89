package core

import (
	"context"

	"github.com/huangsam/acqscore/core/algo"
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"
	"golang.org/x/sync/errgroup"
)

// ScoreTargets enriches and scores every target using at most cfg.Workers goroutines.
// Results keep the order of targets. Only cancellation of ctx makes it fail.
func ScoreTargets(ctx context.Context, cfg *contract.Config, targets []schema.CompanyRecord, ds contract.DataSource, scorer *algo.Scorer) ([]schema.TargetResult, error) {
	results := make([]schema.TargetResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))

	for i, target := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = NewTargetResultBuilder(gctx, cfg, ds, scorer, target).
				FetchEnrichment().
				MergeEnrichment().
				CalculateScore().
				Build()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
