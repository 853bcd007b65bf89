// Package core has core logic for enrichment, scoring and ranking.
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/acqscore/core/algo"
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/internal/outwriter"
	"github.com/huangsam/acqscore/internal/source"
	"github.com/huangsam/acqscore/schema"
)

// ExecutorFunc defines the function signature for executing the scoring commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteRank scores every target and prints the best ones.
// It serves as the main entry point for the 'rank' command.
func ExecuteRank(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	ranked, err := RunRanking(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTargets(ranked, cfg, time.Since(start))
}

// ExecuteScore scores the target whose company name matches name, ignoring case.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, name string) error {
	start := time.Now()
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("--name is required")
	}

	targets, err := source.NewTargetLoader(cfg.InputPath).Load(ctx)
	if err != nil {
		return err
	}
	var matched []schema.CompanyRecord
	for _, t := range targets {
		if strings.EqualFold(t.CompanyName, name) {
			matched = append(matched, t)
		}
	}
	if len(matched) == 0 {
		return fmt.Errorf("no target named %q in %s", name, inputLabel(cfg))
	}

	results, err := scoreWithConfig(ctx, cfg, mgr, matched)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteTargets(algo.RankTargets(results, 0), cfg, time.Since(start))
}

// ExecuteWeights displays the scoring components and the weights in effect.
// This is a static display that does not load or score any targets.
func ExecuteWeights(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.NewOutWriter().WriteWeights(cfg.Weights, cfg)
}

// ExecuteSample prints the built-in sample targets in a loadable format.
func ExecuteSample(_ context.Context, cfg *contract.Config, _ contract.CacheManager) error {
	return outwriter.NewOutWriter().WriteCompanies(source.SampleCompanies(), cfg)
}

// RunRanking loads, enriches and scores every target, records history when
// configured, and returns the ranked results without printing them.
func RunRanking(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.TargetResult, error) {
	start := time.Now()
	targets, err := source.NewTargetLoader(cfg.InputPath).Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no targets found in %s", inputLabel(cfg))
	}

	results, err := scoreWithConfig(ctx, cfg, mgr, targets)
	if err != nil {
		return nil, err
	}
	recordHistory(mgr, cfg, start, results)
	return rankResults(results, cfg), nil
}

// ScoreCompany enriches and scores a single company.
func ScoreCompany(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, company schema.CompanyRecord) (schema.TargetResult, error) {
	results, err := scoreWithConfig(ctx, cfg, mgr, []schema.CompanyRecord{company})
	if err != nil {
		return schema.TargetResult{}, err
	}
	return results[0], nil
}

// scoreWithConfig builds the scorer and data source from cfg and scores targets.
func scoreWithConfig(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, targets []schema.CompanyRecord) ([]schema.TargetResult, error) {
	scorer, err := NewScorer(cfg)
	if err != nil {
		return nil, err
	}
	ds, err := NewDataSource(cfg, mgr)
	if err != nil {
		return nil, err
	}
	return ScoreTargets(ctx, cfg, targets, ds, scorer)
}

// NewScorer returns a scorer using the configured weights and year.
func NewScorer(cfg *contract.Config) (*algo.Scorer, error) {
	var opts []algo.Option
	if cfg.CurrentYear > 0 {
		opts = append(opts, algo.WithCurrentYear(cfg.CurrentYear))
	}
	scorer, err := algo.NewScorer(cfg.Weights, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return scorer, nil
}

// NewDataSource returns the configured enrichment source.
// The live source caches responses in the manager's enrichment store.
func NewDataSource(cfg *contract.Config, mgr contract.CacheManager) (contract.DataSource, error) {
	opts := source.LiveOptions{
		BaseURL: cfg.SourceURL,
		Token:   cfg.SourceToken,
		Timeout: cfg.SourceTimeout,
		TTL:     cfg.EnrichmentTTL,
	}
	if cfg.Source == schema.LiveSource && mgr != nil {
		opts.Cache = mgr.GetEnrichmentStore()
	}
	return source.NewDataSource(cfg.Source, opts)
}

// inputLabel names the target input for messages.
func inputLabel(cfg *contract.Config) string {
	if cfg.InputPath == "" {
		return "the sample targets"
	}
	return cfg.InputPath
}
