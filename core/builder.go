package core

import (
	"context"
	"fmt"

	"github.com/huangsam/acqscore/core/algo"
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/internal/source"
	"github.com/huangsam/acqscore/schema"
	"go.uber.org/zap"
)

// TargetResultBuilder builds the scored result for one company.
type TargetResultBuilder struct {
	ctx    context.Context
	cfg    *contract.Config
	source contract.DataSource
	scorer *algo.Scorer

	company    schema.CompanyRecord
	enrichment *schema.Enrichment
	result     schema.ScoreResult
}

// NewTargetResultBuilder is the starting point for scoring a company.
// A nil data source skips enrichment.
func NewTargetResultBuilder(ctx context.Context, cfg *contract.Config, ds contract.DataSource, scorer *algo.Scorer, company schema.CompanyRecord) *TargetResultBuilder {
	return &TargetResultBuilder{
		ctx:     ctx,
		cfg:     cfg,
		source:  ds,
		scorer:  scorer,
		company: company,
	}
}

// FetchEnrichment asks the data source for supplementary data.
// Failures are logged and leave the record as loaded.
func (b *TargetResultBuilder) FetchEnrichment() *TargetResultBuilder {
	if b.source == nil {
		return b
	}
	e, err := b.source.Enrich(b.ctx, b.company)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("Enrichment failed for %s, scoring the record as loaded", b.company.CompanyName), err)
		return b
	}
	if !e.IsEmpty() {
		b.enrichment = &e
	}
	return b
}

// MergeEnrichment fills absent fields from the fetched enrichment when merging is enabled.
func (b *TargetResultBuilder) MergeEnrichment() *TargetResultBuilder {
	if b.enrichment == nil || !b.cfg.MergeEnrichment {
		return b
	}
	b.company = source.Merge(b.company, *b.enrichment)
	return b
}

// CalculateScore runs the scorer over the (possibly merged) record.
func (b *TargetResultBuilder) CalculateScore() *TargetResultBuilder {
	b.result = b.scorer.Score(b.company)
	contract.Logger().Debug("scored target",
		zap.String("company", b.company.CompanyName),
		zap.Int("total", b.result.Total),
		zap.Int("signals", len(b.result.Signals)),
	)
	return b
}

// Build returns the final result.
func (b *TargetResultBuilder) Build() schema.TargetResult {
	return schema.TargetResult{
		Company:     b.company,
		Enrichment:  b.enrichment,
		ScoreResult: b.result,
	}
}
