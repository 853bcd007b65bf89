package source

import (
	"context"

	"github.com/huangsam/acqscore/schema"
)

// StubSource returns fixed placeholder enrichment for every company.
type StubSource struct{}

// NewStubSource returns the placeholder data source.
func NewStubSource() *StubSource {
	return &StubSource{}
}

// Kind identifies the stub source.
func (StubSource) Kind() schema.SourceKind {
	return schema.StubSource
}

// Enrich returns the same estimates regardless of the company.
func (StubSource) Enrich(ctx context.Context, _ schema.CompanyRecord) (schema.Enrichment, error) {
	if err := ctx.Err(); err != nil {
		return schema.Enrichment{}, err
	}
	return schema.Enrichment{
		Source: schema.StubSource,
		OwnerSignals: schema.OwnerSignals{
			OwnerAgeEstimate:            55,
			SuccessionPlanningMentioned: true,
			RecentAdvisorHires:          []string{"Investment banker hired", "CPA firm engaged"},
		},
		FinancialEstimates: schema.FinancialEstimates{
			RevenueRangeLow:  5_000_000,
			RevenueRangeHigh: 10_000_000,
			EBITDAMargin:     0.20,
			GrowthIndicators: []string{"Hiring rapidly", "New office opened"},
		},
		MarketData: schema.MarketData{
			IndustryMultiple:   4.5,
			RecentAcquisitions: []string{"Competitor sold for 5x EBITDA"},
			MarketTrends:       []string{"Industry consolidating", "PE interest high"},
		},
		RiskFactors: []string{
			"Customer concentration risk",
			"Technology platform aging",
			"Key employee retention risk",
		},
	}, nil
}

// EmptySource never has anything to add.
type EmptySource struct{}

// Kind identifies the empty source.
func (EmptySource) Kind() schema.SourceKind {
	return schema.NoneSource
}

// Enrich returns an empty enrichment.
func (EmptySource) Enrich(ctx context.Context, _ schema.CompanyRecord) (schema.Enrichment, error) {
	if err := ctx.Err(); err != nil {
		return schema.Enrichment{}, err
	}
	return schema.Enrichment{Source: schema.NoneSource}, nil
}
