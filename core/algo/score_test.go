package algo

import (
	"sync"
	"testing"

	"github.com/huangsam/acqscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYear = 2024

// techFlow is the reference SaaS target used across tests.
func techFlow() schema.CompanyRecord {
	return schema.CompanyRecord{
		CompanyName:              "TechFlow Solutions",
		Industry:                 "SaaS",
		OwnerAge:                 58,
		YearsOwned:               8,
		ActivelySelling:          true,
		Revenue:                  8_500_000,
		EBITDA:                   2_125_000,
		RecurringRevenuePct:      85,
		RevenueGrowthRate:        25,
		AskingPrice:              10_000_000,
		TopCustomerConcentration: 15,
		YearFounded:              2015,
		HasManagementTeam:        true,
		DocumentedProcesses:      true,
		SellerWillStay:           true,
	}
}

// bestCase maxes out every sub-scorer.
func bestCase() schema.CompanyRecord {
	return schema.CompanyRecord{
		OwnerAge:                 60,
		YearsOwned:               11,
		ActivelySelling:          true,
		Revenue:                  100,
		EBITDA:                   25,
		RecurringRevenuePct:      71,
		RevenueGrowthRate:        21,
		AskingPrice:              100,
		TopCustomerConcentration: 10,
		YearFounded:              testYear - 10,
		MarketLeader:             true,
		HasManagementTeam:        true,
		DocumentedProcesses:      true,
		SellerWillStay:           true,
	}
}

// worstCase earns nothing in any sub-scorer.
func worstCase() schema.CompanyRecord {
	return schema.CompanyRecord{
		OwnerAge:                 50,
		Revenue:                  100,
		EBITDA:                   5,
		TopCustomerConcentration: 50,
		YearFounded:              testYear,
	}
}

func newTestScorer(t testing.TB) *Scorer {
	t.Helper()
	s, err := NewScorer(schema.DefaultWeights(), WithCurrentYear(testYear))
	require.NoError(t, err)
	return s
}

func componentScore(t *testing.T, r schema.ScoreResult, key schema.ComponentKey) float64 {
	t.Helper()
	c, ok := r.Component(key)
	require.True(t, ok, "missing component %s", key)
	return c.Score
}

// TestScoreTechFlow walks the reference target through every sub-scorer.
func TestScoreTechFlow(t *testing.T) {
	result := newTestScorer(t).Score(techFlow())

	assert.InDelta(t, 0.6, componentScore(t, result, schema.OwnerReadiness), 1e-9)
	assert.InDelta(t, 1.0, componentScore(t, result, schema.FinancialHealth), 1e-9)
	assert.InDelta(t, 0.7, componentScore(t, result, schema.ValuationReason), 1e-9)
	assert.InDelta(t, 0.5, componentScore(t, result, schema.BusinessQuality), 1e-9)
	assert.InDelta(t, 1.0, componentScore(t, result, schema.TransitionEase), 1e-9)
	assert.Equal(t, 74, result.Total)

	expected := []schema.Signal{
		{Kind: schema.NeutralSignal, Text: "Owner age 58 - may consider exit in 5 years"},
		{Kind: schema.PositiveSignal, Text: "Business actively listed for sale"},
		{Kind: schema.PositiveSignal, Text: "25.0% EBITDA margin - highly profitable"},
		{Kind: schema.PositiveSignal, Text: "85% recurring revenue"},
		{Kind: schema.PositiveSignal, Text: "Consistent 25% YoY growth"},
		{Kind: schema.NeutralSignal, Text: "Fair valuation at 4.7x EBITDA"},
		{Kind: schema.PositiveSignal, Text: "Well-diversified customer base"},
		{Kind: schema.PositiveSignal, Text: "Strong management team in place"},
		{Kind: schema.PositiveSignal, Text: "Well-documented processes and systems"},
		{Kind: schema.PositiveSignal, Text: "Seller willing to stay for transition"},
	}
	assert.Equal(t, expected, result.Signals)
}

// TestScoreTechFlowLongTenure adds the tenure bonus, lifting owner readiness to 0.8.
func TestScoreTechFlowLongTenure(t *testing.T) {
	c := techFlow()
	c.YearsOwned = 12
	result := newTestScorer(t).Score(c)

	assert.InDelta(t, 0.8, componentScore(t, result, schema.OwnerReadiness), 1e-9)
	assert.Equal(t, 80, result.Total)
	assert.Contains(t, result.Signals, schema.Signal{Kind: schema.PositiveSignal, Text: "Long ownership tenure (12 years)"})
}

func TestScoreExtremes(t *testing.T) {
	s := newTestScorer(t)

	best := s.Score(bestCase())
	assert.Equal(t, 100, best.Total)
	for _, c := range best.Components {
		assert.Equal(t, 1.0, c.Score, c.Key)
	}

	worst := s.Score(worstCase())
	assert.Equal(t, 0, worst.Total)
	for _, c := range worst.Components {
		assert.Equal(t, 0.0, c.Score, c.Key)
	}
}

// TestScoreEmptyRecord checks that absent fields fall back to zero and false.
func TestScoreEmptyRecord(t *testing.T) {
	result := newTestScorer(t).Score(schema.CompanyRecord{})

	// Only the zero concentration earns anything: 0.3 * 0.15 * 100 = 4.5.
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, []schema.Signal{
		{Kind: schema.WarningSignal, Text: "Young owner (0) - less likely to sell"},
		{Kind: schema.PositiveSignal, Text: "Well-diversified customer base"},
		{Kind: schema.WarningSignal, Text: "Owner-dependent business"},
	}, result.Signals)
}

func TestScoreComponentsOrderAndContribution(t *testing.T) {
	result := newTestScorer(t).Score(techFlow())

	require.Len(t, result.Components, len(schema.AllComponents))
	var sum float64
	for i, c := range result.Components {
		assert.Equal(t, schema.AllComponents[i], c.Key)
		assert.InDelta(t, c.Score*c.Weight*100, c.Contribution, 1e-9)
		sum += c.Contribution
	}
	assert.InDelta(t, 74.5, sum, 1e-9)
}

func TestOwnerReadinessBoundaries(t *testing.T) {
	tests := []struct {
		name       string
		record     schema.CompanyRecord
		want       float64
		wantSignal *schema.Signal
	}{
		{"age 60 inclusive", schema.CompanyRecord{OwnerAge: 60}, 0.5, &schema.Signal{Kind: schema.PositiveSignal, Text: "Owner approaching retirement age (60)"}},
		{"age 59", schema.CompanyRecord{OwnerAge: 59}, 0.3, &schema.Signal{Kind: schema.NeutralSignal, Text: "Owner age 59 - may consider exit in 5 years"}},
		{"age 55 inclusive", schema.CompanyRecord{OwnerAge: 55}, 0.3, &schema.Signal{Kind: schema.NeutralSignal, Text: "Owner age 55 - may consider exit in 5 years"}},
		{"age 54", schema.CompanyRecord{OwnerAge: 54}, 0, nil},
		{"age 45", schema.CompanyRecord{OwnerAge: 45}, 0, nil},
		{"age 44", schema.CompanyRecord{OwnerAge: 44}, 0, &schema.Signal{Kind: schema.WarningSignal, Text: "Young owner (44) - less likely to sell"}},
		{"tenure 10", schema.CompanyRecord{OwnerAge: 50, YearsOwned: 10}, 0, nil},
		{"tenure 11", schema.CompanyRecord{OwnerAge: 50, YearsOwned: 11}, 0.2, &schema.Signal{Kind: schema.PositiveSignal, Text: "Long ownership tenure (11 years)"}},
		{"selling", schema.CompanyRecord{OwnerAge: 50, ActivelySelling: true}, 0.3, &schema.Signal{Kind: schema.PositiveSignal, Text: "Business actively listed for sale"}},
		{"all at once", schema.CompanyRecord{OwnerAge: 70, YearsOwned: 30, ActivelySelling: true}, 1.0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, signals := scoreOwnerReadiness(tt.record)
			assert.InDelta(t, tt.want, score, 1e-9)
			if tt.wantSignal != nil {
				assert.Equal(t, []schema.Signal{*tt.wantSignal}, signals)
			}
			if tt.want == 0 && tt.wantSignal == nil {
				assert.Empty(t, signals)
			}
		})
	}
}

func TestFinancialHealthBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		ebitda   float64
		want     float64
		wantKind schema.SignalKind
		wantText string
	}{
		{"margin 25 inclusive", 25, 0.4, schema.PositiveSignal, "25.0% EBITDA margin - highly profitable"},
		{"margin 24.9", 24.9, 0.3, schema.PositiveSignal, "24.9% EBITDA margin - strong profitability"},
		{"margin 20 inclusive", 20, 0.3, schema.PositiveSignal, "20.0% EBITDA margin - strong profitability"},
		{"margin 15 inclusive", 15, 0.2, schema.NeutralSignal, "15.0% EBITDA margin - industry average"},
		{"margin 10 silent", 10, 0, "", ""},
		{"margin 9.9", 9.9, 0, schema.WarningSignal, "9.9% EBITDA margin - below average"},
		{"negative margin", -10, 0, schema.WarningSignal, "-10.0% EBITDA margin - below average"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, signals := scoreFinancialHealth(schema.CompanyRecord{Revenue: 100, EBITDA: tt.ebitda})
			assert.InDelta(t, tt.want, score, 1e-9)
			if tt.wantText == "" {
				assert.Empty(t, signals)
				return
			}
			require.Len(t, signals, 1)
			assert.Equal(t, tt.wantKind, signals[0].Kind)
			assert.Equal(t, tt.wantText, signals[0].Text)
		})
	}

	t.Run("no revenue skips margin", func(t *testing.T) {
		score, signals := scoreFinancialHealth(schema.CompanyRecord{EBITDA: 1_000_000})
		assert.Zero(t, score)
		assert.Empty(t, signals)
	})

	t.Run("recurring and growth are strict", func(t *testing.T) {
		score, signals := scoreFinancialHealth(schema.CompanyRecord{RecurringRevenuePct: 70, RevenueGrowthRate: 20})
		assert.Zero(t, score)
		assert.Empty(t, signals)

		score, signals = scoreFinancialHealth(schema.CompanyRecord{RecurringRevenuePct: 70.5, RevenueGrowthRate: 20.1})
		assert.InDelta(t, 0.6, score, 1e-9)
		assert.Equal(t, []schema.Signal{
			{Kind: schema.PositiveSignal, Text: "70.5% recurring revenue"},
			{Kind: schema.PositiveSignal, Text: "Consistent 20.1% YoY growth"},
		}, signals)
	})
}

func TestValuationBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		asking   float64
		ebitda   float64
		want     float64
		wantKind schema.SignalKind
		wantText string
	}{
		{"multiple 4 inclusive", 400, 100, 1.0, schema.PositiveSignal, "Attractive valuation at 4.0x EBITDA"},
		{"multiple 4.5", 450, 100, 0.7, schema.NeutralSignal, "Fair valuation at 4.5x EBITDA"},
		{"multiple 5 inclusive", 500, 100, 0.7, schema.NeutralSignal, "Fair valuation at 5.0x EBITDA"},
		{"multiple 6 inclusive", 600, 100, 0.5, schema.NeutralSignal, "Market valuation at 6.0x EBITDA"},
		{"multiple 6.01", 601, 100, 0.2, schema.WarningSignal, "High valuation at 6.0x EBITDA"},
		{"multiple 12", 1200, 100, 0.2, schema.WarningSignal, "High valuation at 12.0x EBITDA"},
		{"zero ebitda", 1000, 0, 0, schema.WarningSignal, "Valuation multiple undefined: EBITDA is not positive"},
		{"negative ebitda", 1000, -50, 0, schema.WarningSignal, "Valuation multiple undefined: EBITDA is not positive"},
		{"no asking price", 0, 100, 0, "", ""},
		{"no asking price or ebitda", 0, 0, 0, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, signals := scoreValuation(schema.CompanyRecord{AskingPrice: tt.asking, EBITDA: tt.ebitda})
			assert.InDelta(t, tt.want, score, 1e-9)
			if tt.wantText == "" {
				assert.Empty(t, signals)
				return
			}
			require.Len(t, signals, 1)
			assert.Equal(t, tt.wantKind, signals[0].Kind)
			assert.Equal(t, tt.wantText, signals[0].Text)
		})
	}
}

func TestBusinessQualityBoundaries(t *testing.T) {
	tests := []struct {
		name          string
		concentration float64
		founded       int
		leader        bool
		want          float64
		wantTexts     []string
	}{
		{"diversified", 19.9, testYear, false, 0.3, []string{"Well-diversified customer base"}},
		{"concentration 20 silent", 20, testYear, false, 0, nil},
		{"concentration 40 silent", 40, testYear, false, 0, nil},
		{"concentrated", 40.5, testYear, false, 0, []string{"High customer concentration (top 3 = 40.5%)"}},
		{"age 10 inclusive", 30, testYear - 10, false, 0.4, []string{"Established business (10 years)"}},
		{"age 9", 30, testYear - 9, false, 0.2, nil},
		{"age 5 inclusive", 30, testYear - 5, false, 0.2, nil},
		{"age 4", 30, testYear - 4, false, 0, nil},
		{"no founding year", 30, 0, false, 0, nil},
		{"leader", 30, testYear, true, 0.3, []string{"Market leader in their niche"}},
		{"everything", 5, 1990, true, 1.0, []string{"Well-diversified customer base", "Established business (34 years)", "Market leader in their niche"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, signals := scoreBusinessQuality(schema.CompanyRecord{
				TopCustomerConcentration: tt.concentration,
				YearFounded:              tt.founded,
				MarketLeader:             tt.leader,
			}, testYear)
			assert.InDelta(t, tt.want, score, 1e-9)
			var texts []string
			for _, s := range signals {
				texts = append(texts, s.Text)
			}
			assert.Equal(t, tt.wantTexts, texts)
		})
	}
}

func TestTransitionEase(t *testing.T) {
	score, signals := scoreTransitionEase(schema.CompanyRecord{})
	assert.Zero(t, score)
	assert.Equal(t, []schema.Signal{{Kind: schema.WarningSignal, Text: "Owner-dependent business"}}, signals)

	score, signals = scoreTransitionEase(schema.CompanyRecord{DocumentedProcesses: true, SellerWillStay: true})
	assert.InDelta(t, 0.5, score, 1e-9)
	assert.Len(t, signals, 3)
	assert.Equal(t, schema.WarningSignal, signals[0].Kind)

	score, _ = scoreTransitionEase(schema.CompanyRecord{HasManagementTeam: true, DocumentedProcesses: true, SellerWillStay: true})
	assert.InDelta(t, 1.0, score, 1e-9)
}

// TestScoreMonotonic checks that improving a single positive input never lowers the total.
func TestScoreMonotonic(t *testing.T) {
	s := newTestScorer(t)
	base := worstCase()

	steps := map[string]func(c *schema.CompanyRecord, i int){
		"owner age":     func(c *schema.CompanyRecord, i int) { c.OwnerAge = 40 + i },
		"years owned":   func(c *schema.CompanyRecord, i int) { c.YearsOwned = i },
		"ebitda margin": func(c *schema.CompanyRecord, i int) { c.EBITDA = float64(i) },
		"recurring":     func(c *schema.CompanyRecord, i int) { c.RecurringRevenuePct = float64(i * 2) },
		"growth":        func(c *schema.CompanyRecord, i int) { c.RevenueGrowthRate = float64(i) },
		"business age":  func(c *schema.CompanyRecord, i int) { c.YearFounded = testYear - i },
		"lower asking": func(c *schema.CompanyRecord, i int) {
			c.EBITDA = 10
			c.AskingPrice = float64(100 - i)
		},
		"less concentration": func(c *schema.CompanyRecord, i int) { c.TopCustomerConcentration = float64(50 - i) },
	}

	for name, step := range steps {
		t.Run(name, func(t *testing.T) {
			prev := -1
			for i := range 50 {
				c := base
				step(&c, i)
				total := s.Score(c).Total
				assert.GreaterOrEqual(t, total, prev, "step %d", i)
				prev = total
			}
		})
	}

	t.Run("flags", func(t *testing.T) {
		before := s.Score(base).Total
		for _, set := range []func(c *schema.CompanyRecord){
			func(c *schema.CompanyRecord) { c.ActivelySelling = true },
			func(c *schema.CompanyRecord) { c.MarketLeader = true },
			func(c *schema.CompanyRecord) { c.HasManagementTeam = true },
			func(c *schema.CompanyRecord) { c.DocumentedProcesses = true },
			func(c *schema.CompanyRecord) { c.SellerWillStay = true },
		} {
			c := base
			set(&c)
			assert.Greater(t, s.Score(c).Total, before)
		}
	})
}

func TestScoreIdempotent(t *testing.T) {
	s := newTestScorer(t)
	first := s.Score(techFlow())
	for range 10 {
		assert.Equal(t, first, s.Score(techFlow()))
	}
}

func TestScoreConcurrent(t *testing.T) {
	s := newTestScorer(t)
	want := s.Score(techFlow())

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			for range 100 {
				assert.Equal(t, want, s.Score(techFlow()))
			}
		})
	}
	wg.Wait()
}

func TestScoreDoesNotMutateInput(t *testing.T) {
	c := techFlow()
	before := c
	newTestScorer(t).Score(c)
	assert.Equal(t, before, c)
}

func TestNewScorer(t *testing.T) {
	_, err := NewScorer(schema.Weights{OwnerReadiness: 0.5})
	assert.Error(t, err)

	s, err := NewScorer(schema.Weights{ValuationReason: 1})
	require.NoError(t, err)
	result := s.Score(schema.CompanyRecord{AskingPrice: 300, EBITDA: 100})
	assert.Equal(t, 100, result.Total)
	assert.Equal(t, schema.Weights{ValuationReason: 1}, s.Weights())

	d := NewDefaultScorer(WithCurrentYear(1999))
	assert.Equal(t, 1999, d.CurrentYear())
	assert.Equal(t, schema.DefaultWeights(), d.Weights())
}

// TestCustomWeightsChangeTotal tests that custom weights produce different results than defaults.
func TestCustomWeightsChangeTotal(t *testing.T) {
	custom, err := NewScorer(schema.Weights{
		OwnerReadiness:  0.10,
		FinancialHealth: 0.50,
		ValuationReason: 0.20,
		BusinessQuality: 0.10,
		TransitionEase:  0.10,
	}, WithCurrentYear(testYear))
	require.NoError(t, err)

	defaultTotal := newTestScorer(t).Score(techFlow()).Total
	customTotal := custom.Score(techFlow()).Total
	assert.NotEqual(t, defaultTotal, customTotal)
	// 0.06 + 0.5 + 0.14 + 0.05 + 0.1 = 0.85
	assert.Equal(t, 85, customTotal)
}

// BenchmarkScore benchmarks scoring a single company.
func BenchmarkScore(b *testing.B) {
	s := newTestScorer(b)
	c := techFlow()

	for b.Loop() {
		s.Score(c)
	}
}
