package schema

// OwnerSignals are estimates about the owner's readiness to sell.
type OwnerSignals struct {
	OwnerAgeEstimate            int      `json:"owner_age_estimate" yaml:"owner_age_estimate"`
	SuccessionPlanningMentioned bool     `json:"succession_planning_mentioned" yaml:"succession_planning_mentioned"`
	RecentAdvisorHires          []string `json:"recent_advisor_hires" yaml:"recent_advisor_hires"`
}

// FinancialEstimates are third-party estimates of company financials.
type FinancialEstimates struct {
	RevenueRangeLow  float64  `json:"revenue_range_low" yaml:"revenue_range_low"`
	RevenueRangeHigh float64  `json:"revenue_range_high" yaml:"revenue_range_high"`
	EBITDAMargin     float64  `json:"ebitda_margin" yaml:"ebitda_margin"` // Fraction, e.g. 0.20
	GrowthIndicators []string `json:"growth_indicators" yaml:"growth_indicators"`
}

// MarketData describes the market the company trades in.
type MarketData struct {
	IndustryMultiple   float64  `json:"industry_multiple" yaml:"industry_multiple"`
	RecentAcquisitions []string `json:"recent_acquisitions" yaml:"recent_acquisitions"`
	MarketTrends       []string `json:"market_trends" yaml:"market_trends"`
}

// Enrichment is supplementary data returned by a data source.
type Enrichment struct {
	Source             SourceKind         `json:"source" yaml:"source"`
	OwnerSignals       OwnerSignals       `json:"owner_signals" yaml:"owner_signals"`
	FinancialEstimates FinancialEstimates `json:"financial_estimates" yaml:"financial_estimates"`
	MarketData         MarketData         `json:"market_data" yaml:"market_data"`
	RiskFactors        []string           `json:"risk_factors" yaml:"risk_factors"`
}

// IsEmpty reports whether the enrichment carries no data.
func (e Enrichment) IsEmpty() bool {
	return e.OwnerSignals.OwnerAgeEstimate == 0 &&
		!e.OwnerSignals.SuccessionPlanningMentioned &&
		len(e.OwnerSignals.RecentAdvisorHires) == 0 &&
		e.FinancialEstimates.RevenueRangeLow == 0 &&
		e.FinancialEstimates.RevenueRangeHigh == 0 &&
		e.FinancialEstimates.EBITDAMargin == 0 &&
		len(e.FinancialEstimates.GrowthIndicators) == 0 &&
		e.MarketData.IndustryMultiple == 0 &&
		len(e.MarketData.RecentAcquisitions) == 0 &&
		len(e.MarketData.MarketTrends) == 0 &&
		len(e.RiskFactors) == 0
}
