package algo

import (
	"fmt"
	"strconv"

	"github.com/huangsam/acqscore/schema"
)

// subScorer maps part of a company record to a raw sub-score and its signals.
type subScorer struct {
	key  schema.ComponentKey
	eval func(c schema.CompanyRecord, currentYear int) (float64, []schema.Signal)
}

// subScorers run in this order, which is also the order of emitted signals.
var subScorers = []subScorer{
	{schema.OwnerReadiness, func(c schema.CompanyRecord, _ int) (float64, []schema.Signal) { return scoreOwnerReadiness(c) }},
	{schema.FinancialHealth, func(c schema.CompanyRecord, _ int) (float64, []schema.Signal) { return scoreFinancialHealth(c) }},
	{schema.ValuationReason, func(c schema.CompanyRecord, _ int) (float64, []schema.Signal) { return scoreValuation(c) }},
	{schema.BusinessQuality, scoreBusinessQuality},
	{schema.TransitionEase, func(c schema.CompanyRecord, _ int) (float64, []schema.Signal) { return scoreTransitionEase(c) }},
}

// Valuation multiple rungs, inclusive upper bounds.
const (
	attractiveMultiple = 4.0
	fairMultiple       = 5.0
	marketMultiple     = 6.0
)

func positive(text string) schema.Signal {
	return schema.Signal{Kind: schema.PositiveSignal, Text: text}
}

func neutral(text string) schema.Signal {
	return schema.Signal{Kind: schema.NeutralSignal, Text: text}
}

func warning(text string) schema.Signal {
	return schema.Signal{Kind: schema.WarningSignal, Text: text}
}

// formatPct renders a percentage without trailing zeros, e.g. 85 or 72.5.
func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// scoreOwnerReadiness evaluates how ready the owner is to sell.
func scoreOwnerReadiness(c schema.CompanyRecord) (float64, []schema.Signal) {
	var score float64
	var signals []schema.Signal

	switch age := c.OwnerAge; {
	case age >= 60:
		score += 0.5
		signals = append(signals, positive(fmt.Sprintf("Owner approaching retirement age (%d)", age)))
	case age >= 55:
		score += 0.3
		signals = append(signals, neutral(fmt.Sprintf("Owner age %d - may consider exit in 5 years", age)))
	case age < 45:
		signals = append(signals, warning(fmt.Sprintf("Young owner (%d) - less likely to sell", age)))
	}

	if c.ActivelySelling {
		score += 0.3
		signals = append(signals, positive("Business actively listed for sale"))
	}

	if c.YearsOwned > 10 {
		score += 0.2
		signals = append(signals, positive(fmt.Sprintf("Long ownership tenure (%d years)", c.YearsOwned)))
	}

	return clamp01(score), signals
}

// scoreFinancialHealth evaluates profitability, revenue quality and growth.
func scoreFinancialHealth(c schema.CompanyRecord) (float64, []schema.Signal) {
	var score float64
	var signals []schema.Signal

	if margin, ok := c.EBITDAMargin(); ok {
		switch {
		case margin >= 25:
			score += 0.4
			signals = append(signals, positive(fmt.Sprintf("%.1f%% EBITDA margin - highly profitable", margin)))
		case margin >= 20:
			score += 0.3
			signals = append(signals, positive(fmt.Sprintf("%.1f%% EBITDA margin - strong profitability", margin)))
		case margin >= 15:
			score += 0.2
			signals = append(signals, neutral(fmt.Sprintf("%.1f%% EBITDA margin - industry average", margin)))
		case margin < 10:
			signals = append(signals, warning(fmt.Sprintf("%.1f%% EBITDA margin - below average", margin)))
		}
	}

	if c.RecurringRevenuePct > 70 {
		score += 0.3
		signals = append(signals, positive(formatPct(c.RecurringRevenuePct)+"% recurring revenue"))
	}

	if c.RevenueGrowthRate > 20 {
		score += 0.3
		signals = append(signals, positive("Consistent "+formatPct(c.RevenueGrowthRate)+"% YoY growth"))
	}

	return clamp01(score), signals
}

// scoreValuation evaluates the asking price as a multiple of EBITDA.
// A positive asking price against non-positive EBITDA has no defined
// multiple and scores zero with a warning.
func scoreValuation(c schema.CompanyRecord) (float64, []schema.Signal) {
	if c.AskingPrice <= 0 {
		return 0, nil
	}

	multiple, ok := c.ValuationMultiple()
	if !ok {
		return 0, []schema.Signal{warning("Valuation multiple undefined: EBITDA is not positive")}
	}

	switch {
	case multiple <= attractiveMultiple:
		return 1.0, []schema.Signal{positive(fmt.Sprintf("Attractive valuation at %.1fx EBITDA", multiple))}
	case multiple <= fairMultiple:
		return 0.7, []schema.Signal{neutral(fmt.Sprintf("Fair valuation at %.1fx EBITDA", multiple))}
	case multiple <= marketMultiple:
		return 0.5, []schema.Signal{neutral(fmt.Sprintf("Market valuation at %.1fx EBITDA", multiple))}
	default:
		return 0.2, []schema.Signal{warning(fmt.Sprintf("High valuation at %.1fx EBITDA", multiple))}
	}
}

// scoreBusinessQuality evaluates customer diversity, maturity and market position.
// An absent founding year counts as founded this year.
func scoreBusinessQuality(c schema.CompanyRecord, currentYear int) (float64, []schema.Signal) {
	var score float64
	var signals []schema.Signal

	switch concentration := c.TopCustomerConcentration; {
	case concentration < 20:
		score += 0.3
		signals = append(signals, positive("Well-diversified customer base"))
	case concentration > 40:
		signals = append(signals, warning("High customer concentration (top 3 = "+formatPct(concentration)+"%)"))
	}

	founded := c.YearFounded
	if founded == 0 {
		founded = currentYear
	}
	switch age := currentYear - founded; {
	case age >= 10:
		score += 0.4
		signals = append(signals, positive(fmt.Sprintf("Established business (%d years)", age)))
	case age >= 5:
		score += 0.2
	}

	if c.MarketLeader {
		score += 0.3
		signals = append(signals, positive("Market leader in their niche"))
	}

	return clamp01(score), signals
}

// scoreTransitionEase evaluates how smoothly ownership could change hands.
func scoreTransitionEase(c schema.CompanyRecord) (float64, []schema.Signal) {
	var score float64
	var signals []schema.Signal

	if c.HasManagementTeam {
		score += 0.5
		signals = append(signals, positive("Strong management team in place"))
	} else {
		signals = append(signals, warning("Owner-dependent business"))
	}

	if c.DocumentedProcesses {
		score += 0.3
		signals = append(signals, positive("Well-documented processes and systems"))
	}

	if c.SellerWillStay {
		score += 0.2
		signals = append(signals, positive("Seller willing to stay for transition"))
	}

	return clamp01(score), signals
}
