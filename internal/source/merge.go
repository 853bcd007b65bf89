package source

import "github.com/huangsam/acqscore/schema"

// Merge returns a copy of company with absent fields estimated from e.
// Fields the company already has are never overwritten, including explicit zeros.
func Merge(company schema.CompanyRecord, e schema.Enrichment) schema.CompanyRecord {
	merged := company

	if !company.Has(schema.FieldOwnerAge) && e.OwnerSignals.OwnerAgeEstimate > 0 {
		merged.OwnerAge = e.OwnerSignals.OwnerAgeEstimate
	}

	est := e.FinancialEstimates
	if !company.Has(schema.FieldRevenue) && est.RevenueRangeHigh > 0 {
		merged.Revenue = (est.RevenueRangeLow + est.RevenueRangeHigh) / 2
	}

	if !company.Has(schema.FieldEBITDA) && merged.Revenue > 0 && est.EBITDAMargin > 0 {
		merged.EBITDA = merged.Revenue * est.EBITDAMargin
	}

	return merged
}
