package source

import (
	"context"

	"github.com/huangsam/acqscore/schema"
)

// SampleLoader returns a fixed set of realistic targets.
type SampleLoader struct{}

// NewSampleLoader returns a loader for the built-in sample targets.
func NewSampleLoader() *SampleLoader {
	return &SampleLoader{}
}

// Load returns a fresh copy of the sample targets.
func (SampleLoader) Load(ctx context.Context) ([]schema.CompanyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SampleCompanies(), nil
}

// SampleCompanies returns the built-in sample targets with stable IDs.
func SampleCompanies() []schema.CompanyRecord {
	companies := []schema.CompanyRecord{
		{
			CompanyName:              "TechFlow Solutions",
			Website:                  "techflowsolutions.com",
			Industry:                 "SaaS",
			Location:                 "Austin, TX",
			Employees:                75,
			YearFounded:              2015,
			Revenue:                  8_500_000,
			EBITDA:                   2_125_000,
			OwnerAge:                 58,
			AskingPrice:              10_000_000,
			RecurringRevenuePct:      85,
			RevenueGrowthRate:        25,
			TopCustomerConcentration: 15,
			HasManagementTeam:        true,
			DocumentedProcesses:      true,
			ActivelySelling:          true,
			YearsOwned:               8,
			SellerWillStay:           true,
		},
		{
			CompanyName:              "Summit HVAC Services",
			Website:                  "summithvac.com",
			Industry:                 "Home Services",
			Location:                 "Denver, CO",
			Employees:                42,
			YearFounded:              1998,
			Revenue:                  6_200_000,
			EBITDA:                   1_100_000,
			OwnerAge:                 64,
			AskingPrice:              4_500_000,
			RecurringRevenuePct:      35,
			RevenueGrowthRate:        8,
			TopCustomerConcentration: 12,
			MarketLeader:             true,
			DocumentedProcesses:      true,
			YearsOwned:               26,
			SellerWillStay:           true,
		},
		{
			CompanyName:              "Precision Parts Manufacturing",
			Website:                  "precisionparts-mfg.com",
			Industry:                 "Manufacturing",
			Location:                 "Cleveland, OH",
			Employees:                110,
			YearFounded:              1985,
			Revenue:                  18_000_000,
			EBITDA:                   2_700_000,
			OwnerAge:                 67,
			AskingPrice:              11_000_000,
			RecurringRevenuePct:      10,
			RevenueGrowthRate:        4,
			TopCustomerConcentration: 45,
			HasManagementTeam:        true,
			DocumentedProcesses:      true,
			ActivelySelling:          true,
			YearsOwned:               30,
		},
		{
			CompanyName:              "BrightPath Dental Group",
			Website:                  "brightpathdental.com",
			Industry:                 "Healthcare",
			Location:                 "Phoenix, AZ",
			Employees:                28,
			YearFounded:              2012,
			Revenue:                  4_100_000,
			EBITDA:                   980_000,
			OwnerAge:                 52,
			AskingPrice:              6_500_000,
			RevenueGrowthRate:        12,
			TopCustomerConcentration: 5,
			HasManagementTeam:        true,
			YearsOwned:               12,
			SellerWillStay:           true,
		},
		{
			CompanyName:              "Nimbus Analytics",
			Website:                  "nimbusanalytics.io",
			Industry:                 "SaaS",
			Location:                 "Seattle, WA",
			Employees:                18,
			YearFounded:              2020,
			Revenue:                  2_400_000,
			EBITDA:                   -300_000,
			OwnerAge:                 38,
			AskingPrice:              9_000_000,
			RecurringRevenuePct:      92,
			RevenueGrowthRate:        60,
			TopCustomerConcentration: 30,
			ActivelySelling:          true,
			YearsOwned:               4,
		},
		{
			CompanyName:              "Coastal Logistics Partners",
			Website:                  "coastallogistics.com",
			Industry:                 "Logistics",
			Location:                 "Savannah, GA",
			Employees:                65,
			YearFounded:              2008,
			Revenue:                  12_500_000,
			EBITDA:                   1_000_000,
			OwnerAge:                 59,
			AskingPrice:              7_000_000,
			RecurringRevenuePct:      20,
			RevenueGrowthRate:        15,
			TopCustomerConcentration: 38,
			HasManagementTeam:        true,
			DocumentedProcesses:      true,
			YearsOwned:               16,
			SellerWillStay:           true,
		},
	}

	for i := range companies {
		companies[i].ID = TargetID(companies[i])
	}
	return companies
}
