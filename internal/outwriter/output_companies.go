package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"
)

// companyCSVHeader matches the snake_case field names the CSV loader reads.
var companyCSVHeader = []string{
	"id", "company_name", "website", "industry", "location", "employees",
	"owner_age", "years_owned", "actively_selling",
	"revenue", "ebitda", "recurring_revenue_pct", "revenue_growth_rate", "asking_price",
	"top_customer_concentration", "year_founded", "market_leader",
	"has_management_team", "documented_processes", "seller_will_stay",
}

// WriteCompanyRecords writes company records as JSON, CSV or YAML.
// Text output is YAML, the most readable of the loadable formats.
func WriteCompanyRecords(companies []schema.CompanyRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, companies)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCompanyCSV(w, companies)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, companies)
		}, "Wrote YAML")
	}
}

// writeCompanyCSV writes one row per company. Zero values are left blank.
func writeCompanyCSV(w io.Writer, companies []schema.CompanyRecord) error {
	return writeCSVWithHeader(w, companyCSVHeader, func(cw *csv.Writer) error {
		for _, c := range companies {
			rec := []string{
				c.ID, c.CompanyName, c.Website, c.Industry, c.Location, csvInt(c.Employees),
				csvInt(c.OwnerAge), csvInt(c.YearsOwned), csvBool(c.ActivelySelling),
				csvFloat(c.Revenue), csvFloat(c.EBITDA), csvFloat(c.RecurringRevenuePct), csvFloat(c.RevenueGrowthRate), csvFloat(c.AskingPrice),
				csvFloat(c.TopCustomerConcentration), csvInt(c.YearFounded), csvBool(c.MarketLeader),
				csvBool(c.HasManagementTeam), csvBool(c.DocumentedProcesses), csvBool(c.SellerWillStay),
			}
			if err := cw.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}

func csvInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func csvFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func csvBool(v bool) string {
	return strconv.FormatBool(v)
}
