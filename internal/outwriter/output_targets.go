package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const (
	componentContribMinimum = 0.5
	topNComponents          = 3
)

// componentShortNames are the labels used in the explain column.
var componentShortNames = map[schema.ComponentKey]string{
	schema.OwnerReadiness:  "owner",
	schema.FinancialHealth: "financial",
	schema.ValuationReason: "valuation",
	schema.BusinessQuality: "quality",
	schema.TransitionEase:  "transition",
}

// WriteTargetResults outputs the ranked targets, dispatching based on the output format configured.
func WriteTargetResults(results []schema.TargetResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(2)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichTargets(results))
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.YAMLOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, schema.EnrichTargets(results))
		}, "Wrote YAML"); err != nil {
			return fmt.Errorf("error writing YAML output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTargetCSV(w, results, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTargetTable(w, results, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeTargetTable generates and writes the human-readable table.
func writeTargetTable(writer io.Writer, results []schema.TargetResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Company", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Industry", "Revenue", "Asking", "Multiple")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	headers = append(headers, "Signals")
	table.Header(headers)

	// 2. Right-align numbers by default, like the rest of our tables
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for i, r := range results {
		label := schema.GetPlainLabel(r.Total)
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Total)
		}
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(r.Company.CompanyName, nameWidth),
			strconv.Itoa(r.Total),
			label,
		}
		if cfg.Detail {
			row = append(
				row,
				orDash(r.Company.Industry),
				schema.FormatMoney(r.Company.Revenue),
				schema.FormatMoney(r.Company.AskingPrice),
				schema.FormatMultiple(r.Company),
			)
		}
		if cfg.Explain {
			row = append(row, formatTopComponents(r.ScoreResult))
		}
		row = append(row, formatSignals(schema.TopSignals(r.Signals, cfg.SignalCount), cfg.UseColors))
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing top %d targets (average score: %.1f)\n", len(results), averageTotal(results)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scoring completed in %v with %d workers. Enrichment source: %s\n", duration, cfg.Workers, cfg.Source); err != nil {
		return err
	}
	return nil
}

// writeTargetCSV writes the ranked targets in CSV format, one row per target.
func writeTargetCSV(w io.Writer, results []schema.TargetResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"rank", "id", "company_name", "score", "label"}
	for _, key := range schema.AllComponents {
		header = append(header, string(key))
	}
	header = append(header, "industry", "revenue", "ebitda", "asking_price", "multiple", "signals")

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.Company.ID,
				r.Company.CompanyName,
				fmt.Sprintf(intFmt, r.Total),
				schema.GetPlainLabel(r.Total),
			}
			for _, key := range schema.AllComponents {
				c, _ := r.Component(key)
				rec = append(rec, fmtFloat(c.Score))
			}
			multiple := ""
			if m, ok := r.Company.ValuationMultiple(); ok {
				multiple = fmtFloat(m)
			}
			rec = append(
				rec,
				r.Company.Industry,
				strconv.FormatFloat(r.Company.Revenue, 'f', -1, 64),
				strconv.FormatFloat(r.Company.EBITDA, 'f', -1, 64),
				strconv.FormatFloat(r.Company.AskingPrice, 'f', -1, 64),
				multiple,
				schema.JoinSignals(r.Signals, "|"),
			)
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatSignals renders signals one per line with their kind marker.
func formatSignals(signals []schema.Signal, useColors bool) string {
	if len(signals) == 0 {
		return "-"
	}
	lines := make([]string, len(signals))
	for i, s := range signals {
		lines[i] = contract.FormatSignal(s, useColors)
	}
	return strings.Join(lines, "\n")
}

// formatTopComponents lists the components that contribute most to the total.
func formatTopComponents(r schema.ScoreResult) string {
	var comps []schema.ComponentScore
	for _, c := range r.Components {
		if c.Contribution >= componentContribMinimum {
			comps = append(comps, c)
		}
	}
	if len(comps) == 0 {
		return "Not applicable"
	}

	sort.SliceStable(comps, func(i, j int) bool {
		return math.Abs(comps[i].Contribution) > math.Abs(comps[j].Contribution)
	})

	limit := min(len(comps), topNComponents)
	parts := make([]string, 0, limit)
	for _, c := range comps[:limit] {
		parts = append(parts, fmt.Sprintf("%s %.0f", componentShortName(c.Key), c.Contribution))
	}
	return strings.Join(parts, " > ")
}

// componentShortName returns the explain label for key.
func componentShortName(key schema.ComponentKey) string {
	if name, ok := componentShortNames[key]; ok {
		return name
	}
	return string(key)
}

// averageTotal returns the mean total score, or zero for no results.
func averageTotal(results []schema.TargetResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum int
	for _, r := range results {
		sum += r.Total
	}
	return float64(sum) / float64(len(results))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
