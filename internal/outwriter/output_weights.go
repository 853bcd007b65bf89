package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"
)

// componentDefinitions describes the sub-scorers in evaluation order.
var componentDefinitions = []schema.ComponentDefinition{
	{
		Key:     schema.OwnerReadiness,
		Name:    "Owner Readiness",
		Purpose: "How likely the owner is to sell soon",
		Factors: []string{"Owner age", "Actively selling", "Years owned"},
	},
	{
		Key:     schema.FinancialHealth,
		Name:    "Financial Health",
		Purpose: "Profitability, revenue quality and growth",
		Factors: []string{"EBITDA margin", "Recurring revenue", "Revenue growth"},
	},
	{
		Key:     schema.ValuationReason,
		Name:    "Valuation",
		Purpose: "Whether the asking price is a reasonable EBITDA multiple",
		Factors: []string{"Asking price", "EBITDA"},
	},
	{
		Key:     schema.BusinessQuality,
		Name:    "Business Quality",
		Purpose: "Customer diversification, maturity and market position",
		Factors: []string{"Top customer concentration", "Business age", "Market leader"},
	},
	{
		Key:     schema.TransitionEase,
		Name:    "Transition Ease",
		Purpose: "How smoothly ownership can change hands",
		Factors: []string{"Management team", "Documented processes", "Seller will stay"},
	},
}

// PrintWeightsDefinitions displays the scoring components and the weights in effect.
// This is a static display that does not load or score any targets.
func PrintWeightsDefinitions(weights schema.Weights, cfg *contract.Config) error {
	renderModel := BuildWeightsRenderModel(weights)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, renderModel)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, renderModel)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWeights(w, renderModel)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printWeightsText(w, renderModel)
		}, "Wrote text")
	}
}

// BuildWeightsRenderModel constructs the complete render model with all processed data.
func BuildWeightsRenderModel(weights schema.Weights) *schema.WeightsRenderModel {
	components := make([]schema.ComponentDefinition, len(componentDefinitions))
	for i, def := range componentDefinitions {
		def.Factors = append([]string(nil), def.Factors...)
		def.Weight = weights.Get(def.Key)
		components[i] = def
	}

	return &schema.WeightsRenderModel{
		Title:       "Acquisition Scoring Model",
		Description: "Total = weighted sum of five sub-scores, each clamped to [0,1]",
		Components:  components,
		Formula:     fmt.Sprintf("Total = floor(100 * (%s))", formatWeights(weights)),
		Labels: map[string]string{
			contract.PrimeValue:    ">= 80",
			contract.StrongValue:   ">= 60",
			contract.ModerateValue: ">= 40",
			contract.WeakValue:     "< 40",
		},
	}
}

// formatWeights formats weights for display in formulas.
func formatWeights(weights schema.Weights) string {
	var parts []string
	for _, key := range schema.AllComponents {
		if w := weights.Get(key); w > 0 {
			parts = append(parts, fmt.Sprintf("%.2f*%s", w, componentShortName(key)))
		}
	}
	return strings.Join(parts, " + ")
}

// printWeightsText displays the scoring model in human-readable text format.
func printWeightsText(w io.Writer, renderModel *schema.WeightsRenderModel) error {
	if _, err := fmt.Fprintf(w, "🎯 %s\n", renderModel.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", len(renderModel.Title)+3)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n\n", renderModel.Description); err != nil {
		return err
	}

	for _, c := range renderModel.Components {
		if _, err := fmt.Fprintf(w, "%s (%.2f): %s\n", c.Name, c.Weight, c.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Factors: %s\n\n", strings.Join(c.Factors, ", ")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "📐 %s\n\n", renderModel.Formula); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "🏷️  Labels\n"); err != nil {
		return err
	}
	for _, label := range []string{contract.PrimeValue, contract.StrongValue, contract.ModerateValue, contract.WeakValue} {
		if _, err := fmt.Fprintf(w, "   %-8s %s\n", label, renderModel.Labels[label]); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVWeights writes one row per component.
func writeCSVWeights(w io.Writer, renderModel *schema.WeightsRenderModel) error {
	header := []string{"component", "name", "weight", "purpose", "factors"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range renderModel.Components {
			record := []string{
				string(c.Key),
				c.Name,
				fmt.Sprintf("%.2f", c.Weight),
				c.Purpose,
				strings.Join(c.Factors, "|"),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
