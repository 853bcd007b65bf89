// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteTargets prints ranked target results using the configured output format.
func (ow *OutWriter) WriteTargets(results []schema.TargetResult, cfg *contract.Config, duration time.Duration) error {
	return WriteTargetResults(results, cfg, duration)
}

// WriteWeights prints the scoring model and its active weights using the configured output format.
func (ow *OutWriter) WriteWeights(weights schema.Weights, cfg *contract.Config) error {
	return PrintWeightsDefinitions(weights, cfg)
}

// WriteCompanies prints company records in a format the file loader accepts.
func (ow *OutWriter) WriteCompanies(companies []schema.CompanyRecord, cfg *contract.Config) error {
	return WriteCompanyRecords(companies, cfg)
}
