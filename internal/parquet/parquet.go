// Package parquet exports acqscore scoring history to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/acqscore/schema"
	"github.com/parquet-go/parquet-go"
)

// AnalysisRun represents a single scoring run with metadata.
// This struct maps to the acqscore_analysis_runs database table.
type AnalysisRun struct {
	AnalysisID int64 `parquet:"analysis_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	RunDurationMs      *int32 `parquet:"run_duration_ms,optional,snappy"`
	TotalTargetsScored int32  `parquet:"total_targets_scored,snappy"`

	// ConfigParams contains the JSON-encoded weights and options of the run (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// TargetScore represents the score of one target in a run.
// This struct maps to the acqscore_target_scores database table.
type TargetScore struct {
	AnalysisID   int64     `parquet:"analysis_id,snappy"`
	TargetID     string    `parquet:"target_id,snappy"`
	CompanyName  string    `parquet:"company_name,snappy"`
	Industry     *string   `parquet:"industry,optional,snappy"`
	AnalysisTime time.Time `parquet:"analysis_time,snappy"`
	TotalScore   int32     `parquet:"total_score,snappy"`

	// Component scores are the clamped sub-scores in [0, 1], before weighting
	ScoreOwnerReadiness  float64 `parquet:"score_owner_readiness,snappy"`
	ScoreFinancialHealth float64 `parquet:"score_financial_health,snappy"`
	ScoreValuation       float64 `parquet:"score_valuation,snappy"`
	ScoreBusinessQuality float64 `parquet:"score_business_quality,snappy"`
	ScoreTransitionEase  float64 `parquet:"score_transition_ease,snappy"`

	ScoreLabel string `parquet:"score_label,snappy,dict"`

	// Signals is the JSON-encoded list of signals
	Signals string `parquet:"signals,snappy"`
}

// writeParquet writes rows to a new Parquet file, inferring the schema from T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// WriteAnalysisRunsParquet writes a slice of AnalysisRun structs to a Parquet file.
func WriteAnalysisRunsParquet(data []AnalysisRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTargetScoresParquet writes a slice of TargetScore structs to a Parquet file.
func WriteTargetScoresParquet(data []TargetScore, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertAnalysisRunRecords converts schema.AnalysisRunRecord to AnalysisRun for Parquet export.
func ConvertAnalysisRunRecords(records []schema.AnalysisRunRecord) []AnalysisRun {
	result := make([]AnalysisRun, len(records))
	for i, record := range records {
		result[i] = AnalysisRun{
			AnalysisID:         record.AnalysisID,
			StartTime:          record.StartTime,
			EndTime:            record.EndTime,
			RunDurationMs:      record.RunDurationMs,
			TotalTargetsScored: record.TotalTargetsScored,
			ConfigParams:       record.ConfigParams,
		}
	}
	return result
}

// ConvertTargetScoreRecords converts schema.TargetScoreRecord to TargetScore for Parquet export.
func ConvertTargetScoreRecords(records []schema.TargetScoreRecord) []TargetScore {
	result := make([]TargetScore, len(records))
	for i, record := range records {
		result[i] = TargetScore{
			AnalysisID:           record.AnalysisID,
			TargetID:             record.TargetID,
			CompanyName:          record.CompanyName,
			Industry:             record.Industry,
			AnalysisTime:         record.AnalysisTime,
			TotalScore:           record.TotalScore,
			ScoreOwnerReadiness:  record.ScoreOwnerReadiness,
			ScoreFinancialHealth: record.ScoreFinancialHealth,
			ScoreValuation:       record.ScoreValuation,
			ScoreBusinessQuality: record.ScoreBusinessQuality,
			ScoreTransitionEase:  record.ScoreTransitionEase,
			ScoreLabel:           record.ScoreLabel,
			Signals:              record.Signals,
		}
	}
	return result
}

// SampleAnalysisRuns generates example AnalysisRun data for demonstration.
// The last run is unfinished, so its nullable fields are nil.
func SampleAnalysisRuns() []AnalysisRun {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := startTime1.Add(850 * time.Millisecond)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"limit":5,"source":"stub","weights":{"owner_readiness":0.25,"financial_health":0.25,"valuation_reason":0.2,"business_quality":0.15,"transition_ease":0.15}}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := startTime2.Add(2 * time.Second)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"limit":10,"source":"live"}`

	return []AnalysisRun{
		{
			AnalysisID:         1,
			StartTime:          startTime1,
			EndTime:            &endTime1,
			RunDurationMs:      &durationMs1,
			TotalTargetsScored: 6,
			ConfigParams:       &configParams1,
		},
		{
			AnalysisID:         2,
			StartTime:          startTime2,
			EndTime:            &endTime2,
			RunDurationMs:      &durationMs2,
			TotalTargetsScored: 40,
			ConfigParams:       &configParams2,
		},
		{
			AnalysisID: 3,
			StartTime:  now.Add(-10 * time.Minute),
		},
	}
}

// SampleTargetScores generates example TargetScore data for demonstration.
func SampleTargetScores() []TargetScore {
	now := time.Now()
	saas := "SaaS"
	hvac := "HVAC"

	return []TargetScore{
		{
			AnalysisID:           1,
			TargetID:             "6f1c1b52-5a0e-5d55-9c8a-1b7a4cf3a001",
			CompanyName:          "TechFlow Solutions",
			Industry:             &saas,
			AnalysisTime:         now.Add(-2 * time.Hour),
			TotalScore:           74,
			ScoreOwnerReadiness:  0.6,
			ScoreFinancialHealth: 1,
			ScoreValuation:       0.9,
			ScoreBusinessQuality: 0.6,
			ScoreTransitionEase:  0.6,
			ScoreLabel:           "Strong",
			Signals:              `[{"kind":"positive","text":"Excellent EBITDA margin (25%)"}]`,
		},
		{
			AnalysisID:           1,
			TargetID:             "6f1c1b52-5a0e-5d55-9c8a-1b7a4cf3a002",
			CompanyName:          "Summit HVAC Services",
			Industry:             &hvac,
			AnalysisTime:         now.Add(-2 * time.Hour),
			TotalScore:           63,
			ScoreOwnerReadiness:  0.8,
			ScoreFinancialHealth: 0.5,
			ScoreValuation:       0.6,
			ScoreBusinessQuality: 0.6,
			ScoreTransitionEase:  0.5,
			ScoreLabel:           "Strong",
			Signals:              `[{"kind":"positive","text":"Owner at typical retirement age (64)"}]`,
		},
		{
			AnalysisID:   2,
			TargetID:     "6f1c1b52-5a0e-5d55-9c8a-1b7a4cf3a003",
			CompanyName:  "Unknown Target",
			AnalysisTime: now.Add(-24 * time.Hour),
			TotalScore:   4,
			ScoreLabel:   "Weak",
			Signals:      `[]`,
		},
	}
}
