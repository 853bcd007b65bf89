package schema

import "time"

// AnalysisRunRecord represents a row from the acqscore_analysis_runs table.
type AnalysisRunRecord struct {
	AnalysisID         int64
	StartTime          time.Time
	EndTime            *time.Time
	RunDurationMs      *int32
	TotalTargetsScored int32
	ConfigParams       *string
}

// TargetScoreRecord represents a row from the acqscore_target_scores table.
type TargetScoreRecord struct {
	AnalysisID           int64
	TargetID             string
	CompanyName          string
	Industry             *string
	AnalysisTime         time.Time
	TotalScore           int32
	ScoreOwnerReadiness  float64
	ScoreFinancialHealth float64
	ScoreValuation       float64
	ScoreBusinessQuality float64
	ScoreTransitionEase  float64
	ScoreLabel           string
	Signals              string // JSON-encoded []Signal
}
