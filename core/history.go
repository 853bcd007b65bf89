package core

import (
	"fmt"
	"time"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"
)

// historyConfigParams captures the settings that shaped a scoring run.
func historyConfigParams(cfg *contract.Config) map[string]any {
	return map[string]any{
		"input_path":       cfg.InputPath,
		"source":           string(cfg.Source),
		"merge_enrichment": cfg.MergeEnrichment,
		"workers":          cfg.Workers,
		"result_limit":     cfg.ResultLimit,
		"min_score":        cfg.MinScore,
		"current_year":     cfg.CurrentYear,
		"weights":          cfg.Weights.AsMap(),
	}
}

// recordHistory stores a run and every scored target when a history store is configured.
// Tracking failures are logged and never fail the run.
func recordHistory(mgr contract.CacheManager, cfg *contract.Config, startTime time.Time, results []schema.TargetResult) {
	if mgr == nil {
		return
	}
	store := mgr.GetAnalysisStore()
	if store == nil {
		return
	}

	analysisID, err := store.BeginAnalysis(startTime, historyConfigParams(cfg))
	if err != nil {
		contract.LogWarn("Scoring history initialization failed", err)
		return
	}
	if analysisID <= 0 {
		return // Tracking disabled
	}

	analysisTime := time.Now()
	recorded := 0
	for _, r := range results {
		if err := store.RecordTargetScore(analysisID, analysisTime, r); err != nil {
			logTrackingError("RecordTargetScore", r.Company.CompanyName, err)
			continue
		}
		recorded++
	}

	if err := store.EndAnalysis(analysisID, time.Now(), recorded); err != nil {
		contract.LogWarn("Failed to finalize scoring history", err)
	}
}

// logTrackingError logs database tracking errors without disrupting scoring.
func logTrackingError(operation, company string, err error) {
	contract.LogWarn(fmt.Sprintf("Scoring history failed for %s on %s", operation, company), err)
}
