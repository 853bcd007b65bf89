package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/internal/parquet"
)

// ExportAnalysis writes the runs and target scores of a history store to two Parquet files
// named after outputFile, reporting progress to w.
func ExportAnalysis(store contract.AnalysisStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no scoring history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total scoring runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total target records: %d\n", status.TableSizes[targetScoresTable])

	runs, err := store.GetAllAnalysisRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve scoring runs: %w", err)
	}
	scores, err := store.GetAllTargetScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve target scores: %w", err)
	}

	parquetRuns := parquet.ConvertAnalysisRunRecords(runs)
	parquetScores := parquet.ConvertTargetScoreRecords(scores)

	runsFile := outputFile + ".analysis_runs.parquet"
	if err := parquet.WriteAnalysisRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write scoring runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d scoring runs to: %s\n", len(parquetRuns), runsFile)

	scoresFile := outputFile + ".target_scores.parquet"
	if err := parquet.WriteTargetScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write target scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d target scores to: %s\n", len(parquetScores), scoresFile)

	return nil
}
