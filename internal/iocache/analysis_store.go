package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"
)

// Table names for scoring history.
const (
	analysisRunsTable = "acqscore_analysis_runs"
	targetScoresTable = "acqscore_target_scores"
)

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, err := openDatabase(backend, connStr, GetAnalysisDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &AnalysisStoreImpl{db: db, backend: backend}, nil
}

// placeholders returns n bind parameter markers for the backend.
func (as *AnalysisStoreImpl) placeholders(n int) []any {
	out := make([]any, n)
	for i := range n {
		if as.backend == schema.PostgreSQLBackend {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

// BeginAnalysis creates a new scoring run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error) {
	if as.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING analysis_id`, quotedTableName)
		err = as.db.QueryRow(query, startTime, string(configJSON)).Scan(&analysisID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, formatTime(startTime, as.backend), string(configJSON))
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return analysisID, nil
}

// EndAnalysis updates the scoring run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalTargets int) error {
	if as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	p := as.placeholders(4)

	var startTime scanTime
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, quotedTableName, p[0])
	if err := as.db.QueryRow(query, analysisID).Scan(&startTime); err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}

	durationMs := endTime.Sub(startTime.Time).Milliseconds()

	updateQuery := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, total_targets_scored = %s WHERE analysis_id = %s`,
		quotedTableName, p[0], p[1], p[2], p[3])
	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalTargets, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}

	return nil
}

// RecordTargetScore stores the total, component scores and signals for one target.
func (as *AnalysisStoreImpl) RecordTargetScore(analysisID int64, analysisTime time.Time, result schema.TargetResult) error {
	if as.db == nil {
		return nil
	}

	signals := result.Signals
	if signals == nil {
		signals = []schema.Signal{}
	}
	signalsJSON, err := json.Marshal(signals)
	if err != nil {
		return fmt.Errorf("failed to marshal signals: %w", err)
	}

	var industry *string
	if result.Company.Industry != "" {
		industry = &result.Company.Industry
	}

	component := func(key schema.ComponentKey) float64 {
		c, _ := result.Component(key)
		return c.Score
	}

	p := as.placeholders(13)
	query := fmt.Sprintf(`
		INSERT INTO %s (analysis_id, target_id, company_name, industry, analysis_time, total_score,
		                score_owner_readiness, score_financial_health, score_valuation,
		                score_business_quality, score_transition_ease, score_label, signals)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
	`, append([]any{quoteTableName(targetScoresTable, as.backend)}, p...)...)

	_, err = as.db.Exec(query,
		analysisID, result.Company.ID, result.Company.CompanyName, industry,
		formatTime(analysisTime, as.backend), result.Total,
		component(schema.OwnerReadiness), component(schema.FinancialHealth), component(schema.ValuationReason),
		component(schema.BusinessQuality), component(schema.TransitionEase),
		schema.GetPlainLabel(result.Total), string(signalsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert target score: %w", err)
	}

	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}
	if as.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(analysisRunsTable, as.backend)

	row := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable))
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		var lastRunTime, oldestRunTime scanTime
		row = as.db.QueryRow(fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runsTable))
		if err := row.Scan(&status.LastRunID, &lastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		status.LastRunTime = lastRunTime.Time

		row = as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runsTable))
		if err := row.Scan(&oldestRunTime); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime.Time

		row = as.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_targets_scored), 0) FROM %s", runsTable))
		if err := row.Scan(&status.TotalTargetsScored); err != nil {
			return status, fmt.Errorf("failed to get total targets scored: %w", err)
		}
	}

	for _, table := range []string{analysisRunsTable, targetScoresTable} {
		var count int64
		row = as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all scoring runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT analysis_id, start_time, end_time, run_duration_ms, total_targets_scored, config_params FROM %s ORDER BY analysis_id",
		quoteTableName(analysisRunsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		var startTime, endTime scanTime
		var totalTargets sql.NullInt32
		if err := rows.Scan(&record.AnalysisID, &startTime, &endTime, &record.RunDurationMs, &totalTargets, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		record.StartTime = startTime.Time
		record.EndTime = endTime.Ptr()
		record.TotalTargetsScored = totalTargets.Int32
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}

	return results, nil
}

// GetAllTargetScores retrieves all recorded target scores from the store.
func (as *AnalysisStoreImpl) GetAllTargetScores() ([]schema.TargetScoreRecord, error) {
	if as.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, target_id, company_name, industry, analysis_time, total_score,
		score_owner_readiness, score_financial_health, score_valuation,
		score_business_quality, score_transition_ease, score_label, signals
		FROM %s ORDER BY analysis_id, total_score DESC, company_name`, quoteTableName(targetScoresTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query target scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.TargetScoreRecord
	for rows.Next() {
		var record schema.TargetScoreRecord
		var analysisTime scanTime
		if err := rows.Scan(&record.AnalysisID, &record.TargetID, &record.CompanyName, &record.Industry,
			&analysisTime, &record.TotalScore,
			&record.ScoreOwnerReadiness, &record.ScoreFinancialHealth, &record.ScoreValuation,
			&record.ScoreBusinessQuality, &record.ScoreTransitionEase, &record.ScoreLabel, &record.Signals); err != nil {
			return nil, fmt.Errorf("failed to scan target score: %w", err)
		}
		record.AnalysisTime = analysisTime.Time
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating target scores: %w", err)
	}

	return results, nil
}
