package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/acqscore/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readParquet reads every row of a Parquet file written by this package.
func readParquet[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		schema  *parquet.Schema
		columns []string
	}{
		{
			name:   "analysis runs",
			schema: parquet.SchemaOf(new(AnalysisRun)),
			columns: []string{
				"analysis_id", "start_time", "end_time", "run_duration_ms",
				"total_targets_scored", "config_params",
			},
		},
		{
			name:   "target scores",
			schema: parquet.SchemaOf(new(TargetScore)),
			columns: []string{
				"analysis_id", "target_id", "company_name", "industry", "analysis_time", "total_score",
				"score_owner_readiness", "score_financial_health", "score_valuation",
				"score_business_quality", "score_transition_ease", "score_label", "signals",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, col := range tt.columns {
				_, ok := tt.schema.Lookup(col)
				assert.True(t, ok, "column %s should exist", col)
			}
		})
	}
}

func TestWriteAnalysisRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "analysis_runs.parquet")
	data := SampleAnalysisRuns()
	require.NoError(t, WriteAnalysisRunsParquet(data, outputPath))

	readData := readParquet[AnalysisRun](t, outputPath)
	require.Len(t, readData, len(data))

	for i := range data {
		assert.Equal(t, data[i].AnalysisID, readData[i].AnalysisID)
		assert.Equal(t, data[i].TotalTargetsScored, readData[i].TotalTargetsScored)
		assert.WithinDuration(t, data[i].StartTime, readData[i].StartTime, time.Nanosecond)

		if data[i].EndTime == nil {
			assert.Nil(t, readData[i].EndTime)
		} else {
			require.NotNil(t, readData[i].EndTime)
			assert.WithinDuration(t, *data[i].EndTime, *readData[i].EndTime, time.Nanosecond)
		}
		assert.Equal(t, data[i].RunDurationMs, readData[i].RunDurationMs)
		assert.Equal(t, data[i].ConfigParams, readData[i].ConfigParams)
	}
}

func TestWriteTargetScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "target_scores.parquet")
	data := SampleTargetScores()
	require.NoError(t, WriteTargetScoresParquet(data, outputPath))

	readData := readParquet[TargetScore](t, outputPath)
	require.Len(t, readData, len(data))

	for i := range data {
		assert.Equal(t, data[i].TargetID, readData[i].TargetID)
		assert.Equal(t, data[i].CompanyName, readData[i].CompanyName)
		assert.Equal(t, data[i].Industry, readData[i].Industry)
		assert.Equal(t, data[i].TotalScore, readData[i].TotalScore)
		assert.InDelta(t, data[i].ScoreOwnerReadiness, readData[i].ScoreOwnerReadiness, 1e-9)
		assert.InDelta(t, data[i].ScoreValuation, readData[i].ScoreValuation, 1e-9)
		assert.Equal(t, data[i].ScoreLabel, readData[i].ScoreLabel)
		assert.JSONEq(t, data[i].Signals, readData[i].Signals)
	}
}

func TestWriteParquetEmptyData(t *testing.T) {
	dir := t.TempDir()

	runsPath := filepath.Join(dir, "runs.parquet")
	require.NoError(t, WriteAnalysisRunsParquet(nil, runsPath))
	info, err := os.Stat(runsPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size(), "file should contain the schema even if empty")

	scoresPath := filepath.Join(dir, "scores.parquet")
	require.NoError(t, WriteTargetScoresParquet([]TargetScore{}, scoresPath))
	assert.Empty(t, readParquet[TargetScore](t, scoresPath))
}

func TestWriteParquetInvalidPath(t *testing.T) {
	assert.Error(t, WriteAnalysisRunsParquet(SampleAnalysisRuns(), "/nonexistent/directory/runs.parquet"))
	assert.Error(t, WriteTargetScoresParquet(SampleTargetScores(), "/nonexistent/directory/scores.parquet"))
}

func TestConvertRecords(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Second)
	duration := int32(1000)
	config := `{"limit":5}`
	industry := "SaaS"

	runs := ConvertAnalysisRunRecords([]schema.AnalysisRunRecord{{
		AnalysisID:         7,
		StartTime:          start,
		EndTime:            &end,
		RunDurationMs:      &duration,
		TotalTargetsScored: 6,
		ConfigParams:       &config,
	}})
	require.Len(t, runs, 1)
	assert.Equal(t, int64(7), runs[0].AnalysisID)
	assert.Equal(t, int32(6), runs[0].TotalTargetsScored)
	assert.Equal(t, &end, runs[0].EndTime)

	scores := ConvertTargetScoreRecords([]schema.TargetScoreRecord{{
		AnalysisID:          7,
		TargetID:            "id-1",
		CompanyName:         "TechFlow Solutions",
		Industry:            &industry,
		AnalysisTime:        start,
		TotalScore:          74,
		ScoreOwnerReadiness: 0.6,
		ScoreLabel:          "Strong",
		Signals:             "[]",
	}})
	require.Len(t, scores, 1)
	assert.Equal(t, "TechFlow Solutions", scores[0].CompanyName)
	assert.Equal(t, int32(74), scores[0].TotalScore)
	assert.Equal(t, 0.6, scores[0].ScoreOwnerReadiness)
	assert.Equal(t, "SaaS", *scores[0].Industry)

	assert.Empty(t, ConvertAnalysisRunRecords(nil))
	assert.Empty(t, ConvertTargetScoreRecords(nil))
}

func TestSampleData(t *testing.T) {
	runs := SampleAnalysisRuns()
	require.Len(t, runs, 3)
	assert.NotNil(t, runs[0].EndTime)
	assert.Nil(t, runs[2].EndTime, "unfinished run has no end time")
	assert.Nil(t, runs[2].RunDurationMs)
	assert.Nil(t, runs[2].ConfigParams)

	scores := SampleTargetScores()
	require.Len(t, scores, 3)
	assert.Nil(t, scores[2].Industry)
}
