package iocache

import (
	"bytes"
	"testing"
	"time"

	"github.com/huangsam/acqscore/schema"
	"github.com/stretchr/testify/assert"
)

func TestPrintCacheStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
	assert.Equal(t, "Cache Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintCacheStatus(&buf, schema.CacheStatus{
		Backend:         "sqlite",
		Connected:       true,
		TotalEntries:    2,
		LastEntryTime:   time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
		OldestEntryTime: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		TableSizeBytes:  8192,
	})
	out := buf.String()
	assert.Contains(t, out, "Total Entries: 2")
	assert.Contains(t, out, "Last Entry: 2024-06-02 10:00:00")
	assert.Contains(t, out, "Table Size: 8192 bytes")
}

func TestPrintAnalysisStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintAnalysisStatus(&buf, schema.AnalysisStatus{
		Backend:            "sqlite",
		Connected:          true,
		TotalRuns:          3,
		LastRunID:          3,
		TotalTargetsScored: 18,
		TableSizes: map[string]int64{
			targetScoresTable: 18,
			analysisRunsTable: 3,
		},
	})
	out := buf.String()
	assert.Contains(t, out, "History Backend: sqlite")
	assert.Contains(t, out, "Total Targets Scored: 18")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(analysisRunsTable)), bytes.Index(buf.Bytes(), []byte(targetScoresTable)))
}
