package iocache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/acqscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr bool
	}{
		{"simple", "enrichment_cache", false},
		{"leading underscore", "_cache", false},
		{"mixed case with digits", "Cache2024", false},
		{"empty", "", true},
		{"leading digit", "1cache", true},
		{"hyphen", "enrichment-cache", true},
		{"injection", "cache; DROP TABLE users", true},
		{"quote", `cache"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.table)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, `"scores"`, quoteTableName("scores", schema.SQLiteBackend))
	assert.Equal(t, `"scores"`, quoteTableName("scores", schema.PostgreSQLBackend))
	assert.Equal(t, "`scores`", quoteTableName("scores", schema.MySQLBackend))
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "sqlite", driverName(schema.SQLiteBackend))
	assert.Equal(t, "mysql", driverName(schema.MySQLBackend))
	assert.Equal(t, "pgx", driverName(schema.PostgreSQLBackend))
}

func TestOpenDatabase(t *testing.T) {
	t.Run("sqlite default path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "default.db")
		db, err := openDatabase(schema.SQLiteBackend, "", path)
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		assert.FileExists(t, path)
	})

	t.Run("bad mysql dsn", func(t *testing.T) {
		_, err := openDatabase(schema.MySQLBackend, "not a dsn", "")
		assert.Error(t, err)
	})

	t.Run("unsupported backend", func(t *testing.T) {
		_, err := openDatabase("oracle", "", "")
		assert.Error(t, err)
	})

	t.Run("unreachable sqlite directory", func(t *testing.T) {
		_, err := openDatabase(schema.SQLiteBackend, "/nonexistent/directory/x.db", "")
		assert.Error(t, err)
	})
}

func TestScanTime(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 30, 0, 123, time.UTC)

	var st scanTime
	require.NoError(t, st.Scan(ts))
	assert.True(t, st.Valid)
	assert.Equal(t, ts, st.Time)

	require.NoError(t, st.Scan(ts.Format(time.RFC3339Nano)))
	assert.True(t, ts.Equal(st.Time))

	require.NoError(t, st.Scan([]byte(ts.Format(time.RFC3339Nano))))
	assert.True(t, ts.Equal(st.Time))
	assert.NotNil(t, st.Ptr())

	require.NoError(t, st.Scan(nil))
	assert.False(t, st.Valid)
	assert.Nil(t, st.Ptr())

	assert.Error(t, st.Scan("yesterday"))
	assert.Error(t, st.Scan(42))
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 6, 1, 12, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "2024-06-01T17:30:00Z", formatTime(ts, schema.SQLiteBackend))
	assert.Equal(t, ts, formatTime(ts, schema.PostgreSQLBackend))
}
