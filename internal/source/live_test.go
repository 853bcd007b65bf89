package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/huangsam/acqscore/internal/iocache"
	"github.com/huangsam/acqscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var liveEnrichment = schema.Enrichment{
	OwnerSignals:       schema.OwnerSignals{OwnerAgeEstimate: 63},
	FinancialEstimates: schema.FinancialEstimates{RevenueRangeLow: 1e6, RevenueRangeHigh: 3e6, EBITDAMargin: 0.15},
	MarketData:         schema.MarketData{IndustryMultiple: 5.2},
	RiskFactors:        []string{"Single location"},
}

// newEnrichServer serves liveEnrichment and counts requests.
func newEnrichServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/companies/enrich", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "Summit HVAC", r.URL.Query().Get("name"))
		assert.Equal(t, "summithvac.com", r.URL.Query().Get("website"))
		if status != http.StatusOK {
			http.Error(w, "nope", status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(liveEnrichment)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

var summit = schema.CompanyRecord{CompanyName: "Summit HVAC", Website: "summithvac.com"}

func TestLiveSourceFetch(t *testing.T) {
	srv, hits := newEnrichServer(t, http.StatusOK)
	s := NewLiveSource(LiveOptions{BaseURL: srv.URL + "/", Token: "secret", Timeout: time.Second})

	e, err := s.Enrich(context.Background(), summit)
	require.NoError(t, err)
	assert.Equal(t, schema.LiveSource, e.Source)
	assert.Equal(t, 63, e.OwnerSignals.OwnerAgeEstimate)
	assert.Equal(t, 5.2, e.MarketData.IndustryMultiple)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, schema.LiveSource, s.Kind())
}

func TestLiveSourceErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		srv, _ := newEnrichServer(t, http.StatusNotFound)
		s := NewLiveSource(LiveOptions{BaseURL: srv.URL, Token: "secret"})
		_, err := s.Enrich(context.Background(), summit)
		assert.ErrorIs(t, err, ErrTargetNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		srv, _ := newEnrichServer(t, http.StatusInternalServerError)
		s := NewLiveSource(LiveOptions{BaseURL: srv.URL, Token: "secret"})
		_, err := s.Enrich(context.Background(), summit)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("bad payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		}))
		t.Cleanup(srv.Close)
		s := NewLiveSource(LiveOptions{BaseURL: srv.URL})
		_, err := s.Enrich(context.Background(), summit)
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv, _ := newEnrichServer(t, http.StatusOK)
		s := NewLiveSource(LiveOptions{BaseURL: srv.URL, Token: "secret"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := s.Enrich(ctx, summit)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLiveSourceCache(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	key := enrichmentCacheKey(summit)
	cached := liveEnrichment
	cached.Source = schema.LiveSource
	payload, err := json.Marshal(cached)
	require.NoError(t, err)

	t.Run("fresh hit skips the API", func(t *testing.T) {
		srv, hits := newEnrichServer(t, http.StatusOK)
		store := new(iocache.MockCacheStore)
		store.On("Get", key).Return(payload, enrichmentCacheVersion, now.Add(-time.Hour).Unix(), nil)

		s := NewLiveSource(LiveOptions{BaseURL: srv.URL, Token: "secret", Cache: store, TTL: 24 * time.Hour})
		s.now = func() time.Time { return now }

		e, err := s.Enrich(context.Background(), summit)
		require.NoError(t, err)
		assert.Equal(t, cached, e)
		assert.Zero(t, hits.Load())
		store.AssertExpectations(t)
	})

	t.Run("stale entry is refreshed", func(t *testing.T) {
		srv, hits := newEnrichServer(t, http.StatusOK)
		store := new(iocache.MockCacheStore)
		store.On("Get", key).Return(payload, enrichmentCacheVersion, now.Add(-48*time.Hour).Unix(), nil)
		store.On("Set", key, mock.Anything, enrichmentCacheVersion, now.Unix()).Return(nil)

		s := NewLiveSource(LiveOptions{BaseURL: srv.URL, Token: "secret", Cache: store, TTL: 24 * time.Hour})
		s.now = func() time.Time { return now }

		_, err := s.Enrich(context.Background(), summit)
		require.NoError(t, err)
		assert.Equal(t, int32(1), hits.Load())
		store.AssertExpectations(t)
	})

	t.Run("miss is fetched and stored", func(t *testing.T) {
		srv, hits := newEnrichServer(t, http.StatusOK)
		store := new(iocache.MockCacheStore)
		store.On("Get", key).Return([]byte(nil), 0, int64(0), sql.ErrNoRows)
		store.On("Set", key, mock.Anything, enrichmentCacheVersion, mock.Anything).Return(nil)

		s := NewLiveSource(LiveOptions{BaseURL: srv.URL, Token: "secret", Cache: store})
		_, err := s.Enrich(context.Background(), summit)
		require.NoError(t, err)
		assert.Equal(t, int32(1), hits.Load())
		store.AssertExpectations(t)
	})

	t.Run("old version is ignored", func(t *testing.T) {
		srv, hits := newEnrichServer(t, http.StatusOK)
		store := new(iocache.MockCacheStore)
		store.On("Get", key).Return(payload, enrichmentCacheVersion+1, now.Unix(), nil)
		store.On("Set", key, mock.Anything, enrichmentCacheVersion, now.Unix()).Return(sql.ErrConnDone)

		s := NewLiveSource(LiveOptions{BaseURL: srv.URL, Token: "secret", Cache: store})
		s.now = func() time.Time { return now }

		_, err := s.Enrich(context.Background(), summit)
		require.NoError(t, err, "cache write failures must not fail enrichment")
		assert.Equal(t, int32(1), hits.Load())
	})
}

func TestEnrichmentCacheKey(t *testing.T) {
	assert.Equal(t, "enrich:summit hvac|summithvac.com", enrichmentCacheKey(schema.CompanyRecord{CompanyName: " Summit HVAC ", Website: "SummitHVAC.com"}))
}
