package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"
	"go.uber.org/zap"
)

// enrichmentCacheVersion invalidates cached responses when the payload shape changes.
const enrichmentCacheVersion = 1

// maxResponseBytes caps the size of an enrichment response.
const maxResponseBytes = 1 << 20

// ErrTargetNotFound is returned when the live API has no data for a company.
var ErrTargetNotFound = errors.New("target not found")

// LiveOptions configures a LiveSource.
type LiveOptions struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	TTL     time.Duration
	Cache   contract.CacheStore // Optional
}

// LiveSource fetches enrichment from an HTTP API and caches the responses.
type LiveSource struct {
	baseURL string
	token   string
	client  *http.Client
	cache   contract.CacheStore
	ttl     time.Duration
	now     func() time.Time
}

// NewLiveSource returns a data source that calls {BaseURL}/companies/enrich.
func NewLiveSource(opts LiveOptions) *LiveSource {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = contract.DefaultSourceTimeout
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = contract.DefaultEnrichmentTTL
	}
	return &LiveSource{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		client:  &http.Client{Timeout: timeout},
		cache:   opts.Cache,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Kind identifies the live source.
func (s *LiveSource) Kind() schema.SourceKind {
	return schema.LiveSource
}

// Enrich returns cached enrichment when fresh, otherwise calls the API.
func (s *LiveSource) Enrich(ctx context.Context, company schema.CompanyRecord) (schema.Enrichment, error) {
	key := enrichmentCacheKey(company)
	log := contract.Logger().With(zap.String("company", company.CompanyName))

	if e, ok := s.fromCache(key); ok {
		log.Debug("enrichment cache hit")
		return e, nil
	}
	log.Debug("enrichment cache miss")

	e, err := s.fetch(ctx, company)
	if err != nil {
		return schema.Enrichment{}, err
	}
	s.toCache(key, e)
	return e, nil
}

// fetch calls the enrichment endpoint for one company.
func (s *LiveSource) fetch(ctx context.Context, company schema.CompanyRecord) (schema.Enrichment, error) {
	query := url.Values{}
	query.Set("name", company.CompanyName)
	if company.Website != "" {
		query.Set("website", company.Website)
	}
	endpoint := s.baseURL + "/companies/enrich?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return schema.Enrichment{}, fmt.Errorf("building enrichment request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return schema.Enrichment{}, fmt.Errorf("calling enrichment API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return schema.Enrichment{}, fmt.Errorf("%w: %s", ErrTargetNotFound, company.CompanyName)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return schema.Enrichment{}, fmt.Errorf("enrichment API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var e schema.Enrichment
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&e); err != nil {
		return schema.Enrichment{}, fmt.Errorf("decoding enrichment response: %w", err)
	}
	e.Source = schema.LiveSource
	return e, nil
}

// fromCache returns a cached enrichment when it is present, current and fresh.
func (s *LiveSource) fromCache(key string) (schema.Enrichment, bool) {
	if s.cache == nil {
		return schema.Enrichment{}, false
	}
	value, version, ts, err := s.cache.Get(key)
	if err != nil || version != enrichmentCacheVersion {
		return schema.Enrichment{}, false
	}
	if s.now().Sub(time.Unix(ts, 0)) > s.ttl {
		return schema.Enrichment{}, false
	}
	var e schema.Enrichment
	if err := json.Unmarshal(value, &e); err != nil {
		return schema.Enrichment{}, false
	}
	return e, true
}

// toCache stores an enrichment; failures only cost a future API call.
func (s *LiveSource) toCache(key string, e schema.Enrichment) {
	if s.cache == nil {
		return
	}
	value, err := json.Marshal(e)
	if err != nil {
		contract.LogWarn("encoding enrichment for cache", err)
		return
	}
	if err := s.cache.Set(key, value, enrichmentCacheVersion, s.now().Unix()); err != nil {
		contract.LogWarn("writing enrichment cache", err)
	}
}

// enrichmentCacheKey identifies a company in the enrichment cache.
func enrichmentCacheKey(c schema.CompanyRecord) string {
	return "enrich:" + strings.ToLower(strings.TrimSpace(c.CompanyName)) + "|" + strings.ToLower(strings.TrimSpace(c.Website))
}
