package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/acqscore/schema"
)

// Default values for configuration.
const (
	MaxResultLimit       = 1000
	DefaultSourceTimeout = 10 * time.Second
	DefaultEnrichmentTTL = 24 * time.Hour
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "console"
)

// WeightsRawInput holds the custom weights from the YAML config file.
// Use float64 pointers so that omitted components keep their defaults.
type WeightsRawInput struct {
	OwnerReadiness  *float64 `mapstructure:"owner_readiness"`
	FinancialHealth *float64 `mapstructure:"financial_health"`
	ValuationReason *float64 `mapstructure:"valuation_reason"`
	BusinessQuality *float64 `mapstructure:"business_quality"`
	TransitionEase  *float64 `mapstructure:"transition_ease"`
}

// Config holds the runtime configuration for scoring.
// This struct is the "final, validated" config.
type Config struct {
	InputPath   string // Empty means built-in sample targets
	ResultLimit int
	MinScore    int
	SignalCount int // Signals shown per target; 0 shows all
	Workers     int
	Detail      bool
	Explain     bool
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool
	CurrentYear int // Year used for business age (0 = current year)

	// Weights is the validated weight set, computed from defaults + config file + flag overrides
	Weights schema.Weights

	Source          schema.SourceKind
	MergeEnrichment bool
	SourceURL       string
	SourceToken     string // Please use env var as this is plaintext
	SourceTimeout   time.Duration
	EnrichmentTTL   time.Duration

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	LogLevel  string
	LogFormat string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile        string `mapstructure:"output-file"`
	Limit             int    `mapstructure:"limit"`
	Workers           int    `mapstructure:"workers"`
	Output            string `mapstructure:"output"`
	Width             int    `mapstructure:"width"`
	Color             string `mapstructure:"color"`
	Year              int    `mapstructure:"year"`
	WeightsStr        string `mapstructure:"weights-override"`
	Source            string `mapstructure:"source"`
	MergeEnrichment   bool   `mapstructure:"merge-enrichment"`
	SourceURL         string `mapstructure:"source-url"`
	SourceToken       string `mapstructure:"source-token"`
	SourceTimeout     string `mapstructure:"source-timeout"`
	EnrichmentTTL     string `mapstructure:"enrichment-ttl"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"history-backend"`
	AnalysisDBConnect string `mapstructure:"history-db-connect"`
	LogLevel          string `mapstructure:"log-level"`
	LogFormat         string `mapstructure:"log-format"`

	// --- Fields from rankCmd.Flags() ---
	MinScore int  `mapstructure:"min-score"`
	Signals  int  `mapstructure:"signals"`
	Detail   bool `mapstructure:"detail"`
	Explain  bool `mapstructure:"explain"`

	// --- Custom weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processCustomWeights(cfg, input); err != nil {
		return err
	}
	if err := processDataSource(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return processLogging(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- History Backend Validation ---
	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		cfg.AnalysisBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return fmt.Errorf("history-db-connect: %w", err)
	}

	// Cache and history must not share a SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-weight, non-backend fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.InputPath = strings.TrimSpace(input.InputPathStr)
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Explain = input.Explain
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Score and signal filters ---
	if input.MinScore < 0 || input.MinScore > 100 {
		return fmt.Errorf("min-score must be between 0 and 100 (received %d)", input.MinScore)
	}
	cfg.MinScore = input.MinScore

	if input.Signals < 0 {
		return fmt.Errorf("signals must not be negative (received %d)", input.Signals)
	}
	cfg.SignalCount = input.Signals

	if input.Year < 0 {
		return fmt.Errorf("year must not be negative (received %d)", input.Year)
	}
	cfg.CurrentYear = input.Year

	// --- 4. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml", input.Output)
	}

	return nil
}

// ProcessWeightsRawInput merges the provided weights onto the defaults.
// If validateSum is true, the merged weights must be non-negative and sum to 1.0.
func ProcessWeightsRawInput(raw WeightsRawInput, validateSum bool) (schema.Weights, error) {
	weights := schema.DefaultWeights()

	overrides := map[schema.ComponentKey]*float64{
		schema.OwnerReadiness:  raw.OwnerReadiness,
		schema.FinancialHealth: raw.FinancialHealth,
		schema.ValuationReason: raw.ValuationReason,
		schema.BusinessQuality: raw.BusinessQuality,
		schema.TransitionEase:  raw.TransitionEase,
	}
	for _, key := range schema.AllComponents {
		if v := overrides[key]; v != nil {
			weights, _ = weights.With(key, *v)
		}
	}

	if validateSum {
		if err := weights.Validate(); err != nil {
			return schema.Weights{}, fmt.Errorf("custom weights: %w", err)
		}
	}
	return weights, nil
}

// processCustomWeights computes the final weights from defaults, the config file
// and the --weights flag. The flag takes precedence over the config file.
func processCustomWeights(cfg *Config, input *ConfigRawInput) error {
	weights, err := ProcessWeightsRawInput(input.Weights, false)
	if err != nil {
		return err
	}

	if input.WeightsStr != "" {
		parsed, err := parseWeightsString(input.WeightsStr)
		if err != nil {
			return fmt.Errorf("invalid --weights format: %w", err)
		}
		for _, key := range schema.AllComponents {
			if v, ok := parsed[key]; ok {
				weights, _ = weights.With(key, v)
			}
		}
	}

	if err := weights.Validate(); err != nil {
		return fmt.Errorf("custom weights: %w", err)
	}
	cfg.Weights = weights
	return nil
}

// processDataSource validates the enrichment source and its settings.
func processDataSource(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = schema.SourceKind(strings.ToLower(input.Source))
	if cfg.Source == "" {
		cfg.Source = schema.StubSource
	}
	if _, ok := schema.ValidSourceKinds[cfg.Source]; !ok {
		return fmt.Errorf("invalid source '%s'. must be stub, live, none", input.Source)
	}
	cfg.MergeEnrichment = input.MergeEnrichment
	cfg.SourceURL = strings.TrimRight(strings.TrimSpace(input.SourceURL), "/")
	cfg.SourceToken = input.SourceToken

	if cfg.Source == schema.LiveSource && cfg.SourceURL == "" {
		return fmt.Errorf("source-url is required when using the %s source", cfg.Source)
	}

	timeout, err := parseDurationOr(input.SourceTimeout, DefaultSourceTimeout)
	if err != nil {
		return fmt.Errorf("invalid --source-timeout: %w", err)
	}
	cfg.SourceTimeout = timeout

	ttl, err := parseDurationOr(input.EnrichmentTTL, DefaultEnrichmentTTL)
	if err != nil {
		return fmt.Errorf("invalid --enrichment-ttl: %w", err)
	}
	cfg.EnrichmentTTL = ttl

	return nil
}

// processLogging validates the log level and format.
func processLogging(cfg *Config, input *ConfigRawInput) error {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}

	cfg.LogFormat = strings.ToLower(strings.TrimSpace(input.LogFormat))
	if cfg.LogFormat == "" {
		cfg.LogFormat = DefaultLogFormat
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return fmt.Errorf("invalid log format '%s'. must be console, json", input.LogFormat)
	}
	return nil
}

// parseDurationOr parses s as a duration, returning fallback when s is empty.
func parseDurationOr(s string, fallback time.Duration) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}

// componentAliases maps short names accepted by --weights to component keys.
var componentAliases = map[string]schema.ComponentKey{
	"owner":            schema.OwnerReadiness,
	"owner_readiness":  schema.OwnerReadiness,
	"financial":        schema.FinancialHealth,
	"financial_health": schema.FinancialHealth,
	"valuation":        schema.ValuationReason,
	"valuation_reason": schema.ValuationReason,
	"quality":          schema.BusinessQuality,
	"business_quality": schema.BusinessQuality,
	"transition":       schema.TransitionEase,
	"transition_ease":  schema.TransitionEase,
}

// parseWeightsString parses a string like "owner:0.4,financial:0.2,valuation:0.2"
// into a map of ComponentKey to float64.
func parseWeightsString(s string) (map[schema.ComponentKey]float64, error) {
	weights := make(map[schema.ComponentKey]float64)

	if s == "" {
		return weights, nil
	}

	parts := strings.SplitSeq(s, ",")
	for part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid weight format '%s', expected 'component:value'", part)
		}

		nameStr := strings.TrimSpace(keyValue[0])
		valueStr := strings.TrimSpace(keyValue[1])

		key, ok := componentAliases[strings.ToLower(nameStr)]
		if !ok {
			return nil, fmt.Errorf("invalid component '%s', must be owner, financial, valuation, quality, or transition", nameStr)
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight value '%s' for %s: %w", valueStr, key, err)
		}

		weights[key] = value
	}

	return weights, nil
}
