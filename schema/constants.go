package schema

// Custom string types for type safety.
type (
	// ComponentKey identifies one of the five sub-scorers.
	ComponentKey string

	// SignalKind classifies a signal emitted during scoring.
	SignalKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string

	// SourceKind represents the enrichment data source variant.
	SourceKind string
)

// Component keys in evaluation order.
const (
	OwnerReadiness  ComponentKey = "owner_readiness"
	FinancialHealth ComponentKey = "financial_health"
	ValuationReason ComponentKey = "valuation_reason"
	BusinessQuality ComponentKey = "business_quality"
	TransitionEase  ComponentKey = "transition_ease"
)

// All signal kinds supported.
const (
	PositiveSignal SignalKind = "positive"
	NeutralSignal  SignalKind = "neutral"
	WarningSignal  SignalKind = "warning"
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	YAMLOut OutputMode = "yaml"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All enrichment sources supported.
const (
	StubSource SourceKind = "stub" // default
	LiveSource SourceKind = "live"
	NoneSource SourceKind = "none"
)

// AllComponents lists the sub-scorers in the order they are evaluated.
var AllComponents = []ComponentKey{
	OwnerReadiness,
	FinancialHealth,
	ValuationReason,
	BusinessQuality,
	TransitionEase,
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
	YAMLOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidSourceKinds lists all valid enrichment sources.
var ValidSourceKinds = map[SourceKind]struct{}{
	StubSource: {},
	LiveSource: {},
	NoneSource: {},
}

// Defaults shared by the CLI, the MCP server and library callers.
const (
	DefaultResultLimit = 5
	DefaultSignalCount = 3
	DefaultWorkers     = 4
)
