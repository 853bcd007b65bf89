// Package schema has configs, models and constants for all parts of acqscore.
package schema

// CompanyRecord is the input for one acquisition target.
// Every field is optional; absent numbers are zero and absent flags are false.
type CompanyRecord struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	CompanyName string `json:"company_name" yaml:"company_name" mapstructure:"company_name"`
	Website     string `json:"website,omitempty" yaml:"website,omitempty" mapstructure:"website"`
	Industry    string `json:"industry,omitempty" yaml:"industry,omitempty" mapstructure:"industry"`
	Location    string `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	Employees   int    `json:"employees,omitempty" yaml:"employees,omitempty" mapstructure:"employees"`

	OwnerAge        int  `json:"owner_age,omitempty" yaml:"owner_age,omitempty" mapstructure:"owner_age"`
	YearsOwned      int  `json:"years_owned,omitempty" yaml:"years_owned,omitempty" mapstructure:"years_owned"`
	ActivelySelling bool `json:"actively_selling,omitempty" yaml:"actively_selling,omitempty" mapstructure:"actively_selling"`

	Revenue             float64 `json:"revenue,omitempty" yaml:"revenue,omitempty" mapstructure:"revenue"`
	EBITDA              float64 `json:"ebitda,omitempty" yaml:"ebitda,omitempty" mapstructure:"ebitda"`
	RecurringRevenuePct float64 `json:"recurring_revenue_pct,omitempty" yaml:"recurring_revenue_pct,omitempty" mapstructure:"recurring_revenue_pct"`
	RevenueGrowthRate   float64 `json:"revenue_growth_rate,omitempty" yaml:"revenue_growth_rate,omitempty" mapstructure:"revenue_growth_rate"`
	AskingPrice         float64 `json:"asking_price,omitempty" yaml:"asking_price,omitempty" mapstructure:"asking_price"`

	TopCustomerConcentration float64 `json:"top_customer_concentration,omitempty" yaml:"top_customer_concentration,omitempty" mapstructure:"top_customer_concentration"`
	YearFounded              int     `json:"year_founded,omitempty" yaml:"year_founded,omitempty" mapstructure:"year_founded"`
	MarketLeader             bool    `json:"market_leader,omitempty" yaml:"market_leader,omitempty" mapstructure:"market_leader"`

	HasManagementTeam   bool `json:"has_management_team,omitempty" yaml:"has_management_team,omitempty" mapstructure:"has_management_team"`
	DocumentedProcesses bool `json:"documented_processes,omitempty" yaml:"documented_processes,omitempty" mapstructure:"documented_processes"`
	SellerWillStay      bool `json:"seller_will_stay,omitempty" yaml:"seller_will_stay,omitempty" mapstructure:"seller_will_stay"`

	// Provided holds the field names present in the loaded input. It is nil
	// for records built in code.
	Provided FieldSet `json:"-" yaml:"-" mapstructure:"-"`
}

// FieldSet is a set of input field names.
type FieldSet map[string]bool

// Input field names that enrichment may fill.
const (
	FieldOwnerAge = "owner_age"
	FieldRevenue  = "revenue"
	FieldEBITDA   = "ebitda"
)

// Has reports whether the record carries field. With no Provided set, a
// mergeable field counts as present when it is non-zero.
func (c CompanyRecord) Has(field string) bool {
	if c.Provided != nil {
		return c.Provided[field]
	}
	switch field {
	case FieldOwnerAge:
		return c.OwnerAge != 0
	case FieldRevenue:
		return c.Revenue != 0
	case FieldEBITDA:
		return c.EBITDA != 0
	}
	return false
}

// ValuationMultiple returns asking price over EBITDA.
// The second value is false when there is no asking price or EBITDA is not positive.
func (c CompanyRecord) ValuationMultiple() (float64, bool) {
	if c.AskingPrice <= 0 || c.EBITDA <= 0 {
		return 0, false
	}
	return c.AskingPrice / c.EBITDA, true
}

// EBITDAMargin returns EBITDA as a percentage of revenue.
// The second value is false when revenue is not positive.
func (c CompanyRecord) EBITDAMargin() (float64, bool) {
	if c.Revenue <= 0 {
		return 0, false
	}
	return c.EBITDA / c.Revenue * 100, true
}

// Signal is a short explanation attached to a score.
type Signal struct {
	Kind SignalKind `json:"kind" yaml:"kind"`
	Text string     `json:"text" yaml:"text"`
}

// ComponentScore is the clamped result of one sub-scorer and its weighted contribution.
type ComponentScore struct {
	Key          ComponentKey `json:"key" yaml:"key"`
	Score        float64      `json:"score" yaml:"score"`               // Clamped to [0,1]
	Weight       float64      `json:"weight" yaml:"weight"`             // Weight applied to Score
	Contribution float64      `json:"contribution" yaml:"contribution"` // Score * Weight * 100
}

// ScoreResult is the output of scoring one company.
type ScoreResult struct {
	Total      int              `json:"total" yaml:"total"`
	Signals    []Signal         `json:"signals" yaml:"signals"`
	Components []ComponentScore `json:"components,omitempty" yaml:"components,omitempty"`
}

// Component returns the score for key and whether it is present.
func (r ScoreResult) Component(key ComponentKey) (ComponentScore, bool) {
	for _, c := range r.Components {
		if c.Key == key {
			return c, true
		}
	}
	return ComponentScore{}, false
}

// TargetResult pairs a company with its score.
type TargetResult struct {
	Company     CompanyRecord `json:"company" yaml:"company"`
	Enrichment  *Enrichment   `json:"enrichment,omitempty" yaml:"enrichment,omitempty"`
	ScoreResult `yaml:",inline"`
}
