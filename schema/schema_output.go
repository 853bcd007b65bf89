package schema

// EnrichedTargetResult adds presentation data to a TargetResult.
type EnrichedTargetResult struct {
	Rank         int    `json:"rank" yaml:"rank"`
	Label        string `json:"label" yaml:"label"`
	TargetResult `yaml:",inline"`
}

// GetPlainLabel returns a plain text label indicating how attractive
// a target is based on its total score.
func GetPlainLabel(score int) string {
	switch {
	case score >= 80:
		return "Prime"
	case score >= 60:
		return "Strong"
	case score >= 40:
		return "Moderate"
	default:
		return "Weak"
	}
}

// EnrichTargets adds rank and label to a list of ranked target results.
func EnrichTargets(results []TargetResult) []EnrichedTargetResult {
	output := make([]EnrichedTargetResult, len(results))
	for i, r := range results {
		output[i] = EnrichedTargetResult{
			Rank:         i + 1,
			Label:        GetPlainLabel(r.Total),
			TargetResult: r,
		}
	}
	return output
}
