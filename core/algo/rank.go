package algo

import (
	"sort"

	"github.com/huangsam/acqscore/schema"
)

// RankTargets sorts targets by total score in descending order, breaking
// ties by company name, and returns the top 'limit' targets. A limit of
// zero or less, or one greater than the number of targets, returns all.
// The input slice is left unchanged.
func RankTargets(results []schema.TargetResult, limit int) []schema.TargetResult {
	ranked := make([]schema.TargetResult, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Company.CompanyName < ranked[j].Company.CompanyName
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// FilterMinScore keeps the targets whose total is at least minScore.
func FilterMinScore(results []schema.TargetResult, minScore int) []schema.TargetResult {
	if minScore <= 0 {
		return results
	}
	filtered := make([]schema.TargetResult, 0, len(results))
	for _, r := range results {
		if r.Total >= minScore {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
