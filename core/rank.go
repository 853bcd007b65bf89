package core

import (
	"github.com/huangsam/acqscore/core/algo"
	"github.com/huangsam/acqscore/internal/contract"
	"github.com/huangsam/acqscore/schema"
)

// rankResults drops targets below the minimum score and returns the
// top 'limit' of the rest, best first.
func rankResults(results []schema.TargetResult, cfg *contract.Config) []schema.TargetResult {
	return algo.RankTargets(algo.FilterMinScore(results, cfg.MinScore), cfg.ResultLimit)
}
