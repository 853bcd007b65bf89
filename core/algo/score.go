// Package algo has the acquisition scoring model and ranking helpers.
package algo

import (
	"math"
	"time"

	"github.com/huangsam/acqscore/schema"
)

// totalEpsilon absorbs float error so that sums landing on a whole number
// (e.g. every sub-score at 1.0) do not floor to one below it.
const totalEpsilon = 1e-9

// Option configures a Scorer.
type Option func(*Scorer)

// WithCurrentYear pins the year used to compute business age.
func WithCurrentYear(year int) Option {
	return func(s *Scorer) {
		s.currentYear = year
	}
}

// WithClock derives the current year from now once, at construction time.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.currentYear = now().Year()
	}
}

// Scorer computes acquisition-attractiveness scores.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	weights     schema.Weights
	currentYear int
}

// NewScorer returns a Scorer using the given weights, which must be valid.
func NewScorer(weights schema.Weights, opts ...Option) (*Scorer, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	s := &Scorer{weights: weights, currentYear: time.Now().Year()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewDefaultScorer returns a Scorer using the default weights.
func NewDefaultScorer(opts ...Option) *Scorer {
	s, _ := NewScorer(schema.DefaultWeights(), opts...)
	return s
}

// Weights returns the weights applied by the scorer.
func (s *Scorer) Weights() schema.Weights {
	return s.weights
}

// CurrentYear returns the year used to compute business age.
func (s *Scorer) CurrentYear() int {
	return s.currentYear
}

// Score runs the five sub-scorers in order and combines them into a 0-100 total.
// Absent fields are treated as zero or false; Score never fails.
func (s *Scorer) Score(c schema.CompanyRecord) schema.ScoreResult {
	result := schema.ScoreResult{
		Signals:    []schema.Signal{},
		Components: make([]schema.ComponentScore, 0, len(subScorers)),
	}

	var sum float64
	for _, sub := range subScorers {
		raw, signals := sub.eval(c, s.currentYear)
		score := clamp01(raw)
		weight := s.weights.Get(sub.key)
		sum += score * weight

		result.Signals = append(result.Signals, signals...)
		result.Components = append(result.Components, schema.ComponentScore{
			Key:          sub.key,
			Score:        score,
			Weight:       weight,
			Contribution: score * weight * 100,
		})
	}

	total := int(math.Floor(sum*100 + totalEpsilon))
	result.Total = max(0, min(100, total))
	return result
}

// clamp01 restricts v to the range [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
