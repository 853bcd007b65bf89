package schema

import (
	"fmt"
	"math"
)

// WeightTolerance is the allowed deviation of a weight set from a sum of 1.
const WeightTolerance = 0.001

// Weights holds the contribution of each sub-score to the total.
// A Weights value is copied into a scorer and never mutated afterwards.
type Weights struct {
	OwnerReadiness  float64 `json:"owner_readiness" yaml:"owner_readiness" mapstructure:"owner_readiness"`
	FinancialHealth float64 `json:"financial_health" yaml:"financial_health" mapstructure:"financial_health"`
	ValuationReason float64 `json:"valuation_reason" yaml:"valuation_reason" mapstructure:"valuation_reason"`
	BusinessQuality float64 `json:"business_quality" yaml:"business_quality" mapstructure:"business_quality"`
	TransitionEase  float64 `json:"transition_ease" yaml:"transition_ease" mapstructure:"transition_ease"`
}

// DefaultWeights returns the stock weighting of the five sub-scores.
func DefaultWeights() Weights {
	return Weights{
		OwnerReadiness:  0.30,
		FinancialHealth: 0.25,
		ValuationReason: 0.20,
		BusinessQuality: 0.15,
		TransitionEase:  0.10,
	}
}

// Get returns the weight for a component key, or zero for unknown keys.
func (w Weights) Get(key ComponentKey) float64 {
	switch key {
	case OwnerReadiness:
		return w.OwnerReadiness
	case FinancialHealth:
		return w.FinancialHealth
	case ValuationReason:
		return w.ValuationReason
	case BusinessQuality:
		return w.BusinessQuality
	case TransitionEase:
		return w.TransitionEase
	default:
		return 0
	}
}

// With returns a copy of w with the weight for key replaced.
func (w Weights) With(key ComponentKey, value float64) (Weights, error) {
	switch key {
	case OwnerReadiness:
		w.OwnerReadiness = value
	case FinancialHealth:
		w.FinancialHealth = value
	case ValuationReason:
		w.ValuationReason = value
	case BusinessQuality:
		w.BusinessQuality = value
	case TransitionEase:
		w.TransitionEase = value
	default:
		return w, fmt.Errorf("unknown component '%s'", key)
	}
	return w, nil
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.OwnerReadiness + w.FinancialHealth + w.ValuationReason + w.BusinessQuality + w.TransitionEase
}

// AsMap returns the weights keyed by component.
func (w Weights) AsMap() map[ComponentKey]float64 {
	out := make(map[ComponentKey]float64, len(AllComponents))
	for _, key := range AllComponents {
		out[key] = w.Get(key)
	}
	return out
}

// Validate checks that no weight is negative and that the weights sum to 1.
func (w Weights) Validate() error {
	for _, key := range AllComponents {
		if v := w.Get(key); v < 0 || math.IsNaN(v) {
			return fmt.Errorf("weight for '%s' must be non-negative, got %.3f", key, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > WeightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}
