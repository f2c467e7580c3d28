// Package predict provides the five outcome predictors and their concurrent
// fan-out. Each predictor is a black box to the orchestrator: internally it
// is a fallback chain whose primary tier calls the model-serving endpoint.
package predict

import (
	"context"
	"fmt"

	"github.com/jonathan/success-predictor/internal/fallback"
	"github.com/jonathan/success-predictor/internal/llm"
	"github.com/jonathan/success-predictor/internal/types"
)

// Scorer is the slice of the serving client the model tier needs.
type Scorer interface {
	Score(ctx context.Context, dim types.Dimension, vector *types.FeatureVector) (*llm.ScoreResult, error)
}

// ModelStrategy adapts the serving-model scorer to the fallback chain. A
// response outside the dimension's native range counts as a tier failure so
// the heuristic can take over; the model is untrusted on availability and on
// output alike.
type ModelStrategy struct {
	scorer Scorer
}

// NewModelStrategy wraps a scorer as the model tier.
func NewModelStrategy(scorer Scorer) *ModelStrategy {
	return &ModelStrategy{scorer: scorer}
}

// Tier implements fallback.Strategy.
func (s *ModelStrategy) Tier() types.Tier { return types.TierModel }

// Predict implements fallback.Strategy.
func (s *ModelStrategy) Predict(ctx context.Context, dim types.Dimension, vector *types.FeatureVector) (*fallback.Result, error) {
	scored, err := s.scorer.Score(ctx, dim, vector)
	if err != nil {
		return nil, err
	}
	if err := validateRange(dim, scored); err != nil {
		return nil, err
	}

	result := &fallback.Result{
		Value:      scored.Value,
		Confidence: scored.Confidence,
		RangeMin:   scored.RangeMin,
		RangeMax:   scored.RangeMax,
	}
	if dim == types.DimensionSalary && result.RangeMin == 0 && result.RangeMax == 0 {
		// The schema allows omitting the range; synthesize one.
		result.RangeMin = scored.Value * 0.85
		result.RangeMax = scored.Value * 1.15
	}
	return result, nil
}

// validateRange rejects model output outside the dimension's native range.
func validateRange(dim types.Dimension, r *llm.ScoreResult) error {
	if r.Confidence < 0 || r.Confidence > 1 {
		return fmt.Errorf("model confidence %v out of [0,1]", r.Confidence)
	}
	switch dim {
	case types.DimensionInterview, types.DimensionOffer:
		if r.Value < 0 || r.Value > 1 {
			return fmt.Errorf("model %s probability %v out of [0,1]", dim, r.Value)
		}
	case types.DimensionCompetitiveness:
		if r.Value < 0 || r.Value > 100 {
			return fmt.Errorf("model competitiveness %v out of [0,100]", r.Value)
		}
	case types.DimensionTimeToHire:
		if r.Value <= 0 || r.Value > 365 {
			return fmt.Errorf("model time-to-hire %v days implausible", r.Value)
		}
	case types.DimensionSalary:
		if r.Value <= 0 {
			return fmt.Errorf("model salary %v must be positive", r.Value)
		}
		if r.RangeMin != 0 || r.RangeMax != 0 {
			if r.RangeMin > r.Value || r.RangeMax < r.Value {
				return fmt.Errorf("model salary range [%v,%v] does not bracket point %v", r.RangeMin, r.RangeMax, r.Value)
			}
		}
	default:
		return fmt.Errorf("unknown dimension %q", dim)
	}
	return nil
}
