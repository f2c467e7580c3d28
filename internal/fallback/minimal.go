package fallback

import (
	"context"
	"fmt"

	"github.com/jonathan/success-predictor/internal/types"
)

// Population-average outcomes served by the minimal tier. Context-free so
// the tier stays computable when everything else is down.
const (
	minimalInterviewProb   = 0.20
	minimalOfferProb       = 0.05
	minimalSalary          = 65000.0
	minimalTimeToHireDays  = 40.0
	minimalCompetitiveness = 50.0
)

// Minimal is the sentinel tier: a conservative, context-free estimate per
// dimension with confidence pinned at MinimalConfidence. It never fails.
type Minimal struct{}

// NewMinimal creates the minimal tier.
func NewMinimal() *Minimal { return &Minimal{} }

// Tier implements Strategy.
func (m *Minimal) Tier() types.Tier { return types.TierMinimal }

// Predict implements Strategy. The only error path is an unknown dimension,
// which is a programming error, not an availability condition.
func (m *Minimal) Predict(_ context.Context, dim types.Dimension, _ *types.FeatureVector) (*Result, error) {
	switch dim {
	case types.DimensionInterview:
		return &Result{Value: minimalInterviewProb, Confidence: MinimalConfidence}, nil
	case types.DimensionOffer:
		return &Result{Value: minimalOfferProb, Confidence: MinimalConfidence}, nil
	case types.DimensionSalary:
		return &Result{
			Value:      minimalSalary,
			Confidence: MinimalConfidence,
			RangeMin:   minimalSalary * 0.7,
			RangeMax:   minimalSalary * 1.3,
		}, nil
	case types.DimensionTimeToHire:
		return &Result{Value: minimalTimeToHireDays, Confidence: MinimalConfidence}, nil
	case types.DimensionCompetitiveness:
		return &Result{Value: minimalCompetitiveness, Confidence: MinimalConfidence}, nil
	default:
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}
}
