package fallback

import (
	"context"
	"fmt"

	"github.com/jonathan/success-predictor/internal/types"
)

// Weights of the heuristic interview formula. Skill overlap dominates;
// the remainder splits across seniority fit, market demand, CV quality and
// application channel.
const (
	hwSkillOverlap  = 0.45
	hwSeniority     = 0.20
	hwDemand        = 0.15
	hwCompleteness  = 0.10
	hwChannel       = 0.10
	offerDiscount   = 0.55 // offers are rarer than interviews
	baseTimeToHire  = 35.0 // days
	fallbackSalary  = 65000.0
	salaryRangeHalf = 0.15 // ±15% around the point estimate
)

// Heuristic is the deterministic rule-based tier: small fixed weighted
// formulas over the feature vector. Always available, no external
// dependency; confidence is pinned at HeuristicConfidence.
type Heuristic struct{}

// NewHeuristic creates the heuristic tier.
func NewHeuristic() *Heuristic { return &Heuristic{} }

// Tier implements Strategy.
func (h *Heuristic) Tier() types.Tier { return types.TierHeuristic }

// Predict implements Strategy.
func (h *Heuristic) Predict(_ context.Context, dim types.Dimension, v *types.FeatureVector) (*Result, error) {
	if v == nil || !v.Complete() {
		return nil, fmt.Errorf("heuristic requires a complete feature vector")
	}

	switch dim {
	case types.DimensionInterview:
		return &Result{Value: h.interview(v), Confidence: HeuristicConfidence}, nil
	case types.DimensionOffer:
		return &Result{Value: h.offer(v), Confidence: HeuristicConfidence}, nil
	case types.DimensionSalary:
		point := h.salary(v)
		return &Result{
			Value:      point,
			Confidence: HeuristicConfidence,
			RangeMin:   point * (1 - salaryRangeHalf),
			RangeMax:   point * (1 + salaryRangeHalf),
		}, nil
	case types.DimensionTimeToHire:
		return &Result{Value: h.timeToHire(v), Confidence: HeuristicConfidence}, nil
	case types.DimensionCompetitiveness:
		return &Result{Value: h.competitiveness(v), Confidence: HeuristicConfidence}, nil
	default:
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}
}

func (h *Heuristic) interview(v *types.FeatureVector) float64 {
	score := hwSkillOverlap*v.Matching.Get("skill_overlap", 0.5) +
		hwSeniority*v.Matching.Get("seniority_match", 0.5) +
		hwDemand*v.Market.Get("demand_index", 0.5) +
		hwCompleteness*v.CV.Get("completeness", 0.5) +
		hwChannel*v.Behavior.Get("channel_quality", 0.5)
	return clamp(score, 0.02, 0.95)
}

func (h *Heuristic) offer(v *types.FeatureVector) float64 {
	// An offer requires first clearing the interview, then beating the
	// field; experience fit carries most of that second hurdle.
	conversion := offerDiscount * (0.7 + 0.3*v.Matching.Get("experience_ratio", 0.5))
	return clamp(h.interview(v)*conversion, 0.01, 0.9)
}

func (h *Heuristic) salary(v *types.FeatureVector) float64 {
	median := v.Market.Get("median_salary", 0)
	if median <= 0 {
		median = fallbackSalary
	}
	// Strong candidates land above the median, weak ones below.
	strength := v.Derived.Get("overall_strength", 0.5)
	return median * (0.85 + 0.3*strength)
}

func (h *Heuristic) timeToHire(v *types.FeatureVector) float64 {
	demand := v.Market.Get("demand_index", 0.5)
	competition := v.Market.Get("competition_index", 0.5)
	days := baseTimeToHire * (1 - 0.35*demand + 0.35*competition)
	return clamp(days, 7, 90)
}

func (h *Heuristic) competitiveness(v *types.FeatureVector) float64 {
	strength := v.Derived.Get("overall_strength", 0.5)
	competition := v.Market.Get("competition_index", 0.5)
	// Candidate strength relative to the pressure of the applicant pool.
	return clamp(100*(0.7*strength+0.3*(1-competition)), 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
