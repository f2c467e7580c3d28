// Package recommend derives prioritized improvement recommendations from
// feature gaps and predictor output. Recommendations are structured gap
// identifiers with impact estimates; rendering them into user-facing copy is
// someone else's job.
package recommend

import (
	"fmt"
	"sort"

	"github.com/jonathan/success-predictor/internal/types"
)

// maxRecommendations caps the returned list; below-threshold gaps past the
// cap add noise, not signal.
const maxRecommendations = 7

// gapRule flags one feature gap when the feature drops below its threshold.
type gapRule struct {
	category string
	feature  string
	// threshold triggers the rule; target is where closing the gap lands.
	threshold float64
	target    float64
	// dimension most affected, and the estimated improvement of its value
	// (in native units) per full unit of gap closed.
	dimension    types.Dimension
	impactPerGap float64
	effort       types.Effort
}

// The standard rule set. Impact weights for interview-probability rules
// mirror the heuristic formula weights so the estimate matches what the
// heuristic tier would actually gain.
var standardRules = []gapRule{
	{types.CategoryMatching, "skill_overlap", 0.70, 0.90, types.DimensionInterview, 0.45, types.EffortModerate},
	{types.CategoryMatching, "keyword_density", 0.60, 0.85, types.DimensionInterview, 0.15, types.EffortTrivial},
	{types.CategoryCV, "completeness", 0.80, 1.00, types.DimensionInterview, 0.10, types.EffortModerate},
	{types.CategoryCV, "length_score", 0.60, 0.90, types.DimensionInterview, 0.08, types.EffortTrivial},
	{types.CategoryCV, "readability", 0.50, 0.80, types.DimensionInterview, 0.06, types.EffortModerate},
	{types.CategoryMatching, "seniority_match", 0.75, 1.00, types.DimensionOffer, 0.20, types.EffortLongTerm},
	{types.CategoryMatching, "experience_ratio", 0.75, 1.00, types.DimensionOffer, 0.15, types.EffortLongTerm},
	{types.CategoryBehavior, "optimization_effort", 0.50, 0.80, types.DimensionInterview, 0.05, types.EffortTrivial},
	{types.CategoryBehavior, "engagement", 0.50, 0.80, types.DimensionInterview, 0.05, types.EffortTrivial},
	{types.CategoryDerived, "leadership_signal", 0.30, 0.60, types.DimensionCompetitiveness, 25, types.EffortSubstantial},
	{types.CategoryDerived, "tenure_stability", 0.40, 0.70, types.DimensionOffer, 0.10, types.EffortLongTerm},
}

// Engine evaluates the rule set against a feature vector.
type Engine struct {
	rules []gapRule
}

// NewEngine creates an engine with the standard rules.
func NewEngine() *Engine {
	return &Engine{rules: standardRules}
}

// Recommend returns the ordered recommendation list for a vector and its
// prediction. Higher estimated impact ranks first; ties break toward lower
// effort. Impacts across dimensions are compared on their share of the
// dimension's native range.
func (e *Engine) Recommend(vector *types.FeatureVector, prediction *types.SuccessPrediction) []types.Recommendation {
	if vector == nil {
		return nil
	}

	recs := make([]types.Recommendation, 0, len(e.rules))
	for _, rule := range e.rules {
		sub := vector.Sub(rule.category)
		if sub == nil {
			continue
		}
		current, ok := sub[rule.feature]
		if !ok || current >= rule.threshold {
			continue
		}

		gap := rule.target - current
		impact := gap * rule.impactPerGap
		if prediction != nil {
			impact = capToHeadroom(impact, rule.dimension, prediction)
		}
		recs = append(recs, types.Recommendation{
			GapID:           fmt.Sprintf("%s.%s.low", rule.category, rule.feature),
			Category:        rule.category,
			Feature:         rule.feature,
			Dimension:       rule.dimension,
			EstimatedImpact: impact,
			Effort:          rule.effort,
			CurrentValue:    current,
			TargetValue:     rule.target,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		ni := normalizedImpact(recs[i])
		nj := normalizedImpact(recs[j])
		if ni != nj {
			return ni > nj
		}
		return recs[i].Effort < recs[j].Effort
	})

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	for i := range recs {
		recs[i].Priority = i + 1
	}
	return recs
}

// capToHeadroom bounds an impact estimate by how much room the predicted
// value actually has left in its range.
func capToHeadroom(impact float64, dim types.Dimension, p *types.SuccessPrediction) float64 {
	var headroom float64
	switch dim {
	case types.DimensionInterview:
		headroom = 1 - p.InterviewProbability
	case types.DimensionOffer:
		headroom = 1 - p.OfferProbability
	case types.DimensionCompetitiveness:
		headroom = 100 - p.Competitiveness
	default:
		return impact
	}
	if headroom < 0 {
		headroom = 0
	}
	if impact > headroom {
		return headroom
	}
	return impact
}

// normalizedImpact scales an impact estimate by its dimension's native range
// so a 10-point competitiveness gain compares fairly against a 0.1
// probability gain.
func normalizedImpact(r types.Recommendation) float64 {
	switch r.Dimension {
	case types.DimensionCompetitiveness:
		return r.EstimatedImpact / 100
	case types.DimensionTimeToHire:
		return r.EstimatedImpact / 90
	case types.DimensionSalary:
		return r.EstimatedImpact / 100000
	default:
		return r.EstimatedImpact
	}
}
