package predict

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/success-predictor/internal/fallback"
	"github.com/jonathan/success-predictor/internal/llm"
	"github.com/jonathan/success-predictor/internal/logging"
	"github.com/jonathan/success-predictor/internal/types"
)

// stubScorer returns per-dimension canned scores or a global error.
type stubScorer struct {
	results map[types.Dimension]*llm.ScoreResult
	err     error
}

func (s *stubScorer) Score(_ context.Context, dim types.Dimension, _ *types.FeatureVector) (*llm.ScoreResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	if r, ok := s.results[dim]; ok {
		return r, nil
	}
	return nil, errors.New("no canned score")
}

func fullVector() *types.FeatureVector {
	return &types.FeatureVector{
		CV:       types.SubVector{"completeness": 0.8},
		Matching: types.SubVector{"skill_overlap": 0.6, "seniority_match": 1.0, "experience_ratio": 1.0},
		Market:   types.SubVector{"demand_index": 0.7, "competition_index": 0.4, "median_salary": 100000},
		Behavior: types.SubVector{"channel_quality": 0.6},
		Derived:  types.SubVector{"overall_strength": 0.7},
	}
}

func modelScores() map[types.Dimension]*llm.ScoreResult {
	return map[types.Dimension]*llm.ScoreResult{
		types.DimensionInterview:       {Value: 0.7, Confidence: 0.9},
		types.DimensionOffer:           {Value: 0.3, Confidence: 0.85},
		types.DimensionSalary:          {Value: 110000, Confidence: 0.8, RangeMin: 95000, RangeMax: 130000},
		types.DimensionTimeToHire:      {Value: 28, Confidence: 0.75},
		types.DimensionCompetitiveness: {Value: 72, Confidence: 0.8},
	}
}

func TestRunAll_AllModelBacked(t *testing.T) {
	model := NewModelStrategy(&stubScorer{results: modelScores()})
	predictors := NewSet(model, time.Second, logging.Nop())

	results, err := RunAll(context.Background(), predictors, fullVector())
	require.NoError(t, err)
	require.Len(t, results, 5)

	for dim, out := range results {
		assert.Equal(t, types.TierModel, out.Tier, "dimension %s", dim)
		assert.GreaterOrEqual(t, out.Confidence, 0.0)
		assert.LessOrEqual(t, out.Confidence, 1.0)
	}
	assert.Equal(t, 0.7, results[types.DimensionInterview].Value)
	assert.Equal(t, 95000.0, results[types.DimensionSalary].RangeMin)
}

func TestRunAll_ModelDownFallsToHeuristicIndependently(t *testing.T) {
	model := NewModelStrategy(&stubScorer{err: errors.New("serving endpoint down")})
	predictors := NewSet(model, time.Second, logging.Nop())

	results, err := RunAll(context.Background(), predictors, fullVector())
	require.NoError(t, err)

	for dim, out := range results {
		assert.Equal(t, types.TierHeuristic, out.Tier, "dimension %s", dim)
		assert.Equal(t, fallback.HeuristicConfidence, out.Confidence)
	}
}

func TestRunAll_NoModelConfigured(t *testing.T) {
	predictors := NewSet(nil, time.Second, logging.Nop())

	results, err := RunAll(context.Background(), predictors, fullVector())
	require.NoError(t, err)

	assert.Equal(t, types.TierHeuristic, results[types.DimensionInterview].Tier)
}

func TestRunAll_SingleDimensionFailureDoesNotAffectSiblings(t *testing.T) {
	scores := modelScores()
	// Competitiveness comes back out of range; its chain degrades alone.
	scores[types.DimensionCompetitiveness] = &llm.ScoreResult{Value: 140, Confidence: 0.9}
	model := NewModelStrategy(&stubScorer{results: scores})
	predictors := NewSet(model, time.Second, logging.Nop())

	results, err := RunAll(context.Background(), predictors, fullVector())
	require.NoError(t, err)

	assert.Equal(t, types.TierHeuristic, results[types.DimensionCompetitiveness].Tier)
	assert.Equal(t, types.TierModel, results[types.DimensionInterview].Tier)
}

func TestModelStrategy_RangeValidation(t *testing.T) {
	cases := []struct {
		name string
		dim  types.Dimension
		r    *llm.ScoreResult
	}{
		{"probability above one", types.DimensionInterview, &llm.ScoreResult{Value: 1.2, Confidence: 0.9}},
		{"negative probability", types.DimensionOffer, &llm.ScoreResult{Value: -0.1, Confidence: 0.9}},
		{"confidence out of range", types.DimensionInterview, &llm.ScoreResult{Value: 0.5, Confidence: 1.4}},
		{"zero salary", types.DimensionSalary, &llm.ScoreResult{Value: 0, Confidence: 0.9}},
		{"range misses point", types.DimensionSalary, &llm.ScoreResult{Value: 100000, Confidence: 0.9, RangeMin: 120000, RangeMax: 150000}},
		{"implausible time to hire", types.DimensionTimeToHire, &llm.ScoreResult{Value: 900, Confidence: 0.9}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			strategy := NewModelStrategy(&stubScorer{results: map[types.Dimension]*llm.ScoreResult{tc.dim: tc.r}})
			_, err := strategy.Predict(context.Background(), tc.dim, fullVector())
			assert.Error(t, err)
		})
	}
}

func TestModelStrategy_SynthesizesSalaryRange(t *testing.T) {
	strategy := NewModelStrategy(&stubScorer{results: map[types.Dimension]*llm.ScoreResult{
		types.DimensionSalary: {Value: 100000, Confidence: 0.8},
	}})

	result, err := strategy.Predict(context.Background(), types.DimensionSalary, fullVector())
	require.NoError(t, err)

	assert.Equal(t, 85000.0, result.RangeMin)
	assert.Equal(t, 115000.0, result.RangeMax)
}
