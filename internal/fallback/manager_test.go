package fallback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/success-predictor/internal/logging"
	"github.com/jonathan/success-predictor/internal/types"
)

// stubStrategy simulates a tier with configurable failure and latency.
type stubStrategy struct {
	tier   types.Tier
	result *Result
	err    error
	delay  time.Duration
}

func (s *stubStrategy) Tier() types.Tier { return s.tier }

func (s *stubStrategy) Predict(ctx context.Context, _ types.Dimension, _ *types.FeatureVector) (*Result, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return s.result, s.err
}

func completeVector() *types.FeatureVector {
	return &types.FeatureVector{
		CV:       types.SubVector{"completeness": 0.8},
		Matching: types.SubVector{"skill_overlap": 0.6, "seniority_match": 1.0, "experience_ratio": 1.0},
		Market:   types.SubVector{"demand_index": 0.7, "competition_index": 0.4, "median_salary": 100000},
		Behavior: types.SubVector{"channel_quality": 0.6},
		Derived:  types.SubVector{"overall_strength": 0.7},
	}
}

func TestManager_ModelTierServesFirst(t *testing.T) {
	model := &stubStrategy{tier: types.TierModel, result: &Result{Value: 0.8, Confidence: 0.9}}
	m := NewManager([]Strategy{model, NewHeuristic(), NewMinimal()}, time.Second, logging.Nop())

	result, tier, err := m.Predict(context.Background(), types.DimensionInterview, completeVector())
	require.NoError(t, err)

	assert.Equal(t, types.TierModel, tier)
	assert.Equal(t, 0.9, result.Confidence)
}

func TestManager_ModelFailureFallsToHeuristic(t *testing.T) {
	model := &stubStrategy{tier: types.TierModel, err: errors.New("endpoint down")}
	m := NewManager([]Strategy{model, NewHeuristic(), NewMinimal()}, time.Second, logging.Nop())

	result, tier, err := m.Predict(context.Background(), types.DimensionInterview, completeVector())
	require.NoError(t, err)

	assert.Equal(t, types.TierHeuristic, tier)
	assert.Equal(t, HeuristicConfidence, result.Confidence, "heuristic confidence is the documented constant")
}

func TestManager_ModelTimeoutFallsThrough(t *testing.T) {
	model := &stubStrategy{tier: types.TierModel, result: &Result{Value: 0.8}, delay: 500 * time.Millisecond}
	m := NewManager([]Strategy{model, NewHeuristic(), NewMinimal()}, 20*time.Millisecond, logging.Nop())

	start := time.Now()
	_, tier, err := m.Predict(context.Background(), types.DimensionOffer, completeVector())
	require.NoError(t, err)

	assert.Equal(t, types.TierHeuristic, tier)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestManager_DegradesToMinimalOnIncompleteVector(t *testing.T) {
	// The heuristic needs a complete vector; minimal does not.
	model := &stubStrategy{tier: types.TierModel, err: errors.New("down")}
	m := NewManager([]Strategy{model, NewHeuristic(), NewMinimal()}, time.Second, logging.Nop())

	result, tier, err := m.Predict(context.Background(), types.DimensionInterview, &types.FeatureVector{})
	require.NoError(t, err)

	assert.Equal(t, types.TierMinimal, tier)
	assert.Equal(t, MinimalConfidence, result.Confidence)
	assert.Equal(t, minimalInterviewProb, result.Value)
}

func TestManager_ExpiredContextStillServesMinimal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := Chain(nil, time.Second, logging.Nop())
	for _, dim := range types.Dimensions {
		result, tier, err := m.Predict(ctx, dim, completeVector())
		require.NoError(t, err, "dimension %s", dim)
		assert.Equal(t, types.TierMinimal, tier)
		assert.Equal(t, MinimalConfidence, result.Confidence)
	}
}

func TestManager_ExhaustedChainIsFatal(t *testing.T) {
	broken := &stubStrategy{tier: types.TierModel, err: errors.New("down")}
	m := NewManager([]Strategy{broken}, time.Second, logging.Nop())

	_, _, err := m.Predict(context.Background(), types.DimensionInterview, completeVector())
	assert.Error(t, err, "exhaustion must surface loudly, distinct from degradation")
}

func TestChain_WithoutModelStartsAtHeuristic(t *testing.T) {
	m := Chain(nil, time.Second, logging.Nop())

	_, tier, err := m.Predict(context.Background(), types.DimensionInterview, completeVector())
	require.NoError(t, err)
	assert.Equal(t, types.TierHeuristic, tier)
}

func TestHeuristic_AllDimensionsInRange(t *testing.T) {
	h := NewHeuristic()
	v := completeVector()

	for _, dim := range types.Dimensions {
		result, err := h.Predict(context.Background(), dim, v)
		require.NoError(t, err, "dimension %s", dim)
		assert.Equal(t, HeuristicConfidence, result.Confidence)

		switch dim {
		case types.DimensionInterview, types.DimensionOffer:
			assert.GreaterOrEqual(t, result.Value, 0.0)
			assert.LessOrEqual(t, result.Value, 1.0)
		case types.DimensionCompetitiveness:
			assert.GreaterOrEqual(t, result.Value, 0.0)
			assert.LessOrEqual(t, result.Value, 100.0)
		case types.DimensionTimeToHire:
			assert.GreaterOrEqual(t, result.Value, 7.0)
			assert.LessOrEqual(t, result.Value, 90.0)
		case types.DimensionSalary:
			assert.Greater(t, result.Value, 0.0)
			assert.Less(t, result.RangeMin, result.Value)
			assert.Greater(t, result.RangeMax, result.Value)
		}
	}
}

func TestHeuristic_StrongerVectorScoresHigher(t *testing.T) {
	h := NewHeuristic()
	weak := completeVector()
	weak.Matching["skill_overlap"] = 0.1

	strongRes, err := h.Predict(context.Background(), types.DimensionInterview, completeVector())
	require.NoError(t, err)
	weakRes, err := h.Predict(context.Background(), types.DimensionInterview, weak)
	require.NoError(t, err)

	assert.Greater(t, strongRes.Value, weakRes.Value)
}

func TestHeuristic_SalaryUsesMarketMedian(t *testing.T) {
	h := NewHeuristic()
	v := completeVector()

	result, err := h.Predict(context.Background(), types.DimensionSalary, v)
	require.NoError(t, err)
	// median 100000, strength 0.7 → 100000 * (0.85 + 0.21)
	assert.InDelta(t, 106000, result.Value, 1)

	v.Market["median_salary"] = 0
	result, err = h.Predict(context.Background(), types.DimensionSalary, v)
	require.NoError(t, err)
	assert.InDelta(t, fallbackSalary*1.06, result.Value, 1)
}

func TestMinimal_NeverFailsForKnownDimensions(t *testing.T) {
	m := NewMinimal()
	for _, dim := range types.Dimensions {
		result, err := m.Predict(context.Background(), dim, nil)
		require.NoError(t, err, "minimal tier must not fail for %s", dim)
		assert.Equal(t, MinimalConfidence, result.Confidence)
	}
}

func TestMinimal_UnknownDimension(t *testing.T) {
	_, err := NewMinimal().Predict(context.Background(), types.Dimension("charisma"), nil)
	assert.Error(t, err)
}
