package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/success-predictor/internal/types"
)

// stubClient returns canned JSON for every scoring call.
type stubClient struct {
	response string
	err      error
	prompts  []string
	tiers    []ModelTier
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.tiers = append(s.tiers, tier)
	return s.response, s.err
}

func (s *stubClient) Close() error { return nil }

func testVector() *types.FeatureVector {
	return &types.FeatureVector{
		CV:       types.SubVector{"completeness": 0.8},
		Matching: types.SubVector{"skill_overlap": 0.6},
		Market:   types.SubVector{"demand_index": 0.5},
		Behavior: types.SubVector{"engagement": 0.4},
		Derived:  types.SubVector{"trajectory_slope": 0.2},
	}
}

func TestScore_ParsesValidResponse(t *testing.T) {
	stub := &stubClient{response: `{"value": 0.65, "confidence": 0.9, "rationale": "good overlap"}`}
	scorer := NewScorer(stub)

	result, err := scorer.Score(context.Background(), types.DimensionInterview, testVector())
	require.NoError(t, err)

	assert.Equal(t, 0.65, result.Value)
	assert.Equal(t, 0.9, result.Confidence)
}

func TestScore_SelectsTierPerDimension(t *testing.T) {
	stub := &stubClient{response: `{"value": 110000, "confidence": 0.8, "range_min": 95000, "range_max": 130000}`}
	scorer := NewScorer(stub)

	_, err := scorer.Score(context.Background(), types.DimensionSalary, testVector())
	require.NoError(t, err)
	require.Len(t, stub.tiers, 1)
	assert.Equal(t, TierAdvanced, stub.tiers[0])
}

func TestScore_PromptCarriesFeatures(t *testing.T) {
	stub := &stubClient{response: `{"value": 50, "confidence": 0.7}`}
	scorer := NewScorer(stub)

	_, err := scorer.Score(context.Background(), types.DimensionCompetitiveness, testVector())
	require.NoError(t, err)
	require.Len(t, stub.prompts, 1)
	assert.Contains(t, stub.prompts[0], "skill_overlap")
	assert.Contains(t, stub.prompts[0], "competitive")
}

func TestScore_RejectsOutOfContractResponse(t *testing.T) {
	stub := &stubClient{response: `{"verdict": "strong hire"}`}
	scorer := NewScorer(stub)

	_, err := scorer.Score(context.Background(), types.DimensionOffer, testVector())
	assert.Error(t, err)
}

func TestScore_PropagatesClientError(t *testing.T) {
	stub := &stubClient{err: errors.New("endpoint down")}
	scorer := NewScorer(stub)

	_, err := scorer.Score(context.Background(), types.DimensionInterview, testVector())
	assert.Error(t, err)
}

func TestScore_UnknownDimension(t *testing.T) {
	scorer := NewScorer(&stubClient{})
	_, err := scorer.Score(context.Background(), types.Dimension("charisma"), testVector())
	assert.Error(t, err)
}

func TestCleanJSONBlock(t *testing.T) {
	assert.Equal(t, `{"a":1}`, CleanJSONBlock("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, CleanJSONBlock(`{"a":1}`))
}
