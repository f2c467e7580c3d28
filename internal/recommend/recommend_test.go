package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/success-predictor/internal/types"
)

func strongVector() *types.FeatureVector {
	return &types.FeatureVector{
		CV:       types.SubVector{"completeness": 1.0, "length_score": 0.9, "readability": 0.8},
		Matching: types.SubVector{"skill_overlap": 0.9, "keyword_density": 0.9, "seniority_match": 1.0, "experience_ratio": 1.0},
		Market:   types.SubVector{"demand_index": 0.7},
		Behavior: types.SubVector{"engagement": 0.8, "optimization_effort": 0.8},
		Derived:  types.SubVector{"leadership_signal": 0.7, "tenure_stability": 0.8},
	}
}

func TestRecommend_NoGapsForStrongCandidate(t *testing.T) {
	recs := NewEngine().Recommend(strongVector(), nil)
	assert.Empty(t, recs)
}

func TestRecommend_FlagsSkillOverlapGap(t *testing.T) {
	v := strongVector()
	v.Matching["skill_overlap"] = 0.4

	recs := NewEngine().Recommend(v, nil)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "matching.skill_overlap.low", rec.GapID)
	assert.Equal(t, types.DimensionInterview, rec.Dimension)
	assert.Equal(t, 0.4, rec.CurrentValue)
	assert.InDelta(t, 0.5*0.45, rec.EstimatedImpact, 0.001)
	assert.Equal(t, 1, rec.Priority)
}

func TestRecommend_OrderedByImpactThenEffort(t *testing.T) {
	v := strongVector()
	v.Matching["skill_overlap"] = 0.4  // impact 0.225
	v.CV["completeness"] = 0.5         // impact 0.05
	v.Matching["keyword_density"] = 0.3 // impact 0.0825

	recs := NewEngine().Recommend(v, nil)
	require.Len(t, recs, 3)

	assert.Equal(t, "matching.skill_overlap.low", recs[0].GapID)
	assert.Equal(t, "matching.keyword_density.low", recs[1].GapID)
	assert.Equal(t, "cv.completeness.low", recs[2].GapID)
	for i, rec := range recs {
		assert.Equal(t, i+1, rec.Priority)
	}
}

func TestRecommend_TieBreaksTowardLowerEffort(t *testing.T) {
	// Equal estimated impacts: engagement gap 0.5 at weight 0.05 and
	// completeness gap 0.25 at weight 0.10 both estimate 0.025. The trivial
	// fix must rank above the moderate one.
	v := strongVector()
	v.Behavior["engagement"] = 0.3
	v.CV["completeness"] = 0.75

	recs := NewEngine().Recommend(v, nil)
	require.Len(t, recs, 2)

	assert.Equal(t, "behavior.engagement.low", recs[0].GapID)
	assert.Equal(t, "cv.completeness.low", recs[1].GapID)
}

func TestRecommend_CrossDimensionRankingIsNormalized(t *testing.T) {
	v := strongVector()
	v.Derived["leadership_signal"] = 0.1 // impact (0.6-0.1)*25 = 12.5 points → 0.125 normalized
	v.CV["completeness"] = 0.5           // impact 0.05 probability

	recs := NewEngine().Recommend(v, nil)
	require.Len(t, recs, 2)

	assert.Equal(t, "derived.leadership_signal.low", recs[0].GapID)
}

func TestRecommend_CapsListLength(t *testing.T) {
	v := &types.FeatureVector{
		CV:       types.SubVector{"completeness": 0, "length_score": 0, "readability": 0},
		Matching: types.SubVector{"skill_overlap": 0, "keyword_density": 0, "seniority_match": 0, "experience_ratio": 0},
		Market:   types.SubVector{},
		Behavior: types.SubVector{"engagement": 0, "optimization_effort": 0},
		Derived:  types.SubVector{"leadership_signal": 0, "tenure_stability": 0},
	}

	recs := NewEngine().Recommend(v, nil)
	assert.Len(t, recs, maxRecommendations)
}

func TestRecommend_ImpactCappedByHeadroom(t *testing.T) {
	v := strongVector()
	v.Matching["skill_overlap"] = 0.4

	p := &types.SuccessPrediction{InterviewProbability: 0.95}
	recs := NewEngine().Recommend(v, p)
	require.Len(t, recs, 1)

	assert.InDelta(t, 0.05, recs[0].EstimatedImpact, 0.001, "impact cannot exceed probability headroom")
}

func TestRecommend_NilVector(t *testing.T) {
	assert.Nil(t, NewEngine().Recommend(nil, nil))
}

func TestRecommend_MissingFeatureIsNotAGap(t *testing.T) {
	v := strongVector()
	delete(v.Matching, "skill_overlap")

	recs := NewEngine().Recommend(v, nil)
	for _, rec := range recs {
		assert.NotEqual(t, "matching.skill_overlap.low", rec.GapID)
	}
}
