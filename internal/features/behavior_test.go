package features

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/success-predictor/internal/types"
)

func TestBehaviorExtract_NoContextUsesDefaults(t *testing.T) {
	req := &types.PredictionRequest{CV: types.CVData{}, Job: types.JobDescription{Title: "Engineer"}}

	sub, err := NewBehaviorExtractor().Extract(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, NewBehaviorExtractor().Defaults(), sub)
}

func TestBehaviorExtract_WithContext(t *testing.T) {
	posted := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	req := &types.PredictionRequest{
		CV:  types.CVData{EditCount: 5},
		Job: types.JobDescription{Title: "Engineer", PostedAt: posted.Format(time.RFC3339)},
		Context: &types.RequestContext{
			PlatformSessions:   10,
			SubmittedAt:        posted.Add(24 * time.Hour),
			ApplicationChannel: "referral",
		},
	}

	sub, err := NewBehaviorExtractor().Extract(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 0.5, sub["engagement"])
	assert.Equal(t, 1.0, sub["application_timing"], "applied within two days")
	assert.Equal(t, 0.5, sub["optimization_effort"])
	assert.Equal(t, 1.0, sub["channel_quality"])
}

func TestTimingScore_Decay(t *testing.T) {
	posted := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	postedStr := posted.Format(time.RFC3339)

	assert.Equal(t, 1.0, timingScore(postedStr, posted.Add(12*time.Hour)))
	assert.Equal(t, 0.2, timingScore(postedStr, posted.Add(45*24*time.Hour)))
	mid := timingScore(postedStr, posted.Add(10*24*time.Hour))
	assert.Greater(t, mid, 0.2)
	assert.Less(t, mid, 1.0)
}

func TestTimingScore_BadInputsAreNeutral(t *testing.T) {
	assert.Equal(t, 0.5, timingScore("", time.Now()))
	assert.Equal(t, 0.5, timingScore("not-a-date", time.Now()))
	posted := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.5, timingScore(posted.Format(time.RFC3339), posted.Add(-time.Hour)))
}

func TestChannelQuality(t *testing.T) {
	assert.Equal(t, 1.0, channelQuality("referral"))
	assert.Equal(t, 0.6, channelQuality("direct"))
	assert.Equal(t, 0.4, channelQuality("board"))
	assert.Equal(t, 0.5, channelQuality("carrier-pigeon"))
}
