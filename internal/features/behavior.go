package features

import (
	"context"
	"time"

	"github.com/jonathan/success-predictor/internal/types"
)

// BehaviorExtractor derives applicant-side signals: platform engagement,
// application timing relative to the posting, and optimization effort.
type BehaviorExtractor struct{}

// NewBehaviorExtractor creates the behavior-category extractor.
func NewBehaviorExtractor() *BehaviorExtractor { return &BehaviorExtractor{} }

// Category implements Extractor.
func (e *BehaviorExtractor) Category() string { return types.CategoryBehavior }

// Defaults returns the documented neutral sub-vector, also used when the
// request carries no context block.
func (e *BehaviorExtractor) Defaults() types.SubVector {
	return types.SubVector{
		"engagement":          0.5,
		"application_timing":  0.5,
		"optimization_effort": 0.5,
		"channel_quality":     0.5,
	}
}

// Extract implements Extractor.
func (e *BehaviorExtractor) Extract(_ context.Context, req *types.PredictionRequest) (types.SubVector, error) {
	ctxInfo := req.Context
	if ctxInfo == nil {
		// No behavioral context is a degraded-free default: the request is
		// valid without it.
		return e.Defaults(), nil
	}

	return types.SubVector{
		"engagement":          clamp(float64(ctxInfo.PlatformSessions)/20, 0, 1),
		"application_timing":  timingScore(req.Job.PostedAt, ctxInfo.SubmittedAt),
		"optimization_effort": clamp(float64(req.CV.EditCount)/10, 0, 1),
		"channel_quality":     channelQuality(ctxInfo.ApplicationChannel),
	}, nil
}

// timingScore rewards early applications: within 2 days of posting scores 1,
// decaying to 0.2 after 30 days.
func timingScore(postedAt string, submitted time.Time) float64 {
	if postedAt == "" || submitted.IsZero() {
		return 0.5
	}
	posted, err := time.Parse(time.RFC3339, postedAt)
	if err != nil {
		return 0.5
	}
	days := submitted.Sub(posted).Hours() / 24
	switch {
	case days < 0:
		return 0.5 // inconsistent timestamps, neutral
	case days <= 2:
		return 1
	case days >= 30:
		return 0.2
	default:
		return clamp(1-(days-2)/35, 0.2, 1)
	}
}

// channelQuality encodes the application channel ordinally; referrals
// outperform direct applications, which outperform job boards.
func channelQuality(channel string) float64 {
	switch channel {
	case "referral":
		return 1.0
	case "direct":
		return 0.6
	case "board":
		return 0.4
	default:
		return 0.5
	}
}
