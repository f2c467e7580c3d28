package features

import (
	"context"
	"fmt"
	"math"

	"github.com/jonathan/success-predictor/internal/market"
	"github.com/jonathan/success-predictor/internal/types"
)

// MarketSource is the slice of the market-data provider this extractor needs.
type MarketSource interface {
	Signals(ctx context.Context, role, location, industry string) (*market.Signals, error)
}

// MarketExtractor derives external labor-market features for the target role.
// It is the one extractor that calls an external data source, so it is the
// most likely to ride its default path.
type MarketExtractor struct {
	source MarketSource
}

// NewMarketExtractor creates the market-category extractor.
func NewMarketExtractor(source MarketSource) *MarketExtractor {
	return &MarketExtractor{source: source}
}

// Category implements Extractor.
func (e *MarketExtractor) Category() string { return types.CategoryMarket }

// Defaults returns the documented sub-vector used when the provider is
// unavailable: balanced demand and competition, flat growth, unknown salary.
func (e *MarketExtractor) Defaults() types.SubVector {
	return types.SubVector{
		"demand_index":      0.5,
		"competition_index": 0.5,
		"growth_trend":      0,
		"median_salary":     0,
		"source_confidence": 0,
	}
}

// Extract implements Extractor.
func (e *MarketExtractor) Extract(ctx context.Context, req *types.PredictionRequest) (types.SubVector, error) {
	if e.source == nil {
		return nil, fmt.Errorf("no market-data source configured")
	}

	role := req.Job.Title
	if role == "" {
		role = req.CV.CurrentTitle
	}
	location := req.Job.Location
	if req.Context != nil && req.Context.DesiredLocation != "" {
		location = req.Context.DesiredLocation
	}

	sig, err := e.source.Signals(ctx, role, location, req.Job.Industry)
	if err != nil {
		return nil, err
	}

	return types.SubVector{
		"demand_index":      clamp(sig.DemandIndex, 0, 1),
		"competition_index": clamp(sig.CompetitionIndex, 0, 1),
		"growth_trend":      clamp(sig.GrowthTrend, -1, 1),
		"median_salary":     math.Max(sig.MedianSalary, 0),
		"source_confidence": sampleConfidence(sig.SampleSize),
	}, nil
}

// sampleConfidence maps a provider sample size to [0,1]; 500 or more
// observations count as fully trustworthy.
func sampleConfidence(n int) float64 {
	return clamp(float64(n)/500, 0, 1)
}
