package predict

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/success-predictor/internal/fallback"
	"github.com/jonathan/success-predictor/internal/types"
)

// Outcome is one predictor's settled result.
type Outcome struct {
	Value      float64
	Confidence float64
	RangeMin   float64
	RangeMax   float64
	Tier       types.Tier
}

// Predictor scores one dimension against the merged feature vector. A
// predictor's internal failures are absorbed by its fallback chain; the
// error return fires only on chain exhaustion, which the orchestrator treats
// as a fatal configuration problem.
type Predictor interface {
	Dimension() types.Dimension
	Predict(ctx context.Context, vector *types.FeatureVector) (*Outcome, error)
}

// chained is the standard Predictor: one fallback chain per dimension.
type chained struct {
	dim   types.Dimension
	chain *fallback.Manager
}

func (c *chained) Dimension() types.Dimension { return c.dim }

func (c *chained) Predict(ctx context.Context, vector *types.FeatureVector) (*Outcome, error) {
	result, tier, err := c.chain.Predict(ctx, c.dim, vector)
	if err != nil {
		return nil, err
	}
	return &Outcome{
		Value:      result.Value,
		Confidence: result.Confidence,
		RangeMin:   result.RangeMin,
		RangeMax:   result.RangeMax,
		Tier:       tier,
	}, nil
}

// NewSet builds the fixed registry of five predictors, each wrapped in its
// own model → heuristic → minimal chain. Pass a nil model strategy to run
// without a serving endpoint. Adding a sixth dimension means adding it here
// and in types.Dimensions; the fan-out loop is uniform.
func NewSet(model fallback.Strategy, tierTimeout time.Duration, log zerolog.Logger) []Predictor {
	predictors := make([]Predictor, 0, len(types.Dimensions))
	for _, dim := range types.Dimensions {
		predictors = append(predictors, &chained{
			dim:   dim,
			chain: fallback.Chain(model, tierTimeout, log.With().Str("dimension", string(dim)).Logger()),
		})
	}
	return predictors
}

// RunAll fans out every predictor concurrently and waits for all of them to
// settle; one dimension's chain exhaustion does not cancel its siblings but
// is reported after the join. Individual tier failures never reach here.
func RunAll(ctx context.Context, predictors []Predictor, vector *types.FeatureVector) (map[types.Dimension]*Outcome, error) {
	outcomes := make([]*Outcome, len(predictors))
	errs := make([]error, len(predictors))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range predictors {
		g.Go(func() error {
			out, err := p.Predict(gctx, vector)
			if err != nil {
				errs[i] = err
				return nil // join waits for all; exhaustion is collected, not propagated mid-flight
			}
			outcomes[i] = out
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[types.Dimension]*Outcome, len(predictors))
	for i, p := range predictors {
		if errs[i] != nil {
			return nil, errs[i]
		}
		results[p.Dimension()] = outcomes[i]
	}
	return results, nil
}
