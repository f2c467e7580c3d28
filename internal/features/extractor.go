// Package features implements the feature extraction subsystem: five
// independent extractors whose merged output is the engine's feature vector.
// The four primary extractors run concurrently; the derived extractor runs
// after them because its composites read the other four sub-vectors.
package features

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/success-predictor/internal/types"
)

// Extractor derives one category of signal from a prediction request. An
// extractor must complete or fail on its own: a failure never aborts its
// siblings, it just substitutes Defaults for the category.
type Extractor interface {
	Category() string
	Extract(ctx context.Context, req *types.PredictionRequest) (types.SubVector, error)
	// Defaults returns the documented default sub-vector substituted when
	// extraction errors or times out.
	Defaults() types.SubVector
}

// DerivedExtractor computes composites over the four primary sub-vectors, so
// it runs strictly after them.
type DerivedExtractor interface {
	Category() string
	ExtractDerived(ctx context.Context, req *types.PredictionRequest, base *types.FeatureVector) (types.SubVector, error)
	Defaults() types.SubVector
}

// Options configures the subsystem.
type Options struct {
	// Timeout bounds each extractor individually. Exceeding it substitutes
	// the extractor's defaults; it never cancels the sibling extractors.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Subsystem runs the fixed registry of extractors and merges their output.
type Subsystem struct {
	primary []Extractor
	derived DerivedExtractor
	timeout time.Duration
	log     zerolog.Logger
}

// New builds the subsystem with the standard registry: cv, matching, market
// and behavior as primaries, plus the derived extractor.
func New(marketSource MarketSource, opts Options) *Subsystem {
	return NewWithRegistry(
		[]Extractor{
			NewCVExtractor(),
			NewMatchingExtractor(),
			NewMarketExtractor(marketSource),
			NewBehaviorExtractor(),
		},
		NewDerivedExtractor(),
		opts,
	)
}

// NewWithRegistry builds a subsystem over an explicit registry. Adding a
// sixth category is additive: register its extractor here and give it
// defaults.
func NewWithRegistry(primary []Extractor, derived DerivedExtractor, opts Options) *Subsystem {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &Subsystem{
		primary: primary,
		derived: derived,
		timeout: opts.Timeout,
		log:     opts.Logger,
	}
}

// Run extracts all five sub-vectors. It never fails: extractors that error or
// time out contribute their defaults and the vector is marked partially
// degraded. The join waits for every primary to settle; a slow branch only
// costs its own timeout.
func (s *Subsystem) Run(ctx context.Context, req *types.PredictionRequest) *types.FeatureVector {
	vector := &types.FeatureVector{}

	results := make([]types.SubVector, len(s.primary))
	failures := make([]bool, len(s.primary))

	g, gctx := errgroup.WithContext(ctx)
	for i, ex := range s.primary {
		g.Go(func() error {
			sub, err := s.runOne(gctx, ex, req)
			if err != nil {
				s.log.Warn().Err(err).Str("category", ex.Category()).Msg("extractor degraded to defaults")
				results[i] = ex.Defaults()
				failures[i] = true
				return nil // tolerate individual failure, never fail-fast
			}
			results[i] = sub
			return nil
		})
	}
	// Goroutines only return nil; Wait is a pure join point.
	_ = g.Wait()

	for i, ex := range s.primary {
		vector.SetSub(ex.Category(), results[i])
		if failures[i] {
			vector.PartiallyDegraded = true
			vector.DegradedCategories = append(vector.DegradedCategories, ex.Category())
		}
	}

	// Derived composites read the merged primaries, so they run last.
	sub, err := s.runDerived(ctx, req, vector)
	if err != nil {
		s.log.Warn().Err(err).Str("category", s.derived.Category()).Msg("extractor degraded to defaults")
		sub = s.derived.Defaults()
		vector.PartiallyDegraded = true
		vector.DegradedCategories = append(vector.DegradedCategories, s.derived.Category())
	}
	vector.SetSub(s.derived.Category(), sub)

	return vector
}

// runOne executes one extractor under its own timeout.
func (s *Subsystem) runOne(ctx context.Context, ex Extractor, req *types.PredictionRequest) (types.SubVector, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		sub types.SubVector
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		sub, err := ex.Extract(ctx, req)
		done <- outcome{sub: sub, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		return out.sub, out.err
	}
}

func (s *Subsystem) runDerived(ctx context.Context, req *types.PredictionRequest, base *types.FeatureVector) (types.SubVector, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		sub types.SubVector
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		sub, err := s.derived.ExtractDerived(ctx, req, base)
		done <- outcome{sub: sub, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		return out.sub, out.err
	}
}
