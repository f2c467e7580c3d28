// Package engine orchestrates a prediction cycle: validate, fingerprint,
// check caches, extract features, fan out the predictors, assemble the
// result, cache it. Validation failure is the only caller-visible error in
// the prediction path; everything downstream degrades instead.
package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/success-predictor/internal/cache"
	"github.com/jonathan/success-predictor/internal/features"
	"github.com/jonathan/success-predictor/internal/outcomes"
	"github.com/jonathan/success-predictor/internal/predict"
	"github.com/jonathan/success-predictor/internal/recommend"
	"github.com/jonathan/success-predictor/internal/types"
)

const (
	defaultCurrency = "USD"

	// Confidence penalty applied per degraded feature category. Defaults in
	// place of real signal make every downstream number less trustworthy,
	// so the overall confidence drops even when the per-dimension tiers
	// stayed on model.
	degradedCategoryPenalty = 0.08
	minDegradedMultiplier   = 0.6
)

// Options wires the engine's collaborators.
type Options struct {
	Cache       cache.Store
	Features    *features.Subsystem
	Predictors  []predict.Predictor
	Recommender *recommend.Engine
	Outcomes    outcomes.Store

	// ConfidenceWeights weights the per-dimension confidences in the
	// overall average. Missing dimensions get weight 1.
	ConfidenceWeights map[string]float64

	// RequestBudget bounds one whole prediction cycle. When it expires the
	// in-flight tiers time out and the fallback chains settle on lower
	// tiers, so the caller still gets a (degraded) prediction.
	RequestBudget time.Duration

	Logger zerolog.Logger
}

// Engine is the orchestrator behind every entry point: PredictSuccess,
// RecordOutcome, Invalidate, Calibration.
type Engine struct {
	cache       cache.Store
	features    *features.Subsystem
	predictors  []predict.Predictor
	recommender *recommend.Engine
	outcomes    outcomes.Store
	weights     map[string]float64
	budget      time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

// New builds an engine from its collaborators.
func New(opts Options) *Engine {
	if opts.RequestBudget <= 0 {
		opts.RequestBudget = 30 * time.Second
	}
	if opts.Recommender == nil {
		opts.Recommender = recommend.NewEngine()
	}
	return &Engine{
		cache:       opts.Cache,
		features:    opts.Features,
		predictors:  opts.Predictors,
		recommender: opts.Recommender,
		outcomes:    opts.Outcomes,
		weights:     opts.ConfidenceWeights,
		budget:      opts.RequestBudget,
		log:         opts.Logger,
		now:         time.Now,
	}
}

// PredictSuccess runs one prediction cycle. Cache hits return the stored
// prediction verbatim, recommendations included. The returned error is
// either a validation failure or a fallback chain exhaustion; the latter
// means the chain itself is misconfigured, since the minimal tier cannot
// fail.
func (e *Engine) PredictSuccess(ctx context.Context, req *types.PredictionRequest) (*types.SuccessPrediction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	fingerprint := req.Fingerprint()
	featureKey := req.FeatureKey()
	log := e.log.With().Str("fingerprint", shortID(fingerprint)).Logger()

	if cached, ok := e.cache.GetPrediction(fingerprint); ok {
		log.Debug().Msg("prediction cache hit")
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.budget)
	defer cancel()

	vector := e.featureVector(ctx, req, featureKey, log)

	results, err := predict.RunAll(ctx, e.predictors, vector)
	if err != nil {
		return nil, err
	}

	prediction := e.assemble(fingerprint, vector, results)
	prediction.Recommendations = e.recommender.Recommend(vector, prediction)

	e.cache.SetPrediction(fingerprint, featureKey, prediction)
	log.Info().
		Str("degradation", string(prediction.Degradation)).
		Float64("overall_confidence", prediction.OverallConfidence).
		Msg("prediction generated")
	return prediction, nil
}

// ExtractFeatures validates req and returns its feature vector without
// running the predictors. Cache semantics match the prediction path, so a
// vector extracted here is reused by a following PredictSuccess call.
func (e *Engine) ExtractFeatures(ctx context.Context, req *types.PredictionRequest) (*types.FeatureVector, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	log := e.log.With().Str("fingerprint", shortID(req.Fingerprint())).Logger()
	return e.featureVector(ctx, req, req.FeatureKey(), log), nil
}

// featureVector serves the feature cache or runs the extractors. Degraded
// vectors are not cached: a later request with the same feature key gets a
// fresh chance at full extraction.
func (e *Engine) featureVector(ctx context.Context, req *types.PredictionRequest, featureKey string, log zerolog.Logger) *types.FeatureVector {
	if cached, ok := e.cache.GetFeatures(featureKey); ok {
		log.Debug().Msg("feature cache hit")
		return cached
	}
	vector := e.features.Run(ctx, req)
	if !vector.PartiallyDegraded {
		e.cache.SetFeatures(featureKey, vector)
	}
	return vector
}

// RecordOutcome stores a real-world result against its fingerprint. The
// record is accepted even when no prediction is cached for the fingerprint;
// predictions expire, outcomes do not.
func (e *Engine) RecordOutcome(ctx context.Context, rec *types.OutcomeRecord) error {
	return e.outcomes.Record(ctx, rec)
}

// Invalidate drops the cached prediction and its linked feature entry. Call
// it when the upstream CV or job data changes out from under a fingerprint.
func (e *Engine) Invalidate(fingerprint string) {
	e.cache.Invalidate(fingerprint)
}

// Calibration aggregates recorded outcomes for one dimension over [from, to).
func (e *Engine) Calibration(ctx context.Context, dim types.Dimension, from, to time.Time) (*types.CalibrationStats, error) {
	return e.outcomes.Calibration(ctx, dim, from, to)
}

// CacheStats reports hit rates and entry counts for both cache namespaces.
func (e *Engine) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// assemble folds the per-dimension outcomes into one immutable prediction.
func (e *Engine) assemble(fingerprint string, vector *types.FeatureVector, results map[types.Dimension]*predict.Outcome) *types.SuccessPrediction {
	p := &types.SuccessPrediction{
		Fingerprint: fingerprint,
		Confidences: make(map[types.Dimension]float64, len(results)),
		Tiers:       make(map[types.Dimension]types.Tier, len(results)),
		GeneratedAt: e.now(),
	}

	for dim, out := range results {
		p.Confidences[dim] = out.Confidence
		p.Tiers[dim] = out.Tier
		switch dim {
		case types.DimensionInterview:
			p.InterviewProbability = out.Value
		case types.DimensionOffer:
			p.OfferProbability = out.Value
		case types.DimensionSalary:
			p.Salary = types.SalaryEstimate{
				Point:    out.Value,
				Min:      out.RangeMin,
				Max:      out.RangeMax,
				Currency: defaultCurrency,
			}
		case types.DimensionTimeToHire:
			p.TimeToHireDays = out.Value
		case types.DimensionCompetitiveness:
			p.Competitiveness = out.Value
		}
	}

	p.OverallConfidence = e.overallConfidence(p.Confidences, vector)
	p.Degradation = degradationOf(p.Tiers)
	return p
}

// overallConfidence is the weighted average of the per-dimension
// confidences, down-weighted when feature categories were defaulted.
func (e *Engine) overallConfidence(confidences map[types.Dimension]float64, vector *types.FeatureVector) float64 {
	var weighted, total float64
	for dim, c := range confidences {
		w := 1.0
		if cw, ok := e.weights[string(dim)]; ok {
			w = cw
		}
		weighted += w * c
		total += w
	}
	if total == 0 {
		return 0
	}
	overall := weighted / total

	if vector.PartiallyDegraded {
		mult := 1 - degradedCategoryPenalty*float64(len(vector.DegradedCategories))
		if mult < minDegradedMultiplier {
			mult = minDegradedMultiplier
		}
		overall *= mult
	}
	return overall
}

// degradationOf collapses the per-dimension tiers into one flag: full when
// every dimension came from the model, minimal when none did, partial
// otherwise.
func degradationOf(tiers map[types.Dimension]types.Tier) types.Degradation {
	model, other := 0, 0
	for _, t := range tiers {
		if t == types.TierModel {
			model++
		} else {
			other++
		}
	}
	switch {
	case other == 0:
		return types.DegradationFull
	case model == 0:
		return types.DegradationMinimal
	default:
		return types.DegradationPartial
	}
}

func shortID(fingerprint string) string {
	if len(fingerprint) > 12 {
		return fingerprint[:12]
	}
	return fingerprint
}
