package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/success-predictor/internal/cache"
	"github.com/jonathan/success-predictor/internal/config"
	"github.com/jonathan/success-predictor/internal/engine"
	"github.com/jonathan/success-predictor/internal/fallback"
	"github.com/jonathan/success-predictor/internal/features"
	"github.com/jonathan/success-predictor/internal/llm"
	"github.com/jonathan/success-predictor/internal/market"
	"github.com/jonathan/success-predictor/internal/outcomes"
	"github.com/jonathan/success-predictor/internal/platform/httpclient"
	"github.com/jonathan/success-predictor/internal/predict"
)

// buildEngine assembles the prediction engine from configuration. The
// returned cleanup closes the model client and database pool; call it when
// the process is done.
func buildEngine(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*engine.Engine, func(), error) {
	cleanups := []func(){}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Model tier is optional: without an API key every chain starts at the
	// heuristic tier.
	var model fallback.Strategy
	if cfg.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create model client: %w", err)
		}
		cleanups = append(cleanups, func() { _ = client.Close() })
		model = predict.NewModelStrategy(llm.NewScorer(client))
	}

	// Market source is optional too: without a provider URL the market
	// extractor sees neutral signals instead of failing every request.
	var source features.MarketSource
	if cfg.MarketDataURL != "" {
		source = market.NewHTTPSource(cfg.MarketDataURL, httpclient.New(httpclient.Options{}))
	} else {
		source = &market.Static{Result: &market.Signals{DemandIndex: 0.5, CompetitionIndex: 0.5}}
	}

	var outcomeStore outcomes.Store
	if cfg.DatabaseURL != "" {
		pg, err := outcomes.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to connect outcome store: %w", err)
		}
		cleanups = append(cleanups, pg.Close)
		outcomeStore = pg
	} else {
		outcomeStore = outcomes.NewMemory()
	}

	store := cache.NewMemory(cache.Options{
		PredictionTTL: time.Duration(cfg.PredictionTTL),
		FeatureTTL:    time.Duration(cfg.FeatureTTL),
		Cap:           cfg.CacheCap,
	})
	store.StartSweeper(ctx, time.Duration(cfg.SweepInterval))

	eng := engine.New(engine.Options{
		Cache: store,
		Features: features.New(source, features.Options{
			Timeout: time.Duration(cfg.ExtractorTimeout),
			Logger:  log,
		}),
		Predictors:        predict.NewSet(model, time.Duration(cfg.TierTimeout), log),
		Outcomes:          outcomeStore,
		ConfidenceWeights: cfg.ConfidenceWeights,
		RequestBudget:     time.Duration(cfg.RequestBudget),
		Logger:            log,
	})
	return eng, cleanup, nil
}
