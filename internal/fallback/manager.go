// Package fallback implements the three-tier degradation chain wrapped
// around every predictor call: model-backed, then heuristic, then a minimal
// default that never fails. The chain is an ordered list of strategies, each
// bounded by its own timeout, not nested conditionals.
package fallback

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jonathan/success-predictor/internal/types"
)

// Documented confidence constants for the non-model tiers. The heuristic is
// deterministic but coarse; the minimal default is context-free.
const (
	HeuristicConfidence = 0.5
	MinimalConfidence   = 0.2
)

// Result is the output of a strategy for one dimension.
type Result struct {
	Value      float64
	Confidence float64
	// RangeMin/RangeMax bound range dimensions (salary); zero elsewhere.
	RangeMin float64
	RangeMax float64
}

// Strategy is one tier of the chain.
type Strategy interface {
	Tier() types.Tier
	Predict(ctx context.Context, dim types.Dimension, vector *types.FeatureVector) (*Result, error)
}

// Manager tries strategies in order until one succeeds and records which
// tier served the dimension.
type Manager struct {
	strategies  []Strategy
	tierTimeout time.Duration
	log         zerolog.Logger
}

// NewManager builds a chain over the given ordered strategies. The last
// strategy is expected to be the sentinel that always succeeds.
func NewManager(strategies []Strategy, tierTimeout time.Duration, log zerolog.Logger) *Manager {
	if tierTimeout <= 0 {
		tierTimeout = 10 * time.Second
	}
	return &Manager{strategies: strategies, tierTimeout: tierTimeout, log: log}
}

// Chain builds the standard chain for a model strategy: model → heuristic →
// minimal. A nil model strategy yields a heuristic-first chain, used when no
// serving endpoint is configured.
func Chain(model Strategy, tierTimeout time.Duration, log zerolog.Logger) *Manager {
	strategies := make([]Strategy, 0, 3)
	if model != nil {
		strategies = append(strategies, model)
	}
	strategies = append(strategies, NewHeuristic(), NewMinimal())
	return NewManager(strategies, tierTimeout, log)
}

// Predict runs the chain for one dimension. The error return is reserved for
// total exhaustion of all tiers, which indicates a broken chain configuration
// (the minimal tier is context-free and cannot fail); callers must treat it
// as fatal, not as degradation.
func (m *Manager) Predict(ctx context.Context, dim types.Dimension, vector *types.FeatureVector) (*Result, types.Tier, error) {
	if len(m.strategies) == 0 {
		return nil, "", fmt.Errorf("no fallback tiers configured for %s: chain misconfigured", dim)
	}

	last := len(m.strategies) - 1
	for _, strategy := range m.strategies[:last] {
		result, err := m.tryTier(ctx, strategy, dim, vector)
		if err != nil {
			m.log.Debug().Err(err).
				Str("dimension", string(dim)).
				Str("tier", string(strategy.Tier())).
				Msg("tier failed, trying next")
			continue
		}
		return result, strategy.Tier(), nil
	}

	// The sentinel runs synchronously, outside the timeout select: it is
	// context-free, so an expired request budget must not keep it from
	// serving. Callers with an exhausted budget get a minimal result, not
	// an error.
	sentinel := m.strategies[last]
	result, err := sentinel.Predict(ctx, dim, vector)
	if err != nil || result == nil {
		return nil, "", fmt.Errorf("all fallback tiers exhausted for %s: chain misconfigured", dim)
	}
	return result, sentinel.Tier(), nil
}

// tryTier runs one strategy under the per-tier timeout. An already-expired
// context fails the tier without scheduling it.
func (m *Manager) tryTier(ctx context.Context, strategy Strategy, dim types.Dimension, vector *types.FeatureVector) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, m.tierTimeout)
	defer cancel()

	type outcome struct {
		result *Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := strategy.Predict(ctx, dim, vector)
		done <- outcome{result: r, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		if out.result == nil {
			return nil, fmt.Errorf("tier %s returned no result", strategy.Tier())
		}
		return out.result, nil
	}
}
