// Package cache provides the two-namespace TTL cache for feature vectors and
// predictions. The orchestrator depends only on the Store interface; the
// bundled implementation is in-process, but an externally backed store can be
// substituted without touching the engine.
package cache

import (
	"time"

	"github.com/jonathan/success-predictor/internal/types"
)

// Namespace names one of the two cache partitions. TTLs are asymmetric:
// predictions amortize the expensive model calls and live longer, while
// features depend on volatile market data and refresh sooner.
type Namespace string

// The two cache namespaces.
const (
	NamespacePredictions Namespace = "predictions"
	NamespaceFeatures    Namespace = "features"
)

// Store is the cache contract used by the orchestrator.
//
// SetPrediction records the feature key alongside the prediction so that
// Invalidate, which only receives the request fingerprint, can clear the
// matching feature entry too.
type Store interface {
	GetPrediction(fingerprint string) (*types.SuccessPrediction, bool)
	SetPrediction(fingerprint, featureKey string, p *types.SuccessPrediction)
	GetFeatures(featureKey string) (*types.FeatureVector, bool)
	SetFeatures(featureKey string, v *types.FeatureVector)
	// Invalidate removes the prediction stored under fingerprint and the
	// feature entry it was linked to. Must be called when upstream CV data
	// changes.
	Invalidate(fingerprint string)
	// Sweep removes expired entries from both namespaces and returns the
	// number purged. Normally driven by a background ticker.
	Sweep() int
	Stats() Stats
}

// NamespaceStats reports entry counts and hit rates for one namespace.
type NamespaceStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// Stats reports cache performance for both namespaces.
type Stats struct {
	Predictions NamespaceStats `json:"predictions"`
	Features    NamespaceStats `json:"features"`
}

// Options configures the in-memory store.
type Options struct {
	PredictionTTL time.Duration // default 24h
	FeatureTTL    time.Duration // default 6h
	Cap           int           // max entries per namespace, default 1000
}
