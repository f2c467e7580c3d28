package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jonathan/success-predictor/internal/types"
)

const (
	defaultPredictionTTL = 24 * time.Hour
	defaultFeatureTTL    = 6 * time.Hour
	defaultCap           = 1000

	// evictFraction is the share of oldest entries dropped when a namespace
	// exceeds its cap. Approximate-LRU by insertion time; exact recency
	// tracking is not required.
	evictFraction = 0.10
)

type entry struct {
	payload   any
	createdAt time.Time
	// linkedFeatureKey is set on prediction entries so Invalidate can clear
	// the feature namespace from a fingerprint alone.
	linkedFeatureKey string
}

type namespace struct {
	entries map[string]entry
	ttl     time.Duration
	cap     int
	hits    int64
	misses  int64
}

// Memory is the in-process Store implementation. Safe for concurrent use;
// readers see a fully formed entry or nothing. Two writers racing on the same
// key resolve last-write-wins, which is acceptable because entries are
// idempotently recomputable.
type Memory struct {
	mu          sync.Mutex
	predictions *namespace
	features    *namespace
	now         func() time.Time
}

// NewMemory creates an in-memory two-namespace cache.
func NewMemory(opts Options) *Memory {
	if opts.PredictionTTL <= 0 {
		opts.PredictionTTL = defaultPredictionTTL
	}
	if opts.FeatureTTL <= 0 {
		opts.FeatureTTL = defaultFeatureTTL
	}
	if opts.Cap <= 0 {
		opts.Cap = defaultCap
	}
	return &Memory{
		predictions: &namespace{entries: make(map[string]entry), ttl: opts.PredictionTTL, cap: opts.Cap},
		features:    &namespace{entries: make(map[string]entry), ttl: opts.FeatureTTL, cap: opts.Cap},
		now:         time.Now,
	}
}

// GetPrediction returns the cached prediction for fingerprint, if fresh.
func (m *Memory) GetPrediction(fingerprint string) (*types.SuccessPrediction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(m.predictions, fingerprint)
	if !ok {
		return nil, false
	}
	p, ok := e.payload.(*types.SuccessPrediction)
	if !ok || p == nil {
		// Malformed entry: treat as a miss, never as an error.
		delete(m.predictions.entries, fingerprint)
		m.predictions.misses++
		return nil, false
	}
	m.predictions.hits++
	return p, true
}

// SetPrediction stores a prediction under fingerprint, linked to featureKey.
func (m *Memory) SetPrediction(fingerprint, featureKey string, p *types.SuccessPrediction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.predictions.entries[fingerprint] = entry{payload: p, createdAt: m.now(), linkedFeatureKey: featureKey}
	m.evictIfNeeded(m.predictions)
}

// GetFeatures returns the cached feature vector for featureKey, if fresh.
func (m *Memory) GetFeatures(featureKey string) (*types.FeatureVector, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.lookup(m.features, featureKey)
	if !ok {
		return nil, false
	}
	v, ok := e.payload.(*types.FeatureVector)
	if !ok || v == nil {
		delete(m.features.entries, featureKey)
		m.features.misses++
		return nil, false
	}
	m.features.hits++
	return v, true
}

// SetFeatures stores a feature vector under featureKey.
func (m *Memory) SetFeatures(featureKey string, v *types.FeatureVector) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.features.entries[featureKey] = entry{payload: v, createdAt: m.now()}
	m.evictIfNeeded(m.features)
}

// Invalidate removes the prediction under fingerprint and its linked feature
// entry from both namespaces.
func (m *Memory) Invalidate(fingerprint string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.predictions.entries[fingerprint]; ok {
		delete(m.predictions.entries, fingerprint)
		if e.linkedFeatureKey != "" {
			delete(m.features.entries, e.linkedFeatureKey)
		}
	}
	// A feature entry may exist under the same key if the caller keyed both
	// namespaces identically.
	delete(m.features.entries, fingerprint)
}

// Sweep purges expired entries from both namespaces and returns the count.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	purged := 0
	for _, ns := range []*namespace{m.predictions, m.features} {
		for key, e := range ns.entries {
			if m.expired(ns, e) {
				delete(ns.entries, key)
				purged++
			}
		}
	}
	return purged
}

// StartSweeper runs Sweep every interval until ctx is done.
func (m *Memory) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

// Stats reports entry counts and hit/miss totals per namespace.
func (m *Memory) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Predictions: NamespaceStats{Entries: len(m.predictions.entries), Hits: m.predictions.hits, Misses: m.predictions.misses},
		Features:    NamespaceStats{Entries: len(m.features.entries), Hits: m.features.hits, Misses: m.features.misses},
	}
}

// lookup fetches a fresh entry, counting absent or expired keys as misses.
// Hits are counted by the callers, after the payload type check, so a
// malformed entry registers exactly one miss. Callers hold mu.
func (m *Memory) lookup(ns *namespace, key string) (entry, bool) {
	e, ok := ns.entries[key]
	if !ok {
		ns.misses++
		return entry{}, false
	}
	if m.expired(ns, e) {
		delete(ns.entries, key)
		ns.misses++
		return entry{}, false
	}
	return e, true
}

func (m *Memory) expired(ns *namespace, e entry) bool {
	return m.now().Sub(e.createdAt) >= ns.ttl
}

// evictIfNeeded drops the oldest ~10% of entries when the namespace exceeds
// its cap. Callers hold mu.
func (m *Memory) evictIfNeeded(ns *namespace) {
	if len(ns.entries) <= ns.cap {
		return
	}

	type aged struct {
		key       string
		createdAt time.Time
	}
	all := make([]aged, 0, len(ns.entries))
	for key, e := range ns.entries {
		all = append(all, aged{key: key, createdAt: e.createdAt})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].createdAt.Before(all[j].createdAt) })

	n := int(float64(ns.cap) * evictFraction)
	if n < 1 {
		n = 1
	}
	// Always drop at least down to the cap.
	if over := len(ns.entries) - ns.cap; over > n {
		n = over
	}
	for i := 0; i < n && i < len(all); i++ {
		delete(ns.entries, all[i].key)
	}
}
