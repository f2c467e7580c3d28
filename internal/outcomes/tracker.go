// Package outcomes records real-world results (interviews, offers,
// salaries, hiring timelines) against the request fingerprints they
// belong to, and aggregates them for calibration.
package outcomes

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/success-predictor/internal/types"
)

// Store persists outcome records. Recording is idempotent per
// (fingerprint, outcome type): a repeat report replaces the earlier one.
type Store interface {
	// Record stores an outcome. The record's ID and RecordedAt are
	// assigned when zero.
	Record(ctx context.Context, rec *types.OutcomeRecord) error

	// Calibration aggregates outcomes for one dimension over [from, to).
	Calibration(ctx context.Context, dim types.Dimension, from, to time.Time) (*types.CalibrationStats, error)

	// List returns all records for a fingerprint, oldest first.
	List(ctx context.Context, fingerprint string) ([]types.OutcomeRecord, error)
}

// Memory is an in-process Store. It is the default backend when no
// database is configured.
type Memory struct {
	mu      sync.RWMutex
	records map[string]types.OutcomeRecord // key: fingerprint + "\x00" + type
	now     func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string]types.OutcomeRecord),
		now:     time.Now,
	}
}

func recordKey(fingerprint string, t types.OutcomeType) string {
	return fingerprint + "\x00" + string(t)
}

// Record stores rec, replacing any earlier record for the same
// (fingerprint, type).
func (m *Memory) Record(ctx context.Context, rec *types.OutcomeRecord) error {
	if rec.Fingerprint == "" {
		return fmt.Errorf("outcome record missing fingerprint")
	}
	if !rec.Type.Valid() {
		return fmt.Errorf("unknown outcome type %q", rec.Type)
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[recordKey(rec.Fingerprint, rec.Type)] = *rec
	return nil
}

// Calibration aggregates all records whose type maps to dim and whose
// RecordedAt falls in [from, to). A zero "to" means no upper bound.
func (m *Memory) Calibration(ctx context.Context, dim types.Dimension, from, to time.Time) (*types.CalibrationStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &types.CalibrationStats{Dimension: dim, From: from, To: to}
	var positives int
	var sum float64
	for _, rec := range m.records {
		if rec.Type.Dimension() != dim {
			continue
		}
		if rec.RecordedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !rec.RecordedAt.Before(to) {
			continue
		}
		stats.SampleCount++
		switch rec.Type {
		case types.OutcomeInterview, types.OutcomeOffer:
			if rec.Occurred {
				positives++
			}
		case types.OutcomeSalary, types.OutcomeTimeToHire:
			sum += rec.Value
			if stats.SampleCount == 1 || rec.Value < stats.MinValue {
				stats.MinValue = rec.Value
			}
			if rec.Value > stats.MaxValue {
				stats.MaxValue = rec.Value
			}
		}
	}
	if stats.SampleCount > 0 {
		switch dim {
		case types.DimensionInterview, types.DimensionOffer:
			stats.PositiveRate = float64(positives) / float64(stats.SampleCount)
		case types.DimensionSalary, types.DimensionTimeToHire:
			stats.MeanValue = sum / float64(stats.SampleCount)
		}
	}
	return stats, nil
}

// List returns every record for a fingerprint, ordered by RecordedAt.
func (m *Memory) List(ctx context.Context, fingerprint string) ([]types.OutcomeRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []types.OutcomeRecord
	for _, rec := range m.records {
		if rec.Fingerprint == fingerprint {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.Before(out[j].RecordedAt) })
	return out, nil
}
