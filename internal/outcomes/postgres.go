package outcomes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/success-predictor/internal/types"
)

// Postgres is a Store backed by a PostgreSQL connection pool. The
// outcomes table carries a unique constraint on (fingerprint, type) so
// repeat reports upsert instead of double-counting.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Record upserts an outcome on its (fingerprint, type) natural key.
func (p *Postgres) Record(ctx context.Context, rec *types.OutcomeRecord) error {
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
		rec.RecordedAt = time.Now()
	}

	_, err := p.pool.Exec(ctx,
		`INSERT INTO outcomes (id, fingerprint, type, occurred, value, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (fingerprint, type)
		 DO UPDATE SET occurred = $4, value = $5, recorded_at = $6`,
		rec.ID, rec.Fingerprint, string(rec.Type), rec.Occurred, rec.Value, rec.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}
	return nil
}

// Calibration aggregates outcomes for one dimension over [from, to).
func (p *Postgres) Calibration(ctx context.Context, dim types.Dimension, from, to time.Time) (*types.CalibrationStats, error) {
	outcomeTypes := typesForDimension(dim)
	if len(outcomeTypes) == 0 {
		return nil, fmt.Errorf("unknown dimension %q", dim)
	}

	stats := &types.CalibrationStats{Dimension: dim, From: from, To: to}
	upper := to
	if upper.IsZero() {
		upper = time.Now().Add(24 * time.Hour)
	}

	switch dim {
	case types.DimensionInterview, types.DimensionOffer:
		var positives int
		err := p.pool.QueryRow(ctx,
			`SELECT COUNT(*), COUNT(*) FILTER (WHERE occurred)
			 FROM outcomes
			 WHERE type = ANY($1) AND recorded_at >= $2 AND recorded_at < $3`,
			outcomeTypes, from, upper,
		).Scan(&stats.SampleCount, &positives)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate outcomes: %w", err)
		}
		if stats.SampleCount > 0 {
			stats.PositiveRate = float64(positives) / float64(stats.SampleCount)
		}
	default:
		var mean, min, max *float64
		err := p.pool.QueryRow(ctx,
			`SELECT COUNT(*), AVG(value), MIN(value), MAX(value)
			 FROM outcomes
			 WHERE type = ANY($1) AND recorded_at >= $2 AND recorded_at < $3`,
			outcomeTypes, from, upper,
		).Scan(&stats.SampleCount, &mean, &min, &max)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate outcomes: %w", err)
		}
		if mean != nil {
			stats.MeanValue = *mean
		}
		if min != nil {
			stats.MinValue = *min
		}
		if max != nil {
			stats.MaxValue = *max
		}
	}
	return stats, nil
}

// List returns every record for a fingerprint, oldest first.
func (p *Postgres) List(ctx context.Context, fingerprint string) ([]types.OutcomeRecord, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, fingerprint, type, occurred, value, recorded_at
		 FROM outcomes WHERE fingerprint = $1 ORDER BY recorded_at`,
		fingerprint,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list outcomes: %w", err)
	}
	defer rows.Close()

	var out []types.OutcomeRecord
	for rows.Next() {
		var rec types.OutcomeRecord
		var typ string
		if err := rows.Scan(&rec.ID, &rec.Fingerprint, &typ, &rec.Occurred, &rec.Value, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		rec.Type = types.OutcomeType(typ)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read outcomes: %w", err)
	}
	return out, nil
}

func typesForDimension(dim types.Dimension) []string {
	var out []string
	for _, t := range []types.OutcomeType{
		types.OutcomeInterview, types.OutcomeOffer,
		types.OutcomeSalary, types.OutcomeTimeToHire,
	} {
		if t.Dimension() == dim {
			out = append(out, string(t))
		}
	}
	return out
}
