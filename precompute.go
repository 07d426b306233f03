package eoncluster

import (
	"context"
	"fmt"
	"time"
)

// Precompute runs the whole host-side pass: it validates the digit matrix,
// clusters every row, pre-aggregates the clusters and returns the reduced
// matrix.
func Precompute[P any](ctx context.Context, points []P, digits []int32, numRows int, add AddFunc[P], cfg Config) (*CSR[P], Stats, error) {
	if err := cfg.validate(); err != nil {
		return nil, Stats{}, err
	}
	m, err := NewMatrix(digits, numRows)
	if err != nil {
		return nil, Stats{}, err
	}
	if _, err := newPointSet(points, m); err != nil {
		return nil, Stats{}, err
	}
	log := cfg.Log(COMPONENT_PRECOMPUTE)
	start := time.Now()

	l, err := AssembleWithConfig(ctx, m, cfg)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("assemble: %w", err)
	}
	agg, err := AggregateWithConfig(ctx, points, m, l, add, cfg)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("aggregate: %w", err)
	}

	st := NewStats(m, l)
	log.Debug().
		Int("rows", st.Rows).
		Int("cols", st.Cols).
		Int("nonzero", st.Nonzero).
		Int("clusters", st.Clusters).
		Float64("reduction", st.Reduction()).
		Dur("took", time.Since(start)).
		Msg("precompute done")
	return NewCSR(agg), st, nil
}
