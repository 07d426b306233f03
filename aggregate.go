package eoncluster

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// AddFunc is the group law. It must be associative and commutative and
// must not modify p; it may reuse acc.
type AddFunc[P any] func(acc, p P) P

// Aggregated holds one combined point and one digit per cluster, in the
// order of the layout's boundaries.
type Aggregated[P any] struct {
	Points []P
	Digits []int32
	RowPtr []uint32
}

func (me *Aggregated[P]) Len() int {
	return len(me.Points)
}

// pointSet resolves a flat matrix index to its point. A flat set has one
// point per matrix entry; a shared set has one point per column reused by
// every row.
type pointSet[P any] struct {
	points  []P
	numCols int
	shared  bool
}

func newPointSet[P any](points []P, m *Matrix) (pointSet[P], error) {
	switch {
	case len(points) == m.Len():
		return pointSet[P]{points: points, numCols: m.numCols}, nil
	case len(points) == m.numCols:
		return pointSet[P]{points: points, numCols: m.numCols, shared: true}, nil
	default:
		return pointSet[P]{}, configuration("%d points for a %dx%d digit matrix", len(points), m.numRows, m.numCols)
	}
}

func (me pointSet[P]) at(flat uint32) P {
	if me.shared {
		return me.points[int(flat)%me.numCols]
	}
	return me.points[flat]
}

// Aggregate reduces every cluster of l to a single point. A cluster with an
// empty or out of range span, or whose members disagree on the digit, is an
// assembler defect and is reported as ErrInvariant.
func Aggregate[P any](points []P, m *Matrix, l *Layout, add AddFunc[P]) (*Aggregated[P], error) {
	ps, err := newPointSet(points, m)
	if err != nil {
		return nil, err
	}
	out, err := newAggregated[P](l)
	if err != nil {
		return nil, err
	}
	if err := reduceClusters(ps, m, l, add, out, 0, l.NumClusters()); err != nil {
		return nil, err
	}
	return out, nil
}

// AggregateWithConfig splits the clusters into contiguous chunks reduced
// on up to cfg.Workers goroutines. Chunks write disjoint ranges of the
// output.
func AggregateWithConfig[P any](ctx context.Context, points []P, m *Matrix, l *Layout, add AddFunc[P], cfg Config) (*Aggregated[P], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	ps, err := newPointSet(points, m)
	if err != nil {
		return nil, err
	}
	out, err := newAggregated[P](l)
	if err != nil {
		return nil, err
	}
	log := cfg.Log(COMPONENT_AGGREGATE)
	start := time.Now()

	n := l.NumClusters()
	workers := min(cfg.Workers, max(1, n/MIN_CLUSTERS_PER_WORKER))
	chunk := (n + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return reduceClusters(ps, m, l, add, out, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().
		Int("clusters", n).
		Int("workers", workers).
		Dur("took", time.Since(start)).
		Msg("clusters aggregated")
	return out, nil
}

func newAggregated[P any](l *Layout) (*Aggregated[P], error) {
	if len(l.Start) != len(l.End) {
		return nil, invariant(-1, "%d cluster starts but %d ends", len(l.Start), len(l.End))
	}
	rowPtr := make([]uint32, len(l.RowPtr))
	copy(rowPtr, l.RowPtr)
	return &Aggregated[P]{
		Points: make([]P, len(l.Start)),
		Digits: make([]int32, len(l.Start)),
		RowPtr: rowPtr,
	}, nil
}

func reduceClusters[P any](ps pointSet[P], m *Matrix, l *Layout, add AddFunc[P], out *Aggregated[P], lo, hi int) error {
	for k := lo; k < hi; k++ {
		start, end := l.Start[k], l.End[k]
		if start >= end {
			return invariant(k, "empty range [%d, %d)", start, end)
		}
		if int(end) > len(l.Indices) {
			return invariant(k, "range [%d, %d) past %d indices", start, end, len(l.Indices))
		}
		first := l.Indices[start]
		if int(first) >= m.Len() {
			return invariant(k, "index %d outside the matrix", first)
		}
		digit := m.digits[first]
		if digit == 0 {
			return invariant(k, "zero digit at index %d was clustered", first)
		}
		acc := ps.at(first)
		for _, idx := range l.Indices[start+1 : end] {
			if int(idx) >= m.Len() {
				return invariant(k, "index %d outside the matrix", idx)
			}
			if d := m.digits[idx]; d != digit {
				return invariant(k, "index %d has digit %d, cluster digit is %d", idx, d, digit)
			}
			acc = add(acc, ps.at(idx))
		}
		out.Points[k] = acc
		out.Digits[k] = digit
	}
	return nil
}
