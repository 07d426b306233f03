package eoncluster

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Concat joins row layouts in order. Totals are taken from the inputs up
// front so every output slice is allocated once; each input's boundaries
// are shifted by the number of indices that precede it.
//
// An input may itself span several rows (its RowPtr is carried over, so
// RowPtr [0] contributes no row); an input with no RowPtr is treated as a
// single row.
func Concat(rows []*Layout) *Layout {
	var nIndices, nClusters, nRows int
	for _, r := range rows {
		nIndices += len(r.Indices)
		nClusters += len(r.Start)
		if len(r.RowPtr) > 0 {
			nRows += r.NumRows()
		} else {
			nRows++
		}
	}
	out := &Layout{
		Indices: make([]uint32, 0, nIndices),
		Start:   make([]uint32, 0, nClusters),
		End:     make([]uint32, 0, nClusters),
		RowPtr:  make([]uint32, 1, nRows+1),
	}
	for _, r := range rows {
		offset := uint32(len(out.Indices))
		base := uint32(len(out.Start))
		for k := range r.Start {
			out.Start = append(out.Start, r.Start[k]+offset)
			out.End = append(out.End, r.End[k]+offset)
		}
		out.Indices = append(out.Indices, r.Indices...)
		if len(r.RowPtr) > 0 {
			for _, p := range r.RowPtr[1:] {
				out.RowPtr = append(out.RowPtr, p+base)
			}
		} else {
			out.RowPtr = append(out.RowPtr, uint32(len(out.Start)))
		}
	}
	return out
}

// Assemble clusters every row of m sequentially in ReferenceOrder.
func Assemble(m *Matrix) *Layout {
	rows := make([]*Layout, m.numRows)
	for r := range rows {
		rows[r] = buildRow(m, r, ReferenceOrder)
	}
	return Concat(rows)
}

// AssembleWithConfig builds rows on up to cfg.Workers goroutines. Each
// worker owns one slot of the row table and the table is concatenated in
// row order, so the result does not depend on scheduling.
func AssembleWithConfig(ctx context.Context, m *Matrix, cfg Config) (*Layout, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log := cfg.Log(COMPONENT_ASSEMBLE)
	start := time.Now()

	rows := make([]*Layout, m.numRows)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for r := range rows {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[r] = buildRow(m, r, cfg.Ordering)
			if cfg.OnRowDone != nil {
				cfg.OnRowDone(r)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l := Concat(rows)
	if cfg.Verify {
		if err := Verify(m, l); err != nil {
			return nil, err
		}
	}
	log.Debug().
		Int("rows", m.numRows).
		Int("cols", m.numCols).
		Int("clusters", l.NumClusters()).
		Str("ordering", cfg.Ordering.String()).
		Dur("took", time.Since(start)).
		Msg("layout assembled")
	return l, nil
}
