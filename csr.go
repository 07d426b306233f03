package eoncluster

import "fmt"

// CSR is the reduced matrix in compressed sparse row form, the shape the
// bucket kernel consumes: row r owns Data[RowPtr[r]:RowPtr[r+1]] and the
// matching ColIdx entries, which hold the bucket digit of each point.
type CSR[P any] struct {
	Data   []P
	ColIdx []int32
	RowPtr []uint32
}

// NewCSR shares the slices of agg.
func NewCSR[P any](agg *Aggregated[P]) *CSR[P] {
	return &CSR[P]{
		Data:   agg.Points,
		ColIdx: agg.Digits,
		RowPtr: agg.RowPtr,
	}
}

func (me *CSR[P]) NumRows() int {
	if len(me.RowPtr) == 0 {
		return 0
	}
	return len(me.RowPtr) - 1
}

// Row returns the points and digits of row r.
func (me *CSR[P]) Row(r int) ([]P, []int32) {
	lo, hi := me.RowPtr[r], me.RowPtr[r+1]
	return me.Data[lo:hi], me.ColIdx[lo:hi]
}

// Stats summarizes how much work pre-aggregation removed.
type Stats struct {
	Rows     int
	Cols     int
	Nonzero  int
	Clusters int
}

func NewStats(m *Matrix, l *Layout) Stats {
	return Stats{
		Rows:     m.numRows,
		Cols:     m.numCols,
		Nonzero:  len(l.Indices),
		Clusters: l.NumClusters(),
	}
}

// Reduction is the fraction of nonzero entries the kernel no longer sees.
func (s Stats) Reduction() float64 {
	if s.Nonzero == 0 {
		return 0
	}
	return 1 - float64(s.Clusters)/float64(s.Nonzero)
}

func (s Stats) String() string {
	return fmt.Sprintf("rows=%d cols=%d nonzero=%d clusters=%d reduction=%.2f%%",
		s.Rows, s.Cols, s.Nonzero, s.Clusters, 100*s.Reduction())
}
