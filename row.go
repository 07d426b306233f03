package eoncluster

// Layout is the reordered index list of one or more rows plus the
// half-open cluster ranges [Start[k], End[k]) into it.
//
// RowPtr has one entry per row plus one: the clusters of row r are
// RowPtr[r]..RowPtr[r+1]. A layout returned by BuildRow covers one row.
type Layout struct {
	Indices []uint32
	Start   []uint32
	End     []uint32
	RowPtr  []uint32
}

func (me *Layout) NumClusters() int {
	return len(me.Start)
}

func (me *Layout) NumRows() int {
	if len(me.RowPtr) == 0 {
		return 0
	}
	return len(me.RowPtr) - 1
}

// Cluster returns the flat indices of cluster k.
func (me *Layout) Cluster(k int) []uint32 {
	return me.Indices[me.Start[k]:me.End[k]]
}

// BuildRow clusters one row in ReferenceOrder. The returned boundaries
// index into the returned Indices, not into a global list.
func BuildRow(m *Matrix, row int) (*Layout, error) {
	return BuildRowOrdered(m, row, ReferenceOrder)
}

func BuildRowOrdered(m *Matrix, row int, ord Ordering) (*Layout, error) {
	if row < 0 || row >= m.numRows {
		return nil, configuration("row %d outside [0, %d)", row, m.numRows)
	}
	switch ord {
	case ReferenceOrder, FirstSeenOrder:
	default:
		return nil, configuration("unknown ordering %d", int(ord))
	}
	return buildRow(m, row, ord), nil
}

// rowGroups holds the nonzero columns of a row keyed by digit, with the
// digits in order of first appearance.
type rowGroups struct {
	order   []int32
	members map[int32][]uint32
	nonzero int
}

func groupRow(m *Matrix, row int) rowGroups {
	g := rowGroups{members: make(map[int32][]uint32)}
	base := uint32(row * m.numCols)
	for col, d := range m.Row(row) {
		if d == 0 {
			continue
		}
		g.nonzero++
		idx, ok := g.members[d]
		if !ok {
			g.order = append(g.order, d)
		}
		g.members[d] = append(idx, base+uint32(col))
	}
	return g
}

func buildRow(m *Matrix, row int, ord Ordering) *Layout {
	g := groupRow(m, row)
	l := &Layout{
		Indices: make([]uint32, 0, g.nonzero),
		Start:   make([]uint32, 0, len(g.order)),
		End:     make([]uint32, 0, len(g.order)),
	}
	// boundaries are recorded while placing, never re-derived from digit
	// transitions
	place := func(d int32) {
		l.Start = append(l.Start, uint32(len(l.Indices)))
		l.Indices = append(l.Indices, g.members[d]...)
		l.End = append(l.End, uint32(len(l.Indices)))
	}
	switch ord {
	case FirstSeenOrder:
		for _, d := range g.order {
			place(d)
		}
	default:
		for i := len(g.order) - 1; i >= 0; i-- {
			if d := g.order[i]; len(g.members[d]) > 1 {
				place(d)
			}
		}
		for _, d := range g.order {
			if len(g.members[d]) == 1 {
				place(d)
			}
		}
	}
	l.RowPtr = []uint32{0, uint32(len(l.Start))}
	return l
}
