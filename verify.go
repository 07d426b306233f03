package eoncluster

// Verify checks that l is a valid clustering of m:
//   - the ranges are non-empty, ordered and tile [0, len(Indices)) without gaps
//   - RowPtr assigns every cluster to exactly one row and no range leaves its row
//   - every member of a cluster carries the cluster's nonzero digit
//   - no two clusters of a row share a digit
//   - each nonzero entry of m appears exactly once and no zero entry appears
func Verify(m *Matrix, l *Layout) error {
	if len(l.Start) != len(l.End) {
		return invariant(-1, "%d cluster starts but %d ends", len(l.Start), len(l.End))
	}
	if len(l.RowPtr) != m.numRows+1 {
		return invariant(-1, "row pointer has %d entries for %d rows", len(l.RowPtr), m.numRows)
	}
	if l.RowPtr[0] != 0 || int(l.RowPtr[m.numRows]) != len(l.Start) {
		return invariant(-1, "row pointer spans [%d, %d), want [0, %d)", l.RowPtr[0], l.RowPtr[m.numRows], len(l.Start))
	}

	var next uint32
	for k := range l.Start {
		if l.Start[k] != next {
			return invariant(k, "starts at %d, previous cluster ended at %d", l.Start[k], next)
		}
		if l.End[k] <= l.Start[k] {
			return invariant(k, "empty range [%d, %d)", l.Start[k], l.End[k])
		}
		next = l.End[k]
	}
	if int(next) != len(l.Indices) {
		return invariant(-1, "clusters cover %d of %d indices", next, len(l.Indices))
	}

	seen := make([]bool, m.Len())
	for r := 0; r < m.numRows; r++ {
		lo, hi := l.RowPtr[r], l.RowPtr[r+1]
		if hi < lo || int(hi) > len(l.Start) {
			return invariant(-1, "row %d has clusters [%d, %d)", r, lo, hi)
		}
		digits := make(map[int32]int, hi-lo)
		for k := int(lo); k < int(hi); k++ {
			members := l.Cluster(k)
			digit := int32(0)
			for i, idx := range members {
				if int(idx) >= m.Len() {
					return invariant(k, "index %d outside the matrix", idx)
				}
				if got := m.RowOf(idx); got != r {
					return invariant(k, "index %d belongs to row %d, cluster is in row %d", idx, got, r)
				}
				if seen[idx] {
					return invariant(k, "index %d appears twice", idx)
				}
				seen[idx] = true
				d := m.digits[idx]
				if d == 0 {
					return invariant(k, "zero digit at index %d was clustered", idx)
				}
				if i == 0 {
					digit = d
				} else if d != digit {
					return invariant(k, "index %d has digit %d, cluster digit is %d", idx, d, digit)
				}
			}
			if prev, ok := digits[digit]; ok {
				return invariant(k, "digit %d already clustered by cluster %d of row %d", digit, prev, r)
			}
			digits[digit] = k
		}
	}

	for i, d := range m.digits {
		if d != 0 && !seen[i] {
			return invariant(-1, "nonzero index %d was dropped", i)
		}
	}
	return nil
}
