package eoncluster

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func labels(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

// joinLabels records the summands in order, which lets tests see exactly
// which points went into a cluster.
func joinLabels(acc, p string) string {
	return acc + "+" + p
}

func addInt(acc, p int64) int64 {
	return acc + p
}

// randomDigits draws signed digits in (-bound, bound), bound >= 2, with roughly a
// zeroFrac share of zeros.
func randomDigits(rng *rand.Rand, n int, bound int32, zeroFrac float64) []int32 {
	out := make([]int32, n)
	for i := range out {
		if rng.Float64() < zeroFrac {
			continue
		}
		for out[i] == 0 {
			out[i] = rng.Int32N(2*bound-1) - (bound - 1)
		}
	}
	return out
}

func randomPoints(rng *rand.Rand, n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = rng.Int64N(1 << 40)
	}
	return out
}

func mustMatrix(t *testing.T, digits []int32, numRows int) *Matrix {
	t.Helper()
	m, err := NewMatrix(digits, numRows)
	require.NoError(t, err, "NewMatrix")
	return m
}

// bruteForce sums the points of each (row, digit) pair directly.
func bruteForce(m *Matrix, points []int64) []map[int32]int64 {
	out := make([]map[int32]int64, m.NumRows())
	for r := range out {
		out[r] = make(map[int32]int64)
		for c, d := range m.Row(r) {
			if d != 0 {
				out[r][d] += points[r*m.NumCols()+c]
			}
		}
	}
	return out
}
