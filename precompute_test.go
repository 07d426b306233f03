package eoncluster

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestPrecompute(t *testing.T) {
	nop := zerolog.Nop()

	t.Run("CSR", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logger = &nop
		cfg.Verify = true

		csr, st, err := Precompute(context.Background(), labels("P", 8), []int32{3, 4, 4, 3, 4, 1, 0, 2}, 2, joinLabels, cfg)
		require.NoError(t, err, "Precompute")

		require.Equal(t, []string{"P1+P2", "P0+P3", "P4", "P5", "P7"}, csr.Data)
		require.Equal(t, []int32{4, 3, 4, 1, 2}, csr.ColIdx)
		require.Equal(t, []uint32{0, 2, 5}, csr.RowPtr)
		require.Equal(t, 2, csr.NumRows())

		data, digits := csr.Row(1)
		require.Equal(t, []string{"P4", "P5", "P7"}, data)
		require.Equal(t, []int32{4, 1, 2}, digits)

		require.Equal(t, Stats{Rows: 2, Cols: 4, Nonzero: 7, Clusters: 5}, st)
		require.InDelta(t, 2.0/7.0, st.Reduction(), 1e-9)
		require.Equal(t, "rows=2 cols=4 nonzero=7 clusters=5 reduction=28.57%", st.String())
	})
	t.Run("AllZero", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Logger = &nop
		csr, st, err := Precompute(context.Background(), labels("P", 4), make([]int32, 4), 1, joinLabels, cfg)
		require.NoError(t, err, "Precompute")
		require.Empty(t, csr.Data)
		require.Equal(t, []uint32{0, 0}, csr.RowPtr)
		require.Zero(t, st.Reduction())
	})
	t.Run("Indivisible", func(t *testing.T) {
		_, _, err := Precompute(context.Background(), labels("P", 7), make([]int32, 7), 2, joinLabels, DefaultConfig())
		require.ErrorIs(t, err, ErrConfiguration)
	})
	t.Run("PointCount", func(t *testing.T) {
		_, _, err := Precompute(context.Background(), labels("P", 3), make([]int32, 8), 2, joinLabels, DefaultConfig())
		require.ErrorIs(t, err, ErrConfiguration)
	})
	t.Run("UnknownOrdering", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Ordering = Ordering(7)
		_, _, err := Precompute(context.Background(), labels("P", 4), make([]int32, 4), 1, joinLabels, cfg)
		require.ErrorIs(t, err, ErrConfiguration)
	})
}
