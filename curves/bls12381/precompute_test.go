package cluster_bls12381

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eon-protocol/eoncluster"
)

func testConfig() eoncluster.Config {
	nop := zerolog.Nop()
	cfg := eoncluster.DefaultConfig()
	cfg.Logger = &nop
	cfg.Verify = true
	return cfg
}

func randomDigits(rng *rand.Rand, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = rng.Int32N(15) - 7
	}
	return out
}

func TestPreAggregate(t *testing.T) {
	t.Run("ClusterSums", func(t *testing.T) {
		points, err := RandomPoints(8)
		require.NoError(t, err, "RandomPoints")
		cfg := testConfig()
		cfg.Ordering = eoncluster.FirstSeenOrder

		csr, _, err := PreAggregate(context.Background(), points, []int32{4, 4, 4, 3, 3, 3, 3, 0}, 1, cfg)
		require.NoError(t, err, "PreAggregate")
		require.Len(t, csr.Data, 2)
		require.Equal(t, []int32{4, 3}, csr.ColIdx)

		var want0, want1 curve.G1Affine
		want0.Add(&points[0], &points[1]).Add(&want0, &points[2])
		want1.Add(&points[3], &points[4]).Add(&want1, &points[5]).Add(&want1, &points[6])
		require.True(t, want0.Equal(&csr.Data[0]), "P0+P1+P2")
		require.True(t, want1.Equal(&csr.Data[1]), "P3+P4+P5+P6")
	})
	t.Run("RowMSMMatchesDirect", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 8))
		const rows, cols = 4, 64
		points, err := RandomPoints(cols)
		require.NoError(t, err, "RandomPoints")
		digits := randomDigits(rng, rows*cols)

		csr, st, err := PreAggregate(context.Background(), points, digits, rows, testConfig())
		require.NoError(t, err, "PreAggregate")
		require.Less(t, st.Clusters, st.Nonzero)

		got, err := RowMSM(csr)
		require.NoError(t, err, "RowMSM")
		require.Len(t, got, rows)
		for r := 0; r < rows; r++ {
			var want curve.G1Jac
			_, err := want.MultiExp(points, DigitScalars(digits[r*cols:(r+1)*cols]), ecc.MultiExpConfig{})
			require.NoError(t, err, "MultiExp(row %d)", r)
			require.True(t, want.Equal(&got[r]), "row %d", r)
		}
	})
	t.Run("ZeroRow", func(t *testing.T) {
		points, err := RandomPoints(4)
		require.NoError(t, err, "RandomPoints")

		csr, _, err := PreAggregate(context.Background(), points, []int32{0, 0, 0, 0, 1, 2, 1, 0}, 2, testConfig())
		require.NoError(t, err, "PreAggregate")
		require.Equal(t, []uint32{0, 0, 2}, csr.RowPtr)

		got, err := RowMSM(csr)
		require.NoError(t, err, "RowMSM")
		require.True(t, got[0].Z.IsZero(), "empty row sums to infinity")
	})
	t.Run("PointCount", func(t *testing.T) {
		points, err := RandomPoints(3)
		require.NoError(t, err, "RandomPoints")
		_, _, err = PreAggregate(context.Background(), points, make([]int32, 8), 2, testConfig())
		require.ErrorIs(t, err, eoncluster.ErrConfiguration)
	})
}

func TestPoints(t *testing.T) {
	points, err := RandomPoints(5)
	require.NoError(t, err, "RandomPoints")
	points = append(points, curve.G1Affine{})

	var buf bytes.Buffer
	require.NoError(t, WritePoints(&buf, points), "WritePoints")
	require.Equal(t, len(points)*POINT_SIZE, buf.Len())
	raw := buf.Bytes()

	t.Run("RoundTrip", func(t *testing.T) {
		got, err := ReadPoints(bytes.NewReader(raw))
		require.NoError(t, err, "ReadPoints")
		require.Equal(t, points, got)
	})
	t.Run("Truncated", func(t *testing.T) {
		_, err := ReadPoints(bytes.NewReader(raw[:len(raw)-1]))
		require.ErrorIs(t, err, ErrPointFormat)
	})
	t.Run("ParseTruncated", func(t *testing.T) {
		got, err := ParsePoints(raw[:2*POINT_SIZE-5], 2)
		require.ErrorIs(t, err, ErrPointFormat)
		require.Nil(t, got)

		got, err = ParsePoints(raw[:POINT_SIZE], 2)
		require.ErrorIs(t, err, ErrPointFormat)
		require.Nil(t, got)
	})
	t.Run("OffCurve", func(t *testing.T) {
		var bad curve.G1Affine
		bad.X.SetOne()
		bad.Y.SetOne()
		var b bytes.Buffer
		require.NoError(t, WritePoints(&b, []curve.G1Affine{bad}), "WritePoints")
		_, err := ReadPoints(&b)
		require.ErrorIs(t, err, ErrPointFormat)
	})
}
