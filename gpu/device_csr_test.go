//go:build icicle

package gpu_test

import (
	"context"
	"math/rand/v2"
	"testing"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/eon-protocol/eoncluster"
	cluster_bls12381 "github.com/eon-protocol/eoncluster/curves/bls12381"
	"github.com/eon-protocol/eoncluster/gpu"
)

func TestDeviceRowMSM(t *testing.T) {
	nop := zerolog.Nop()
	cfg := eoncluster.DefaultConfig()
	cfg.Logger = &nop

	rng := rand.New(rand.NewPCG(11, 12))
	const rows, cols = 8, 256
	points, err := cluster_bls12381.RandomPoints(cols)
	require.NoError(t, err, "RandomPoints")
	digits := make([]int32, rows*cols)
	for i := range digits {
		digits[i] = rng.Int32N(1 << 6)
	}

	csr, _, err := cluster_bls12381.PreAggregate(context.Background(), points, digits, rows, cfg)
	require.NoError(t, err, "PreAggregate")
	want, err := cluster_bls12381.RowMSM(csr)
	require.NoError(t, err, "RowMSM")

	dev, err := gpu.UploadBLS12381(csr)
	require.NoError(t, err, "UploadBLS12381")
	t.Cleanup(func() { _ = dev.Free() })
	require.Equal(t, rows, dev.NumRows())

	got, err := dev.RowMSM()
	require.NoError(t, err, "DeviceCSR.RowMSM")
	for r := range got {
		var g curve.G1Jac
		g.FromAffine(&got[r])
		require.True(t, want[r].Equal(&g), "row %d", r)
	}

	require.NoError(t, dev.Free(), "Free")
	require.True(t, dev.Points.IsEmpty())
	require.True(t, dev.Digits.IsEmpty())
	require.True(t, dev.RowPtr.IsEmpty())
	require.NoError(t, dev.Free(), "second Free")
}
