package cluster_bls12381

import (
	"context"
	"fmt"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/eon-protocol/eoncluster"
	"github.com/eon-protocol/eoncluster/gpu"
)

type Prepared struct {
	CSR   *eoncluster.CSR[curve.G1Affine]
	Stats eoncluster.Stats
	// Device is nil unless the matrix was handed to icicle.
	Device *gpu.DeviceCSR
}

// Prepare pre-aggregates on the host and, when cfg.Accelerator is icicle
// and the binary was built with it, uploads the reduced matrix. Without
// icicle support the host result is returned alone.
func Prepare(ctx context.Context, points []curve.G1Affine, digits []int32, numRows int, cfg eoncluster.Config) (*Prepared, error) {
	csr, st, err := PreAggregate(ctx, points, digits, numRows, cfg)
	if err != nil {
		return nil, err
	}
	out := &Prepared{CSR: csr, Stats: st}

	if cfg.Accelerator != eoncluster.ACCELERATOR_ICICLE {
		return out, nil
	}
	if !gpu.HasIcicle {
		log := cfg.Log("gpu_router")
		log.Warn().Msg("icicle requested but not compiled in; keeping host result")
		return out, nil
	}
	if out.Device, err = gpu.UploadBLS12381(csr); err != nil {
		return nil, fmt.Errorf("upload: %w", err)
	}
	return out, nil
}
