package cluster_bn254

import (
	"context"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/eon-protocol/eoncluster"
)

func addJac(acc, p curve.G1Jac) curve.G1Jac {
	acc.AddAssign(&p)
	return acc
}

// PreAggregate is the BN254 G1 counterpart of cluster_bls12381.PreAggregate.
func PreAggregate(ctx context.Context, points []curve.G1Affine, digits []int32, numRows int, cfg eoncluster.Config) (*eoncluster.CSR[curve.G1Affine], eoncluster.Stats, error) {
	jac := make([]curve.G1Jac, len(points))
	for i := range points {
		jac[i].FromAffine(&points[i])
	}
	csr, st, err := eoncluster.Precompute(ctx, jac, digits, numRows, addJac, cfg)
	if err != nil {
		return nil, eoncluster.Stats{}, err
	}
	data := []curve.G1Affine{}
	if len(csr.Data) > 0 {
		data = curve.BatchJacobianToAffineG1(csr.Data)
	}
	return &eoncluster.CSR[curve.G1Affine]{Data: data, ColIdx: csr.ColIdx, RowPtr: csr.RowPtr}, st, nil
}

func DigitScalars(digits []int32) []fr.Element {
	out := make([]fr.Element, len(digits))
	for i, d := range digits {
		out[i].SetInt64(int64(d))
	}
	return out
}

// RowMSM computes sum(digit * point) per row on the CPU.
func RowMSM(csr *eoncluster.CSR[curve.G1Affine]) ([]curve.G1Jac, error) {
	var inf curve.G1Affine
	out := make([]curve.G1Jac, csr.NumRows())
	for r := range out {
		out[r].FromAffine(&inf)
		pts, digits := csr.Row(r)
		if len(pts) == 0 {
			continue
		}
		if _, err := out[r].MultiExp(pts, DigitScalars(digits), ecc.MultiExpConfig{}); err != nil {
			return nil, fmt.Errorf("row %d: %w", r, err)
		}
	}
	return out, nil
}

func RandomPoints(n int) ([]curve.G1Affine, error) {
	_, _, g1, _ := curve.Generators()
	scalars := make([]fr.Element, n)
	for i := range scalars {
		if _, err := scalars[i].SetRandom(); err != nil {
			return nil, err
		}
	}
	if n == 0 {
		return []curve.G1Affine{}, nil
	}
	return curve.BatchScalarMultiplicationG1(&g1, scalars), nil
}
