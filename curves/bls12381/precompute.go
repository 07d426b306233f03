package cluster_bls12381

import (
	"context"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/eon-protocol/eoncluster"
)

// addJac is the group law used for pre-aggregation. acc is a copy, so the
// lifted point set is never written.
func addJac(acc, p curve.G1Jac) curve.G1Jac {
	acc.AddAssign(&p)
	return acc
}

func liftPoints(points []curve.G1Affine) []curve.G1Jac {
	jac := make([]curve.G1Jac, len(points))
	for i := range points {
		jac[i].FromAffine(&points[i])
	}
	return jac
}

// PreAggregate clusters the digit matrix and sums every cluster of G1
// points. points holds either one point per matrix entry or one point per
// column; see eoncluster.Aggregate.
func PreAggregate(ctx context.Context, points []curve.G1Affine, digits []int32, numRows int, cfg eoncluster.Config) (*eoncluster.CSR[curve.G1Affine], eoncluster.Stats, error) {
	csr, st, err := eoncluster.Precompute(ctx, liftPoints(points), digits, numRows, addJac, cfg)
	if err != nil {
		return nil, eoncluster.Stats{}, err
	}
	data := []curve.G1Affine{}
	if len(csr.Data) > 0 {
		data = curve.BatchJacobianToAffineG1(csr.Data)
	}
	return &eoncluster.CSR[curve.G1Affine]{
		Data:   data,
		ColIdx: csr.ColIdx,
		RowPtr: csr.RowPtr,
	}, st, nil
}
