package cluster_bls12381

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/eon-protocol/eoncluster"
)

// DigitScalars maps signed window digits into Fr.
func DigitScalars(digits []int32) []fr.Element {
	out := make([]fr.Element, len(digits))
	for i, d := range digits {
		out[i].SetInt64(int64(d))
	}
	return out
}

// RowMSM computes sum(digit * point) for every row of the reduced matrix on
// the CPU. It is the reference a device bucket pass must agree with.
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
