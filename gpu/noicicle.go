//go:build !icicle

package gpu

import (
	"errors"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/eon-protocol/eoncluster"
)

const HasIcicle = false

var errNoIcicle = errors.New("icicle requested but program compiled without 'icicle' build tag")

type DeviceCSR struct{}

func (d *DeviceCSR) NumRows() int {
	return 0
}

func UploadBLS12381(_ *eoncluster.CSR[curve.G1Affine]) (*DeviceCSR, error) {
	return nil, errNoIcicle
}

func (d *DeviceCSR) RowMSM() ([]curve.G1Affine, error) {
	return nil, errNoIcicle
}

func (d *DeviceCSR) Free() error {
	return nil
}
