//go:build icicle

package gpu

import (
	"fmt"
	"log"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	icicle_core "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/core"
	icicle_bls12_381 "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bls12381"
	icicle_msm "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/curves/bls12381/msm"
	icicle_runtime "github.com/ingonyama-zk/icicle-gnark/v3/wrappers/golang/runtime"

	"github.com/eon-protocol/eoncluster"
)

const HasIcicle = true

// DeviceCSR is a reduced matrix resident on the device. Points are stored
// out of Montgomery form; Digits and RowPtr are copied as is.
type DeviceCSR struct {
	Device icicle_runtime.Device
	Points icicle_core.DeviceSlice
	Digits icicle_core.DeviceSlice
	RowPtr icicle_core.DeviceSlice

	rowPtr []uint32
	digits []int32
}

func (d *DeviceCSR) NumRows() int {
	return len(d.rowPtr) - 1
}

// UploadBLS12381 copies the reduced matrix to CUDA device 0.
func UploadBLS12381(csr *eoncluster.CSR[curve.G1Affine]) (*DeviceCSR, error) {
	if st := icicle_runtime.LoadBackendFromEnvOrDefault(); st != icicle_runtime.Success {
		return nil, fmt.Errorf("icicle backend: %s", st.AsString())
	}
	d := &DeviceCSR{
		Device: icicle_runtime.CreateDevice("CUDA", 0),
		rowPtr: csr.RowPtr,
		digits: csr.ColIdx,
	}
	if len(csr.Data) == 0 {
		return d, nil
	}

	var copyErr error
	done := make(chan struct{})
	icicle_runtime.RunOnDevice(&d.Device, func(args ...any) {
		defer close(done)

		icicle_core.HostSlice[curve.G1Affine](csr.Data).CopyToDevice(&d.Points, true)
		icicle_core.HostSlice[int32](csr.ColIdx).CopyToDevice(&d.Digits, true)
		icicle_core.HostSlice[uint32](csr.RowPtr).CopyToDevice(&d.RowPtr, true)

		if st := icicle_bls12_381.AffineFromMontgomery(d.Points); st != icicle_runtime.Success {
			copyErr = fmt.Errorf("AffineFromMontgomery: %s", st.AsString())
			_ = d.freeSlices()
		}
	})
	<-done
	if copyErr != nil {
		return nil, copyErr
	}
	log.Printf("[UploadBLS12381] points=%d rows=%d", len(csr.Data), d.NumRows())
	return d, nil
}

// RowMSM runs one device MSM per row over the uploaded points, weighting
// each aggregated point by its digit.
func (d *DeviceCSR) RowMSM() ([]curve.G1Affine, error) {
	out := make([]curve.G1Affine, d.NumRows())
	var runErr error
	done := make(chan struct{})
	icicle_runtime.RunOnDevice(&d.Device, func(args ...any) {
		defer close(done)

		for r := range out {
			lo, hi := int(d.rowPtr[r]), int(d.rowPtr[r+1])
			if lo == hi {
				continue
			}
			scalars := icicle_core.HostSliceFromElements(digitScalars(d.digits[lo:hi]))

			cfg := icicle_msm.GetDefaultMSMConfig()
			// gnark-crypto scalars are Montgomery, the bases were converted on upload
			cfg.AreScalarsMontgomeryForm = true
			cfg.AreBasesMontgomeryForm = false
			cfg.PrecomputeFactor = 1

			res := make(icicle_core.HostSlice[icicle_bls12_381.Projective], 1)
			if st := icicle_msm.Msm(scalars, d.Points.Range(lo, hi, false), &cfg, res); st != icicle_runtime.Success {
				runErr = fmt.Errorf("msm row %d: %s", r, st.AsString())
				return
			}
			out[r] = projectiveToAffine(res[0])
		}
	})
	<-done
	if runErr != nil {
		return nil, runErr
	}
	return out, nil
}

// Free releases the device slices on the device they were allocated on.
// Every slice is attempted and the first failure is returned. Freed slices
// are reset, so calling Free again is a no-op.
func (d *DeviceCSR) Free() error {
	var err error
	done := make(chan struct{})
	icicle_runtime.RunOnDevice(&d.Device, func(args ...any) {
		defer close(done)
		err = d.freeSlices()
	})
	<-done
	return err
}

// freeSlices must run inside RunOnDevice on d.Device.
func (d *DeviceCSR) freeSlices() error {
	var first error
	for _, s := range []*icicle_core.DeviceSlice{&d.Points, &d.Digits, &d.RowPtr} {
		if s.IsEmpty() {
			continue
		}
		if st := s.Free(); st != icicle_runtime.Success {
			if first == nil {
				first = fmt.Errorf("free: %s", st.AsString())
			}
			continue
		}
		*s = icicle_core.DeviceSlice{}
	}
	return first
}

func digitScalars(digits []int32) []fr.Element {
	out := make([]fr.Element, len(digits))
	for i, d := range digits {
		out[i].SetInt64(int64(d))
	}
	return out
}

func projectiveToAffine(p icicle_bls12_381.Projective) curve.G1Affine {
	bx := p.X.ToBytesLittleEndian()
	by := p.Y.ToBytesLittleEndian()
	bz := p.Z.ToBytesLittleEndian()

	var ax, ay, az fp.Element
	ax, _ = fp.LittleEndian.Element((*[fp.Bytes]byte)(bx))
	ay, _ = fp.LittleEndian.Element((*[fp.Bytes]byte)(by))
	az, _ = fp.LittleEndian.Element((*[fp.Bytes]byte)(bz))
	if az.IsZero() {
		return curve.G1Affine{}
	}

	var zInv fp.Element
	zInv.Inverse(&az)
	ax.Mul(&ax, &zInv)
	ay.Mul(&ay, &zInv)

	return curve.G1Affine{X: ax, Y: ay}
}
