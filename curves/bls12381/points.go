package cluster_bls12381

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// A point is stored as the raw limbs of X then Y, each limb a big-endian
// uint64.
const POINT_SIZE = 2 * fp.Limbs * 8

var ErrPointFormat = errors.New("cluster_bls12381: malformed point data")

// ParsePoints decodes size points from raw. Short input and off-curve
// points are reported as ErrPointFormat.
func ParsePoints(raw []byte, size int) (val []curve.G1Affine, err error) {
	var g1 curve.G1Affine
	buf := make([]byte, 8)
	reader := bytes.NewReader(raw)
	val = make([]curve.G1Affine, 0, size)
	for n := 0; n < size; n++ {
		for i := 0; i < fp.Limbs; i++ {
			if _, err = io.ReadFull(reader, buf); err != nil {
				return nil, fmt.Errorf("%w: point %d truncated", ErrPointFormat, n)
			}
			g1.X[i] = binary.BigEndian.Uint64(buf)
		}
		for i := 0; i < fp.Limbs; i++ {
			if _, err = io.ReadFull(reader, buf); err != nil {
				return nil, fmt.Errorf("%w: point %d truncated", ErrPointFormat, n)
			}
			g1.Y[i] = binary.BigEndian.Uint64(buf)
		}
		if !g1.IsOnCurve() {
			return nil, fmt.Errorf("%w: point %d is not on the curve", ErrPointFormat, n)
		}
		val = append(val, g1)
	}
	return
}

// ReadPoints reads every point from r.
func ReadPoints(r io.Reader) ([]curve.G1Affine, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	size := len(raw) / POINT_SIZE
	if size*POINT_SIZE != len(raw) {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d", ErrPointFormat, len(raw), POINT_SIZE)
	}
	return ParsePoints(raw, size)
}

func WritePoints(w io.Writer, points []curve.G1Affine) error {
	var buf bytes.Buffer
	for _, xy := range points {
		for _, v := range xy.X {
			if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
				return err
			}
		}
		for _, v := range xy.Y {
			if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
				return err
			}
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// RandomPoints returns n independent multiples of the G1 generator.
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
