package main

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strconv"

	curve "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"

	"github.com/eon-protocol/eoncluster"
	cluster_bls12381 "github.com/eon-protocol/eoncluster/curves/bls12381"
)

// Reads BLS12-381 G1 points from stdin, draws one random c-bit digit per
// point and window, and reports how much pre-aggregation shrinks the
// bucket input.
func main() {
	logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger())

	if len(os.Args) < 3 || len(os.Args) > 4 {
		log.Fatalln("usage:", os.Args[0], "<num_windows>", "<window_bits>", "[icicle]", "< points.bin")
	}
	numRows, c, err := parseWindows(os.Args[1], os.Args[2])
	if err != nil {
		log.Fatalln(err)
	}
	cfg := eoncluster.DefaultConfig()
	if len(os.Args) == 4 {
		cfg.Accelerator = os.Args[3]
	}

	points, err := cluster_bls12381.ReadPoints(os.Stdin)
	if err != nil {
		log.Fatalln(err)
	}
	if len(points) == 0 {
		log.Fatalln("no points on stdin")
	}
	// one row per window, every row shares the point set
	digits := make([]int32, numRows*len(points))
	for i := range digits {
		digits[i] = rand.Int32N(1 << c)
	}

	bar := progressbar.Default(int64(numRows), "clustering windows")
	cfg.OnRowDone = func(int) { _ = bar.Add(1) }

	prepared, err := cluster_bls12381.Prepare(context.Background(), points, digits, numRows, cfg)
	if err != nil {
		log.Fatalln(err)
	}
	_ = bar.Finish()
	fmt.Println(prepared.Stats)

	if prepared.Device != nil {
		defer func() { _ = prepared.Device.Free() }()
		if err := crossCheck(prepared); err != nil {
			log.Fatalln(err)
		}
		fmt.Println("device row sums match host")
	}

	sum := digest(prepared.CSR)
	fmt.Println("sha256", "(", "CSR", ")", "=", hex.EncodeToString(sum))
}

func parseWindows(windows, bits string) (numRows, c int, err error) {
	numRows, err = strconv.Atoi(windows)
	if err != nil || numRows < 1 {
		return 0, 0, fmt.Errorf("invalid num_windows: %s", windows)
	}
	c, err = strconv.Atoi(bits)
	if err != nil || c < 1 || c > 24 {
		return 0, 0, fmt.Errorf("invalid window_bits: %s", bits)
	}
	return numRows, c, nil
}

func crossCheck(p *cluster_bls12381.Prepared) error {
	want, err := cluster_bls12381.RowMSM(p.CSR)
	if err != nil {
		return err
	}
	got, err := p.Device.RowMSM()
	if err != nil {
		return err
	}
	for r := range want {
		var g curve.G1Jac
		g.FromAffine(&got[r])
		if !want[r].Equal(&g) {
			return fmt.Errorf("row %d: device and host sums differ", r)
		}
	}
	return nil
}

func digest(csr *eoncluster.CSR[curve.G1Affine]) []byte {
	hasher := sha256.New()
	for _, xy := range csr.Data {
		x, y := xy.X.Bytes(), xy.Y.Bytes()
		hasher.Write(x[:])
		hasher.Write(y[:])
	}
	_ = binary.Write(hasher, binary.BigEndian, csr.ColIdx)
	_ = binary.Write(hasher, binary.BigEndian, csr.RowPtr)
	return hasher.Sum(nil)
}
