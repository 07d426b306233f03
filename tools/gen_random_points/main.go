package main

import (
	"bufio"
	"log"
	"os"
	"strconv"

	cluster_bls12381 "github.com/eon-protocol/eoncluster/curves/bls12381"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalln("usage:", os.Args[0], "<num_points>")
	}
	n, err := strconv.Atoi(os.Args[1])
	if err != nil || n < 0 {
		log.Fatalln("invalid num_points:", os.Args[1])
	}
	points, err := cluster_bls12381.RandomPoints(n)
	if err != nil {
		log.Fatalln(err)
	}
	w := bufio.NewWriter(os.Stdout)
	if err := cluster_bls12381.WritePoints(w, points); err != nil {
		log.Fatalln(err)
	}
	if err := w.Flush(); err != nil {
		log.Fatalln(err)
	}
}
