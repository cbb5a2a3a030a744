package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"
)

var (
	R    = 0.6
	S    = 0.25
	N    = 200
	D0   = 0.
	SEED = int64(0)
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Generate test data from a stationary AR1 process. Invocation:
	%s [OPTIONS] > OUTPUT
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Float64Var(&R, "r", R, "autocorrelation coefficient")
	flag.Float64Var(&S, "s", S, "noise scale")
	flag.IntVar(&N, "n", N, "number of observations")
	flag.Float64Var(&D0, "d0", D0, "initial observation")
	flag.Int64Var(&SEED, "seed", SEED, "random seed, 0 for wall clock")
}

func main() {
	flag.Parse()
	if R <= -1 || R >= 1 {
		log.Fatalf("r=%v is not stationary, want |r| < 1", R)
	}

	seed := SEED
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	d := D0
	for i := 0; i != N; i++ {
		d = R*d + S*rnd.NormFloat64()
		fmt.Printf("%f\n", d)
	}
}
