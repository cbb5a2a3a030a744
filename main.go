package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"bitbucket.org/dtolpin/jeffreys/priors"
	"gonum.org/v1/gonum/stat"
)

var (
	MODEL       = "ar1"
	RMIN        = -0.95
	RMAX        = 0.95
	RN          = 39
	SMIN        = 0.1
	SMAX        = 2.
	SN          = 20
	STANDARDIZE = false
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Computes the Jeffreys prior of an AR1 process over a parameter
grid, from observations read from the input. Invocation:
  %s [OPTIONS] < INPUT > OUTPUT
or
  %s [OPTIONS] selfcheck
In 'selfcheck' mode, the data hard-coded into the program is used,
to demonstrate basic functionality. The input is CSV with one
observation per record; the output is CSV records r,s,prior.
`, os.Args[0], os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&MODEL, "model", MODEL, "observation model, ar1 or scaled")
	flag.Float64Var(&RMIN, "rmin", RMIN, "least autocorrelation coefficient")
	flag.Float64Var(&RMAX, "rmax", RMAX, "greatest autocorrelation coefficient")
	flag.IntVar(&RN, "rn", RN, "autocorrelation grid points")
	flag.Float64Var(&SMIN, "smin", SMIN, "least scale")
	flag.Float64Var(&SMAX, "smax", SMAX, "greatest scale")
	flag.IntVar(&SN, "sn", SN, "scale grid points")
	flag.BoolVar(&STANDARDIZE, "standardize", STANDARDIZE,
		"standardize observations to zero mean and unit variance")
}

func main() {
	var input io.Reader = os.Stdin

	flag.Parse()
	switch {
	case flag.NArg() == 0:
	case flag.NArg() == 1 && flag.Arg(0) == "selfcheck":
		input = strings.NewReader(selfCheckData)
	default:
		flag.Usage()
		os.Exit(1)
	}

	var model string
	switch MODEL {
	case "ar1":
		model = priors.AR1Model
	case "scaled":
		model = priors.ScaledAR1Model
	default:
		log.Fatalf("unknown model %q, want ar1 or scaled", MODEL)
	}

	fmt.Fprint(os.Stderr, "loading...")
	data, err := load(input)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(os.Stderr, "done")

	if STANDARDIZE {
		mean, std := stat.MeanStdDev(data, nil)
		for i := range data {
			data[i] = (data[i] - mean) / std
		}
	}

	r, s := meshGrid(RMIN, RMAX, RN, SMIN, SMAX, SN)
	prior, err := priors.AR1(priors.GridStudy{
		Model: model,
		R:     r,
		S:     s,
		Data:  data,
	})
	switch {
	case err == nil:
	case errors.Is(err, priors.ErrNonStationary):
		fmt.Fprintln(os.Stderr,
			"the grid is not all stationary, falling back to a flat prior")
	default:
		log.Fatal(err)
	}

	w := csv.NewWriter(os.Stdout)
	for i := range prior {
		record := []string{
			strconv.FormatFloat(r[i], 'f', 6, 64),
			strconv.FormatFloat(s[i], 'f', 6, 64),
			strconv.FormatFloat(prior[i], 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			log.Fatal(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal(err)
	}
}

// meshGrid flattens the cross product of rn points over [rmin, rmax]
// and sn points over [smin, smax] into two parallel grids.
func meshGrid(rmin, rmax float64, rn int, smin, smax float64, sn int) (
	r []float64,
	s []float64,
) {
	r = make([]float64, 0, rn*sn)
	s = make([]float64, 0, rn*sn)
	for i := 0; i != rn; i++ {
		ri := rmin
		if rn > 1 {
			ri += float64(i) * (rmax - rmin) / float64(rn-1)
		}
		for j := 0; j != sn; j++ {
			sj := smin
			if sn > 1 {
				sj += float64(j) * (smax - smin) / float64(sn-1)
			}
			r = append(r, ri)
			s = append(s, sj)
		}
	}
	return r, s
}

// load parses the observations from csv, one observation in the first
// field of each record.
func load(rdr io.Reader) (
	data []float64,
	err error,
) {
	csv := csv.NewReader(rdr)
RECORDS:
	for {
		record, err := csv.Read()
		switch err {
		case nil:
			// record contains the data
			d, err := strconv.ParseFloat(record[0], 64)
			if err != nil {
				// data error
				return data, err
			}
			data = append(data, d)
		case io.EOF:
			// end of file
			break RECORDS
		default:
			// i/o error
			return data, err
		}
	}

	return data, nil
}

var selfCheckData = `0.213
-0.171
0.312
0.084
-0.064
0.227
0.156
-0.093
0.041
0.188
-0.205
0.119
0.072
-0.138
0.251
0.095
-0.047
0.163
0.028
-0.112
`
