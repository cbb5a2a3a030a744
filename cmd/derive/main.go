package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"bitbucket.org/dtolpin/jeffreys/dist"
	"bitbucket.org/dtolpin/jeffreys/priors"
)

var (
	FAMILY = "exponential"
	AT     = ""
)

var families = map[string]dist.RandomVariable{
	"exponential": dist.Exponential{Rate: "lambda"},
	"normal":      dist.Normal{Mean: "mu", Stddev: "sigma"},
	"normal-mean": dist.NormalMean{Mean: "mu"},
	"poisson":     dist.Poisson{Rate: "lambda"},
	"bernoulli":   dist.Bernoulli{Prob: "p"},
	"geometric":   dist.Geometric{Prob: "p"},
	"uniform":     dist.Uniform{Scale: "theta"},
	"gamma":       dist.Gamma{Shape: "alpha", Rate: "beta"},
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			`Derives the Jeffreys prior of a distribution family symbolically.
Invocation:
	%s [OPTIONS]
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&FAMILY, "family", FAMILY,
		"distribution family, one of: "+strings.Join(familyNames(), ", "))
	flag.StringVar(&AT, "at", AT,
		"comma-separated parameter values to evaluate the prior at")
}

func familyNames() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func main() {
	flag.Parse()

	rv, ok := families[FAMILY]
	if !ok {
		log.Fatalf("unknown family %q, want one of: %s",
			FAMILY, strings.Join(familyNames(), ", "))
	}

	prior, err := priors.Jeffreys(rv)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("prior(%s) = %v\n", strings.Join(prior.Params, ", "), prior.Expr)

	if AT == "" {
		return
	}
	fields := strings.Split(AT, ",")
	if len(fields) != len(prior.Params) {
		log.Fatalf("got %d values for %d parameters", len(fields), len(prior.Params))
	}
	args := make([]float64, len(fields))
	for i, f := range fields {
		args[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			log.Fatal(err)
		}
	}
	fmt.Printf("prior(%s) = %f\n", AT, prior.Fn(args...))
}
