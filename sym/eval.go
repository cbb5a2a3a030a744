package sym

import (
	"fmt"
	"math"
	"sort"
)

// Eval evaluates e numerically under the given symbol bindings. The
// symbol pi resolves to math.Pi unless bound explicitly.
func Eval(e Expr, env map[string]float64) (float64, error) {
	switch v := e.(type) {
	case *Num:
		return v.Float64(), nil
	case *Sym:
		if x, ok := env[v.name]; ok {
			return x, nil
		}
		if v.name == "pi" {
			return math.Pi, nil
		}
		return 0, fmt.Errorf("sym: unbound symbol %q", v.name)
	case *Inf:
		return math.Inf(v.sign), nil
	case *Add:
		sum := 0.
		for _, t := range v.terms {
			x, err := Eval(t, env)
			if err != nil {
				return 0, err
			}
			sum += x
		}
		return sum, nil
	case *Mul:
		prod := 1.
		for _, f := range v.factors {
			x, err := Eval(f, env)
			if err != nil {
				return 0, err
			}
			prod *= x
		}
		return prod, nil
	case *Pow:
		b, err := Eval(v.base, env)
		if err != nil {
			return 0, err
		}
		p, err := Eval(v.exp, env)
		if err != nil {
			return 0, err
		}
		return math.Pow(b, p), nil
	case *Call:
		a, err := Eval(v.arg, env)
		if err != nil {
			return 0, err
		}
		switch v.fn {
		case fnExp:
			return math.Exp(a), nil
		case fnLn:
			return math.Log(a), nil
		case fnFact:
			return math.Gamma(a + 1), nil
		case fnLgamma:
			lg, _ := math.Lgamma(a)
			return lg, nil
		}
		return 0, fmt.Errorf("sym: no numeric rule for %s", v.fn)
	}
	return 0, fmt.Errorf("sym: cannot evaluate %T", e)
}

// Lambdify compiles e into a function of the named parameters, bound
// positionally in the given order. Every free symbol of e other than
// pi must be listed. The compiled function returns NaN on arity
// mismatch or domain violations.
func Lambdify(e Expr, params []string) (func(...float64) float64, error) {
	free := FreeSymbols(e)
	delete(free, "pi")
	for _, p := range params {
		delete(free, p)
	}
	if len(free) > 0 {
		names := make([]string, 0, len(free))
		for name := range free {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("sym: unbound symbols %v in %v", names, e)
	}
	return func(args ...float64) float64 {
		if len(args) != len(params) {
			return math.NaN()
		}
		env := make(map[string]float64, len(params))
		for i, p := range params {
			env[p] = args[i]
		}
		x, err := Eval(e, env)
		if err != nil {
			return math.NaN()
		}
		return x
	}, nil
}
