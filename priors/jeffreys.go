// Package priors computes Jeffreys priors: symbolically for arbitrary
// distribution families, and in closed form for first-order
// autoregressive observation models.
package priors

import (
	"fmt"
	"math"

	"bitbucket.org/dtolpin/jeffreys/dist"
	"bitbucket.org/dtolpin/jeffreys/sym"
)

// variate is the auxiliary symbol the derivation integrates or sums
// over. It never appears in the returned prior, and descriptors may
// not use it as a parameter name.
const variate = "x"

// JeffreysPrior is a derived prior: the symbolic expression in the
// family's free parameters, the parameter order, and the compiled
// numeric form taking one argument per parameter, in that order.
type JeffreysPrior struct {
	Expr   sym.Expr
	Params []string
	Fn     func(...float64) float64
}

// Jeffreys derives the Jeffreys prior of rv: the square root of the
// determinant of the Fisher information matrix, whose (i, j) entry is
// the expectation, under the density, of the product of the log-density
// derivatives with respect to parameters i and j. Discrete supports are
// summed over, continuous ones integrated. The whole derivation is
// exact symbolic algebra; no floating point is involved until the
// compiled function is called.
func Jeffreys(rv dist.RandomVariable) (*JeffreysPrior, error) {
	params := rv.Params()
	if len(params) == 0 {
		return nil, fmt.Errorf("%w: no free parameters", ErrBadDescriptor)
	}
	for _, p := range params {
		if p == "" || p == variate {
			return nil, fmt.Errorf("%w: parameter name %q is reserved",
				ErrBadDescriptor, p)
		}
	}

	x := sym.S(variate)
	pdf := rv.Density(x)
	logf := sym.LnOf(pdf)
	sup := rv.Support()
	reduce := sym.Integrate
	if sup.Discrete {
		reduce = sym.Summate
	}

	k := len(params)
	dlog := make([]sym.Expr, k)
	for i, p := range params {
		dlog[i] = logf.Diff(p)
	}

	// The information matrix is symmetric, so entries are derived for
	// i <= j and mirrored.
	info := sym.NewMatrix(k, k)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			entry, err := reduce(sym.MulOf(pdf, dlog[i], dlog[j]),
				variate, sup.Lo, sup.Hi)
			if err != nil {
				return nil, fmt.Errorf("priors: %s information (%s, %s): %w",
					rv.Name(), params[i], params[j], err)
			}
			info.Set(i, j, entry)
			info.Set(j, i, entry)
		}
	}

	det, err := info.Det()
	if err != nil {
		return nil, err
	}
	if negativeAt(det, params) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDistribution, rv.Name())
	}

	prior := sym.SqrtOf(det)
	if _, ok := sym.FreeSymbols(prior)[variate]; ok {
		return nil, fmt.Errorf("priors: %s: residual variate in prior: %w",
			rv.Name(), sym.ErrNoClosedForm)
	}
	fn, err := sym.Lambdify(prior, params)
	if err != nil {
		return nil, fmt.Errorf("priors: %s: %w", rv.Name(), err)
	}
	return &JeffreysPrior{Expr: prior, Params: params, Fn: fn}, nil
}

// negativeAt probes the determinant at an interior reference point
// (every parameter 1/2, valid for rates, scales, and probabilities
// alike). A negative value means the descriptor does not define a real
// Jeffreys prior.
func negativeAt(det sym.Expr, params []string) bool {
	env := make(map[string]float64, len(params))
	for _, p := range params {
		env[p] = 0.5
	}
	v, err := sym.Eval(det, env)
	if err != nil {
		return false
	}
	return !math.IsNaN(v) && v < 0
}

// Over evaluates the prior elementwise over parameter grids, one grid
// per free parameter in declaration order, all of equal length.
func (p *JeffreysPrior) Over(grids ...[]float64) ([]float64, error) {
	if len(grids) != len(p.Params) {
		return nil, fmt.Errorf("%w: %d grids for %d parameters",
			ErrGridShape, len(grids), len(p.Params))
	}
	n := 0
	if len(grids) > 0 {
		n = len(grids[0])
	}
	for _, g := range grids {
		if len(g) != n {
			return nil, ErrGridShape
		}
	}
	out := make([]float64, n)
	args := make([]float64, len(grids))
	for i := range out {
		for j := range grids {
			args[j] = grids[j][i]
		}
		out[i] = p.Fn(args...)
	}
	return out, nil
}
