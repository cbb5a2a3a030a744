package sym

import "errors"

// expandPowCap bounds the integer exponents Expand multiplies out.
const expandPowCap = 16

var errNonPolynomial = errors.New("sym: not a polynomial")

// Expand distributes products over sums and multiplies out small
// positive integer powers of sums, producing a canonical sum of
// monomial terms.
func Expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		out := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			out[i] = Expand(t)
		}
		return AddOf(out...)
	case *Mul:
		terms := []Expr{N(1)}
		for _, f := range v.factors {
			terms = crossMul(terms, termsOf(Expand(f)))
		}
		return AddOf(terms...)
	case *Pow:
		base := Expand(v.base)
		exp := Expand(v.exp)
		if n, ok := exp.(*Num); ok && n.IsInt() {
			if k := n.Int64(); k >= 2 && k <= expandPowCap {
				if _, isSum := base.(*Add); isSum {
					out := termsOf(base)
					for i := int64(1); i < k; i++ {
						out = crossMul(out, termsOf(base))
					}
					return AddOf(out...)
				}
			}
		}
		return PowOf(base, exp)
	case *Call:
		return rebuildCall(v.fn, Expand(v.arg))
	default:
		return e
	}
}

func crossMul(a, b []Expr) []Expr {
	out := make([]Expr, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			out = append(out, MulOf(x, y))
		}
	}
	return out
}

func rebuildCall(fn string, arg Expr) Expr {
	switch fn {
	case fnExp:
		return ExpOf(arg)
	case fnLn:
		return LnOf(arg)
	case fnFact:
		return FactOf(arg)
	default:
		return &Call{fn: fn, arg: arg}
	}
}

// PolyCoeffs extracts the coefficients of e as a polynomial in the
// named symbol, keyed by degree. It fails with errNonPolynomial when e
// depends on the symbol in any non-polynomial way.
func PolyCoeffs(e Expr, name string) (map[int]Expr, error) {
	out := map[int]Expr{}
	for _, term := range termsOf(Expand(e)) {
		k := 0
		var coef []Expr
		for _, f := range factorsOf(term) {
			if !depends(f, name) {
				coef = append(coef, f)
				continue
			}
			switch v := f.(type) {
			case *Sym:
				k++
			case *Pow:
				b, okb := v.base.(*Sym)
				n, okn := v.exp.(*Num)
				if !okb || b.name != name || !okn || !n.IsInt() || n.Int64() < 1 {
					return nil, errNonPolynomial
				}
				k += int(n.Int64())
			default:
				return nil, errNonPolynomial
			}
		}
		c := MulOf(coef...)
		if prev, ok := out[k]; ok {
			out[k] = AddOf(prev, c)
		} else {
			out[k] = c
		}
	}
	return out, nil
}
