package sym

import "errors"

// ErrNoClosedForm is returned when a definite integral or sum does not
// reduce to a closed form under the engine's rules.
var ErrNoClosedForm = errors.New("sym: no closed form")

// enumerateCap bounds the range of sums evaluated by enumeration.
const enumerateCap = 64

// reduceTerm is one expanded term, factored by its role with respect to
// the reduction variable v: an x-free coefficient, a power v^k, an
// exponential exp(Q(v)), geometric factors b^v, and an optional 1/v!.
type reduceTerm struct {
	cfree   []Expr
	k       int
	expQ    Expr
	geom    []Expr
	invFact bool
}

func classifyTerm(term Expr, name string) (*reduceTerm, error) {
	rt := &reduceTerm{}
	for _, f := range factorsOf(term) {
		if !depends(f, name) {
			rt.cfree = append(rt.cfree, f)
			continue
		}
		switch v := f.(type) {
		case *Sym:
			rt.k++
		case *Pow:
			if b, ok := v.base.(*Sym); ok && b.name == name {
				n, okn := v.exp.(*Num)
				if !okn || !n.IsInt() || n.Int64() < 1 {
					return nil, ErrNoClosedForm
				}
				rt.k += int(n.Int64())
				continue
			}
			if !depends(v.base, name) {
				// b^(a1 v + a0) = b^a0 * (b^a1)^v
				q, err := PolyCoeffs(v.exp, name)
				if err == nil && maxDeg(q) == 1 {
					rt.cfree = append(rt.cfree, PowOf(v.base, coeffOr0(q, 0)))
					rt.geom = append(rt.geom, PowOf(v.base, q[1]))
					continue
				}
				return nil, ErrNoClosedForm
			}
			if c, ok := v.base.(*Call); ok && c.fn == fnFact {
				if s, ok := c.arg.(*Sym); ok && s.name == name {
					if n, okn := v.exp.(*Num); okn && n.IsInt() && n.Int64() == -1 {
						rt.invFact = true
						continue
					}
				}
			}
			return nil, ErrNoClosedForm
		case *Call:
			if v.fn == fnExp {
				if rt.expQ == nil {
					rt.expQ = v.arg
				} else {
					rt.expQ = AddOf(rt.expQ, v.arg)
				}
				continue
			}
			return nil, ErrNoClosedForm
		default:
			return nil, ErrNoClosedForm
		}
	}
	return rt, nil
}

// Integrate computes the definite integral of e with respect to the
// named variable over (lo, hi) in closed form.
//
// Supported shapes, per expanded term c*v^k*exp(Q(v)) with c free of v:
// Gaussian moments over the full line (deg Q = 2), exponential moments
// over (0, oo) (deg Q = 1), and plain polynomials over finite bounds,
// which may be symbolic.
func Integrate(e Expr, name string, lo, hi Expr) (Expr, error) {
	var results []Expr
	for _, term := range termsOf(Expand(e)) {
		rt, err := classifyTerm(term, name)
		if err != nil {
			return nil, err
		}
		if rt.invFact || len(rt.geom) > 0 {
			return nil, ErrNoClosedForm
		}
		r, err := integrateTerm(rt, name, lo, hi)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return Expand(AddOf(results...)), nil
}

func integrateTerm(rt *reduceTerm, name string, lo, hi Expr) (Expr, error) {
	c := MulOf(rt.cfree...)
	switch {
	case infSign(lo) == -1 && infSign(hi) == 1:
		// complete the square: Q(v) = q2 (v-m)^2 + shift with
		// m = -q1/(2 q2), then integrate against the Gaussian
		// with variance -1/(2 q2).
		if rt.expQ == nil {
			return nil, ErrNoClosedForm
		}
		q, err := PolyCoeffs(rt.expQ, name)
		if err != nil || maxDeg(q) != 2 {
			return nil, ErrNoClosedForm
		}
		qinv := PowOf(q[2], N(-1))
		q1 := coeffOr0(q, 1)
		m := MulOf(F(-1, 2), q1, qinv)
		vv := MulOf(F(-1, 2), qinv)
		shift := AddOf(coeffOr0(q, 0), MulOf(F(-1, 4), PowOf(q1, N(2)), qinv))
		norm := SqrtOf(MulOf(N(2), Pi, vv))
		return MulOf(c, ExpOf(shift), norm, gaussMoment(rt.k, m, vv)), nil
	case isZero(lo) && infSign(hi) == 1:
		// int v^k exp(q1 v) dv over (0, oo) = k! / (-q1)^(k+1)
		if rt.expQ == nil {
			return nil, ErrNoClosedForm
		}
		q, err := PolyCoeffs(rt.expQ, name)
		if err != nil || maxDeg(q) != 1 {
			return nil, ErrNoClosedForm
		}
		rate := MulOf(N(-1), q[1])
		return MulOf(c, ExpOf(coeffOr0(q, 0)),
			N(factorial(int64(rt.k))),
			PowOf(rate, N(int64(-(rt.k+1))))), nil
	case infSign(lo) == 0 && infSign(hi) == 0:
		if rt.expQ != nil {
			return nil, ErrNoClosedForm
		}
		k1 := int64(rt.k + 1)
		return MulOf(c, F(1, k1),
			AddOf(PowOf(hi, N(k1)), MulOf(N(-1), PowOf(lo, N(k1))))), nil
	}
	return nil, ErrNoClosedForm
}

// Summate computes the definite sum of e over integer values of the
// named variable from lo to hi in closed form.
//
// Small finite ranges are enumerated. Over (0, oo), per expanded term
// c*v^k*a^v/v! the Touchard rule applies, and per term c*v^k*r^v the
// geometric moment rule applies (k <= 3, |r| < 1 by assumption).
func Summate(e Expr, name string, lo, hi Expr) (Expr, error) {
	if nlo, ok := lo.(*Num); ok {
		if nhi, ok2 := hi.(*Num); ok2 {
			if !nlo.IsInt() || !nhi.IsInt() {
				return nil, ErrNoClosedForm
			}
			a, b := nlo.Int64(), nhi.Int64()
			if b < a || b-a > enumerateCap {
				return nil, ErrNoClosedForm
			}
			terms := make([]Expr, 0, b-a+1)
			for i := a; i <= b; i++ {
				terms = append(terms, e.Sub(name, N(i)))
			}
			return Expand(AddOf(terms...)), nil
		}
	}
	if !isZero(lo) || infSign(hi) != 1 {
		return nil, ErrNoClosedForm
	}
	var results []Expr
	for _, term := range termsOf(Expand(e)) {
		rt, err := classifyTerm(term, name)
		if err != nil {
			return nil, err
		}
		if rt.expQ != nil {
			return nil, ErrNoClosedForm
		}
		c := MulOf(rt.cfree...)
		switch {
		case rt.invFact:
			if rt.k >= len(stirling) {
				return nil, ErrNoClosedForm
			}
			a := MulOf(rt.geom...)
			results = append(results, MulOf(c, ExpOf(a), touchardPoly(rt.k, a)))
		case len(rt.geom) > 0:
			r := MulOf(rt.geom...)
			s, err := geomMoment(rt.k, r)
			if err != nil {
				return nil, err
			}
			results = append(results, MulOf(c, s))
		default:
			return nil, ErrNoClosedForm
		}
	}
	return Expand(AddOf(results...)), nil
}

// gaussMoment is E[(Z+m)^k] for Z normal with mean zero and variance v.
func gaussMoment(k int, m, v Expr) Expr {
	var terms []Expr
	for j := 0; j <= k; j += 2 {
		coef := binomial(k, j) * doubleFactorial(j-1)
		terms = append(terms, MulOf(N(coef),
			PowOf(m, N(int64(k-j))), PowOf(v, N(int64(j/2)))))
	}
	return AddOf(terms...)
}

// stirling[k][j] are Stirling set numbers: sum x^k a^x / x! over x >= 0
// equals exp(a) * sum_j stirling[k][j] a^j (the Touchard polynomial).
var stirling = [][]int64{
	{1},
	{0, 1},
	{0, 1, 1},
	{0, 1, 3, 1},
	{0, 1, 7, 6, 1},
}

func touchardPoly(k int, a Expr) Expr {
	var terms []Expr
	for j, s := range stirling[k] {
		if s == 0 {
			continue
		}
		terms = append(terms, MulOf(N(s), PowOf(a, N(int64(j)))))
	}
	return AddOf(terms...)
}

// geomMoment is sum x^k r^x over x >= 0, for |r| < 1.
func geomMoment(k int, r Expr) (Expr, error) {
	one := AddOf(N(1), MulOf(N(-1), r))
	switch k {
	case 0:
		return PowOf(one, N(-1)), nil
	case 1:
		return MulOf(r, PowOf(one, N(-2))), nil
	case 2:
		return MulOf(r, AddOf(N(1), r), PowOf(one, N(-3))), nil
	case 3:
		return MulOf(r, AddOf(N(1), MulOf(N(4), r), PowOf(r, N(2))),
			PowOf(one, N(-4))), nil
	}
	return nil, ErrNoClosedForm
}

func infSign(e Expr) int {
	if i, ok := e.(*Inf); ok {
		return i.sign
	}
	return 0
}

func maxDeg(q map[int]Expr) int {
	d := 0
	for k, c := range q {
		if k > d && !isZero(c) {
			d = k
		}
	}
	return d
}

func coeffOr0(q map[int]Expr, k int) Expr {
	if c, ok := q[k]; ok {
		return c
	}
	return N(0)
}

func binomial(n, k int) int64 {
	out := int64(1)
	for i := 0; i < k; i++ {
		out = out * int64(n-i) / int64(i+1)
	}
	return out
}

func doubleFactorial(n int) int64 {
	out := int64(1)
	for i := int64(n); i > 1; i -= 2 {
		out *= i
	}
	return out
}
