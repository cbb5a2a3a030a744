package sym

import (
	"math/big"
	"sort"
	"strings"
)

// Expr is a node of a symbolic expression. Expressions are immutable and
// canonical: the constructors simplify on the way in, so that equal
// expressions render identically and like terms cancel structurally.
type Expr interface {
	// String renders the expression deterministically.
	String() string
	// Sub substitutes val for the symbol name and re-canonicalizes.
	Sub(name string, val Expr) Expr
	// Diff is the partial derivative with respect to the symbol name.
	Diff(name string) Expr
}

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// N makes an integer constant.
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// F makes a fraction p/q.
func F(p, q int64) *Num {
	if q == 0 {
		panic("sym: zero denominator")
	}
	return &Num{val: big.NewRat(p, q)}
}

func ratNum(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) String() string        { return n.val.RatString() }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Diff(string) Expr      { return N(0) }

// Rat returns a copy of the constant's value.
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

// Float64 returns the nearest float64.
func (n *Num) Float64() float64 { f, _ := n.val.Float64(); return f }

// IsInt reports whether the constant is an integer.
func (n *Num) IsInt() bool { return n.val.IsInt() }

// Int64 returns the integer value; valid only when IsInt holds.
func (n *Num) Int64() int64 { return n.val.Num().Int64() }

// Sym is a symbolic variable, assumed to denote a positive real.
type Sym struct{ name string }

// S makes a symbol.
func S(name string) *Sym { return &Sym{name: name} }

// Pi is the circle constant; Eval resolves it to math.Pi.
var Pi = S("pi")

func (s *Sym) String() string { return s.name }

// Name returns the symbol's name.
func (s *Sym) Name() string { return s.name }

func (s *Sym) Sub(name string, val Expr) Expr {
	if s.name == name {
		return val
	}
	return s
}

func (s *Sym) Diff(name string) Expr {
	if s.name == name {
		return N(1)
	}
	return N(0)
}

// Inf is a signed infinity. It is valid only as an integration or
// summation bound, never inside an expression.
type Inf struct{ sign int }

var (
	// PosInf is the upper bound of a half- or full-line support.
	PosInf = &Inf{sign: 1}
	// NegInf is the lower bound of a full-line support.
	NegInf = &Inf{sign: -1}
)

func (i *Inf) String() string {
	if i.sign > 0 {
		return "oo"
	}
	return "-oo"
}
func (i *Inf) Sub(string, Expr) Expr { return i }
func (i *Inf) Diff(string) Expr      { return N(0) }

// Add is a canonical sum: at least two terms, like terms combined,
// non-constant terms sorted by rendering, the constant term last.
type Add struct{ terms []Expr }

// Terms returns the summands.
func (a *Add) Terms() []Expr { return a.terms }

// AddOf sums terms, flattening nested sums and combining like terms by
// their rational coefficients.
func AddOf(terms ...Expr) Expr {
	sum := new(big.Rat)
	coeffs := map[string]*big.Rat{}
	rests := map[string]Expr{}
	var order []string
	var scan func(t Expr)
	scan = func(t Expr) {
		switch v := t.(type) {
		case *Add:
			for _, u := range v.terms {
				scan(u)
			}
		case *Num:
			sum.Add(sum, v.val)
		default:
			c, rest := splitCoeff(t)
			key := rest.String()
			if _, ok := coeffs[key]; !ok {
				coeffs[key] = new(big.Rat)
				rests[key] = rest
				order = append(order, key)
			}
			coeffs[key].Add(coeffs[key], c)
		}
	}
	for _, t := range terms {
		scan(t)
	}
	sort.Strings(order)
	out := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		if coeffs[key].Sign() == 0 {
			continue
		}
		out = append(out, mulCoeff(coeffs[key], rests[key]))
	}
	if sum.Sign() != 0 {
		out = append(out, ratNum(sum))
	}
	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return &Add{terms: out}
}

func (a *Add) String() string {
	var b strings.Builder
	for i, t := range a.terms {
		if i == 0 {
			b.WriteString(t.String())
			continue
		}
		c, rest := splitCoeff(t)
		if c.Sign() < 0 {
			b.WriteString(" - ")
			b.WriteString(mulCoeff(new(big.Rat).Neg(c), rest).String())
		} else {
			b.WriteString(" + ")
			b.WriteString(t.String())
		}
	}
	return b.String()
}

func (a *Add) Sub(name string, val Expr) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Sub(name, val)
	}
	return AddOf(out...)
}

func (a *Add) Diff(name string) Expr {
	out := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		out[i] = t.Diff(name)
	}
	return AddOf(out...)
}

// Mul is a canonical product: an optional leading rational coefficient
// followed by non-constant factors sorted by rendering, with repeated
// bases merged into powers and exp factors merged by argument.
type Mul struct{ factors []Expr }

// Factors returns the factors, including any leading coefficient.
func (m *Mul) Factors() []Expr { return m.factors }

// MulOf multiplies factors, flattening nested products, folding
// constants, and combining powers of equal bases.
func MulOf(factors ...Expr) Expr {
	coeff := new(big.Rat).SetInt64(1)
	type powEntry struct {
		base Expr
		exps []Expr
	}
	pows := map[string]*powEntry{}
	var order []string
	var expArgs []Expr
	addPow := func(base, exp Expr) {
		key := base.String()
		pe, ok := pows[key]
		if !ok {
			pe = &powEntry{base: base}
			pows[key] = pe
			order = append(order, key)
		}
		pe.exps = append(pe.exps, exp)
	}
	var scan func(f Expr)
	scan = func(f Expr) {
		switch v := f.(type) {
		case *Mul:
			for _, u := range v.factors {
				scan(u)
			}
		case *Num:
			coeff.Mul(coeff, v.val)
		case *Pow:
			addPow(v.base, v.exp)
		case *Call:
			if v.fn == fnExp {
				expArgs = append(expArgs, v.arg)
				return
			}
			addPow(v, N(1))
		default:
			addPow(f, N(1))
		}
	}
	for _, f := range factors {
		scan(f)
	}
	if coeff.Sign() == 0 {
		return N(0)
	}
	var out, rescan []Expr
	take := func(f Expr) {
		switch v := f.(type) {
		case *Num:
			coeff.Mul(coeff, v.val)
		case *Mul:
			rescan = append(rescan, v)
		default:
			out = append(out, f)
		}
	}
	sort.Strings(order)
	for _, key := range order {
		pe := pows[key]
		take(PowOf(pe.base, AddOf(pe.exps...)))
	}
	if len(expArgs) > 0 {
		take(ExpOf(AddOf(expArgs...)))
	}
	if len(rescan) > 0 {
		all := make([]Expr, 0, len(out)+len(rescan)+1)
		all = append(all, ratNum(coeff))
		all = append(all, out...)
		all = append(all, rescan...)
		return MulOf(all...)
	}
	if coeff.Sign() == 0 {
		return N(0)
	}
	if len(out) == 0 {
		return ratNum(coeff)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].String() < out[j].String()
	})
	if !isRatOne(coeff) {
		out = append([]Expr{ratNum(coeff)}, out...)
	}
	if len(out) == 1 {
		return out[0]
	}
	return &Mul{factors: out}
}

func (m *Mul) String() string {
	var b strings.Builder
	start := 0
	if n, ok := m.factors[0].(*Num); ok {
		if n.val.Cmp(big.NewRat(-1, 1)) == 0 {
			b.WriteString("-")
			start = 1
		}
	}
	wrote := false
	for _, f := range m.factors[start:] {
		if wrote {
			b.WriteString("*")
		}
		if _, ok := f.(*Add); ok {
			b.WriteString("(" + f.String() + ")")
		} else {
			b.WriteString(f.String())
		}
		wrote = true
	}
	return b.String()
}

func (m *Mul) Sub(name string, val Expr) Expr {
	out := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		out[i] = f.Sub(name, val)
	}
	return MulOf(out...)
}

func (m *Mul) Diff(name string) Expr {
	terms := make([]Expr, 0, len(m.factors))
	for i := range m.factors {
		fs := make([]Expr, len(m.factors))
		copy(fs, m.factors)
		fs[i] = m.factors[i].Diff(name)
		terms = append(terms, MulOf(fs...))
	}
	return AddOf(terms...)
}

// Pow is a canonical power: the base is never itself a product, power,
// or exp call, and the exponent is never 0 or 1.
type Pow struct{ base, exp Expr }

// Base returns the power's base.
func (p *Pow) Base() Expr { return p.base }

// Exp returns the power's exponent.
func (p *Pow) Exp() Expr { return p.exp }

// PowOf raises base to exp, folding rational powers, collapsing nested
// powers, and distributing over products (symbols denote positive
// reals, so the rewrite is exact).
func PowOf(base, exp Expr) Expr {
	if n, ok := exp.(*Num); ok {
		if n.val.Sign() == 0 {
			return N(1)
		}
		if isRatOne(n.val) {
			return base
		}
	}
	switch b := base.(type) {
	case *Num:
		if b.val.Sign() == 0 {
			return N(0)
		}
		if isRatOne(b.val) {
			return N(1)
		}
		if n, ok := exp.(*Num); ok {
			if r, ok := ratPow(b.val, n.val); ok {
				return ratNum(r)
			}
		}
	case *Pow:
		return PowOf(b.base, MulOf(b.exp, exp))
	case *Mul:
		fs := make([]Expr, 0, len(b.factors))
		for _, f := range b.factors {
			fs = append(fs, PowOf(f, exp))
		}
		return MulOf(fs...)
	case *Call:
		if b.fn == fnExp {
			return ExpOf(MulOf(b.arg, exp))
		}
	}
	return &Pow{base: base, exp: exp}
}

// SqrtOf is the positive square root.
func SqrtOf(e Expr) Expr { return PowOf(e, F(1, 2)) }

func (p *Pow) String() string {
	return powParens(p.base) + "^" + powParens(p.exp)
}

func powParens(e Expr) string {
	switch v := e.(type) {
	case *Num:
		if v.val.Sign() < 0 || !v.val.IsInt() {
			return "(" + v.String() + ")"
		}
		return v.String()
	case *Sym, *Call:
		return e.String()
	default:
		return "(" + e.String() + ")"
	}
}

func (p *Pow) Sub(name string, val Expr) Expr {
	return PowOf(p.base.Sub(name, val), p.exp.Sub(name, val))
}

func (p *Pow) Diff(name string) Expr {
	// d(b^e) = b^e * (e' ln b + e b' / b)
	return MulOf(p, AddOf(
		MulOf(p.exp.Diff(name), LnOf(p.base)),
		MulOf(p.exp, p.base.Diff(name), PowOf(p.base, N(-1))),
	))
}

const (
	fnExp      = "exp"
	fnLn       = "ln"
	fnFact     = "fact"
	fnLgamma   = "lgamma"
	fnDigamma  = "digamma"
	fnTrigamma = "trigamma"
)

// Call is a named unary function application.
type Call struct {
	fn  string
	arg Expr
}

// FuncName returns the function's name.
func (c *Call) FuncName() string { return c.fn }

// Arg returns the function's argument.
func (c *Call) Arg() Expr { return c.arg }

// ExpOf is the exponential function.
func ExpOf(arg Expr) Expr {
	if isZero(arg) {
		return N(1)
	}
	if c, ok := arg.(*Call); ok && c.fn == fnLn {
		return c.arg
	}
	return &Call{fn: fnExp, arg: arg}
}

// LnOf is the natural logarithm, expanded over products and powers
// (arguments are positive by assumption).
func LnOf(arg Expr) Expr {
	switch v := arg.(type) {
	case *Num:
		if isRatOne(v.val) {
			return N(0)
		}
	case *Call:
		if v.fn == fnExp {
			return v.arg
		}
	case *Pow:
		return MulOf(v.exp, LnOf(v.base))
	case *Mul:
		terms := make([]Expr, 0, len(v.factors))
		for _, f := range v.factors {
			terms = append(terms, LnOf(f))
		}
		return AddOf(terms...)
	}
	return &Call{fn: fnLn, arg: arg}
}

// FactOf is the factorial, folded for small non-negative integers.
func FactOf(arg Expr) Expr {
	if n, ok := arg.(*Num); ok && n.IsInt() && n.val.Num().IsInt64() &&
		n.val.Sign() >= 0 && n.Int64() <= 20 {
		return ratNum(new(big.Rat).SetInt64(factorial(n.Int64())))
	}
	return &Call{fn: fnFact, arg: arg}
}

// LgammaOf is the log-gamma function.
func LgammaOf(arg Expr) Expr { return &Call{fn: fnLgamma, arg: arg} }

// DigammaOf is the digamma function.
func DigammaOf(arg Expr) Expr { return &Call{fn: fnDigamma, arg: arg} }

func (c *Call) String() string { return c.fn + "(" + c.arg.String() + ")" }

func (c *Call) Sub(name string, val Expr) Expr {
	arg := c.arg.Sub(name, val)
	switch c.fn {
	case fnExp:
		return ExpOf(arg)
	case fnLn:
		return LnOf(arg)
	case fnFact:
		return FactOf(arg)
	default:
		return &Call{fn: c.fn, arg: arg}
	}
}

func (c *Call) Diff(name string) Expr {
	da := c.arg.Diff(name)
	if isZero(da) {
		return N(0)
	}
	switch c.fn {
	case fnExp:
		return MulOf(c, da)
	case fnLn:
		return MulOf(da, PowOf(c.arg, N(-1)))
	case fnFact:
		// d(z!) = z! * digamma(z+1)
		return MulOf(c, DigammaOf(AddOf(c.arg, N(1))), da)
	case fnLgamma:
		return MulOf(DigammaOf(c.arg), da)
	case fnDigamma:
		return MulOf(&Call{fn: fnTrigamma, arg: c.arg}, da)
	default:
		panic("sym: no derivative rule for " + c.fn)
	}
}

// splitCoeff splits a canonical term into its rational coefficient and
// the remaining (coefficient-free) part.
func splitCoeff(e Expr) (*big.Rat, Expr) {
	switch v := e.(type) {
	case *Num:
		return new(big.Rat).Set(v.val), N(1)
	case *Mul:
		if n, ok := v.factors[0].(*Num); ok {
			rest := v.factors[1:]
			if len(rest) == 1 {
				return new(big.Rat).Set(n.val), rest[0]
			}
			return new(big.Rat).Set(n.val), &Mul{factors: rest}
		}
	}
	return big.NewRat(1, 1), e
}

// mulCoeff rebuilds a term from a rational coefficient and a
// coefficient-free canonical part.
func mulCoeff(c *big.Rat, rest Expr) Expr {
	if n, ok := rest.(*Num); ok && isRatOne(n.val) {
		return ratNum(c)
	}
	if isRatOne(c) {
		return rest
	}
	if m, ok := rest.(*Mul); ok {
		fs := make([]Expr, 0, len(m.factors)+1)
		fs = append(fs, ratNum(c))
		fs = append(fs, m.factors...)
		return &Mul{factors: fs}
	}
	return &Mul{factors: []Expr{ratNum(c), rest}}
}

var ratOne = big.NewRat(1, 1)

func isRatOne(r *big.Rat) bool { return r.Cmp(ratOne) == 0 }

func isZero(e Expr) bool {
	n, ok := e.(*Num)
	return ok && n.val.Sign() == 0
}

func isOne(e Expr) bool {
	n, ok := e.(*Num)
	return ok && isRatOne(n.val)
}

func termsOf(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

func factorsOf(e Expr) []Expr {
	if m, ok := e.(*Mul); ok {
		return m.factors
	}
	return []Expr{e}
}

// FreeSymbols collects the names of all symbols in e.
func FreeSymbols(e Expr) map[string]struct{} {
	out := map[string]struct{}{}
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Call:
		collectSymbols(v.arg, out)
	}
}

func depends(e Expr, name string) bool {
	switch v := e.(type) {
	case *Sym:
		return v.name == name
	case *Add:
		for _, t := range v.terms {
			if depends(t, name) {
				return true
			}
		}
	case *Mul:
		for _, f := range v.factors {
			if depends(f, name) {
				return true
			}
		}
	case *Pow:
		return depends(v.base, name) || depends(v.exp, name)
	case *Call:
		return depends(v.arg, name)
	}
	return false
}

func factorial(n int64) int64 {
	out := int64(1)
	for i := int64(2); i <= n; i++ {
		out *= i
	}
	return out
}

// ratPow folds base^exp for rational base and exponent. Integer
// exponents are always exact; fractional exponents fold only when the
// base has an exact root (e.g. 4^(1/2), 27^(2/3)).
func ratPow(base, exp *big.Rat) (*big.Rat, bool) {
	if exp.IsInt() {
		if !exp.Num().IsInt64() {
			return nil, false
		}
		n := exp.Num().Int64()
		if n > 64 || n < -64 {
			return nil, false
		}
		abs := n
		if abs < 0 {
			abs = -abs
		}
		out := big.NewRat(1, 1)
		for i := int64(0); i < abs; i++ {
			out.Mul(out, base)
		}
		if n < 0 {
			if out.Sign() == 0 {
				return nil, false
			}
			out.Inv(out)
		}
		return out, true
	}
	if base.Sign() <= 0 || !exp.Denom().IsInt64() {
		return nil, false
	}
	q := exp.Denom().Int64()
	num, ok := intNthRoot(base.Num(), q)
	if !ok {
		return nil, false
	}
	den, ok := intNthRoot(base.Denom(), q)
	if !ok {
		return nil, false
	}
	root := new(big.Rat).SetFrac(num, den)
	return ratPow(root, new(big.Rat).SetInt(exp.Num()))
}

// intNthRoot finds r with r^n == x for non-negative x, if one exists.
func intNthRoot(x *big.Int, n int64) (*big.Int, bool) {
	if x.Sign() < 0 || n <= 0 {
		return nil, false
	}
	lo := big.NewInt(0)
	hi := new(big.Int).Add(x, big.NewInt(1))
	bn := big.NewInt(n)
	for lo.Cmp(hi) < 0 {
		mid := new(big.Int).Add(lo, hi)
		mid.Rsh(mid, 1)
		p := new(big.Int).Exp(mid, bn, nil)
		switch p.Cmp(x) {
		case 0:
			return mid, true
		case -1:
			lo = mid.Add(mid, big.NewInt(1))
		default:
			hi = mid
		}
	}
	return nil, false
}
