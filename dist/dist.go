// Package dist describes probability distribution families
// symbolically: each family exposes its ordered free parameters, its
// support, and its density as an expression in one variate symbol.
package dist

import "bitbucket.org/dtolpin/jeffreys/sym"

// Support is the set of values a random variable ranges over.
// Discrete supports are summed over, continuous ones integrated.
type Support struct {
	Discrete bool
	Lo, Hi   sym.Expr
}

// RandomVariable is an opaque handle to a distribution family. The
// parameter order fixes the row and column order of the Fisher
// information matrix and the argument order of compiled priors.
type RandomVariable interface {
	Name() string
	Params() []string
	Support() Support
	Density(x sym.Expr) sym.Expr
}

// Exponential has density rate*exp(-rate*x) on (0, oo).
type Exponential struct{ Rate string }

func (d Exponential) Name() string     { return "exponential" }
func (d Exponential) Params() []string { return []string{d.Rate} }
func (d Exponential) Support() Support { return Support{Lo: sym.N(0), Hi: sym.PosInf} }

func (d Exponential) Density(x sym.Expr) sym.Expr {
	rate := sym.S(d.Rate)
	return sym.MulOf(rate, sym.ExpOf(sym.MulOf(sym.N(-1), rate, x)))
}

// Normal has free mean and standard deviation.
type Normal struct{ Mean, Stddev string }

func (d Normal) Name() string     { return "normal" }
func (d Normal) Params() []string { return []string{d.Mean, d.Stddev} }
func (d Normal) Support() Support { return Support{Lo: sym.NegInf, Hi: sym.PosInf} }

func (d Normal) Density(x sym.Expr) sym.Expr {
	mu, sigma := sym.S(d.Mean), sym.S(d.Stddev)
	z := sym.AddOf(x, sym.MulOf(sym.N(-1), mu))
	return sym.MulOf(
		sym.PowOf(sym.MulOf(sym.N(2), sym.Pi), sym.F(-1, 2)),
		sym.PowOf(sigma, sym.N(-1)),
		sym.ExpOf(sym.MulOf(sym.F(-1, 2),
			sym.PowOf(sigma, sym.N(-2)), sym.PowOf(z, sym.N(2)))))
}

// NormalMean is a normal with unit variance and free mean; its
// Jeffreys prior is constant.
type NormalMean struct{ Mean string }

func (d NormalMean) Name() string     { return "normal-mean" }
func (d NormalMean) Params() []string { return []string{d.Mean} }
func (d NormalMean) Support() Support { return Support{Lo: sym.NegInf, Hi: sym.PosInf} }

func (d NormalMean) Density(x sym.Expr) sym.Expr {
	mu := sym.S(d.Mean)
	z := sym.AddOf(x, sym.MulOf(sym.N(-1), mu))
	return sym.MulOf(
		sym.PowOf(sym.MulOf(sym.N(2), sym.Pi), sym.F(-1, 2)),
		sym.ExpOf(sym.MulOf(sym.F(-1, 2), sym.PowOf(z, sym.N(2)))))
}

// Poisson has density exp(-rate)*rate^x/x! on {0, 1, ...}.
type Poisson struct{ Rate string }

func (d Poisson) Name() string     { return "poisson" }
func (d Poisson) Params() []string { return []string{d.Rate} }

func (d Poisson) Support() Support {
	return Support{Discrete: true, Lo: sym.N(0), Hi: sym.PosInf}
}

func (d Poisson) Density(x sym.Expr) sym.Expr {
	rate := sym.S(d.Rate)
	return sym.MulOf(
		sym.ExpOf(sym.MulOf(sym.N(-1), rate)),
		sym.PowOf(rate, x),
		sym.PowOf(sym.FactOf(x), sym.N(-1)))
}

// Bernoulli has density p^x*(1-p)^(1-x) on {0, 1}.
type Bernoulli struct{ Prob string }

func (d Bernoulli) Name() string     { return "bernoulli" }
func (d Bernoulli) Params() []string { return []string{d.Prob} }

func (d Bernoulli) Support() Support {
	return Support{Discrete: true, Lo: sym.N(0), Hi: sym.N(1)}
}

func (d Bernoulli) Density(x sym.Expr) sym.Expr {
	p := sym.S(d.Prob)
	q := sym.AddOf(sym.N(1), sym.MulOf(sym.N(-1), p))
	return sym.MulOf(
		sym.PowOf(p, x),
		sym.PowOf(q, sym.AddOf(sym.N(1), sym.MulOf(sym.N(-1), x))))
}

// Geometric counts failures before the first success:
// density p*(1-p)^x on {0, 1, ...}.
type Geometric struct{ Prob string }

func (d Geometric) Name() string     { return "geometric" }
func (d Geometric) Params() []string { return []string{d.Prob} }

func (d Geometric) Support() Support {
	return Support{Discrete: true, Lo: sym.N(0), Hi: sym.PosInf}
}

func (d Geometric) Density(x sym.Expr) sym.Expr {
	p := sym.S(d.Prob)
	q := sym.AddOf(sym.N(1), sym.MulOf(sym.N(-1), p))
	return sym.MulOf(p, sym.PowOf(q, x))
}

// Uniform is uniform on (0, scale), with the scale free; the upper
// support bound is the parameter itself.
type Uniform struct{ Scale string }

func (d Uniform) Name() string     { return "uniform" }
func (d Uniform) Params() []string { return []string{d.Scale} }
func (d Uniform) Support() Support { return Support{Lo: sym.N(0), Hi: sym.S(d.Scale)} }

func (d Uniform) Density(x sym.Expr) sym.Expr {
	return sym.PowOf(sym.S(d.Scale), sym.N(-1))
}

// Gamma has free shape and rate. Its log-density involves lgamma and a
// non-integer power of the variate, which the symbolic engine cannot
// reduce in closed form; deriving its Jeffreys prior fails with
// sym.ErrNoClosedForm.
type Gamma struct{ Shape, Rate string }

func (d Gamma) Name() string     { return "gamma" }
func (d Gamma) Params() []string { return []string{d.Shape, d.Rate} }
func (d Gamma) Support() Support { return Support{Lo: sym.N(0), Hi: sym.PosInf} }

func (d Gamma) Density(x sym.Expr) sym.Expr {
	shape, rate := sym.S(d.Shape), sym.S(d.Rate)
	return sym.ExpOf(sym.AddOf(
		sym.MulOf(shape, sym.LnOf(rate)),
		sym.MulOf(sym.N(-1), sym.LgammaOf(shape)),
		sym.MulOf(sym.AddOf(shape, sym.N(-1)), sym.LnOf(x)),
		sym.MulOf(sym.N(-1), rate, x)))
}
