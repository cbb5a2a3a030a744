package sym

import (
	"errors"
	"testing"
)

// gaussian returns the density of Normal(mu, sigma) in x.
func gaussian(x, mu, sigma Expr) Expr {
	z := AddOf(x, MulOf(N(-1), mu))
	return MulOf(
		PowOf(MulOf(N(2), Pi), F(-1, 2)),
		PowOf(sigma, N(-1)),
		ExpOf(MulOf(F(-1, 2), PowOf(sigma, N(-2)), PowOf(z, N(2)))))
}

func TestIntegrate(t *testing.T) {
	x, lam, mu, sigma, b := S("x"), S("lambda"), S("mu"), S("sigma"), S("b")
	expon := MulOf(lam, ExpOf(MulOf(N(-1), lam, x)))
	norm := gaussian(x, mu, sigma)
	z2 := PowOf(AddOf(x, MulOf(N(-1), mu)), N(2))
	for i, c := range []struct {
		e      Expr
		lo, hi Expr
		want   string
	}{
		// densities integrate to one
		{expon, N(0), PosInf, "1"},
		{norm, NegInf, PosInf, "1"},
		// moments
		{MulOf(x, expon), N(0), PosInf, "lambda^(-1)"},
		{MulOf(PowOf(x, N(2)), expon), N(0), PosInf, "2*lambda^(-2)"},
		{MulOf(x, norm), NegInf, PosInf, "mu"},
		{MulOf(z2, norm), NegInf, PosInf, "sigma^2"},
		// polynomials over finite bounds, symbolic bounds included
		{x, N(0), S("b"), "1/2*b^2"},
		{PowOf(x, N(2)), N(1), N(2), "7/3"},
		{AddOf(MulOf(b, x), N(1)), N(0), N(1), "1/2*b + 1"},
	} {
		got, err := Integrate(c.e, "x", c.lo, c.hi)
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if s := got.String(); s != c.want {
			t.Errorf("%d: got %q, want %q", i, s, c.want)
		}
	}
}

func TestIntegrateNoClosedForm(t *testing.T) {
	x := S("x")
	for i, c := range []struct {
		e      Expr
		lo, hi Expr
	}{
		// negative powers of the variate
		{PowOf(x, N(-1)), N(0), PosInf},
		// polynomial tail over the whole line
		{x, NegInf, PosInf},
		// logarithmic integrand
		{MulOf(LnOf(x), ExpOf(MulOf(N(-1), x))), N(0), PosInf},
		// quadratic rate on the half line
		{ExpOf(MulOf(N(-1), PowOf(x, N(2)))), N(0), PosInf},
	} {
		if _, err := Integrate(c.e, "x", c.lo, c.hi); !errors.Is(err, ErrNoClosedForm) {
			t.Errorf("%d: got %v, want ErrNoClosedForm", i, err)
		}
	}
}

func TestSummate(t *testing.T) {
	x, lam, p := S("x"), S("lambda"), S("p")
	q := AddOf(N(1), MulOf(N(-1), p))
	poisson := MulOf(ExpOf(MulOf(N(-1), lam)), PowOf(lam, x),
		PowOf(FactOf(x), N(-1)))
	geometric := MulOf(p, PowOf(q, x))
	bernoulli := MulOf(PowOf(p, x), PowOf(q, AddOf(N(1), MulOf(N(-1), x))))
	for i, c := range []struct {
		e      Expr
		lo, hi Expr
		want   string
	}{
		// densities sum to one
		{poisson, N(0), PosInf, "1"},
		{geometric, N(0), PosInf, "1"},
		{bernoulli, N(0), N(1), "1"},
		// moments
		{MulOf(x, poisson), N(0), PosInf, "lambda"},
		{MulOf(x, geometric), N(0), PosInf, "p^(-1) - 1"},
		{MulOf(x, bernoulli), N(0), N(1), "p"},
		// plain finite sums
		{x, N(0), N(3), "6"},
		{PowOf(x, N(2)), N(1), N(4), "30"},
	} {
		got, err := Summate(c.e, "x", c.lo, c.hi)
		if err != nil {
			t.Errorf("%d: %v", i, err)
			continue
		}
		if s := got.String(); s != c.want {
			t.Errorf("%d: got %q, want %q", i, s, c.want)
		}
	}
}

func TestSummateNoClosedForm(t *testing.T) {
	x := S("x")
	for i, c := range []struct {
		e      Expr
		lo, hi Expr
	}{
		// neither factorial nor geometric factor in the term
		{x, N(0), PosInf},
		// unsupported bounds
		{x, N(1), PosInf},
		{x, S("a"), N(3)},
	} {
		if _, err := Summate(c.e, "x", c.lo, c.hi); !errors.Is(err, ErrNoClosedForm) {
			t.Errorf("%d: got %v, want ErrNoClosedForm", i, err)
		}
	}
}
