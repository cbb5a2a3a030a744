package dist

import (
	"math"
	"testing"

	infdist "bitbucket.org/dtolpin/infergo/dist"

	"bitbucket.org/dtolpin/jeffreys/sym"
)

const eps = 1e-12

func density(t *testing.T, rv RandomVariable, env map[string]float64) float64 {
	t.Helper()
	v, err := sym.Eval(rv.Density(sym.S("x")), env)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestNormalDensity(t *testing.T) {
	d := Normal{Mean: "mu", Stddev: "sigma"}
	for _, c := range []struct{ mu, sigma, x float64 }{
		{0, 1, 0},
		{0.5, 2, -1},
		{-1, 0.5, 0.3},
	} {
		got := density(t, d, map[string]float64{
			"mu": c.mu, "sigma": c.sigma, "x": c.x,
		})
		want := math.Exp(infdist.Normal.Logp(c.mu, c.sigma, c.x))
		if math.Abs(got-want) > eps {
			t.Errorf("%+v: got %v, want %v", c, got, want)
		}
	}
}

func TestNormalMeanDensity(t *testing.T) {
	d := NormalMean{Mean: "mu"}
	for _, c := range []struct{ mu, x float64 }{
		{0, 0},
		{2, 1.5},
		{-0.7, 0.3},
	} {
		got := density(t, d, map[string]float64{"mu": c.mu, "x": c.x})
		want := math.Exp(infdist.Normal.Logp(c.mu, 1, c.x))
		if math.Abs(got-want) > eps {
			t.Errorf("%+v: got %v, want %v", c, got, want)
		}
	}
}

func TestExponentialDensity(t *testing.T) {
	d := Exponential{Rate: "lambda"}
	for _, c := range []struct{ lambda, x float64 }{
		{1, 0},
		{2, 0.5},
		{0.25, 3},
	} {
		got := density(t, d, map[string]float64{"lambda": c.lambda, "x": c.x})
		want := c.lambda * math.Exp(-c.lambda*c.x)
		if math.Abs(got-want) > eps {
			t.Errorf("%+v: got %v, want %v", c, got, want)
		}
	}
}

func TestPoissonDensity(t *testing.T) {
	d := Poisson{Rate: "lambda"}
	for _, c := range []struct {
		lambda float64
		x      int
	}{
		{1, 0},
		{2.5, 3},
		{0.5, 1},
	} {
		got := density(t, d, map[string]float64{
			"lambda": c.lambda, "x": float64(c.x),
		})
		want := math.Exp(-c.lambda) * math.Pow(c.lambda, float64(c.x)) /
			math.Gamma(float64(c.x)+1)
		if math.Abs(got-want) > eps {
			t.Errorf("%+v: got %v, want %v", c, got, want)
		}
	}
}

func TestBernoulliDensity(t *testing.T) {
	d := Bernoulli{Prob: "p"}
	for _, c := range []struct{ p, x, want float64 }{
		{0.3, 0, 0.7},
		{0.3, 1, 0.3},
		{0.9, 1, 0.9},
	} {
		got := density(t, d, map[string]float64{"p": c.p, "x": c.x})
		if math.Abs(got-c.want) > eps {
			t.Errorf("%+v: got %v, want %v", c, got, c.want)
		}
	}
}

func TestGeometricDensity(t *testing.T) {
	d := Geometric{Prob: "p"}
	for _, c := range []struct {
		p float64
		x int
	}{
		{0.5, 0},
		{0.2, 4},
		{0.8, 1},
	} {
		got := density(t, d, map[string]float64{"p": c.p, "x": float64(c.x)})
		want := c.p * math.Pow(1-c.p, float64(c.x))
		if math.Abs(got-want) > eps {
			t.Errorf("%+v: got %v, want %v", c, got, want)
		}
	}
}

func TestGammaDensity(t *testing.T) {
	d := Gamma{Shape: "alpha", Rate: "beta"}
	for _, c := range []struct{ alpha, beta, x float64 }{
		{1, 1, 0.5},
		{2, 0.5, 3},
		{0.5, 2, 0.1},
	} {
		got := density(t, d, map[string]float64{
			"alpha": c.alpha, "beta": c.beta, "x": c.x,
		})
		lg, _ := math.Lgamma(c.alpha)
		want := math.Exp(c.alpha*math.Log(c.beta) - lg +
			(c.alpha-1)*math.Log(c.x) - c.beta*c.x)
		if math.Abs(got-want) > eps {
			t.Errorf("%+v: got %v, want %v", c, got, want)
		}
	}
}

func TestSupports(t *testing.T) {
	for _, c := range []struct {
		rv       RandomVariable
		discrete bool
	}{
		{Exponential{Rate: "lambda"}, false},
		{Normal{Mean: "mu", Stddev: "sigma"}, false},
		{NormalMean{Mean: "mu"}, false},
		{Poisson{Rate: "lambda"}, true},
		{Bernoulli{Prob: "p"}, true},
		{Geometric{Prob: "p"}, true},
		{Uniform{Scale: "theta"}, false},
		{Gamma{Shape: "alpha", Rate: "beta"}, false},
	} {
		if got := c.rv.Support().Discrete; got != c.discrete {
			t.Errorf("%s: Discrete = %v, want %v", c.rv.Name(), got, c.discrete)
		}
	}
}

func TestParamOrder(t *testing.T) {
	d := Normal{Mean: "m", Stddev: "s"}
	params := d.Params()
	if len(params) != 2 || params[0] != "m" || params[1] != "s" {
		t.Errorf("got %v, want [m s]", params)
	}
}

func TestUniformSupportBound(t *testing.T) {
	d := Uniform{Scale: "theta"}
	sup := d.Support()
	if s, ok := sup.Hi.(*sym.Sym); !ok || s.Name() != "theta" {
		t.Errorf("got %v, want the scale symbol", sup.Hi)
	}
}
