package priors

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Observation model names recognized by the AR1 prior.
const (
	AR1Model       = "Autoregressive process of first order (AR1)"
	ScaledAR1Model = "Scaled autoregressive process of first order (AR1)"
)

// Study is the read-only view of the host study the AR1 prior needs:
// the observation model's name, the parallel parameter grids
// (autocorrelation coefficient r and scale s), and the raw
// observations.
type Study interface {
	ObservationModel() string
	Grid() (r, s []float64)
	RawData() []float64
}

// GridStudy is a plain-value Study.
type GridStudy struct {
	Model string
	R, S  []float64
	Data  []float64
}

func (g GridStudy) ObservationModel() string { return g.Model }
func (g GridStudy) Grid() (r, s []float64)   { return g.R, g.S }
func (g GridStudy) RawData() []float64       { return g.Data }

// AR1 computes Uhlig's closed-form Jeffreys prior for a first-order
// autoregressive process elementwise over the study's grid and
// normalizes it to sum to 1. Under the scaled model the scale grid is
// rescaled as s*sqrt(1-r^2) first. The first observation enters the
// prior; the observation count scales it.
//
// The closed form holds only for stationary processes. If any grid
// point has |r| >= 1, the entire grid falls back to a flat prior,
// which is returned together with ErrNonStationary so that callers can
// distinguish the fallback from the closed form.
func AR1(study Study) ([]float64, error) {
	r, s := study.Grid()
	if len(r) != len(s) {
		return nil, ErrGridShape
	}
	switch study.ObservationModel() {
	case AR1Model:
	case ScaledAR1Model:
		scaled := make([]float64, len(s))
		for i := range s {
			scaled[i] = s[i] * math.Sqrt(1-r[i]*r[i])
		}
		s = scaled
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, study.ObservationModel())
	}

	for i := range r {
		if math.Abs(r[i]) >= 1 {
			return flat(len(r)), ErrNonStationary
		}
	}

	data := study.RawData()
	if len(data) == 0 {
		return nil, ErrMissingData
	}
	d0 := data[0]
	n := float64(len(data))

	prior := make([]float64, len(r))
	for i := range prior {
		r2 := r[i] * r[i]
		s2 := s[i] * s[i]
		prior[i] = 1 / s2 *
			math.Exp(-d0*d0*(1-r2)/(2*s2)) *
			math.Sqrt(4*r2/(1-r2)+2*(n+1))
	}
	normalize(prior)
	return prior, nil
}

func flat(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	normalize(out)
	return out
}

func normalize(p []float64) {
	if len(p) == 0 {
		return
	}
	if sum := floats.Sum(p); sum > 0 {
		floats.Scale(1/sum, p)
	}
}
