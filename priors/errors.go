package priors

import "errors"

// Package-level sentinel errors; callers match them with errors.Is.
// Symbolic derivation failures are not redeclared here: Jeffreys
// propagates sym.ErrNoClosedForm from the engine, wrapped with the
// failing entry's context.
var (
	// ErrUnsupportedModel means the study's observation model is not
	// one of the recognized AR1 variants.
	ErrUnsupportedModel = errors.New("priors: unsupported observation model")

	// ErrMissingData means observation data is required but the study
	// has none loaded.
	ErrMissingData = errors.New("priors: no observation data loaded")

	// ErrNonStationary means some grid point has |r| >= 1, where the
	// closed-form AR1 prior is undefined. AR1 recovers by returning a
	// flat prior over the whole grid together with this error.
	ErrNonStationary = errors.New("priors: non-stationary grid point")

	// ErrInvalidDistribution means the Fisher information determinant
	// is negative, so its square root is not a real prior.
	ErrInvalidDistribution = errors.New("priors: negative Fisher information determinant")

	// ErrBadDescriptor means the random-variable descriptor is not
	// usable: no free parameters, or a reserved parameter name.
	ErrBadDescriptor = errors.New("priors: invalid random-variable descriptor")

	// ErrGridShape means parameter grids disagree in length.
	ErrGridShape = errors.New("priors: grid shape mismatch")
)
