package physics

import "errors"

// Domain errors for particle operations.
var (
	// ErrInvalidArgument indicates a particle could not be constructed or was
	// given a value with no finite momentum.
	ErrInvalidArgument = errors.New("physics: invalid argument")

	// ErrEnergyBelowMass indicates a target energy below the rest energy.
	ErrEnergyBelowMass = errors.New("physics: energy below rest mass")

	// ErrBetaOutOfRange indicates a target beta outside [0, 1].
	ErrBetaOutOfRange = errors.New("physics: beta must be in the [0, 1] range")

	// ErrLightSpeed indicates a massive particle was asked to travel at beta = 1.
	ErrLightSpeed = errors.New("physics: only massless particles can travel at beta = 1")

	// ErrUnknownParam indicates a parameter name the particle does not expose.
	ErrUnknownParam = errors.New("physics: unknown parameter")

	// ErrImmutableParam indicates an attempt to change a fixed particle property.
	ErrImmutableParam = errors.New("physics: parameter is immutable")
)

// RejectionError carries the rejected value of a soft-rejected setter.
// The particle state is unchanged whenever one is returned.
type RejectionError struct {
	Particle string
	Param    string
	Value    float64
	Wrapped  error
}

func (e *RejectionError) Error() string {
	return e.Wrapped.Error()
}

func (e *RejectionError) Unwrap() error {
	return e.Wrapped
}
