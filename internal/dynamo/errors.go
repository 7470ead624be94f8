package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownVariant indicates a variant name or value with no motion model.
	ErrUnknownVariant = errors.New("dynamo: unknown simulation variant")

	// ErrInvalidMass indicates a non-positive or non-finite body mass.
	ErrInvalidMass = errors.New("dynamo: mass must be a finite value > 0")

	// ErrInvalidShape indicates a body shape other than box or sphere.
	ErrInvalidShape = errors.New("dynamo: shape must be box or sphere")

	// ErrInvalidColor indicates a color that is not #rrggbb.
	ErrInvalidColor = errors.New("dynamo: color must be #rrggbb")

	// ErrConfigNotReady indicates the sandbox configuration has not loaded yet.
	ErrConfigNotReady = errors.New("dynamo: sandbox configuration not ready")

	// ErrNotFound indicates a missing stored run or configuration.
	ErrNotFound = errors.New("dynamo: not found")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
