package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates phi0, theta and the coupling matrix disagree in size.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch")

	// ErrInvalidParameter indicates a parameter outside its valid range.
	ErrInvalidParameter = errors.New("sim: invalid parameter")

	// ErrUnstable indicates a step produced NaN or Inf.
	ErrUnstable = errors.New("sim: simulation unstable (state diverged)")

	// ErrCanceled indicates the run was interrupted by its context.
	ErrCanceled = errors.New("sim: simulation canceled by context")
)

// ParamError names the parameter that failed validation.
type ParamError struct {
	Param string
	Value any
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s = %v", e.Err, e.Param, e.Value)
}

func (e *ParamError) Unwrap() error { return e.Err }

// InvalidParam builds a ParamError wrapping ErrInvalidParameter.
func InvalidParam(param string, value any) error {
	return &ParamError{Param: param, Value: value, Err: ErrInvalidParameter}
}

// MismatchParam builds a ParamError wrapping ErrDimensionMismatch. Value
// describes the observed versus expected size.
func MismatchParam(param string, got, want int) error {
	return &ParamError{
		Param: param,
		Value: fmt.Sprintf("len %d, want %d", got, want),
		Err:   ErrDimensionMismatch,
	}
}

// SimulationError wraps an error with the step at which it occurred.
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
