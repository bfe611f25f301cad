package integrators

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/phasesync/internal/sim"
)

// Euler is the explicit first-order scheme x' = x + dt·f(x, t).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys sim.System, x sim.State, t float64, dt float64) sim.State {
	dx := sys.Derive(x, t)
	result := make(sim.State, len(x))
	floats.AddScaledTo(result, x, dt, dx)
	return result
}
