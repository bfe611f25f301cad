package rhythm

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/phasesync/internal/integrators"
	"github.com/san-kum/phasesync/internal/sim"
)

// Integrate advances phi0 under the ring phase model with forward Euler
// over [0, tMax] and returns the time grid with the full trajectory.
// Inputs are validated before any step runs and are never modified.
func Integrate(ctx context.Context, phi0 []float64, l mat.Matrix, theta []float64, dt, tMax float64) (*sim.Result, error) {
	if _, err := sim.Steps(dt, tMax); err != nil {
		return nil, err
	}
	model, err := New(l, theta)
	if err != nil {
		return nil, err
	}

	s := sim.New(model, integrators.NewEuler())
	return s.Run(ctx, sim.State(phi0), sim.Config{Dt: dt, Duration: tMax})
}
