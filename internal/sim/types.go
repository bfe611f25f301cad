package sim

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// State is the phase vector of all units at one instant, in radians.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Norm(s, 2)
}

// System is a first-order ODE dx/dt = f(x, t).
type System interface {
	Derive(x State, t float64) State
	Dim() int
}

type Integrator interface {
	Step(sys System, x State, t float64, dt float64) State
}

type Metric interface {
	Name() string
	Observe(x State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(x State, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	// ValidateState aborts the run when a step produces NaN or Inf.
	ValidateState bool
}

type Result struct {
	Trajectory *Trajectory
	Metrics    map[string]float64
	StepsTaken int
}

// Trajectory is the time grid together with the phase table. Row k of
// Phases holds the state at Times[k]; row 0 is the initial condition.
type Trajectory struct {
	Times  []float64
	Phases *mat.Dense
}

func newTrajectory(times []float64, n int) *Trajectory {
	return &Trajectory{
		Times:  times,
		Phases: mat.NewDense(len(times), n, nil),
	}
}

// Len returns the number of time points.
func (tr *Trajectory) Len() int { return len(tr.Times) }

// Units returns the number of oscillatory units.
func (tr *Trajectory) Units() int {
	_, c := tr.Phases.Dims()
	return c
}

// Row returns a copy of the phase vector at time index k.
func (tr *Trajectory) Row(k int) State {
	return State(mat.Row(nil, k, tr.Phases))
}

// Unit returns the full time series of unit i.
func (tr *Trajectory) Unit(i int) []float64 {
	return mat.Col(nil, i, tr.Phases)
}

func (tr *Trajectory) Initial() State { return tr.Row(0) }

func (tr *Trajectory) Final() State { return tr.Row(tr.Len() - 1) }
