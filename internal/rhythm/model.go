// Package rhythm defines the damped ring phase model
//
//	dphi/dt = -(L·phi) - theta ⊙ phi
//
// where L is the coupling Laplacian and theta holds one dissipation
// coefficient per unit.
package rhythm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/phasesync/internal/sim"
)

// Model implements sim.System for a fixed coupling matrix and damping vector.
type Model struct {
	n     int
	l     mat.Matrix
	theta []float64
}

// New checks that l is square and theta has one entry per row of l.
// theta is copied; l is retained and must not be modified afterwards.
func New(l mat.Matrix, theta []float64) (*Model, error) {
	r, err := sim.CheckCoupling(l)
	if err != nil {
		return nil, err
	}
	if len(theta) != r {
		return nil, sim.MismatchParam("theta", len(theta), r)
	}

	th := make([]float64, len(theta))
	copy(th, theta)
	return &Model{n: r, l: l, theta: th}, nil
}

func (m *Model) Dim() int { return m.n }

// Derive returns the instantaneous rate of change at phi.
func (m *Model) Derive(phi sim.State, _ float64) sim.State {
	var lphi mat.VecDense
	lphi.MulVec(m.l, mat.NewVecDense(m.n, phi))

	rate := make(sim.State, m.n)
	for i := range rate {
		rate[i] = -lphi.AtVec(i) - m.theta[i]*phi[i]
	}
	return rate
}

// Theta returns a copy of the damping vector.
func (m *Model) Theta() []float64 {
	th := make([]float64, len(m.theta))
	copy(th, m.theta)
	return th
}

func (m *Model) Coupling() mat.Matrix { return m.l }

func (m *Model) GetParams() map[string]float64 {
	params := make(map[string]float64, m.n)
	for i, v := range m.theta {
		params[fmt.Sprintf("theta_%d", i+1)] = v
	}
	return params
}
