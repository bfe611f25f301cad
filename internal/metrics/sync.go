package metrics

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/phasesync/internal/sim"
)

// Spread reports max(phi) - min(phi) at the most recent step.
type Spread struct {
	last float64
}

func NewSpread() *Spread { return &Spread{} }

func (s *Spread) Name() string { return "spread" }

func (s *Spread) Observe(x sim.State, t float64) {
	s.last = PhaseSpread(x)
}

func (s *Spread) Value() float64 { return s.last }

func (s *Spread) Reset() { s.last = 0 }

// PhaseSpread returns the width of the interval covering all phases.
func PhaseSpread(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Max(x) - floats.Min(x)
}

// Coherence reports the Kuramoto order parameter |<e^{i phi}>| at the most
// recent step: 1 for identical phases, near 0 for phases spread evenly
// around the circle.
type Coherence struct {
	last float64
}

func NewCoherence() *Coherence { return &Coherence{} }

func (c *Coherence) Name() string { return "coherence" }

func (c *Coherence) Observe(x sim.State, t float64) {
	c.last = OrderParameter(x)
}

func (c *Coherence) Value() float64 { return c.last }

func (c *Coherence) Reset() { c.last = 0 }

func OrderParameter(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var z complex128
	for _, phi := range x {
		z += cmplx.Exp(complex(0, phi))
	}
	return cmplx.Abs(z) / float64(len(x))
}

// Decay is ||phi(T)|| / ||phi(0)||. A zero initial state reports 0.
type Decay struct {
	initial float64
	last    float64
	seen    bool
}

func NewDecay() *Decay { return &Decay{} }

func (d *Decay) Name() string { return "decay" }

func (d *Decay) Observe(x sim.State, t float64) {
	n := x.Norm()
	if !d.seen {
		d.initial = n
		d.seen = true
	}
	d.last = n
}

func (d *Decay) Value() float64 {
	if d.initial == 0 || math.IsNaN(d.initial) {
		return 0
	}
	return d.last / d.initial
}

func (d *Decay) Reset() {
	d.initial = 0
	d.last = 0
	d.seen = false
}

// Defaults returns the metric set attached to every experiment run.
func Defaults(threshold float64) []sim.Metric {
	return []sim.Metric{
		NewSpread(),
		NewCoherence(),
		NewDecay(),
		NewStability(threshold),
	}
}
