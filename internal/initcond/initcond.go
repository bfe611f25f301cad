// Package initcond draws initial phase vectors. Randomness always comes
// from a caller-supplied source so a seed fully determines the draw.
package initcond

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/phasesync/internal/sim"
)

// Seeded returns a deterministic source for seed.
func Seeded(seed int64) rand.Source {
	return rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
}

// Uniform draws n phases from U[lo, hi) using src.
func Uniform(n int, lo, hi float64, src rand.Source) (sim.State, error) {
	if n <= 0 {
		return nil, sim.InvalidParam("n", n)
	}
	if !(lo < hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, sim.InvalidParam("interval", [2]float64{lo, hi})
	}
	if src == nil {
		return nil, sim.InvalidParam("source", nil)
	}

	dist := distuv.Uniform{Min: lo, Max: hi, Src: src}
	phi := make(sim.State, n)
	for i := range phi {
		phi[i] = dist.Rand()
	}
	return phi, nil
}
