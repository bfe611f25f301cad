package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/phasesync/internal/sim"
)

var ErrEigenFailed = errors.New("analysis: eigen decomposition failed")

// MaxStableStep returns 2/λmax of L + diag(theta). L must be symmetric.
// A system with no positive eigenvalue has no step limit and reports +Inf.
func MaxStableStep(l mat.Matrix, theta []float64) (float64, error) {
	r, err := sim.CheckCoupling(l)
	if err != nil {
		return 0, err
	}
	if len(theta) != r {
		return 0, sim.MismatchParam("theta", len(theta), r)
	}

	a := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			v := l.At(i, j)
			if v != l.At(j, i) {
				return 0, sim.InvalidParam("L", "not symmetric")
			}
			if i == j {
				v += theta[i]
			}
			a.SetSym(i, j, v)
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(a, false); !ok {
		return 0, ErrEigenFailed
	}
	vals := es.Values(nil)
	lmax := vals[len(vals)-1]
	if lmax <= 0 {
		return math.Inf(1), nil
	}
	return 2 / lmax, nil
}
