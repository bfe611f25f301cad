package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/phasesync/internal/metrics"
	"github.com/san-kum/phasesync/internal/sim"
)

// SyncTime returns the first grid time at which the spread of phases is
// below tol, or -1 if that never happens.
func SyncTime(traj *sim.Trajectory, tol float64) float64 {
	for k := 0; k < traj.Len(); k++ {
		if metrics.PhaseSpread(traj.Phases.RawRowView(k)) < tol {
			return traj.Times[k]
		}
	}
	return -1
}

type Summary struct {
	Units          int
	Points         int
	Horizon        float64
	InitialSpread  float64
	FinalSpread    float64
	FinalCoherence float64
	PeakAbs        float64
	SyncTime       float64
}

func Summarize(traj *sim.Trajectory, tol float64) Summary {
	s := Summary{
		Units:    traj.Units(),
		Points:   traj.Len(),
		SyncTime: SyncTime(traj, tol),
	}
	if traj.Len() == 0 {
		return s
	}

	first, last := traj.Initial(), traj.Final()
	s.Horizon = traj.Times[traj.Len()-1]
	s.InitialSpread = metrics.PhaseSpread(first)
	s.FinalSpread = metrics.PhaseSpread(last)
	s.FinalCoherence = metrics.OrderParameter(last)

	raw := traj.Phases.RawMatrix().Data
	if len(raw) > 0 {
		s.PeakAbs = math.Max(math.Abs(floats.Max(raw)), math.Abs(floats.Min(raw)))
	}
	return s
}
