package sim

import "math"

const (
	// stepTolerance absorbs representation error in T/dt so that, e.g.,
	// 0.3/0.1 = 2.9999999999999996 still yields three steps.
	stepTolerance = 1e-9

	// MaxSteps bounds the trajectory allocation.
	MaxSteps = 1 << 24
)

// Steps returns the number of Euler updates needed to cover [0, duration]
// with step dt. The time grid has Steps+1 points. The tolerance is applied
// to duration/dt, so the last grid point may exceed duration by up to
// 1e-9·dt.
func Steps(dt, duration float64) (int, error) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0, InvalidParam("dt", dt)
	}
	if !(duration >= 0) || math.IsInf(duration, 0) {
		return 0, InvalidParam("t_max", duration)
	}
	n := math.Floor(duration/dt + stepTolerance)
	if n > MaxSteps {
		return 0, InvalidParam("t_max/dt", n)
	}
	return int(n), nil
}

// TimeGrid returns 0, dt, 2dt, ... up to duration inclusive. Points are
// k*dt, never a running sum.
func TimeGrid(dt, duration float64) ([]float64, error) {
	n, err := Steps(dt, duration)
	if err != nil {
		return nil, err
	}
	times := make([]float64, n+1)
	for k := range times {
		times[k] = float64(k) * dt
	}
	return times, nil
}
