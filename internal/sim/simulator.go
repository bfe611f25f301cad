package sim

import (
	"context"
	"fmt"
)

type Simulator struct {
	sys        System
	integrator Integrator
	metrics    []Metric
	observers  []Observer
}

func New(sys System, integrator Integrator) *Simulator {
	return &Simulator{
		sys:        sys,
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run integrates from x0 over the grid defined by cfg. Row 0 of the
// trajectory is x0 as given; every later row is one integrator step from
// the row before it. On any error no trajectory is returned.
func (s *Simulator) Run(ctx context.Context, x0 State, cfg Config) (*Result, error) {
	times, err := TimeGrid(cfg.Dt, cfg.Duration)
	if err != nil {
		return nil, err
	}
	n := s.sys.Dim()
	if len(x0) != n {
		return nil, MismatchParam("phi0", len(x0), n)
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	traj := newTrajectory(times, n)
	traj.Phases.SetRow(0, x0)
	x := x0.Clone()
	s.observe(x, times[0])

	steps := len(times) - 1
	for k := 1; k <= steps; k++ {
		select {
		case <-ctx.Done():
			return nil, &SimulationError{
				Step:    k - 1,
				Time:    times[k-1],
				Wrapped: fmt.Errorf("%w: %w", ErrCanceled, ctx.Err()),
			}
		default:
		}

		next := s.integrator.Step(s.sys, x, times[k-1], cfg.Dt)
		if cfg.ValidateState && !next.IsValid() {
			return nil, &SimulationError{Step: k, Time: times[k], Wrapped: ErrUnstable}
		}

		traj.Phases.SetRow(k, next)
		x = next
		s.observe(x, times[k])
	}

	result := &Result{
		Trajectory: traj,
		Metrics:    make(map[string]float64, len(s.metrics)),
		StepsTaken: steps,
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (s *Simulator) observe(x State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(x, t)
	}
}
