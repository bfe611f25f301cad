package sim

import (
	"context"
	"errors"
	"math"
	"testing"
)

type testDynamics struct{}

func (t *testDynamics) Derive(x State, time float64) State {
	return State{-x[0]}
}

func (t *testDynamics) Dim() int { return 1 }

type testIntegrator struct{}

func (t *testIntegrator) Step(dyn System, x State, time float64, dt float64) State {
	dx := dyn.Derive(x, time)
	return State{x[0] + dt*dx[0]}
}

type blowUp struct{}

func (b *blowUp) Step(dyn System, x State, time float64, dt float64) State {
	return State{math.Inf(1)}
}

func TestSimulatorRun(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	cfg := Config{
		Dt:       0.1,
		Duration: 1.0,
	}

	x0 := State{1.0}
	result, err := sim.Run(context.Background(), x0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	traj := result.Trajectory
	if traj.Len() != 11 {
		t.Errorf("expected 11 states, got %d", traj.Len())
	}
	if len(traj.Times) != 11 {
		t.Errorf("expected 11 times, got %d", len(traj.Times))
	}
	if result.StepsTaken != 10 {
		t.Errorf("expected 10 steps, got %d", result.StepsTaken)
	}

	finalState := traj.Final()[0]
	expected := math.Pow(0.9, 10)
	if math.Abs(finalState-expected) > 1e-12 {
		t.Errorf("expected final state %.6f, got %.6f", expected, finalState)
	}
}

func TestSimulatorRun_InitialRowExact(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})
	x0 := State{0.1 + 0.2}

	result, err := sim.Run(context.Background(), x0, Config{Dt: 0.01, Duration: 0.05})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if got := result.Trajectory.Initial()[0]; got != x0[0] {
		t.Errorf("row 0 = %v, want %v", got, x0[0])
	}
}

func TestSimulatorRun_ZeroDuration(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	result, err := sim.Run(context.Background(), State{2.0}, Config{Dt: 0.1, Duration: 0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Trajectory.Len() != 1 {
		t.Errorf("expected a single row, got %d", result.Trajectory.Len())
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected 0 steps, got %d", result.StepsTaken)
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	tests := []struct {
		name  string
		cfg   Config
		param string
	}{
		{"zero dt", Config{Dt: 0, Duration: 1.0}, "dt"},
		{"negative dt", Config{Dt: -0.1, Duration: 1.0}, "dt"},
		{"NaN dt", Config{Dt: math.NaN(), Duration: 1.0}, "dt"},
		{"negative duration", Config{Dt: 0.1, Duration: -1.0}, "t_max"},
		{"infinite duration", Config{Dt: 0.1, Duration: math.Inf(1)}, "t_max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0 := State{1.0}
			result, err := sim.Run(context.Background(), x0, tt.cfg)
			if result != nil {
				t.Error("expected no result")
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			var pe *ParamError
			if !errors.As(err, &pe) || pe.Param != tt.param {
				t.Errorf("expected param %q, got %v", tt.param, err)
			}
		})
	}
}

func TestSimulatorDimensionMismatch(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	_, err := sim.Run(context.Background(), State{1, 2}, Config{Dt: 0.1, Duration: 1})
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestSimulatorValidateState(t *testing.T) {
	sim := New(&testDynamics{}, &blowUp{})

	_, err := sim.Run(context.Background(), State{1}, Config{Dt: 0.1, Duration: 1, ValidateState: true})
	if !errors.Is(err, ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}
	var se *SimulationError
	if !errors.As(err, &se) || se.Step != 1 {
		t.Errorf("expected failure at step 1, got %v", err)
	}

	result, err := sim.Run(context.Background(), State{1}, Config{Dt: 0.1, Duration: 1})
	if err != nil {
		t.Fatalf("unvalidated run failed: %v", err)
	}
	if !math.IsInf(result.Trajectory.Final()[0], 1) {
		t.Errorf("expected +Inf to pass through, got %v", result.Trajectory.Final())
	}
}

func TestSimulatorCanceled(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := sim.Run(ctx, State{1}, Config{Dt: 0.1, Duration: 1})
	if result != nil {
		t.Error("expected no partial result")
	}
	if !errors.Is(err, ErrCanceled) || !errors.Is(err, context.Canceled) {
		t.Errorf("expected cancellation, got %v", err)
	}
}

type testMetric struct {
	count int
	sum   float64
}

func (t *testMetric) Name() string { return "test" }
func (t *testMetric) Observe(x State, time float64) {
	t.count++
	t.sum += x[0]
}
func (t *testMetric) Value() float64 {
	if t.count == 0 {
		return 0
	}
	return t.sum / float64(t.count)
}
func (t *testMetric) Reset() {
	t.count = 0
	t.sum = 0
}

func TestSimulatorMetrics(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})

	metric := &testMetric{}
	sim.AddMetric(metric)

	cfg := Config{Dt: 0.1, Duration: 1.0}
	x0 := State{1.0}

	result, err := sim.Run(context.Background(), x0, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if _, ok := result.Metrics["test"]; !ok {
		t.Error("metric not found in result")
	}

	if metric.count != 11 {
		t.Errorf("expected 11 observations, got %d", metric.count)
	}

	if _, err := sim.Run(context.Background(), x0, cfg); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if metric.count != 11 {
		t.Errorf("metric not reset between runs: %d observations", metric.count)
	}
}

type recorder struct{ times []float64 }

func (r *recorder) OnStep(x State, t float64) { r.times = append(r.times, t) }

func TestSimulatorObserverOrder(t *testing.T) {
	sim := New(&testDynamics{}, &testIntegrator{})
	rec := &recorder{}
	sim.AddObserver(rec)

	if _, err := sim.Run(context.Background(), State{1}, Config{Dt: 0.25, Duration: 1}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if len(rec.times) != len(want) {
		t.Fatalf("expected %d callbacks, got %d", len(want), len(rec.times))
	}
	for i := range want {
		if rec.times[i] != want[i] {
			t.Errorf("callback %d at t=%v, want %v", i, rec.times[i], want[i])
		}
	}
}
