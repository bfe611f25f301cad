package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/phasesync/internal/analysis"
	"github.com/san-kum/phasesync/internal/initcond"
	"github.com/san-kum/phasesync/internal/integrators"
	"github.com/san-kum/phasesync/internal/metrics"
	"github.com/san-kum/phasesync/internal/rhythm"
	"github.com/san-kum/phasesync/internal/ring"
	"github.com/san-kum/phasesync/internal/sim"
)

// Config is the full parameter set of one run. When Phi0 is empty the
// initial phases are drawn from U[Lo, Hi) with a source seeded by Seed.
type Config struct {
	Units              int
	Theta              []float64
	Phi0               []float64
	Seed               int64
	Lo, Hi             float64
	Dt                 float64
	Duration           float64
	ValidateState      bool
	SyncTolerance      float64
	StabilityThreshold float64
}

// Report is everything a finished run hands to renderers.
type Report struct {
	ID         string
	Config     Config
	Phi0       sim.State
	Coupling   *mat.Dense
	Result     *sim.Result
	Summary    analysis.Summary
	StableStep float64
	Elapsed    time.Duration
}

// Labels returns "Unit 1".."Unit N" for the run.
func (r *Report) Labels() []string {
	labels := make([]string, r.Config.Units)
	for i := range labels {
		labels[i] = fmt.Sprintf("Unit %d", i+1)
	}
	return labels
}

type Experiment struct {
	cfg        Config
	logger     *slog.Logger
	randSource rand.Source
	simulator  *sim.Simulator
	coupling   *mat.Dense
	phi0       sim.State
	stableStep float64
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		logger:     slog.Default().With(slog.String("component", "experiment")),
		randSource: initcond.Seeded(cfg.Seed),
	}
}

func (e *Experiment) WithLogger(logger *slog.Logger) *Experiment {
	if logger != nil {
		e.logger = logger.With(slog.String("component", "experiment"))
	}
	return e
}

// Setup validates the configuration, draws the initial phases and builds
// the coupling matrix and simulator. Nothing is integrated yet.
func (e *Experiment) Setup() error {
	cfg := e.cfg
	steps, err := sim.Steps(cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}

	l, err := ring.Laplacian(cfg.Units)
	if err != nil {
		return err
	}
	model, err := rhythm.New(l, cfg.Theta)
	if err != nil {
		return err
	}

	if len(cfg.Phi0) > 0 {
		if len(cfg.Phi0) != cfg.Units {
			return sim.MismatchParam("phi0", len(cfg.Phi0), cfg.Units)
		}
		e.phi0 = sim.State(cfg.Phi0).Clone()
	} else {
		e.phi0, err = initcond.Uniform(cfg.Units, cfg.Lo, cfg.Hi, e.randSource)
		if err != nil {
			return err
		}
	}

	e.stableStep, err = analysis.MaxStableStep(l, cfg.Theta)
	if err != nil {
		return err
	}
	if cfg.Dt >= e.stableStep {
		e.logger.Warn("time step exceeds forward Euler stability limit",
			slog.Float64("dt", cfg.Dt),
			slog.Float64("limit", e.stableStep),
		)
	}

	e.coupling = l
	e.simulator = sim.New(model, integrators.NewEuler())
	for _, m := range metrics.Defaults(cfg.StabilityThreshold) {
		e.simulator.AddMetric(m)
	}
	if e.logger.Enabled(context.Background(), slog.LevelDebug) {
		e.simulator.AddObserver(newProgressLogger(e.logger, steps))
	}

	e.logger.Debug("experiment ready",
		slog.Int("units", cfg.Units),
		slog.Float64("dt", cfg.Dt),
		slog.Float64("t_max", cfg.Duration),
		slog.Any("phi0", []float64(e.phi0)),
	)
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*Report, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	start := time.Now()
	result, err := e.simulator.Run(ctx, e.phi0, sim.Config{
		Dt:            e.cfg.Dt,
		Duration:      e.cfg.Duration,
		ValidateState: e.cfg.ValidateState,
	})
	if err != nil {
		return nil, err
	}

	report := &Report{
		ID:         uuid.NewString(),
		Config:     e.cfg,
		Phi0:       e.phi0.Clone(),
		Coupling:   e.coupling,
		Result:     result,
		Summary:    analysis.Summarize(result.Trajectory, e.cfg.SyncTolerance),
		StableStep: e.stableStep,
		Elapsed:    time.Since(start),
	}

	e.logger.Info("simulation complete",
		slog.String("run", report.ID),
		slog.Int("steps", result.StepsTaken),
		slog.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// Execute sets up and runs cfg in one call.
func Execute(ctx context.Context, cfg Config, logger *slog.Logger) (*Report, error) {
	exp := New(cfg).WithLogger(logger)
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}
