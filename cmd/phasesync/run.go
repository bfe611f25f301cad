package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/phasesync/internal/config"
	"github.com/san-kum/phasesync/internal/experiment"
	"github.com/san-kum/phasesync/internal/render"
	"github.com/san-kum/phasesync/internal/sim"
	"github.com/san-kum/phasesync/internal/tui"
	"github.com/san-kum/phasesync/internal/viz"
)

// runOptions are the flags shared by run and view.
type runOptions struct {
	configFile string
	preset     string
	units      int
	theta      []float64
	phi0       []float64
	seed       int64
	dt         float64
	duration   float64
	lo, hi     float64
	validate   bool
	title      string

	plotPath  string
	chartPath string
	noPlot    bool
}

func (o *runOptions) bind(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&o.configFile, "config", "", "config file path (yaml)")
	f.StringVar(&o.preset, "preset", "", "use preset configuration")
	f.IntVar(&o.units, "n", def.Units, "number of units")
	f.Float64SliceVar(&o.theta, "theta", def.Theta, "per-unit damping")
	f.Float64SliceVar(&o.phi0, "phi0", nil, "explicit initial phases (skips the random draw)")
	f.Int64Var(&o.seed, "seed", def.Seed, "seed for the initial phase draw")
	f.Float64Var(&o.dt, "dt", def.Dt, "timestep")
	f.Float64Var(&o.duration, "time", def.Duration, "duration")
	f.Float64Var(&o.lo, "lo", def.Interval.Lo, "lower bound of the initial phase draw")
	f.Float64Var(&o.hi, "hi", def.Interval.Hi, "upper bound of the initial phase draw")
	f.BoolVar(&o.validate, "validate", false, "abort when a state turns NaN or Inf")
	f.StringVar(&o.title, "title", def.Render.Title, "plot title")
}

// resolveConfig layers preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command, o *runOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if o.preset != "" {
		if cfg = config.GetPreset(o.preset); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", o.preset, config.ListPresets())
		}
	}

	if o.configFile != "" {
		loaded, err := config.LoadOver(cfg, o.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("theta") {
		cfg.Theta = append([]float64(nil), o.theta...)
		if !flags.Changed("n") {
			cfg.Units = len(cfg.Theta)
		}
	}
	if flags.Changed("n") {
		cfg.Units = o.units
	}
	if flags.Changed("phi0") {
		cfg.Phi0 = append([]float64(nil), o.phi0...)
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("dt") {
		cfg.Dt = o.dt
	}
	if flags.Changed("time") {
		cfg.Duration = o.duration
	}
	if flags.Changed("lo") {
		cfg.Interval.Lo = o.lo
	}
	if flags.Changed("hi") {
		cfg.Interval.Hi = o.hi
	}
	if flags.Changed("validate") {
		cfg.ValidateState = o.validate
	}
	if flags.Changed("title") {
		cfg.Render.Title = o.title
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func simulate(cmd *cobra.Command, o *runOptions) (*config.Config, *experiment.Report, error) {
	cfg, err := resolveConfig(cmd, o)
	if err != nil {
		return nil, nil, err
	}
	rep, err := experiment.Execute(cmd.Context(), cfg.ToExperiment(), slog.Default())
	if err != nil {
		return nil, nil, err
	}
	return cfg, rep, nil
}

func runSimulation(cmd *cobra.Command, root *rootOptions, o *runOptions) error {
	cfg, rep, err := simulate(cmd, o)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprint(out, viz.Summary(rep, cfg.Render.Title, viz.GetTheme(root.theme)))

	traj := rep.Result.Trajectory
	opts := render.Options{
		Title:  cfg.Render.Title,
		Labels: rep.Labels(),
		Width:  cfg.Render.Width,
		Height: cfg.Render.Height,
	}
	if !o.noPlot {
		fmt.Fprintln(out)
		fmt.Fprintln(out, render.ASCII(traj, opts))
	}

	if o.plotPath != "" {
		if err := render.Plot(traj, o.plotPath, render.Options{Title: opts.Title, Labels: opts.Labels}); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
		slog.Info("plot written", slog.String("path", o.plotPath))
	}

	if o.chartPath != "" {
		if err := writeChart(o.chartPath, traj, render.Options{Title: opts.Title, Labels: opts.Labels}); err != nil {
			return fmt.Errorf("chart: %w", err)
		}
		slog.Info("chart written", slog.String("path", o.chartPath))
	}
	return nil
}

func writeChart(path string, traj *sim.Trajectory, opts render.Options) (err error) {
	format, err := render.FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return render.Chart(f, traj, opts, format)
}

func viewSimulation(cmd *cobra.Command, root *rootOptions, o *runOptions) error {
	cfg, rep, err := simulate(cmd, o)
	if err != nil {
		return err
	}
	return tui.Run(rep, cfg.Render.Title, viz.GetTheme(root.theme))
}
