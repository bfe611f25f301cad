package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/san-kum/phasesync/internal/config"
	"github.com/san-kum/phasesync/internal/viz"
)

type rootOptions struct {
	verbose bool
	theme   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "phasesync",
		Short:        "ring-coupled phase units with asymmetric damping",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if root.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&root.verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&root.theme, "theme", viz.ThemeDefault.Name, fmt.Sprintf("colour theme %v", viz.ThemeNames()))

	rootCmd.AddCommand(
		newRunCmd(root),
		newViewCmd(root),
		newPresetsCmd(),
		newInitConfigCmd(),
	)
	return rootCmd
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "simulate and print a summary with a terminal plot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd, root, opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.plotPath, "plot", "", "write a plot image (png, svg, pdf, ...)")
	cmd.Flags().StringVar(&opts.chartPath, "chart", "", "write a chart (svg or png)")
	cmd.Flags().BoolVar(&opts.noPlot, "no-plot", false, "skip the terminal plot")
	return cmd
}

func newViewCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "view",
		Short: "simulate and browse the trajectory interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viewSimulation(cmd, root, opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-10s units=%-3d dt=%-5g t_max=%-4g theta=%v\n",
					name, p.Units, p.Dt, p.Duration, p.Theta)
			}
		},
	}
}

func newInitConfigCmd() *cobra.Command {
	var preset string
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config <path>",
		Short: "write a config file to edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists, use --force to overwrite", path)
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
