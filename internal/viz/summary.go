package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/phasesync/internal/experiment"
	"github.com/san-kum/phasesync/internal/render"
)

const sparkWidth = 24

// Summary renders a finished run as stacked panels.
func Summary(rep *experiment.Report, title string, t Theme) string {
	s := NewStyles(t)

	var b strings.Builder
	b.WriteString(GradientText(title, t.Primary, t.Secondary))
	b.WriteString("\n")
	b.WriteString(s.Separator(lipgloss.Width(title) + 8))
	b.WriteString("\n")

	run := lipgloss.JoinHorizontal(lipgloss.Top,
		s.BoxWithTitle("Run", runPanel(rep, s)),
		" ",
		s.BoxWithTitle("Synchronization", syncPanel(rep, s)),
	)
	b.WriteString(run)
	b.WriteString("\n")
	b.WriteString(s.BoxWithTitle("Units", unitsPanel(rep, s)))
	b.WriteString("\n")
	return b.String()
}

func row(s Styles, label, value string) string {
	return s.MetricLabel.Render(fmt.Sprintf("%-14s", label)) + s.MetricValue.Render(value)
}

func runPanel(rep *experiment.Report, s Styles) string {
	cfg := rep.Config
	id := rep.ID
	if len(id) > 8 {
		id = id[:8]
	}

	lines := []string{
		row(s, "run", id),
		row(s, "units", fmt.Sprintf("%d", cfg.Units)),
		row(s, "dt", fmt.Sprintf("%g", cfg.Dt)),
		row(s, "t_max", fmt.Sprintf("%g", cfg.Duration)),
		row(s, "steps", fmt.Sprintf("%d", rep.Result.StepsTaken)),
		row(s, "elapsed", rep.Elapsed.String()),
	}

	limit := "none"
	if !math.IsInf(rep.StableStep, 1) {
		limit = fmt.Sprintf("%.4f", rep.StableStep)
	}
	if cfg.Dt >= rep.StableStep {
		lines = append(lines, s.MetricLabel.Render(fmt.Sprintf("%-14s", "euler limit"))+s.Bad.Render(limit+" (exceeded)"))
	} else {
		lines = append(lines, row(s, "euler limit", limit))
	}
	return strings.Join(lines, "\n")
}

func syncPanel(rep *experiment.Report, s Styles) string {
	sum := rep.Summary

	syncAt := s.Warn.Render("not reached")
	if sum.SyncTime >= 0 {
		syncAt = s.Good.Render(fmt.Sprintf("%.2f s", sum.SyncTime))
	}

	lines := []string{
		row(s, "spread t=0", fmt.Sprintf("%.4f", sum.InitialSpread)),
		row(s, "spread final", fmt.Sprintf("%.4g", sum.FinalSpread)),
		row(s, "peak |phi|", fmt.Sprintf("%.4f", sum.PeakAbs)),
		s.MetricLabel.Render(fmt.Sprintf("%-14s", "sync time")) + syncAt,
		s.MetricLabel.Render(fmt.Sprintf("%-14s", "coherence")) +
			s.ProgressBar(sum.FinalCoherence, 16) + " " + s.MetricValue.Render(fmt.Sprintf("%.3f", sum.FinalCoherence)),
	}

	names := make([]string, 0, len(rep.Result.Metrics))
	for name := range rep.Result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		lines = append(lines, row(s, name, fmt.Sprintf("%.4g", rep.Result.Metrics[name])))
	}
	return strings.Join(lines, "\n")
}

func unitsPanel(rep *experiment.Report, s Styles) string {
	traj := rep.Result.Trajectory
	labels := rep.Labels()
	lo, hi := -rep.Summary.PeakAbs, rep.Summary.PeakAbs

	header := s.Header.Render(fmt.Sprintf("%-8s %7s %9s %11s  %s", "unit", "theta", "phi0", "final", "phase"))
	lines := []string{header}
	for i, label := range labels {
		unit := traj.Unit(i)
		style := lipgloss.NewStyle().Foreground(UnitColor(i))
		lines = append(lines, fmt.Sprintf("%s %7.3f %9.4f %11.4g  %s",
			style.Render(fmt.Sprintf("%-8s", label)),
			rep.Config.Theta[i],
			rep.Phi0[i],
			unit[len(unit)-1],
			style.Render(Sparkline(unit, sparkWidth, lo, hi)),
		))
	}
	return strings.Join(lines, "\n")
}

// UnitColor is the colour of unit i, shared with the plot renderers.
func UnitColor(i int) lipgloss.Color {
	c := render.UnitRGBA(i)
	return lipgloss.Color(hexColor(int(c.R), int(c.G), int(c.B)))
}
