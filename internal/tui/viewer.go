// Package tui is an interactive terminal viewer for a finished run.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/phasesync/internal/experiment"
	"github.com/san-kum/phasesync/internal/metrics"
	"github.com/san-kum/phasesync/internal/render"
	"github.com/san-kum/phasesync/internal/viz"
)

// Viewer is a bubbletea model over a finished report. It never mutates
// the trajectory; the cursor only selects which grid point is inspected.
type Viewer struct {
	rep    *experiment.Report
	title  string
	labels []string
	styles viz.Styles

	cursor int
	focus  int
	hidden []bool

	width  int
	height int
}

func NewViewer(rep *experiment.Report, title string, theme viz.Theme) Viewer {
	return Viewer{
		rep:    rep,
		title:  title,
		labels: rep.Labels(),
		styles: viz.NewStyles(theme),
		hidden: make([]bool, rep.Result.Trajectory.Units()),
		width:  100,
		height: 32,
	}
}

func (m Viewer) Init() tea.Cmd { return nil }

func (m Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Viewer) handleKey(msg tea.KeyMsg) (Viewer, tea.Cmd) {
	last := m.rep.Result.Trajectory.Len() - 1
	jump := max(last/10, 1)
	units := len(m.hidden)

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "left", "h":
		m.cursor = max(m.cursor-1, 0)
	case "right", "l":
		m.cursor = min(m.cursor+1, last)
	case "shift+left", "H":
		m.cursor = max(m.cursor-jump, 0)
	case "shift+right", "L":
		m.cursor = min(m.cursor+jump, last)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = last
	case "tab", "down", "j":
		m.focus = (m.focus + 1) % units
	case "shift+tab", "up", "k":
		m.focus = (m.focus - 1 + units) % units
	case " ", "space", "enter":
		m.toggle(m.focus)
	case "a":
		m.hidden = make([]bool, units)
	case "t":
		m.styles = viz.NewStyles(viz.NextTheme(m.styles.Theme))
	}
	return m, nil
}

// toggle flips unit i, keeping at least one unit visible.
func (m *Viewer) toggle(i int) {
	hidden := append([]bool(nil), m.hidden...)
	hidden[i] = !hidden[i]
	for _, h := range hidden {
		if !h {
			m.hidden = hidden
			return
		}
	}
}

func (m Viewer) visible() []int {
	units := make([]int, 0, len(m.hidden))
	for i, h := range m.hidden {
		if !h {
			units = append(units, i)
		}
	}
	return units
}

func (m Viewer) plotSize() (w, h int) {
	return max(m.width-16, 20), max(m.height-len(m.hidden)-12, 6)
}

func (m Viewer) View() string {
	s := m.styles
	traj := m.rep.Result.Trajectory
	w, h := m.plotSize()

	var b strings.Builder
	b.WriteString(viz.GradientText(m.title, s.Theme.Primary, s.Theme.Secondary))
	b.WriteString("\n\n")

	b.WriteString(render.ASCII(traj, render.Options{
		Labels: m.labels,
		Width:  w,
		Height: h,
		Units:  m.visible(),
	}))
	b.WriteString("\n")
	b.WriteString(m.cursorTrack(w))
	b.WriteString("\n\n")

	row := traj.Row(m.cursor)
	status := fmt.Sprintf("t = %.3f s   step %d/%d   spread %.4g   coherence %.3f",
		traj.Times[m.cursor], m.cursor, traj.Len()-1,
		metrics.PhaseSpread(row), metrics.OrderParameter(row))
	b.WriteString(s.MetricValue.Render(status))
	b.WriteString("\n")

	for i, label := range m.labels {
		marker := "  "
		if i == m.focus {
			marker = s.Title.Render("▸ ")
		}
		name := lipgloss.NewStyle().Foreground(viz.UnitColor(i)).Render(fmt.Sprintf("%-8s", label))
		value := s.MetricValue.Render(fmt.Sprintf("%+.5f", row[i]))
		if m.hidden[i] {
			name = s.Subtle.Render(fmt.Sprintf("%-8s", label))
			value = s.Subtle.Render("hidden")
		}
		b.WriteString(fmt.Sprintf("%s%s %s  %s\n", marker, name,
			s.MetricLabel.Render(fmt.Sprintf("θ=%.2f", m.rep.Config.Theta[i])), value))
	}

	b.WriteString("\n")
	b.WriteString(s.KeyHint.Render("←/→ step  H/L jump  g/G ends  tab unit  space show/hide  a all  t theme  q quit"))
	return b.String()
}

// cursorTrack marks the cursor position along a line as wide as the plot.
func (m Viewer) cursorTrack(width int) string {
	last := m.rep.Result.Trajectory.Len() - 1
	pos := 0
	if last > 0 {
		pos = m.cursor * (width - 1) / last
	}
	return m.styles.Subtle.Render(strings.Repeat("─", pos)) +
		m.styles.Warn.Render("▲") +
		m.styles.Subtle.Render(strings.Repeat("─", max(width-pos-1, 0)))
}

// Run opens the viewer in the alternate screen and blocks until it quits.
func Run(rep *experiment.Report, title string, theme viz.Theme) error {
	p := tea.NewProgram(NewViewer(rep, title, theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
