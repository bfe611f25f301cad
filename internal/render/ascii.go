package render

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/phasesync/internal/sim"
)

var asciiColors = []asciigraph.AnsiColor{
	asciigraph.Blue, asciigraph.Orange, asciigraph.Green, asciigraph.Red, asciigraph.Purple,
	asciigraph.Brown, asciigraph.Pink, asciigraph.Gray, asciigraph.Olive, asciigraph.Cyan,
}

// ASCII plots the selected units for a terminal.
func ASCII(traj *sim.Trajectory, opts Options) string {
	units := opts.units(traj)
	if len(units) == 0 || traj.Len() == 0 {
		return ""
	}

	series := make([][]float64, 0, len(units))
	colors := make([]asciigraph.AnsiColor, 0, len(units))
	legends := make([]string, 0, len(units))
	for _, i := range units {
		series = append(series, traj.Unit(i))
		colors = append(colors, asciiColors[i%len(asciiColors)])
		legends = append(legends, opts.label(i))
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 16
	}

	caption := fmt.Sprintf("%s vs %s, t = %.2f..%.2f", YLabel, XLabel, traj.Times[0], traj.Times[traj.Len()-1])
	if opts.Title != "" {
		caption = opts.Title + ": " + caption
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
	)
}
