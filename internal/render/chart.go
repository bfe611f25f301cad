package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/phasesync/internal/sim"
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// FormatFromPath picks the chart format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("render: unsupported chart format %q", filepath.Ext(path))
	}
}

// Chart streams a line chart to w. Width and Height are in pixels; zero
// means 1024x600.
func Chart(w io.Writer, traj *sim.Trajectory, opts Options, format Format) error {
	if traj.Len() < 2 {
		return ErrEmptyTrajectory
	}

	var provider chart.RendererProvider
	switch format {
	case FormatSVG:
		provider = chart.SVG
	case FormatPNG:
		provider = chart.PNG
	default:
		return fmt.Errorf("render: unsupported chart format %q", format)
	}

	units := opts.units(traj)
	series := make([]chart.Series, 0, len(units))
	for _, i := range units {
		series = append(series, chart.ContinuousSeries{
			Name:    opts.label(i),
			XValues: traj.Times,
			YValues: traj.Unit(i),
			Style: chart.Style{
				StrokeColor: strokeColor(i),
				StrokeWidth: 2.0,
			},
		})
	}

	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 1024, 600
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  XLabel,
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Name:  YLabel,
			Style: chart.Style{FontSize: 10.0},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return graph.Render(provider, w)
}

func strokeColor(i int) drawing.Color {
	c := UnitRGBA(i)
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
