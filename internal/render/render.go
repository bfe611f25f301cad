// Package render turns a finished trajectory into line plots: one line per
// unit, time on the horizontal axis, phase on the vertical axis. Renderers
// only read the trajectory.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/san-kum/phasesync/internal/sim"
)

const (
	XLabel = "Time (s)"
	YLabel = "Phase (rad)"
)

var ErrEmptyTrajectory = errors.New("render: trajectory has fewer than two points")

// Palette follows the usual ten-colour categorical cycle.
var Palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

type Options struct {
	Title  string
	Labels []string
	Width  int
	Height int
	// Units selects which units are drawn; nil draws all of them.
	Units []int
}

func (o Options) label(i int) string {
	if i < len(o.Labels) {
		return o.Labels[i]
	}
	return fmt.Sprintf("Unit %d", i+1)
}

func (o Options) units(traj *sim.Trajectory) []int {
	if o.Units != nil {
		return o.Units
	}
	all := make([]int, traj.Units())
	for i := range all {
		all[i] = i
	}
	return all
}

var paletteRGBA = mustParsePalette(Palette)

func mustParsePalette(hexes []string) []color.RGBA {
	colors := make([]color.RGBA, len(hexes))
	for i, hex := range hexes {
		c, err := parseHexColor(hex)
		if err != nil {
			panic(err)
		}
		colors[i] = c
	}
	return colors
}

// parseHexColor reads a "#rrggbb" colour.
func parseHexColor(hex string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	if len(hex) != 7 {
		return c, fmt.Errorf("render: bad colour %q", hex)
	}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("render: bad colour %q: %w", hex, err)
	}
	return c, nil
}

// UnitRGBA is the plot colour of unit i.
func UnitRGBA(i int) color.RGBA {
	return paletteRGBA[i%len(paletteRGBA)]
}
