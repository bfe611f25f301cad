package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/phasesync/internal/sim"
)

// Plot saves a line plot to path. The format follows the file extension
// (png, svg, pdf, ...). Width and Height are in inches; zero means 10x6.
func Plot(traj *sim.Trajectory, path string, opts Options) error {
	if traj.Len() < 2 {
		return ErrEmptyTrajectory
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	grid.Horizontal.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(grid)

	for _, i := range opts.units(traj) {
		ys := traj.Unit(i)
		pts := make(plotter.XYs, traj.Len())
		for k := range pts {
			pts[k].X = traj.Times[k]
			pts[k].Y = ys[k]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = UnitRGBA(i)
		p.Add(line)
		p.Legend.Add(opts.label(i), line)
	}
	p.Legend.Top = false
	p.Legend.Left = false

	w, h := vg.Length(opts.Width), vg.Length(opts.Height)
	if w <= 0 || h <= 0 {
		w, h = 10, 6
	}
	return p.Save(w*vg.Inch, h*vg.Inch, path)
}
