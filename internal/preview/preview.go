// Package preview renders a top-down view of a generated cave: the surface
// triangles filled and the wall edges drawn on top.
package preview

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Faultbox/cavemesh/internal/mesh"
)

var (
	surfaceFill = color.RGBA{R: 190, G: 180, B: 160, A: 255}
	wallColor   = color.RGBA{R: 150, G: 30, B: 30, A: 255}
)

// Plot builds the preview plot. X maps to the plot's X axis and Z to its Y axis.
func Plot(res *mesh.Result, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Z"

	surface := &res.Surface
	for i := 0; i+2 < len(surface.Triangles); i += 3 {
		xys := make(plotter.XYs, 3)
		for k := range 3 {
			v := surface.Vertices[surface.Triangles[i+k]]
			xys[k] = plotter.XY{X: float64(v.X), Y: float64(v.Z)}
		}
		poly, err := plotter.NewPolygon(xys)
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i/3, err)
		}
		poly.Color = surfaceFill
		poly.LineStyle.Width = 0
		p.Add(poly)
	}

	// Each wall quad starts with its top edge.
	walls := &res.Walls
	for q := 0; q+1 < len(walls.Vertices); q += 4 {
		a, b := walls.Vertices[q], walls.Vertices[q+1]
		line, err := plotter.NewLine(plotter.XYs{
			{X: float64(a.X), Y: float64(a.Z)},
			{X: float64(b.X), Y: float64(b.Z)},
		})
		if err != nil {
			return nil, fmt.Errorf("wall %d: %w", q/4, err)
		}
		line.Color = wallColor
		line.Width = vg.Points(1.5)
		p.Add(line)
	}

	squareAxes(p, surface.Bounds)
	return p, nil
}

// squareAxes gives both axes the same span so cells render square.
func squareAxes(p *plot.Plot, b mesh.Bounds) {
	w := float64(b.Max.X - b.Min.X)
	h := float64(b.Max.Z - b.Min.Z)
	span := max(w, h, 1) / 2
	cx := float64(b.Min.X+b.Max.X) / 2
	cz := float64(b.Min.Z+b.Max.Z) / 2

	p.X.Min, p.X.Max = cx-span, cx+span
	p.Y.Min, p.Y.Max = cz-span, cz+span
}

// Write renders the preview in the given format ("png" or "svg").
func Write(w io.Writer, res *mesh.Result, title, format string, size vg.Length) error {
	p, err := Plot(res, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(size, size, format)
	if err != nil {
		return fmt.Errorf("preview writer: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save renders the preview to path; the format follows the file extension.
func Save(res *mesh.Result, title, path string, size vg.Length) error {
	p, err := Plot(res, title)
	if err != nil {
		return err
	}
	if err := p.Save(size, size, path); err != nil {
		return fmt.Errorf("save preview: %w", err)
	}
	return nil
}
