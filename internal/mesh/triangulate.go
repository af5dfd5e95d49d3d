package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cavemesh/internal/logger"
)

// builder owns the state of one generation pass.
type builder struct {
	lattice *Lattice
	surface Mesh
	edges   *EdgeMap
	stats   Stats
}

func newBuilder(l *Lattice) *builder {
	return &builder{
		lattice: l,
		edges:   NewEdgeMap(),
	}
}

// triangulateCell appends the cell's active region to the surface mesh and
// records the boundary edges crossing it.
func (b *builder) triangulateCell(c *Cell) error {
	b.stats.Cells++
	b.stats.Configurations[c.Configuration]++
	if c.Configuration == 0 {
		return nil
	}

	poly := c.outline()
	if err := b.fan(poly); err != nil {
		return err
	}
	return b.recordBoundary(c, poly)
}

// outline walks the corners clockwise from TopLeft. Each active corner
// contributes the midpoint before it, itself and the midpoint after it. A
// midpoint between two active corners is pushed by the first and popped by
// the second, so only boundary midpoints survive.
func (c *Cell) outline() polygon {
	poly := make(polygon, 0, 6)
	for i := range 4 {
		prev := (i + 3) % 4
		if !c.Corners[i].Active {
			continue
		}

		if last, ok := poly.peek(); ok && last == c.Mids[prev] {
			poly.pop()
		} else {
			poly.push(c.Mids[prev])
		}
		poly.push(c.Corners[i].Point)
		poly.push(c.Mids[i])
	}

	// The seam midpoint between BottomLeft and TopLeft shows up at both ends.
	if n := len(poly); n > 1 && poly[0] == poly[n-1] {
		poly = poly[1 : n-1]
	}
	return poly
}

// vertex returns the vertex index of a point, emitting it on first use.
func (b *builder) vertex(id PointID) int {
	p := b.lattice.Point(id)
	if p.VertexIndex == unassigned {
		p.VertexIndex = len(b.surface.Vertices)
		b.surface.Vertices = append(b.surface.Vertices, p.Position)
	}
	return p.VertexIndex
}

// fan triangulates poly around its first point.
func (b *builder) fan(poly polygon) error {
	if len(poly) < 3 {
		return fmt.Errorf("%w: cannot triangulate %d points", ErrContractViolation, len(poly))
	}
	if len(poly) > 6 {
		b.stats.AnomalousPolygons++
		logger.Warn("cell polygon has more than 6 points", zap.Int("points", len(poly)))
	}

	for _, id := range poly {
		b.vertex(id)
	}

	anchor := b.vertex(poly[0])
	for i := 0; i < len(poly)-2; i++ {
		b.surface.Triangles = append(b.surface.Triangles,
			anchor, b.vertex(poly[i+1]), b.vertex(poly[i+2]))
	}
	return nil
}

// recordBoundary adds one edge per run of inactive corners, from the midpoint
// entering the run to the midpoint leaving it.
func (b *builder) recordBoundary(c *Cell, poly polygon) error {
	start, end := -1, -1
	for i := range 4 {
		if c.Corners[i].Active {
			continue
		}
		if start == -1 {
			start = poly.indexOf(c.Mids[(i+3)%4])
		}
		if end == -1 {
			end = poly.indexOf(c.Mids[i])
		}

		if start != -1 && end != -1 {
			from, to := b.vertex(poly[start]), b.vertex(poly[end])
			if err := b.edges.Add(from, to); err != nil {
				return err
			}
			b.stats.BoundaryEdges++
			start, end = -1, -1
		}
	}

	if start != end {
		return fmt.Errorf("%w: unmatched boundary edge in configuration %d (start %d, end %d)",
			ErrInvariantViolation, c.Configuration, start, end)
	}
	return nil
}
