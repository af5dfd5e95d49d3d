package mesh

import (
	"fmt"

	"github.com/Faultbox/cavemesh/pkg/math"
)

// buildWalls drains edges into vertical quads hanging height units below
// each boundary edge. Chains are followed while the next edge is still in
// the map; otherwise a fresh start is taken with First.
func (b *builder) buildWalls(height float32) (Mesh, error) {
	var walls Mesh
	drop := math.Up.Scale(height)
	vertices := b.surface.Vertices

	current, chainStart := unassigned, unassigned
	for b.edges.Len() > 0 {
		if current == unassigned {
			first, ok := b.edges.First()
			if !ok {
				return Mesh{}, fmt.Errorf("%w: edge map has %d edges but no start", ErrInvariantViolation, b.edges.Len())
			}
			current, chainStart = first, first
			b.stats.WallChains++
		}

		next, _ := b.edges.Next(current)
		if current >= len(vertices) || next >= len(vertices) {
			return Mesh{}, fmt.Errorf("%w: boundary edge %d -> %d outside %d vertices",
				ErrInvariantViolation, current, next, len(vertices))
		}

		base := len(walls.Vertices)
		walls.Vertices = append(walls.Vertices,
			vertices[current],           // top left
			vertices[next],              // top right
			vertices[current].Sub(drop), // bottom left
			vertices[next].Sub(drop),    // bottom right
		)
		walls.Triangles = append(walls.Triangles,
			base+0, base+2, base+3,
			base+3, base+1, base+0,
		)

		b.edges.Remove(current)

		if b.edges.Has(next) {
			current = next
			continue
		}
		if next == chainStart {
			b.stats.ClosedLoops++
		}
		current = unassigned
	}

	return walls, nil
}
