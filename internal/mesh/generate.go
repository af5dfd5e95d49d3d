package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cavemesh/internal/logger"
	"github.com/Faultbox/cavemesh/pkg/grid"
)

// Generate builds the surface and wall meshes for a [x][y] occupancy array.
// Every call works on its own lattice and buffers, so concurrent calls with
// different inputs do not interfere.
func Generate(occupancy [][]bool, opts Options) (*Result, error) {
	lattice, err := NewLattice(occupancy, opts.CellSize)
	if err != nil {
		return nil, err
	}

	b := newBuilder(lattice)
	for x := range lattice.Cells {
		for y := range lattice.Cells[x] {
			if err := b.triangulateCell(&lattice.Cells[x][y]); err != nil {
				return nil, fmt.Errorf("cell (%d, %d): %w", x, y, err)
			}
		}
	}

	walls, err := b.buildWalls(opts.WallHeight)
	if err != nil {
		return nil, err
	}

	surface := b.surface
	if opts.Normals {
		surface.RecalculateNormals()
	}
	surface.RecalculateBounds()
	walls.RecalculateBounds()

	logger.Debug("generated cave mesh",
		zap.Int("width", lattice.Width),
		zap.Int("height", lattice.Height),
		zap.Int("surface_vertices", len(surface.Vertices)),
		zap.Int("surface_triangles", surface.TriangleCount()),
		zap.Int("boundary_edges", b.stats.BoundaryEdges),
		zap.Int("wall_chains", b.stats.WallChains),
		zap.Int("closed_loops", b.stats.ClosedLoops),
	)

	return &Result{
		Surface: surface,
		Walls:   walls,
		Stats:   b.stats,
	}, nil
}

// GenerateOccupancy is Generate for a parsed grid.
func GenerateOccupancy(occ *grid.Occupancy, opts Options) (*Result, error) {
	return Generate(occ.Cells, opts)
}
