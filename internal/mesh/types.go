// Package mesh turns a binary occupancy grid into a top surface mesh and a
// wall mesh using marching squares.
package mesh

import (
	"github.com/Faultbox/cavemesh/pkg/math"
)

// PointID identifies a GridPoint in a Lattice's point storage.
// Two references to the same point always carry the same id.
type PointID int

// unassigned marks a GridPoint that no triangle has referenced yet.
const unassigned = -1

// GridPoint is a lattice position and the vertex it was emitted as.
type GridPoint struct {
	Position    math.Vec3
	VertexIndex int // unassigned until first used by triangulation
}

// CornerNode is a grid corner. It owns its own point and the two edge
// midpoints half a cell towards +Z (Above) and +X (Right).
type CornerNode struct {
	Point  PointID
	Above  PointID
	Right  PointID
	Active bool
}

// Corner order within a Cell.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// Midpoint order within a Cell. Mids[i] lies between corner i and corner i+1.
const (
	CentreTop = iota
	CentreRight
	CentreBottom
	CentreLeft
)

// Cell is a 2x2 neighborhood of corner nodes.
type Cell struct {
	Corners       [4]CornerNode // TopLeft, TopRight, BottomRight, BottomLeft
	Mids          [4]PointID    // CentreTop, CentreRight, CentreBottom, CentreLeft
	Configuration uint8         // TopLeft is the most significant bit
}

// Options controls mesh generation.
type Options struct {
	CellSize   float32
	WallHeight float32
	Normals    bool // Recalculate surface normals after triangulation
}

// DefaultOptions returns unit cells and walls five units deep.
func DefaultOptions() Options {
	return Options{
		CellSize:   1,
		WallHeight: 5,
		Normals:    true,
	}
}

// Mesh is a vertex buffer with triangles stored as index triples.
type Mesh struct {
	Vertices  []math.Vec3
	Triangles []int
	Normals   []math.Vec3 // Optional, one per vertex
	Bounds    Bounds
}

// Bounds holds the axis-aligned bounding box of a mesh.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Stats summarizes one generation pass.
type Stats struct {
	Cells             int
	Configurations    [16]int // Cell count per configuration
	BoundaryEdges     int
	WallChains        int // Chains traced while draining the edge map
	ClosedLoops       int // Chains that returned to their start vertex
	AnomalousPolygons int // Cell polygons with more than 6 points
}

// Result holds both output meshes of a generation pass.
type Result struct {
	Surface Mesh
	Walls   Mesh
	Stats   Stats
}
