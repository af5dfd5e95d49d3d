package mesh

import (
	"fmt"

	"github.com/Faultbox/cavemesh/pkg/math"
)

// Lattice is the corner grid and the cells built over it. Points holds every
// GridPoint; nodes and cells refer into it by id.
type Lattice struct {
	Width    int // Corner nodes along X
	Height   int // Corner nodes along Z
	CellSize float32
	Points   []GridPoint
	Nodes    [][]CornerNode // [x][y]
	Cells    [][]Cell       // [x][y], (Width-1) x (Height-1)
}

// NewLattice builds corner nodes for a [x][y] occupancy array, centred on the
// origin, and the cells between them.
func NewLattice(occupancy [][]bool, cellSize float32) (*Lattice, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size must be positive, got %v", ErrContractViolation, cellSize)
	}
	if len(occupancy) == 0 || len(occupancy[0]) == 0 {
		return nil, fmt.Errorf("%w: empty occupancy grid", ErrContractViolation)
	}

	width, height := len(occupancy), len(occupancy[0])
	for x, col := range occupancy {
		if len(col) != height {
			return nil, fmt.Errorf("%w: column %d has %d cells, expected %d", ErrContractViolation, x, len(col), height)
		}
	}

	l := &Lattice{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		Points:   make([]GridPoint, 0, width*height*3),
		Nodes:    make([][]CornerNode, width),
	}

	mapWidth := float32(width) * cellSize
	mapHeight := float32(height) * cellSize
	for x := range width {
		l.Nodes[x] = make([]CornerNode, height)
		for y := range height {
			pos := math.Vec3{
				X: -mapWidth/2 + float32(x)*cellSize + cellSize/2,
				Z: -mapHeight/2 + float32(y)*cellSize + cellSize/2,
			}
			l.Nodes[x][y] = l.newCornerNode(pos, occupancy[x][y])
		}
	}

	l.Cells = make([][]Cell, width-1)
	for x := range l.Cells {
		l.Cells[x] = make([]Cell, height-1)
		for y := range l.Cells[x] {
			cell, err := newCell(
				l.Nodes[x][y+1],
				l.Nodes[x+1][y+1],
				l.Nodes[x+1][y],
				l.Nodes[x][y],
			)
			if err != nil {
				return nil, err
			}
			l.Cells[x][y] = cell
		}
	}

	return l, nil
}

func (l *Lattice) addPoint(pos math.Vec3) PointID {
	l.Points = append(l.Points, GridPoint{Position: pos, VertexIndex: unassigned})
	return PointID(len(l.Points) - 1)
}

func (l *Lattice) newCornerNode(pos math.Vec3, active bool) CornerNode {
	half := l.CellSize / 2
	return CornerNode{
		Point:  l.addPoint(pos),
		Above:  l.addPoint(pos.Add(math.Vec3{Z: half})),
		Right:  l.addPoint(pos.Add(math.Vec3{X: half})),
		Active: active,
	}
}

// Point returns the point with the given id.
func (l *Lattice) Point(id PointID) *GridPoint {
	return &l.Points[id]
}

// newCell takes corners in TopLeft, TopRight, BottomRight, BottomLeft order.
func newCell(corners ...CornerNode) (Cell, error) {
	if len(corners) != 4 {
		return Cell{}, fmt.Errorf("%w: cell needs 4 corner nodes, got %d", ErrContractViolation, len(corners))
	}

	var c Cell
	copy(c.Corners[:], corners)

	// Midpoints are borrowed from the corners so neighbouring cells share them.
	c.Mids[CentreTop] = c.Corners[TopLeft].Right
	c.Mids[CentreRight] = c.Corners[BottomRight].Above
	c.Mids[CentreBottom] = c.Corners[BottomLeft].Right
	c.Mids[CentreLeft] = c.Corners[BottomLeft].Above

	for _, node := range c.Corners {
		c.Configuration <<= 1
		if node.Active {
			c.Configuration++
		}
	}
	return c, nil
}
