package mesh

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cavemesh/pkg/grid"
	"github.com/Faultbox/cavemesh/pkg/math"
)

func filled(width, height int, solid bool) [][]bool {
	return grid.Filled(width, height, solid).Cells
}

func randomGrid(rng *rand.Rand, width, height int, fill float64) [][]bool {
	cells := make([][]bool, width)
	for x := range cells {
		cells[x] = make([]bool, height)
		for y := range cells[x] {
			cells[x][y] = rng.Float64() < fill
		}
	}
	return cells
}

func TestGenerateThreeActiveCorners(t *testing.T) {
	occ, err := grid.FromInts([][]int{{1, 1}, {1, 0}})
	require.NoError(t, err)

	res, err := GenerateOccupancy(occ, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Stats.Cells)
	assert.Equal(t, 1, res.Stats.Configurations[11])

	// Pentagon: TopLeft, CentreTop, CentreRight, BottomRight, BottomLeft.
	assert.Equal(t, []math.Vec3{
		{X: -0.5, Z: 0.5},
		{X: 0, Z: 0.5},
		{X: 0.5, Z: 0},
		{X: 0.5, Z: -0.5},
		{X: -0.5, Z: -0.5},
	}, res.Surface.Vertices)
	assert.Equal(t, []int{0, 1, 2, 0, 2, 3, 0, 3, 4}, res.Surface.Triangles)

	// One edge cutting off the empty TopRight corner, one wall quad.
	assert.Equal(t, 1, res.Stats.BoundaryEdges)
	assert.Equal(t, 1, res.Stats.WallChains)
	assert.Equal(t, 0, res.Stats.ClosedLoops)
	assert.Equal(t, []math.Vec3{
		{X: 0, Z: 0.5},
		{X: 0.5, Z: 0},
		{X: 0, Y: -5, Z: 0.5},
		{X: 0.5, Y: -5, Z: 0},
	}, res.Walls.Vertices)
	assert.Equal(t, []int{0, 2, 3, 3, 1, 0}, res.Walls.Triangles)
}

func TestGenerateAllSolid(t *testing.T) {
	res, err := Generate(filled(3, 3, true), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Stats.Configurations[15])
	assert.Len(t, res.Surface.Vertices, 9, "corners are shared between cells")
	assert.Equal(t, 8, res.Surface.TriangleCount())
	assert.Equal(t, 0, res.Stats.BoundaryEdges)
	assert.Empty(t, res.Walls.Vertices)
	assert.Empty(t, res.Walls.Triangles)
}

func TestGenerateAllEmpty(t *testing.T) {
	res, err := Generate(filled(4, 5, false), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 12, res.Stats.Configurations[0])
	assert.Empty(t, res.Surface.Vertices)
	assert.Empty(t, res.Surface.Triangles)
	assert.Empty(t, res.Walls.Vertices)
	assert.Empty(t, res.Walls.Triangles)
	assert.Equal(t, Bounds{}, res.Surface.Bounds)
}

func TestGenerateSingleNode(t *testing.T) {
	res, err := Generate([][]bool{{true}}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Stats.Cells)
	assert.Empty(t, res.Surface.Triangles)
}

func TestGenerateSharedMidpoint(t *testing.T) {
	// Solid left column, empty right column: two stacked cells whose
	// contour passes through the midpoint on their shared edge.
	res, err := Generate([][]bool{{true, true, true}, {false, false, false}}, DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, res.Surface.Vertices, 6)
	assert.Equal(t, 4, res.Surface.TriangleCount())

	shared := -1
	for i, v := range res.Surface.Vertices {
		if v == (math.Vec3{X: 0, Z: 0}) {
			shared = i
		}
	}
	require.NotEqual(t, -1, shared, "midpoint between the cells must be a vertex")

	// Referenced by triangles of both cells (two triangles per cell).
	var firstCell, secondCell bool
	for i, idx := range res.Surface.Triangles {
		if idx != shared {
			continue
		}
		if i < 6 {
			firstCell = true
		} else {
			secondCell = true
		}
	}
	assert.True(t, firstCell)
	assert.True(t, secondCell)

	assert.Equal(t, 2, res.Stats.BoundaryEdges)
	assert.Len(t, res.Walls.Vertices, 8)
}

func TestGenerateClosedLoop(t *testing.T) {
	// A single solid node in the middle is enclosed by a four-edge diamond.
	cells := filled(3, 3, false)
	cells[1][1] = true

	res, err := Generate(cells, DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, res.Surface.Vertices, 5)
	assert.Equal(t, 4, res.Surface.TriangleCount())
	assert.Equal(t, 4, res.Stats.BoundaryEdges)
	assert.Equal(t, 1, res.Stats.WallChains)
	assert.Equal(t, 1, res.Stats.ClosedLoops)

	// Consecutive quads share their seam and the last one closes the loop.
	w := res.Walls.Vertices
	require.Len(t, w, 16)
	for q := range 4 {
		topRight := w[q*4+1]
		nextTopLeft := w[((q+1)%4)*4]
		assert.Equal(t, topRight, nextTopLeft, "quad %d", q)
	}
}

func TestGenerateHole(t *testing.T) {
	// Solid ring around an empty centre: outer border plus one inner hole.
	cells := filled(5, 5, true)
	cells[2][2] = false

	res, err := Generate(cells, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Stats.BoundaryEdges)
	assert.Equal(t, 1, res.Stats.ClosedLoops)
	assert.Equal(t, 4*4, len(res.Walls.Vertices))
}

func TestGenerateDiagonal(t *testing.T) {
	res, err := Generate([][]bool{{true, false}, {false, true}}, DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, res.Surface.Vertices, 6)
	assert.Equal(t, 4, res.Surface.TriangleCount())
	assert.Equal(t, 2, res.Stats.BoundaryEdges)
	assert.Equal(t, 2, res.Walls.TriangleCount()/2)
}

func TestGenerateWallHeight(t *testing.T) {
	opts := DefaultOptions()
	opts.WallHeight = 2.5
	opts.CellSize = 2

	res, err := Generate([][]bool{{true, true}, {true, false}}, opts)
	require.NoError(t, err)

	require.Len(t, res.Walls.Vertices, 4)
	assert.Equal(t, float32(0), res.Walls.Bounds.Max.Y)
	assert.Equal(t, float32(-2.5), res.Walls.Bounds.Min.Y)
	assert.Equal(t, res.Walls.Vertices[0].Sub(math.Up.Scale(2.5)), res.Walls.Vertices[2])
}

func TestGenerateNormals(t *testing.T) {
	res, err := Generate(filled(3, 3, true), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, res.Surface.Normals, len(res.Surface.Vertices))
	for i, n := range res.Surface.Normals {
		assert.Equal(t, math.Up, n, "normal %d", i)
	}

	opts := DefaultOptions()
	opts.Normals = false
	res, err = Generate(filled(3, 3, true), opts)
	require.NoError(t, err)
	assert.Nil(t, res.Surface.Normals)
}

func TestGenerateWallsFaceEmptySide(t *testing.T) {
	// Empty TopRight corner at (+0.5, +0.5).
	res, err := Generate([][]bool{{true, true}, {true, false}}, DefaultOptions())
	require.NoError(t, err)

	w := res.Walls.Vertices
	tri := res.Walls.Triangles
	a, b, c := w[tri[0]], w[tri[1]], w[tri[2]]
	normal := b.Sub(a).Cross(c.Sub(a))

	toEmpty := math.Vec3{X: 0.5, Z: 0.5}.Sub(a)
	assert.Greater(t, normal.Dot(toEmpty), float32(0))
}

func TestGenerateBounds(t *testing.T) {
	res, err := Generate(filled(4, 2, true), DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, math.Vec3{X: -1.5, Z: -0.5}, res.Surface.Bounds.Min)
	assert.Equal(t, math.Vec3{X: 1.5, Z: 0.5}, res.Surface.Bounds.Max)
}

func TestGenerateRejectsBadInput(t *testing.T) {
	_, err := Generate([][]bool{{true, true}, {true}}, DefaultOptions())
	assert.ErrorIs(t, err, ErrContractViolation)

	opts := DefaultOptions()
	opts.CellSize = 0
	_, err = Generate(filled(2, 2, true), opts)
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestGenerateIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cells := randomGrid(rng, 24, 18, 0.45)

	first, err := Generate(cells, DefaultOptions())
	require.NoError(t, err)
	second, err := Generate(cells, DefaultOptions())
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Generate() not deterministic (-first +second):\n%s", diff)
	}
}

func TestGenerateRandomGrids(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := range 200 {
		width := 2 + rng.Intn(14)
		height := 2 + rng.Intn(14)
		cells := randomGrid(rng, width, height, rng.Float64())

		res, err := Generate(cells, DefaultOptions())
		require.NoError(t, err, "grid %d (%dx%d)", i, width, height)

		require.NoError(t, res.Surface.Validate(), "grid %d surface", i)
		require.NoError(t, res.Walls.Validate(), "grid %d walls", i)

		// Every recorded edge became exactly one quad.
		assert.Equal(t, res.Stats.BoundaryEdges*4, len(res.Walls.Vertices), "grid %d", i)
		assert.Equal(t, res.Stats.BoundaryEdges*6, len(res.Walls.Triangles), "grid %d", i)
		assert.Equal(t, 0, res.Stats.AnomalousPolygons, "grid %d", i)
		assert.Equal(t, (width-1)*(height-1), res.Stats.Cells, "grid %d", i)
	}
}

func TestGenerateConcurrentCalls(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cells := randomGrid(rng, 16, 16, 0.5)

	want, err := Generate(cells, DefaultOptions())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := Generate(cells, DefaultOptions())
			if err == nil {
				results[i] = res
			}
		}(i)
	}
	wg.Wait()

	for i, res := range results {
		require.NotNil(t, res, "call %d failed", i)
		assert.Empty(t, cmp.Diff(want, res), "call %d", i)
	}
}
