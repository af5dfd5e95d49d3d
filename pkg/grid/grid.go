// Package grid provides the binary occupancy grid consumed by the mesh
// generator, plus a loader for a plain-text grid format.
//
// Text format: one row per line, '1' or '#' marks a solid cell and '0' or '.'
// an empty one. Spaces and tabs between cells are ignored, blank lines are
// skipped and lines starting with ';' are comments. The first row in the file
// is the top of the map (highest y).
package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Grid errors.
var (
	ErrEmptyGrid   = errors.New("empty grid")
	ErrRaggedGrid  = errors.New("grid rows have different lengths")
	ErrInvalidCell = errors.New("invalid grid cell")
)

// Occupancy is a rectangular grid of solid/empty cells indexed [x][y].
type Occupancy struct {
	Width  int
	Height int
	Cells  [][]bool
}

// New wraps a [x][y] boolean array. The array is used as-is, not copied.
func New(cells [][]bool) (*Occupancy, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	height := len(cells[0])
	for x, col := range cells {
		if len(col) != height {
			return nil, fmt.Errorf("%w: column %d has %d cells, expected %d", ErrRaggedGrid, x, len(col), height)
		}
	}
	return &Occupancy{Width: len(cells), Height: height, Cells: cells}, nil
}

// FromInts converts a [x][y] integer map where 1 means solid.
func FromInts(m [][]int) (*Occupancy, error) {
	cells := make([][]bool, len(m))
	for x := range m {
		cells[x] = make([]bool, len(m[x]))
		for y, v := range m[x] {
			cells[x][y] = v == 1
		}
	}
	return New(cells)
}

// Filled returns a width x height grid with every cell set to solid.
func Filled(width, height int, solid bool) *Occupancy {
	cells := make([][]bool, width)
	for x := range cells {
		cells[x] = make([]bool, height)
		for y := range cells[x] {
			cells[x][y] = solid
		}
	}
	return &Occupancy{Width: width, Height: height, Cells: cells}
}

// At reports whether the cell at (x, y) is solid. Out of range is empty.
func (o *Occupancy) At(x, y int) bool {
	if x < 0 || y < 0 || x >= o.Width || y >= o.Height {
		return false
	}
	return o.Cells[x][y]
}

// Count returns the number of solid cells.
func (o *Occupancy) Count() int {
	n := 0
	for _, col := range o.Cells {
		for _, v := range col {
			if v {
				n++
			}
		}
	}
	return n
}

// String renders the grid in the text format, top row first.
func (o *Occupancy) String() string {
	var sb strings.Builder
	for y := o.Height - 1; y >= 0; y-- {
		for x := 0; x < o.Width; x++ {
			if o.Cells[x][y] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Parse reads a grid in the text format.
func Parse(r io.Reader) (*Occupancy, error) {
	var rows [][]bool
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, ";") {
			continue
		}

		row, err := parseRow(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d cells, expected %d", ErrRaggedGrid, line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading grid: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyGrid
	}

	// Rows are top-down in the file; y grows upward.
	width, height := len(rows[0]), len(rows)
	cells := make([][]bool, width)
	for x := range cells {
		cells[x] = make([]bool, height)
		for r := range rows {
			cells[x][height-1-r] = rows[r][x]
		}
	}
	return &Occupancy{Width: width, Height: height, Cells: cells}, nil
}

func parseRow(text string) ([]bool, error) {
	row := make([]bool, 0, len(text))
	for i, c := range text {
		switch c {
		case '1', '#':
			row = append(row, true)
		case '0', '.':
			row = append(row, false)
		case ' ', '\t':
		default:
			return nil, fmt.Errorf("%w: %q at column %d", ErrInvalidCell, c, i+1)
		}
	}
	return row, nil
}

// ParseFile reads a grid from disk.
func ParseFile(path string) (*Occupancy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening grid file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
