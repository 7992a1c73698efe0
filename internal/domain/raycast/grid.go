// Package raycast implements the grid raycaster used by the Oceanview scene:
// map storage, player movement with wall sliding, DDA column casting,
// column shading, door label spans and billboard sprite compositing.
//
// Nothing in this package draws; it produces numbers and colours that the
// scene turns into ebiten draw calls.
package raycast

import (
	"errors"
	"fmt"
)

// Code is a map cell code.
type Code int

const (
	CodeEmpty Code = iota
	CodeWall
	CodeDoor
	CodeSymbolDoor
	CodeCasino
	CodeJanitor
)

// MaxCode is the highest valid cell code.
const MaxCode = CodeJanitor

// IsDoor reports whether the code is one of the door kinds.
func (c Code) IsDoor() bool {
	return c >= CodeDoor && c <= CodeJanitor
}

// Kind returns the semantic tag of the code used for colour grading.
func (c Code) Kind() string {
	switch c {
	case CodeEmpty:
		return "EMPTY"
	case CodeWall:
		return "WALL"
	case CodeDoor:
		return "DOOR"
	case CodeSymbolDoor:
		return "SYMBOL"
	case CodeCasino:
		return "CASINO"
	case CodeJanitor:
		return "JANITOR"
	default:
		return "UNKNOWN"
	}
}

// Coord is an integer grid coordinate.
type Coord struct {
	X, Y int
}

// ErrUnsealedGrid is returned when a map has a passable border cell.
var ErrUnsealedGrid = errors.New("grid border is not sealed")

// Grid is the raycast map. Border cells are always non-zero so every ray
// terminates.
type Grid struct {
	width  int
	height int
	cells  []Code
	labels map[Coord]string
}

// NewGrid parses rows of digit characters ('0'..'5', space = '0').
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) < 3 {
		return nil, fmt.Errorf("grid needs at least 3 rows, got %d", len(rows))
	}
	width := len(rows[0])
	if width < 3 {
		return nil, fmt.Errorf("grid needs at least 3 columns, got %d", width)
	}

	g := &Grid{
		width:  width,
		height: len(rows),
		cells:  make([]Code, width*len(rows)),
		labels: make(map[Coord]string),
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d columns, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			ch := row[x]
			if ch == ' ' {
				ch = '0'
			}
			code := Code(ch - '0')
			if ch < '0' || code > MaxCode {
				return nil, fmt.Errorf("invalid cell %q at (%d,%d)", row[x], x, y)
			}
			g.cells[y*width+x] = code
		}
	}

	for x := 0; x < width; x++ {
		if g.At(x, 0) == CodeEmpty || g.At(x, g.height-1) == CodeEmpty {
			return nil, fmt.Errorf("%w: open cell in column %d", ErrUnsealedGrid, x)
		}
	}
	for y := 0; y < g.height; y++ {
		if g.At(0, y) == CodeEmpty || g.At(width-1, y) == CodeEmpty {
			return nil, fmt.Errorf("%w: open cell in row %d", ErrUnsealedGrid, y)
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// At returns the code at (x, y). Out-of-range cells read as walls.
func (g *Grid) At(x, y int) Code {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return CodeWall
	}
	return g.cells[y*g.width+x]
}

// Passable reports whether (x, y) can be walked through.
func (g *Grid) Passable(x, y int) bool {
	return g.At(x, y) == CodeEmpty
}

// Set writes a cell. Border cells and out-of-range writes are refused so
// the map stays sealed.
func (g *Grid) Set(x, y int, c Code) bool {
	if x <= 0 || x >= g.width-1 || y <= 0 || y >= g.height-1 {
		return false
	}
	if c < CodeEmpty || c > MaxCode {
		return false
	}
	g.cells[y*g.width+x] = c
	return true
}

// SetLabel attaches a display label to a cell.
func (g *Grid) SetLabel(c Coord, label string) {
	g.labels[c] = label
}

// Label returns the label of a cell, falling back to "DOOR".
func (g *Grid) Label(c Coord) string {
	if l, ok := g.labels[c]; ok {
		return l
	}
	return "DOOR"
}

// Doors lists every door cell in row-major order.
func (g *Grid) Doors() []Coord {
	var out []Coord
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.At(x, y).IsDoor() {
				out = append(out, Coord{x, y})
			}
		}
	}
	return out
}
