// Package quarry holds the Black Rock Quarry extraction rules.
//
// The package is free of rendering: the scene supplies screen positions
// for extraction jobs and draws whatever state it finds here.
package quarry

import (
	"fmt"
	"math/rand"
)

// Cell is the richness of one quarry cell.
type Cell int

const (
	Empty Cell = iota
	Limited
	Rich
)

// String returns the string representation of the cell
func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Limited:
		return "Limited"
	case Rich:
		return "Rich"
	default:
		return "Unknown"
	}
}

// Roll thresholds: below richThreshold is Rich, below limitedThreshold is Limited.
const (
	richThreshold    = 0.18
	limitedThreshold = 0.55
)

// RollCell maps a uniform sample in [0,1) to a cell richness.
func RollCell(r float64) Cell {
	switch {
	case r < richThreshold:
		return Rich
	case r < limitedThreshold:
		return Limited
	default:
		return Empty
	}
}

// Grid is a fixed-size field of cells, addressed by (row, col).
type Grid struct {
	rows  int
	cols  int
	cells []Cell
}

// NewGrid creates an all-empty grid.
func NewGrid(rows, cols int) *Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

// RollGrid fills a new grid with random richness.
func RollGrid(rows, cols int, rng *rand.Rand) *Grid {
	g := NewGrid(rows, cols)
	for i := range g.cells {
		g.cells[i] = RollCell(rng.Float64())
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// At returns the cell at (row, col). Out-of-range reads are Empty.
func (g *Grid) At(row, col int) Cell {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return Empty
	}
	return g.cells[row*g.cols+col]
}

// Set writes a cell. Out-of-range writes are ignored.
func (g *Grid) Set(row, col int, c Cell) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return
	}
	g.cells[row*g.cols+col] = c
}

// Count returns how many cells have the given richness.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Coord formats a cell address as row letter plus 1-based column, e.g. "A1".
func Coord(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+rune(row), col+1)
}
