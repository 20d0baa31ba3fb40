// Package grid defines the lattice types, sentinel errors, and constants
// shared by the search and reconstruct packages.
package grid

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for grid operations.
var (
	// ErrInvalidDimensions indicates a non-positive row or column count, or a
	// board larger than MaxCells.
	ErrInvalidDimensions = errors.New("grid: invalid dimensions")
	// ErrOutOfBounds indicates a coordinate outside the lattice.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
	// ErrBusy indicates a search run currently holds the grid.
	ErrBusy = errors.New("grid: search run in progress")
)

const (
	// DefaultRows is the row count used by the original 20×20 board.
	DefaultRows = 20
	// DefaultCols is the column count used by the original 20×20 board.
	DefaultCols = 20

	// MaxCells caps rows×cols; larger boards are rejected by New.
	MaxCells = 1 << 22

	// Unreached marks a Distance that no search has assigned yet.
	// It compares greater than any finite distance.
	Unreached = math.MaxInt
)

// Coord addresses one cell by row and column.
type Coord struct {
	Row, Col int
}

// NoCoord is the "absent" coordinate used for missing predecessors.
var NoCoord = Coord{Row: -1, Col: -1}

// String renders the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Manhattan returns the 4-directional step distance between c and o.
func (c Coord) Manhattan(o Coord) int {
	dr, dc := c.Row-o.Row, c.Col-o.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Adjacent reports whether c and o differ by exactly one orthogonal step.
func (c Coord) Adjacent(o Coord) bool {
	return c.Manhattan(o) == 1
}

// Node is one lattice cell.
//
// Distance, Prev and Visited are search state: a run writes them while it holds
// the grid and ResetSearchState clears them. The wall flag is static for the
// duration of a run and can only be changed through Grid.
type Node struct {
	Coord

	// Distance is the hop count from the run's start, or Unreached.
	Distance int
	// Prev is the predecessor toward the start, or NoCoord.
	Prev Coord
	// Visited reports that Distance is final.
	Visited bool

	wall bool
}

// IsWall reports whether the node is impassable.
func (n *Node) IsWall() bool { return n.wall }

// HasPrev reports whether a predecessor link is set.
func (n *Node) HasPrev() bool { return n.Prev != NoCoord }

// Reached reports whether a run assigned a finite distance.
func (n *Node) Reached() bool { return n.Distance != Unreached }

// reset clears search state, leaving the wall flag untouched.
func (n *Node) reset() {
	n.Distance = Unreached
	n.Prev = NoCoord
	n.Visited = false
}

// neighborOffsets lists row/col deltas in emission order: up, down, left, right.
var neighborOffsets = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
