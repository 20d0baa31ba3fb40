// Package grid provides the lattice owned by a shortest-path run:
//
//   - construction and bounds checks
//   - 4-directional neighbor queries
//   - wall mutation and search-state reset
//   - the exclusive run lock used by the search package
package grid

import (
	"fmt"
	"strings"
	"sync"
)

// Grid is an R×C lattice of Nodes stored row-major.
// It is the sole owner of its nodes and the sole mutator of wall flags.
type Grid struct {
	rows, cols int
	nodes      []Node

	// mu is held by a search run from BeginRun to EndRun and briefly by
	// mutators; TryLock keeps mutators from blocking behind a run.
	mu sync.Mutex
}

// New constructs a rows×cols Grid with every node unreached, unvisited,
// without predecessor and not a wall.
// Returns ErrInvalidDimensions if rows ≤ 0, cols ≤ 0 or rows×cols > MaxCells.
// Complexity: O(R×C) time and memory.
func New(rows, cols int) (*Grid, error) {
	if err := CheckDimensions(rows, cols); err != nil {
		return nil, err
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		nodes: make([]Node, rows*cols),
	}
	for i := range g.nodes {
		n := &g.nodes[i]
		n.Coord = g.Coordinate(i)
		n.reset()
	}

	return g, nil
}

// CheckDimensions reports ErrInvalidDimensions for non-positive sizes or a
// board with more than MaxCells nodes. The product is never computed, so huge
// values cannot overflow.
func CheckDimensions(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: got %d×%d, both must be positive", ErrInvalidDimensions, rows, cols)
	}
	if rows > MaxCells/cols {
		return fmt.Errorf("%w: got %d×%d, at most %d cells", ErrInvalidDimensions, rows, cols, MaxCells)
	}
	return nil
}

// NewDefault constructs the standard 20×20 board.
func NewDefault() *Grid {
	g, _ := New(DefaultRows, DefaultCols)
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns the total number of nodes.
func (g *Grid) Size() int { return len(g.nodes) }

// InBounds reports whether (row,col) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Contains is InBounds for a Coord.
func (g *Grid) Contains(c Coord) bool {
	return g.InBounds(c.Row, c.Col)
}

// Index maps c to its row-major index: Row*Cols + Col.
// The caller must ensure c is in bounds.
func (g *Grid) Index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// Coordinate converts a row-major index back to a Coord.
func (g *Grid) Coordinate(idx int) Coord {
	return Coord{Row: idx / g.cols, Col: idx % g.cols}
}

// Node returns the node at c, or nil if c is out of bounds.
// The pointer aliases grid storage; it stays valid for the grid's lifetime.
func (g *Grid) Node(c Coord) *Node {
	if !g.Contains(c) {
		return nil
	}
	return &g.nodes[g.Index(c)]
}

// IsWall reports whether c is a wall. Out-of-bounds coordinates are not walls.
func (g *Grid) IsWall(c Coord) bool {
	n := g.Node(c)
	return n != nil && n.wall
}

// NeighborsOf returns the in-bounds orthogonal neighbors of (row,col),
// in the order up, down, left, right. Directions that leave the grid are
// omitted; this is not an error. Walls are included: filtering them is the
// caller's concern.
func (g *Grid) NeighborsOf(row, col int) []Coord {
	out := make([]Coord, 0, len(neighborOffsets))
	for _, d := range neighborOffsets {
		r, c := row+d[0], col+d[1]
		if g.InBounds(r, c) {
			out = append(out, Coord{Row: r, Col: c})
		}
	}
	return out
}

// Neighbors is NeighborsOf for a Coord.
func (g *Grid) Neighbors(c Coord) []Coord {
	return g.NeighborsOf(c.Row, c.Col)
}

// SetWall sets or clears the wall flag of (row,col).
// Returns ErrOutOfBounds for an invalid coordinate and ErrBusy while a run
// holds the grid.
func (g *Grid) SetWall(row, col int, flag bool) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %d×%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	if !g.mu.TryLock() {
		return ErrBusy
	}
	defer g.mu.Unlock()
	g.nodes[g.Index(Coord{Row: row, Col: col})].wall = flag

	return nil
}

// ToggleWall flips the wall flag of (row,col) and returns the new value.
func (g *Grid) ToggleWall(row, col int) (bool, error) {
	if !g.InBounds(row, col) {
		return false, fmt.Errorf("%w: (%d,%d) in %d×%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	if !g.mu.TryLock() {
		return false, ErrBusy
	}
	defer g.mu.Unlock()
	n := &g.nodes[g.Index(Coord{Row: row, Col: col})]
	n.wall = !n.wall

	return n.wall, nil
}

// ClearWalls removes every wall.
func (g *Grid) ClearWalls() error {
	if !g.mu.TryLock() {
		return ErrBusy
	}
	defer g.mu.Unlock()
	for i := range g.nodes {
		g.nodes[i].wall = false
	}
	return nil
}

// Walls returns the wall coordinates in row-major order.
func (g *Grid) Walls() []Coord {
	var out []Coord
	for i := range g.nodes {
		if g.nodes[i].wall {
			out = append(out, g.nodes[i].Coord)
		}
	}
	return out
}

// ResetSearchState clears Distance, Prev and Visited on every node.
// Wall flags are untouched. Returns ErrBusy while a run holds the grid.
func (g *Grid) ResetSearchState() error {
	if !g.mu.TryLock() {
		return ErrBusy
	}
	defer g.mu.Unlock()
	g.resetNodes()
	return nil
}

func (g *Grid) resetNodes() {
	for i := range g.nodes {
		g.nodes[i].reset()
	}
}

// BeginRun acquires the exclusive run lock and resets search state, so every
// run starts from a clean lattice. Returns ErrBusy if another run holds it.
//
// Each check runs under the lock before the reset. The first failing check
// releases the lock and its error is returned with no node touched.
// Every successful BeginRun must be paired with EndRun.
func (g *Grid) BeginRun(checks ...func(*Grid) error) error {
	if !g.mu.TryLock() {
		return ErrBusy
	}
	for _, check := range checks {
		if err := check(g); err != nil {
			g.mu.Unlock()
			return err
		}
	}
	g.resetNodes()
	return nil
}

// EndRun releases the run lock taken by BeginRun. Search state is left as the
// run produced it.
func (g *Grid) EndRun() {
	g.mu.Unlock()
}

// String renders the grid one row per line: '#' wall, '*' visited, '.' open.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.cols + 1) * g.rows)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			n := &g.nodes[r*g.cols+c]
			switch {
			case n.wall:
				sb.WriteByte('#')
			case n.Visited:
				sb.WriteByte('*')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
