// Package textview renders a grid and its search events as plain text frames.
// It backs the non-interactive "run" mode and is the shared cell model for
// the terminal view.
package textview

import (
	"bytes"
	"fmt"
	"io"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// Cell glyphs.
const (
	GlyphOpen    = '.'
	GlyphWall    = '#'
	GlyphVisited = '+'
	GlyphPath    = '*'
	GlyphStart   = 'S'
	GlyphEnd     = 'E'
)

// NoPathMessage is shown when a run ends without reaching the end node.
const NoPathMessage = "No path found!"

// Frame is a snapshot of cell glyphs that events are painted onto.
// Start and end keep their glyphs regardless of events.
type Frame struct {
	rows, cols int
	start, end grid.Coord
	cells      []byte
}

// NewFrame captures g's walls and marks start and end.
func NewFrame(g *grid.Grid, start, end grid.Coord) *Frame {
	f := &Frame{
		rows:  g.Rows(),
		cols:  g.Cols(),
		start: start,
		end:   end,
		cells: bytes.Repeat([]byte{GlyphOpen}, g.Size()),
	}
	for _, w := range g.Walls() {
		f.set(w, GlyphWall)
	}
	f.set(start, GlyphStart)
	f.set(end, GlyphEnd)

	return f
}

// Rows returns the frame height in cells.
func (f *Frame) Rows() int { return f.rows }

// Cols returns the frame width in cells.
func (f *Frame) Cols() int { return f.cols }

// At returns the glyph at c, or 0 if c is outside the frame.
func (f *Frame) At(c grid.Coord) byte {
	if !f.contains(c) {
		return 0
	}
	return f.cells[c.Row*f.cols+c.Col]
}

// Apply paints ev onto the frame and reports whether the cell changed.
func (f *Frame) Apply(ev search.Event) bool {
	if !f.contains(ev.Coord) || ev.Coord == f.start || ev.Coord == f.end {
		return false
	}
	var ch byte
	switch ev.Kind {
	case search.NodeVisited:
		ch = GlyphVisited
	case search.NodeOnPath:
		ch = GlyphPath
	default:
		return false
	}
	if f.At(ev.Coord) == ch {
		return false
	}
	f.set(ev.Coord, ch)
	return true
}

// WriteTo writes the frame, one row per line.
func (f *Frame) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.Grow((f.cols + 1) * f.rows)
	for r := 0; r < f.rows; r++ {
		buf.Write(f.cells[r*f.cols : (r+1)*f.cols])
		buf.WriteByte('\n')
	}
	return buf.WriteTo(w)
}

// String returns the frame as WriteTo would write it.
func (f *Frame) String() string {
	var buf bytes.Buffer
	_, _ = f.WriteTo(&buf)
	return buf.String()
}

func (f *Frame) contains(c grid.Coord) bool {
	return c.Row >= 0 && c.Row < f.rows && c.Col >= 0 && c.Col < f.cols
}

func (f *Frame) set(c grid.Coord, ch byte) {
	if f.contains(c) {
		f.cells[c.Row*f.cols+c.Col] = ch
	}
}

// Summary describes a finished run in one line.
func Summary(res *search.Result) string {
	if !res.Found() {
		return fmt.Sprintf("%s (%d nodes visited)", NoPathMessage, len(res.Visited))
	}
	return fmt.Sprintf("path found: %v -> %v, length %d, %d nodes visited",
		res.Start, res.End, res.Len(), len(res.Visited))
}
