package scenario

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/gridpath/grid"
)

// Map cell characters.
const (
	MapOpen  = '.'
	MapWall  = '#'
	MapStart = 'S'
	MapEnd   = 'E'
)

// ParseMap reads an ASCII map: one line per row, every row the same width.
// '.' (or ' ') is open, '#' a wall, 'S' the start and 'E' the end.
// Blank lines and lines starting with ';' are skipped.
func ParseMap(r io.Reader) (*Scenario, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	sc := Default()
	sc.Rows, sc.Cols = 0, 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if sc.Rows == 0 {
			sc.Cols = len(line)
		} else if len(line) != sc.Cols {
			return nil, fmt.Errorf("%w: line %d: width %d, want %d", ErrParse, lineNo, len(line), sc.Cols)
		}

		row := sc.Rows
		for col, ch := range []byte(line) {
			at := grid.Coord{Row: row, Col: col}
			switch ch {
			case MapOpen, ' ':
			case MapWall:
				sc.Walls = append(sc.Walls, at)
			case MapStart:
				if sc.Start != grid.NoCoord {
					return nil, fmt.Errorf("%w: line %d: second start at %v", ErrParse, lineNo, at)
				}
				sc.Start = at
			case MapEnd:
				if sc.End != grid.NoCoord {
					return nil, fmt.Errorf("%w: line %d: second end at %v", ErrParse, lineNo, at)
				}
				sc.End = at
			default:
				return nil, fmt.Errorf("%w: line %d: unexpected %q at column %d", ErrParse, lineNo, ch, col)
			}
		}
		sc.Rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if sc.Rows == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrParse)
	}

	return sc, nil
}

// MarshalText renders the scenario in ASCII map form, one row per line.
// Unset endpoints are simply not drawn.
func (s *Scenario) MarshalText() ([]byte, error) {
	if err := grid.CheckDimensions(s.Rows, s.Cols); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cells := bytes.Repeat([]byte{MapOpen}, s.Rows*s.Cols)
	put := func(c grid.Coord, ch byte) {
		if c.Row >= 0 && c.Row < s.Rows && c.Col >= 0 && c.Col < s.Cols {
			cells[c.Row*s.Cols+c.Col] = ch
		}
	}
	for _, w := range s.Walls {
		put(w, MapWall)
	}
	put(s.Start, MapStart)
	put(s.End, MapEnd)

	var buf bytes.Buffer
	buf.Grow((s.Cols + 1) * s.Rows)
	for r := 0; r < s.Rows; r++ {
		buf.Write(cells[r*s.Cols : (r+1)*s.Cols])
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
