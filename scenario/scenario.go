// Package scenario loads and validates board configurations: dimensions, wall
// set, start and end. It is the configuration input of a search run.
//
// Two file formats are supported:
//
//   - HCL (.hcl): grid, start, end, wall and wall_line blocks.
//   - ASCII map (anything else): one line per row, '.' open, '#' wall,
//     'S' start, 'E' end.
//
// A Scenario is plain data. Validate checks it without touching any grid and
// Build turns it into a ready grid.Grid; neither mutates anything on failure.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// Sentinel errors for scenario loading.
var (
	// ErrParse indicates a malformed scenario file.
	ErrParse = errors.New("scenario: parse error")
	// ErrInvalid indicates a well-formed scenario that violates board rules.
	ErrInvalid = errors.New("scenario: invalid scenario")
)

// Scenario is one board configuration. Start and End are grid.NoCoord when unset.
type Scenario struct {
	Name  string
	Rows  int
	Cols  int
	Walls []grid.Coord
	Start grid.Coord
	End   grid.Coord
}

// Default returns an empty 20×20 board with no endpoints selected.
func Default() *Scenario {
	return &Scenario{
		Rows:  grid.DefaultRows,
		Cols:  grid.DefaultCols,
		Start: grid.NoCoord,
		End:   grid.NoCoord,
	}
}

// Validate checks dimensions, wall bounds and endpoints.
// Errors wrap ErrInvalid together with the grid or search sentinel describing
// the violation (grid.ErrInvalidDimensions, grid.ErrOutOfBounds,
// search.ErrInvalidEndpoints).
func (s *Scenario) Validate() error {
	if err := grid.CheckDimensions(s.Rows, s.Cols); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	inBounds := func(c grid.Coord) bool {
		return c.Row >= 0 && c.Row < s.Rows && c.Col >= 0 && c.Col < s.Cols
	}

	walls := make(map[grid.Coord]struct{}, len(s.Walls))
	for _, w := range s.Walls {
		if !inBounds(w) {
			return fmt.Errorf("%w: %w: wall %v in %d×%d", ErrInvalid, grid.ErrOutOfBounds, w, s.Rows, s.Cols)
		}
		walls[w] = struct{}{}
	}

	for _, ep := range []struct {
		name string
		at   grid.Coord
	}{{"start", s.Start}, {"end", s.End}} {
		if ep.at == grid.NoCoord {
			return fmt.Errorf("%w: %w: %s not selected", ErrInvalid, search.ErrInvalidEndpoints, ep.name)
		}
		if !inBounds(ep.at) {
			return fmt.Errorf("%w: %w: %s %v in %d×%d", ErrInvalid, search.ErrInvalidEndpoints, ep.name, ep.at, s.Rows, s.Cols)
		}
		if _, ok := walls[ep.at]; ok {
			return fmt.Errorf("%w: %w: %s %v is a wall", ErrInvalid, search.ErrInvalidEndpoints, ep.name, ep.at)
		}
	}
	if s.Start == s.End {
		return fmt.Errorf("%w: %w: start and end are both %v", ErrInvalid, search.ErrInvalidEndpoints, s.Start)
	}

	return nil
}

// Build validates the scenario and returns a grid with its walls applied.
func (s *Scenario) Build() (*grid.Grid, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	g, err := grid.New(s.Rows, s.Cols)
	if err != nil {
		return nil, err
	}
	for _, w := range s.Walls {
		if err := g.SetWall(w.Row, w.Col, true); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// LoadFile reads a scenario from path, choosing the format by extension:
// ".hcl" is parsed as HCL, anything else as an ASCII map.
// The scenario's Name defaults to the file's base name without extension.
func LoadFile(path string) (*Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	var sc *Scenario
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		sc, err = ParseHCL(src, path)
	} else {
		sc, err = ParseMap(strings.NewReader(string(src)))
	}
	if err != nil {
		return nil, err
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return sc, nil
}
