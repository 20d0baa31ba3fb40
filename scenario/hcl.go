package scenario

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/katalvlaran/gridpath/grid"
)

// hclScenarioFile is the top-level structure of a scenario file for decoding.
//
//	name = "maze"
//
//	grid {
//	  rows = 20
//	  cols = 20
//	}
//	start {
//	  row = 0
//	  col = 0
//	}
//	end {
//	  row = 19
//	  col = 19
//	}
//	wall {
//	  row = 5
//	  col = 6
//	}
//	wall_line {
//	  from_row = 3
//	  from_col = 0
//	  to_row   = 3
//	  to_col   = 10
//	}
type hclScenarioFile struct {
	Name      *string        `hcl:"name,optional"`
	Grid      *hclGridBlock  `hcl:"grid,block"`
	Start     *hclCellBlock  `hcl:"start,block"`
	End       *hclCellBlock  `hcl:"end,block"`
	Walls     []hclCellBlock `hcl:"wall,block"`
	WallLines []hclLineBlock `hcl:"wall_line,block"`
}

type hclGridBlock struct {
	Rows int `hcl:"rows"`
	Cols int `hcl:"cols"`
}

type hclCellBlock struct {
	Row int `hcl:"row"`
	Col int `hcl:"col"`
}

func (b hclCellBlock) coord() grid.Coord { return grid.Coord{Row: b.Row, Col: b.Col} }

// hclLineBlock is a horizontal or vertical run of walls, endpoints inclusive.
type hclLineBlock struct {
	FromRow int `hcl:"from_row"`
	FromCol int `hcl:"from_col"`
	ToRow   int `hcl:"to_row"`
	ToCol   int `hcl:"to_col"`
}

// cells expands the line into coordinates on a rows×cols board. Diagonal
// lines and lines leaving the board are rejected before anything is allocated.
func (b hclLineBlock) cells(rows, cols int) ([]grid.Coord, error) {
	if b.FromRow != b.ToRow && b.FromCol != b.ToCol {
		return nil, fmt.Errorf("%w: wall_line (%d,%d)→(%d,%d) is not horizontal or vertical",
			ErrParse, b.FromRow, b.FromCol, b.ToRow, b.ToCol)
	}
	for _, rc := range [][2]int{{b.FromRow, b.FromCol}, {b.ToRow, b.ToCol}} {
		if rc[0] < 0 || rc[0] >= rows || rc[1] < 0 || rc[1] >= cols {
			return nil, fmt.Errorf("%w: %w: wall_line end (%d,%d) in %d×%d",
				ErrInvalid, grid.ErrOutOfBounds, rc[0], rc[1], rows, cols)
		}
	}
	r0, r1 := order(b.FromRow, b.ToRow)
	c0, c1 := order(b.FromCol, b.ToCol)
	out := make([]grid.Coord, 0, (r1-r0+1)*(c1-c0+1))
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			out = append(out, grid.Coord{Row: r, Col: c})
		}
	}
	return out, nil
}

func order(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

// ParseHCL decodes an HCL scenario. filename is used in diagnostics only.
// A missing grid block means the default 20×20 board; missing start or end
// blocks leave those endpoints unset (grid.NoCoord) for Validate to report.
func ParseHCL(src []byte, filename string) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, filename, diags)
	}

	var parsed hclScenarioFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, filename, diags)
	}

	sc := Default()
	if parsed.Name != nil {
		sc.Name = *parsed.Name
	}
	if parsed.Grid != nil {
		sc.Rows, sc.Cols = parsed.Grid.Rows, parsed.Grid.Cols
		if err := grid.CheckDimensions(sc.Rows, sc.Cols); err != nil {
			return nil, fmt.Errorf("%s: %w: %w", filename, ErrInvalid, err)
		}
	}
	if parsed.Start != nil {
		sc.Start = parsed.Start.coord()
	}
	if parsed.End != nil {
		sc.End = parsed.End.coord()
	}
	for _, w := range parsed.Walls {
		sc.Walls = append(sc.Walls, w.coord())
	}
	for _, line := range parsed.WallLines {
		cells, err := line.cells(sc.Rows, sc.Cols)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		sc.Walls = append(sc.Walls, cells...)
	}

	return sc, nil
}
