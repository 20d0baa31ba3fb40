package scenario_test

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/scenario"
	"github.com/katalvlaran/gridpath/search"
)

func c(row, col int) grid.Coord { return grid.Coord{Row: row, Col: col} }

//----------------------------------------------------------------------------//
// Validate and Build
//----------------------------------------------------------------------------//

// TestValidate_Errors maps each board-rule violation to its sentinel.
func TestValidate_Errors(t *testing.T) {
	base := func() *scenario.Scenario {
		sc := scenario.Default()
		sc.Start, sc.End = c(0, 0), c(19, 19)
		return sc
	}
	cases := []struct {
		name   string
		mutate func(*scenario.Scenario)
		want   error
	}{
		{"ZeroRows", func(s *scenario.Scenario) { s.Rows = 0 }, grid.ErrInvalidDimensions},
		{"Oversized", func(s *scenario.Scenario) { s.Rows, s.Cols = 1<<32, 1<<32 }, grid.ErrInvalidDimensions},
		{"WallOutOfBounds", func(s *scenario.Scenario) { s.Walls = []grid.Coord{c(20, 0)} }, grid.ErrOutOfBounds},
		{"NoStart", func(s *scenario.Scenario) { s.Start = grid.NoCoord }, search.ErrInvalidEndpoints},
		{"NoEnd", func(s *scenario.Scenario) { s.End = grid.NoCoord }, search.ErrInvalidEndpoints},
		{"EndOutOfBounds", func(s *scenario.Scenario) { s.End = c(0, 20) }, search.ErrInvalidEndpoints},
		{"StartWalled", func(s *scenario.Scenario) { s.Walls = []grid.Coord{c(0, 0)} }, search.ErrInvalidEndpoints},
		{"Equal", func(s *scenario.Scenario) { s.End = s.Start }, search.ErrInvalidEndpoints},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sc := base()
			tc.mutate(sc)
			err := sc.Validate()
			require.ErrorIs(t, err, scenario.ErrInvalid)
			require.ErrorIs(t, err, tc.want)

			g, err := sc.Build()
			require.Error(t, err)
			require.Nil(t, g)
		})
	}
	require.NoError(t, base().Validate())
}

// TestBuild applies walls to a fresh grid.
func TestBuild(t *testing.T) {
	sc := &scenario.Scenario{Rows: 3, Cols: 4, Walls: []grid.Coord{c(1, 1), c(1, 2)}, Start: c(0, 0), End: c(2, 3)}
	g, err := sc.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 4, g.Cols())
	assert.Equal(t, sc.Walls, g.Walls())
}

//----------------------------------------------------------------------------//
// HCL
//----------------------------------------------------------------------------//

// TestLoadFile_HCL decodes blocks, expands wall_line, and runs the result.
func TestLoadFile_HCL(t *testing.T) {
	sc, err := scenario.LoadFile(filepath.Join("testdata", "detour.hcl"))
	require.NoError(t, err)
	assert.Equal(t, "detour", sc.Name)
	assert.Equal(t, 6, sc.Rows)
	assert.Equal(t, 8, sc.Cols)
	assert.Equal(t, c(0, 0), sc.Start)
	assert.Equal(t, c(0, 7), sc.End)
	assert.Equal(t, []grid.Coord{c(5, 0), c(0, 4), c(1, 4), c(2, 4), c(3, 4), c(4, 4)}, sc.Walls)

	g, err := sc.Build()
	require.NoError(t, err)
	res, err := search.Run(context.Background(), g, sc.Start, sc.End)
	require.NoError(t, err)
	require.True(t, res.Found())
	assert.Contains(t, res.Path, c(5, 4), "only gap in the wall_line is row 5")
}

// TestParseHCL_Defaults: a file without a grid block gets the 20×20 board.
func TestParseHCL_Defaults(t *testing.T) {
	src := `
start {
  row = 1
  col = 1
}
`
	sc, err := scenario.ParseHCL([]byte(src), "inline.hcl")
	require.NoError(t, err)
	assert.Equal(t, grid.DefaultRows, sc.Rows)
	assert.Equal(t, grid.DefaultCols, sc.Cols)
	assert.Equal(t, c(1, 1), sc.Start)
	assert.Equal(t, grid.NoCoord, sc.End)
	require.ErrorIs(t, sc.Validate(), search.ErrInvalidEndpoints)
}

// TestParseHCL_Invalid rejects oversized boards and wall_lines leaving the
// board before any expansion happens.
func TestParseHCL_Invalid(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"HugeGrid", "grid {\n  rows = 4294967296\n  cols = 4294967296\n}\n", grid.ErrInvalidDimensions},
		{"ZeroGrid", "grid {\n  rows = 0\n  cols = 5\n}\n", grid.ErrInvalidDimensions},
		{"LineFarOut", "wall_line {\n  from_row = 0\n  from_col = 3\n  to_row = 1000000000\n  to_col = 3\n}\n", grid.ErrOutOfBounds},
		{"LineNegative", "wall_line {\n  from_row = -1\n  from_col = 0\n  to_row = -1\n  to_col = 4\n}\n", grid.ErrOutOfBounds},
		{"LinePastDeclaredGrid", "grid {\n  rows = 4\n  cols = 4\n}\nwall_line {\n  from_row = 2\n  from_col = 0\n  to_row = 2\n  to_col = 4\n}\n", grid.ErrOutOfBounds},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sc, err := scenario.ParseHCL([]byte(tc.src), tc.name+".hcl")
			require.Nil(t, sc)
			require.ErrorIs(t, err, scenario.ErrInvalid)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestParseHCL_Errors covers syntax, schema and geometry failures.
func TestParseHCL_Errors(t *testing.T) {
	cases := map[string]string{
		"Syntax":        `grid {`,
		"UnknownBlock":  "portal {\n  row = 1\n}\n",
		"MissingAttr":   "start {\n  row = 1\n}\n",
		"DiagonalLine":  "wall_line {\n  from_row = 0\n  from_col = 0\n  to_row = 2\n  to_col = 2\n}\n",
		"TwoGridBlocks": "grid {\n  rows = 2\n  cols = 2\n}\ngrid {\n  rows = 3\n  cols = 3\n}\n",
		"WrongAttrType": "grid {\n  rows = \"many\"\n  cols = 2\n}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.ParseHCL([]byte(src), name+".hcl")
			require.ErrorIs(t, err, scenario.ErrParse)
		})
	}
}

//----------------------------------------------------------------------------//
// ASCII map
//----------------------------------------------------------------------------//

// TestLoadFile_Map reads the enclosed-start board and confirms no path.
func TestLoadFile_Map(t *testing.T) {
	sc, err := scenario.LoadFile(filepath.Join("testdata", "enclosed.map"))
	require.NoError(t, err)
	assert.Equal(t, "enclosed", sc.Name)
	assert.Equal(t, 5, sc.Rows)
	assert.Equal(t, 10, sc.Cols)
	assert.Equal(t, c(2, 4), sc.Start)
	assert.Equal(t, c(4, 9), sc.End)
	assert.Len(t, sc.Walls, 8)

	g, err := sc.Build()
	require.NoError(t, err)
	res, err := search.Run(context.Background(), g, sc.Start, sc.End)
	require.NoError(t, err)
	assert.Equal(t, search.NoPathExists, res.Outcome)
}

// TestParseMap_Errors covers malformed maps.
func TestParseMap_Errors(t *testing.T) {
	_, err := scenario.LoadFile(filepath.Join("testdata", "ragged.map"))
	require.ErrorIs(t, err, scenario.ErrParse)

	cases := map[string]string{
		"Empty":     "\n\n",
		"BadChar":   "S.x\n..E\n",
		"TwoStarts": "S.S\n..E\n",
		"TwoEnds":   "SEE\n...\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := scenario.ParseMap(strings.NewReader(src))
			require.ErrorIs(t, err, scenario.ErrParse)
		})
	}

	_, err = scenario.LoadFile(filepath.Join("testdata", "missing.map"))
	require.Error(t, err)
}

// TestMarshalText_RoundTrip renders a scenario and parses it back.
func TestMarshalText_RoundTrip(t *testing.T) {
	sc := &scenario.Scenario{Rows: 2, Cols: 4, Walls: []grid.Coord{c(0, 1), c(1, 2)}, Start: c(0, 0), End: c(1, 3)}
	text, err := sc.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "S#..\n..#E\n", string(text))

	back, err := scenario.ParseMap(strings.NewReader(string(text)))
	require.NoError(t, err)
	assert.Equal(t, sc.Rows, back.Rows)
	assert.Equal(t, sc.Cols, back.Cols)
	assert.Equal(t, sc.Walls, back.Walls)
	assert.Equal(t, sc.Start, back.Start)
	assert.Equal(t, sc.End, back.End)

	_, err = (&scenario.Scenario{}).MarshalText()
	require.ErrorIs(t, err, grid.ErrInvalidDimensions)
	_, err = (&scenario.Scenario{Rows: 1 << 32, Cols: 1 << 32}).MarshalText()
	require.ErrorIs(t, err, grid.ErrInvalidDimensions)
}
