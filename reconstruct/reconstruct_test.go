package reconstruct_test

import (
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/reconstruct"
)

// collect drains a walk, failing the test on any yielded error.
func collect(t *testing.T, seq iter.Seq2[grid.Coord, error]) []grid.Coord {
	t.Helper()
	var out []grid.Coord
	for c, err := range seq {
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

// link writes a predecessor chain along coords, each pointing at the one before.
func link(t *testing.T, g *grid.Grid, coords ...grid.Coord) {
	t.Helper()
	for i, c := range coords {
		n := g.Node(c)
		require.NotNil(t, n, "coord %v out of bounds", c)
		n.Distance = i
		if i > 0 {
			n.Prev = coords[i-1]
		}
	}
}

// TestWalk_EndFirst checks that Walk yields end first and never yields start.
func TestWalk_EndFirst(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	chain := []grid.Coord{{0, 0}, {0, 1}, {1, 1}, {2, 1}}
	link(t, g, chain...)

	seq, err := reconstruct.Walk(g, grid.Coord{Row: 2, Col: 1}, grid.Coord{Row: 0, Col: 0})
	require.NoError(t, err)

	got := collect(t, seq)
	want := []grid.Coord{{2, 1}, {1, 1}, {0, 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Walk mismatch (-want +got):\n%s", diff)
	}
}

// TestWalk_OneShot ensures the sequence cannot be restarted.
func TestWalk_OneShot(t *testing.T) {
	g, err := grid.New(1, 3)
	require.NoError(t, err)
	link(t, g, grid.Coord{Row: 0, Col: 0}, grid.Coord{Row: 0, Col: 1}, grid.Coord{Row: 0, Col: 2})

	seq, err := reconstruct.Walk(g, grid.Coord{Row: 0, Col: 2}, grid.Coord{Row: 0, Col: 0})
	require.NoError(t, err)
	require.Len(t, collect(t, seq), 2)
	require.Empty(t, collect(t, seq), "second pass must yield nothing")
}

// TestWalk_EarlyStop verifies that breaking out of the range loop is honored.
func TestWalk_EarlyStop(t *testing.T) {
	g, err := grid.New(1, 4)
	require.NoError(t, err)
	link(t, g, grid.Coord{Row: 0, Col: 0}, grid.Coord{Row: 0, Col: 1}, grid.Coord{Row: 0, Col: 2}, grid.Coord{Row: 0, Col: 3})

	seq, err := reconstruct.Walk(g, grid.Coord{Row: 0, Col: 3}, grid.Coord{Row: 0, Col: 0})
	require.NoError(t, err)
	var seen []grid.Coord
	for c, err := range seq {
		require.NoError(t, err)
		seen = append(seen, c)
		break
	}
	require.Equal(t, []grid.Coord{{0, 3}}, seen)
}

// TestPath_Order checks start+1 … end ordering and adjacency.
func TestPath_Order(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)
	chain := []grid.Coord{{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}}
	link(t, g, chain...)

	path, err := reconstruct.Path(g, grid.Coord{Row: 2, Col: 2}, grid.Coord{Row: 0, Col: 0})
	require.NoError(t, err)
	if diff := cmp.Diff(chain[1:], path); diff != "" {
		t.Errorf("Path mismatch (-want +got):\n%s", diff)
	}
}

// TestPath_Adjacent covers the one-step path.
func TestPath_Adjacent(t *testing.T) {
	g, err := grid.New(5, 5)
	require.NoError(t, err)
	link(t, g, grid.Coord{Row: 2, Col: 2}, grid.Coord{Row: 2, Col: 3})

	path, err := reconstruct.Path(g, grid.Coord{Row: 2, Col: 3}, grid.Coord{Row: 2, Col: 2})
	require.NoError(t, err)
	require.Equal(t, []grid.Coord{{2, 3}}, path)
}

// TestErrors covers the Walk and Path preconditions.
func TestErrors(t *testing.T) {
	g, err := grid.New(3, 3)
	require.NoError(t, err)

	_, err = reconstruct.Walk(g, grid.Coord{Row: 2, Col: 2}, grid.Coord{Row: 0, Col: 0})
	require.ErrorIs(t, err, reconstruct.ErrNoPredecessorChain)

	_, err = reconstruct.Path(g, grid.Coord{Row: 2, Col: 2}, grid.Coord{Row: 0, Col: 0})
	require.ErrorIs(t, err, reconstruct.ErrNoPredecessorChain)

	_, err = reconstruct.Walk(g, grid.Coord{Row: 9, Col: 9}, grid.Coord{Row: 0, Col: 0})
	require.ErrorIs(t, err, grid.ErrOutOfBounds)

	// end == start with no links is an empty walk, not an error.
	seq, err := reconstruct.Walk(g, grid.Coord{Row: 1, Col: 1}, grid.Coord{Row: 1, Col: 1})
	require.NoError(t, err)
	require.Empty(t, collect(t, seq))
}

// TestPath_Cycle detects a predecessor cycle that never reaches start.
func TestPath_Cycle(t *testing.T) {
	g, err := grid.New(2, 2)
	require.NoError(t, err)
	a, b := grid.Coord{Row: 0, Col: 0}, grid.Coord{Row: 0, Col: 1}
	g.Node(a).Prev = b
	g.Node(b).Prev = a

	_, err = reconstruct.Path(g, b, grid.Coord{Row: 1, Col: 1})
	require.ErrorIs(t, err, reconstruct.ErrNoPredecessorChain)

}

// TestWalk_Cycle checks that Walk ends a cyclic chain with the same error Path
// reports, after yielding exactly g.Size() coordinates.
func TestWalk_Cycle(t *testing.T) {
	g, err := grid.New(2, 2)
	require.NoError(t, err)
	a, b := grid.Coord{Row: 0, Col: 0}, grid.Coord{Row: 0, Col: 1}
	g.Node(a).Prev = b
	g.Node(b).Prev = a

	seq, err := reconstruct.Walk(g, b, grid.Coord{Row: 1, Col: 1})
	require.NoError(t, err)

	var (
		seen    []grid.Coord
		walkErr error
	)
	for c, err := range seq {
		if err != nil {
			require.Equal(t, grid.NoCoord, c)
			walkErr = err
			continue
		}
		seen = append(seen, c)
	}
	require.ErrorIs(t, walkErr, reconstruct.ErrNoPredecessorChain)
	require.Equal(t, []grid.Coord{b, a, b, a}, seen)

	_, pathErr := reconstruct.Path(g, b, grid.Coord{Row: 1, Col: 1})
	require.EqualError(t, walkErr, pathErr.Error())
}
