package reconstruct

import (
	"errors"
	"fmt"
	"iter"

	"github.com/katalvlaran/gridpath/grid"
)

// ErrNoPredecessorChain indicates that the predecessor links do not lead from
// end back to start.
var ErrNoPredecessorChain = errors.New("reconstruct: no predecessor chain from end to start")

// Walk validates the endpoints and returns a lazy sequence that yields end,
// then end's predecessor, and so on, stopping when the current node has no
// predecessor or equals start. The sequence is one-shot: ranging over it a
// second time yields nothing.
//
// Each step yields a coordinate and a nil error. If the chain runs past
// g.Size() nodes without stopping (a predecessor cycle), the sequence yields
// grid.NoCoord with an ErrNoPredecessorChain error and ends.
//
// Returns ErrNoPredecessorChain if end has no predecessor and end ≠ start.
func Walk(g *grid.Grid, end, start grid.Coord) (iter.Seq2[grid.Coord, error], error) {
	if err := check(g, end, start); err != nil {
		return nil, err
	}

	consumed := false
	limit := g.Size()
	return func(yield func(grid.Coord, error) bool) {
		if consumed {
			return
		}
		consumed = true

		cur := g.Node(end)
		for steps := 0; cur.HasPrev() && cur.Coord != start; steps++ {
			if steps >= limit {
				yield(grid.NoCoord, fmt.Errorf("%w: chain from %v exceeds %d nodes", ErrNoPredecessorChain, end, limit))
				return
			}
			if !yield(cur.Coord, nil) {
				return
			}
			cur = g.Node(cur.Prev)
		}
	}, nil
}

// Path returns the path from the node after start through end, inclusive of
// end. It collects Walk and reverses it, so it fails exactly when Walk does.
// Complexity: O(L) time and memory for a path of length L.
func Path(g *grid.Grid, end, start grid.Coord) ([]grid.Coord, error) {
	seq, err := Walk(g, end, start)
	if err != nil {
		return nil, err
	}

	path := make([]grid.Coord, 0, end.Manhattan(start))
	for c, err := range seq {
		if err != nil {
			return nil, err
		}
		path = append(path, c)
	}
	// reverse to get start+1 → end
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}

// check enforces the shared preconditions of Walk and Path.
func check(g *grid.Grid, end, start grid.Coord) error {
	if !g.Contains(end) || !g.Contains(start) {
		return fmt.Errorf("reconstruct: end %v / start %v: %w", end, start, grid.ErrOutOfBounds)
	}
	if end != start && !g.Node(end).HasPrev() {
		return fmt.Errorf("%w: %v has no predecessor", ErrNoPredecessorChain, end)
	}
	return nil
}
