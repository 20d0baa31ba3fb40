// Package search runs single-source shortest-path searches on a grid.Grid with
// uniform edge weight 1 and 4-directional movement.
//
// Overview:
//
//   - The algorithm is Dijkstra's, specialized to unit weights: it finalizes
//     nodes in increasing hop count and relaxes each neighbor with distance+1.
//   - Ties on distance are broken by insertion order (first inserted wins), so
//     every run over identical input visits nodes in the identical order.
//   - Each finalized node is reported as a NodeVisited event. Once the end node
//     is finalized the predecessor chain is walked back by package reconstruct
//     and each path node is reported as a NodeOnPath event, end first.
//   - Events carry a suggested Delay (20ms visit, 40ms path) for animation; the
//     engine never sleeps.
//
// API:
//
//	func Run(ctx context.Context, g *grid.Grid, start, end grid.Coord, opts ...Option) (*Result, error)
//	func New(g *grid.Grid, start, end grid.Coord, opts ...Option) (*Search, error)
//	func (s *Search) Events(ctx context.Context) iter.Seq[Event]
//	func (s *Search) Next(ctx context.Context) (Event, bool, error)
//	func (s *Search) Result() (*Result, error)
//	func (s *Search) Close()
//
// Outcomes:
//
//   - PathFound:    Result.Path holds start+1 … end, Result.Len() path events were emitted.
//   - NoPathExists: the frontier emptied. This is a normal outcome, not an error.
//
// Thread safety:
//
//   - A run holds the grid's exclusive run lock from its first step until it
//     ends, fails or is closed. A concurrent run or wall edit gets grid.ErrBusy.
//   - A Search itself must be driven from one goroutine.
//
// Cancellation:
//
//   - The context is checked once per step. A cancelled run fails with
//     ErrCancelled, leaving node state as of the last completed step; call
//     grid.ResetSearchState before reusing the board outside a new run.
//
// Complexity:
//
//   - Time:  O(V log V), V = rows×cols (each node has at most 4 edges).
//   - Space: O(V) for the frontier, visit order and path.
package search
