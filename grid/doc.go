// Package grid models a fixed-size rectangular lattice of cells used as the
// search space for shortest-path runs.
//
// What:
//
//   - Grid owns an R×C row-major array of Node values (default 20×20).
//   - Each Node carries search state (Distance, Prev, Visited) and a wall flag.
//   - Adjacency is 4-directional: up, down, left, right, in that order.
//   - Nodes refer to each other by Coord, never by pointer.
//   - Regions groups open cells into 4-connected components.
//
// Concurrency:
//
//   - BeginRun/EndRun take an exclusive run lock for the duration of one search.
//     SetWall, ToggleWall, ClearWalls and ResetSearchState fail with ErrBusy
//     while it is held.
//   - Read accessors (Node, IsWall, NeighborsOf, ...) take no lock; callers must
//     not race them against a run.
//
// Complexity:
//
//   - New, ResetSearchState, ClearWalls, Walls, Regions: O(R×C).
//   - NeighborsOf, SetWall, Node, InBounds: O(1).
//
// Errors:
//
//   - ErrInvalidDimensions: rows ≤ 0 or cols ≤ 0.
//   - ErrOutOfBounds: coordinate outside [0,R)×[0,C).
//   - ErrBusy: a search run currently holds the grid.
package grid
