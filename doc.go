// Package gridpath is a step-by-step shortest-path visualizer for 2D grids
// with user-placed walls.
//
// 🚀 What is gridpath?
//
//	A small library plus a binary that brings together:
//		• Grid: an R×C lattice of nodes with wall flags and a run lock
//		• Search: unit-weight Dijkstra with a stable tie-break, exposed as a
//		  stream of NodeVisited / NodeOnPath events
//		• Reconstruct: lazy predecessor walks from end back to start
//		• Scenario: HCL and ASCII-map board files
//
// Everything is organized under these packages:
//
//	grid/        : Coord, Node, Grid, neighbors, walls, regions
//	search/      : Search, Run, Events, Result, functional options
//	reconstruct/ : Walk (iter.Seq2) and Path
//	scenario/    : Scenario, ParseHCL, ParseMap, LoadFile, Build
//	cmd/gridpath : run (text), watch (terminal), serve (websocket)
//
// Quick ASCII example (S start, E end, # wall, * path):
//
//	S#E
//	*#*
//	***
//
//	go install github.com/katalvlaran/gridpath/cmd/gridpath@latest
//	gridpath watch -speed 2 maze.hcl
package gridpath
