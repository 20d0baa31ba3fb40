// Package reconstruct walks predecessor links left on a grid by a search run
// and yields the shortest path back from the end cell.
//
// Overview:
//
//   - Walk returns a lazy, one-shot sequence: end first, then each predecessor,
//     stopping before start (start is never yielded; the caller already knows it).
//     It is an iter.Seq2 so that a broken chain surfaces as a final error value.
//   - Path collects the same walk and reverses it into start+1 … end order.
//
// The package only reads node state. It assumes the run that produced the links
// has finished and that nothing mutates the grid while a walk is in progress.
//
// Errors:
//
//   - ErrNoPredecessorChain: end has no predecessor although end ≠ start, or the
//     chain is longer than the grid (a cycle). Both indicate a broken contract
//     with the search that produced the links, not a recoverable condition.
//   - grid.ErrOutOfBounds: end or start lies outside the grid.
package reconstruct
