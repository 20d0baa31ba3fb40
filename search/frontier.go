package search

import "github.com/katalvlaran/gridpath/grid"

// entry is one frontier candidate. seq is the insertion counter used to break
// distance ties: the entry inserted first is popped first.
type entry struct {
	at   grid.Coord
	dist int
	seq  uint64
}

// frontier is a min-heap of entries ordered by (dist, seq).
// Relaxation pushes a fresh entry instead of updating one in place; stale
// duplicates are discarded when popped because their node is already visited.
type frontier []entry

// Len returns the number of entries in the heap.
func (f frontier) Len() int { return len(f) }

// Less orders by distance, then by insertion order.
func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].seq < f[j].seq
}

// Swap swaps two elements in the heap.
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

// Push adds x onto the heap. Called by heap.Push; x must be an entry.
func (f *frontier) Push(x any) { *f = append(*f, x.(entry)) }

// Pop removes the last element. Called by heap.Pop.
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]

	return e
}
