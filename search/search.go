// Package search implements Dijkstra's algorithm specialized to unit edge
// weights on a 4-connected grid, exposed as a stepwise run whose steps are
// observable events.
//
// Notes on implementation choices:
//
//   - The frontier is a binary heap keyed on (distance, insertion order), so ties
//     resolve exactly as a stably re-sorted list would.
//   - Decrease-key is done by re-insertion; stale entries are skipped on pop.
//   - The grid's run lock is held from the first step until the run ends,
//     fails, or is closed.
//   - The context is checked once per step, which is once per main-loop
//     iteration while exploring and once per path node while tracing.
package search

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/reconstruct"
)

// phase tracks where a Search is in its lifecycle.
type phase uint8

const (
	phaseIdle    phase = iota // validated, grid untouched
	phaseExplore              // popping the frontier, emitting NodeVisited
	phaseTrace                // walking predecessors, emitting NodeOnPath
	phaseDone                 // terminal; res or err is set
)

// Search holds the mutable state of a single run.
// It is not safe for concurrent use; one goroutine drives it.
type Search struct {
	g          *grid.Grid
	start, end grid.Coord
	opts       Options
	log        logrus.FieldLogger

	phase  phase
	locked bool
	pq     frontier
	seq    uint64

	visited []grid.Coord
	walked  []grid.Coord // path nodes in walk order (end first)

	nextPath func() (grid.Coord, error, bool)
	stopPath func()

	iterated bool
	began    time.Time
	res      *Result
	err      error
}

// New validates the run configuration and returns a Search ready to step.
// It does not touch the grid: configuration errors are reported before any
// search state is mutated.
//
// Preconditions and validation (in order):
//  1. options must be valid (ErrOptionViolation).
//  2. g must be non-nil (ErrNilGrid).
//  3. start and end must be in bounds, not walls, and distinct (ErrInvalidEndpoints).
func New(g *grid.Grid, start, end grid.Coord, opts ...Option) (*Search, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if g == nil {
		return nil, ErrNilGrid
	}
	if err := checkEndpoints(g, start, end); err != nil {
		return nil, err
	}

	return &Search{
		g:     g,
		start: start,
		end:   end,
		opts:  cfg,
		log: cfg.Logger.WithFields(logrus.Fields{
			"start": start.String(),
			"end":   end.String(),
		}),
		pq: make(frontier, 0, g.Size()),
	}, nil
}

// Run executes a full search from start to end, delivering each event to the
// WithOnEvent hook, and returns the terminal Result.
// A missing path is reported as Outcome NoPathExists with a nil error.
// Complexity: O(V log V) time, O(V) memory, V = rows×cols.
func Run(ctx context.Context, g *grid.Grid, start, end grid.Coord, opts ...Option) (*Result, error) {
	s, err := New(g, start, end, opts...)
	if err != nil {
		return nil, err
	}
	for {
		_, ok, err := s.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
	}
	return s.Result()
}

// Events returns the run as a lazy, finite, one-shot sequence. Ranging over it
// a second time yields nothing. Breaking out of the loop early closes the run
// with ErrCancelled. After the loop, Result reports the outcome or the error
// that stopped the sequence.
func (s *Search) Events(ctx context.Context) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if s.iterated {
			return
		}
		s.iterated = true
		for {
			ev, ok, err := s.Next(ctx)
			if err != nil || !ok {
				return
			}
			if !yield(ev) {
				s.Close()
				return
			}
		}
	}
}

// Next advances the run by one observable step and returns its event.
// ok is false once the run has ended; err is non-nil if it ended in failure.
func (s *Search) Next(ctx context.Context) (ev Event, ok bool, err error) {
	if s.phase == phaseDone {
		return Event{}, false, s.err
	}
	// cancellation check (once per step)
	if cerr := ctx.Err(); cerr != nil {
		return Event{}, false, s.fail(fmt.Errorf("%w: %w", ErrCancelled, cerr))
	}

	switch s.phase {
	case phaseIdle:
		if err = s.begin(); err != nil {
			return Event{}, false, err
		}
		fallthrough
	case phaseExplore:
		ev, ok, err = s.explore()
	case phaseTrace:
		ev, ok, err = s.trace()
	}
	if err != nil || !ok {
		return Event{}, false, err
	}

	if herr := s.opts.OnEvent(ev); herr != nil {
		return Event{}, false, s.fail(fmt.Errorf("search: OnEvent error at %v: %w", ev.Coord, herr))
	}
	return ev, true, nil
}

// Result returns the terminal outcome. It returns ErrNotFinished while the run
// is still in progress, and the failure error if the run did not complete.
func (s *Search) Result() (*Result, error) {
	if s.phase != phaseDone {
		return nil, ErrNotFinished
	}
	return s.res, s.err
}

// Close abandons an unfinished run, releasing the grid with ErrCancelled.
// Grid search state is left as of the last completed step.
// Close is a no-op on a finished run.
func (s *Search) Close() {
	if s.phase != phaseDone {
		s.fail(fmt.Errorf("%w: run abandoned", ErrCancelled))
	}
}

// Start returns the run's start coordinate.
func (s *Search) Start() grid.Coord { return s.start }

// End returns the run's end coordinate.
func (s *Search) End() grid.Coord { return s.end }

// begin takes the run lock, re-checks the endpoints under it (walls may have
// changed since New), resets search state, seeds the frontier with start at
// distance 0, and enters the explore phase.
func (s *Search) begin() error {
	err := s.g.BeginRun(func(g *grid.Grid) error {
		return checkEndpoints(g, s.start, s.end)
	})
	switch {
	case errors.Is(err, ErrInvalidEndpoints):
		return s.fail(err)
	case err != nil:
		return s.fail(fmt.Errorf("search: acquire grid: %w", err))
	}
	s.locked = true
	s.began = time.Now()

	s.g.Node(s.start).Distance = 0
	s.push(s.start, 0)
	s.phase = phaseExplore
	s.log.WithFields(logrus.Fields{
		"rows": s.g.Rows(),
		"cols": s.g.Cols(),
	}).Debug("search started")

	return nil
}

// explore pops frontier entries until one yields a newly finalized node.
// Stale and walled entries are discarded without producing an event.
func (s *Search) explore() (Event, bool, error) {
	for s.pq.Len() > 0 {
		item := heap.Pop(&s.pq).(entry)
		cur := s.g.Node(item.at)

		// stale duplicate or wall: drop it
		if cur.Visited || cur.IsWall() {
			continue
		}
		if s.opts.MaxSteps > 0 && len(s.visited) >= s.opts.MaxSteps {
			return Event{}, false, s.fail(fmt.Errorf("%w: %d nodes finalized", ErrStepLimit, len(s.visited)))
		}

		cur.Visited = true
		s.visited = append(s.visited, cur.Coord)
		ev := Event{Kind: NodeVisited, Coord: cur.Coord, Distance: cur.Distance, Delay: s.opts.VisitDelay}

		if cur.Coord == s.end {
			if err := s.beginTrace(); err != nil {
				return Event{}, false, err
			}
			return ev, true, nil
		}
		s.relax(cur)

		return ev, true, nil
	}

	s.finish(NoPathExists)
	return Event{}, false, nil
}

// relax offers cur.Distance+1 to every unvisited, non-wall neighbor and
// re-inserts each neighbor whose distance strictly improves.
func (s *Search) relax(cur *grid.Node) {
	alt := cur.Distance + 1
	for _, c := range s.g.Neighbors(cur.Coord) {
		nb := s.g.Node(c)
		if nb.Visited || nb.IsWall() {
			continue
		}
		if alt < nb.Distance {
			nb.Distance = alt
			nb.Prev = cur.Coord
			s.push(c, alt)
		}
	}
}

func (s *Search) push(c grid.Coord, dist int) {
	heap.Push(&s.pq, entry{at: c, dist: dist, seq: s.seq})
	s.seq++
}

// beginTrace switches to the trace phase, pulling path nodes lazily from the
// reconstructor.
func (s *Search) beginTrace() error {
	seq, err := reconstruct.Walk(s.g, s.end, s.start)
	if err != nil {
		return s.fail(err)
	}
	s.nextPath, s.stopPath = iter.Pull2(seq)
	s.phase = phaseTrace
	s.log.WithField("distance", s.g.Node(s.end).Distance).Debug("end reached, tracing path")

	return nil
}

// trace emits the next path node, or finishes the run once the walk ends.
func (s *Search) trace() (Event, bool, error) {
	c, err, ok := s.nextPath()
	if !ok {
		s.finish(PathFound)
		return Event{}, false, nil
	}
	if err != nil {
		return Event{}, false, s.fail(err)
	}
	s.walked = append(s.walked, c)
	return Event{Kind: NodeOnPath, Coord: c, Distance: s.g.Node(c).Distance, Delay: s.opts.PathDelay}, true, nil
}

// finish records the terminal Result and releases the grid.
func (s *Search) finish(o Outcome) {
	res := &Result{
		Outcome:  o,
		Start:    s.start,
		End:      s.end,
		Visited:  slices.Clone(s.visited),
		Distance: grid.Unreached,
	}
	if o == PathFound {
		res.Path = slices.Clone(s.walked)
		slices.Reverse(res.Path)
		res.Distance = s.g.Node(s.end).Distance
	}
	s.res = res
	s.release()

	s.log.WithFields(logrus.Fields{
		"outcome": o.String(),
		"visited": len(res.Visited),
		"length":  res.Len(),
		"elapsed": time.Since(s.began),
	}).Debug("search finished")
}

// fail ends the run with err, releases the grid, and returns err.
func (s *Search) fail(err error) error {
	s.err = err
	s.release()
	s.log.WithError(err).WithField("visited", len(s.visited)).Warn("search aborted")

	return err
}

func (s *Search) release() {
	s.phase = phaseDone
	if s.stopPath != nil {
		s.stopPath()
		s.stopPath = nil
	}
	if s.locked {
		s.g.EndRun()
		s.locked = false
	}
}

// checkEndpoints reports ErrInvalidEndpoints for out-of-bounds, walled or
// coincident endpoints.
func checkEndpoints(g *grid.Grid, start, end grid.Coord) error {
	for _, ep := range []struct {
		name string
		at   grid.Coord
	}{{"start", start}, {"end", end}} {
		if !g.Contains(ep.at) {
			return fmt.Errorf("%w: %s %v outside %d×%d grid", ErrInvalidEndpoints, ep.name, ep.at, g.Rows(), g.Cols())
		}
		if g.IsWall(ep.at) {
			return fmt.Errorf("%w: %s %v is a wall", ErrInvalidEndpoints, ep.name, ep.at)
		}
	}
	if start == end {
		return fmt.Errorf("%w: start and end are both %v", ErrInvalidEndpoints, start)
	}
	return nil
}
