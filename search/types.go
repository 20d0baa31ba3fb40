// Package search defines options, events, results and sentinel errors for
// unit-weight shortest-path runs over a grid.Grid.
//
// Options:
//
//	– OnEvent:    hook invoked for every emitted event; a non-nil error aborts the run.
//	– VisitDelay: suggested pause after a NodeVisited event (default 20ms).
//	– PathDelay:  suggested pause after a NodeOnPath event (default 40ms).
//	– MaxSteps:   cap on finalized nodes; 0 disables it.
//	– Logger:     logrus.FieldLogger for run diagnostics (default discards).
//
// Errors (sentinel):
//
//	– ErrNilGrid          if the grid pointer is nil.
//	– ErrInvalidEndpoints if start or end is out of bounds, a wall, or they are equal.
//	– ErrOptionViolation  if an Option received an invalid value.
//	– ErrCancelled        if the context is done or the run is abandoned.
//	– ErrStepLimit        if MaxSteps nodes were finalized without reaching end.
//	– ErrNotFinished      if Result is requested before the run ends.
package search

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/gridpath/grid"
)

// Sentinel errors returned by the search implementation.
var (
	// ErrNilGrid indicates that a nil *grid.Grid was passed.
	ErrNilGrid = errors.New("search: grid is nil")

	// ErrInvalidEndpoints indicates a missing, walled or coincident start/end.
	ErrInvalidEndpoints = errors.New("search: invalid endpoints")

	// ErrOptionViolation indicates an invalid functional option value.
	ErrOptionViolation = errors.New("search: invalid option supplied")

	// ErrCancelled indicates the run stopped before a terminal outcome.
	ErrCancelled = errors.New("search: cancelled")

	// ErrStepLimit indicates MaxSteps was exhausted.
	ErrStepLimit = errors.New("search: step limit reached")

	// ErrNotFinished indicates Result was called on a run still in progress.
	ErrNotFinished = errors.New("search: run not finished")
)

const (
	// DefaultVisitDelay is the suggested pause after each NodeVisited event.
	DefaultVisitDelay = 20 * time.Millisecond
	// DefaultPathDelay is the suggested pause after each NodeOnPath event.
	DefaultPathDelay = 40 * time.Millisecond
)

// EventKind classifies an Event.
type EventKind uint8

const (
	// NodeVisited reports that a node's distance became final.
	NodeVisited EventKind = iota
	// NodeOnPath reports that a node lies on the reconstructed shortest path.
	NodeOnPath
)

// String returns "visited" or "path".
func (k EventKind) String() string {
	switch k {
	case NodeVisited:
		return "visited"
	case NodeOnPath:
		return "path"
	default:
		return fmt.Sprintf("EventKind(%d)", uint8(k))
	}
}

// Event is one observable step of a run.
// Delay is advisory: presentation layers may honor or ignore it.
type Event struct {
	Kind EventKind
	grid.Coord
	Distance int
	Delay    time.Duration
}

// String renders the event as "visited (r,c) d=n".
func (e Event) String() string {
	return fmt.Sprintf("%s %s d=%d", e.Kind, e.Coord, e.Distance)
}

// Outcome is the terminal result of a completed run.
type Outcome uint8

const (
	// NoPathExists means the frontier emptied without reaching end.
	NoPathExists Outcome = iota
	// PathFound means end was finalized and its path reconstructed.
	PathFound
)

// String returns "path_found" or "no_path".
func (o Outcome) String() string {
	if o == PathFound {
		return "path_found"
	}
	return "no_path"
}

// Result is the immutable outcome of one run.
//
//   - Path runs from the node after Start through End; nil unless PathFound.
//   - Visited lists finalized nodes in visitation order.
//   - Distance is End's hop count, or grid.Unreached.
type Result struct {
	Outcome  Outcome
	Start    grid.Coord
	End      grid.Coord
	Path     []grid.Coord
	Visited  []grid.Coord
	Distance int
}

// Found reports whether a path exists.
func (r *Result) Found() bool { return r.Outcome == PathFound }

// Len returns the path length, equal to the number of NodeOnPath events.
func (r *Result) Len() int { return len(r.Path) }

// Options configures a run.
type Options struct {
	OnEvent    func(Event) error
	VisitDelay time.Duration
	PathDelay  time.Duration
	MaxSteps   int
	Logger     logrus.FieldLogger

	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring a run.
type Option func(*Options)

// DefaultOptions returns Options with the original pacing (20ms / 40ms),
// no step cap, a no-op hook and a discarding logger.
func DefaultOptions() Options {
	return Options{
		OnEvent:    func(Event) error { return nil },
		VisitDelay: DefaultVisitDelay,
		PathDelay:  DefaultPathDelay,
		MaxSteps:   0,
		Logger:     discardLogger(),
	}
}

// WithOnEvent registers a hook that receives every event as it is emitted.
// Returning an error from the hook aborts the run with that error.
func WithOnEvent(fn func(Event) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEvent = fn
		}
	}
}

// WithVisitDelay sets the suggested pause after NodeVisited events.
// Negative values are recorded as ErrOptionViolation.
func WithVisitDelay(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: VisitDelay cannot be negative (%s)", ErrOptionViolation, d)
			return
		}
		o.VisitDelay = d
	}
}

// WithPathDelay sets the suggested pause after NodeOnPath events.
// Negative values are recorded as ErrOptionViolation.
func WithPathDelay(d time.Duration) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: PathDelay cannot be negative (%s)", ErrOptionViolation, d)
			return
		}
		o.PathDelay = d
	}
}

// WithMaxSteps caps the number of finalized nodes.
//
//	n > 0: fail with ErrStepLimit once n nodes are finalized without reaching end
//	n == 0: no cap
//	n < 0: invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxSteps = n
	}
}

// WithLogger routes run diagnostics to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
