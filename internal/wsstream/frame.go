package wsstream

import (
	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/search"
)

// Frame types.
const (
	FrameVisited = "visited"
	FramePath    = "path"
	FrameDone    = "done"
	FrameError   = "error"
)

// Frame is one message on the stream. Event frames carry the cell, its
// distance and the suggested delay; the done frame carries the outcome.
type Frame struct {
	Type     string `json:"type" msgpack:"type"`
	Row      int    `json:"row" msgpack:"row"`
	Col      int    `json:"col" msgpack:"col"`
	Distance int    `json:"distance" msgpack:"distance"`
	DelayMS  int64  `json:"delay_ms" msgpack:"delay_ms"`
	Outcome  string `json:"outcome,omitempty" msgpack:"outcome,omitempty"`
	Length   int    `json:"length,omitempty" msgpack:"length,omitempty"`
	Visited  int    `json:"visited,omitempty" msgpack:"visited,omitempty"`
	Message  string `json:"message,omitempty" msgpack:"message,omitempty"`
}

// EventFrame converts a search event.
func EventFrame(ev search.Event) Frame {
	typ := FrameVisited
	if ev.Kind == search.NodeOnPath {
		typ = FramePath
	}
	return Frame{
		Type:     typ,
		Row:      ev.Row,
		Col:      ev.Col,
		Distance: ev.Distance,
		DelayMS:  ev.Delay.Milliseconds(),
	}
}

// DoneFrame converts a terminal result. Row and Col hold the end cell.
func DoneFrame(res *search.Result) Frame {
	f := Frame{
		Type:    FrameDone,
		Row:     res.End.Row,
		Col:     res.End.Col,
		Outcome: res.Outcome.String(),
		Length:  res.Len(),
		Visited: len(res.Visited),
	}
	if res.Found() {
		f.Distance = res.Distance
	} else {
		f.Distance = -1
	}
	return f
}

// ErrorFrame reports a run that ended in failure.
func ErrorFrame(err error) Frame {
	return Frame{Type: FrameError, Message: err.Error()}
}

// Board is the static description of a scenario, served before streaming so
// a client can draw walls and endpoints.
type Board struct {
	Name  string   `json:"name"`
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Walls [][2]int `json:"walls"`
	Start [2]int   `json:"start"`
	End   [2]int   `json:"end"`
}

func pair(c grid.Coord) [2]int { return [2]int{c.Row, c.Col} }
