// Package termview draws a search run on a terminal with tcell.
// Each grid cell takes two terminal columns so the board looks square.
package termview

import (
	"context"
	"io"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/textview"
	"github.com/katalvlaran/gridpath/search"
)

// CellWidth is the number of terminal columns per grid cell.
const CellWidth = 2

// Styles maps each glyph to its terminal style.
type Styles struct {
	Open, Wall, Visited, Path, Start, End, Status tcell.Style
}

// DefaultStyles returns the built-in palette.
func DefaultStyles() Styles {
	return Styles{
		Open:    tcell.StyleDefault.Foreground(tcell.ColorGray),
		Wall:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true),
		Visited: tcell.StyleDefault.Foreground(tcell.ColorBlue),
		Path:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		Start:   tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		End:     tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		Status:  tcell.StyleDefault,
	}
}

// View renders a textview.Frame onto a tcell screen.
// Draw, Apply and SetStatus are safe to call from different goroutines, so
// Listen can redraw on resize while a run is playing.
type View struct {
	mu     sync.Mutex
	screen tcell.Screen
	frame  *textview.Frame
	styles Styles
	status string
	log    logrus.FieldLogger
}

// New returns a View over an initialised screen.
// A nil logger discards output.
func New(screen tcell.Screen, frame *textview.Frame, log logrus.FieldLogger) *View {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &View{screen: screen, frame: frame, styles: DefaultStyles(), log: log}
}

// Draw repaints the whole board and the status line, then shows the screen.
func (v *View) Draw() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.draw()
}

func (v *View) draw() {
	v.screen.Clear()
	for r := 0; r < v.frame.Rows(); r++ {
		for c := 0; c < v.frame.Cols(); c++ {
			v.drawCell(grid.Coord{Row: r, Col: c})
		}
	}
	v.drawStatus()
	v.screen.Show()
}

// Apply paints one event and shows the screen if the cell changed.
func (v *View) Apply(ev search.Event) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.frame.Apply(ev) {
		v.drawCell(ev.Coord)
		v.screen.Show()
	}
	return nil
}

// SetStatus replaces the line drawn under the board.
func (v *View) SetStatus(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = msg
	v.drawStatus()
	v.screen.Show()
}

// Listen polls screen events until the screen is finalised, calling quit when
// the user presses Esc, q or Ctrl-C. Resizes trigger a full redraw.
func (v *View) Listen(quit context.CancelFunc) {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if IsQuitKey(ev.Key(), ev.Rune()) {
				v.log.Debug("quit key pressed")
				quit()
			}
		case *tcell.EventResize:
			v.mu.Lock()
			v.screen.Sync()
			v.draw()
			v.mu.Unlock()
		}
	}
}

// IsQuitKey reports whether a key press should end the session.
func IsQuitKey(k tcell.Key, r rune) bool {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return r == 'q' || r == 'Q'
	}
	return false
}

func (v *View) drawCell(c grid.Coord) {
	ch := v.frame.At(c)
	style := v.style(ch)
	x, y := c.Col*CellWidth, c.Row
	v.screen.SetContent(x, y, rune(ch), nil, style)
	v.screen.SetContent(x+1, y, ' ', nil, style)
}

func (v *View) drawStatus() {
	y := v.frame.Rows() + 1
	w, _ := v.screen.Size()
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, v.styles.Status)
	}
	for i, r := range []rune(v.status) {
		v.screen.SetContent(i, y, r, nil, v.styles.Status)
	}
}

func (v *View) style(ch byte) tcell.Style {
	switch ch {
	case textview.GlyphWall:
		return v.styles.Wall
	case textview.GlyphVisited:
		return v.styles.Visited
	case textview.GlyphPath:
		return v.styles.Path
	case textview.GlyphStart:
		return v.styles.Start
	case textview.GlyphEnd:
		return v.styles.End
	default:
		return v.styles.Open
	}
}
