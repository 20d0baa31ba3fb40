// Package wsstream serves search runs over websockets. A client connects to
// /scenarios/{name}/stream and receives one frame per search event, paced by
// a playback.Player, followed by a single done (or error) frame.
//
// Frames are JSON text messages by default; ?format=msgpack switches the
// connection to MessagePack binary messages.
package wsstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/katalvlaran/gridpath/internal/playback"
	"github.com/katalvlaran/gridpath/scenario"
	"github.com/katalvlaran/gridpath/search"
)

// Routes.
const (
	RouteHealth = "/healthz"
	RouteBoard  = "/scenarios/:name"
	RouteStream = "/scenarios/:name/stream"
)

const (
	formatJSON = "json"
	formatMsgp = "msgpack"

	paramName   = "name"
	paramFormat = "format"
)

// ErrUnknownScenario is returned by a Loader for names it cannot resolve.
var ErrUnknownScenario = errors.New("wsstream: unknown scenario")

// Loader resolves a scenario by name.
type Loader func(name string) (*scenario.Scenario, error)

// DirLoader resolves name to dir/name.hcl or dir/name.map, in that order.
// Names containing path separators or starting with a dot are rejected.
func DirLoader(dir string) Loader {
	return func(name string) (*scenario.Scenario, error) {
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
		}
		for _, ext := range []string{".hcl", ".map"} {
			path := filepath.Join(dir, name+ext)
			if _, err := os.Stat(path); err == nil {
				return scenario.LoadFile(path)
			}
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}
}

// Server streams search runs. Every connection gets its own grid and player,
// so concurrent clients never contend for a run lock.
type Server struct {
	router     *way.Router
	upgrader   websocket.Upgrader
	load       Loader
	playOpts   []playback.Option
	searchOpts []search.Option
	log        logrus.FieldLogger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPlayback sets the options of the per-connection player.
func WithPlayback(opts ...playback.Option) Option {
	return func(s *Server) { s.playOpts = append(s.playOpts, opts...) }
}

// WithSearchOptions passes options through to every search.
func WithSearchOptions(opts ...search.Option) Option {
	return func(s *Server) { s.searchOpts = append(s.searchOpts, opts...) }
}

// WithCheckOrigin overrides the websocket origin check.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(s *Server) { s.upgrader.CheckOrigin = fn }
}

// New builds a Server and its routes.
func New(load Loader, opts ...Option) *Server {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	s := &Server{
		upgrader: websocket.Upgrader{},
		load:     load,
		log:      discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc(http.MethodGet, RouteHealth, s.handleHealth)
	s.router.HandleFunc(http.MethodGet, RouteBoard, s.handleBoard)
	s.router.HandleFunc(http.MethodGet, RouteStream, s.handleStream)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	sc, ok := s.scenario(w, r)
	if !ok {
		return
	}
	board := Board{
		Name:  sc.Name,
		Rows:  sc.Rows,
		Cols:  sc.Cols,
		Walls: make([][2]int, 0, len(sc.Walls)),
		Start: pair(sc.Start),
		End:   pair(sc.End),
	}
	for _, c := range sc.Walls {
		board.Walls = append(board.Walls, pair(c))
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(board); err != nil {
		s.log.WithError(err).Warn("write board")
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get(paramFormat)
	if format == "" {
		format = formatJSON
	}
	if format != formatJSON && format != formatMsgp {
		http.Error(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
		return
	}
	sc, ok := s.scenario(w, r)
	if !ok {
		return
	}
	g, err := sc.Build()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	run, err := search.New(g, sc.Start, sc.End, s.searchOpts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := s.log.WithFields(logrus.Fields{"scenario": sc.Name, "remote": r.RemoteAddr, "format": format})
	log.Info("stream started")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go drain(conn, cancel)

	st := stream{conn: conn, format: format}
	res, err := playback.New(s.playOpts...).Play(ctx, run, func(ev search.Event) error {
		return st.write(EventFrame(ev))
	})
	if err != nil {
		log.WithError(err).Warn("stream aborted")
		_ = st.write(ErrorFrame(err))
		return
	}
	if err := st.write(DoneFrame(res)); err != nil {
		log.WithError(err).Warn("write done frame")
		return
	}
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, res.Outcome.String()))
	log.WithFields(logrus.Fields{"outcome": res.Outcome.String(), "length": res.Len()}).Info("stream finished")
}

// scenario loads the :name scenario, replying with an HTTP error on failure.
func (s *Server) scenario(w http.ResponseWriter, r *http.Request) (*scenario.Scenario, bool) {
	name := way.Param(r.Context(), paramName)
	sc, err := s.load(name)
	switch {
	case err == nil:
		return sc, true
	case errors.Is(err, ErrUnknownScenario):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, scenario.ErrParse), errors.Is(err, scenario.ErrInvalid):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		s.log.WithError(err).WithField("scenario", name).Error("load scenario")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
	return nil, false
}

// drain reads and discards client messages so control frames are processed,
// cancelling the run when the connection goes away.
func drain(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

type stream struct {
	conn   *websocket.Conn
	format string
}

func (st stream) write(f Frame) error {
	if st.format != formatMsgp {
		return st.conn.WriteJSON(f)
	}
	w, err := st.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(w).Encode(f); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
