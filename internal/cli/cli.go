package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/playback"
	"github.com/katalvlaran/gridpath/scenario"
	"github.com/katalvlaran/gridpath/search"
)

// ExitError is a usage failure. main prints Message and exits with Code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Mode selects what the binary does with a run.
type Mode string

const (
	ModeRun   Mode = "run"   // print the final frame and a summary
	ModeWatch Mode = "watch" // animate in the terminal
	ModeServe Mode = "serve" // stream runs over websockets
)

// Config is the validated command line.
type Config struct {
	Mode Mode

	// ScenarioPath is the scenario file for run and watch; empty means the
	// built-in corner-to-corner demo board.
	ScenarioPath string
	// ScenarioDir holds the scenarios served by serve.
	ScenarioDir string
	Addr        string

	Speed      float64
	RampFrom   float64
	RampEvents int
	Easing     string
	VisitDelay time.Duration
	PathDelay  time.Duration
	MaxSteps   int
	Trace      bool

	LogFormat string
	LogLevel  string
}

const usage = `
gridpath - step-by-step shortest-path search on a grid.

Usage:
  gridpath run   [options] [SCENARIO]   print the explored board and the path
  gridpath watch [options] [SCENARIO]   animate the search in the terminal
  gridpath serve [options]              stream searches over websockets

Arguments:
  SCENARIO
    Path to a .hcl scenario or an ASCII map. Defaults to an empty 20x20 board
    searched from (0,0) to (19,19).

Options:
`

// Parse reads the subcommand and its flags from args. A true second result
// means help was printed to output and there is nothing to run. Bad input is
// reported as an *ExitError with code 2.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("gridpath", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usage)
		flagSet.PrintDefaults()
	}

	speedFlag := flagSet.Float64("speed", 1, "Playback speed multiplier. 0 disables pacing.")
	rampFromFlag := flagSet.Float64("ramp-from", 1, "Initial delay factor, eased to 1 over -ramp-events events.")
	rampEventsFlag := flagSet.Int("ramp-events", 0, "Number of events the delay ramp lasts. 0 disables it.")
	easingFlag := flagSet.String("easing", "out-quad", "Ramp easing: "+strings.Join(playback.EasingNames(), ", ")+".")
	visitDelayFlag := flagSet.Duration("visit-delay", search.DefaultVisitDelay, "Suggested delay after each visited node.")
	pathDelayFlag := flagSet.Duration("path-delay", search.DefaultPathDelay, "Suggested delay after each path node.")
	maxStepsFlag := flagSet.Int("max-steps", 0, "Abort a run after this many visited nodes. 0 is unlimited.")
	traceFlag := flagSet.Bool("trace", false, "run: print every event as it happens.")
	dirFlag := flagSet.String("dir", "scenarios", "serve: directory of scenario files.")
	addrFlag := flagSet.String("addr", ":8080", "serve: listen address.")
	logFormatFlag := flagSet.String("log-format", "text", "Log format: text or json.")
	logLevelFlag := flagSet.String("log-level", "info", "Log level: debug, info, warn or error.")

	if len(args) == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	mode := Mode(args[0])
	switch mode {
	case ModeRun, ModeWatch, ModeServe:
	case "-h", "-help", "--help", "help":
		flagSet.Usage()
		return nil, true, nil
	default:
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unknown command %q: want run, watch or serve", args[0])}
	}

	if err := flagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 1 || (mode == ModeServe && flagSet.NArg() > 0) {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}

	cfg := &Config{
		Mode:         mode,
		ScenarioPath: flagSet.Arg(0),
		ScenarioDir:  *dirFlag,
		Addr:         *addrFlag,
		Speed:        *speedFlag,
		RampFrom:     *rampFromFlag,
		RampEvents:   *rampEventsFlag,
		Easing:       strings.ToLower(*easingFlag),
		VisitDelay:   *visitDelayFlag,
		PathDelay:    *pathDelayFlag,
		MaxSteps:     *maxStepsFlag,
		Trace:        *traceFlag,
		LogFormat:    strings.ToLower(*logFormatFlag),
		LogLevel:     strings.ToLower(*logLevelFlag),
	}

	// run only paces when it prints events, unless a speed is asked for
	speedSet := false
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "speed" {
			speedSet = true
		}
	})
	if mode == ModeRun && !cfg.Trace && !speedSet {
		cfg.Speed = 0
	}

	if err := cfg.validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return cfg, false, nil
}

func (c *Config) validate() error {
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.New("invalid log-format: must be 'text' or 'json'")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	if c.Speed < 0 {
		return fmt.Errorf("invalid speed %g: must be >= 0", c.Speed)
	}
	if c.RampEvents < 0 || c.RampFrom <= 0 {
		return fmt.Errorf("invalid ramp: from %g over %d events", c.RampFrom, c.RampEvents)
	}
	if _, err := playback.Easing(c.Easing); err != nil {
		return err
	}
	if c.VisitDelay < 0 || c.PathDelay < 0 {
		return errors.New("invalid delay: must be >= 0")
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("invalid max-steps %d: must be >= 0", c.MaxSteps)
	}
	if c.Mode == ModeServe && c.Addr == "" {
		return errors.New("serve: addr must not be empty")
	}
	return nil
}

// Scenario loads ScenarioPath, or returns the demo board when it is empty.
func (c *Config) Scenario() (*scenario.Scenario, error) {
	if c.ScenarioPath == "" {
		sc := scenario.Default()
		sc.Name = "demo"
		sc.Start = grid.Coord{Row: 0, Col: 0}
		sc.End = grid.Coord{Row: sc.Rows - 1, Col: sc.Cols - 1}
		return sc, nil
	}
	return scenario.LoadFile(c.ScenarioPath)
}

// SearchOptions returns the engine options the flags describe.
func (c *Config) SearchOptions(log logrus.FieldLogger) []search.Option {
	return []search.Option{
		search.WithVisitDelay(c.VisitDelay),
		search.WithPathDelay(c.PathDelay),
		search.WithMaxSteps(c.MaxSteps),
		search.WithLogger(log),
	}
}

// PlaybackOptions returns the pacing options the flags describe.
func (c *Config) PlaybackOptions(log logrus.FieldLogger) []playback.Option {
	opts := []playback.Option{
		playback.WithSpeed(c.Speed),
		playback.WithLogger(log),
	}
	if c.RampEvents > 0 {
		// validated in Parse
		fn, _ := playback.Easing(c.Easing)
		opts = append(opts, playback.WithRamp(float32(c.RampFrom), c.RampEvents, fn))
	}
	return opts
}
