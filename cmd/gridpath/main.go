package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gridpath/internal/cli"
	"github.com/katalvlaran/gridpath/internal/playback"
	"github.com/katalvlaran/gridpath/internal/termview"
	"github.com/katalvlaran/gridpath/internal/textview"
	"github.com/katalvlaran/gridpath/internal/wsstream"
	"github.com/katalvlaran/gridpath/search"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args and dispatches to the selected mode, writing text output
// to outW.
func run(outW io.Writer, args []string) error {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logger := cli.NewLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Mode {
	case cli.ModeWatch:
		// the screen owns the terminal; logs would tear it
		logger.SetOutput(io.Discard)
		return watch(ctx, cfg, logger)
	case cli.ModeServe:
		return serve(ctx, cfg, logger)
	default:
		return runText(ctx, outW, cfg, logger)
	}
}

// prepare loads the scenario and builds a ready-to-step search over it.
func prepare(cfg *cli.Config, logger logrus.FieldLogger) (*search.Search, *textview.Frame, error) {
	sc, err := cfg.Scenario()
	if err != nil {
		return nil, nil, err
	}
	g, err := sc.Build()
	if err != nil {
		return nil, nil, err
	}
	s, err := search.New(g, sc.Start, sc.End, cfg.SearchOptions(logger.WithField("scenario", sc.Name))...)
	if err != nil {
		return nil, nil, err
	}
	return s, textview.NewFrame(g, sc.Start, sc.End), nil
}

// runText prints the explored board and a one-line summary.
func runText(ctx context.Context, outW io.Writer, cfg *cli.Config, logger logrus.FieldLogger) error {
	s, frame, err := prepare(cfg, logger)
	if err != nil {
		return err
	}
	player := playback.New(cfg.PlaybackOptions(logger)...)
	res, err := player.Play(ctx, s, func(ev search.Event) error {
		frame.Apply(ev)
		if cfg.Trace {
			_, err := fmt.Fprintln(outW, ev)
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := frame.WriteTo(outW); err != nil {
		return err
	}
	_, err = fmt.Fprintln(outW, textview.Summary(res))
	return err
}

// watch animates the run on the terminal and waits for a quit key.
func watch(ctx context.Context, cfg *cli.Config, logger logrus.FieldLogger) error {
	s, frame, err := prepare(cfg, logger)
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ctx, quit := context.WithCancel(ctx)
	defer quit()

	view := termview.New(screen, frame, logger)
	view.SetStatus("searching... (q to quit)")
	view.Draw()
	go view.Listen(quit)

	res, err := playback.New(cfg.PlaybackOptions(logger)...).Play(ctx, s, view.Apply)
	switch {
	case errors.Is(err, search.ErrCancelled):
		return nil
	case err != nil:
		return err
	}
	view.SetStatus(textview.Summary(res) + " (q to quit)")
	<-ctx.Done()

	return nil
}

// serve streams runs over websockets until the process is signalled.
func serve(ctx context.Context, cfg *cli.Config, logger logrus.FieldLogger) error {
	handler := wsstream.New(wsstream.DirLoader(cfg.ScenarioDir),
		wsstream.WithLogger(logger),
		wsstream.WithPlayback(cfg.PlaybackOptions(logger)...),
		wsstream.WithSearchOptions(cfg.SearchOptions(logger)...),
	)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithFields(logrus.Fields{"addr": cfg.Addr, "dir": cfg.ScenarioDir}).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
