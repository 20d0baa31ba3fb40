// Package playback paces a search run for display. The engine only suggests a
// delay per event; a Player turns those suggestions into real waits, scaled by
// a speed factor and, optionally, by an eased warm-up ramp.
package playback

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/katalvlaran/gridpath/search"
)

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the latter case.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Player paces events. A Player is single-use per run when a ramp is set,
// since the ramp advances with every delay it computes.
type Player struct {
	speed float64
	ramp  *gween.Tween
	scale float32
	sleep SleepFunc
	log   logrus.FieldLogger
}

// Option configures a Player.
type Option func(*Player)

// WithSpeed divides every suggested delay by f. f <= 0 disables pacing entirely.
func WithSpeed(f float64) Option {
	return func(p *Player) { p.speed = f }
}

// WithRamp starts delays at from× their suggested value and eases the factor
// down (or up) to 1× over the first n events using fn.
// n <= 0 or a nil fn disables the ramp.
func WithRamp(from float32, n int, fn ease.TweenFunc) Option {
	return func(p *Player) {
		if n <= 0 || fn == nil {
			p.ramp, p.scale = nil, 1
			return
		}
		p.ramp = gween.New(from, 1, float32(n), fn)
		p.scale = from
	}
}

// WithSleep replaces the wait function; tests use it to record delays.
func WithSleep(fn SleepFunc) Option {
	return func(p *Player) {
		if fn != nil {
			p.sleep = fn
		}
	}
}

// WithLogger sets the logger used for pacing diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Player) {
		if l != nil {
			p.log = l
		}
	}
}

// New returns a Player running at 1× with no ramp.
func New(opts ...Option) *Player {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	p := &Player{speed: 1, scale: 1, sleep: Sleep, log: discard}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Delay returns the wait to apply after ev and advances the ramp by one step.
func (p *Player) Delay(ev search.Event) time.Duration {
	if p.speed <= 0 {
		return 0
	}
	scale := p.scale
	if p.ramp != nil {
		p.scale, _ = p.ramp.Update(1)
	}
	return time.Duration(float64(ev.Delay) * float64(scale) / p.speed)
}

// Play drives s to completion. For every event it calls fn (if non-nil) and
// then waits for the paced delay. An error from fn, or a context that ends
// during a wait, closes the run and is returned.
func (p *Player) Play(ctx context.Context, s *search.Search, fn func(search.Event) error) (*search.Result, error) {
	n := 0
	for {
		ev, ok, err := s.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		n++
		if fn != nil {
			if err := fn(ev); err != nil {
				s.Close()
				return nil, err
			}
		}
		if d := p.Delay(ev); d > 0 {
			if err := p.sleep(ctx, d); err != nil {
				s.Close()
				return nil, fmt.Errorf("%w: %w", search.ErrCancelled, err)
			}
		}
	}
	p.log.WithField("events", n).Debug("playback finished")

	return s.Result()
}

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
