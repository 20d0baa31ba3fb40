package playback_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"

	"github.com/katalvlaran/gridpath/grid"
	"github.com/katalvlaran/gridpath/internal/playback"
	"github.com/katalvlaran/gridpath/search"
)

// recorder is a SleepFunc that records every wait instead of sleeping.
type recorder struct {
	waits []time.Duration
}

func (r *recorder) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

// corridor returns a 1×3 grid and a search from (0,0) to (0,2):
// three visited events followed by two path events.
func corridor(t *testing.T) (*grid.Grid, *search.Search) {
	t.Helper()
	g, err := grid.New(1, 3)
	require.NoError(t, err)
	s, err := search.New(g, grid.Coord{Row: 0, Col: 0}, grid.Coord{Row: 0, Col: 2},
		search.WithVisitDelay(10*time.Millisecond),
		search.WithPathDelay(20*time.Millisecond))
	require.NoError(t, err)
	return g, s
}

func TestPlay_Speed(t *testing.T) {
	cases := []struct {
		name  string
		speed float64
		want  []time.Duration
	}{
		{"Normal", 1, []time.Duration{10 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond, 20 * time.Millisecond, 20 * time.Millisecond}},
		{"Double", 2, []time.Duration{5 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond, 10 * time.Millisecond, 10 * time.Millisecond}},
		{"Instant", 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, s := corridor(t)
			rec := &recorder{}
			p := playback.New(playback.WithSpeed(tc.speed), playback.WithSleep(rec.sleep))

			var kinds []search.EventKind
			res, err := p.Play(context.Background(), s, func(ev search.Event) error {
				kinds = append(kinds, ev.Kind)
				return nil
			})
			require.NoError(t, err)
			assert.True(t, res.Found())
			assert.Equal(t, 2, res.Len())
			assert.Equal(t, tc.want, rec.waits)
			assert.Equal(t, []search.EventKind{
				search.NodeVisited, search.NodeVisited, search.NodeVisited,
				search.NodeOnPath, search.NodeOnPath,
			}, kinds)
		})
	}
}

// TestPlay_Ramp eases the delay factor from 3× to 1× over four events.
func TestPlay_Ramp(t *testing.T) {
	_, s := corridor(t)
	rec := &recorder{}
	p := playback.New(playback.WithRamp(3, 4, ease.Linear), playback.WithSleep(rec.sleep))

	_, err := p.Play(context.Background(), s, nil)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{
		30 * time.Millisecond, // 3.0 × 10ms
		25 * time.Millisecond, // 2.5 × 10ms
		20 * time.Millisecond, // 2.0 × 10ms
		30 * time.Millisecond, // 1.5 × 20ms
		20 * time.Millisecond, // 1.0 × 20ms
	}, rec.waits)
}

func TestPlay_CancelDuringWait(t *testing.T) {
	g, s := corridor(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rec := &recorder{}
	p := playback.New(playback.WithSleep(rec.sleep))

	seen := 0
	res, err := p.Play(ctx, s, func(search.Event) error {
		seen++
		if seen == 2 {
			cancel()
		}
		return nil
	})
	require.Nil(t, res)
	require.ErrorIs(t, err, search.ErrCancelled)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, seen)

	// the run released the grid
	require.NoError(t, g.SetWall(0, 1, true))
}

func TestPlay_HookError(t *testing.T) {
	g, s := corridor(t)
	boom := errors.New("boom")
	p := playback.New(playback.WithSpeed(0))

	_, err := p.Play(context.Background(), s, func(search.Event) error { return boom })
	require.ErrorIs(t, err, boom)

	_, err = s.Result()
	require.ErrorIs(t, err, search.ErrCancelled)
	require.NoError(t, g.ResetSearchState())
}

func TestSleep(t *testing.T) {
	require.NoError(t, playback.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, playback.Sleep(ctx, time.Hour), context.Canceled)
	require.ErrorIs(t, playback.Sleep(ctx, 0), context.Canceled)
}

func TestEasing(t *testing.T) {
	fn, err := playback.Easing("Out-Quad")
	require.NoError(t, err)
	require.NotNil(t, fn)

	_, err = playback.Easing("bounce-twice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "linear")
	assert.Equal(t, "in-cubic", playback.EasingNames()[0])
}
