package overlay

import (
	"bytes"
	"errors"
	"log"
	"math/rand"
	"os"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/fbcterm/internal/application/state"
)

const frame = 1.0 / 60.0

func run(l interface{ Update(float64) }, seconds float64) {
	for t := 0.0; t < seconds; t += frame {
		l.Update(frame)
	}
}

type lifeDriver struct{ *Lifecycle }

func (d lifeDriver) Update(dt float64) { d.Advance(dt) }

func TestLifecycle_FullCycle(t *testing.T) {
	released := 0
	l := NewLifecycle(2, func() { released++ })
	assert.Equal(t, state.PhaseOpening, l.Phase())

	l.Advance(0.25)
	assert.InDelta(t, 0.5, l.Progress(), 1e-9)
	assert.Equal(t, state.PhaseOpening, l.Phase())

	l.Advance(0.5)
	assert.Equal(t, 1.0, l.Progress(), "progress clamps at 1")
	assert.Equal(t, state.PhaseSteady, l.Phase())

	l.Advance(10)
	assert.Equal(t, state.PhaseSteady, l.Phase(), "steady holds until closed")

	l.Close()
	assert.Equal(t, state.PhaseClosing, l.Phase())
	l.Advance(0.25)
	assert.InDelta(t, 0.5, l.Progress(), 1e-9)
	assert.False(t, l.Done())

	l.Advance(1)
	assert.Equal(t, state.PhaseDisposed, l.Phase())
	assert.True(t, l.Done())
	assert.Equal(t, 1, released)

	l.Advance(1)
	l.Close()
	l.Dispose()
	assert.Equal(t, 1, released, "release runs exactly once")
}

func TestLifecycle_CloseWhileOpening(t *testing.T) {
	released := 0
	l := NewLifecycle(2.2, func() { released++ })
	l.Advance(0.1)
	require.Equal(t, state.PhaseOpening, l.Phase())

	l.Close()
	assert.Equal(t, state.PhaseClosing, l.Phase())
	run(lifeDriver{l}, 1)
	assert.True(t, l.Done())
	assert.Equal(t, 1, released)
}

func TestLifecycle_CloseIsNotCancellable(t *testing.T) {
	l := NewLifecycle(1, nil)
	l.Advance(1)
	l.Close()
	l.Advance(0.5)
	before := l.Progress()

	l.Close()
	assert.Equal(t, state.PhaseClosing, l.Phase())
	assert.Equal(t, before, l.Progress(), "closing again does not restart the outro")

	l.Advance(0.1)
	assert.Less(t, l.Progress(), before)
}

func TestLifecycle_Dispose(t *testing.T) {
	released := 0
	l := NewLifecycle(1, func() { released++ })
	l.Dispose()
	assert.True(t, l.Done())
	assert.Equal(t, 0.0, l.Progress())
	assert.Equal(t, 1, released)
}

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutCubic(0))
	assert.Equal(t, 1.0, EaseOutCubic(1))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), 1e-9)
	assert.Equal(t, 1.0, EaseOutCubic(3), "input is clamped")

	prev := 0.0
	for x := 0.0; x <= 1; x += 0.05 {
		v := EaseOutCubic(x)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

type fakeSong struct {
	plays  int
	closes int
}

func (s *fakeSong) Play()        { s.plays++ }
func (s *fakeSong) Close() error { s.closes++; return nil }

func TestAhti(t *testing.T) {
	song := &fakeSong{}
	a := NewAhti(AhtiOptions{
		Quotes: []string{"a", "b", "c", "d", "e", "f"},
		Song:   song,
		Rate:   2.2,
		Width:  1280,
		Height: 720,
		Rand:   rand.New(rand.NewSource(7)),
	})
	assert.Equal(t, 1, song.plays)
	assert.Len(t, a.Quotes(), 4)
	assert.True(t, a.DismissibleBy(ebiten.KeyJ))
	assert.False(t, a.DismissibleBy(ebiten.KeyEscape))

	run(a, 1)
	assert.Equal(t, state.PhaseSteady, a.Lifecycle().Phase())

	a.Close()
	run(a, 1)
	assert.True(t, a.Done())
	assert.Equal(t, 1, song.closes, "song released on dispose")
	a.Close()
	run(a, 1)
	assert.Equal(t, 1, song.closes)
}

func TestAhti_DefaultQuotes(t *testing.T) {
	a := NewAhti(AhtiOptions{Width: 800, Height: 600})
	assert.ElementsMatch(t, DefaultQuotes, a.Quotes())
	a.Close()
	run(a, 2)
	assert.True(t, a.Done(), "no song is fine")
}

func TestDecrypt_CallsBackOnceAndCloses(t *testing.T) {
	calls := 0
	d := NewDecrypt(DecryptOptions{
		Duration: 1.8,
		Width:    1280,
		Height:   720,
		Rand:     rand.New(rand.NewSource(3)),
		OnDone:   func() { calls++ },
	})
	assert.False(t, d.DismissibleBy(ebiten.KeyEscape))

	run(d, 1.0)
	assert.Equal(t, 0, calls)
	assert.InDelta(t, 1.0/1.8, d.Progress(), 0.02)

	run(d, 0.85)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1.0, d.Progress())

	run(d, 1)
	assert.True(t, d.Done())
	assert.Equal(t, 1, calls)
}

func TestDecrypt_GridSize(t *testing.T) {
	d := NewDecrypt(DecryptOptions{Width: 100, Height: 50})
	assert.Equal(t, 24, d.cols)
	assert.Equal(t, 10, d.rows)
	for _, v := range d.drops {
		assert.LessOrEqual(t, v, 0)
	}
}

func TestThreshold(t *testing.T) {
	th := NewThreshold(ThresholdOptions{
		Sectors:     []string{"Research"},
		Levels:      []string{"CRITICAL"},
		MinDuration: 1.8,
		MaxDuration: 3.0,
		Width:       1280,
		Height:      720,
		Rand:        rand.New(rand.NewSource(11)),
	})
	assert.Equal(t, "Research", th.Sector)
	assert.Equal(t, "CRITICAL", th.Level)
	assert.Equal(t, "THRESHOLD ACTIVITY SPIKE DETECTED", th.Text)
	assert.GreaterOrEqual(t, th.Duration(), 1.8)
	assert.LessOrEqual(t, th.Duration(), 3.0)
	assert.Equal(t, 460, th.Rect.Dx())
	assert.GreaterOrEqual(t, th.Rect.Min.X, 20)
	assert.LessOrEqual(t, th.Rect.Max.X, 1280-22+460)
	assert.GreaterOrEqual(t, th.Rect.Min.Y, 90)
	assert.True(t, th.DismissibleBy(ebiten.KeyEscape))
	assert.False(t, th.DismissibleBy(ebiten.KeyJ))

	run(th, th.Duration()+0.5)
	assert.True(t, th.Done(), "closes itself")
}

func TestThreshold_Defaults(t *testing.T) {
	th := NewThreshold(ThresholdOptions{Width: 1280, Height: 720})
	assert.NotEmpty(t, th.Sector)
	assert.NotEmpty(t, th.Level)
	assert.GreaterOrEqual(t, th.Duration(), 1.8)
}

type failingSong struct{ fakeSong }

func (s *failingSong) Close() error {
	s.closes++
	return errors.New("remove temp wav: permission denied")
}

func TestAhti_ReleaseErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	song := &failingSong{}
	a := NewAhti(AhtiOptions{Song: song, Width: 1280, Height: 720})
	a.Dispose()
	a.Dispose()

	assert.True(t, a.Done())
	assert.Equal(t, 1, song.closes)
	assert.Contains(t, buf.String(), "[overlay] ahti release: remove temp wav")
}
