// Package overlay implements the transient full-screen effects drawn above
// the active scene, and the lifecycle they share.
package overlay

import (
	"context"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/looplab/fsm"
	"github.com/younwookim/fbcterm/internal/application/state"
)

// Overlay is a time-boxed effect that owns input while it is shown.
type Overlay interface {
	Update(dt float64)
	Draw(screen *ebiten.Image)
	// Close starts the outro. It is a no-op once closing has begun.
	Close()
	// Done reports that the overlay is disposed and can be dropped.
	Done() bool
	// Dispose releases the overlay at once, skipping the outro.
	Dispose()
	// DismissibleBy reports whether pressing k should Close the overlay.
	DismissibleBy(k ebiten.Key) bool
}

const (
	eventSettle  = "settle"
	eventClose   = "close"
	eventDispose = "dispose"
)

// Lifecycle drives an overlay through opening, steady, closing and
// disposed. Progress rises from 0 to 1 while opening and falls back to 0
// while closing; the release hook runs once on disposal.
type Lifecycle struct {
	fsm      *fsm.FSM
	t        float64
	rate     float64
	release  func()
	released bool
}

// NewLifecycle starts in the opening phase. rate is progress per second.
func NewLifecycle(rate float64, release func()) *Lifecycle {
	if rate <= 0 {
		rate = 1
	}
	opening := state.PhaseOpening.String()
	steady := state.PhaseSteady.String()
	closing := state.PhaseClosing.String()
	return &Lifecycle{
		rate:    rate,
		release: release,
		fsm: fsm.NewFSM(
			opening,
			fsm.Events{
				{Name: eventSettle, Src: []string{opening}, Dst: steady},
				{Name: eventClose, Src: []string{opening, steady}, Dst: closing},
				{Name: eventDispose, Src: []string{closing}, Dst: state.PhaseDisposed.String()},
			},
			fsm.Callbacks{},
		),
	}
}

// Phase returns the current phase.
func (l *Lifecycle) Phase() state.Phase {
	p, ok := state.ParsePhase(l.fsm.Current())
	if !ok {
		return state.PhaseDisposed
	}
	return p
}

// Progress returns the raw intro progress in [0, 1].
func (l *Lifecycle) Progress() float64 {
	return l.t
}

// Ease returns EaseOutCubic(Progress()).
func (l *Lifecycle) Ease() float64 {
	return EaseOutCubic(l.t)
}

// Advance moves progress by dt and performs any transition it triggers.
func (l *Lifecycle) Advance(dt float64) {
	switch l.Phase() {
	case state.PhaseOpening:
		l.t = math.Min(1, l.t+dt*l.rate)
		if l.t >= 1 {
			l.event(eventSettle)
		}
	case state.PhaseClosing:
		l.t = math.Max(0, l.t-dt*l.rate)
		if l.t <= 0 {
			l.event(eventDispose)
			l.runRelease()
		}
	}
}

// Close begins the outro from opening or steady.
func (l *Lifecycle) Close() {
	if l.fsm.Can(eventClose) {
		l.event(eventClose)
	}
}

// Done reports whether the lifecycle reached disposed.
func (l *Lifecycle) Done() bool {
	return l.Phase().Terminal()
}

// Dispose skips the outro and releases immediately.
func (l *Lifecycle) Dispose() {
	if l.Done() {
		return
	}
	l.Close()
	l.t = 0
	l.event(eventDispose)
	l.runRelease()
}

func (l *Lifecycle) event(name string) {
	if err := l.fsm.Event(context.Background(), name); err != nil {
		log.Printf("[overlay] %s: %v", name, err)
	}
}

func (l *Lifecycle) runRelease() {
	if l.released {
		return
	}
	l.released = true
	if l.release != nil {
		l.release()
	}
}

// EaseOutCubic maps [0,1] to [0,1] decelerating towards 1.
func EaseOutCubic(x float64) float64 {
	x = math.Max(0, math.Min(1, x))
	return 1 - math.Pow(1-x, 3)
}
