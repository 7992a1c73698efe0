// Package hotline models the Hotline Chamber phone: it rings until
// answered, plays its transmission, then goes quiet until reset.
package hotline

import (
	"context"

	"github.com/looplab/fsm"
)

// Call states.
const (
	StateRinging   = "ringing"
	StateConnected = "connected"
	StateEnded     = "ended"
)

const (
	eventAnswer = "answer"
	eventHangup = "hangup"
	eventReset  = "reset"
)

// Call is the phone's state machine. Enter and leave hooks let the scene
// start and stop sounds without tracking transitions itself.
type Call struct {
	fsm *fsm.FSM
}

// Hooks are invoked on entering the named states.
type Hooks struct {
	Ringing   func()
	Connected func()
	Ended     func()
}

// New creates a ringing call. The Ringing hook is not invoked for the
// initial state.
func New(h Hooks) *Call {
	on := func(f func()) fsm.Callback {
		return func(context.Context, *fsm.Event) {
			if f != nil {
				f()
			}
		}
	}
	return &Call{
		fsm: fsm.NewFSM(
			StateRinging,
			fsm.Events{
				{Name: eventAnswer, Src: []string{StateRinging}, Dst: StateConnected},
				{Name: eventHangup, Src: []string{StateConnected}, Dst: StateEnded},
				{Name: eventReset, Src: []string{StateConnected, StateEnded}, Dst: StateRinging},
			},
			fsm.Callbacks{
				"enter_" + StateRinging:   on(h.Ringing),
				"enter_" + StateConnected: on(h.Connected),
				"enter_" + StateEnded:     on(h.Ended),
			},
		),
	}
}

// Answer picks up a ringing phone. It reports whether the state changed.
func (c *Call) Answer() bool { return c.event(eventAnswer) }

// Hangup ends a connected call.
func (c *Call) Hangup() bool { return c.event(eventHangup) }

// Reset makes the phone ring again.
func (c *Call) Reset() bool { return c.event(eventReset) }

func (c *Call) event(name string) bool {
	return c.fsm.Event(context.Background(), name) == nil
}

// State returns the current state name.
func (c *Call) State() string { return c.fsm.Current() }

// Ringing reports whether the phone is waiting to be answered.
func (c *Call) Ringing() bool { return c.fsm.Is(StateRinging) }

// Connected reports whether the transmission is playing.
func (c *Call) Connected() bool { return c.fsm.Is(StateConnected) }
