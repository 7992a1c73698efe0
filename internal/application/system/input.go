package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/fbcterm/internal/application/input"
)

const (
	// repeatDelay is how many ticks a key is held before it repeats.
	repeatDelay = 24
	// repeatInterval is the tick gap between repeats.
	repeatInterval = 4
)

// repeatable keys auto-repeat while held, for list navigation and paging.
var repeatable = []ebiten.Key{
	ebiten.KeyUp, ebiten.KeyDown, ebiten.KeyLeft, ebiten.KeyRight,
	ebiten.KeyPageUp, ebiten.KeyPageDown, ebiten.KeyBackspace,
}

// InputSystem turns ebiten's polled keyboard state into discrete events.
type InputSystem struct {
	keys  []ebiten.Key
	chars []rune
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// Poll returns the events of the current tick: key presses (with repeats
// for held navigation keys) followed by typed characters.
func (s *InputSystem) Poll() []input.Event {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	var events []input.Event
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		events = append(events, input.Event{Kind: input.KindKey, Key: k, Ctrl: ctrl, Shift: shift})
	}
	for _, k := range repeatable {
		if Repeats(inpututil.KeyPressDuration(k)) {
			events = append(events, input.Event{Kind: input.KindKey, Key: k, Ctrl: ctrl, Shift: shift})
		}
	}

	// Ctrl chords are shortcuts, not text.
	if !ctrl {
		s.chars = ebiten.AppendInputChars(s.chars[:0])
		for _, r := range s.chars {
			events = append(events, input.Event{Kind: input.KindChar, Char: r, Shift: shift})
		}
	}
	return events
}

// Pressed implements input.KeyState.
func (s *InputSystem) Pressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

// Repeats reports whether a key held for the given number of ticks should
// emit a repeat this tick.
func Repeats(ticks int) bool {
	if ticks <= repeatDelay {
		return false
	}
	return (ticks-repeatDelay)%repeatInterval == 0
}
