// Package input carries discrete key events from the platform to scenes.
package input

import "github.com/hajimehoshi/ebiten/v2"

// Kind distinguishes key presses from typed characters.
type Kind int

const (
	KindKey Kind = iota
	KindChar
)

// Event is one discrete input event of a frame.
type Event struct {
	Kind  Kind
	Key   ebiten.Key
	Char  rune
	Ctrl  bool
	Shift bool
}

// KeyDown builds a key press event.
func KeyDown(k ebiten.Key) Event {
	return Event{Kind: KindKey, Key: k}
}

// Char builds a typed character event.
func Char(r rune) Event {
	return Event{Kind: KindChar, Char: r}
}

// Is reports whether the event is a press of any of keys.
func (e Event) Is(keys ...ebiten.Key) bool {
	if e.Kind != KindKey {
		return false
	}
	for _, k := range keys {
		if e.Key == k {
			return true
		}
	}
	return false
}

// KeyState reports held keys, for continuous actions such as walking.
type KeyState interface {
	Pressed(k ebiten.Key) bool
}

// AnyPressed reports whether any of keys is held.
func AnyPressed(ks KeyState, keys ...ebiten.Key) bool {
	if ks == nil {
		return false
	}
	for _, k := range keys {
		if ks.Pressed(k) {
			return true
		}
	}
	return false
}

// Axis returns +1, -1 or 0 from two key groups.
func Axis(ks KeyState, pos, neg []ebiten.Key) float64 {
	v := 0.0
	if AnyPressed(ks, pos...) {
		v++
	}
	if AnyPressed(ks, neg...) {
		v--
	}
	return v
}

// Held is a KeyState backed by a set, used by tests and replays.
type Held map[ebiten.Key]bool

// Pressed implements KeyState.
func (h Held) Pressed(k ebiten.Key) bool { return h[k] }
