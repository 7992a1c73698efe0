package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/domain/raycast"
)

// Key groups for first-person movement. J and L strafe, so the Ahti
// toggle is disabled while walking.
var (
	keysForward   = []ebiten.Key{ebiten.KeyW, ebiten.KeyUp, ebiten.KeyI}
	keysBack      = []ebiten.Key{ebiten.KeyS, ebiten.KeyDown, ebiten.KeyK}
	keysRight     = []ebiten.Key{ebiten.KeyD, ebiten.KeyL}
	keysLeft      = []ebiten.Key{ebiten.KeyA, ebiten.KeyJ}
	keysTurnLeft  = []ebiten.Key{ebiten.KeyLeft, ebiten.KeyQ}
	keysTurnRight = []ebiten.Key{ebiten.KeyRight, ebiten.KeyR}
	keysSprint    = []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight}
)

// MotionIntent reads the held keys as a movement intention.
func MotionIntent(ks input.KeyState) raycast.Motion {
	return raycast.Motion{
		Forward: input.Axis(ks, keysForward, keysBack),
		Strafe:  input.Axis(ks, keysRight, keysLeft),
		Turn:    input.Axis(ks, keysTurnRight, keysTurnLeft),
		Sprint:  input.AnyPressed(ks, keysSprint...),
	}
}

// GridIntent maps a key press to a selection step on a wrapping grid.
func GridIntent(ev input.Event) (dRow, dCol int, ok bool) {
	switch {
	case ev.Is(ebiten.KeyUp, ebiten.KeyW):
		return -1, 0, true
	case ev.Is(ebiten.KeyDown, ebiten.KeyS):
		return 1, 0, true
	case ev.Is(ebiten.KeyLeft, ebiten.KeyA):
		return 0, -1, true
	case ev.Is(ebiten.KeyRight, ebiten.KeyD):
		return 0, 1, true
	}
	return 0, 0, false
}

// ListIntent maps a key press to a step through a vertical list.
func ListIntent(ev input.Event) (delta int, ok bool) {
	switch {
	case ev.Is(ebiten.KeyUp, ebiten.KeyW):
		return -1, true
	case ev.Is(ebiten.KeyDown, ebiten.KeyS):
		return 1, true
	}
	return 0, false
}

// Wrap steps i by delta through n items, wrapping at both ends.
func Wrap(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
