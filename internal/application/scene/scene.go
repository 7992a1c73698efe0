// Package scene defines the Scene interface for terminal screens and the
// manager that switches between them.
//
// Each screen (splash, lock, menu, viewers, mini-games) implements the
// Scene interface to handle its own input, update logic and rendering.
package scene

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/overlay"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
	"github.com/younwookim/fbcterm/internal/infrastructure/sound"
)

// Scene represents a terminal screen.
//
// The application loop delegates Handle, Update and Draw calls to the
// active scene. Scene transitions are requested through Host.Switch and
// take effect at the next frame boundary.
type Scene interface {
	// Enter is called once after construction, before any other call.
	// It must return promptly; only local synchronous I/O is allowed.
	Enter()

	// Exit is called when leaving this scene. Use it to release players
	// and temp files. Errors are logged and otherwise ignored.
	Exit() error

	// Handle receives the discrete input events of the frame.
	Handle(ev input.Event)

	// Update advances the scene by dt seconds.
	Update(dt float64)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)
}

// KeyCapturer is implemented by scenes that need keys the application
// would otherwise consume, such as letters typed into a prompt.
type KeyCapturer interface {
	Captures(k ebiten.Key) bool
}

// Factory constructs a scene for the given host.
type Factory func(h Host) Scene

// Host is the application as seen by scenes.
type Host interface {
	Switch(f Factory)
	Goto(id ID)
	SetOverlay(o overlay.Overlay)
	Overlay() overlay.Overlay
	PushInfo(msg string)
	BeepOK()
	BeepError()
	ToggleFullscreen()
	Quit()
	ScheduleQuit(delay float64)
	Config() *config.TerminalConfig
	Faces() *assets.Faces
	Keys() input.KeyState
	Audio() *sound.Mixer
	Assets() *assets.Library
	Clock() float64
	Rand() *rand.Rand
}

// Base provides no-op implementations of the Scene methods. Scenes embed
// it and override what they need.
type Base struct {
	Host Host
}

func (Base) Enter()             {}
func (Base) Exit() error        { return nil }
func (Base) Handle(input.Event) {}
func (Base) Update(float64)     {}
func (Base) Draw(*ebiten.Image) {}
