package app

import (
	"log"
	"math/rand"

	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/overlay"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/domain/timer"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
	"github.com/younwookim/fbcterm/internal/infrastructure/sound"
)

var _ scene.Host = (*App)(nil)

func (a *App) Switch(f scene.Factory) {
	a.scenes.Switch(f)
}

func (a *App) Goto(id scene.ID) {
	f, ok := a.routes.Lookup(id)
	if !ok {
		log.Printf("[scene] no screen registered for %q", id)
		a.PushInfo("Not available.")
		return
	}
	a.scenes.Switch(f)
}

// SetOverlay replaces the active overlay. A replaced overlay is disposed
// immediately so its resources are released.
func (a *App) SetOverlay(o overlay.Overlay) {
	if a.overlay != nil && a.overlay != o {
		a.overlay.Dispose()
	}
	a.overlay = o
}

func (a *App) Overlay() overlay.Overlay { return a.overlay }

func (a *App) PushInfo(msg string) {
	a.info.Set(msg, infoSeconds)
}

func (a *App) BeepOK()    { a.audio.Play(sound.BeepOK) }
func (a *App) BeepError() { a.audio.Play(sound.BeepError) }

func (a *App) ToggleFullscreen() {
	a.toggle()
}

func (a *App) Quit() {
	a.quitting = true
}

// ScheduleQuit quits after delay seconds. Later calls do not postpone an
// already scheduled quit.
func (a *App) ScheduleQuit(delay float64) {
	if a.quitAt.Pending() {
		return
	}
	a.quitAt = timer.NewCountdown(delay, a.Quit)
}

func (a *App) Config() *config.TerminalConfig { return a.cfg }
func (a *App) Faces() *assets.Faces           { return a.faces }
func (a *App) Assets() *assets.Library        { return a.lib }
func (a *App) Audio() *sound.Mixer            { return a.audio }
func (a *App) Clock() float64                 { return a.clock }
func (a *App) Rand() *rand.Rand               { return a.rng }

func (a *App) Keys() input.KeyState {
	if a.input == nil {
		return input.Held{}
	}
	return a.input
}
