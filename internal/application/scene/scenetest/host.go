// Package scenetest provides a recording scene.Host for scene tests.
package scenetest

import (
	"math/rand"

	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/overlay"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
	"github.com/younwookim/fbcterm/internal/infrastructure/sound"
)

// Host records what a scene asks of the application. It has no faces,
// assets or audio output, so scenes under test must not Draw.
type Host struct {
	Cfg       *config.TerminalConfig
	Held      input.Held
	Mixer     *sound.Mixer
	Now       float64
	Switches  int
	Next      scene.Factory
	Gotos     []scene.ID
	Current   overlay.Overlay
	Infos     []string
	OKs       int
	Errors    int
	Toggles   int
	Quits     int
	QuitAfter []float64
	Rng       *rand.Rand
}

var _ scene.Host = (*Host)(nil)

// New returns a host over the default configuration.
func New() *Host {
	return &Host{
		Cfg:   config.Default(),
		Held:  input.Held{},
		Mixer: sound.NewMixer(nil, nil),
		Rng:   rand.New(rand.NewSource(1)),
	}
}

func (h *Host) Switch(f scene.Factory)         { h.Switches++; h.Next = f }
func (h *Host) Goto(id scene.ID)               { h.Gotos = append(h.Gotos, id) }
func (h *Host) SetOverlay(o overlay.Overlay)   { h.Current = o }
func (h *Host) Overlay() overlay.Overlay       { return h.Current }
func (h *Host) PushInfo(msg string)            { h.Infos = append(h.Infos, msg) }
func (h *Host) BeepOK()                        { h.OKs++ }
func (h *Host) BeepError()                     { h.Errors++ }
func (h *Host) ToggleFullscreen()              { h.Toggles++ }
func (h *Host) Quit()                          { h.Quits++ }
func (h *Host) ScheduleQuit(delay float64)     { h.QuitAfter = append(h.QuitAfter, delay) }
func (h *Host) Config() *config.TerminalConfig { return h.Cfg }
func (h *Host) Faces() *assets.Faces           { return nil }
func (h *Host) Keys() input.KeyState           { return h.Held }
func (h *Host) Audio() *sound.Mixer            { return h.Mixer }
func (h *Host) Assets() *assets.Library        { return nil }
func (h *Host) Clock() float64                 { return h.Now }
func (h *Host) Rand() *rand.Rand               { return h.Rng }

// LastGoto returns the most recent navigation target, "" when none.
func (h *Host) LastGoto() scene.ID {
	if len(h.Gotos) == 0 {
		return ""
	}
	return h.Gotos[len(h.Gotos)-1]
}

// LastInfo returns the most recent info message, "" when none.
func (h *Host) LastInfo() string {
	if len(h.Infos) == 0 {
		return ""
	}
	return h.Infos[len(h.Infos)-1]
}

// Type feeds s to sc as character events.
func Type(sc scene.Scene, s string) {
	for _, r := range s {
		sc.Handle(input.Char(r))
	}
}

// Press feeds key presses to sc.
func Press(sc scene.Scene, keys ...input.Event) {
	for _, ev := range keys {
		sc.Handle(ev)
	}
}
