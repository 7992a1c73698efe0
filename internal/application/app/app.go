// Package app provides the terminal's main loop: it owns the active scene
// and overlay, routes input, and composites the frame.
package app

import (
	"context"
	"errors"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/overlay"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/domain/timer"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
	"github.com/younwookim/fbcterm/internal/infrastructure/sound"
)

const (
	infoSeconds = 2.5
	infoHeight  = 26
	infoAlpha   = 140
)

// Input is where the App reads events and held keys.
type Input interface {
	Poll() []input.Event
	input.KeyState
}

// Options wires an App.
type Options struct {
	Config   *config.TerminalConfig
	Faces    *assets.Faces
	Library  *assets.Library
	Audio    *sound.Mixer
	Input    Input
	Rand     *rand.Rand
	Scenes   scene.Registry
	Start    scene.ID
	OnToggle func() // fullscreen toggle, defaults to ebiten's
}

// App implements ebiten.Game and scene.Host.
type App struct {
	cfg     *config.TerminalConfig
	faces   *assets.Faces
	lib     *assets.Library
	audio   *sound.Mixer
	input   Input
	rng     *rand.Rand
	scenes  *scene.Manager
	routes  scene.Registry
	overlay overlay.Overlay

	info      timer.Flash[string]
	quitAt    *timer.Countdown
	threshold *timer.Countdown
	quitting  bool
	clock     float64
	dt        float64
	toggle    func()
}

// New creates the App and queues the start scene. The scene is entered on
// the first Update.
func New(opt Options) *App {
	if opt.Config == nil {
		opt.Config = config.Default()
	}
	if opt.Audio == nil {
		opt.Audio = sound.NewMixer(nil, nil)
	}
	if opt.Rand == nil {
		opt.Rand = rand.New(rand.NewSource(1))
	}
	if opt.OnToggle == nil {
		opt.OnToggle = func() { ebiten.SetFullscreen(!ebiten.IsFullscreen()) }
	}
	a := &App{
		cfg:    opt.Config,
		faces:  opt.Faces,
		lib:    opt.Library,
		audio:  opt.Audio,
		input:  opt.Input,
		rng:    opt.Rand,
		routes: opt.Scenes,
		dt:     opt.Config.DT(),
		toggle: opt.OnToggle,
	}
	a.scenes = scene.NewManager(a)
	a.scheduleThreshold()
	a.Goto(opt.Start)
	return a
}

// SetDT overrides the frame step, for tests.
func (a *App) SetDT(dt float64) {
	a.dt = dt
}

// Update advances one frame. It returns ebiten.Termination once quitting.
func (a *App) Update() error {
	if a.quitting {
		return ebiten.Termination
	}
	a.scenes.Commit()
	a.clock += a.dt

	var events []input.Event
	if a.input != nil {
		events = a.input.Poll()
	}

	a.quitAt.Tick(a.dt)
	a.threshold.Tick(a.dt)
	a.info.Tick(a.dt)

	for _, ev := range events {
		if ev.Kind == input.KindKey {
			a.audio.KeyClick(a.clock)
		}
	}

	if a.overlay != nil {
		for _, ev := range events {
			if ev.Kind == input.KindKey && a.overlay.DismissibleBy(ev.Key) {
				a.overlay.Close()
			}
		}
		a.overlay.Update(a.dt)
		if a.overlay.Done() {
			a.overlay = nil
		}
	} else if active := a.scenes.Active(); active != nil {
		for _, ev := range events {
			if a.overlay != nil {
				// opened by an earlier event this frame
				break
			}
			if a.global(ev, active) {
				continue
			}
			active.Handle(ev)
		}
		if a.overlay == nil {
			active.Update(a.dt)
		}
	}

	if a.quitting {
		return ebiten.Termination
	}
	return nil
}

// global handles the keys the App reserves. It reports whether ev was
// consumed.
func (a *App) global(ev input.Event, active scene.Scene) bool {
	if ev.Kind != input.KindKey {
		return false
	}
	switch ev.Key {
	case ebiten.KeyF11:
		a.ToggleFullscreen()
		return true
	case ebiten.KeyJ:
		if c, ok := active.(scene.KeyCapturer); ok && c.Captures(ev.Key) {
			return false
		}
		a.openAhti()
		return true
	}
	return false
}

func (a *App) openAhti() {
	ov := a.cfg.Overlays.Ahti
	quotes := assets.ReadLines(a.cfg.Asset(a.cfg.Paths.AhtiQuotes))
	if len(quotes) == 0 {
		quotes = ov.Quotes
	}

	opt := overlay.AhtiOptions{
		Faces:  a.faces,
		Theme:  a.cfg.Theme,
		Quotes: quotes,
		Rate:   ov.Rate,
		Width:  a.cfg.Display.ScreenWidth,
		Height: a.cfg.Display.ScreenHeight,
		Rand:   a.rng,
	}
	if a.lib != nil {
		opt.Portrait = a.lib.Ahti()
	}
	if a.audio.Enabled() {
		track, err := a.audio.Open(context.Background(), a.cfg.Asset(a.cfg.Paths.AhtiSong), true)
		switch {
		case err == nil:
			track.SetVolume(ov.Volume)
			opt.Song = track
		case errors.Is(err, sound.ErrTranscodeUnavailable):
			a.PushInfo("Ahti's song needs ffmpeg.")
		default:
			log.Printf("[audio] ahti song: %v", err)
		}
	}
	a.SetOverlay(overlay.NewAhti(opt))
}

func (a *App) scheduleThreshold() {
	th := a.cfg.Overlays.Threshold
	if !th.Enabled {
		return
	}
	delay := th.MinDelay + a.rng.Float64()*(th.MaxDelay-th.MinDelay)
	a.threshold = timer.NewCountdown(delay, func() {
		if a.overlay == nil {
			a.showThreshold()
		}
		a.scheduleThreshold()
	})
}

func (a *App) showThreshold() {
	th := a.cfg.Overlays.Threshold
	a.audio.Play(sound.BeepThreshold)
	a.SetOverlay(overlay.NewThreshold(overlay.ThresholdOptions{
		Faces:       a.faces,
		Theme:       a.cfg.Theme,
		Sectors:     th.Sectors,
		Levels:      th.Levels,
		MinDuration: th.MinDuration,
		MaxDuration: th.MaxDuration,
		Width:       a.cfg.Display.ScreenWidth,
		Height:      a.cfg.Display.ScreenHeight,
		Rand:        a.rng,
	}))
}

// Draw composites scene, info bar, overlay and scanlines.
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(a.cfg.Theme.BG.RGBA())
	if active := a.scenes.Active(); active != nil {
		active.Draw(screen)
	}

	if msg, ok := a.info.Tag(); ok && a.faces != nil {
		w := float64(screen.Bounds().Dx())
		render.Fill(screen, 0, 0, w, infoHeight, config.RGB{}.Alpha(infoAlpha))
		render.TextMiddle(screen, msg, a.faces.Face(18, false), w/2, infoHeight/2, a.cfg.Theme.FG.RGBA())
	}

	if a.overlay != nil {
		a.overlay.Draw(screen)
	}
	render.Scanlines(screen, a.cfg.Display.Scanlines)
}

// Layout returns the configured logical size.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.cfg.Display.ScreenWidth, a.cfg.Display.ScreenHeight
}

// Shutdown releases the active scene and overlay. Call it after
// ebiten.RunGame returns.
func (a *App) Shutdown() {
	a.scenes.Shutdown()
	if a.overlay != nil {
		a.overlay.Dispose()
	}
	a.overlay = nil
}

// Active returns the active scene.
func (a *App) Active() scene.Scene {
	return a.scenes.Active()
}

// Quitting reports whether the App will terminate on the next Update.
func (a *App) Quitting() bool {
	return a.quitting
}

// Info returns the info bar message, if one is showing.
func (a *App) Info() (string, bool) {
	return a.info.Tag()
}
