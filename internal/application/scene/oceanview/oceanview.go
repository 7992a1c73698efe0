// Package oceanview provides the first-person walk through the Oceanview
// Motel, rendered with the raycaster.
package oceanview

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/system"
	"github.com/younwookim/fbcterm/internal/domain/raycast"
	"github.com/younwookim/fbcterm/internal/domain/timer"
	"github.com/younwookim/fbcterm/internal/ecs"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
)

const (
	reach       = 0.9
	messageTime = 1.4
	tipLine     = "[WASD / IJKL / Up Down] move  [Left Right / Q R] turn  [Shift] run  [E] interact  [F11] fullscreen  [ESC] back"
)

var (
	colorTip      = color.RGBA{160, 230, 160, 255}
	colorMessage  = color.RGBA{200, 240, 200, 255}
	colorLabel    = color.RGBA{230, 230, 210, 255}
	colorLabelBox = color.RGBA{0, 0, 0, 110}
)

// Source loads a fresh copy of the level each time the scene is entered.
type Source func() (*system.Level, error)

// Oceanview is the raycast walking scene.
type Oceanview struct {
	scene.Base
	source  Source
	level   *system.Level
	doors   map[raycast.Coord]raycast.Code
	pose    raycast.Pose
	camera  raycast.Camera
	props   *ecs.World
	message timer.Flash[string]
	surface config.SurfaceConfig
	floor   *ebiten.Image
	err     error
}

// Factory returns a scene factory reading the level from src.
func Factory(src Source) scene.Factory {
	return func(h scene.Host) scene.Scene {
		return New(h, src)
	}
}

// New creates the scene. The level is loaded on Enter.
func New(h scene.Host, src Source) *Oceanview {
	cfg := h.Config()
	return &Oceanview{
		Base:   scene.Base{Host: h},
		source: src,
		camera: raycast.DefaultCamera(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight),
		props:  ecs.NewWorld(),
	}
}

func (s *Oceanview) Enter() {
	if s.source == nil {
		s.err = fmt.Errorf("no map source")
		return
	}
	lvl, err := s.source()
	if err != nil {
		s.err = err
		log.Printf("[oceanview] %v", err)
		s.Host.PushInfo("Oceanview map unavailable.")
		return
	}
	s.level = lvl
	s.pose = lvl.Spawn
	s.doors = make(map[raycast.Coord]raycast.Code)
	lvl.Doors.Each(func(c raycast.Coord) {
		s.doors[c] = lvl.Grid.At(c.X, c.Y)
	})
	s.props.SpawnAll(lvl.Props)
	s.surface = lvl.Surface
}

// Captures claims the strafe and turn letters, J included.
func (s *Oceanview) Captures(k ebiten.Key) bool {
	switch k {
	case ebiten.KeyJ, ebiten.KeyL, ebiten.KeyI, ebiten.KeyK, ebiten.KeyQ, ebiten.KeyR:
		return s.level != nil
	}
	return false
}

func (s *Oceanview) Handle(ev input.Event) {
	switch {
	case ev.Is(ebiten.KeyEscape):
		s.Host.Goto(scene.Menu)
	case ev.Is(ebiten.KeyE):
		s.interact()
	}
}

// Pose returns the player pose.
func (s *Oceanview) Pose() raycast.Pose { return s.pose }

// Message returns the HUD message, if one is showing.
func (s *Oceanview) Message() (string, bool) { return s.message.Tag() }

// Level returns the loaded level, nil if loading failed.
func (s *Oceanview) Level() *system.Level { return s.level }

// Err returns the load error, if any.
func (s *Oceanview) Err() error { return s.err }

// interact toggles the door just ahead of the player.
func (s *Oceanview) interact() {
	if s.level == nil {
		return
	}
	x, y := s.pose.Ahead(reach)
	c := raycast.Pose{X: x, Y: y}.Cell()
	g := s.level.Grid

	code := g.At(c.X, c.Y)
	switch {
	case code.IsDoor() && s.level.Exits.Has(c):
		s.Host.PushInfo("Leaving Oceanview.")
		s.Host.Goto(scene.Menu)
	case code.IsDoor():
		g.Set(c.X, c.Y, raycast.CodeEmpty)
		s.say("Door opened.")
	case code == raycast.CodeEmpty && s.level.Doors.Has(c):
		if s.pose.Cell() == c {
			s.say("Step out of the doorway first.")
			return
		}
		g.Set(c.X, c.Y, s.doors[c])
		s.say("Door closed.")
	}
}

func (s *Oceanview) say(msg string) {
	s.message.Set(msg, messageTime)
}

func (s *Oceanview) Update(dt float64) {
	s.message.Tick(dt)
	if s.level == nil {
		return
	}
	s.pose.Step(s.level.Grid, system.MotionIntent(s.Host.Keys()), raycast.DefaultSpeeds, dt)
	s.props.Update(dt)
}

func (s *Oceanview) Draw(screen *ebiten.Image) {
	faces := s.Host.Faces()
	if s.level == nil {
		th := s.Host.Config().Theme
		w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
		render.TextMiddle(screen, "Oceanview is closed: map could not be loaded.", faces.UI(), float64(w)/2, float64(h)/2, th.Alert.RGBA())
		render.TextMiddle(screen, "ESC: back", faces.Small(), float64(w)/2, float64(h)/2+30, th.Muted.RGBA())
		return
	}

	s.drawSurfaces(screen)

	hits := raycast.Cast(s.level.Grid, s.pose, s.camera)
	for x, hit := range hits {
		sl := s.level.Shader.Slice(hit, s.camera)
		render.Fill(screen, float64(x), float64(sl.Top), 1, float64(sl.Height), sl.Color)
		render.Fill(screen, float64(x), float64(sl.BaseTop), 1, float64(sl.BaseH), sl.Baseboard)
	}

	s.drawLabels(screen, raycast.CollectLabels(hits, s.level.Grid, s.camera, s.level.Shader.LabelDistance))

	for _, d := range raycast.Composite(s.props.Sprites(), s.pose, s.camera, raycast.DepthBuffer(hits)) {
		if d.Halo() {
			c := d.Sprite.Color
			c.A = d.Sprite.Emissive
			render.Glow(screen, image.Rect(d.Left, d.Top, d.Left+d.Width, d.Top+d.Height), c)
		}
		for _, run := range d.Runs {
			render.Fill(screen, float64(run.X0), float64(d.Top), float64(run.X1-run.X0), float64(d.Height), d.Sprite.Color)
		}
	}

	small := faces.Face(18, false)
	render.Text(screen, tipLine, small, 12, 10, colorTip)
	if msg, ok := s.message.Tag(); ok {
		render.Text(screen, msg, small, 12, float64(screen.Bounds().Dy()-26), colorMessage)
	}
}

func (s *Oceanview) drawSurfaces(dst *ebiten.Image) {
	sf := s.surface
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	horizon := s.camera.Horizon()

	render.Fill(dst, 0, 0, float64(w), float64(horizon), sf.Ceiling.RGBA())
	if cell := sf.CeilingCell; cell > 0 {
		line := sf.CeilingLine.RGBA()
		for y := 0; y < horizon; y += cell {
			render.Fill(dst, 0, float64(y), float64(w), 1, line)
		}
		for x := 0; x < w; x += cell {
			render.Fill(dst, float64(x), 0, 1, float64(horizon), line)
		}
	}

	render.Fill(dst, 0, float64(horizon), float64(w), float64(h-horizon), sf.Floor.RGBA())
	if s.floor == nil || s.floor.Bounds().Dx() != w || s.floor.Bounds().Dy() != h-horizon {
		s.floor = checker(w, h-horizon, sf)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(horizon))
	dst.DrawImage(s.floor, op)
}

// checker builds the translucent floor pattern once per size.
func checker(w, h int, sf config.SurfaceConfig) *ebiten.Image {
	img := ebiten.NewImage(max(1, w), max(1, h))
	cell := sf.CheckerCell
	if cell <= 0 {
		return img
	}
	a, b := sf.CheckerA.Alpha(sf.CheckerAlpha), sf.CheckerB.Alpha(sf.CheckerAlpha)
	for y := 0; y < h; y += cell {
		for x := 0; x < w; x += cell {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			render.Fill(img, float64(x), float64(y), float64(cell), float64(cell), c)
		}
	}
	return img
}

func (s *Oceanview) drawLabels(dst *ebiten.Image, labels []raycast.DoorLabel) {
	face := s.Host.Faces().Face(18, true)
	const pad = 4
	for _, l := range labels {
		tw := render.Width(l.Text, face)
		th := render.LineHeight(face)
		cx := float64(l.CenterX())
		bottom := float64(max(0, l.Top-6))
		box := image.Rect(int(cx-tw/2)-pad, int(bottom-th)-pad, int(cx+tw/2)+pad, int(bottom)+pad)
		render.FillRect(dst, box, colorLabelBox)
		render.Text(dst, l.Text, face, cx-tw/2, bottom-th, colorLabel)
	}
}
