// Package hotline is the Hotline Chamber: a ringing red phone that plays a
// transmission when answered.
package hotline

import (
	"context"
	"image"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/domain/hotline"
	"github.com/younwookim/fbcterm/internal/domain/timer"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/sound"
)

const (
	phoneFile   = "hotline_phone.png"
	ringFile    = "hotline_ring.mp3"
	messageFile = "hotline_message.mp3"

	ringInterval  = 2.0
	ringVolume    = 0.35
	messageVolume = 0.9
	wobbleBand    = 4
)

var (
	phoneBody   = color.RGBA{160, 20, 20, 255}
	phoneEdge   = color.RGBA{210, 40, 40, 255}
	handsetBody = color.RGBA{200, 32, 32, 255}
	handsetEdge = color.RGBA{240, 60, 60, 255}
	glitchRed   = color.RGBA{200, 60, 60, 255}
)

// Scene is the Hotline Chamber.
type Scene struct {
	scene.Base
	call    *hotline.Call
	ring    *sound.Track
	message *sound.Track
	ticker  *timer.Cooldown
	rings   int
	phone   image.Image
	phoneTx *ebiten.Image
	room    *ebiten.Image
	wobble  bool
	t       float64
}

// New creates the Hotline Chamber.
func New(h scene.Host) scene.Scene {
	return &Scene{Base: scene.Base{Host: h}, wobble: true, ticker: timer.NewCooldown(ringInterval)}
}

func (s *Scene) Enter() {
	cfg := s.Host.Config()
	dir := cfg.Asset(cfg.Paths.Hotline)

	if img, err := assets.DecodeImage(filepath.Join(dir, phoneFile)); err == nil {
		s.phone = img
	}
	if s.ring = s.open(filepath.Join(dir, ringFile), true); s.ring != nil {
		s.ring.SetVolume(ringVolume)
	}
	if s.message = s.open(filepath.Join(dir, messageFile), false); s.message != nil {
		s.message.SetVolume(messageVolume)
	}

	s.call = hotline.New(hotline.Hooks{
		Ringing:   s.startRinging,
		Connected: s.connect,
	})
	s.startRinging()
}

// open returns nil when path is absent or cannot be played.
func (s *Scene) open(path string, loop bool) *sound.Track {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	t, err := s.Host.Audio().Open(context.Background(), path, loop)
	if err != nil {
		log.Printf("[audio] %s: %v", path, err)
		return nil
	}
	return t
}

func (s *Scene) Exit() error {
	var err error
	if e := s.ring.Close(); e != nil {
		err = e
	}
	if e := s.message.Close(); e != nil {
		err = e
	}
	if s.phoneTx != nil {
		s.phoneTx.Deallocate()
	}
	if s.room != nil {
		s.room.Deallocate()
	}
	return err
}

func (s *Scene) startRinging() {
	if s.message != nil {
		s.message.Stop()
	}
	if s.ring != nil {
		s.ring.Restart()
		return
	}
	s.ringOnce()
}

func (s *Scene) ringOnce() {
	s.rings++
	s.Host.Audio().Play(sound.BeepRing)
	s.ticker.Start()
}

func (s *Scene) connect() {
	if s.ring != nil {
		s.ring.Stop()
	}
	if s.message == nil {
		s.Host.Audio().Play(sound.BeepFlash)
		s.Host.PushInfo("No transmission on this line.")
		return
	}
	s.message.Restart()
}

// Call returns the phone state machine.
func (s *Scene) Call() *hotline.Call { return s.call }

// Rings returns how many synthesized ring bursts have played.
func (s *Scene) Rings() int { return s.rings }

// Wobble reports whether the picture distortion is on.
func (s *Scene) Wobble() bool { return s.wobble }

func (s *Scene) Handle(ev input.Event) {
	switch {
	case ev.Is(ebiten.KeyEscape, ebiten.KeyQ):
		s.Host.Goto(scene.Menu)
	case ev.Is(ebiten.KeyE):
		s.call.Answer()
	case ev.Is(ebiten.KeyR):
		s.call.Reset()
	case ev.Is(ebiten.KeyF):
		s.wobble = !s.wobble
	}
}

func (s *Scene) Update(dt float64) {
	s.t += dt
	switch {
	case s.call.Ringing():
		if s.ring == nil && s.ticker.Tick(dt) {
			s.ringOnce()
		}
	case s.call.Connected():
		if s.message == nil || !s.message.Playing() {
			s.call.Hangup()
		}
	}
}

func (s *Scene) Draw(screen *ebiten.Image) {
	cfg := s.Host.Config()
	th := cfg.Theme
	faces := s.Host.Faces()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	if s.room == nil {
		s.room = ebiten.NewImage(w, h)
	}
	s.room.Fill(th.BG.RGBA())
	s.drawPhone(s.room, w/2, h*56/100)

	if s.wobble {
		for y := 0; y < h; y += wobbleBand {
			off := 2 * math.Sin(float64(y)*0.03+s.t*3.2)
			band, ok := s.room.SubImage(image.Rect(0, y, w, min(h, y+wobbleBand))).(*ebiten.Image)
			if !ok {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(math.Round(off), float64(y))
			screen.DrawImage(band, op)
		}
	} else {
		screen.DrawImage(s.room, nil)
	}
	render.Veil(screen, color.RGBA{0, 0, 0, 60})

	render.Text(screen, "HOTLINE CHAMBER", faces.Face(28, true), 24, 18, th.Accent.RGBA())
	msg := "Phone is ringing...  [E] Answer   [R] Reset   [F] Toggle wobble   [ESC] Back"
	if !s.call.Ringing() {
		msg = "Listening...  [R] Replay   [F] Toggle wobble   [ESC] Back"
	}
	render.Text(screen, msg, faces.Small(), 24, 54, th.Muted.RGBA())
	if s.call.Connected() && int(s.t*3)%2 == 0 {
		render.Text(screen, "RECEIVING TRANSMISSION...", faces.Small(), 24+2*math.Sin(s.t*8), 80, glitchRed)
	}
}

// drawPhone draws the phone centred on (cx, cy), shaking while it rings.
func (s *Scene) drawPhone(dst *ebiten.Image, cx, cy int) {
	if s.call.Ringing() && math.Mod(s.t, ringInterval) < 0.8 {
		cx += int(3 * math.Sin(s.t*40))
	}
	if s.phone != nil {
		if s.phoneTx == nil {
			s.phoneTx = ebiten.NewImageFromImage(s.phone)
		}
		b := s.phoneTx.Bounds()
		sc := min(1, float64(dst.Bounds().Dy())*0.85/float64(b.Dy()))
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(sc, sc)
		op.GeoM.Translate(float64(cx)-float64(b.Dx())*sc/2, float64(cy)-float64(b.Dy())*sc/2)
		dst.DrawImage(s.phoneTx, op)
		return
	}
	h := dst.Bounds().Dy()
	base := image.Rect(cx-90, h*53/100, cx+90, h*53/100+40)
	render.Panel(dst, base, phoneBody, phoneEdge)
	lift := 0
	if !s.call.Ringing() {
		lift = -24
	}
	handset := image.Rect(cx-120, h*50/100+lift, cx+120, h*50/100+22+lift)
	render.Panel(dst, handset, handsetBody, handsetEdge)
}
