// Package splash provides the boot screen.
package splash

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
)

// Splash shows the header and logo, then hands over to the lock screen
// or, when the lock is disabled, straight to the menu.
type Splash struct {
	scene.Base
	elapsed  float64
	finished bool
}

// New creates the splash scene.
func New(h scene.Host) scene.Scene {
	return &Splash{Base: scene.Base{Host: h}}
}

func (s *Splash) Handle(ev input.Event) {
	if ev.Is(ebiten.KeyEscape, ebiten.KeyEnter, ebiten.KeySpace) {
		s.finish()
	}
}

func (s *Splash) Update(dt float64) {
	s.elapsed += dt
	if s.elapsed >= s.Host.Config().Splash.Duration {
		s.finish()
	}
}

func (s *Splash) finish() {
	if s.finished {
		return
	}
	s.finished = true
	if s.Host.Config().Lock.Enabled {
		s.Host.Goto(scene.Lock)
		return
	}
	s.Host.Goto(scene.Menu)
}

func (s *Splash) Draw(screen *ebiten.Image) {
	th := s.Host.Config().Theme
	faces := s.Host.Faces()

	var logo *ebiten.Image
	if lib := s.Host.Assets(); lib != nil {
		logo = lib.Logo()
	}
	content := render.Header(screen, faces, th.Title+" - Terminal", logo, th.FG.RGBA())
	render.Text(screen, "Press ESC to skip", faces.Small(), float64(content.Min.X), float64(content.Min.Y-20), th.Muted.RGBA())

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	render.TextMiddle(screen, "Initializing subsystems...", faces.UI(), float64(w)/2, float64(h)/2+40, th.FG.RGBA())
}
