package overlay

import (
	"image"
	"image/color"
	"log"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
)

// DefaultQuotes are shown when no quote file is available.
var DefaultQuotes = []string{
	"You'll take care of it; this crisis will be last winter's snow.",
	"This song is a present from my friends to you.",
	"Better than somebody with no face at all.",
	"Earth is a cyclical song.",
}

const maxQuotes = 4

// Player is the part of a sound track the Ahti overlay controls.
type Player interface {
	Play()
	Close() error
}

// AhtiOptions configures NewAhti.
type AhtiOptions struct {
	Faces    *assets.Faces
	Theme    config.ThemeConfig
	Portrait *ebiten.Image // may be nil
	Quotes   []string
	Song     Player // may be nil; closed on dispose
	Rate     float64
	Width    int
	Height   int
	Rand     *rand.Rand
}

// Ahti shows the janitor's portrait and a few quotes while his song loops.
type Ahti struct {
	life   *Lifecycle
	opt    AhtiOptions
	quotes []string
	blink  float64
	panel  image.Rectangle
	photo  float64 // portrait scale
}

// NewAhti opens the overlay and starts the song.
func NewAhti(opt AhtiOptions) *Ahti {
	quotes := append([]string(nil), opt.Quotes...)
	if len(quotes) == 0 {
		quotes = append(quotes, DefaultQuotes...)
	}
	if opt.Rand != nil {
		opt.Rand.Shuffle(len(quotes), func(i, j int) { quotes[i], quotes[j] = quotes[j], quotes[i] })
	}
	if len(quotes) > maxQuotes {
		quotes = quotes[:maxQuotes]
	}

	a := &Ahti{opt: opt, quotes: quotes}
	a.life = NewLifecycle(opt.Rate, a.release)
	a.layout()

	if opt.Song != nil {
		opt.Song.Play()
	}
	return a
}

func (a *Ahti) layout() {
	w, h := a.opt.Width, a.opt.Height
	photoW := 240
	a.photo = 1
	if p := a.opt.Portrait; p != nil {
		maxH := float64(h) * 0.30
		a.photo = min(1, maxH/float64(p.Bounds().Dy()))
		photoW = int(float64(p.Bounds().Dx()) * a.photo)
	}
	pw, ph := int(float64(w)*0.52), int(float64(h)*0.60)
	px := min(w-pw-40, 40+photoW+40)
	a.panel = image.Rect(px, 90, px+pw, 90+ph)
}

func (a *Ahti) release() {
	if a.opt.Song == nil {
		return
	}
	if err := a.opt.Song.Close(); err != nil {
		log.Printf("[overlay] ahti release: %v", err)
	}
}

// Quotes returns the quotes on display.
func (a *Ahti) Quotes() []string {
	return a.quotes
}

// Lifecycle exposes the phase machine.
func (a *Ahti) Lifecycle() *Lifecycle {
	return a.life
}

func (a *Ahti) Update(dt float64) {
	a.blink += dt
	a.life.Advance(dt)
}

func (a *Ahti) Close()     { a.life.Close() }
func (a *Ahti) Done() bool { return a.life.Done() }
func (a *Ahti) Dispose()   { a.life.Dispose() }

func (a *Ahti) DismissibleBy(k ebiten.Key) bool {
	return k == ebiten.KeyJ
}

func (a *Ahti) Draw(screen *ebiten.Image) {
	w := float64(screen.Bounds().Dx())
	t := a.life.Progress()
	e := a.life.Ease()
	f := a.opt.Faces
	alpha := func(c config.RGB, k float64) color.RGBA { return c.Alpha(uint8(255 * k)) }

	va := uint8(180 * e)
	render.Veil(screen, config.RGB{10, 8, 0}.Alpha(va))
	render.Text(screen, "Ahti speaks…", f.Face(28, true), 24, 24, alpha(config.RGB{230, 230, 210}, t))

	if p := a.opt.Portrait; p != nil {
		dy := (1 - e) * 20
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(a.photo, a.photo)
		op.GeoM.Translate(40, 90-dy)
		op.ColorScale.ScaleAlpha(float32(t))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(p, op)
		pw, ph := float64(p.Bounds().Dx())*a.photo, float64(p.Bounds().Dy())*a.photo
		render.Stroke(screen, 40, 90-dy, pw, ph, a.opt.Theme.Border.RGBA())
	}

	start := w + 40
	x := start + (float64(a.panel.Min.X)-start)*e
	panel := a.panel.Add(image.Pt(int(x)-a.panel.Min.X, 0))
	render.FillRect(screen, panel, color.RGBA{0, uint8(30 * t * 140 / 255), 0, uint8(140 * t)})
	render.StrokeRect(screen, panel, a.opt.Theme.Border.RGBA())

	tx, ty := float64(panel.Min.X+16), float64(panel.Min.Y+14)
	render.Text(screen, "Press J to dismiss", f.Small(), tx, ty, alpha(config.RGB{160, 180, 160}, t))
	ty += 28

	body := f.Face(20, false)
	lh := render.LineHeight(body)
	maxW := float64(panel.Dx()) - 32 - render.Width("» ", body)
	for _, q := range a.quotes {
		for _, line := range render.Wrap(q, maxW, render.FaceMeasure(body)) {
			render.Text(screen, "» "+line, body, tx, ty, a.opt.Theme.FG.RGBA())
			ty += lh + 6
		}
		ty += 8
	}
	render.Text(screen, "Quotes: Control / Alan Wake II", f.Small(), tx, float64(panel.Max.Y-26), alpha(config.RGB{140, 160, 140}, t))

	if render.Blink(a.blink, 0.5) && t > 0.2 {
		render.Text(screen, "●", f.Small(), w-28, 26, color.RGBA{200, 60, 60, 255})
	}
}
