package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
)

var glyphs = []rune("01░▒▓/\\-_|<>#*+$@ABCDEF")

const (
	decryptFade = 6.0
	glyphRow    = 18
)

// DecryptOptions configures NewDecrypt.
type DecryptOptions struct {
	Faces    *assets.Faces
	Theme    config.ThemeConfig
	Logo     *ebiten.Image // may be nil
	Duration float64
	Width    int
	Height   int
	Rand     *rand.Rand
	OnDone   func()
}

// Decrypt plays the matrix-rain "decrypting" sequence and then calls
// OnDone exactly once.
type Decrypt struct {
	life    *Lifecycle
	opt     DecryptOptions
	elapsed float64
	phase   float64
	cols    int
	rows    int
	drops   []int
	fired   bool
}

// NewDecrypt starts the sequence.
func NewDecrypt(opt DecryptOptions) *Decrypt {
	if opt.Duration <= 0 {
		opt.Duration = 1.8
	}
	if opt.Rand == nil {
		opt.Rand = rand.New(rand.NewSource(1))
	}
	d := &Decrypt{
		life: NewLifecycle(decryptFade, nil),
		opt:  opt,
		cols: max(24, opt.Width/16),
		rows: max(10, opt.Height/glyphRow),
	}
	d.drops = make([]int, d.cols)
	for i := range d.drops {
		d.drops[i] = -d.opt.Rand.Intn(d.rows + 1)
	}
	return d
}

// Progress returns the decryption progress in [0, 1].
func (d *Decrypt) Progress() float64 {
	return math.Min(1, d.elapsed/d.opt.Duration)
}

// Lifecycle exposes the phase machine.
func (d *Decrypt) Lifecycle() *Lifecycle {
	return d.life
}

func (d *Decrypt) Update(dt float64) {
	d.life.Advance(dt)
	if d.fired {
		return
	}
	d.elapsed += dt
	d.phase += dt * 3

	for i := range d.drops {
		if d.opt.Rand.Float64() < 0.2 {
			d.drops[i]++
		}
		if d.drops[i] > d.rows {
			d.drops[i] = -d.opt.Rand.Intn(d.rows/2 + 1)
		}
	}

	if d.elapsed >= d.opt.Duration {
		d.fired = true
		if d.opt.OnDone != nil {
			d.opt.OnDone()
		}
		d.life.Close()
	}
}

func (d *Decrypt) Close()                        { d.life.Close() }
func (d *Decrypt) Done() bool                    { return d.life.Done() }
func (d *Decrypt) Dispose()                      { d.life.Dispose() }
func (d *Decrypt) DismissibleBy(ebiten.Key) bool { return false }

func (d *Decrypt) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	e := float32(d.life.Ease())
	f := d.opt.Faces
	th := d.opt.Theme

	layer := func(c color.RGBA) color.RGBA {
		return color.RGBA{uint8(float32(c.R) * e), uint8(float32(c.G) * e), uint8(float32(c.B) * e), uint8(float32(c.A) * e)}
	}

	render.Veil(screen, layer(color.RGBA{0, 20 * 180 / 255, 0, 180}))
	na := uint8(18 + 8*math.Sin(d.phase*2.2))
	render.Veil(screen, layer(color.RGBA{0, na, 0, na}))

	small := f.Small()
	colW := max(8, w/d.cols)
	accent := th.Accent.RGBA()
	for x, drop := range d.drops {
		for y := 0; y < drop && y < d.rows; y++ {
			ch := string(glyphs[d.opt.Rand.Intn(len(glyphs))])
			px, py := float64(x*colW), float64(y*glyphRow)
			render.TextShadow(screen, ch, small, px, py, 1, layer(accent), layer(color.RGBA{0, 50, 0, 255}))
		}
	}

	scanY := (math.Sin(d.phase*1.6)*0.5 + 0.5) * float64(h-2)
	render.Fill(screen, 0, scanY, float64(w), 2, layer(color.RGBA{0, 30 * 70 / 255, 0, 70}))
	render.Veil(screen, layer(color.RGBA{0, 0, 0, 160}))

	if logo := d.opt.Logo; logo != nil {
		s := float64(h/3) / float64(logo.Bounds().Dy())
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(float64(w)/2-float64(logo.Bounds().Dx())*s/2, float64(h)/2-float64(h/3)/2)
		op.ColorScale.ScaleAlpha(e)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(logo, op)
	}

	barW, barH := w/2, 14
	cy := int(float64(h) * 0.72)
	bar := image.Rect(w/2-barW/2, cy-barH/2, w/2+barW/2, cy+barH/2)
	render.Bar(screen, bar, math.Max(2/float64(barW), d.Progress()), layer(accent), layer(color.RGBA{20, 60, 20, 255}))
	label := fmt.Sprintf("DECRYPTING…  %3d%%", int(d.Progress()*100))
	render.TextCentered(screen, label, f.Face(22, true), float64(w)/2, float64(bar.Min.Y-26), layer(th.FG.RGBA()))
	render.Text(screen, "Decrypting secure channel…", small, 12, float64(h-26), layer(th.Muted.RGBA()))
}
