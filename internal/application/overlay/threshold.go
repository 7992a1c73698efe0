package overlay

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
)

// Icon is the glyph shown on a threshold card.
type Icon int

const (
	IconTriangle Icon = iota
	IconSquare
	IconCircle
	IconDiamond
	iconCount
)

const (
	thresholdW    = 460
	thresholdH    = 120
	thresholdFade = 5.0
)

// ThresholdOptions configures NewThreshold.
type ThresholdOptions struct {
	Faces       *assets.Faces
	Theme       config.ThemeConfig
	Sectors     []string
	Levels      []string
	MinDuration float64
	MaxDuration float64
	Width       int
	Height      int
	Rand        *rand.Rand
}

// Threshold is a self-closing warning card at a random position.
type Threshold struct {
	life     *Lifecycle
	faces    *assets.Faces
	theme    config.ThemeConfig
	Text     string
	Sector   string
	Level    string
	Icon     Icon
	Rect     image.Rectangle
	duration float64
	elapsed  float64
}

// NewThreshold rolls a card.
func NewThreshold(opt ThresholdOptions) *Threshold {
	rng := opt.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	pick := func(xs []string, def string) string {
		if len(xs) == 0 {
			return def
		}
		return xs[rng.Intn(len(xs))]
	}
	lo, hi := opt.MinDuration, math.Max(opt.MinDuration, opt.MaxDuration)
	if lo <= 0 {
		lo, hi = 1.8, 3.0
	}

	x := 20 + rng.Intn(max(22, opt.Width-thresholdW-22)-20+1)
	y := 90 + rng.Intn(max(92, opt.Height-220-thresholdH)-90+1)

	return &Threshold{
		life:     NewLifecycle(thresholdFade, nil),
		faces:    opt.Faces,
		theme:    opt.Theme,
		Text:     "THRESHOLD ACTIVITY SPIKE DETECTED",
		Sector:   pick(opt.Sectors, "Executive"),
		Level:    pick(opt.Levels, "HIGH"),
		Icon:     Icon(rng.Intn(int(iconCount))),
		Rect:     image.Rect(x, y, x+thresholdW, y+thresholdH),
		duration: lo + rng.Float64()*(hi-lo),
	}
}

// Duration returns how long the card stays before closing itself.
func (t *Threshold) Duration() float64 {
	return t.duration
}

// Lifecycle exposes the phase machine.
func (t *Threshold) Lifecycle() *Lifecycle {
	return t.life
}

func (t *Threshold) Update(dt float64) {
	t.elapsed += dt
	t.life.Advance(dt)
	if t.elapsed >= t.duration {
		t.life.Close()
	}
}

func (t *Threshold) Close()     { t.life.Close() }
func (t *Threshold) Done() bool { return t.life.Done() }
func (t *Threshold) Dispose()   { t.life.Dispose() }

func (t *Threshold) DismissibleBy(k ebiten.Key) bool {
	return k == ebiten.KeyEscape
}

func (t *Threshold) levelColor() color.RGBA {
	switch t.Level {
	case "LOW":
		return color.RGBA{80, 220, 80, 255}
	case "MEDIUM":
		return color.RGBA{230, 200, 60, 255}
	case "CRITICAL":
		return color.RGBA{255, 40, 40, 255}
	}
	return color.RGBA{230, 120, 40, 255}
}

func (t *Threshold) Draw(screen *ebiten.Image) {
	e := t.life.Ease()
	a := func(c color.RGBA) color.RGBA {
		return color.RGBA{uint8(float64(c.R) * e), uint8(float64(c.G) * e), uint8(float64(c.B) * e), uint8(float64(c.A) * e)}
	}
	r := t.Rect
	render.FillRect(screen, r, a(color.RGBA{0, 20 * 220 / 255, 0, 220}))
	render.StrokeRect(screen, r, a(t.theme.Alert.RGBA()))
	render.StrokeRect(screen, r.Inset(3), a(t.theme.Border.RGBA()))

	lvl := t.levelColor()
	drawIcon(screen, t.Icon, float32(r.Min.X+40), float32(r.Min.Y+r.Dy()/2), 22, a(lvl))

	tx := float64(r.Min.X + 80)
	render.Text(screen, t.Text, t.faces.Face(22, true), tx, float64(r.Min.Y+16), a(t.theme.FG.RGBA()))
	render.Text(screen, "Sector: "+t.Sector, t.faces.Face(18, false), tx, float64(r.Min.Y+52), a(t.theme.Accent.RGBA()))
	render.Text(screen, "Level: "+t.Level, t.faces.Face(18, true), tx, float64(r.Min.Y+78), a(lvl))
	render.Text(screen, "ESC dismiss", t.faces.Face(14, false), float64(r.Max.X-100), float64(r.Max.Y-20), a(t.theme.Muted.RGBA()))
}

func drawIcon(dst *ebiten.Image, ic Icon, cx, cy, s float32, clr color.RGBA) {
	switch ic {
	case IconSquare:
		vector.FillRect(dst, cx-s*0.7, cy-s*0.7, s*1.4, s*1.4, clr, false)
		return
	case IconCircle:
		vector.FillCircle(dst, cx, cy, s*0.8, clr, true)
		return
	}

	var p vector.Path
	if ic == IconDiamond {
		p.MoveTo(cx, cy-s)
		p.LineTo(cx+s, cy)
		p.LineTo(cx, cy+s)
		p.LineTo(cx-s, cy)
	} else {
		p.MoveTo(cx, cy-s)
		p.LineTo(cx+s, cy+s*0.8)
		p.LineTo(cx-s, cy+s*0.8)
	}
	p.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(clr)
	vector.FillPath(dst, &p, &vector.FillOptions{}, op)
}
