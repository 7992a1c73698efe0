// Package quarry provides the Black Rock Quarry extraction mini-game.
package quarry

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/system"
	"github.com/younwookim/fbcterm/internal/domain/quarry"
	"github.com/younwookim/fbcterm/internal/domain/timer"
)

// Colors for rendering
var (
	colorRich    = color.RGBA{90, 220, 120, 255}
	colorLimited = color.RGBA{225, 205, 80, 255}
	colorEmpty   = color.RGBA{220, 40, 40, 255}
	colorCursor  = color.RGBA{120, 220, 220, 255}
	colorGlyph   = color.RGBA{0, 25, 0, 255}
	colorPanel   = color.RGBA{0, 30 * 120 / 255, 0, 120}
)

const (
	flashBlocked = 0.35
	flashRich    = 0.28
	flashLimited = 0.28
)

var droneArt = []string{
	"   __   ",
	" _/  \\_ ",
	" \\_==_/ ",
	"  /~~\\  ",
}

var guide = []string{
	"How it works:",
	"* Move with arrows / WASD.",
	"* Amount: [ / ] or 1-9.",
	"* Enter/Space to extract.",
	"* Drone ascends from below, hovers,",
	"  then returns during cooldown.",
	"* Cell richness: █ rich, ▓ limited, ░ empty.",
}

type flash struct {
	row, col int
	color    color.RGBA
}

// Layout is the screen geometry of the grid and the info panel.
type Layout struct {
	Content image.Rectangle
	Grid    image.Rectangle
	Info    image.Rectangle
	Cell    int
}

// NewLayout fits a rows×cols grid into a w×h screen.
func NewLayout(w, h, logoW, rows, cols int) Layout {
	_, content := render.HeaderLayout(w, h, logoW)
	maxW := int(float64(content.Dx()) * 0.62)
	maxH := int(float64(content.Dy()) * 0.85)

	cell := max(16, min((maxW-60)/cols, (maxH-60)/rows))
	gw, gh := cell*cols+40, cell*rows+40
	g := image.Rect(content.Min.X, content.Min.Y+8, content.Min.X+gw, content.Min.Y+8+gh)

	left := g.Max.X + 24
	info := image.Rect(left, g.Min.Y, left+max(380, content.Max.X-left), g.Max.Y)
	return Layout{Content: content, Grid: g, Info: info, Cell: cell}
}

// CellRect returns the drawn rectangle of a cell.
func (l Layout) CellRect(row, col int) image.Rectangle {
	x := l.Grid.Min.X + 30 + col*l.Cell
	y := l.Grid.Min.Y + 30 + row*l.Cell
	return image.Rect(x, y, x+l.Cell-2, y+l.Cell-2)
}

// CellCenter returns the centre of a cell's slot.
func (l Layout) CellCenter(row, col int) quarry.Point {
	return quarry.Point{
		X: float64(l.Grid.Min.X + 30 + col*l.Cell + l.Cell/2),
		Y: float64(l.Grid.Min.Y + 30 + row*l.Cell + l.Cell/2),
	}
}

// Launch returns the drone's start point below the grid for a target.
func (l Layout) Launch(to quarry.Point) quarry.Point {
	return quarry.Point{X: to.X, Y: float64(l.Grid.Max.Y + max(20, l.Cell))}
}

// Quarry is the extraction scene.
type Quarry struct {
	scene.Base
	game    *quarry.Game
	layout  Layout
	flash   timer.Flash[flash]
	message string
}

// New creates the quarry scene rolling the field from the host's source.
func New(h scene.Host) scene.Scene {
	return NewWithRand(h, h.Rand())
}

// NewWithRand creates the quarry scene rolling the field from rng.
func NewWithRand(h scene.Host, rng *rand.Rand) *Quarry {
	cfg := h.Config()
	logoW := 0
	if lib := h.Assets(); lib != nil {
		if logo := lib.Logo(); logo != nil {
			s := float64(cfg.Display.ScreenHeight) * 0.55 / float64(logo.Bounds().Dy())
			logoW = int(float64(logo.Bounds().Dx()) * s)
		}
	}
	rows, cols := cfg.Quarry.Rows, cfg.Quarry.Cols
	return &Quarry{
		Base:    scene.Base{Host: h},
		game:    quarry.NewGame(quarry.RollGrid(rows, cols, rng), cfg.Quarry.Cooldown),
		layout:  NewLayout(cfg.Display.ScreenWidth, cfg.Display.ScreenHeight, logoW, rows, cols),
		message: "Use arrows to choose a cell; Enter to extract.",
	}
}

// Game exposes the quarry state.
func (q *Quarry) Game() *quarry.Game { return q.game }

// Message returns the status line.
func (q *Quarry) Message() string { return q.message }

// Flash returns the flashing cell and its colour, if any.
func (q *Quarry) Flash() (row, col int, clr color.RGBA, ok bool) {
	f, ok := q.flash.Tag()
	return f.row, f.col, f.color, ok
}

func (q *Quarry) Handle(ev input.Event) {
	if ev.Is(ebiten.KeyEscape, ebiten.KeyQ) {
		q.Host.Goto(scene.Menu)
		return
	}

	if dr, dc, ok := system.GridIntent(ev); ok {
		q.game.Move(dr, dc)
		return
	}
	switch {
	case ev.Is(ebiten.KeyBracketLeft):
		q.game.AdjustAmount(-1)
	case ev.Is(ebiten.KeyBracketRight):
		q.game.AdjustAmount(1)
	case digit(ev) > 0:
		q.game.SetAmount(digit(ev))
	case ev.Is(ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace):
		q.extract()
	}
}

var digitKeys = [...]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// digit returns 1..9 for a digit key press, 0 otherwise.
func digit(ev input.Event) int {
	for i, k := range digitKeys {
		if ev.Is(k) {
			return i + 1
		}
	}
	return 0
}

func (q *Quarry) extract() {
	row, col := q.game.Selection()
	to := q.layout.CellCenter(row, col)
	out := q.game.Extract(q.layout.Launch(to), to)

	switch out.Result {
	case quarry.ResultBusy:
		return
	case quarry.ResultBlocked:
		q.flash.Set(flash{row, col, colorEmpty}, flashBlocked)
		q.Host.BeepError()
	case quarry.ResultLimited:
		q.flash.Set(flash{row, col, colorLimited}, flashLimited)
	case quarry.ResultRich:
		q.flash.Set(flash{row, col, colorRich}, flashRich)
	}
	q.message = out.Message()
}

func (q *Quarry) Update(dt float64) {
	q.flash.Tick(dt)
	q.game.Update(dt)
}

func (q *Quarry) Draw(screen *ebiten.Image) {
	th := q.Host.Config().Theme
	faces := q.Host.Faces()

	var logo *ebiten.Image
	if lib := q.Host.Assets(); lib != nil {
		logo = lib.Logo()
	}
	render.Header(screen, faces, th.Title, logo, th.FG.RGBA())
	l := q.layout
	render.Text(screen, "Quarry: arrows move • [ / ] amount • 1-9 set • Enter extract • ESC back",
		faces.Small(), float64(l.Content.Min.X), float64(l.Content.Min.Y-20), th.Muted.RGBA())

	q.drawGrid(screen)
	q.drawInfo(screen)
	q.drawDrone(screen)

	render.Text(screen, q.message, faces.Face(18, false), float64(l.Content.Min.X), float64(l.Grid.Max.Y+8), th.Muted.RGBA())
}

func (q *Quarry) drawGrid(dst *ebiten.Image) {
	th := q.Host.Config().Theme
	faces := q.Host.Faces()
	l := q.layout
	g := q.game.Grid()

	render.Panel(dst, l.Grid, colorPanel, th.Border.RGBA())
	label := faces.Small()
	for c := 0; c < g.Cols(); c++ {
		x := float64(l.Grid.Min.X + 30 + c*l.Cell + l.Cell/2)
		render.TextCentered(dst, fmt.Sprint(c+1), label, x, float64(l.Grid.Min.Y+6), th.Accent.RGBA())
	}
	for r := 0; r < g.Rows(); r++ {
		y := float64(l.Grid.Min.Y + 30 + r*l.Cell + l.Cell/2)
		render.TextMiddle(dst, string(rune('A'+r)), label, float64(l.Grid.Min.X+14), y, th.Accent.RGBA())
	}

	glyph := faces.Face(18, true)
	fr, fc, fcol, flashing := q.Flash()
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			clr, ch := cellLook(g.At(r, c))
			if flashing && fr == r && fc == c {
				clr = fcol
			}
			rect := q.layout.CellRect(r, c)
			render.Panel(dst, rect, clr, th.Border.RGBA())
			render.TextMiddle(dst, ch, glyph, float64(rect.Min.X+rect.Dx()/2), float64(rect.Min.Y+rect.Dy()/2), colorGlyph)
		}
	}

	sr, sc := q.game.Selection()
	sel := q.layout.CellRect(sr, sc)
	render.StrokeRect(dst, sel, colorCursor)
	render.StrokeRect(dst, sel.Inset(1), colorCursor)
}

func cellLook(c quarry.Cell) (color.RGBA, string) {
	switch c {
	case quarry.Rich:
		return colorRich, "█"
	case quarry.Limited:
		return colorLimited, "▓"
	default:
		return colorEmpty, "░"
	}
}

func (q *Quarry) drawInfo(dst *ebiten.Image) {
	th := q.Host.Config().Theme
	faces := q.Host.Faces()
	info := q.layout.Info
	render.Panel(dst, info, colorPanel, th.Border.RGBA())

	body, small := faces.Face(18, false), faces.Small()
	x, y := float64(info.Min.X+12), float64(info.Min.Y+10)
	render.Text(dst, "Black Rock Quarry", faces.UI(), x, y, th.FG.RGBA())
	y += 26
	row, col := q.game.Selection()
	render.Text(dst, "Selected: "+quarry.Coord(row, col), body, x, y, th.Accent.RGBA())
	y += 22
	render.Text(dst, fmt.Sprintf("Extraction amount: %d", q.game.Amount()), body, x, y, th.Accent.RGBA())
	y += 22
	if q.game.CoolingDown() {
		render.Text(dst, fmt.Sprintf("Cooldown: %.1fs", q.game.Cooldown()), body, x, y, colorLimited)
	} else {
		render.Text(dst, "Ready.", body, x, y, colorRich)
	}
	y += 28
	render.Text(dst, fmt.Sprintf("Total Yield: %d", q.game.Total()), body, x, y, th.FG.RGBA())
	y += 24
	render.Fill(dst, x, y, float64(info.Max.X-12)-x, 1, th.Border.RGBA())
	y += 10
	for _, ln := range guide {
		render.Text(dst, ln, small, x, y, th.Muted.RGBA())
		y += 20
	}
	render.Text(dst, "Enter: extract  •  ESC: back  •  F11: fullscreen", small, x, float64(info.Max.Y-68), th.Muted.RGBA())
}

func (q *Quarry) drawDrone(dst *ebiten.Image) {
	job := q.game.Job()
	if job == nil {
		return
	}
	face := q.Host.Faces().Face(18, false)
	p := job.Position(q.game.Clock())
	ox := -float64(len(droneArt[0])*6) / 2
	oy := -float64(len(droneArt)*7) / 2
	for i, line := range droneArt {
		render.TextShadow(dst, line, face, p.X+ox, p.Y+oy+float64(i*14), 1, colorCursor, color.Black)
	}
}
