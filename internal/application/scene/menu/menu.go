// Package menu provides the terminal's main menu.
package menu

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/system"
)

// Item is one menu entry. An empty Target quits.
type Item struct {
	Label  string
	Target scene.ID
}

// Items is the menu in display order.
var Items = []Item{
	{"Documents", scene.Documents},
	{"Videos", scene.Videos},
	{"Audio Logs", scene.AudioLogs},
	{"Altered Items", scene.Altered},
	{"Objects of Power", scene.OOP},
	{"Black Rock Quarry", scene.Quarry},
	{"The Oldest House Sectors", scene.Sectors},
	{"Hotline Chamber", scene.Hotline},
	{"Oceanview Motel & Casino", scene.Oceanview},
	{"Quit", ""},
}

const (
	itemPitch   = 46
	itemHeight  = 38
	barWidth    = 420
	bannerLine  = 22
	bannerBlink = 0.5
)

var warningRed = color.RGBA{200, 20, 20, 255}

// Menu is the main menu scene.
type Menu struct {
	scene.Base
	sel     int
	elapsed float64
	scroll  float64
	tickerW float64
	banner  []string
}

// New creates the menu scene.
func New(h scene.Host) scene.Scene {
	return &Menu{Base: scene.Base{Host: h}}
}

func (m *Menu) Enter() {
	cfg := m.Host.Config()
	m.scroll = float64(cfg.Display.ScreenWidth)
	m.banner = render.Banner(cfg.Menu.Warning)
}

// Selected returns the highlighted item.
func (m *Menu) Selected() Item {
	return Items[m.sel]
}

func (m *Menu) Handle(ev input.Event) {
	if d, ok := system.ListIntent(ev); ok {
		m.sel = system.Wrap(m.sel, d, len(Items))
		return
	}
	switch {
	case ev.Is(ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace):
		m.activate()
	case ev.Is(ebiten.KeyEscape, ebiten.KeyQ):
		m.Host.Quit()
	}
}

func (m *Menu) activate() {
	it := Items[m.sel]
	if it.Target == "" {
		m.Host.Quit()
		return
	}
	m.Host.Goto(it.Target)
}

// Update scrolls the ticker. It restarts from the right edge once fully
// off screen; the width is learned on the first Draw.
func (m *Menu) Update(dt float64) {
	cfg := m.Host.Config()
	m.elapsed += dt
	m.scroll -= cfg.Menu.TickerSpeed * dt
	if m.tickerW > 0 && m.scroll+m.tickerW < 0 {
		m.scroll = float64(cfg.Display.ScreenWidth)
	}
}

// Ticker returns the ticker's x position.
func (m *Menu) Ticker() float64 { return m.scroll }

func (m *Menu) Draw(screen *ebiten.Image) {
	cfg := m.Host.Config()
	th := cfg.Theme
	faces := m.Host.Faces()
	h := screen.Bounds().Dy()

	var logo *ebiten.Image
	if lib := m.Host.Assets(); lib != nil {
		logo = lib.Logo()
	}
	content := render.Header(screen, faces, th.Title, logo, th.FG.RGBA())
	render.Text(screen, "Up/Down navigate • Enter select • ESC quit • F11 fullscreen",
		faces.Small(), float64(content.Min.X), float64(content.Min.Y-20), th.Muted.RGBA())

	face := faces.Face(28, false)
	y0 := content.Min.Y + 8
	for i, it := range Items {
		y := y0 + i*itemPitch
		clr := th.Accent.RGBA()
		if i == m.sel {
			r := image.Rect(content.Min.X-10, y-4, content.Min.X-10+barWidth, y-4+itemHeight)
			render.Highlight(screen, r, m.elapsed, th.Border.RGBA())
			render.Text(screen, "▸", face, float64(content.Min.X-6), float64(y), th.FG.RGBA())
			clr = th.FG.RGBA()
		}
		render.Text(screen, "[ "+it.Label+" ]", face, float64(content.Min.X+18), float64(y), clr)
	}

	m.drawGuide(screen, content, y0+len(Items)*itemPitch+16, h-200)

	if render.Blink(m.elapsed, bannerBlink) {
		bf := faces.Face(22, true)
		for i, line := range m.banner {
			render.TextShadow(screen, line, bf, 40, float64(h-200+i*bannerLine), 2, warningRed, color.Black)
		}
	}

	tf := faces.Face(22, true)
	m.tickerW = render.Width(cfg.Menu.Ticker, tf)
	render.Text(screen, cfg.Menu.Ticker, tf, float64(int(m.scroll)), float64(h-60), th.Accent.RGBA())
}

func (m *Menu) drawGuide(dst *ebiten.Image, content image.Rectangle, top, limit int) {
	lines := m.Host.Config().Menu.Guide
	if len(lines) == 0 {
		return
	}
	th := m.Host.Config().Theme
	faces := m.Host.Faces()
	title, body := faces.Face(22, true), faces.Face(20, false)

	const pad = 10
	lineH := int(render.LineHeight(body)) + 4
	boxH := pad*2 + (len(lines)-1)*lineH + int(render.LineHeight(title))
	if top+boxH > limit-10 {
		boxH = max(42, limit-10-top)
	}
	box := image.Rect(content.Min.X-10, top, content.Max.X, top+boxH)
	render.Panel(dst, box, color.RGBA{0, 30 * 120 / 255, 0, 120}, th.Border.RGBA())

	x, y := float64(box.Min.X+pad), float64(box.Min.Y+pad)
	render.Text(dst, lines[0], title, x, y, th.FG.RGBA())
	y += render.LineHeight(title) + 2
	for _, ln := range lines[1:] {
		if y+float64(lineH) > float64(box.Max.Y) {
			break
		}
		render.Text(dst, ln, body, x, y, th.Accent.RGBA())
		y += float64(lineH)
	}
}
