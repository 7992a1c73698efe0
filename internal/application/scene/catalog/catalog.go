// Package catalog browses the Bureau's object records: Altered Items and
// Objects of Power share one list and detail view.
package catalog

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/browse"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
)

const (
	notAvailable = "(not available)"
	pageLines    = 4
	stampAngle   = -18 * math.Pi / 180
)

var stampRed = color.RGBA{220, 40, 40, 255}

// Kind selects which records a catalog shows.
type Kind struct {
	ID    scene.ID
	Title string
	Label string // prefix of the detail heading
	Dir   func(p config.PathsConfig) string
}

var (
	Altered = Kind{
		ID:    scene.Altered,
		Title: "Altered Items",
		Label: "Altered Item",
		Dir:   func(p config.PathsConfig) string { return p.Altered },
	}
	OOP = Kind{
		ID:    scene.OOP,
		Title: "Objects of Power",
		Label: "Object of Power",
		Dir:   func(p config.PathsConfig) string { return p.OOP },
	}
)

// Factory returns the list factory for k.
func Factory(k Kind) scene.Factory {
	return func(h scene.Host) scene.Scene { return NewList(h, k) }
}

// List shows the record folders of one kind.
type List struct {
	scene.Base
	kind    Kind
	items   []assets.Item
	list    *browse.List
	stamp   stamp
	elapsed float64
}

// NewList creates a catalog list.
func NewList(h scene.Host, k Kind) *List {
	return &List{Base: scene.Base{Host: h}, kind: k, stamp: stamp{text: "CLASSIFIED"}}
}

func (s *List) Enter() {
	cfg := s.Host.Config()
	dir := cfg.Asset(s.kind.Dir(cfg.Paths))
	s.items = assets.Items(dir)
	codes := make([]string, len(s.items))
	for i, it := range s.items {
		codes[i] = it.Code
	}
	s.list = browse.New(codes, "No records on file.")
	if len(s.items) == 0 {
		s.Host.PushInfo("Put item folders under \"" + dir + "\"")
	}
}

func (s *List) Exit() error {
	s.stamp.release()
	return nil
}

// Items returns the listed records.
func (s *List) Items() []assets.Item { return s.items }

func (s *List) Handle(ev input.Event) {
	if s.list.Handle(ev) {
		return
	}
	switch {
	case ev.Is(ebiten.KeyEscape, ebiten.KeyQ):
		s.Host.Goto(scene.Menu)
	case ev.Is(ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace):
		i := s.list.Selected()
		if i < 0 {
			s.Host.BeepError()
			return
		}
		it, k := s.items[i], s.kind
		s.Host.Switch(func(h scene.Host) scene.Scene { return NewDetail(h, k, it) })
	}
}

func (s *List) Update(dt float64) { s.elapsed += dt }

func (s *List) Draw(screen *ebiten.Image) {
	th := s.Host.Config().Theme
	faces := s.Host.Faces()
	var logo *ebiten.Image
	if lib := s.Host.Assets(); lib != nil {
		logo = lib.Logo()
	}
	content := render.Header(screen, faces, s.kind.Title, logo, th.FG.RGBA())
	s.list.Draw(screen, faces, content, th, s.elapsed)
	s.stamp.draw(screen, faces.Face(52, true))
	render.Footer(screen, faces, "Up/Down select • Enter open • ESC back", th.Muted.RGBA())
}

// Detail shows one record: dates and details on the left, the image on
// the right.
type Detail struct {
	scene.Base
	kind      Kind
	item      assets.Item
	dates     string
	info      string
	img       image.Image
	tex       *ebiten.Image
	scroll    int
	maxScroll int
	stamp     stamp
}

// NewDetail creates the detail view of it.
func NewDetail(h scene.Host, k Kind, it assets.Item) *Detail {
	return &Detail{
		Base:      scene.Base{Host: h},
		kind:      k,
		item:      it,
		maxScroll: -1,
		stamp:     stamp{text: "TOP SECRET"},
	}
}

func (d *Detail) Enter() {
	d.dates = assets.ReadTextOr(d.item.Dates, notAvailable)
	d.info = assets.ReadTextOr(d.item.Info, notAvailable)
	if d.item.Image == "" {
		return
	}
	img, err := assets.DecodeImage(d.item.Image)
	if err != nil {
		log.Printf("[assets] %v", err)
		return
	}
	d.img = img
}

func (d *Detail) Exit() error {
	if d.tex != nil {
		d.tex.Deallocate()
		d.tex = nil
	}
	d.stamp.release()
	return nil
}

// Dates returns the incident text.
func (d *Detail) Dates() string { return d.dates }

// Info returns the details text.
func (d *Detail) Info() string { return d.info }

// HasImage reports whether the record image decoded.
func (d *Detail) HasImage() bool { return d.img != nil }

// Scroll returns the text offset in pixels.
func (d *Detail) Scroll() int { return d.scroll }

func (d *Detail) Handle(ev input.Event) {
	step := d.Host.Config().Viewer.ScrollStep
	switch {
	case ev.Is(ebiten.KeyEscape, ebiten.KeyQ):
		d.Host.Goto(d.kind.ID)
	case ev.Is(ebiten.KeyUp):
		d.scrollBy(-step)
	case ev.Is(ebiten.KeyDown):
		d.scrollBy(step)
	case ev.Is(ebiten.KeyPageUp):
		d.scrollBy(-step * pageLines)
	case ev.Is(ebiten.KeyPageDown):
		d.scrollBy(step * pageLines)
	case ev.Is(ebiten.KeyF):
		d.Host.ToggleFullscreen()
	}
}

func (d *Detail) scrollBy(n int) {
	d.scroll = max(0, d.scroll+n)
	if d.maxScroll >= 0 {
		d.scroll = min(d.scroll, d.maxScroll)
	}
}

func (d *Detail) Draw(screen *ebiten.Image) {
	th := d.Host.Config().Theme
	faces := d.Host.Faces()
	var logo *ebiten.Image
	if lib := d.Host.Assets(); lib != nil {
		logo = lib.Logo()
	}
	content := render.Header(screen, faces, "["+d.kind.Label+"] "+d.item.Code, logo, th.FG.RGBA())
	h := screen.Bounds().Dy()
	bottom := min(content.Max.Y, h-200)

	leftW := content.Dx() * 64 / 100
	rightW := content.Dx() * 34 / 100
	left := image.Rect(content.Min.X-10, content.Min.Y+8, content.Min.X-10+leftW, bottom)
	right := image.Rect(content.Max.X-rightW, content.Min.Y+8, content.Max.X, bottom)
	panel := th.FG.Alpha(30)

	render.Panel(screen, left, panel, th.Border.RGBA())
	d.drawText(screen, faces, left.Inset(12), th)

	render.Panel(screen, right, panel, th.Border.RGBA())
	render.Text(screen, "Image", faces.Small(), float64(right.Min.X+10), float64(right.Min.Y+10), th.FG.RGBA())
	if d.img != nil {
		if d.tex == nil {
			d.tex = ebiten.NewImageFromImage(d.img)
		}
		box := image.Rect(right.Min.X+10, right.Min.Y+30, right.Max.X-10, right.Max.Y-10)
		b := d.tex.Bounds()
		zoom := min(1, min(float64(box.Dx())/float64(b.Dx()), float64(box.Dy())/float64(b.Dy())))
		render.DrawImage(screen, d.tex, box, render.FitNative, zoom, 0, 0)
	} else {
		render.Text(screen, "(no image)", faces.Small(), float64(right.Min.X+10), float64(right.Min.Y+30), th.Muted.RGBA())
	}

	d.stamp.draw(screen, faces.Face(52, true))
	render.Footer(screen, faces, "Up/Down/PgUp/PgDn scroll • F fullscreen • ESC back", th.Muted.RGBA())
}

// drawText lays out the dates and details sections inside r, scrolled.
func (d *Detail) drawText(dst *ebiten.Image, faces *assets.Faces, r image.Rectangle, th config.ThemeConfig) {
	clip, ok := dst.SubImage(r).(*ebiten.Image)
	if !ok {
		return
	}
	head, body := faces.Face(22, true), faces.Face(18, false)
	measure := render.FaceMeasure(body)
	lh := render.LineHeight(body) + 4

	y := float64(r.Min.Y - d.scroll)
	section := func(title, s string, clr color.Color) {
		render.Text(clip, title, head, float64(r.Min.X), y, th.FG.RGBA())
		y += render.LineHeight(head) + 6
		for _, ln := range render.Wrap(s, float64(r.Dx()), measure) {
			render.Text(clip, ln, body, float64(r.Min.X), y, clr)
			y += lh
		}
		y += 12
	}
	section("Dates / Incidents", d.dates, th.Accent.RGBA())
	section("Details", d.info, th.FG.RGBA())

	total := int(y) + d.scroll - r.Min.Y
	d.maxScroll = max(0, total-r.Dy())
	d.scroll = min(d.scroll, d.maxScroll)
}

// stamp is a rotated red label drawn over the upper part of the screen.
type stamp struct {
	text string
	img  *ebiten.Image
}

func (s *stamp) draw(dst *ebiten.Image, face text.Face) {
	if s.img == nil {
		w, h := int(render.Width(s.text, face))+8, int(render.LineHeight(face))+8
		s.img = ebiten.NewImage(w, h)
		render.Text(s.img, s.text, face, 6, 6, color.Black)
		render.Text(s.img, s.text, face, 4, 4, stampRed)
	}
	b := s.img.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
	op.GeoM.Rotate(stampAngle)
	op.GeoM.Translate(float64(dst.Bounds().Dx())/2, float64(dst.Bounds().Dy())*0.22)
	dst.DrawImage(s.img, op)
}

func (s *stamp) release() {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
}
