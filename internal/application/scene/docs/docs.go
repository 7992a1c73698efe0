// Package docs lists the terminal's PDF documents and pages through them.
package docs

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/browse"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/pdf"
)

// Env holds what the document scenes need beyond the host.
type Env struct {
	Backend pdf.Backend
	Copy    func(string) error
}

// DefaultEnv renders with poppler and copies through the system clipboard.
func DefaultEnv() Env {
	return Env{Backend: pdf.NewPoppler(), Copy: clipboard.WriteAll}
}

// Factory returns the document list factory for env.
func Factory(env Env) scene.Factory {
	return func(h scene.Host) scene.Scene { return NewList(h, env) }
}

// List is the document picker.
type List struct {
	scene.Base
	env     Env
	paths   []string
	list    *browse.List
	elapsed float64
}

// NewList creates the document list.
func NewList(h scene.Host, env Env) *List {
	return &List{Base: scene.Base{Host: h}, env: env}
}

func (s *List) Enter() {
	cfg := s.Host.Config()
	s.paths = assets.List(cfg.Asset(cfg.Paths.Documents), ".pdf")
	titles := make([]string, len(s.paths))
	for i, p := range s.paths {
		titles[i] = assets.Title(p)
	}
	s.list = browse.New(titles, "No documents found.")
}

// Paths returns the listed files.
func (s *List) Paths() []string { return s.paths }

// Selected returns the highlighted index, -1 when empty.
func (s *List) Selected() int { return s.list.Selected() }

func (s *List) Handle(ev input.Event) {
	if s.list.Handle(ev) {
		return
	}
	switch {
	case ev.Is(ebiten.KeyEscape, ebiten.KeyBackspace):
		s.Host.Goto(scene.Menu)
	case ev.Is(ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace):
		s.open()
	case ev.Is(ebiten.KeyC):
		if i := s.list.Selected(); i >= 0 {
			copyTitle(s.Host, s.env, assets.Title(s.paths[i]))
		}
	}
}

func (s *List) open() {
	i := s.list.Selected()
	if i < 0 {
		s.Host.BeepError()
		return
	}
	cfg := s.Host.Config()
	doc, err := pdf.Open(context.Background(), s.env.Backend, s.paths[i], cfg.Viewer.PageCache)
	if err != nil {
		log.Printf("[scene] documents: %v", err)
		s.Host.BeepError()
		if errors.Is(err, pdf.ErrRendererUnavailable) {
			s.Host.PushInfo("PDF viewer unavailable: install poppler-utils.")
		} else {
			s.Host.PushInfo("Cannot open " + assets.Title(s.paths[i]) + ".")
		}
		return
	}
	env := s.env
	s.Host.Switch(func(h scene.Host) scene.Scene { return NewViewer(h, env, doc) })
}

func (s *List) Update(dt float64) { s.elapsed += dt }

func (s *List) Draw(screen *ebiten.Image) {
	th := s.Host.Config().Theme
	faces := s.Host.Faces()
	var logo *ebiten.Image
	if lib := s.Host.Assets(); lib != nil {
		logo = lib.Logo()
	}
	content := render.Header(screen, faces, "Documents", logo, th.FG.RGBA())
	s.list.Draw(screen, faces, content, th, s.elapsed)
	render.Footer(screen, faces, "Up/Down select • Enter open • C copy title • ESC back", th.Muted.RGBA())
}

func copyTitle(h scene.Host, env Env, title string) {
	if env.Copy == nil {
		return
	}
	if err := env.Copy(title); err != nil {
		log.Printf("[scene] clipboard: %v", err)
		h.BeepError()
		h.PushInfo("Clipboard unavailable.")
		return
	}
	h.BeepOK()
	h.PushInfo("Copied: " + title)
}

// Viewer pages through one document.
type Viewer struct {
	scene.Base
	env   Env
	doc   *pdf.Document
	title string
	page  int
	zoom  float64
	img   image.Image
	tex   *ebiten.Image
	err   error
}

// NewViewer creates a viewer over an opened document. The viewer owns doc
// and closes it on exit.
func NewViewer(h scene.Host, env Env, doc *pdf.Document) *Viewer {
	return &Viewer{
		Base:  scene.Base{Host: h},
		env:   env,
		doc:   doc,
		title: assets.Title(doc.Path()),
		zoom:  1,
	}
}

func (v *Viewer) Enter() { v.render() }

func (v *Viewer) Exit() error {
	v.doc.Close()
	if v.tex != nil {
		v.tex.Deallocate()
		v.tex = nil
	}
	return nil
}

// Page returns the zero-based page shown.
func (v *Viewer) Page() int { return v.page }

// Zoom returns the zoom factor.
func (v *Viewer) Zoom() float64 { return v.zoom }

// Err returns the last render error.
func (v *Viewer) Err() error { return v.err }

// Document returns the open document.
func (v *Viewer) Document() *pdf.Document { return v.doc }

func (v *Viewer) Handle(ev input.Event) {
	vc := v.Host.Config().Viewer
	switch {
	case ev.Is(ebiten.KeyEscape, ebiten.KeyBackspace):
		v.Host.Goto(scene.Documents)
	case ev.Is(ebiten.KeyRight, ebiten.KeyPageDown, ebiten.KeyD):
		v.turn(1)
	case ev.Is(ebiten.KeyLeft, ebiten.KeyPageUp, ebiten.KeyA):
		v.turn(-1)
	case ev.Is(ebiten.KeyEqual, ebiten.KeyNumpadAdd):
		v.setZoom(v.zoom * vc.ZoomStep)
	case ev.Is(ebiten.KeyMinus, ebiten.KeyNumpadSubtract):
		v.setZoom(v.zoom / vc.ZoomStep)
	case ev.Is(ebiten.Key0, ebiten.KeyNumpad0):
		v.setZoom(1)
	case ev.Is(ebiten.KeyC):
		copyTitle(v.Host, v.env, v.title)
	}
}

func (v *Viewer) turn(d int) {
	p := v.doc.ClampPage(v.page + d)
	if p == v.page {
		v.Host.BeepError()
		return
	}
	v.page = p
	v.render()
}

func (v *Viewer) setZoom(z float64) {
	vc := v.Host.Config().Viewer
	z = max(vc.MinZoom, min(vc.MaxZoom, z))
	if z == v.zoom {
		return
	}
	v.zoom = z
	v.render()
}

// pageArea is the region a page is fitted into.
func (v *Viewer) pageArea() image.Rectangle {
	d := v.Host.Config().Display
	return image.Rect(40, 110, d.ScreenWidth-40, d.ScreenHeight-60)
}

func (v *Viewer) render() {
	area := v.pageArea()
	img, err := v.doc.Render(context.Background(), v.page, v.zoom, area.Dx(), area.Dy())
	v.err = err
	if err != nil {
		log.Printf("[scene] documents: page %d: %v", v.page+1, err)
		v.img = nil
	} else {
		v.img = img
	}
	if v.tex != nil {
		v.tex.Deallocate()
		v.tex = nil
	}
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	cfg := v.Host.Config()
	th := cfg.Theme
	faces := v.Host.Faces()
	area := v.pageArea()

	status := fmt.Sprintf("%s   page %d/%d   zoom %.0f%%", v.title, v.page+1, v.doc.Pages(), v.zoom*100)
	render.Text(screen, status, faces.Face(26, true), 40, 40, th.FG.RGBA())

	switch {
	case v.img != nil:
		if v.tex == nil {
			v.tex = ebiten.NewImageFromImage(v.img)
		}
		render.DrawImage(screen, v.tex, area, render.FitNative, 1, 0, 0)
	case errors.Is(v.err, pdf.ErrRendererUnavailable):
		render.Placeholder(screen, area, "PDF renderer unavailable", faces.UI(), th.Border.RGBA(), th.Alert.RGBA())
	default:
		render.Placeholder(screen, area, "Page could not be rendered", faces.UI(), th.Border.RGBA(), th.Alert.RGBA())
	}
	render.FillRect(screen, area, th.FG.Alpha(40))
	render.Footer(screen, faces, "Left/Right page • +/- zoom • 0 reset • C copy title • ESC back", th.Muted.RGBA())
}
