// Package sectors browses the floor plans of The Oldest House.
package sectors

import (
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/browse"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
)

const (
	thumbCache = 8
	thumbW     = 440
	thumbH     = 280
	zoomIn     = 1.10
	zoomOut    = 0.90
	minZoom    = 0.1
	maxZoom    = 10
)

// List is the map picker with a preview of the selection.
type List struct {
	scene.Base
	paths   []string
	list    *browse.List
	thumbs  *lru.Cache[string, *ebiten.Image]
	elapsed float64
}

// New creates the map list.
func New(h scene.Host) scene.Scene {
	return &List{Base: scene.Base{Host: h}}
}

func (s *List) Enter() {
	cfg := s.Host.Config()
	dir := cfg.Asset(cfg.Paths.Maps)
	s.paths = assets.List(dir, ".png")
	names := make([]string, len(s.paths))
	for i, p := range s.paths {
		names[i] = assets.Title(p)
	}
	s.list = browse.New(names, "No maps found.")
	if len(s.paths) == 0 {
		s.Host.PushInfo(fmt.Sprintf("Put .png maps in %q", dir))
	}

	thumbs, err := lru.NewWithEvict[string, *ebiten.Image](thumbCache, func(_ string, img *ebiten.Image) {
		if img != nil {
			img.Deallocate()
		}
	})
	if err != nil {
		log.Printf("[scene] sectors: %v", err)
	}
	s.thumbs = thumbs
}

func (s *List) Exit() error {
	if s.thumbs != nil {
		s.thumbs.Purge()
	}
	return nil
}

// Paths returns the listed maps.
func (s *List) Paths() []string { return s.paths }

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
		paths := append([]string(nil), s.paths...)
		s.Host.Switch(func(h scene.Host) scene.Scene { return NewViewer(h, paths, i) })
	}
}

func (s *List) Update(dt float64) { s.elapsed += dt }

// thumb returns a preview of path no larger than thumbW×thumbH. Failed
// loads are cached as nil.
func (s *List) thumb(path string) *ebiten.Image {
	if s.thumbs == nil {
		return nil
	}
	if img, ok := s.thumbs.Get(path); ok {
		return img
	}
	var out *ebiten.Image
	if img, err := assets.LoadImage(path); err != nil {
		log.Printf("[assets] %v", err)
	} else {
		b := img.Bounds()
		sc := min(float64(thumbW)/float64(b.Dx()), float64(thumbH)/float64(b.Dy()), 1)
		w, h := max(1, int(float64(b.Dx())*sc)), max(1, int(float64(b.Dy())*sc))
		out = ebiten.NewImage(w, h)
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(sc, sc)
		out.DrawImage(img, op)
		img.Deallocate()
	}
	s.thumbs.Add(path, out)
	return out
}

func (s *List) Draw(screen *ebiten.Image) {
	th := s.Host.Config().Theme
	faces := s.Host.Faces()
	var logo *ebiten.Image
	if lib := s.Host.Assets(); lib != nil {
		logo = lib.Logo()
	}
	content := render.Header(screen, faces, fmt.Sprintf("The Oldest House Maps (%d)", len(s.paths)), logo, th.FG.RGBA())

	rows := min(s.list.Len(), browse.Visible(content.Dy()/2))
	listBox := image.Rect(content.Min.X, content.Min.Y, content.Max.X, content.Min.Y+max(1, rows)*34)
	s.list.Draw(screen, faces, listBox, th, s.elapsed)

	if i := s.list.Selected(); i >= 0 {
		if t := s.thumb(s.paths[i]); t != nil {
			b := t.Bounds()
			top := listBox.Max.Y + 16
			panel := image.Rect(content.Min.X-8, top, content.Min.X-8+max(b.Dx()+20, 260), top+b.Dy()+20)
			render.Panel(screen, panel, th.FG.Alpha(30), th.Border.RGBA())
			render.DrawImage(screen, t, panel.Inset(10), render.FitContain, 1, 0, 0)
		}
	}
	render.Footer(screen, faces, "Up/Down select • Enter open • ESC back", th.Muted.RGBA())
}

// Viewer shows one map at a time with zoom and pan.
type Viewer struct {
	scene.Base
	paths []string
	index int
	img   image.Image
	tex   *ebiten.Image
	fit   render.FitMode
	zoom  float64
	panX  float64
	panY  float64
}

// NewViewer creates a viewer over paths starting at index.
func NewViewer(h scene.Host, paths []string, index int) *Viewer {
	return &Viewer{Base: scene.Base{Host: h}, paths: paths, index: index, zoom: 1}
}

func (v *Viewer) Enter() { v.load() }

func (v *Viewer) Exit() error {
	v.release()
	return nil
}

func (v *Viewer) release() {
	if v.tex != nil {
		v.tex.Deallocate()
		v.tex = nil
	}
}

// Index returns the map shown.
func (v *Viewer) Index() int { return v.index }

// Zoom returns the zoom factor on top of the fit scale.
func (v *Viewer) Zoom() float64 { return v.zoom }

// Pan returns the pan offset in pixels.
func (v *Viewer) Pan() (float64, float64) { return v.panX, v.panY }

// Fit returns the fit mode.
func (v *Viewer) Fit() render.FitMode { return v.fit }

// Loaded reports whether the current map decoded.
func (v *Viewer) Loaded() bool { return v.img != nil }

func (v *Viewer) load() {
	v.release()
	v.img = nil
	v.reset()
	if len(v.paths) == 0 {
		return
	}
	v.index = (v.index%len(v.paths) + len(v.paths)) % len(v.paths)
	img, err := assets.DecodeImage(v.paths[v.index])
	if err != nil {
		log.Printf("[assets] %v", err)
		v.Host.PushInfo("Cannot load image.")
		return
	}
	v.img = img
}

func (v *Viewer) reset() {
	v.zoom, v.panX, v.panY = 1, 0, 0
}

func (v *Viewer) Handle(ev input.Event) {
	step := v.Host.Config().Viewer.PanStep
	switch {
	case ev.Is(ebiten.KeyEscape, ebiten.KeyQ):
		v.Host.Goto(scene.Sectors)
	case ev.Shift && ev.Is(ebiten.KeyLeft):
		v.panX += step
	case ev.Shift && ev.Is(ebiten.KeyRight):
		v.panX -= step
	case ev.Is(ebiten.KeyLeft, ebiten.KeyA):
		v.index--
		v.load()
	case ev.Is(ebiten.KeyRight, ebiten.KeyD):
		v.index++
		v.load()
	case ev.Is(ebiten.KeyUp, ebiten.KeyW):
		v.panY += step
	case ev.Is(ebiten.KeyDown, ebiten.KeyS):
		v.panY -= step
	case ev.Is(ebiten.KeyF):
		v.fit = v.fit.Next()
		v.reset()
	case ev.Is(ebiten.KeyEqual, ebiten.KeyNumpadAdd):
		v.zoom = min(maxZoom, v.zoom*zoomIn)
	case ev.Is(ebiten.KeyMinus, ebiten.KeyNumpadSubtract):
		v.zoom = max(minZoom, v.zoom*zoomOut)
	case ev.Is(ebiten.Key0, ebiten.KeyNumpad0):
		v.reset()
	}
}

func (v *Viewer) area(w, h int) image.Rectangle {
	return image.Rect(w/20, h*9/100, w-w/20, h*91/100)
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	th := v.Host.Config().Theme
	faces := v.Host.Faces()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	area := v.area(w, h)

	name := "-"
	if len(v.paths) > 0 {
		name = assets.Title(v.paths[v.index])
	}
	render.Text(screen, fmt.Sprintf("Map: %s   [%d/%d]   %s   zoom %.0f%%",
		name, v.index+1, len(v.paths), v.fit, v.zoom*100), faces.UI(), 40, 30, th.FG.RGBA())

	if v.img != nil {
		if v.tex == nil {
			v.tex = ebiten.NewImageFromImage(v.img)
		}
		render.DrawImage(screen, v.tex, area, v.fit, v.zoom, v.panX, v.panY)
	} else {
		render.Placeholder(screen, area, "No image", faces.UI(), th.Border.RGBA(), th.Alert.RGBA())
	}
	render.Footer(screen, faces, "Left/Right map • Up/Down, Shift+Left/Right pan • +/- zoom • 0 reset • F fit • ESC back", th.Muted.RGBA())
}
