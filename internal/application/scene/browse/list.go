// Package browse provides the scrolling file list shared by the viewer
// scenes.
package browse

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/system"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
)

const (
	rowPitch = 34
	pageStep = 8
)

// List is a vertical selection over labels. Up/Down wrap, PgUp/PgDn and
// Home/End clamp.
type List struct {
	Labels []string
	Empty  string // shown when there is nothing to list
	sel    int
	top    int
}

// New returns a list over labels.
func New(labels []string, empty string) *List {
	return &List{Labels: labels, Empty: empty}
}

// Len returns the number of entries.
func (l *List) Len() int { return len(l.Labels) }

// Selected returns the highlighted index, -1 when the list is empty.
func (l *List) Selected() int {
	if len(l.Labels) == 0 {
		return -1
	}
	return l.sel
}

// Select moves the highlight to i, clamped.
func (l *List) Select(i int) {
	l.sel = max(0, min(len(l.Labels)-1, i))
}

// Handle consumes navigation keys and reports whether ev was one.
func (l *List) Handle(ev input.Event) bool {
	n := len(l.Labels)
	if d, ok := system.ListIntent(ev); ok {
		l.sel = system.Wrap(l.sel, d, n)
		return true
	}
	switch {
	case ev.Is(ebiten.KeyPageUp):
		l.Select(l.sel - pageStep)
	case ev.Is(ebiten.KeyPageDown):
		l.Select(l.sel + pageStep)
	case ev.Is(ebiten.KeyHome):
		l.Select(0)
	case ev.Is(ebiten.KeyEnd):
		l.Select(n - 1)
	default:
		return false
	}
	return true
}

// Visible returns how many rows fit in a box of height h.
func Visible(h int) int {
	return max(1, h/rowPitch)
}

// scrollTo keeps the selection inside a window of rows entries.
func (l *List) scrollTo(rows int) {
	if l.sel < l.top {
		l.top = l.sel
	}
	if l.sel >= l.top+rows {
		l.top = l.sel - rows + 1
	}
	l.top = max(0, min(l.top, max(0, len(l.Labels)-rows)))
}

// Draw renders the visible window of the list into box.
func (l *List) Draw(dst *ebiten.Image, faces *assets.Faces, box image.Rectangle, th config.ThemeConfig, t float64) {
	face := faces.UI()
	if len(l.Labels) == 0 {
		render.Text(dst, l.Empty, face, float64(box.Min.X), float64(box.Min.Y), th.Muted.RGBA())
		return
	}
	rows := Visible(box.Dy())
	l.scrollTo(rows)
	measure := render.FaceMeasure(face)
	for i := l.top; i < len(l.Labels) && i < l.top+rows; i++ {
		y := box.Min.Y + (i-l.top)*rowPitch
		clr := th.Accent.RGBA()
		if i == l.sel {
			r := image.Rect(box.Min.X-8, y-4, box.Max.X, y-4+rowPitch-4)
			render.Highlight(dst, r, t, th.Border.RGBA())
			clr = th.FG.RGBA()
		}
		label := render.Ellipsize(l.Labels[i], float64(box.Dx()-16), measure)
		render.Text(dst, label, face, float64(box.Min.X), float64(y), clr)
	}
	if len(l.Labels) > rows {
		l.drawScrollbar(dst, box, rows, th.Border.RGBA())
	}
}

func (l *List) drawScrollbar(dst *ebiten.Image, box image.Rectangle, rows int, clr color.RGBA) {
	h := box.Dy()
	thumb := max(12, h*rows/len(l.Labels))
	y := box.Min.Y + (h-thumb)*l.top/max(1, len(l.Labels)-rows)
	render.Fill(dst, float64(box.Max.X+4), float64(y), 4, float64(thumb), clr)
}
