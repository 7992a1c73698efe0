package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// FitMode selects how an image is scaled into a box.
type FitMode int

const (
	FitContain FitMode = iota
	FitCover
	FitNative
)

// String returns the label shown in viewer status lines.
func (m FitMode) String() string {
	switch m {
	case FitContain:
		return "fit"
	case FitCover:
		return "fill"
	case FitNative:
		return "native"
	}
	return "unknown"
}

// Next cycles fit → fill → native.
func (m FitMode) Next() FitMode {
	return (m + 1) % 3
}

// Placement is the scale and top-left offset of an image inside a box.
type Placement struct {
	Scale float64
	X, Y  float64
}

// Place fits a srcW×srcH image into box according to mode, multiplied by
// zoom and shifted by (panX, panY) from the centred position.
func Place(srcW, srcH int, box image.Rectangle, mode FitMode, zoom, panX, panY float64) Placement {
	if srcW <= 0 || srcH <= 0 {
		return Placement{}
	}
	bw, bh := float64(box.Dx()), float64(box.Dy())
	sx, sy := bw/float64(srcW), bh/float64(srcH)

	var s float64
	switch mode {
	case FitCover:
		s = max(sx, sy)
	case FitNative:
		s = 1
	default:
		s = min(sx, sy)
	}
	if zoom > 0 {
		s *= zoom
	}
	w, h := float64(srcW)*s, float64(srcH)*s
	return Placement{
		Scale: s,
		X:     float64(box.Min.X) + (bw-w)/2 + panX,
		Y:     float64(box.Min.Y) + (bh-h)/2 + panY,
	}
}

// DrawImage draws img into box, clipped to the box.
func DrawImage(dst, img *ebiten.Image, box image.Rectangle, mode FitMode, zoom, panX, panY float64) {
	if img == nil || box.Empty() {
		return
	}
	b := img.Bounds()
	p := Place(b.Dx(), b.Dy(), box, mode, zoom, panX, panY)
	clip, ok := dst.SubImage(box.Intersect(dst.Bounds())).(*ebiten.Image)
	if !ok {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(p.Scale, p.Scale)
	op.GeoM.Translate(p.X, p.Y)
	op.Filter = ebiten.FilterLinear
	clip.DrawImage(img, op)
}

// Placeholder marks a box whose image could not be loaded.
func Placeholder(dst *ebiten.Image, box image.Rectangle, label string, face text.Face, border, fg color.Color) {
	FillRect(dst, box, color.RGBA{0, 20, 0, 160})
	StrokeRect(dst, box, border)
	c := box.Min.Add(box.Max).Div(2)
	TextMiddle(dst, label, face, float64(c.X), float64(c.Y), fg)
}
