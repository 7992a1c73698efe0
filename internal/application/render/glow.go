package render

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

var (
	whiteOnce sync.Once
	white     *ebiten.Image
)

func whitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		white = ebiten.NewImage(1, 1)
		white.Fill(color.White)
	})
	return white
}

// Glow adds clr (straight alpha) onto r with additive blending.
func Glow(dst *ebiten.Image, r image.Rectangle, clr color.RGBA) {
	if r.Empty() || clr.A == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	a := float32(clr.A) / 255
	op.ColorScale.Scale(float32(clr.R)/255*a, float32(clr.G)/255*a, float32(clr.B)/255*a, a)
	op.Blend = ebiten.BlendLighter
	dst.DrawImage(whitePixel(), op)
}
