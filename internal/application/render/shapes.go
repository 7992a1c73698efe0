package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Fill paints a rectangle.
func Fill(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.FillRect(dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

// FillRect paints r.
func FillRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	Fill(dst, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), clr)
}

// Stroke outlines a rectangle with a 1 px line.
func Stroke(dst *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 1, clr, false)
}

// StrokeRect outlines r.
func StrokeRect(dst *ebiten.Image, r image.Rectangle, clr color.Color) {
	Stroke(dst, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), clr)
}

// Panel is a translucent fill with a border.
func Panel(dst *ebiten.Image, r image.Rectangle, fill, border color.Color) {
	FillRect(dst, r, fill)
	StrokeRect(dst, r, border)
}

// Pulse returns the highlight alpha for time t in seconds.
func Pulse(t float64) uint8 {
	return uint8(60 + 60*(0.5+0.5*math.Sin(t*6)))
}

// Highlight draws the pulsing selection bar.
func Highlight(dst *ebiten.Image, r image.Rectangle, t float64, border color.Color) {
	a := Pulse(t)
	FillRect(dst, r, color.RGBA{0, a, 0, a})
	StrokeRect(dst, r, border)
}

// Blink reports whether a blinking element is visible at t, toggling
// every period seconds.
func Blink(t, period float64) bool {
	if period <= 0 {
		return true
	}
	return int(t/period)%2 == 0
}

// Scanlines darkens every second row.
func Scanlines(dst *ebiten.Image, alpha uint8) {
	if alpha == 0 {
		return
	}
	b := dst.Bounds()
	clr := color.RGBA{0, 0, 0, alpha}
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		vector.FillRect(dst, float32(b.Min.X), float32(y), float32(b.Dx()), 1, clr, false)
	}
}

// Veil covers the whole target.
func Veil(dst *ebiten.Image, clr color.Color) {
	b := dst.Bounds()
	Fill(dst, float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()), clr)
}

// Bar draws a progress bar filled to frac.
func Bar(dst *ebiten.Image, r image.Rectangle, frac float64, fill, border color.Color) {
	frac = math.Max(0, math.Min(1, frac))
	Fill(dst, float64(r.Min.X), float64(r.Min.Y), float64(r.Dx())*frac, float64(r.Dy()), fill)
	StrokeRect(dst, r, border)
}
