// Package render holds the drawing helpers shared by scenes and overlays:
// text placement, panels, the page header, word wrap and image fitting.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Text draws s with its top-left corner at (x, y).
func Text(dst *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(dst, s, face, op)
}

// TextCentered draws s horizontally centred on cx with its top at y.
func TextCentered(dst *ebiten.Image, s string, face text.Face, cx, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(clr)
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}

// TextMiddle draws s centred on (cx, cy).
func TextMiddle(dst *ebiten.Image, s string, face text.Face, cx, cy float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.LayoutOptions.PrimaryAlign = text.AlignCenter
	op.LayoutOptions.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, face, op)
}

// TextShadow draws s with a one-colour drop shadow offset by (d, d).
func TextShadow(dst *ebiten.Image, s string, face text.Face, x, y, d float64, clr, shadow color.Color) {
	Text(dst, s, face, x+d, y+d, shadow)
	Text(dst, s, face, x, y, clr)
}

// Width returns the advance of s in face.
func Width(s string, face text.Face) float64 {
	return text.Advance(s, face)
}

// LineHeight returns the line height of face.
func LineHeight(face text.Face) float64 {
	m := face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}
