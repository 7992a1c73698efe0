package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
)

const (
	headerTopPad  = 36
	headerSidePad = 40
	logoScale     = 0.55
)

// HeaderLayout computes the title size and the content rectangle left of
// the logo for a w×h screen. logoW is the scaled logo width, 0 without a
// logo.
func HeaderLayout(w, h int, logoW int) (titleSize float64, content image.Rectangle) {
	titleSize = float64(max(28, min(64, w/22)))
	if logoW <= 0 {
		logoW = 120
	}
	right := w - headerSidePad - logoW - headerSidePad
	if right <= headerSidePad {
		right = w - headerSidePad
	}
	top := headerTopPad + int(titleSize*1.25) + 24
	bottom := h - 40
	content = image.Rect(headerSidePad, top,
		headerSidePad+max(50, right-headerSidePad),
		top+max(50, bottom-top))
	return titleSize, content
}

// Header draws the title on the left and the green-tinted logo on the
// right, returning the content rectangle below the title.
func Header(dst *ebiten.Image, faces *assets.Faces, title string, logo *ebiten.Image, fg color.Color) image.Rectangle {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	logoW := 0
	if logo != nil {
		lw, lh := logo.Bounds().Dx(), logo.Bounds().Dy()
		s := float64(h) * logoScale / float64(lh)
		logoW = int(float64(lw) * s)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(float64(w-headerSidePad-logoW), headerTopPad)
		op.ColorScale.Scale(0, 0.67, 0, 1)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(logo, op)
	} else {
		Text(dst, "FBC", faces.Face(72, true), float64(w-headerSidePad-120), headerTopPad, fg)
	}

	size, content := HeaderLayout(w, h, logoW)
	maxW := float64(max(120, w-logoW-3*headerSidePad))
	face := faces.Face(size, true)
	for Width(title, face) > maxW && size > 24 {
		size -= 2
		face = faces.Face(size, true)
	}
	Text(dst, title, face, headerSidePad, headerTopPad, fg)
	return content
}

// Footer draws a hint line at the bottom-left of the screen.
func Footer(dst *ebiten.Image, faces *assets.Faces, hint string, clr color.Color) {
	h := dst.Bounds().Dy()
	Text(dst, hint, faces.Small(), headerSidePad, float64(h-30), clr)
}
