package raycast

import (
	"image/color"
	"math"
)

// Tint blends a door kind toward a colour. Near tints are strongest close
// to the viewer, far tints grow with distance.
type Tint struct {
	Color color.RGBA
	Far   bool
}

// Shader grades wall columns. The zero value is not usable; start from
// DefaultShader.
type Shader struct {
	Palette        map[Code]color.RGBA
	WarmX          int
	Tints          map[string]Tint
	FarFadeStart   float64
	FarFadeEnd     float64
	FrameWidth     float64
	FogMax         int
	LabelDistance  float64
	BaseboardRatio int
}

// DefaultShader returns the Oceanview look.
func DefaultShader() Shader {
	return Shader{
		Palette: map[Code]color.RGBA{
			CodeWall:       {92, 62, 32, 255},
			CodeDoor:       {155, 165, 180, 255},
			CodeSymbolDoor: {140, 160, 200, 255},
			CodeCasino:     {230, 180, 80, 255},
			CodeJanitor:    {120, 190, 150, 255},
		},
		WarmX: 7,
		Tints: map[string]Tint{
			"JANITOR": {Color: color.RGBA{40, 120, 120, 255}, Far: true},
			"CASINO":  {Color: color.RGBA{200, 140, 40, 255}},
		},
		FarFadeStart:   7,
		FarFadeEnd:     14,
		FrameWidth:     0.05,
		FogMax:         120,
		LabelDistance:  9,
		BaseboardRatio: 12,
	}
}

// Slice is a shaded wall column ready to draw.
type Slice struct {
	Top       int
	Height    int
	Color     color.RGBA
	Baseboard color.RGBA
	BaseTop   int
	BaseH     int
}

// base returns the palette colour for a code, defaulting to the wall.
func (s Shader) base(c Code) color.RGBA {
	if col, ok := s.Palette[c]; ok {
		return col
	}
	if col, ok := s.Palette[CodeWall]; ok {
		return col
	}
	return color.RGBA{92, 62, 32, 255}
}

// Shade computes the colour of a hit column. The order of the grading
// steps matters: distance falloff, zone grade, side darkening, door tint,
// far fade, panel stripe, door frame, fog.
func (s Shader) Shade(h Hit) color.RGBA {
	base := s.base(h.Code)
	d := h.Dist

	shade := max(40, 255-int(d*28))
	r := int(base.R) * shade / 255
	g := int(base.G) * shade / 255
	b := int(base.B) * shade / 255

	if h.Cell.X < s.WarmX {
		r, g, b = min(255, r+18), max(0, g-4), max(0, b-8)
	} else {
		k := min(40, int(d*2))
		r, g, b = max(0, r-k), max(0, g-k/2), min(255, b+k)
	}

	if h.SideY {
		r, g, b = int(float64(r)*0.78), int(float64(g)*0.78), int(float64(b)*0.82)
	}

	if h.Code.IsDoor() {
		if tint, ok := s.Tints[h.Code.Kind()]; ok {
			var t float64
			if tint.Far {
				t = clamp01((d - 3) / 8)
			} else {
				t = math.Max(0, 1-d/10)
			}
			r, g, b = mix(r, g, b, tint.Color, t)
		}

		if d > s.FarFadeStart && s.FarFadeEnd > s.FarFadeStart {
			t := clamp01((d - s.FarFadeStart) / (s.FarFadeEnd - s.FarFadeStart))
			r, g, b = mix(r, g, b, s.base(CodeWall), t)
		}
	}

	stripe := math.Abs((h.U - 0.5) * 2)
	gain := 1 - 0.08*(1-stripe*stripe)
	r, g, b = int(float64(r)*gain), int(float64(g)*gain), int(float64(b)*gain)

	if h.Code.IsDoor() && (h.U < s.FrameWidth || h.U > 1-s.FrameWidth) {
		r, g, b = int(float64(r)*0.55), int(float64(g)*0.55), int(float64(b)*0.60)
	}

	fog := min(s.FogMax, int(d*10))
	r, g, b = max(0, r-fog/3), max(0, g-fog/3), max(0, b-fog/2)

	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}
}

// Slice shades a hit and lays it out on screen, including the baseboard.
func (s Shader) Slice(h Hit, cam Camera) Slice {
	top, height := cam.WallSpan(h.Dist)
	col := s.Shade(h)

	ratio := s.BaseboardRatio
	if ratio <= 0 {
		ratio = 12
	}
	baseH := max(1, height/ratio)
	return Slice{
		Top:    top,
		Height: height,
		Color:  col,
		Baseboard: color.RGBA{
			uint8(float64(col.R) * 0.6),
			uint8(float64(col.G) * 0.6),
			uint8(float64(col.B) * 0.7),
			255,
		},
		BaseTop: top + height - baseH,
		BaseH:   baseH,
	}
}

func mix(r, g, b int, c color.RGBA, t float64) (int, int, int) {
	return int(float64(r)*(1-t) + float64(c.R)*t),
		int(float64(g)*(1-t) + float64(c.G)*t),
		int(float64(b)*(1-t) + float64(c.B)*t)
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
