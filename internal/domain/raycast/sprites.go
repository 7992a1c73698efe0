package raycast

import (
	"image/color"
	"math"
	"sort"
)

const (
	spriteNearClip   = 0.2
	spriteEdgeMargin = 0.25
)

// Sprite is a billboard in world space.
type Sprite struct {
	X, Y     float64
	Color    color.RGBA
	Size     float64
	Emissive uint8 // additive halo alpha, 0 = none
}

// Run is a half-open range of visible screen columns [X0, X1).
type Run struct {
	X0, X1 int
}

// SpriteDraw is a projected sprite with its unoccluded column runs.
type SpriteDraw struct {
	Sprite Sprite
	Dist   float64
	Left   int
	Top    int
	Width  int
	Height int
	Runs   []Run
}

// Halo reports whether an additive glow should be drawn under the sprite.
func (d SpriteDraw) Halo() bool {
	return d.Sprite.Emissive > 0
}

// Composite projects sprites against the depth buffer and returns them in
// painter's order (farthest first). Sprites behind the near clip or
// outside the field of view are dropped; a sprite column survives only
// where it is closer than the wall in that column.
func Composite(sprites []Sprite, p Pose, cam Camera, zbuf []float64) []SpriteDraw {
	order := make([]Sprite, len(sprites))
	copy(order, sprites)
	sort.SliceStable(order, func(i, j int) bool {
		return distSq(order[i], p) > distSq(order[j], p)
	})

	proj := cam.Projection()
	horizon := cam.Horizon()
	halfFOV := cam.FOV / 2

	var out []SpriteDraw
	for _, sp := range order {
		dx, dy := sp.X-p.X, sp.Y-p.Y
		dist := math.Hypot(dx, dy)
		if dist < spriteNearClip {
			continue
		}
		bearing := NormalizeAngle(math.Atan2(dy, dx) - p.Angle)
		if math.Abs(bearing) > halfFOV+spriteEdgeMargin {
			continue
		}

		size := sp.Size
		if size <= 0 {
			size = 1
		}
		screenX := int(math.Tan(bearing)*proj + float64(cam.Width)/2)
		h := int(proj / dist * size)
		w := h / 2
		d := SpriteDraw{
			Sprite: sp,
			Dist:   dist,
			Left:   screenX - w/2,
			Top:    horizon - h/2,
			Width:  w,
			Height: h,
		}

		start := -1
		lo, hi := max(0, d.Left), min(len(zbuf), d.Left+w)
		for x := lo; x < hi; x++ {
			visible := dist < zbuf[x]
			if visible && start < 0 {
				start = x
			}
			if !visible && start >= 0 {
				d.Runs = append(d.Runs, Run{start, x})
				start = -1
			}
		}
		if start >= 0 {
			d.Runs = append(d.Runs, Run{start, hi})
		}
		out = append(out, d)
	}
	return out
}

// NormalizeAngle wraps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Remainder(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func distSq(s Sprite, p Pose) float64 {
	dx, dy := s.X-p.X, s.Y-p.Y
	return dx*dx + dy*dy
}
