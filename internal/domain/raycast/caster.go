package raycast

import "math"

const (
	// DefaultStepLimit bounds a single ray march.
	DefaultStepLimit = 1024
	// minDistance keeps the wall height finite.
	minDistance = 1e-4
	// hugeReciprocal stands in for 1/0 on axis-aligned rays.
	hugeReciprocal = 1e30
)

// Camera describes the projection.
type Camera struct {
	FOV       float64 // radians
	Width     int     // screen columns
	Height    int     // screen rows
	MaxDepth  float64
	StepLimit int
}

// DefaultCamera returns the Oceanview projection for a w×h screen.
func DefaultCamera(w, h int) Camera {
	return Camera{
		FOV:       math.Pi / 3,
		Width:     w,
		Height:    h,
		MaxDepth:  32,
		StepLimit: DefaultStepLimit,
	}
}

// Projection returns the distance to the projection plane in pixels.
func (c Camera) Projection() float64 {
	return float64(c.Width) / 2 / math.Tan(c.FOV/2)
}

// Horizon returns the horizon row.
func (c Camera) Horizon() int {
	return c.Height / 2
}

// ColumnAngle un-projects a screen column to a ray angle relative to the
// view direction using the tangent mapping.
func (c Camera) ColumnAngle(x int) float64 {
	screen := float64(x)/float64(c.Width)*2 - 1
	return math.Atan(screen * math.Tan(c.FOV/2))
}

// WallSpan returns the top row and height of a wall slice at dist.
func (c Camera) WallSpan(dist float64) (top, height int) {
	if dist < minDistance {
		dist = minDistance
	}
	height = int(c.Projection() / dist)
	if height > c.Height {
		height = c.Height
	}
	if height < 1 {
		height = 1
	}
	return c.Horizon() - height/2, height
}

// Hit is the result of one screen column.
type Hit struct {
	Dist  float64 // fisheye corrected, > 0
	SideY bool    // the ray crossed a horizontal grid line last
	Code  Code
	Cell  Coord
	U     float64 // texture coordinate across the wall face, [0,1)
	Steps int
}

// March traces a single ray from (px, py) at angle ang through the grid
// using DDA. It returns the perpendicular distance (not fisheye corrected).
// When limit steps pass without a hit the ray reports maxDepth against a
// plain wall.
func March(g *Grid, px, py, ang float64, limit int, maxDepth float64) Hit {
	dirX, dirY := math.Cos(ang), math.Sin(ang)
	mapX, mapY := int(math.Floor(px)), int(math.Floor(py))

	deltaX, deltaY := hugeReciprocal, hugeReciprocal
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}

	stepX, stepY := 1, 1
	sideX := (float64(mapX) + 1 - px) * deltaX
	sideY := (float64(mapY) + 1 - py) * deltaY
	if dirX < 0 {
		stepX = -1
		sideX = (px - float64(mapX)) * deltaX
	}
	if dirY < 0 {
		stepY = -1
		sideY = (py - float64(mapY)) * deltaY
	}

	hit := Hit{Code: CodeWall}
	found := false
	for hit.Steps < limit {
		hit.Steps++
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			hit.SideY = false
		} else {
			sideY += deltaY
			mapY += stepY
			hit.SideY = true
		}
		if code := g.At(mapX, mapY); code != CodeEmpty {
			hit.Code = code
			found = true
			break
		}
	}
	hit.Cell = Coord{mapX, mapY}

	if !found {
		hit.Dist = maxDepth
		hit.Code = CodeWall
		return hit
	}

	var perp float64
	if hit.SideY {
		perp = (float64(mapY) - py + float64(1-stepY)/2) / nonZero(dirY)
	} else {
		perp = (float64(mapX) - px + float64(1-stepX)/2) / nonZero(dirX)
	}
	hit.Dist = math.Abs(perp)

	var wallX float64
	if hit.SideY {
		wallX = px + hit.Dist*dirX
	} else {
		wallX = py + hit.Dist*dirY
	}
	hit.U = wallX - math.Floor(wallX)
	return hit
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1e-6
	}
	return v
}

// Cast traces every screen column. The returned slice has cam.Width hits
// whose Dist doubles as the depth buffer.
func Cast(g *Grid, p Pose, cam Camera) []Hit {
	limit := cam.StepLimit
	if limit <= 0 {
		limit = DefaultStepLimit
	}
	hits := make([]Hit, cam.Width)
	for x := 0; x < cam.Width; x++ {
		rel := cam.ColumnAngle(x)
		h := March(g, p.X, p.Y, p.Angle+rel, limit, cam.MaxDepth)
		h.Dist *= math.Cos(rel)
		if h.Dist < minDistance {
			h.Dist = minDistance
		}
		hits[x] = h
	}
	return hits
}

// DepthBuffer extracts per-column distances.
func DepthBuffer(hits []Hit) []float64 {
	z := make([]float64, len(hits))
	for i, h := range hits {
		z[i] = h.Dist
	}
	return z
}
