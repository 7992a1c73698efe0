package raycast

import "sort"

// DoorLabel is the merged screen span of one door cell, for the label pass.
type DoorLabel struct {
	Cell Coord
	Text string
	MinX int
	MaxX int
	Top  int // mean top row of the wall slices
}

// CenterX returns the horizontal centre of the span.
func (l DoorLabel) CenterX() int {
	return (l.MinX + l.MaxX) / 2
}

// CollectLabels unions the columns of every door hit within maxDist into
// one span per door cell. Output is ordered by cell for stable drawing.
func CollectLabels(hits []Hit, g *Grid, cam Camera, maxDist float64) []DoorLabel {
	type acc struct {
		minX, maxX int
		sumTop, n  int
	}
	spans := make(map[Coord]*acc)

	for x, h := range hits {
		if !h.Code.IsDoor() || h.Dist > maxDist {
			continue
		}
		top, _ := cam.WallSpan(h.Dist)
		a, ok := spans[h.Cell]
		if !ok {
			spans[h.Cell] = &acc{minX: x, maxX: x, sumTop: top, n: 1}
			continue
		}
		a.minX = min(a.minX, x)
		a.maxX = max(a.maxX, x)
		a.sumTop += top
		a.n++
	}

	out := make([]DoorLabel, 0, len(spans))
	for c, a := range spans {
		out = append(out, DoorLabel{
			Cell: c,
			Text: g.Label(c),
			MinX: a.minX,
			MaxX: a.maxX,
			Top:  a.sumTop / a.n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cell.Y != out[j].Cell.Y {
			return out[i].Cell.Y < out[j].Cell.Y
		}
		return out[i].Cell.X < out[j].Cell.X
	})
	return out
}
