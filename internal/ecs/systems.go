package ecs

import (
	"math"

	"github.com/yohamta/donburi"
)

// Flicker shape: a slow sine breath with short dropouts.
const (
	flickerFloor   = 0.55
	dropoutEdge    = 0.93
	dropoutDivisor = 3
)

// FlickerGlow returns a lamp's glow at time t.
func FlickerGlow(base uint8, f Flicker, t float64) uint8 {
	if base == 0 || f.Hz <= 0 {
		return base
	}
	s := 0.5 + 0.5*math.Sin(2*math.Pi*f.Hz*t+f.Phase)
	g := float64(base) * (flickerFloor + (1-flickerFloor)*s)
	if math.Sin(2*math.Pi*f.Hz*0.37*t+f.Phase*1.3) > dropoutEdge {
		g /= dropoutDivisor
	}
	return uint8(math.Round(g))
}

// UpdateFlicker sets the glow of every flickering billboard for time t.
func UpdateFlicker(w donburi.World, t float64) {
	flickering.Each(w, func(e *donburi.Entry) {
		b := BillboardComponent.Get(e)
		b.Glow = FlickerGlow(b.Emissive, *FlickerComponent.Get(e), t)
	})
}
