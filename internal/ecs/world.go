// Package ecs holds the Oceanview prop world: billboards placed in the
// map, stored as donburi entities, animated by systems each frame.
package ecs

import (
	"math"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
	"github.com/younwookim/fbcterm/internal/domain/raycast"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
)

var (
	billboards = query.NewQuery(filter.Contains(TransformComponent, BillboardComponent))
	flickering = query.NewQuery(filter.Contains(BillboardComponent, FlickerComponent))
)

// World wraps the donburi world with the scene clock.
type World struct {
	world donburi.World
	clock float64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{world: donburi.NewWorld()}
}

// Spawn adds a prop. Props with a flicker rate get a Flicker component;
// its phase is derived from the position so lamps drift apart.
func (w *World) Spawn(p config.PropConfig) donburi.Entity {
	comps := []donburi.IComponentType{TransformComponent, BillboardComponent}
	if p.Flicker > 0 && p.Emissive > 0 {
		comps = append(comps, FlickerComponent)
	}
	e := w.world.Create(comps...)
	entry := w.world.Entry(e)

	TransformComponent.SetValue(entry, Transform{X: p.X, Y: p.Y})
	BillboardComponent.SetValue(entry, Billboard{
		Kind:     p.Kind,
		Color:    p.Color.RGBA(),
		Size:     p.Size,
		Emissive: p.Emissive,
		Glow:     p.Emissive,
	})
	if entry.HasComponent(FlickerComponent) {
		FlickerComponent.SetValue(entry, Flicker{
			Hz:    p.Flicker,
			Phase: math.Mod(p.X*1.7+p.Y*2.3, 2*math.Pi),
		})
	}
	return e
}

// SpawnAll adds every prop of a level.
func (w *World) SpawnAll(props []config.PropConfig) {
	for _, p := range props {
		w.Spawn(p)
	}
}

// Len returns the number of props.
func (w *World) Len() int {
	return billboards.Count(w.world)
}

// Update advances the clock and runs the systems.
func (w *World) Update(dt float64) {
	w.clock += dt
	UpdateFlicker(w.world, w.clock)
}

// Sprites returns the billboards as compositor input.
func (w *World) Sprites() []raycast.Sprite {
	var out []raycast.Sprite
	billboards.Each(w.world, func(e *donburi.Entry) {
		t := TransformComponent.Get(e)
		b := BillboardComponent.Get(e)
		out = append(out, raycast.Sprite{
			X:        t.X,
			Y:        t.Y,
			Color:    b.Color,
			Size:     b.Size,
			Emissive: b.Glow,
		})
	})
	return out
}
