package ecs

import (
	"image/color"

	"github.com/yohamta/donburi"
)

// Transform is a prop's position in grid units.
type Transform struct {
	X, Y float64
}

// Billboard is how a prop is drawn: a flat coloured card facing the
// viewer. Glow is the emissive alpha for the current frame.
type Billboard struct {
	Kind     string
	Color    color.RGBA
	Size     float64
	Emissive uint8
	Glow     uint8
}

// Flicker animates a billboard's glow at Hz cycles per second.
type Flicker struct {
	Hz    float64
	Phase float64
}

// Component types
var (
	TransformComponent = donburi.NewComponentType[Transform]()
	BillboardComponent = donburi.NewComponentType[Billboard]()
	FlickerComponent   = donburi.NewComponentType[Flicker]()
)
