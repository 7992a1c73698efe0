package raycast

import "math"

// Pose is the player position in grid units and heading in radians.
type Pose struct {
	X, Y  float64
	Angle float64
}

// Cell returns the grid cell containing the pose.
func (p Pose) Cell() Coord {
	return Coord{int(math.Floor(p.X)), int(math.Floor(p.Y))}
}

// Ahead returns the point dist units in front of the pose.
func (p Pose) Ahead(dist float64) (float64, float64) {
	return p.X + math.Cos(p.Angle)*dist, p.Y + math.Sin(p.Angle)*dist
}

// Motion is the per-frame movement intent. Each axis is in [-1, 1].
type Motion struct {
	Forward float64
	Strafe  float64
	Turn    float64
	Sprint  bool
}

// Speeds are movement rates in cells/second and radians/second.
type Speeds struct {
	Move   float64
	Strafe float64
	Rotate float64
}

// DefaultSpeeds are the Oceanview movement rates.
var DefaultSpeeds = Speeds{Move: 3.1, Strafe: 2.7, Rotate: 2.4}

// Step moves the pose by one frame of motion. Each axis is tested on its
// own, so a blocked axis does not cancel the other and the player slides
// along walls.
func (p *Pose) Step(g *Grid, m Motion, s Speeds, dt float64) {
	mul := 1.0
	if m.Sprint {
		mul = 2.0
	}
	fwd := m.Forward * s.Move * mul * dt
	stf := m.Strafe * s.Strafe * mul * dt

	ca, sa := math.Cos(p.Angle), math.Sin(p.Angle)
	nx := p.X + (ca*fwd - sa*stf)
	ny := p.Y + (sa*fwd + ca*stf)

	if g.Passable(int(math.Floor(nx)), int(math.Floor(p.Y))) {
		p.X = nx
	}
	if g.Passable(int(math.Floor(p.X)), int(math.Floor(ny))) {
		p.Y = ny
	}

	p.Angle += m.Turn * s.Rotate * dt
}
