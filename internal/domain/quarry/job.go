package quarry

import "math"

// Point is a screen-space position.
type Point struct {
	X, Y float64
}

// Phase is the stage of a drone trip.
type Phase int

const (
	PhaseAscend Phase = iota
	PhaseHover
	PhaseDescend
)

// Phase boundaries as fractions of the trip.
const (
	hoverStart   = 0.45
	descendStart = 0.55
	bobAmplitude = 2.0
	bobRate      = 0.012 // per millisecond
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseAscend:
		return "Ascend"
	case PhaseHover:
		return "Hover"
	case PhaseDescend:
		return "Descend"
	default:
		return "Unknown"
	}
}

// Job is an in-flight extraction: the drone travels from From to To,
// hovers, and returns. Its progress mirrors the quarry cooldown.
type Job struct {
	Row, Col int
	From, To Point
	fraction float64
}

// Fraction returns trip progress in [0,1].
func (j *Job) Fraction() float64 {
	return j.fraction
}

// advance moves progress forward; it never decreases.
func (j *Job) advance(f float64) {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	if f > j.fraction {
		j.fraction = f
	}
}

// Phase returns the current trip stage.
func (j *Job) Phase() Phase {
	switch {
	case j.fraction < hoverStart:
		return PhaseAscend
	case j.fraction < descendStart:
		return PhaseHover
	default:
		return PhaseDescend
	}
}

// Position returns the drone position. clock is the scene clock in seconds
// and only drives the hover bob.
func (j *Job) Position(clock float64) Point {
	t := j.fraction
	x := j.To.X
	switch j.Phase() {
	case PhaseAscend:
		k := Smoothstep(t / hoverStart)
		return Point{x, j.From.Y + (j.To.Y-j.From.Y)*k}
	case PhaseHover:
		return Point{x, j.To.Y + math.Sin(clock*1000*bobRate)*bobAmplitude}
	default:
		k := Smoothstep((t - descendStart) / (1 - descendStart))
		return Point{x, j.To.Y + (j.From.Y-j.To.Y)*k}
	}
}

// Smoothstep eases x in [0,1] with 3x²-2x³.
func Smoothstep(x float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x * x * (3 - 2*x)
}
