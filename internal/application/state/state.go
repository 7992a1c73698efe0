// Package state names the lifecycle phases shared by overlays.
package state

// Phase is the lifecycle phase of a transient overlay
type Phase int

const (
	PhaseOpening Phase = iota
	PhaseSteady
	PhaseClosing
	PhaseDisposed
)

// String returns the string representation of the phase.
// The values double as looplab/fsm state names.
func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseSteady:
		return "steady"
	case PhaseClosing:
		return "closing"
	case PhaseDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// ParsePhase maps a state name back to its Phase.
func ParsePhase(s string) (Phase, bool) {
	for p := PhaseOpening; p <= PhaseDisposed; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}

// Terminal reports whether no further transition is possible.
func (p Phase) Terminal() bool {
	return p == PhaseDisposed
}

// Visible reports whether an overlay in this phase should be drawn.
func (p Phase) Visible() bool {
	return p != PhaseDisposed
}
