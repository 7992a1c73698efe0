package quarry

import (
	"fmt"

	"github.com/younwookim/fbcterm/internal/domain/timer"
)

// Extraction amount bounds.
const (
	MinAmount     = 1
	MaxAmount     = 9
	DefaultAmount = 2
)

// Result classifies an extraction attempt.
type Result int

const (
	// ResultBlocked means the cell was empty; nothing changed.
	ResultBlocked Result = iota
	// ResultLimited means a limited cell was drained.
	ResultLimited
	// ResultRich means a rich vein was mined.
	ResultRich
	// ResultBusy means the drone is still travelling.
	ResultBusy
)

// Outcome describes what an extraction attempt did.
type Outcome struct {
	Result Result
	Row    int
	Col    int
	Gain   int
}

// Success reports whether the attempt yielded anything.
func (o Outcome) Success() bool {
	return o.Result == ResultLimited || o.Result == ResultRich
}

// Message is the status line shown for the outcome.
func (o Outcome) Message() string {
	coord := Coord(o.Row, o.Col)
	switch o.Result {
	case ResultBlocked:
		return fmt.Sprintf("%s is EMPTY — extraction blocked.", coord)
	case ResultLimited:
		return fmt.Sprintf("Limited yield at %s: +%d", coord, o.Gain)
	case ResultRich:
		return fmt.Sprintf("Rich vein at %s: +%d", coord, o.Gain)
	default:
		return "Drone in flight. Stand by."
	}
}

// Game is the quarry state: grid, selection, amount, cooldown and the
// optional in-flight job. While the cooldown runs, selection and amount
// are frozen and no new extraction can start.
type Game struct {
	grid     *Grid
	row, col int
	amount   int
	cooldown *timer.Cooldown
	job      *Job
	total    int
	clock    float64
}

// NewGame creates a game over grid with the given cooldown in seconds.
func NewGame(grid *Grid, cooldown float64) *Game {
	return &Game{
		grid:     grid,
		amount:   DefaultAmount,
		cooldown: timer.NewCooldown(cooldown),
	}
}

// Grid returns the quarry field.
func (g *Game) Grid() *Grid { return g.grid }

// Selection returns the selected (row, col).
func (g *Game) Selection() (int, int) { return g.row, g.col }

// Amount returns the extraction amount.
func (g *Game) Amount() int { return g.amount }

// Total returns the cumulative yield.
func (g *Game) Total() int { return g.total }

// Cooldown returns the seconds left before the next extraction.
func (g *Game) Cooldown() float64 { return g.cooldown.Remaining() }

// CoolingDown reports whether actions are currently gated.
func (g *Game) CoolingDown() bool { return g.cooldown.Active() }

// Job returns the in-flight job, or nil.
func (g *Game) Job() *Job { return g.job }

// Clock returns the seconds elapsed since the game started.
func (g *Game) Clock() float64 { return g.clock }

// Move shifts the selection, wrapping at the edges.
// Returns false while cooling down.
func (g *Game) Move(dRow, dCol int) bool {
	if g.cooldown.Active() {
		return false
	}
	g.row = wrap(g.row+dRow, g.grid.Rows())
	g.col = wrap(g.col+dCol, g.grid.Cols())
	return true
}

// AdjustAmount changes the amount by delta, clamped to [1,9].
// Returns false while cooling down.
func (g *Game) AdjustAmount(delta int) bool {
	return g.SetAmount(g.amount + delta)
}

// SetAmount sets the amount, clamped to [1,9].
// Returns false while cooling down.
func (g *Game) SetAmount(n int) bool {
	if g.cooldown.Active() {
		return false
	}
	g.amount = clamp(n, MinAmount, MaxAmount)
	return true
}

// Extract mines the selected cell. from and to are the drone's launch
// point and the selected cell's centre in screen space.
func (g *Game) Extract(from, to Point) Outcome {
	out := Outcome{Row: g.row, Col: g.col}
	if g.cooldown.Active() {
		out.Result = ResultBusy
		return out
	}

	switch g.grid.At(g.row, g.col) {
	case Limited:
		out.Result = ResultLimited
		out.Gain = min(1, g.amount)
		g.grid.Set(g.row, g.col, Empty)
	case Rich:
		out.Result = ResultRich
		out.Gain = min(2, g.amount)
		g.grid.Set(g.row, g.col, Cell(max(0, 2-out.Gain)))
	default:
		out.Result = ResultBlocked
		return out
	}

	g.total += out.Gain
	g.cooldown.Start()
	if g.cooldown.Active() {
		g.job = &Job{Row: g.row, Col: g.col, From: from, To: to}
	}
	return out
}

// Update advances the cooldown and the drone trip. The job is dropped on
// the same tick the cooldown expires.
func (g *Game) Update(dt float64) {
	g.clock += dt
	if !g.cooldown.Active() {
		g.job = nil
		return
	}
	expired := g.cooldown.Tick(dt)
	if g.job != nil {
		g.job.advance(g.cooldown.Fraction())
	}
	if expired {
		g.job = nil
	}
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
