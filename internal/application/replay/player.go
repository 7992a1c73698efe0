package replay

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
)

type frame struct {
	events []input.Event
	held   input.Held
}

// Player feeds recorded frames back as input.
type Player struct {
	seed   int64
	frames []frame
	pos    int
	held   input.Held
}

// NewPlayer decodes data. Unknown key names fail the whole recording.
func NewPlayer(data ReplayData) (*Player, error) {
	p := &Player{seed: data.Seed, frames: make([]frame, len(data.Frames)), held: input.Held{}}
	for i, fi := range data.Frames {
		f := frame{held: input.Held{}}
		for _, er := range fi.Events {
			ev, err := er.Decode()
			if err != nil {
				return nil, fmt.Errorf("frame %d: %w", fi.F, err)
			}
			f.events = append(f.events, ev)
		}
		for _, name := range fi.Held {
			k, ok := ParseKey(name)
			if !ok {
				return nil, fmt.Errorf("frame %d: unknown key %q", fi.F, name)
			}
			f.held[k] = true
		}
		p.frames[i] = f
	}
	return p, nil
}

// Poll returns the next recorded frame's events. After the last frame it
// returns nothing and no keys are held.
func (p *Player) Poll() []input.Event {
	if p.pos >= len(p.frames) {
		p.held = input.Held{}
		return nil
	}
	f := p.frames[p.pos]
	p.pos++
	p.held = f.held
	return f.events
}

// Pressed implements input.KeyState.
func (p *Player) Pressed(k ebiten.Key) bool {
	return p.held[k]
}

// Done reports whether every frame has been played.
func (p *Player) Done() bool {
	return p.pos >= len(p.frames)
}

// CurrentFrame returns the current frame number
func (p *Player) CurrentFrame() int {
	return p.pos
}

// TotalFrames returns the total number of frames
func (p *Player) TotalFrames() int {
	return len(p.frames)
}

// Seed returns the seed used for the recording
func (p *Player) Seed() int64 {
	return p.seed
}

// Reset rewinds to the first frame
func (p *Player) Reset() {
	p.pos = 0
	p.held = input.Held{}
}
