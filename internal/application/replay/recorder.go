package replay

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
)

// Source is the live input a Recorder wraps.
type Source interface {
	Poll() []input.Event
	input.KeyState
}

// Recorder passes input through while recording it.
type Recorder struct {
	src       Source
	data      ReplayData
	recording bool
	frame     int
	held      input.Held
}

// NewRecorder wraps src. seed is stored so random events replay the same.
func NewRecorder(src Source, seed int64) *Recorder {
	return &Recorder{
		src: src,
		data: ReplayData{
			Version:   Version,
			Seed:      seed,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // about a minute at 60 TPS
		},
		recording: true,
		held:      input.Held{},
	}
}

// Poll reads the frame's events from the source and records them with the
// keys held at the same moment.
func (r *Recorder) Poll() []input.Event {
	events := r.src.Poll()
	clear(r.held)
	fi := FrameInput{F: r.frame}
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if r.src.Pressed(k) {
			r.held[k] = true
			fi.Held = append(fi.Held, k.String())
		}
	}
	for _, ev := range events {
		fi.Events = append(fi.Events, Encode(ev))
	}
	if r.recording {
		r.data.Frames = append(r.data.Frames, fi)
	}
	r.frame++
	return events
}

// Pressed reports the keys sampled at the last Poll, so the recording
// matches what the frame saw.
func (r *Recorder) Pressed(k ebiten.Key) bool {
	return r.held[k]
}

// Save writes the recording to filename.
func (r *Recorder) Save(filename string) error {
	return Save(filename, r.data)
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recording so far.
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("session_%s.json", time.Now().Format("20060102_150405"))
}
