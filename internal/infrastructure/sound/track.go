package sound

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Track is an opened sound with its player and, when the source had to be
// transcoded, the temp file that backs it.
type Track struct {
	player *audio.Player
	length time.Duration
	temp   string
	closed bool
}

// Play starts or resumes playback.
func (t *Track) Play() {
	if t.player != nil {
		t.player.Play()
	}
}

// Pause pauses playback.
func (t *Track) Pause() {
	if t.player != nil {
		t.player.Pause()
	}
}

// Toggle flips between playing and paused.
func (t *Track) Toggle() {
	if t.Playing() {
		t.Pause()
	} else {
		t.Play()
	}
}

// Playing reports whether the track is audible.
func (t *Track) Playing() bool {
	return t.player != nil && t.player.IsPlaying()
}

// Stop pauses and rewinds.
func (t *Track) Stop() {
	t.Pause()
	t.seekTo(0)
}

// Restart rewinds and plays.
func (t *Track) Restart() {
	t.seekTo(0)
	t.Play()
}

// Seek moves the play head by delta, clamped to the track.
func (t *Track) Seek(delta time.Duration) {
	t.seekTo(t.Position() + delta)
}

func (t *Track) seekTo(pos time.Duration) {
	if t.player == nil {
		return
	}
	pos = max(0, pos)
	if t.length > 0 {
		pos = min(pos, t.length)
	}
	_ = t.player.SetPosition(pos)
}

// Position returns the play head.
func (t *Track) Position() time.Duration {
	if t.player == nil {
		return 0
	}
	return t.player.Position()
}

// Length returns the track duration, zero for endless loops.
func (t *Track) Length() time.Duration {
	return t.length
}

// SetVolume sets the linear volume.
func (t *Track) SetVolume(v float64) {
	if t.player != nil {
		t.player.SetVolume(v)
	}
}

// Temp returns the transcoded temp file, if any.
func (t *Track) Temp() string {
	return t.temp
}

// Close stops playback and removes the temp file. It is safe to call more
// than once.
func (t *Track) Close() error {
	if t == nil || t.closed {
		return nil
	}
	t.closed = true

	var errs []error
	if t.player != nil {
		t.player.Pause()
		if err := t.player.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close player: %w", err))
		}
	}
	if t.temp != "" {
		if err := os.Remove(t.temp); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove %s: %w", t.temp, err))
		}
	}
	return errors.Join(errs...)
}
