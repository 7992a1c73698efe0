// Package sound synthesizes beeps and plays music, audio logs and key
// clicks through ebiten's audio context.
package sound

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// KeyClickDebounce is the minimum gap between two key clicks.
const KeyClickDebounce = 0.035

// ErrNoAudio is returned when playback is requested without an audio
// context.
var ErrNoAudio = errors.New("audio output unavailable")

type pcmStream interface {
	io.ReadSeeker
	Length() int64
}

// Mixer owns the audio context and everything played through it. A Mixer
// without a context is silent but otherwise fully functional.
type Mixer struct {
	ctx        *audio.Context
	transcoder *Transcoder
	beeps      map[Beep][]byte
	keyClick   []byte
	lastClick  float64
}

// NewMixer wraps ctx, which may be nil.
func NewMixer(ctx *audio.Context, tr *Transcoder) *Mixer {
	if tr == nil {
		tr = NewTranscoder()
	}
	return &Mixer{
		ctx:        ctx,
		transcoder: tr,
		beeps:      make(map[Beep][]byte),
		lastClick:  -1,
	}
}

// Enabled reports whether sound reaches the speakers.
func (m *Mixer) Enabled() bool {
	return m != nil && m.ctx != nil
}

// Transcoder returns the converter used for undecodable sources.
func (m *Mixer) Transcoder() *Transcoder {
	return m.transcoder
}

// Play synthesizes (once) and plays a beep.
func (m *Mixer) Play(b Beep) {
	if !m.Enabled() {
		return
	}
	pcm, ok := m.beeps[b]
	if !ok {
		var err error
		pcm, err = Synthesize(b)
		if err != nil {
			log.Printf("[audio] %v", err)
			return
		}
		m.beeps[b] = pcm
	}
	m.ctx.NewPlayerFromBytes(pcm).Play()
}

// LoadKeyClick decodes the global key click sound.
func (m *Mixer) LoadKeyClick(path string) error {
	if !m.Enabled() {
		return ErrNoAudio
	}
	s, err := m.decodeFile(path)
	if err != nil {
		return err
	}
	pcm, err := io.ReadAll(s)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	m.keyClick = pcm
	return nil
}

// KeyClick plays the key click unless one played less than
// KeyClickDebounce seconds before now. It reports whether the click was
// accepted.
func (m *Mixer) KeyClick(now float64) bool {
	if m.lastClick >= 0 && now-m.lastClick < KeyClickDebounce {
		return false
	}
	m.lastClick = now
	if m.Enabled() && m.keyClick != nil {
		p := m.ctx.NewPlayerFromBytes(m.keyClick)
		p.SetVolume(0.45)
		p.Play()
	}
	return true
}

// Open prepares a track for path. If the file cannot be decoded directly it
// is transcoded to a temp WAV owned by the returned track.
func (m *Mixer) Open(ctx context.Context, path string, loop bool) (*Track, error) {
	if !m.Enabled() {
		return nil, ErrNoAudio
	}

	var temp string
	s, err := m.decodeFile(path)
	if err != nil {
		tmp, terr := m.transcoder.ToTempWAV(ctx, path)
		if terr != nil {
			return nil, errors.Join(err, terr)
		}
		s, err = m.decodeFile(tmp)
		if err != nil {
			os.Remove(tmp)
			return nil, err
		}
		temp = tmp
	}

	t := &Track{temp: temp}
	var src io.Reader = s
	if loop {
		src = audio.NewInfiniteLoop(s, s.Length())
	} else {
		t.length = time.Duration(s.Length()) * time.Second / time.Duration(SampleRate*4)
	}
	p, err := m.ctx.NewPlayer(src)
	if err != nil {
		t.Close()
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	t.player = p
	return t, nil
}

func (m *Mixer) decodeFile(path string) (pcmStream, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	r := bytes.NewReader(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(SampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithSampleRate(SampleRate, r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("unsupported audio format %s", filepath.Ext(path))
}
