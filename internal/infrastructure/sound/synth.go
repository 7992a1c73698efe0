package sound

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// SampleRate is the output rate of every sound the terminal plays.
const SampleRate = 44100

// Beep describes a sequence of identical sine tones.
type Beep struct {
	Count  int
	Freq   float64
	Tone   time.Duration
	Gap    time.Duration
	Volume float64 // linear gain in (0, 1]
}

// Stock beeps.
var (
	BeepOK        = Beep{Count: 1, Freq: 980, Tone: 100 * time.Millisecond, Volume: 0.22}
	BeepError     = Beep{Count: 2, Freq: 320, Tone: 50 * time.Millisecond, Gap: 70 * time.Millisecond, Volume: 0.22}
	BeepDecrypt   = Beep{Count: 3, Freq: 820, Tone: 60 * time.Millisecond, Gap: 60 * time.Millisecond, Volume: 0.20}
	BeepThreshold = Beep{Count: 3, Freq: 920, Tone: 70 * time.Millisecond, Gap: 70 * time.Millisecond, Volume: 0.22}
	BeepRing      = Beep{Count: 2, Freq: 440, Tone: 400 * time.Millisecond, Gap: 200 * time.Millisecond, Volume: 0.18}
	BeepFlash     = Beep{Count: 1, Freq: 660, Tone: 60 * time.Millisecond, Volume: 0.18}
)

// sine is an endless sine oscillator.
type sine struct {
	freq  float64
	phase float64
	rate  beep.SampleRate
}

func (s *sine) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0], samples[i][1] = v, v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// Streamer builds the beep as a finite beep.Streamer.
func (b Beep) Streamer(sr beep.SampleRate) (beep.Streamer, error) {
	if b.Count <= 0 || b.Tone <= 0 {
		return nil, fmt.Errorf("invalid beep: count %d, tone %v", b.Count, b.Tone)
	}
	if b.Freq <= 0 || b.Freq >= float64(sr)/2 {
		return nil, fmt.Errorf("invalid beep frequency %.1f Hz at %d Hz", b.Freq, sr)
	}

	parts := make([]beep.Streamer, 0, 2*b.Count)
	for i := 0; i < b.Count; i++ {
		parts = append(parts, beep.Take(sr.N(b.Tone), &sine{freq: b.Freq, rate: sr}))
		if b.Gap > 0 {
			parts = append(parts, beep.Silence(sr.N(b.Gap)))
		}
	}
	return withVolume(beep.Seq(parts...), b.Volume), nil
}

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Synthesize renders the beep as 16-bit little-endian stereo PCM.
func Synthesize(b Beep) ([]byte, error) {
	s, err := b.Streamer(SampleRate)
	if err != nil {
		return nil, err
	}
	return Drain(s), nil
}

// Drain reads s to the end and encodes it as 16-bit little-endian stereo.
func Drain(s beep.Streamer) []byte {
	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[0])))
			out = binary.LittleEndian.AppendUint16(out, uint16(toInt16(frame[1])))
		}
		if !ok {
			return out
		}
	}
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}
