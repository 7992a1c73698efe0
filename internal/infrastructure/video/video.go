// Package video decodes video frames through ffmpeg on a background
// goroutine.
package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ErrDecoderUnavailable is returned when ffmpeg or ffprobe is missing.
var ErrDecoderUnavailable = errors.New("video decoder unavailable")

// Info describes the first video stream.
type Info struct {
	Width  int
	Height int
	FPS    float64
}

// Tools holds the resolved executables.
type Tools struct {
	ffmpeg  string
	ffprobe string
}

// NewTools looks up ffmpeg and ffprobe on PATH.
func NewTools() *Tools {
	mpeg, _ := exec.LookPath("ffmpeg")
	probe, _ := exec.LookPath("ffprobe")
	return &Tools{ffmpeg: mpeg, ffprobe: probe}
}

// Available reports whether decoding is possible.
func (t *Tools) Available() bool {
	return t.ffmpeg != "" && t.ffprobe != ""
}

// Probe reads the size and frame rate of path.
func (t *Tools) Probe(ctx context.Context, path string) (Info, error) {
	if !t.Available() {
		return Info{}, ErrDecoderUnavailable
	}
	out, err := exec.CommandContext(ctx, t.ffprobe,
		"-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate",
		"-of", "csv=p=0", path).Output()
	if err != nil {
		return Info{}, fmt.Errorf("failed to probe %s: %w", path, err)
	}
	return parseProbe(string(out))
}

func parseProbe(s string) (Info, error) {
	fields := strings.Split(strings.TrimSpace(strings.SplitN(s, "\n", 2)[0]), ",")
	if len(fields) < 3 {
		return Info{}, fmt.Errorf("unexpected ffprobe output %q", s)
	}
	w, err1 := strconv.Atoi(fields[0])
	h, err2 := strconv.Atoi(fields[1])
	if err := errors.Join(err1, err2); err != nil || w <= 0 || h <= 0 {
		return Info{}, fmt.Errorf("unexpected ffprobe size %q", s)
	}
	return Info{Width: w, Height: h, FPS: parseRate(fields[2])}, nil
}

func parseRate(s string) float64 {
	num, den, ok := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil || n <= 0 {
		return 30
	}
	if !ok {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d <= 0 {
		return 30
	}
	return n / d
}

// Fit scales (w, h) to fit inside (maxW, maxH) keeping the aspect ratio.
// Results are even, as rawvideo scalers expect.
func Fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	s := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	fw, fh := int(math.Round(float64(w)*s))&^1, int(math.Round(float64(h)*s))&^1
	return max(2, fw), max(2, fh)
}

// Stream is a running decode. Frames are RGBA, Width×Height×4 bytes.
type Stream struct {
	Width, Height int

	frames chan []byte
	paused atomic.Bool
	done   atomic.Bool
	err    atomic.Value
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Start launches ffmpeg for path, scaled to w×h, paced at fps.
func (t *Tools) Start(ctx context.Context, path string, w, h int, fps float64) (*Stream, error) {
	if t.ffmpeg == "" {
		return nil, ErrDecoderUnavailable
	}
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, t.ffmpeg,
		"-loglevel", "error", "-i", path,
		"-f", "rawvideo", "-pix_fmt", "rgba",
		"-vf", fmt.Sprintf("scale=%d:%d", w, h), "-an", "-")
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open ffmpeg pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	s := newStream(w, h, cancel)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.pump(ctx, stdout, fps)
		_ = cmd.Wait()
	}()
	return s, nil
}

func newStream(w, h int, cancel context.CancelFunc) *Stream {
	return &Stream{
		Width:  w,
		Height: h,
		frames: make(chan []byte, 1),
		cancel: cancel,
	}
}

// pump reads whole frames from r into the single-slot channel, replacing
// any frame the consumer has not taken yet.
func (s *Stream) pump(ctx context.Context, r io.Reader, fps float64) {
	defer s.done.Store(true)

	var tick <-chan time.Time
	if fps > 0 {
		t := time.NewTicker(time.Duration(float64(time.Second) / fps))
		defer t.Stop()
		tick = t.C
	}

	size := s.Width * s.Height * 4
	for {
		for s.paused.Load() {
			select {
			case <-ctx.Done():
				return
			case <-time.After(20 * time.Millisecond):
			}
		}

		buf := make([]byte, size)
		if _, err := io.ReadFull(r, buf); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) && ctx.Err() == nil {
				s.err.Store(err)
			}
			return
		}

		select {
		case <-s.frames:
		default:
		}
		s.frames <- buf

		if tick != nil {
			select {
			case <-ctx.Done():
				return
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return
		}
	}
}

// Frame returns the newest decoded frame without blocking.
func (s *Stream) Frame() ([]byte, bool) {
	select {
	case f := <-s.frames:
		return f, true
	default:
		return nil, false
	}
}

// SetPaused pauses or resumes decoding.
func (s *Stream) SetPaused(p bool) {
	s.paused.Store(p)
}

// Paused reports the pause state.
func (s *Stream) Paused() bool {
	return s.paused.Load()
}

// Done reports whether the decoder reached the end of the stream.
func (s *Stream) Done() bool {
	return s.done.Load() && len(s.frames) == 0
}

// Err returns the read error that stopped decoding, if any.
func (s *Stream) Err() error {
	if err, ok := s.err.Load().(error); ok {
		return err
	}
	return nil
}

// Close stops ffmpeg and waits for the reader goroutine.
func (s *Stream) Close() {
	s.cancel()
	s.wg.Wait()
}
