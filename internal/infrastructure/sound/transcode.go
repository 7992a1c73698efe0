package sound

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// ErrTranscodeUnavailable is returned when no decoder can turn a source
// into a WAV file.
var ErrTranscodeUnavailable = errors.New("audio transcoder unavailable")

// Transcoder converts audio (or the audio track of a video) into a
// temporary WAV file. MP3 is decoded in-process; anything else needs
// ffmpeg on PATH.
type Transcoder struct {
	ffmpeg string
	dir    string
}

// NewTranscoder looks up ffmpeg once. A missing ffmpeg only limits the
// formats that can be converted.
func NewTranscoder() *Transcoder {
	exe, _ := exec.LookPath("ffmpeg")
	return &Transcoder{ffmpeg: exe}
}

// HasFFmpeg reports whether the external converter was found.
func (t *Transcoder) HasFFmpeg() bool {
	return t.ffmpeg != ""
}

// ToTempWAV converts src and returns the path of a new temp file. The
// caller owns the file and must remove it.
func (t *Transcoder) ToTempWAV(ctx context.Context, src string) (string, error) {
	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}

	var decodeErr error
	if strings.EqualFold(filepath.Ext(src), ".mp3") {
		out, err := t.decodeMP3(src)
		if err == nil {
			return out, nil
		}
		decodeErr = err
	}
	if t.ffmpeg == "" {
		if decodeErr != nil {
			return "", fmt.Errorf("%w: %v", ErrTranscodeUnavailable, decodeErr)
		}
		return "", fmt.Errorf("%w: ffmpeg not found for %s", ErrTranscodeUnavailable, filepath.Base(src))
	}
	return t.runFFmpeg(ctx, src)
}

func (t *Transcoder) decodeMP3(src string) (string, error) {
	f, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}
	streamer, format, err := mp3.Decode(f)
	if err != nil {
		f.Close()
		return "", fmt.Errorf("failed to decode %s: %w", src, err)
	}
	defer streamer.Close()

	out, err := os.CreateTemp(t.dir, "fbcterm-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create temp wav: %w", err)
	}
	if err := wav.Encode(out, streamer, format); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to encode wav: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", fmt.Errorf("failed to write wav: %w", err)
	}
	return out.Name(), nil
}

func (t *Transcoder) runFFmpeg(ctx context.Context, src string) (string, error) {
	out, err := os.CreateTemp(t.dir, "fbcterm-*.wav")
	if err != nil {
		return "", fmt.Errorf("failed to create temp wav: %w", err)
	}
	path := out.Name()
	out.Close()

	cmd := exec.CommandContext(ctx, t.ffmpeg,
		"-y", "-loglevel", "error", "-i", src,
		"-vn", "-acodec", "pcm_s16le", "-ar", fmt.Sprint(SampleRate), "-ac", "2",
		path)
	if err := cmd.Run(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to transcode %s: %w", filepath.Base(src), err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		os.Remove(path)
		return "", fmt.Errorf("failed to transcode %s: empty output", filepath.Base(src))
	}
	return path, nil
}
