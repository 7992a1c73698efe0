// Package videos lists the terminal's recordings and plays them.
package videos

import (
	"context"
	"errors"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/browse"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/sound"
	"github.com/younwookim/fbcterm/internal/infrastructure/video"
)

// Stream is a running decode, satisfied by *video.Stream.
type Stream interface {
	Frame() ([]byte, bool)
	SetPaused(p bool)
	Paused() bool
	Done() bool
	Err() error
	Close()
}

// StartFunc begins decoding path scaled to fit maxW×maxH and returns the
// stream with its frame size.
type StartFunc func(ctx context.Context, path string, maxW, maxH int) (Stream, image.Point, error)

// FFmpeg returns a StartFunc over tools.
func FFmpeg(tools *video.Tools) StartFunc {
	return func(ctx context.Context, path string, maxW, maxH int) (Stream, image.Point, error) {
		info, err := tools.Probe(ctx, path)
		if err != nil {
			return nil, image.Point{}, err
		}
		w, h := video.Fit(info.Width, info.Height, maxW, maxH)
		s, err := tools.Start(ctx, path, w, h, info.FPS)
		if err != nil {
			return nil, image.Point{}, err
		}
		return s, image.Pt(w, h), nil
	}
}

// Factory returns the video list factory.
func Factory(start StartFunc) scene.Factory {
	return func(h scene.Host) scene.Scene { return NewList(h, start) }
}

// List is the recording picker.
type List struct {
	scene.Base
	start   StartFunc
	paths   []string
	list    *browse.List
	elapsed float64
}

// NewList creates the video list.
func NewList(h scene.Host, start StartFunc) *List {
	return &List{Base: scene.Base{Host: h}, start: start}
}

func (s *List) Enter() {
	cfg := s.Host.Config()
	s.paths = assets.List(cfg.Asset(cfg.Paths.Videos), ".mp4")
	titles := make([]string, len(s.paths))
	for i, p := range s.paths {
		titles[i] = assets.Title(p)
	}
	s.list = browse.New(titles, "No recordings found.")
}

// Paths returns the listed files.
func (s *List) Paths() []string { return s.paths }

func (s *List) Handle(ev input.Event) {
	if s.list.Handle(ev) {
		return
	}
	switch {
	case ev.Is(ebiten.KeyEscape, ebiten.KeyBackspace):
		s.Host.Goto(scene.Menu)
	case ev.Is(ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace):
		i := s.list.Selected()
		if i < 0 {
			s.Host.BeepError()
			return
		}
		path, start := s.paths[i], s.start
		s.Host.Switch(func(h scene.Host) scene.Scene { return NewPlayer(h, start, path) })
	}
}

func (s *List) Update(dt float64) { s.elapsed += dt }

func (s *List) Draw(screen *ebiten.Image) {
	th := s.Host.Config().Theme
	faces := s.Host.Faces()
	var logo *ebiten.Image
	if lib := s.Host.Assets(); lib != nil {
		logo = lib.Logo()
	}
	content := render.Header(screen, faces, "Videos", logo, th.FG.RGBA())
	s.list.Draw(screen, faces, content, th, s.elapsed)
	render.Footer(screen, faces, "Up/Down select • Enter play • ESC back", th.Muted.RGBA())
}

// Player shows one recording.
type Player struct {
	scene.Base
	start  StartFunc
	path   string
	title  string
	stream Stream
	size   image.Point
	track  *sound.Track
	frame  []byte
	frames int
	tex    *ebiten.Image
	fit    render.FitMode
	notice string
}

// NewPlayer creates a player for path.
func NewPlayer(h scene.Host, start StartFunc, path string) *Player {
	return &Player{
		Base:  scene.Base{Host: h},
		start: start,
		path:  path,
		title: assets.Title(path),
	}
}

// Sidecar returns the .wav that accompanies a video, "" when absent.
func Sidecar(path string) string {
	wav := strings.TrimSuffix(path, filepath.Ext(path)) + ".wav"
	if st, err := os.Stat(wav); err == nil && !st.IsDir() {
		return wav
	}
	return ""
}

func (p *Player) Enter() {
	if p.start == nil {
		p.notice = "Video playback unavailable."
		return
	}
	area := p.area()
	s, size, err := p.start(context.Background(), p.path, area.Dx(), area.Dy())
	if err != nil {
		log.Printf("[scene] videos: %v", err)
		if errors.Is(err, video.ErrDecoderUnavailable) {
			p.notice = "Video playback needs ffmpeg and ffprobe on PATH."
		} else {
			p.notice = "Cannot play " + p.title + "."
		}
		return
	}
	p.stream, p.size = s, size

	if wav := Sidecar(p.path); wav != "" {
		t, err := p.Host.Audio().Open(context.Background(), wav, false)
		if err != nil {
			log.Printf("[audio] %s: %v", wav, err)
			return
		}
		p.track = t
		t.Play()
	}
}

func (p *Player) Exit() error {
	if p.stream != nil {
		p.stream.Close()
	}
	var err error
	if p.track != nil {
		err = p.track.Close()
	}
	if p.tex != nil {
		p.tex.Deallocate()
	}
	return err
}

// Notice returns the degradation message, "" while playing.
func (p *Player) Notice() string { return p.notice }

// Frames returns how many frames were received.
func (p *Player) Frames() int { return p.frames }

// Fit returns the current fit mode.
func (p *Player) Fit() render.FitMode { return p.fit }

// Paused reports whether playback is paused.
func (p *Player) Paused() bool { return p.stream != nil && p.stream.Paused() }

func (p *Player) Handle(ev input.Event) {
	switch {
	case ev.Is(ebiten.KeyEscape, ebiten.KeyBackspace):
		p.Host.Goto(scene.Videos)
	case ev.Is(ebiten.KeySpace):
		p.togglePause()
	case ev.Is(ebiten.KeyF):
		p.fit = p.fit.Next()
		p.Host.PushInfo("View: " + p.fit.String())
	}
}

func (p *Player) togglePause() {
	if p.stream == nil {
		return
	}
	paused := !p.stream.Paused()
	p.stream.SetPaused(paused)
	if p.track == nil {
		return
	}
	if paused {
		p.track.Pause()
	} else {
		p.track.Play()
	}
}

func (p *Player) Update(float64) {
	if p.stream == nil {
		return
	}
	if f, ok := p.stream.Frame(); ok {
		p.frame = f
		p.frames++
	}
	if p.stream.Done() && p.notice == "" {
		if err := p.stream.Err(); err != nil {
			log.Printf("[scene] videos: %v", err)
			p.notice = "Playback stopped."
		} else {
			p.notice = "End of recording."
		}
	}
}

func (p *Player) area() image.Rectangle {
	d := p.Host.Config().Display
	return image.Rect(40, 90, d.ScreenWidth-40, d.ScreenHeight-60)
}

func (p *Player) Draw(screen *ebiten.Image) {
	th := p.Host.Config().Theme
	faces := p.Host.Faces()
	area := p.area()

	status := p.title + "   [" + p.fit.String() + "]"
	if p.Paused() {
		status += "   PAUSED"
	}
	render.Text(screen, status, faces.Face(26, true), 40, 40, th.FG.RGBA())

	if p.frame != nil && p.size.X > 0 {
		if p.tex == nil {
			p.tex = ebiten.NewImage(p.size.X, p.size.Y)
		}
		if len(p.frame) == p.size.X*p.size.Y*4 {
			p.tex.WritePixels(p.frame)
		}
		p.frame = nil
	}
	switch {
	case p.tex != nil:
		render.FillRect(screen, area, th.BG.RGBA())
		render.DrawImage(screen, p.tex, area, p.fit, 1, 0, 0)
	case p.notice != "":
		render.Placeholder(screen, area, p.notice, faces.UI(), th.Border.RGBA(), th.Alert.RGBA())
	default:
		render.Placeholder(screen, area, "Loading...", faces.UI(), th.Border.RGBA(), th.Muted.RGBA())
	}
	if p.tex != nil && p.notice != "" {
		render.TextCentered(screen, p.notice, faces.UI(), float64(area.Min.X+area.Dx()/2), float64(area.Max.Y+8), th.Accent.RGBA())
	}
	render.Footer(screen, faces, "Space pause • F fit/fill/native • ESC back", th.Muted.RGBA())
}
