// Package audiologs plays recorded audio logs next to their transcripts.
package audiologs

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/browse"
	"github.com/younwookim/fbcterm/internal/infrastructure/assets"
	"github.com/younwookim/fbcterm/internal/infrastructure/sound"
)

const pageLines = 4

// List is the audio log picker.
type List struct {
	scene.Base
	logs    []assets.AudioLog
	list    *browse.List
	elapsed float64
}

// New creates the audio log list.
func New(h scene.Host) scene.Scene {
	return &List{Base: scene.Base{Host: h}}
}

func (s *List) Enter() {
	cfg := s.Host.Config()
	s.logs = assets.AudioLogs(cfg.Asset(cfg.Paths.Audios))
	names := make([]string, len(s.logs))
	for i, l := range s.logs {
		names[i] = assets.Title(l.Name)
	}
	s.list = browse.New(names, "No audio logs found.")
}

// Logs returns the listed recordings.
func (s *List) Logs() []assets.AudioLog { return s.logs }

func (s *List) Handle(ev input.Event) {
	if s.list.Handle(ev) {
		return
	}
	switch {
	case ev.Is(ebiten.KeyEscape, ebiten.KeyBackspace):
		s.Host.Goto(scene.Menu)
	case ev.Is(ebiten.KeyEnter, ebiten.KeyNumpadEnter):
		i := s.list.Selected()
		if i < 0 {
			s.Host.BeepError()
			return
		}
		al := s.logs[i]
		s.Host.Switch(func(h scene.Host) scene.Scene { return NewPlayer(h, al) })
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
	content := render.Header(screen, faces, "Audio Logs", logo, th.FG.RGBA())
	s.list.Draw(screen, faces, content, th, s.elapsed)
	render.Footer(screen, faces, "Up/Down select • Enter open • ESC back", th.Muted.RGBA())
}

// Player shows a transcript and controls its recording.
type Player struct {
	scene.Base
	log        assets.AudioLog
	transcript string
	track      *sound.Track
	notice     string
	scroll     int
	maxScroll  int // -1 until the transcript has been laid out
}

// NewPlayer creates a player for al.
func NewPlayer(h scene.Host, al assets.AudioLog) *Player {
	return &Player{Base: scene.Base{Host: h}, log: al, maxScroll: -1}
}

func (p *Player) Enter() {
	p.transcript = assets.ReadText(p.log.Transcript)
	t, err := p.Host.Audio().Open(context.Background(), p.log.Audio, false)
	if err != nil {
		log.Printf("[audio] %s: %v", p.log.Audio, err)
		switch {
		case errors.Is(err, sound.ErrNoAudio):
			p.notice = "Audio output unavailable."
		case errors.Is(err, sound.ErrTranscodeUnavailable):
			p.notice = "Audio needs ffmpeg to play this log."
		default:
			p.notice = "Recording could not be loaded."
		}
		return
	}
	p.track = t
}

// Exit closes the track, removing any transcoded temp file.
func (p *Player) Exit() error {
	return p.track.Close()
}

// Transcript returns the loaded transcript.
func (p *Player) Transcript() string { return p.transcript }

// Notice returns the playback problem, "" when the track loaded.
func (p *Player) Notice() string { return p.notice }

// Scroll returns the transcript offset in pixels.
func (p *Player) Scroll() int { return p.scroll }

func (p *Player) Handle(ev input.Event) {
	step := p.Host.Config().Viewer.ScrollStep
	seek := time.Duration(p.Host.Config().Viewer.SeekStep * float64(time.Second))
	switch {
	case ev.Is(ebiten.KeyEscape, ebiten.KeyBackspace):
		p.Host.Goto(scene.AudioLogs)
	case ev.Is(ebiten.KeyUp):
		p.scrollBy(-step)
	case ev.Is(ebiten.KeyDown):
		p.scrollBy(step)
	case ev.Is(ebiten.KeyPageUp):
		p.scrollBy(-step * pageLines)
	case ev.Is(ebiten.KeyPageDown):
		p.scrollBy(step * pageLines)
	case ev.Is(ebiten.KeyHome):
		p.scroll = 0
	case p.track == nil:
		if ev.Is(ebiten.KeySpace, ebiten.KeyS, ebiten.KeyR, ebiten.KeyLeft, ebiten.KeyRight) {
			p.Host.BeepError()
		}
	case ev.Is(ebiten.KeySpace):
		p.track.Toggle()
	case ev.Is(ebiten.KeyS):
		p.track.Stop()
	case ev.Is(ebiten.KeyR):
		p.track.Restart()
	case ev.Is(ebiten.KeyLeft):
		p.track.Seek(-seek)
	case ev.Is(ebiten.KeyRight):
		p.track.Seek(seek)
	}
}

func (p *Player) scrollBy(d int) {
	p.scroll = max(0, p.scroll+d)
	if p.maxScroll >= 0 {
		p.scroll = min(p.scroll, p.maxScroll)
	}
}

func (p *Player) Draw(screen *ebiten.Image) {
	th := p.Host.Config().Theme
	faces := p.Host.Faces()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	render.Text(screen, assets.Title(p.log.Name), faces.Face(30, true), 40, 36, th.FG.RGBA())

	bar := image.Rect(40, 90, w-40, 106)
	frac := 0.0
	if p.track != nil && p.track.Length() > 0 {
		frac = float64(p.track.Position()) / float64(p.track.Length())
	}
	render.Bar(screen, bar, frac, th.Accent.RGBA(), th.Border.RGBA())
	status := p.notice
	if p.track != nil {
		state := "paused"
		if p.track.Playing() {
			state = "playing"
		}
		status = fmt.Sprintf("%s  %s / %s", state, clock(p.track.Position()), clock(p.track.Length()))
	}
	render.Text(screen, status, faces.Small(), 40, 112, th.Muted.RGBA())

	box := image.Rect(40, 150, w-40, h-60)
	render.Panel(screen, box, th.BG.RGBA(), th.Border.RGBA())
	face := faces.UI()
	lines := render.Wrap(p.transcript, float64(box.Dx()-24), render.FaceMeasure(face))
	lh := int(render.LineHeight(face)) + 4
	p.maxScroll = max(0, len(lines)*lh-(box.Dy()-24))
	p.scroll = min(p.scroll, p.maxScroll)

	clip, ok := screen.SubImage(box.Inset(2)).(*ebiten.Image)
	if ok {
		for i, ln := range lines {
			y := box.Min.Y + 12 + i*lh - p.scroll
			if y+lh < box.Min.Y || y > box.Max.Y {
				continue
			}
			render.Text(clip, ln, face, float64(box.Min.X+12), float64(y), th.FG.RGBA())
		}
	}
	render.Footer(screen, faces, "Space play/pause • S stop • R restart • Left/Right seek • Up/Down/PgUp/PgDn scroll • ESC back", th.Muted.RGBA())
}

func clock(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
