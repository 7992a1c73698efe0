// Package lockscreen provides the security check shown before the menu.
package lockscreen

import (
	"fmt"
	"image"
	"log"
	"math"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/overlay"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/domain/lock"
	"github.com/younwookim/fbcterm/internal/domain/timer"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
	"github.com/younwookim/fbcterm/internal/infrastructure/sound"
)

const (
	cursorPeriod = 0.5
	shakeOffset  = 6
	shakeStep    = 0.04

	msgPrompt  = "SECURITY CHECK // ENTER ACCESS CODE"
	msgGranted = "ACCESS GRANTED"
	msgDenied  = "ACCESS DENIED"
)

// Lock is the security-check scene.
type Lock struct {
	scene.Base
	cfg     config.LockConfig
	lock    *lock.Lock
	prompt  *lock.Prompt
	message string
	shake   *timer.Cooldown
	elapsed float64
	paste   func() (string, error)
}

// New creates the lock scene.
func New(h scene.Host) scene.Scene {
	return NewWithClipboard(h, clipboard.ReadAll)
}

// NewWithClipboard creates the lock scene reading pastes from paste.
func NewWithClipboard(h scene.Host, paste func() (string, error)) *Lock {
	cfg := h.Config().Lock
	return &Lock{
		Base: scene.Base{Host: h},
		cfg:  cfg,
		lock: lock.New(lock.Config{
			Code:       cfg.Code,
			Passphrase: cfg.Passphrase,
			Attempts:   cfg.Attempts,
		}),
		prompt: lock.NewPrompt(lock.DefaultMaxLen),
		shake:  timer.NewCooldown(cfg.ShakeDuration),
		paste:  paste,
	}
}

func (s *Lock) Enter() {
	s.message = msgPrompt
}

// Captures claims every key while the lock is taking input so typed
// letters never trigger application shortcuts.
func (s *Lock) Captures(ebiten.Key) bool {
	return !s.lock.Denied()
}

func (s *Lock) Handle(ev input.Event) {
	if ev.Is(ebiten.KeyEscape) {
		s.Host.Quit()
		return
	}
	if s.lock.Granted() || s.lock.Denied() {
		return
	}

	switch {
	case ev.Kind == input.KindChar:
		s.prompt.Type(ev.Char)
	case ev.Is(ebiten.KeyEnter, ebiten.KeyNumpadEnter):
		s.submit()
	case ev.Is(ebiten.KeyBackspace):
		s.prompt.Backspace()
	case ev.Is(ebiten.KeyF1):
		s.message = s.cfg.Hint
	case ev.Is(ebiten.KeyV) && ev.Ctrl:
		s.pasteClipboard()
	}
}

func (s *Lock) pasteClipboard() {
	if s.paste == nil {
		return
	}
	txt, err := s.paste()
	if err != nil {
		log.Printf("[lock] clipboard: %v", err)
		return
	}
	s.prompt.Insert(txt)
}

func (s *Lock) submit() {
	res := s.lock.Submit(s.prompt.String())
	s.prompt.Clear()

	switch res {
	case lock.ResultGranted:
		s.message = msgGranted
		s.Host.BeepOK()
		s.Host.PushInfo(msgGranted)
		s.Host.Audio().Play(sound.BeepDecrypt)

		cfg := s.Host.Config()
		opt := overlay.DecryptOptions{
			Faces:    s.Host.Faces(),
			Theme:    cfg.Theme,
			Duration: cfg.Overlays.Decrypt.Duration,
			Width:    cfg.Display.ScreenWidth,
			Height:   cfg.Display.ScreenHeight,
			OnDone:   func() { s.Host.Goto(scene.Menu) },
		}
		if lib := s.Host.Assets(); lib != nil {
			opt.Logo = lib.Logo()
		}
		s.Host.SetOverlay(overlay.NewDecrypt(opt))
	case lock.ResultInvalid:
		s.shake.Start()
		s.Host.BeepError()
		s.message = fmt.Sprintf("INVALID. Attempts left: %d", s.lock.AttemptsLeft())
	case lock.ResultDenied:
		s.shake.Start()
		s.Host.BeepError()
		s.message = msgDenied
		s.Host.ScheduleQuit(s.cfg.ShutdownDelay)
	}
}

func (s *Lock) Update(dt float64) {
	s.elapsed += dt
	s.shake.Tick(dt)
}

// Message returns the status line.
func (s *Lock) Message() string { return s.message }

// Input returns the typed text.
func (s *Lock) Input() string { return s.prompt.String() }

// Shaking reports whether the card is shaking after a wrong code.
func (s *Lock) Shaking() bool { return s.shake.Active() }

// State returns the lock state.
func (s *Lock) State() string { return s.lock.State() }

func (s *Lock) Draw(screen *ebiten.Image) {
	cfg := s.Host.Config()
	th := cfg.Theme
	faces := s.Host.Faces()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()

	var logo *ebiten.Image
	if lib := s.Host.Assets(); lib != nil {
		logo = lib.Logo()
	}
	render.Header(screen, faces, th.Title+" - Terminal", logo, th.FG.RGBA())

	cw, ch := min(720, int(float64(w)*0.82)), 220
	cx, cy := w/2, int(float64(h)*0.52)
	ox := 0
	if s.shake.Active() {
		ox = shakeOffset
		if int(math.Floor(s.elapsed/shakeStep))%2 == 1 {
			ox = -shakeOffset
		}
	}
	card := image.Rect(cx-cw/2+ox, cy-ch/2, cx+cw/2+ox, cy+ch/2)
	render.Panel(screen, card, config.RGB{0, 25, 0}.Alpha(160), th.Border.RGBA())

	left := float64(card.Min.X + 24)
	render.TextMiddle(screen, s.message, faces.Face(22, false), float64(cx+ox), float64(card.Min.Y+28), th.Accent.RGBA())
	render.Text(screen, "CODE or PASS-PHRASE:", faces.Face(18, false), left, float64(card.Min.Y+56), th.Muted.RGBA())

	caret := " "
	if render.Blink(s.elapsed, cursorPeriod) {
		caret = "▎"
	}
	render.Text(screen, "> "+s.prompt.String()+caret, faces.Face(28, false), left, float64(card.Min.Y+86), th.FG.RGBA())
	render.TextMiddle(screen, "F1: hint  •  ENTER: submit  •  ESC: quit", faces.Face(18, false),
		float64(cx+ox), float64(card.Max.Y-18), th.Muted.RGBA())
}
