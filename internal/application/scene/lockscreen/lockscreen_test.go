package lockscreen

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/overlay"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/scenetest"
	"github.com/younwookim/fbcterm/internal/domain/lock"
)

func newLock(t *testing.T, paste func() (string, error)) (*Lock, *scenetest.Host) {
	t.Helper()
	h := scenetest.New()
	s := NewWithClipboard(h, paste)
	s.Enter()
	return s, h
}

func submit(s *Lock, code string) {
	scenetest.Type(s, code)
	s.Handle(input.KeyDown(ebiten.KeyEnter))
}

func TestLock_WrongCodes(t *testing.T) {
	s, h := newLock(t, nil)
	assert.Equal(t, msgPrompt, s.Message())

	submit(s, "0000")
	assert.Equal(t, "INVALID. Attempts left: 2", s.Message())
	assert.Empty(t, s.Input(), "buffer clears after submit")
	assert.True(t, s.Shaking())
	assert.Equal(t, 1, h.Errors)

	s.Update(0.4)
	assert.False(t, s.Shaking(), "shake lasts 0.35 s")

	submit(s, "1111")
	assert.Equal(t, "INVALID. Attempts left: 1", s.Message())
	assert.Empty(t, h.QuitAfter)

	submit(s, "2222")
	assert.Equal(t, msgDenied, s.Message())
	assert.Equal(t, lock.StateDenied, s.State())
	assert.Equal(t, []float64{1.2}, h.QuitAfter)
	assert.Equal(t, 3, h.Errors)

	submit(s, "1968")
	assert.Equal(t, lock.StateDenied, s.State(), "denied is terminal")
	assert.Len(t, h.QuitAfter, 1)
	assert.False(t, s.Captures(ebiten.KeyJ))
}

func TestLock_Granted(t *testing.T) {
	s, h := newLock(t, nil)

	submit(s, "black rock")
	assert.Equal(t, msgGranted, s.Message())
	assert.Equal(t, lock.StateGranted, s.State())
	assert.Equal(t, 1, h.OKs)
	assert.Equal(t, msgGranted, h.LastInfo())

	dec, ok := h.Current.(*overlay.Decrypt)
	require.True(t, ok, "decrypt overlay expected, got %T", h.Current)
	assert.Empty(t, h.Gotos, "menu waits for the overlay")

	for i := 0; i < 300 && !dec.Done(); i++ {
		dec.Update(1.0 / 60)
	}
	assert.True(t, dec.Done())
	assert.Equal(t, []scene.ID{scene.Menu}, h.Gotos)
}

func TestLock_Editing(t *testing.T) {
	s, _ := newLock(t, nil)

	scenetest.Type(s, "ab-1!?é")
	assert.Equal(t, "AB-1É", s.Input())

	s.Handle(input.KeyDown(ebiten.KeyBackspace))
	assert.Equal(t, "AB-1", s.Input())

	s.Handle(input.KeyDown(ebiten.KeyF1))
	assert.Equal(t, s.Host.Config().Lock.Hint, s.Message())
	assert.True(t, s.Captures(ebiten.KeyJ))
}

func TestLock_Paste(t *testing.T) {
	s, _ := newLock(t, func() (string, error) { return "19 68\n", nil })
	s.Handle(input.Event{Kind: input.KindKey, Key: ebiten.KeyV, Ctrl: true})
	assert.Equal(t, "19 68", s.Input())

	s.Handle(input.KeyDown(ebiten.KeyV))
	assert.Equal(t, "19 68", s.Input(), "plain V is not a paste")

	broken, _ := newLock(t, func() (string, error) { return "", errors.New("no clipboard") })
	broken.Handle(input.Event{Kind: input.KindKey, Key: ebiten.KeyV, Ctrl: true})
	assert.Empty(t, broken.Input())
}

func TestLock_EscapeQuits(t *testing.T) {
	s, h := newLock(t, nil)
	s.Handle(input.KeyDown(ebiten.KeyEscape))
	assert.Equal(t, 1, h.Quits)
}
