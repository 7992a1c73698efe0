package hotline

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/scenetest"
	"github.com/younwookim/fbcterm/internal/domain/hotline"
)

func enter(t *testing.T) (*scenetest.Host, *Scene) {
	t.Helper()
	h := scenetest.New()
	h.Cfg.Paths.Assets = t.TempDir()
	s := New(h).(*Scene)
	s.Enter()
	return h, s
}

func TestHotline_RingsPeriodically(t *testing.T) {
	_, s := enter(t)
	assert.True(t, s.Call().Ringing())
	assert.Equal(t, 1, s.Rings())

	for range 130 {
		s.Update(1.0 / 60)
	}
	assert.Equal(t, 2, s.Rings(), "one burst every two seconds")
}

func TestHotline_AnswerWithoutTransmission(t *testing.T) {
	h, s := enter(t)
	s.Handle(input.KeyDown(ebiten.KeyE))
	assert.True(t, s.Call().Connected())
	assert.Equal(t, "No transmission on this line.", h.LastInfo())

	s.Update(1.0 / 60)
	assert.Equal(t, hotline.StateEnded, s.Call().State())

	rings := s.Rings()
	for range 300 {
		s.Update(1.0 / 60)
	}
	assert.Equal(t, rings, s.Rings(), "a finished call stays quiet")

	s.Handle(input.KeyDown(ebiten.KeyR))
	assert.True(t, s.Call().Ringing())
	assert.Equal(t, rings+1, s.Rings())
}

func TestHotline_WobbleAndExit(t *testing.T) {
	h, s := enter(t)
	assert.True(t, s.Wobble())
	s.Handle(input.KeyDown(ebiten.KeyF))
	assert.False(t, s.Wobble())

	s.Handle(input.KeyDown(ebiten.KeyEscape))
	assert.Equal(t, scene.Menu, h.LastGoto())
	assert.NoError(t, s.Exit())
}
