package splash

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/scenetest"
)

func TestSplash_Timeout(t *testing.T) {
	h := scenetest.New()
	s := New(h)
	s.Enter()

	s.Update(3.9)
	assert.Empty(t, h.Gotos)
	s.Update(0.2)
	s.Update(0.2)
	assert.Equal(t, []scene.ID{scene.Lock}, h.Gotos, "finishes once")
}

func TestSplash_SkipToMenuWithoutLock(t *testing.T) {
	h := scenetest.New()
	h.Cfg.Lock.Enabled = false
	s := New(h)

	s.Handle(input.KeyDown(ebiten.KeyA))
	assert.Empty(t, h.Gotos)
	s.Handle(input.KeyDown(ebiten.KeySpace))
	assert.Equal(t, scene.Menu, h.LastGoto())
}
