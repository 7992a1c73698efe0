package oceanview

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/scenetest"
	"github.com/younwookim/fbcterm/internal/application/system"
	"github.com/younwookim/fbcterm/internal/domain/raycast"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
)

func testSource() (*system.Level, error) {
	return system.LoadMap(&config.MapConfig{
		ID: "test",
		Rows: []string{
			"1111111",
			"1000001",
			"1121311",
			"1000001",
			"1111111",
		},
		Spawn: config.SpawnConfig{X: 4.5, Y: 1.5, Angle: 90},
		Doors: []config.DoorConfig{
			{X: 2, Y: 2, Label: "LOBBY EXIT", Exit: true},
			{X: 4, Y: 2, Label: "ROOM 101"},
		},
		Props: []config.PropConfig{
			{Kind: "lamp", X: 1.5, Y: 3.5, Color: config.RGB{255, 214, 140}, Size: 0.6, Emissive: 60, Flicker: 3},
		},
	})
}

func newScene(t *testing.T) (*Oceanview, *scenetest.Host) {
	t.Helper()
	h := scenetest.New()
	s := New(h, testSource)
	s.Enter()
	require.NoError(t, s.Err())
	return s, h
}

func TestOceanview_DoorToggle(t *testing.T) {
	s, _ := newScene(t)
	door := raycast.Coord{X: 4, Y: 2}
	g := s.Level().Grid
	require.Equal(t, raycast.CodeSymbolDoor, g.At(door.X, door.Y))

	s.Handle(input.KeyDown(ebiten.KeyE))
	assert.Equal(t, raycast.CodeEmpty, g.At(door.X, door.Y))
	msg, ok := s.Message()
	assert.True(t, ok)
	assert.Equal(t, "Door opened.", msg)

	s.Handle(input.KeyDown(ebiten.KeyE))
	assert.Equal(t, raycast.CodeSymbolDoor, g.At(door.X, door.Y), "closing restores the door kind")
	msg, _ = s.Message()
	assert.Equal(t, "Door closed.", msg)

	s.Update(1.5)
	_, ok = s.Message()
	assert.False(t, ok, "message lasts 1.4 s")
}

func TestOceanview_DoorwayStaysOpen(t *testing.T) {
	s, _ := newScene(t)
	g := s.Level().Grid

	s.Handle(input.KeyDown(ebiten.KeyE))
	require.Equal(t, raycast.CodeEmpty, g.At(4, 2))

	s.pose = raycast.Pose{X: 4.05, Y: 2.5, Angle: 0}
	s.Handle(input.KeyDown(ebiten.KeyE))
	assert.Equal(t, raycast.CodeEmpty, g.At(4, 2), "the player stands in the doorway")
}

func TestOceanview_ExitDoor(t *testing.T) {
	s, h := newScene(t)
	s.pose = raycast.Pose{X: 2.5, Y: 1.5, Angle: s.pose.Angle}

	s.Handle(input.KeyDown(ebiten.KeyE))
	assert.Equal(t, scene.Menu, h.LastGoto())
	assert.Equal(t, raycast.CodeDoor, s.Level().Grid.At(2, 2))
}

func TestOceanview_WallsBlock(t *testing.T) {
	s, h := newScene(t)
	start := s.Pose()

	h.Held[ebiten.KeyW] = true
	for i := 0; i < 30; i++ {
		s.Update(1.0 / 60)
	}
	assert.Greater(t, s.Pose().Y, start.Y)
	assert.Less(t, s.Pose().Y, 2.0, "closed door blocks the way")

	s.pose.Angle = 0
	s.Update(0.2)
	assert.InDelta(t, start.X+3.1*0.2, s.Pose().X, 1e-9)
}

func TestOceanview_EscapeAndCapture(t *testing.T) {
	s, h := newScene(t)
	assert.True(t, s.Captures(ebiten.KeyJ), "J strafes here")
	assert.False(t, s.Captures(ebiten.KeyF11))

	s.Handle(input.KeyDown(ebiten.KeyEscape))
	assert.Equal(t, scene.Menu, h.LastGoto())
}

func TestOceanview_LoadFailure(t *testing.T) {
	h := scenetest.New()
	s := New(h, func() (*system.Level, error) { return nil, errors.New("boom") })
	s.Enter()

	assert.Error(t, s.Err())
	assert.Nil(t, s.Level())
	assert.Equal(t, "Oceanview map unavailable.", h.LastInfo())
	assert.False(t, s.Captures(ebiten.KeyJ))

	s.Handle(input.KeyDown(ebiten.KeyE))
	s.Update(0.1)
}

func TestOceanview_PropsVisible(t *testing.T) {
	s, _ := newScene(t)
	assert.Equal(t, 1, s.props.Len())

	// from the lower corridor, looking west at the lamp
	s.pose = raycast.Pose{X: 4.5, Y: 3.5, Angle: 3.14159}
	hits := raycast.Cast(s.Level().Grid, s.pose, s.camera)
	draws := raycast.Composite(s.props.Sprites(), s.pose, s.camera, raycast.DepthBuffer(hits))
	require.Len(t, draws, 1)
	assert.NotEmpty(t, draws[0].Runs)
	assert.True(t, draws[0].Halo())
}
