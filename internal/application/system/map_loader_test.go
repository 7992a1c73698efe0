package system

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/fbcterm/internal/domain/raycast"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
)

func testMapConfig() *config.MapConfig {
	return &config.MapConfig{
		ID: "test",
		Rows: []string{
			"11111",
			"10001",
			"10002",
			"14001",
			"11111",
		},
		Spawn:   config.SpawnConfig{X: 1.5, Y: 1.5, Angle: 90},
		WarmX:   3,
		Palette: map[string]config.RGB{"1": {1, 2, 3}},
		Doors: []config.DoorConfig{
			{X: 4, Y: 2, Label: "EXIT", Exit: true},
			{X: 1, Y: 3, Label: "CASINO"},
		},
		Props: []config.PropConfig{{Kind: "lamp", X: 2.5, Y: 2.5, Size: 1}},
	}
}

func TestLoadMap(t *testing.T) {
	t.Run("loads basic map", func(t *testing.T) {
		lvl, err := LoadMap(testMapConfig())
		require.NoError(t, err)

		assert.Equal(t, 5, lvl.Grid.Width())
		assert.Equal(t, 5, lvl.Grid.Height())
		assert.InDelta(t, math.Pi/2, lvl.Spawn.Angle, 1e-12)
		assert.Equal(t, 3, lvl.Shader.WarmX)
		assert.Equal(t, color.RGBA{1, 2, 3, 255}, lvl.Shader.Palette[raycast.CodeWall])
		assert.Len(t, lvl.Props, 1)
	})

	t.Run("records doors and exits", func(t *testing.T) {
		lvl, err := LoadMap(testMapConfig())
		require.NoError(t, err)

		assert.Equal(t, 2, lvl.Doors.Size())
		assert.True(t, lvl.Doors.Has(raycast.Coord{X: 1, Y: 3}))
		assert.True(t, lvl.Exits.Has(raycast.Coord{X: 4, Y: 2}))
		assert.False(t, lvl.Exits.Has(raycast.Coord{X: 1, Y: 3}))
		assert.Equal(t, "CASINO", lvl.Grid.Label(raycast.Coord{X: 1, Y: 3}))
	})

	t.Run("rejects unsealed map", func(t *testing.T) {
		cfg := testMapConfig()
		cfg.Rows[0] = "11011"
		_, err := LoadMap(cfg)
		require.Error(t, err)
		assert.True(t, errors.Is(err, raycast.ErrUnsealedGrid))
	})

	t.Run("rejects bad placement", func(t *testing.T) {
		cfg := testMapConfig()
		cfg.Spawn.X = 0.5
		_, err := LoadMap(cfg)
		assert.ErrorContains(t, err, "spawn")

		cfg = testMapConfig()
		cfg.Doors = append(cfg.Doors, config.DoorConfig{X: 2, Y: 2, Label: "NOPE"})
		_, err = LoadMap(cfg)
		assert.ErrorContains(t, err, "not a door")

		cfg = testMapConfig()
		cfg.Props[0].X = 0.2
		_, err = LoadMap(cfg)
		assert.ErrorContains(t, err, "inside a wall")

		cfg = testMapConfig()
		cfg.Palette["9"] = config.RGB{}
		_, err = LoadMap(cfg)
		assert.ErrorContains(t, err, "palette")
	})
}

func TestLoadMap_ShippedOceanview(t *testing.T) {
	loader := config.NewLoader("../../../cmd/terminal/configs")
	cfg, err := loader.LoadMap("oceanview")
	require.NoError(t, err)

	lvl, err := LoadMap(cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, lvl.Exits.Size())
	assert.Equal(t, len(cfg.Doors), lvl.Doors.Size(), "every door carries a label")
}
