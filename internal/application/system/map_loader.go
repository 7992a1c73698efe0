package system

import (
	"fmt"
	"math"
	"strconv"

	"github.com/younwookim/fbcterm/internal/domain/raycast"
	"github.com/younwookim/fbcterm/internal/infrastructure/config"
	"github.com/zyedidia/generic/mapset"
)

// Level is a raycast map ready for play.
type Level struct {
	Name   string
	Grid   *raycast.Grid
	Spawn  raycast.Pose
	Shader raycast.Shader
	// Doors holds every cell that was a door when the map loaded, so an
	// opened door can be closed again.
	Doors   mapset.Set[raycast.Coord]
	Exits   mapset.Set[raycast.Coord]
	Props   []config.PropConfig
	Surface config.SurfaceConfig
}

// LoadMap converts a MapConfig into a Level
func LoadMap(cfg *config.MapConfig) (*Level, error) {
	grid, err := raycast.NewGrid(cfg.Rows)
	if err != nil {
		return nil, fmt.Errorf("failed to build map %s: %w", cfg.ID, err)
	}

	spawn := raycast.Pose{
		X:     cfg.Spawn.X,
		Y:     cfg.Spawn.Y,
		Angle: cfg.Spawn.Angle * math.Pi / 180,
	}
	if c := spawn.Cell(); !grid.Passable(c.X, c.Y) {
		return nil, fmt.Errorf("map %s: spawn (%.2f, %.2f) is inside a wall", cfg.ID, spawn.X, spawn.Y)
	}

	shader := raycast.DefaultShader()
	if cfg.WarmX > 0 {
		shader.WarmX = cfg.WarmX
	}
	for key, rgb := range cfg.Palette {
		n, err := strconv.Atoi(key)
		if err != nil || n < int(raycast.CodeWall) || n > int(raycast.MaxCode) {
			return nil, fmt.Errorf("map %s: invalid palette code %q", cfg.ID, key)
		}
		shader.Palette[raycast.Code(n)] = rgb.RGBA()
	}

	lvl := &Level{
		Name:    cfg.Name,
		Grid:    grid,
		Spawn:   spawn,
		Shader:  shader,
		Doors:   mapset.New[raycast.Coord](),
		Exits:   mapset.New[raycast.Coord](),
		Props:   cfg.Props,
		Surface: cfg.Surface,
	}
	for _, c := range grid.Doors() {
		lvl.Doors.Put(c)
	}
	for _, d := range cfg.Doors {
		c := raycast.Coord{X: d.X, Y: d.Y}
		if !lvl.Doors.Has(c) {
			return nil, fmt.Errorf("map %s: door label at (%d,%d) is not a door", cfg.ID, d.X, d.Y)
		}
		if d.Label != "" {
			grid.SetLabel(c, d.Label)
		}
		if d.Exit {
			lvl.Exits.Put(c)
		}
	}
	for i, p := range cfg.Props {
		c := raycast.Coord{X: int(math.Floor(p.X)), Y: int(math.Floor(p.Y))}
		if !grid.Passable(c.X, c.Y) {
			return nil, fmt.Errorf("map %s: prop %d (%s) is inside a wall", cfg.ID, i, p.Kind)
		}
	}
	return lvl, nil
}
