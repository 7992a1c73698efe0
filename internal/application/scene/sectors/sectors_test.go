package sectors

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/render"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/scenetest"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 6))))
}

func mapsHost(t *testing.T) (*scenetest.Host, string) {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "maps")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writePNG(t, filepath.Join(dir, "Central_Executive.png"))
	writePNG(t, filepath.Join(dir, "Maintenance.png"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Research.png"), []byte("not a png"), 0o644))

	h := scenetest.New()
	h.Cfg.Paths.Assets = root
	return h, dir
}

func TestList_OpensViewer(t *testing.T) {
	h, _ := mapsHost(t)
	l := New(h).(*List)
	l.Enter()
	require.Len(t, l.Paths(), 3)
	assert.Empty(t, h.Infos)

	l.Handle(input.KeyDown(ebiten.KeyDown))
	l.Handle(input.KeyDown(ebiten.KeyEnter))
	require.NotNil(t, h.Next)
	v, ok := h.Next(h).(*Viewer)
	require.True(t, ok)
	assert.Equal(t, 1, v.Index())

	l.Handle(input.KeyDown(ebiten.KeyEscape))
	assert.Equal(t, scene.Menu, h.LastGoto())
	assert.NoError(t, l.Exit())
}

func TestList_NoMaps(t *testing.T) {
	h := scenetest.New()
	h.Cfg.Paths.Assets = t.TempDir()
	l := New(h).(*List)
	l.Enter()
	assert.Contains(t, h.LastInfo(), ".png maps")
	l.Handle(input.KeyDown(ebiten.KeyEnter))
	assert.Zero(t, h.Switches)
}

func TestViewer_Navigation(t *testing.T) {
	h, dir := mapsHost(t)
	l := New(h).(*List)
	l.Enter()
	v := NewViewer(h, l.Paths(), 0)
	v.Enter()
	assert.True(t, v.Loaded())

	v.Handle(input.KeyDown(ebiten.KeyLeft))
	assert.Equal(t, 2, v.Index(), "previous wraps to the last map")
	assert.Equal(t, filepath.Join(dir, "Research.png"), l.Paths()[2])
	assert.False(t, v.Loaded())
	assert.Equal(t, "Cannot load image.", h.LastInfo())

	v.Handle(input.KeyDown(ebiten.KeyRight))
	assert.Equal(t, 0, v.Index())
	assert.True(t, v.Loaded())

	v.Handle(input.KeyDown(ebiten.KeyEscape))
	assert.Equal(t, scene.Sectors, h.LastGoto())
	assert.NoError(t, v.Exit())
}

func TestViewer_ZoomPanFit(t *testing.T) {
	h, _ := mapsHost(t)
	l := New(h).(*List)
	l.Enter()
	v := NewViewer(h, l.Paths(), 0)
	v.Enter()

	v.Handle(input.KeyDown(ebiten.KeyEqual))
	assert.InDelta(t, 1.1, v.Zoom(), 1e-9)
	v.Handle(input.KeyDown(ebiten.KeyMinus))
	assert.InDelta(t, 0.99, v.Zoom(), 1e-9)

	v.Handle(input.KeyDown(ebiten.KeyUp))
	v.Handle(input.Event{Kind: input.KindKey, Key: ebiten.KeyRight, Shift: true})
	x, y := v.Pan()
	assert.Equal(t, -20.0, x)
	assert.Equal(t, 20.0, y)
	assert.Equal(t, 0, v.Index(), "shifted arrows pan instead of paging")

	v.Handle(input.KeyDown(ebiten.KeyF))
	assert.Equal(t, render.FitCover, v.Fit())
	x, y = v.Pan()
	assert.Zero(t, x)
	assert.Zero(t, y)
	assert.Equal(t, 1.0, v.Zoom())

	for range 100 {
		v.Handle(input.KeyDown(ebiten.KeyMinus))
	}
	assert.Equal(t, minZoom, v.Zoom())
	v.Handle(input.KeyDown(ebiten.Key0))
	assert.Equal(t, 1.0, v.Zoom())
}
