package docs

import (
	"context"
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/fbcterm/internal/application/input"
	"github.com/younwookim/fbcterm/internal/application/scene"
	"github.com/younwookim/fbcterm/internal/application/scene/scenetest"
	"github.com/younwookim/fbcterm/internal/infrastructure/pdf"
)

type fakeBackend struct {
	pages   int
	renders int
	err     error
}

func (f *fakeBackend) PageCount(context.Context, string) (int, error) {
	return f.pages, f.err
}

func (f *fakeBackend) PageSize(context.Context, string, int) (float64, float64, error) {
	return 612, 792, nil
}

func (f *fakeBackend) Rasterize(context.Context, string, int, float64) (image.Image, error) {
	f.renders++
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type clip struct{ got []string }

func (c *clip) copy(s string) error {
	c.got = append(c.got, s)
	return nil
}

func setup(t *testing.T, fb *fakeBackend) (*scenetest.Host, *clip, *List) {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "documents")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, n := range []string{"Bureau_Memo.pdf", "alpha.PDF", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}

	h := scenetest.New()
	h.Cfg.Paths.Assets = root
	c := &clip{}
	l := NewList(h, Env{Backend: fb, Copy: c.copy})
	l.Enter()
	return h, c, l
}

func openViewer(t *testing.T, h *scenetest.Host, l *List) *Viewer {
	t.Helper()
	l.Handle(input.KeyDown(ebiten.KeyEnter))
	require.NotNil(t, h.Next)
	v, ok := h.Next(h).(*Viewer)
	require.True(t, ok)
	v.Enter()
	return v
}

func TestList_ListsPDFs(t *testing.T) {
	_, _, l := setup(t, &fakeBackend{pages: 3})
	require.Len(t, l.Paths(), 2)
	assert.Equal(t, "Bureau_Memo.pdf", filepath.Base(l.Paths()[0]))
	assert.Equal(t, []string{"Bureau Memo", "alpha"}, l.list.Labels)
}

func TestList_CopyAndBack(t *testing.T) {
	h, c, l := setup(t, &fakeBackend{pages: 3})
	l.Handle(input.KeyDown(ebiten.KeyC))
	assert.Equal(t, []string{"Bureau Memo"}, c.got)
	assert.Equal(t, 1, h.OKs)

	l.Handle(input.KeyDown(ebiten.KeyEscape))
	assert.Equal(t, scene.Menu, h.LastGoto())
}

func TestList_RendererUnavailable(t *testing.T) {
	h, _, l := setup(t, &fakeBackend{err: pdf.ErrRendererUnavailable})
	l.Handle(input.KeyDown(ebiten.KeyEnter))
	assert.Zero(t, h.Switches)
	assert.Equal(t, 1, h.Errors)
	assert.Contains(t, h.LastInfo(), "poppler")
}

func TestList_EmptyDirectory(t *testing.T) {
	h := scenetest.New()
	h.Cfg.Paths.Assets = t.TempDir()
	l := NewList(h, Env{Backend: &fakeBackend{pages: 1}})
	l.Enter()
	assert.Equal(t, -1, l.Selected())
	l.Handle(input.KeyDown(ebiten.KeyEnter))
	assert.Zero(t, h.Switches)
	assert.Equal(t, 1, h.Errors)
}

func TestViewer_Paging(t *testing.T) {
	fb := &fakeBackend{pages: 3}
	h, _, l := setup(t, fb)
	v := openViewer(t, h, l)
	assert.Equal(t, 0, v.Page())
	assert.Equal(t, 1, fb.renders)

	v.Handle(input.KeyDown(ebiten.KeyLeft))
	assert.Equal(t, 0, v.Page())
	assert.Equal(t, 1, h.Errors, "no page before the first")

	v.Handle(input.KeyDown(ebiten.KeyRight))
	v.Handle(input.KeyDown(ebiten.KeyRight))
	v.Handle(input.KeyDown(ebiten.KeyRight))
	assert.Equal(t, 2, v.Page())
	assert.Equal(t, 2, h.Errors)

	v.Handle(input.KeyDown(ebiten.KeyLeft))
	assert.Equal(t, 3, fb.renders, "revisiting a page hits the cache")
	assert.NoError(t, v.Err())
}

func TestViewer_Zoom(t *testing.T) {
	h, _, l := setup(t, &fakeBackend{pages: 1})
	v := openViewer(t, h, l)

	v.Handle(input.KeyDown(ebiten.KeyEqual))
	assert.InDelta(t, 1.25, v.Zoom(), 1e-9)
	assert.True(t, v.Document().Cached(0, 1.25))

	for range 10 {
		v.Handle(input.KeyDown(ebiten.KeyEqual))
	}
	assert.InDelta(t, 3, v.Zoom(), 1e-9)
	for range 20 {
		v.Handle(input.KeyDown(ebiten.KeyMinus))
	}
	assert.InDelta(t, 0.5, v.Zoom(), 1e-9)

	v.Handle(input.KeyDown(ebiten.Key0))
	assert.InDelta(t, 1, v.Zoom(), 1e-9)
}

func TestViewer_CopyAndExit(t *testing.T) {
	h, c, l := setup(t, &fakeBackend{pages: 2})
	v := openViewer(t, h, l)

	v.Handle(input.KeyDown(ebiten.KeyC))
	assert.Equal(t, []string{"Bureau Memo"}, c.got)

	v.Handle(input.KeyDown(ebiten.KeyEscape))
	assert.Equal(t, scene.Documents, h.LastGoto())
	require.NoError(t, v.Exit())
	assert.False(t, v.Document().Cached(0, 1))
}

func TestCopyTitle_Failure(t *testing.T) {
	h := scenetest.New()
	copyTitle(h, Env{Copy: func(string) error { return errors.New("no xclip") }}, "x")
	assert.Equal(t, 1, h.Errors)
	assert.Equal(t, "Clipboard unavailable.", h.LastInfo())
}
