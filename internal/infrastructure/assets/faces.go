package assets

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
)

// Faces hands out monospace faces by size, reusing one face per
// (size, weight).
type Faces struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	cache   map[faceKey]*text.GoTextFace
}

type faceKey struct {
	size int
	bold bool
}

// NewFaces parses the embedded Go Mono fonts.
func NewFaces() (*Faces, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load mono font: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gomonobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to load bold mono font: %w", err)
	}
	return &Faces{
		regular: regular,
		bold:    bold,
		cache:   make(map[faceKey]*text.GoTextFace),
	}, nil
}

// Face returns a face of the given pixel size. Sizes are rounded to whole
// pixels and never below 6.
func (f *Faces) Face(size float64, bold bool) *text.GoTextFace {
	k := faceKey{size: max(6, int(math.Round(size))), bold: bold}
	if face, ok := f.cache[k]; ok {
		return face
	}
	src := f.regular
	if bold {
		src = f.bold
	}
	face := &text.GoTextFace{Source: src, Size: float64(k.size)}
	f.cache[k] = face
	return face
}

// UI is the body text face.
func (f *Faces) UI() *text.GoTextFace { return f.Face(20, false) }

// Small is the hint and status line face.
func (f *Faces) Small() *text.GoTextFace { return f.Face(16, false) }

// Big is the heading face.
func (f *Faces) Big() *text.GoTextFace { return f.Face(30, true) }
