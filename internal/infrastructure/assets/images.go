package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	resource "github.com/quasilyte/ebitengine-resource"
)

// LoadImage reads an image file into a GPU image.
func LoadImage(path string) (*ebiten.Image, error) {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return img, nil
}

// DecodeImage reads an image file into memory without touching the GPU.
func DecodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Branding images registered with the resource loader.
const (
	_ resource.ImageID = iota
	ImageLogo
	ImageIcon
	ImageAhti
)

// Library caches the fixed branding images. Missing files are remembered
// as nil so the disk is probed only once.
type Library struct {
	loader *resource.Loader
	paths  map[resource.ImageID]string
	loaded map[resource.ImageID]*ebiten.Image
}

// NewLibrary registers the branding images. ctx may be nil.
func NewLibrary(ctx *audio.Context, logo, icon, ahti string) *Library {
	l := resource.NewLoader(ctx)
	l.OpenAssetFunc = func(path string) io.ReadCloser {
		data, err := os.ReadFile(path)
		if err != nil {
			panic(err)
		}
		return io.NopCloser(bytes.NewReader(data))
	}

	paths := map[resource.ImageID]string{
		ImageLogo: logo,
		ImageIcon: icon,
		ImageAhti: ahti,
	}
	infos := make(map[resource.ImageID]resource.ImageInfo, len(paths))
	for id, p := range paths {
		infos[id] = resource.ImageInfo{Path: p}
	}
	l.ImageRegistry.Assign(infos)

	return &Library{
		loader: l,
		paths:  paths,
		loaded: make(map[resource.ImageID]*ebiten.Image),
	}
}

// Image returns the image for id, or nil if it cannot be loaded.
func (lib *Library) Image(id resource.ImageID) *ebiten.Image {
	if img, ok := lib.loaded[id]; ok {
		return img
	}
	img := lib.load(id)
	lib.loaded[id] = img
	return img
}

func (lib *Library) load(id resource.ImageID) (img *ebiten.Image) {
	p, ok := lib.paths[id]
	if !ok || !fileExists(p) {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[assets] image %s: %v", p, r)
			img = nil
		}
	}()
	return lib.loader.LoadImage(id).Data
}

// Logo returns the header logo, or nil.
func (lib *Library) Logo() *ebiten.Image { return lib.Image(ImageLogo) }

// Ahti returns the janitor portrait, or nil.
func (lib *Library) Ahti() *ebiten.Image { return lib.Image(ImageAhti) }
