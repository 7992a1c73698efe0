// Package pdf renders document pages through an external rasterizer and
// keeps the most recent renders in an LRU cache.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrRendererUnavailable is returned when no rasterizer is installed.
var ErrRendererUnavailable = errors.New("pdf renderer unavailable")

// DefaultCacheSize is the number of rendered pages kept per document.
const DefaultCacheSize = 6

// PageKey identifies a render: page index and zoom in percent.
type PageKey struct {
	Page int
	Zoom int
}

// pageKey rounds zoom to whole percent so a zoom reached by repeated
// multiply and divide steps lands on the same entry.
func pageKey(page int, zoom float64) PageKey {
	return PageKey{Page: page, Zoom: int(math.Round(zoom * 100))}
}

// Document is an opened PDF with its page cache.
type Document struct {
	path    string
	pages   int
	backend Backend
	cache   *lru.Cache[PageKey, image.Image]
}

// Open counts the pages of path. cacheSize outside 1..DefaultCacheSize uses
// DefaultCacheSize.
func Open(ctx context.Context, b Backend, path string, cacheSize int) (*Document, error) {
	if cacheSize <= 0 || cacheSize > DefaultCacheSize {
		cacheSize = DefaultCacheSize
	}
	n, err := b.PageCount(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if n <= 0 {
		return nil, fmt.Errorf("failed to open %s: document has no pages", path)
	}
	cache, err := lru.New[PageKey, image.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}
	return &Document{path: path, pages: n, backend: b, cache: cache}, nil
}

// Pages returns the page count.
func (d *Document) Pages() int {
	return d.pages
}

// Path returns the file path.
func (d *Document) Path() string {
	return d.path
}

// ClampPage keeps page inside the document.
func (d *Document) ClampPage(page int) int {
	return max(0, min(d.pages-1, page))
}

// Render returns page scaled to fit 90% of maxW×maxH, multiplied by zoom.
// Results are cached by (page, zoom).
func (d *Document) Render(ctx context.Context, page int, zoom float64, maxW, maxH int) (image.Image, error) {
	page = d.ClampPage(page)
	key := pageKey(page, zoom)
	if img, ok := d.cache.Get(key); ok {
		return img, nil
	}

	pw, ph, err := d.backend.PageSize(ctx, d.path, page)
	if err != nil {
		return nil, err
	}
	scale := min(float64(maxW)*0.9/pw, float64(maxH)*0.9/ph)
	img, err := d.backend.Rasterize(ctx, d.path, page, 72*scale*zoom)
	if err != nil {
		return nil, err
	}
	d.cache.Add(key, img)
	return img, nil
}

// Cached reports whether a render is in the cache, without touching its
// recency.
func (d *Document) Cached(page int, zoom float64) bool {
	return d.cache.Contains(pageKey(page, zoom))
}

// Close drops the cache.
func (d *Document) Close() {
	d.cache.Purge()
}
