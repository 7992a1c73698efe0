package pdf

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Backend rasterizes PDF pages.
type Backend interface {
	PageCount(ctx context.Context, path string) (int, error)
	PageSize(ctx context.Context, path string, page int) (w, h float64, err error)
	Rasterize(ctx context.Context, path string, page int, dpi float64) (image.Image, error)
}

// Poppler drives the pdfinfo and pdftoppm executables.
type Poppler struct {
	pdfinfo  string
	pdftoppm string
}

// NewPoppler looks up the poppler tools on PATH.
func NewPoppler() *Poppler {
	info, _ := exec.LookPath("pdfinfo")
	ppm, _ := exec.LookPath("pdftoppm")
	return &Poppler{pdfinfo: info, pdftoppm: ppm}
}

// Available reports whether both tools were found.
func (p *Poppler) Available() bool {
	return p.pdfinfo != "" && p.pdftoppm != ""
}

var sizeRe = regexp.MustCompile(`^Page\s+\d+\s+size:\s+([\d.]+)\s+x\s+([\d.]+)`)

func (p *Poppler) info(ctx context.Context, args ...string) ([]byte, error) {
	if !p.Available() {
		return nil, ErrRendererUnavailable
	}
	out, err := exec.CommandContext(ctx, p.pdfinfo, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to run pdfinfo: %w", err)
	}
	return out, nil
}

// PageCount reads "Pages:" from pdfinfo.
func (p *Poppler) PageCount(ctx context.Context, path string) (int, error) {
	out, err := p.info(ctx, path)
	if err != nil {
		return 0, err
	}
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if v, ok := strings.CutPrefix(sc.Text(), "Pages:"); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return 0, fmt.Errorf("failed to parse page count %q: %w", v, err)
			}
			return n, nil
		}
	}
	return 0, fmt.Errorf("no page count in pdfinfo output for %s", filepath.Base(path))
}

// PageSize returns the page size in points.
func (p *Poppler) PageSize(ctx context.Context, path string, page int) (float64, float64, error) {
	n := strconv.Itoa(page + 1)
	out, err := p.info(ctx, "-f", n, "-l", n, path)
	if err != nil {
		return 0, 0, err
	}
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		if m := sizeRe.FindStringSubmatch(sc.Text()); m != nil {
			w, _ := strconv.ParseFloat(m[1], 64)
			h, _ := strconv.ParseFloat(m[2], 64)
			if w > 0 && h > 0 {
				return w, h, nil
			}
		}
	}
	// US letter
	return 612, 792, nil
}

// Rasterize renders one page (zero based) at dpi into a PNG and decodes it.
func (p *Poppler) Rasterize(ctx context.Context, path string, page int, dpi float64) (image.Image, error) {
	if !p.Available() {
		return nil, ErrRendererUnavailable
	}
	dir, err := os.MkdirTemp("", "fbcterm-pdf-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	n := strconv.Itoa(page + 1)
	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, p.pdftoppm,
		"-f", n, "-l", n, "-r", strconv.Itoa(max(1, int(dpi))),
		"-png", "-singlefile", path, prefix)
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to render page %d of %s: %w", page+1, filepath.Base(path), err)
	}

	f, err := os.Open(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("failed to open rendered page: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode rendered page: %w", err)
	}
	return img, nil
}
