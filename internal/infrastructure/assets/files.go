// Package assets lists and loads the files the terminal displays: text,
// images, fonts and the per-folder item records.
package assets

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Missing is shown in place of text that could not be read.
const Missing = "(missing)"

// List returns the files in dir whose extension matches one of exts,
// case-insensitively. Paths are absolute, sorted and de-duplicated. A
// missing or unreadable directory yields an empty slice.
func List(dir string, exts ...string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return []string{}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}

	seen := make(map[string]bool)
	out := []string{}
	for _, e := range entries {
		if e.IsDir() || !hasExt(e.Name(), exts) {
			continue
		}
		p := filepath.Join(abs, e.Name())
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func hasExt(name string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// Dirs returns the sub-directories of root, sorted by name.
func Dirs(root string) []string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return []string{}
	}
	out := []string{}
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// ReadText returns the trimmed contents of path, or Missing when the file
// cannot be read or is blank.
func ReadText(path string) string {
	return ReadTextOr(path, Missing)
}

// ReadTextOr is ReadText with a caller-chosen fallback.
func ReadTextOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	t := strings.TrimSpace(strings.ToValidUTF8(string(data), "�"))
	if t == "" {
		return fallback
	}
	return t
}

// ReadLines returns the non-blank trimmed lines of path.
func ReadLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var out []string
	for _, l := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// Title turns a file name into a display title: the extension is dropped
// and underscores become spaces.
func Title(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSpace(strings.ReplaceAll(base, "_", " "))
}

// AudioLog pairs a recording with its transcript.
type AudioLog struct {
	Name       string
	Audio      string
	Transcript string
}

// AudioLogs pairs every .mp3 in dir with the .txt of the same base name.
// Recordings without a transcript are skipped. Sorted by name,
// case-insensitively.
func AudioLogs(dir string) []AudioLog {
	audio := make(map[string]string)
	for _, p := range List(dir, ".mp3") {
		audio[stem(p)] = p
	}
	var out []AudioLog
	for _, p := range List(dir, ".txt") {
		if a, ok := audio[stem(p)]; ok {
			out = append(out, AudioLog{Name: stem(p), Audio: a, Transcript: p})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func stem(p string) string {
	b := filepath.Base(p)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

// Item is one catalogued object folder.
type Item struct {
	Code  string
	Dir   string
	Dates string
	Info  string
	Image string // empty when the folder has no image.png
}

// Items reads every folder under root as an Item.
func Items(root string) []Item {
	var out []Item
	for _, d := range Dirs(root) {
		it := Item{
			Code:  filepath.Base(d),
			Dir:   d,
			Dates: filepath.Join(d, "dates.txt"),
			Info:  filepath.Join(d, "info.txt"),
		}
		if img := filepath.Join(d, "image.png"); fileExists(img) {
			it.Image = img
		}
		out = append(out, it)
	}
	return out
}

func fileExists(p string) bool {
	st, err := os.Stat(p)
	return err == nil && !st.IsDir()
}
