package render

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Measure returns the pixel width of a string.
type Measure func(s string) float64

// FaceMeasure measures with a font face.
func FaceMeasure(face text.Face) Measure {
	return func(s string) float64 { return text.Advance(s, face) }
}

// Wrap breaks s into lines no wider than maxW. Newlines are kept as hard
// breaks and blank lines are preserved as empty strings. A word wider than
// maxW gets a line of its own.
func Wrap(s string, maxW float64, measure Measure) []string {
	var lines []string
	s = strings.ReplaceAll(s, "\r\n", "\n")
	space := measure(" ")
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(strings.ReplaceAll(para, "\t", " "))
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur, curW := words[0], measure(words[0])
		for _, w := range words[1:] {
			ww := measure(w)
			if curW+space+ww <= maxW {
				cur += " " + w
				curW += space + ww
				continue
			}
			lines = append(lines, cur)
			cur, curW = w, ww
		}
		lines = append(lines, cur)
	}
	return lines
}

// Ellipsize shortens s with a trailing "…" until it fits maxW.
func Ellipsize(s string, maxW float64, measure Measure) string {
	if measure(s) <= maxW {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if t := string(r) + "…"; measure(t) <= maxW {
			return t
		}
	}
	return ""
}
