package render

import (
	"strings"

	figure "github.com/common-nighthawk/go-figure"
)

// Banner renders s as FIGlet ASCII art in the standard font, trailing
// blank rows removed. It falls back to s itself if the art is empty.
func Banner(s string) []string {
	rows := figure.NewFigure(s, "standard", true).Slicify()
	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return []string{s}
	}
	return rows
}
