package lock

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// DefaultMaxLen is the longest input the prompt accepts, in grapheme clusters.
const DefaultMaxLen = 32

// Prompt is the line-edit buffer of the security check.
// It only accepts letters, digits, space, '-' and '_', stored uppercased.
type Prompt struct {
	buf    string
	maxLen int
}

// NewPrompt creates an empty prompt holding at most maxLen clusters.
func NewPrompt(maxLen int) *Prompt {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Prompt{maxLen: maxLen}
}

// Accepts reports whether r may be typed into the prompt.
func Accepts(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_'
}

// Type appends a single rune. Returns false when rejected or full.
func (p *Prompt) Type(r rune) bool {
	if !Accepts(r) || p.Len() >= p.maxLen {
		return false
	}
	p.buf += strings.ToUpper(string(r))
	return true
}

// Insert appends every acceptable rune of s until the prompt is full.
// Returns the number of runes taken.
func (p *Prompt) Insert(s string) int {
	n := 0
	for _, r := range s {
		if p.Type(r) {
			n++
		}
	}
	return n
}

// Backspace removes the last grapheme cluster.
func (p *Prompt) Backspace() {
	if p.buf == "" {
		return
	}
	last := 0
	g := uniseg.NewGraphemes(p.buf)
	for g.Next() {
		last, _ = g.Positions()
	}
	p.buf = p.buf[:last]
}

// Clear empties the buffer.
func (p *Prompt) Clear() {
	p.buf = ""
}

// Len returns the buffer length in grapheme clusters.
func (p *Prompt) Len() int {
	return uniseg.GraphemeClusterCount(p.buf)
}

// String returns the typed text.
func (p *Prompt) String() string {
	return p.buf
}
