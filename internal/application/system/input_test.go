package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/fbcterm/internal/application/input"
)

func TestRepeats(t *testing.T) {
	tests := []struct {
		ticks    int
		expected bool
	}{
		{0, false},
		{1, false},
		{repeatDelay, false},
		{repeatDelay + 1, false},
		{repeatDelay + repeatInterval, true},
		{repeatDelay + repeatInterval + 1, false},
		{repeatDelay + 2*repeatInterval, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Repeats(tt.ticks), "ticks=%d", tt.ticks)
	}
}

func TestInputSystem_ImplementsKeyState(t *testing.T) {
	var ks input.KeyState = NewInputSystem()
	assert.NotNil(t, ks)
}
