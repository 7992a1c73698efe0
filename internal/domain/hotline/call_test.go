package hotline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCall_Lifecycle(t *testing.T) {
	var log []string
	c := New(Hooks{
		Ringing:   func() { log = append(log, "ring") },
		Connected: func() { log = append(log, "connect") },
		Ended:     func() { log = append(log, "end") },
	})
	assert.True(t, c.Ringing())
	assert.Empty(t, log, "initial state does not fire hooks")

	assert.False(t, c.Hangup(), "cannot hang up a ringing phone")
	assert.True(t, c.Answer())
	assert.True(t, c.Connected())
	assert.False(t, c.Answer(), "already answered")

	assert.True(t, c.Hangup())
	assert.Equal(t, StateEnded, c.State())
	assert.True(t, c.Reset())
	assert.True(t, c.Ringing())
	assert.False(t, c.Reset(), "already ringing")

	assert.Equal(t, []string{"connect", "end", "ring"}, log)
}

func TestCall_NilHooks(t *testing.T) {
	c := New(Hooks{})
	assert.True(t, c.Answer())
	assert.True(t, c.Reset())
	assert.True(t, c.Ringing())
}
