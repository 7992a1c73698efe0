package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCooldown_StartAndTick(t *testing.T) {
	c := NewCooldown(1.0)
	assert.False(t, c.Active())
	assert.Equal(t, 1.0, c.Fraction(), "idle cooldown reports complete")

	c.Start()
	assert.True(t, c.Active())
	assert.Equal(t, 1.0, c.Remaining())
	assert.Equal(t, 0.0, c.Fraction())

	assert.False(t, c.Tick(0.25))
	assert.InDelta(t, 0.25, c.Fraction(), 1e-9)

	assert.False(t, c.Tick(0.5))
	assert.True(t, c.Tick(0.5), "tick reaching zero reports expiry")
	assert.False(t, c.Active())
	assert.Equal(t, 0.0, c.Remaining(), "remaining clamps at zero")

	assert.False(t, c.Tick(0.5), "ticking idle cooldown is a no-op")
}

func TestCooldown_FractionMonotonic(t *testing.T) {
	c := NewCooldown(15)
	c.Start()

	prev := c.Fraction()
	for i := 0; i < 2000 && c.Active(); i++ {
		c.Tick(1.0 / 60.0)
		f := c.Fraction()
		assert.GreaterOrEqual(t, f, prev)
		assert.LessOrEqual(t, f, 1.0)
		prev = f
	}
	assert.False(t, c.Active())
}

func TestCooldown_NegativeDuration(t *testing.T) {
	c := NewCooldown(-3)
	c.Start()
	assert.False(t, c.Active())
	assert.Equal(t, 0.0, c.Duration())
}

func TestCountdown_FiresOnce(t *testing.T) {
	fired := 0
	c := NewCountdown(1.2, func() { fired++ })

	c.Tick(1.0)
	assert.Equal(t, 0, fired)
	assert.True(t, c.Pending())

	c.Tick(0.3)
	assert.Equal(t, 1, fired)
	assert.False(t, c.Pending())

	c.Tick(5)
	assert.Equal(t, 1, fired, "callback must not fire twice")
}

func TestCountdown_NilSafe(t *testing.T) {
	var c *Countdown
	assert.NotPanics(t, func() { c.Tick(1) })
	assert.False(t, c.Pending())
	assert.Equal(t, 0.0, c.Remaining())
}

func TestFlash(t *testing.T) {
	var f Flash[string]
	_, ok := f.Tag()
	assert.False(t, ok)

	f.Set("red", 0.35)
	tag, ok := f.Tag()
	assert.True(t, ok)
	assert.Equal(t, "red", tag)

	f.Tick(0.2)
	assert.True(t, f.Active())
	f.Tick(0.2)
	assert.False(t, f.Active())
	assert.Equal(t, 0.0, f.Remaining())
}
