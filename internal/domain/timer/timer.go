// Package timer provides the countdown primitives shared by overlays,
// scenes and the quarry mini-game.
//
// All timers are driven by explicit Tick(dt) calls from the frame loop;
// nothing here reads the wall clock.
package timer

// Cooldown is a restartable countdown gating a repeated action.
type Cooldown struct {
	duration  float64
	remaining float64
}

// NewCooldown creates an idle cooldown with the given duration in seconds.
func NewCooldown(duration float64) *Cooldown {
	if duration < 0 {
		duration = 0
	}
	return &Cooldown{duration: duration}
}

// Start (re)starts the countdown at its full duration.
func (c *Cooldown) Start() {
	c.remaining = c.duration
}

// Tick advances the countdown by dt seconds.
// Returns true only on the tick that brings the remaining time to zero.
func (c *Cooldown) Tick(dt float64) bool {
	if c.remaining <= 0 {
		return false
	}
	c.remaining -= dt
	if c.remaining <= 0 {
		c.remaining = 0
		return true
	}
	return false
}

// Active reports whether the countdown is still running.
func (c *Cooldown) Active() bool {
	return c.remaining > 0
}

// Remaining returns the seconds left, zero when idle.
func (c *Cooldown) Remaining() float64 {
	return c.remaining
}

// Duration returns the configured full duration.
func (c *Cooldown) Duration() float64 {
	return c.duration
}

// Fraction returns elapsed/duration in [0,1].
// An idle cooldown reports 1.
func (c *Cooldown) Fraction() float64 {
	if c.duration <= 0 || c.remaining <= 0 {
		return 1
	}
	f := 1 - c.remaining/c.duration
	if f < 0 {
		return 0
	}
	return f
}

// Countdown fires a callback exactly once after a delay.
type Countdown struct {
	remaining float64
	armed     bool
	fire      func()
}

// NewCountdown arms a countdown that calls fire after delay seconds.
func NewCountdown(delay float64, fire func()) *Countdown {
	return &Countdown{remaining: delay, armed: true, fire: fire}
}

// Tick advances the countdown and fires the callback on expiry.
func (c *Countdown) Tick(dt float64) {
	if c == nil || !c.armed {
		return
	}
	c.remaining -= dt
	if c.remaining <= 0 {
		c.remaining = 0
		c.armed = false
		if c.fire != nil {
			c.fire()
		}
	}
}

// Pending reports whether the callback has not fired yet.
func (c *Countdown) Pending() bool {
	return c != nil && c.armed
}

// Remaining returns seconds until the callback fires.
func (c *Countdown) Remaining() float64 {
	if c == nil {
		return 0
	}
	return c.remaining
}

// Flash is a short-lived highlight carrying a tag (cell, colour, message...).
type Flash[T any] struct {
	tag       T
	remaining float64
}

// Set shows the flash with the given tag for seconds.
func (f *Flash[T]) Set(tag T, seconds float64) {
	f.tag = tag
	f.remaining = seconds
}

// Tick fades the flash.
func (f *Flash[T]) Tick(dt float64) {
	if f.remaining > 0 {
		f.remaining -= dt
		if f.remaining < 0 {
			f.remaining = 0
		}
	}
}

// Active reports whether the flash is visible.
func (f *Flash[T]) Active() bool {
	return f.remaining > 0
}

// Tag returns the tag of the current flash and whether it is visible.
func (f *Flash[T]) Tag() (T, bool) {
	return f.tag, f.remaining > 0
}

// Remaining returns the seconds the flash stays visible.
func (f *Flash[T]) Remaining() float64 {
	return f.remaining
}
