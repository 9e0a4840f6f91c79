package sched

import "time"

// PulseStep is how far the pulse moves per frame.
const PulseStep = 0.05

// pulseEpsilon absorbs float drift so the wave lands exactly on 0 and 1.
const pulseEpsilon = 1e-9

// Pulse is a triangle wave oscillating between 0 and 1, advanced once per
// frame. It drives the glow around active markers.
type Pulse struct {
	value float64
	dir   float64
}

// Value returns the current pulse value in [0, 1].
func (p *Pulse) Value() float64 {
	return p.value
}

// Reset returns the pulse to 0, rising.
func (p *Pulse) Reset() {
	p.value = 0
	p.dir = 1
}

// Advance moves the pulse one frame and returns the new value.
func (p *Pulse) Advance() float64 {
	if p.dir == 0 {
		p.dir = 1
	}
	p.value += p.dir * PulseStep
	if p.value >= 1-pulseEpsilon {
		p.value = 1
		p.dir = -1
	}
	if p.value <= pulseEpsilon {
		p.value = 0
		p.dir = 1
	}
	return p.value
}

// Animator runs a Pulse from a scheduler's frame callback.
type Animator struct {
	Pulse  Pulse
	cancel Cancel

	// OnFrame is called after each pulse step, typically to redraw.
	OnFrame func()
}

// Start registers the animator with s. Starting a running animator is a no-op.
func (a *Animator) Start(s Scheduler) {
	if a.cancel != nil || s == nil {
		return
	}
	a.cancel = s.OnFrame(func(_ time.Time) {
		a.Pulse.Advance()
		if a.OnFrame != nil {
			a.OnFrame()
		}
	})
}

// Stop cancels the frame callback and resets the pulse.
func (a *Animator) Stop() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Pulse.Reset()
}

// Running reports whether the animator is registered.
func (a *Animator) Running() bool {
	return a.cancel != nil
}
