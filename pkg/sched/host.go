package sched

import "time"

// Host is the Scheduler used inside a frame-driven window loop. The loop calls
// Step at the start of every frame with the frame timestamp and asks NextWake
// when it must be woken again; nothing here blocks or spawns goroutines.
type Host struct {
	reg     registry
	last    time.Time
	started bool

	// Wake, if set, is called when a registration needs the loop to run
	// (typically window.Invalidate).
	Wake func()
}

// NewHost creates a host scheduler.
func NewHost() *Host {
	return &Host{}
}

func (h *Host) clock() time.Time {
	if !h.started {
		return time.Now()
	}
	return h.last
}

func (h *Host) wake() {
	if h.Wake != nil {
		h.Wake()
	}
}

// OnTick implements Scheduler.
func (h *Host) OnTick(period time.Duration, fn func()) Cancel {
	c := h.reg.addTimer(h.clock(), period, fn)
	h.wake()
	return c
}

// OnFrame implements Scheduler.
func (h *Host) OnFrame(fn func(now time.Time)) Cancel {
	c := h.reg.addFrame(fn)
	h.wake()
	return c
}

// Defer implements Scheduler. Deferred calls run at the start of the next Step.
func (h *Host) Defer(fn func()) {
	h.reg.deferred = append(h.reg.deferred, fn)
	h.wake()
}

// Step runs deferred calls, due timers and frame callbacks for the frame at now.
func (h *Host) Step(now time.Time) {
	h.last = now
	h.started = true
	h.reg.runDeferred()
	h.reg.fireDue(now)
	h.reg.runDeferred()
	h.reg.runFrames(now)
}

// Animating reports whether a frame callback is registered, meaning the loop
// should draw continuously.
func (h *Host) Animating() bool {
	return h.reg.activeFrames() > 0
}

// NextWake returns when the loop must run next. ok is false when nothing is
// scheduled. An animating host always wants the next frame immediately.
func (h *Host) NextWake(now time.Time) (at time.Time, ok bool) {
	if h.Animating() || len(h.reg.deferred) > 0 {
		return now, true
	}
	var best time.Time
	for _, t := range h.reg.timers {
		if t.dead {
			continue
		}
		if !ok || t.due.Before(best) {
			best = t.due
			ok = true
		}
	}
	return best, ok
}
