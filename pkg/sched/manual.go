package sched

import "time"

// Manual is a deterministic Scheduler for tests and headless runs. Time only
// moves when Advance is called and frames only run when Frame is called.
type Manual struct {
	reg registry
	now time.Time
}

// NewManual creates a manual scheduler starting at the given time.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the scheduler's current time.
func (m *Manual) Now() time.Time {
	return m.now
}

// OnTick implements Scheduler.
func (m *Manual) OnTick(period time.Duration, fn func()) Cancel {
	return m.reg.addTimer(m.now, period, fn)
}

// OnFrame implements Scheduler.
func (m *Manual) OnFrame(fn func(now time.Time)) Cancel {
	return m.reg.addFrame(fn)
}

// Defer implements Scheduler. Deferred calls run on Flush, Advance or Frame.
func (m *Manual) Defer(fn func()) {
	m.reg.deferred = append(m.reg.deferred, fn)
}

// Flush runs all deferred calls and returns how many ran.
func (m *Manual) Flush() int {
	return m.reg.runDeferred()
}

// Advance moves the clock forward by d, firing due timers in order. Deferred
// calls queued by a timer run before the next timer fires, the way a browser
// event loop drains its task queue between timer callbacks.
func (m *Manual) Advance(d time.Duration) int {
	target := m.now.Add(d)
	fired := m.reg.runDeferred()
	for {
		t := m.reg.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.due
		t.due = t.due.Add(t.period)
		t.fn()
		fired++
		m.reg.runDeferred()
	}
	m.reg.compact()
	m.now = target
	return fired
}

// Frame runs one frame: deferred calls first, then every frame callback.
// It returns the number of frame callbacks run.
func (m *Manual) Frame() int {
	m.reg.runDeferred()
	return m.reg.runFrames(m.now)
}

// Frames runs n frames.
func (m *Manual) Frames(n int) {
	for i := 0; i < n; i++ {
		m.Frame()
	}
}

// Timers returns the number of live tick registrations.
func (m *Manual) Timers() int {
	return m.reg.activeTimers()
}

// FrameCallbacks returns the number of live frame registrations.
func (m *Manual) FrameCallbacks() int {
	return m.reg.activeFrames()
}

// Pending returns the number of deferred calls waiting to run.
func (m *Manual) Pending() int {
	return len(m.reg.deferred)
}
