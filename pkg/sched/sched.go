// Package sched abstracts the two timed sources an interactive canvas needs: a
// fixed-period timer and a per-frame callback. Everything runs on the caller's
// goroutine; implementations never start goroutines of their own.
package sched

import "time"

// Cancel stops a registered callback. Calling it more than once is harmless.
type Cancel func()

// Scheduler is provided by the host (the window loop, or a test).
type Scheduler interface {
	// OnTick calls fn every period until cancelled.
	OnTick(period time.Duration, fn func()) Cancel

	// OnFrame calls fn once per rendered frame until cancelled.
	OnFrame(fn func(now time.Time)) Cancel

	// Defer runs fn once, after the current event handler has returned.
	Defer(fn func())
}

type timer struct {
	id     int
	period time.Duration
	due    time.Time
	fn     func()
	dead   bool
}

type frameCB struct {
	id   int
	fn   func(now time.Time)
	dead bool
}

// registry is the bookkeeping shared by Manual and Host.
type registry struct {
	nextID   int
	timers   []*timer
	frames   []*frameCB
	deferred []func()
}

func (r *registry) addTimer(now time.Time, period time.Duration, fn func()) Cancel {
	if period <= 0 {
		period = time.Millisecond
	}
	r.nextID++
	t := &timer{id: r.nextID, period: period, due: now.Add(period), fn: fn}
	r.timers = append(r.timers, t)
	return func() {
		t.dead = true
	}
}

func (r *registry) addFrame(fn func(now time.Time)) Cancel {
	r.nextID++
	f := &frameCB{id: r.nextID, fn: fn}
	r.frames = append(r.frames, f)
	return func() {
		f.dead = true
	}
}

// runDeferred runs queued calls, including ones queued while running.
func (r *registry) runDeferred() int {
	n := 0
	for len(r.deferred) > 0 {
		fn := r.deferred[0]
		r.deferred = r.deferred[1:]
		fn()
		n++
	}
	return n
}

// nextDue returns the earliest live timer due at or before limit.
func (r *registry) nextDue(limit time.Time) *timer {
	var best *timer
	for _, t := range r.timers {
		if t.dead || t.due.After(limit) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.id < best.id) {
			best = t
		}
	}
	return best
}

// fireDue runs every timer that is due by now, in due order, rescheduling
// each one period later. A timer that fell more than a period behind fires
// once and is rescheduled from now; missed periods are dropped. Deferred calls
// queued by a timer run before the next timer fires.
func (r *registry) fireDue(now time.Time) int {
	n := 0
	for {
		t := r.nextDue(now)
		if t == nil {
			break
		}
		t.due = t.due.Add(t.period)
		if !t.due.After(now) {
			t.due = now.Add(t.period)
		}
		t.fn()
		n++
		r.runDeferred()
	}
	r.compact()
	return n
}

func (r *registry) runFrames(now time.Time) int {
	// Snapshot so callbacks registered during this frame start next frame.
	frames := append([]*frameCB(nil), r.frames...)
	n := 0
	for _, f := range frames {
		if f.dead {
			continue
		}
		f.fn(now)
		n++
	}
	r.compact()
	return n
}

func (r *registry) compact() {
	live := r.timers[:0]
	for _, t := range r.timers {
		if !t.dead {
			live = append(live, t)
		}
	}
	r.timers = live

	liveF := r.frames[:0]
	for _, f := range r.frames {
		if !f.dead {
			liveF = append(liveF, f)
		}
	}
	r.frames = liveF
}

func (r *registry) activeTimers() int {
	n := 0
	for _, t := range r.timers {
		if !t.dead {
			n++
		}
	}
	return n
}

func (r *registry) activeFrames() int {
	n := 0
	for _, f := range r.frames {
		if !f.dead {
			n++
		}
	}
	return n
}
