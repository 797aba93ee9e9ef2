package main

import "time"

// maxDelta caps a frame step so a stall (suspend, slow terminal) does not
// fling the camera.
const maxDelta = 0.1

// Timer measures the time between frames.
type Timer struct {
	now   func() time.Time
	last  time.Time
	delta float64
}

// newTimer starts a timer reading the clock now, time.Now outside tests.
func newTimer(now func() time.Time) *Timer {
	return &Timer{now: now, last: now()}
}

// Update records a frame boundary.
func (t *Timer) Update() {
	now := t.now()
	t.delta = min(now.Sub(t.last).Seconds(), maxDelta)
	t.last = now
}

// Delta returns the seconds between the last two Update calls, capped at
// maxDelta.
func (t *Timer) Delta() float64 {
	return t.delta
}
