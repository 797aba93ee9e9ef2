package main

import (
	"testing"
	"time"
)

func TestSpinDecays(t *testing.T) {
	s := NewSpin(60)
	if s.Pitch.Velocity != 0 || s.Yaw.Velocity != 0 {
		t.Fatal("new spin should be resting")
	}

	s.ApplyImpulse(0, 0.1)
	s.Update()
	if s.Yaw.Position != 0.1 {
		t.Errorf("yaw after one frame = %v, want 0.1", s.Yaw.Position)
	}
	if v := s.Yaw.Velocity; v >= 0.1 || v <= 0 {
		t.Errorf("velocity = %v, want decayed but positive", v)
	}

	for range 300 {
		s.Update()
	}
	if v := s.Yaw.Velocity; v > 1e-4 || v < 0 {
		t.Errorf("spin still moving after 5s: %v", v)
	}
	if s.Yaw.Position <= 0.1 || s.Pitch.Position != 0 {
		t.Errorf("pitch=%v yaw=%v", s.Pitch.Position, s.Yaw.Position)
	}

	s.Reset()
	if s.Yaw.Position != 0 || s.Yaw.Velocity != 0 {
		t.Error("reset did not clear the axis")
	}
}

func TestTimer(t *testing.T) {
	now := time.Unix(100, 0)
	clock := func() time.Time { return now }
	timer := newTimer(clock)

	now = now.Add(16 * time.Millisecond)
	timer.Update()
	if d := timer.Delta(); d < 0.015999 || d > 0.016001 {
		t.Errorf("delta = %v, want 0.016", d)
	}

	now = now.Add(5 * time.Second)
	timer.Update()
	if d := timer.Delta(); d != maxDelta {
		t.Errorf("delta after a stall = %v, want %v", d, maxDelta)
	}
}

func TestHUDTick(t *testing.T) {
	start := time.Unix(0, 0)
	h := NewHUD("cube", start)
	for i := 1; i <= 60; i++ {
		h.Tick(start.Add(time.Duration(i) * time.Second / 60))
	}
	if h.fps != 60 {
		t.Errorf("fps = %v, want 60", h.fps)
	}
}
