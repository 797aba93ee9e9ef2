package main

import "github.com/charmbracelet/harmonica"

// RotationAxis is one spin angle whose angular velocity is pulled back to
// zero by a critically damped spring.
type RotationAxis struct {
	Position float64 // radians
	Velocity float64 // radians per frame

	decay    harmonica.Spring
	velAccel float64 // the spring's own velocity while it drags Velocity down
}

// NewRotationAxis creates a resting axis stepped fps times per second.
func NewRotationAxis(fps int) RotationAxis {
	return RotationAxis{
		// Damping 1 settles without overshoot, so the spin never reverses.
		decay: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances the angle by one frame and decays the velocity.
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.decay.Update(a.Velocity, a.velAccel, 0)
}

// Spin is the model rotation driven by impulses from the keyboard.
type Spin struct {
	Pitch, Yaw RotationAxis
	fps        int
}

// NewSpin creates a resting spin stepped fps times per second.
func NewSpin(fps int) *Spin {
	return &Spin{
		Pitch: NewRotationAxis(fps),
		Yaw:   NewRotationAxis(fps),
		fps:   fps,
	}
}

// Update advances both axes by one frame.
func (s *Spin) Update() {
	s.Pitch.Update()
	s.Yaw.Update()
}

// ApplyImpulse adds to the angular velocities (radians per frame).
func (s *Spin) ApplyImpulse(pitch, yaw float64) {
	s.Pitch.Velocity += pitch
	s.Yaw.Velocity += yaw
}

// Reset stops the spin and returns to the initial orientation.
func (s *Spin) Reset() {
	s.Pitch = NewRotationAxis(s.fps)
	s.Yaw = NewRotationAxis(s.fps)
}
