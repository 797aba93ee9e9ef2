package render

import (
	"math"

	"github.com/taigrr/voxetype/pkg/math3d"
)

// DefaultMinRadius keeps the orbit away from the look-at target, where the
// view matrix would degenerate.
const DefaultMinRadius = 0.1

// Command is a discrete camera movement request.
type Command int

const (
	CommandNone        Command = iota
	CommandForward             // Move towards the target
	CommandBack                // Move away from the target
	CommandRotateLeft          // Orbit counter-clockwise seen from above
	CommandRotateRight         // Orbit clockwise seen from above
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandForward:
		return "forward"
	case CommandBack:
		return "back"
	case CommandRotateLeft:
		return "rotate-left"
	case CommandRotateRight:
		return "rotate-right"
	default:
		return "none"
	}
}

// ParseCommand maps a key name to a command: w/up, s/down, a/left, d/right.
// Anything else yields CommandNone.
func ParseCommand(key string) Command {
	switch key {
	case "w", "up":
		return CommandForward
	case "s", "down":
		return CommandBack
	case "a", "left":
		return CommandRotateLeft
	case "d", "right":
		return CommandRotateRight
	default:
		return CommandNone
	}
}

// OrbitCamera circles the origin on the horizontal plane, always looking at
// it. Theta is not normalized; the trigonometry wraps it.
type OrbitCamera struct {
	Radius      float64
	Theta       float64 // Orbit angle in radians; 0 is on the +Z axis
	MoveSpeed   float64 // Radius change per second
	RotateSpeed float64 // Radians per second
	MinRadius   float64

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near clipping plane
	Far         float64 // Far clipping plane

	// Cached projection (computed on demand)
	projMatrix math3d.Mat4
	projDirty  bool
}

// NewOrbitCamera creates a camera at theta 0 with a 60 degree field of view.
func NewOrbitCamera(moveSpeed, rotateSpeed, radius float64) *OrbitCamera {
	return &OrbitCamera{
		Radius:      math.Max(radius, DefaultMinRadius),
		MoveSpeed:   moveSpeed,
		RotateSpeed: rotateSpeed,
		MinRadius:   DefaultMinRadius,
		FOV:         math.Pi / 3, // 60 degrees
		AspectRatio: 1,
		Near:        0.1,
		Far:         100,
		projDirty:   true,
	}
}

// Handle applies a command scaled by the elapsed time dt (seconds).
// CommandNone and unknown commands are ignored.
func (c *OrbitCamera) Handle(cmd Command, dt float64) {
	switch cmd {
	case CommandForward:
		c.Radius = math.Max(c.MinRadius, c.Radius-dt*c.MoveSpeed)
	case CommandBack:
		c.Radius += dt * c.MoveSpeed
	case CommandRotateLeft:
		c.Theta += dt * c.RotateSpeed
	case CommandRotateRight:
		c.Theta -= dt * c.RotateSpeed
	}
}

// Position returns the eye position: (sin θ, 0, cos θ) * radius.
func (c *OrbitCamera) Position() math3d.Vec3 {
	s, co := math.Sincos(c.Theta)
	return math3d.V3(s, 0, co).Scale(c.Radius)
}

// SetAspectRatio sets the aspect ratio.
func (c *OrbitCamera) SetAspectRatio(aspect float64) {
	c.AspectRatio = aspect
	c.projDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *OrbitCamera) SetFOV(fov float64) {
	c.FOV = fov
	c.projDirty = true
}

// SetClipPlanes sets the near and far clipping planes.
func (c *OrbitCamera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
	c.projDirty = true
}

// Reset returns the camera to theta 0 at the given radius.
func (c *OrbitCamera) Reset(radius float64) {
	c.Theta = 0
	c.Radius = math.Max(radius, c.MinRadius)
}

// ViewMatrix returns the right-handed look-at matrix towards the origin.
func (c *OrbitCamera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position(), math3d.Vec3{}, math3d.Up())
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *OrbitCamera) ProjectionMatrix() math3d.Mat4 {
	if c.projDirty {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns projection * view.
func (c *OrbitCamera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
