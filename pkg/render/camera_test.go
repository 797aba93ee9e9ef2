package render

import (
	"math"
	"testing"

	"github.com/taigrr/voxetype/pkg/math3d"
)

func TestOrbitCameraCommands(t *testing.T) {
	cam := NewOrbitCamera(1, 1, 5)
	if cam.Theta != 0 || cam.Radius != 5 {
		t.Fatalf("new camera at theta=%v radius=%v", cam.Theta, cam.Radius)
	}

	cam.Handle(CommandForward, 1)
	if cam.Radius != 4 {
		t.Errorf("radius after forward = %v, want 4", cam.Radius)
	}

	cam.Handle(CommandRotateLeft, 1)
	if cam.Theta != 1 {
		t.Errorf("theta after rotate left = %v, want 1", cam.Theta)
	}

	cam.Handle(CommandBack, 0.5)
	if cam.Radius != 4.5 {
		t.Errorf("radius after back = %v, want 4.5", cam.Radius)
	}

	cam.Handle(CommandRotateRight, 2)
	if cam.Theta != -1 {
		t.Errorf("theta after rotate right = %v, want -1", cam.Theta)
	}
}

func TestOrbitCameraIgnoresUnknownCommands(t *testing.T) {
	cam := NewOrbitCamera(1, 1, 5)
	cam.Handle(CommandNone, 1)
	cam.Handle(Command(42), 1)
	if cam.Radius != 5 || cam.Theta != 0 {
		t.Errorf("camera moved: radius=%v theta=%v", cam.Radius, cam.Theta)
	}
}

func TestOrbitCameraMinRadius(t *testing.T) {
	cam := NewOrbitCamera(10, 1, 1)
	cam.Handle(CommandForward, 5)
	if cam.Radius != DefaultMinRadius {
		t.Errorf("radius = %v, want clamp at %v", cam.Radius, DefaultMinRadius)
	}
	if v := cam.ViewMatrix(); math.IsNaN(v[0]) {
		t.Error("view matrix degenerated at the minimum radius")
	}
}

func TestOrbitCameraViewMatrix(t *testing.T) {
	cam := NewOrbitCamera(1, 1, 5)

	if p := cam.Position(); math.Abs(p.Z-5) > 1e-12 || math.Abs(p.X) > 1e-12 {
		t.Errorf("position at theta 0 = %v, want (0, 0, 5)", p)
	}
	if got := cam.ViewMatrix().MulPoint(math3d.Vec3{}); math.Abs(got.Z+5) > 1e-9 {
		t.Errorf("target in view space = %v, want z = -5", got)
	}

	cam.Handle(CommandRotateLeft, math.Pi/2)
	if p := cam.Position(); math.Abs(p.X-5) > 1e-9 || math.Abs(p.Z) > 1e-9 {
		t.Errorf("position at theta pi/2 = %v, want (5, 0, 0)", p)
	}
	// Still looking at the origin.
	if got := cam.ViewMatrix().MulPoint(math3d.Vec3{}); math.Abs(got.X) > 1e-9 || math.Abs(got.Z+5) > 1e-9 {
		t.Errorf("target in view space = %v, want (0, 0, -5)", got)
	}
}

func TestOrbitCameraProjectionCache(t *testing.T) {
	cam := NewOrbitCamera(1, 1, 5)
	p1 := cam.ProjectionMatrix()
	cam.SetAspectRatio(2)
	p2 := cam.ProjectionMatrix()
	if p1 == p2 {
		t.Error("projection not recomputed after aspect change")
	}
	if p2[0] != p1[0]/2 {
		t.Errorf("x scale = %v, want %v", p2[0], p1[0]/2)
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		key  string
		want Command
	}{
		{"w", CommandForward},
		{"up", CommandForward},
		{"s", CommandBack},
		{"down", CommandBack},
		{"a", CommandRotateLeft},
		{"left", CommandRotateLeft},
		{"d", CommandRotateRight},
		{"right", CommandRotateRight},
		{"x", CommandNone},
		{"", CommandNone},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			if got := ParseCommand(tc.key); got != tc.want {
				t.Errorf("ParseCommand(%q) = %v, want %v", tc.key, got, tc.want)
			}
		})
	}
}
