package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/taigrr/voxetype/pkg/math3d"
	"github.com/taigrr/voxetype/pkg/models"
	"github.com/taigrr/voxetype/pkg/render"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func newTestViewer(t *testing.T, cfg Config, mesh *models.Mesh) *viewer {
	t.Helper()
	tex, err := loadTexture(cfg)
	if err != nil {
		t.Fatal(err)
	}
	scene, err := NewScene(cfg, tex, mesh)
	if err != nil {
		t.Fatal(err)
	}
	v, err := newViewer(cfg, scene, 40, 20, fakeClock(time.Second/60))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func rowText(buf *render.Buffer, y int) string {
	var sb strings.Builder
	for x := range buf.Width {
		sb.WriteRune(buf.At(x, y).Glyph)
	}
	return sb.String()
}

func TestViewerModes(t *testing.T) {
	tests := []struct {
		mode  Mode
		check func(t *testing.T, s render.Stats)
	}{
		{ModeTextured, func(t *testing.T, s render.Stats) {
			if s.Triangles != 2 || s.Culled != 10 {
				t.Errorf("stats = %+v, want the front face only", s)
			}
		}},
		{ModeLit, func(t *testing.T, s render.Stats) {
			if s.Triangles != 2 {
				t.Errorf("stats = %+v", s)
			}
		}},
		{ModeNormals, func(t *testing.T, s render.Stats) {
			if s.Fragments == 0 {
				t.Errorf("stats = %+v", s)
			}
		}},
		{ModeWireframe, func(t *testing.T, s render.Stats) {
			if s.Lines != 12 || s.Triangles != 0 {
				t.Errorf("stats = %+v, want 12 lines", s)
			}
		}},
		{ModePoints, func(t *testing.T, s render.Stats) {
			if s.Points != 8 {
				t.Errorf("stats = %+v, want 8 points", s)
			}
		}},
	}
	for _, tc := range tests {
		t.Run(string(tc.mode), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Mode = tc.mode
			v := newTestViewer(t, cfg, nil)
			v.frame()
			tc.check(t, v.r.Stats)
		})
	}
}

func TestViewerDrawsCubeAndHUD(t *testing.T) {
	v := newTestViewer(t, DefaultConfig(), nil)
	v.frame()

	buf := v.r.Buffer()
	if c := buf.At(20, 10); c.Glyph == ' ' {
		t.Errorf("center cell is blank: %+v", c)
	}
	if c := buf.At(0, 10); c.Glyph != ' ' || c.Bg != render.ColorBlack {
		t.Errorf("edge cell = %+v, want background", c)
	}
	if top := rowText(buf, 0); !strings.Contains(top, "FPS") {
		t.Errorf("top row = %q", top)
	}
	if bottom := rowText(buf, 19); !strings.Contains(bottom, "tris 2") {
		t.Errorf("bottom row = %q", bottom)
	}

	var out bytes.Buffer
	if err := v.present(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "FPS") {
		t.Error("presented frame is missing the HUD")
	}
}

func TestViewerHandle(t *testing.T) {
	v := newTestViewer(t, DefaultConfig(), nil)

	if !v.handle(Input{Action: ActionQuit}) {
		t.Error("quit not reported")
	}

	v.handle(Input{Action: ActionCamera, Command: render.CommandBack})
	v.frame()
	if v.cam.Radius <= 3 {
		t.Errorf("radius = %v, want > 3 after moving back", v.cam.Radius)
	}

	v.handle(Input{Action: ActionNextMode})
	if v.scene.Mode != ModeLit {
		t.Errorf("mode = %q, want lit", v.scene.Mode)
	}

	v.handle(Input{Action: ActionToggleCull})
	if !v.r.DisableBackfaceCulling {
		t.Error("culling still enabled")
	}
	v.frame()
	if v.r.Stats.Triangles <= 2 {
		t.Errorf("stats = %+v, want back faces drawn", v.r.Stats)
	}

	v.handle(Input{Action: ActionToggleHUD})
	v.frame()
	if top := rowText(v.r.Buffer(), 0); strings.Contains(top, "FPS") {
		t.Error("HUD drawn while hidden")
	}

	v.handle(Input{Action: ActionSpin})
	v.handle(Input{Action: ActionReset})
	if v.cam.Radius != 3 || v.scene.Spin.Yaw.Velocity != 0 {
		t.Error("reset did not restore camera and spin")
	}
}

func TestViewerResize(t *testing.T) {
	v := newTestViewer(t, DefaultConfig(), nil)
	if err := v.resize(80, 24); err != nil {
		t.Fatal(err)
	}
	if v.r.Width() != 80 || v.r.Height() != 24 {
		t.Errorf("size = %dx%d", v.r.Width(), v.r.Height())
	}
	if err := v.resize(0, 24); err != nil || v.r.Width() != 80 {
		t.Errorf("collapsed window changed the buffer: err=%v width=%d", err, v.r.Width())
	}
	v.frame()
}

func TestViewerModel(t *testing.T) {
	mesh := models.NewMesh("quad")
	for _, p := range []math3d.Vec3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}} {
		mesh.Vertices = append(mesh.Vertices, render.NewVertex(p, math3d.Vec2{}, math3d.V3(0, 0, 1)))
	}
	mesh.Materials = []models.Material{{Name: "red", BaseColor: render.ColorRed}}
	mesh.Faces = []models.Face{
		{V: [3]int{0, 1, 2}, Material: 0},
		{V: [3]int{0, 2, 3}, Material: -1},
	}
	mesh.Fit()

	cfg := DefaultConfig()
	cfg.Model = "quad"
	cfg.Mode = ModeModel
	v := newTestViewer(t, cfg, mesh)
	v.frame()

	if v.r.Stats.Triangles != 2 {
		t.Errorf("stats = %+v, want both model triangles", v.r.Stats)
	}
	if got := rowText(v.r.Buffer(), 0); !strings.Contains(got, "quad") {
		t.Errorf("HUD title missing: %q", got)
	}
}
