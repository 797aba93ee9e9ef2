package main

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/taigrr/voxetype/pkg/render"
)

// cellAspect is the width of a terminal cell relative to its height.
const cellAspect = 0.5

// viewer is the per-frame state of the program. It is owned by the frame
// loop goroutine.
type viewer struct {
	cfg    Config
	r      *render.Rasterizer
	cam    *render.OrbitCamera
	scene  *Scene
	hud    *HUD
	timer  *Timer
	queued []render.Command
}

func newViewer(cfg Config, scene *Scene, width, height int, now func() time.Time) (*viewer, error) {
	buf, err := render.NewBuffer(width, height)
	if err != nil {
		return nil, fmt.Errorf("allocate buffer: %w", err)
	}
	r := render.NewRasterizer(buf)
	r.Background = render.Cell{Glyph: ' ', Fg: render.ColorWhite, Bg: cfg.BackgroundColor()}
	r.DisableBackfaceCulling = !cfg.Cull

	cam := render.NewOrbitCamera(cfg.Camera.MoveSpeed, cfg.Camera.RotateSpeed, cfg.Camera.Radius)
	cam.SetFOV(cfg.Camera.FOV * math.Pi / 180)

	v := &viewer{
		cfg:   cfg,
		r:     r,
		cam:   cam,
		scene: scene,
		hud:   NewHUD(sceneTitle(cfg), now()),
		timer: newTimer(now),
	}
	v.hud.Visible = cfg.HUD
	v.setAspect(width, height)
	return v, nil
}

func sceneTitle(cfg Config) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	return "cube"
}

func (v *viewer) setAspect(width, height int) {
	v.cam.SetAspectRatio(float64(width) / float64(height) * cellAspect)
}

// resize reallocates the buffer for a new terminal size. A collapsed
// window keeps the old buffer.
func (v *viewer) resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	buf, err := render.NewBuffer(width, height)
	if err != nil {
		return fmt.Errorf("resize to %dx%d: %w", width, height, err)
	}
	v.r.SetBuffer(buf)
	v.setAspect(width, height)
	render.Logger().Debug("terminal resized", "width", width, "height", height)
	return nil
}

// handle applies a decoded key press. It reports whether the viewer should
// quit. Camera commands are queued until the next frame knows its dt.
func (v *viewer) handle(in Input) bool {
	switch in.Action {
	case ActionQuit:
		return true
	case ActionCamera:
		v.queued = append(v.queued, in.Command)
	case ActionSpin:
		v.scene.Spin.ApplyImpulse((rand.Float64()-0.5)*0.3, (rand.Float64()-0.5)*0.3)
	case ActionNextMode:
		v.scene.Mode = v.scene.Mode.Next(v.scene.HasModel())
	case ActionToggleCull:
		v.r.DisableBackfaceCulling = !v.r.DisableBackfaceCulling
	case ActionToggleHUD:
		v.hud.Visible = !v.hud.Visible
	case ActionReset:
		v.cam.Reset(v.cfg.Camera.Radius)
		v.scene.Spin.Reset()
	}
	return false
}

// frame advances time, applies queued input and draws into the buffer.
func (v *viewer) frame() {
	v.timer.Update()
	dt := v.timer.Delta()
	for _, cmd := range v.queued {
		v.cam.Handle(cmd, dt)
	}
	v.queued = v.queued[:0]
	v.scene.Spin.Update()

	v.r.Clear()
	v.r.ResetStats()
	v.scene.Draw(v.r, v.cam)

	v.hud.Tick(v.timer.now())
	v.hud.Draw(v.r.Buffer(), v.scene.Mode, v.r.Stats, v.cam, !v.r.DisableBackfaceCulling)
}

// present writes the frame to w.
func (v *viewer) present(w io.Writer) error {
	return v.r.Present(w)
}
