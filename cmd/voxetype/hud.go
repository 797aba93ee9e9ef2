package main

import (
	"fmt"
	"time"

	"github.com/taigrr/voxetype/pkg/render"
)

var (
	hudFg    = render.RGB(235, 235, 235)
	hudBg    = render.RGB(20, 20, 28)
	hudGreen = render.RGB(80, 220, 120)
	hudDim   = render.RGB(140, 140, 150)
)

// HUD renders an overlay with frame statistics into the buffer.
type HUD struct {
	Visible bool

	title     string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a HUD titled with the scene name.
func NewHUD(title string, now time.Time) *HUD {
	return &HUD{Visible: true, title: title, fpsTime: now}
}

// Tick updates the FPS counter (call once per frame).
func (h *HUD) Tick(now time.Time) {
	h.fpsFrames++
	elapsed := now.Sub(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = now
	}
}

// Draw writes the top and bottom status lines over the frame.
func (h *HUD) Draw(buf *render.Buffer, mode Mode, stats render.Stats, cam *render.OrbitCamera, culling bool) {
	if !h.Visible || buf.Height < 2 {
		return
	}

	top := fmt.Sprintf(" %3.0f FPS ", h.fps)
	n := buf.PutString(0, 0, top, hudGreen, hudBg)
	n += buf.PutString(n, 0, " "+h.title+" ", hudFg, hudBg)
	cull := "on"
	if !culling {
		cull = "off"
	}
	buf.PutString(n, 0, fmt.Sprintf(" mode %s  cull %s ", mode, cull), hudDim, hudBg)

	bottom := fmt.Sprintf(" tris %d  culled %d  frags %d  lines %d  points %d  r=%.1f ",
		stats.Triangles, stats.Culled, stats.Fragments, stats.Lines, stats.Points, cam.Radius)
	buf.PutString(0, buf.Height-1, bottom, hudFg, hudBg)
}
