package render

import (
	"math"
	"testing"

	"github.com/taigrr/voxetype/pkg/math3d"
)

func TestLineSymmetry(t *testing.T) {
	const w, h = 20, 15
	r := newTestRasterizer(t, w, h)

	endpoints := [][4]float64{
		{0, 0, 19, 14},
		{0, 14, 19, 0},
		{3, 2, 17, 5},
		{3, 12, 5, 1},
		{10, 7, 10, 7},
		{0, 7, 19, 7},
		{9, 0, 9, 14},
		{2, 3, 18, 12},
		{1, 13, 16, 4},
	}
	for _, e := range endpoints {
		a := pixelVertex(w, h, e[0], e[1])
		b := pixelVertex(w, h, e[2], e[3])

		forward := covered(r, func() { r.DrawLine(a, b, Shade(mark)) })
		backward := covered(r, func() { r.DrawLine(b, a, Shade(mark)) })

		if len(forward) != len(backward) {
			t.Errorf("%v: %d pixels forward, %d backward", e, len(forward), len(backward))
			continue
		}
		for p := range forward {
			if !backward[p] {
				t.Errorf("%v: pixel %v only drawn forward", e, p)
			}
		}
		for _, end := range [][2]int{{int(e[0]), int(e[1])}, {int(e[2]), int(e[3])}} {
			if !forward[end] {
				t.Errorf("%v: endpoint %v not drawn", e, end)
			}
		}
	}
}

func TestLineIsConnected(t *testing.T) {
	r := newTestRasterizer(t, 30, 10)
	got := covered(r, func() {
		r.DrawLine(pixelVertex(30, 10, 0, 9), pixelVertex(30, 10, 29, 0), Shade(mark))
	})
	// A Bresenham line touches exactly one cell per step along the major axis.
	if len(got) != 30 {
		t.Errorf("line covers %d cells, want 30", len(got))
	}
	for x := range 30 {
		n := 0
		for y := range 10 {
			if got[[2]int{x, y}] {
				n++
			}
		}
		if n != 1 {
			t.Errorf("column %d has %d cells", x, n)
		}
	}
}

func TestLineEndpointsAreClamped(t *testing.T) {
	r := newTestRasterizer(t, 10, 10)
	a := NewVertex(math3d.V3(-5, 0, 0), math3d.Vec2{}, math3d.Vec3{})
	b := NewVertex(math3d.V3(5, 0, 0), math3d.Vec2{}, math3d.Vec3{})

	got := covered(r, func() { r.DrawLine(a, b, Shade(mark)) })
	if len(got) != 10 {
		t.Errorf("clamped line covers %d cells, want the full row of 10", len(got))
	}
	if r.Stats.Lines != 1 {
		t.Errorf("Lines = %d, want 1", r.Stats.Lines)
	}
}

func TestLineInterpolatesAttributes(t *testing.T) {
	r := newTestRasterizer(t, 11, 3)
	a := pixelVertex(11, 3, 0, 1)
	b := pixelVertex(11, 3, 10, 1)
	a.UV = math3d.V2(0, 0)
	b.UV = math3d.V2(1, 0)

	var us []float64
	record := FragmentShaderFunc(func(v Vertex, _ *Uniforms) Texel {
		us = append(us, v.UV.X)
		return Texel{Glyph: '-'}
	})
	r.DrawLine(a, b, Shade(record))

	if len(us) != 11 {
		t.Fatalf("got %d fragments, want 11", len(us))
	}
	for i, u := range us {
		if want := float64(i) / 10; u < want-1e-9 || u > want+1e-9 {
			t.Errorf("fragment %d: u = %v, want %v", i, u, want)
		}
	}
}

func TestClampedLineKeepsAttributes(t *testing.T) {
	const w, h = 11, 3
	passthrough := VertexShaderFunc(func(v Vertex, _ *Uniforms) Vertex { return v })

	tests := []struct {
		name string
		farW float64 // clip w of the off-screen endpoint
	}{
		{"affine", 1},
		{"perspective", 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRasterizer(t, w, h)
			// NDC x from -1 to 3: the right half of the line is off screen.
			a := Vertex{Position: math3d.V4(-1, 0, 0, 1), UV: math3d.V2(0, 0)}
			b := Vertex{Position: math3d.V4(3*tc.farW, 0, 0, tc.farW), UV: math3d.V2(1, 0)}

			var us []float64
			record := FragmentShaderFunc(func(v Vertex, _ *Uniforms) Texel {
				us = append(us, v.UV.X)
				return Texel{Glyph: '-'}
			})
			r.DrawLine(a, b, Program{Vertex: passthrough, Fragment: record})

			if len(us) != w {
				t.Fatalf("got %d fragments, want %d", len(us), w)
			}
			for i, u := range us {
				// Screen parameter along the whole line, which ends at x = 20.
				s := float64(i) / 20
				want := (s / tc.farW) / ((1 - s) + s/tc.farW)
				if math.Abs(u-want) > 1e-9 {
					t.Errorf("pixel %d: u = %v, want %v", i, u, want)
				}
			}
		})
	}
}

func TestDrawLinesUsesIndexPairs(t *testing.T) {
	r := newTestRasterizer(t, 40, 20)
	cam := NewOrbitCamera(1, 1, 3)
	cam.SetAspectRatio(2)
	r.SetMatrices(cam.ProjectionMatrix(), cam.ViewMatrix(), math3d.RotateY(0.3))
	r.SetVertexBuffer(CubeCorners())

	// A trailing odd index is ignored.
	r.DrawLines(append(CubeEdges(), 0), Shade(mark))
	if r.Stats.Lines != 12 {
		t.Errorf("Lines = %d, want 12", r.Stats.Lines)
	}
}

func TestDrawPointsSkipsOffscreen(t *testing.T) {
	r := newTestRasterizer(t, 10, 10)
	r.SetVertexBuffer([]Vertex{
		pixelVertex(10, 10, 4, 6),
		NewVertex(math3d.V3(3, 0, 0), math3d.Vec2{}, math3d.Vec3{}),
		NewVertex(math3d.V3(0, -1.5, 0), math3d.Vec2{}, math3d.Vec3{}),
	})

	got := covered(r, func() { r.DrawPoints([]int{0, 1, 2}, Shade(mark)) })
	if len(got) != 1 || !got[[2]int{4, 6}] {
		t.Errorf("points covered %v, want only (4, 6)", got)
	}
	if r.Stats.Points != 1 {
		t.Errorf("Points = %d, want 1", r.Stats.Points)
	}
}

func TestDrawPointAppliesTransform(t *testing.T) {
	r := newTestRasterizer(t, 11, 11)
	r.SetTransform(math3d.Translate(math3d.V3(0.2, 0, 0)))

	got := covered(r, func() { r.DrawPoint(NewVertex(math3d.Vec3{}, math3d.Vec2{}, math3d.Vec3{}), Shade(mark)) })
	if !got[[2]int{6, 5}] {
		t.Errorf("translated point covered %v, want (6, 5)", got)
	}
}
