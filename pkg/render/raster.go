package render

import (
	"io"
	"math"

	"github.com/taigrr/voxetype/pkg/math3d"
)

// maxCoord bounds projected viewport coordinates. Anything further out is a
// vertex at or behind the eye and is dropped instead of overflowing the
// integer edge functions.
const maxCoord = 1 << 24

// Stats counts the work done since the last ResetStats.
type Stats struct {
	Triangles int // triangles that reached the pixel loop
	Culled    int // back-facing, degenerate or unprojectable triangles
	Fragments int // fragment shader invocations
	Lines     int
	Points    int
}

// Rasterizer draws indexed primitives from a vertex buffer into a Buffer.
// It is not safe for concurrent use.
type Rasterizer struct {
	buf      *Buffer
	vertices []Vertex
	uniforms Uniforms

	// Background is the cell Clear fills the buffer with.
	Background Cell

	// DisableBackfaceCulling draws clockwise triangles too.
	DisableBackfaceCulling bool

	Stats Stats
}

// NewRasterizer creates a rasterizer drawing into buf with identity
// matrices.
func NewRasterizer(buf *Buffer) *Rasterizer {
	return &Rasterizer{
		buf:        buf,
		Background: Blank(),
		uniforms: Uniforms{
			Transform: math3d.Identity(),
			Model:     math3d.Identity(),
			Normal:    math3d.Identity(),
		},
	}
}

// Buffer returns the target buffer.
func (r *Rasterizer) Buffer() *Buffer {
	return r.buf
}

// SetBuffer retargets the rasterizer, e.g. after a terminal resize.
func (r *Rasterizer) SetBuffer(buf *Buffer) {
	r.buf = buf
}

// Width returns the viewport width.
func (r *Rasterizer) Width() int {
	return r.buf.Width
}

// Height returns the viewport height.
func (r *Rasterizer) Height() int {
	return r.buf.Height
}

// Clear fills the buffer with Background.
func (r *Rasterizer) Clear() {
	r.buf.Fill(r.Background)
}

// Present serializes the buffer; see Buffer.Present.
func (r *Rasterizer) Present(w io.Writer) error {
	return r.buf.Present(w)
}

// SetTransform replaces the combined object-to-clip matrix.
func (r *Rasterizer) SetTransform(m math3d.Mat4) {
	r.uniforms.Transform = m
}

// SetModel replaces the model matrix and derives the normal matrix from it.
// The combined transform is left unchanged.
func (r *Rasterizer) SetModel(model math3d.Mat4) {
	r.uniforms.Model = model
	r.uniforms.Normal = model.NormalMatrix()
}

// SetMatrices composes projection * view * model into the transform and
// stores the model and normal matrices.
func (r *Rasterizer) SetMatrices(projection, view, model math3d.Mat4) {
	r.SetModel(model)
	r.uniforms.Transform = projection.Mul(view).Mul(model)
}

// Uniforms returns the current per-draw state.
func (r *Rasterizer) Uniforms() Uniforms {
	return r.uniforms
}

// SetVertexBuffer replaces the vertex buffer. The slice is referenced, not
// copied, and must not be modified while drawing.
func (r *Rasterizer) SetVertexBuffer(vertices []Vertex) {
	changed := len(vertices) != len(r.vertices) ||
		(len(vertices) > 0 && &vertices[0] != &r.vertices[0])
	r.vertices = vertices
	if changed {
		Logger().Debug("vertex buffer set", "vertices", len(vertices))
	}
}

// ResetStats zeroes the counters (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = Stats{}
}

// Visible reports whether an object-space box can touch the view volume
// under the current transform. Draw calls are not affected; callers use it
// to skip whole objects.
func (r *Rasterizer) Visible(box AABB) bool {
	return NewFrustumFromMatrix(r.uniforms.Transform).IntersectAABB(box)
}

// screenVertex is a vertex after the vertex stage: its attributes are
// pre-multiplied by rw = 1/w and its position is in viewport pixels.
type screenVertex struct {
	v    Vertex
	rw   float64
	x, y int64
}

// project runs the vertex stage and maps the result to viewport pixels.
// It reports false for vertices that cannot be projected.
func (r *Rasterizer) project(v Vertex, p *Program) (screenVertex, bool) {
	vs := p.shadeVertex(v, &r.uniforms)
	clip := vs.Position
	if clip.W == 0 {
		return screenVertex{}, false
	}
	rw := 1 / clip.W
	sx := (clip.X*rw*0.5 + 0.5) * float64(r.buf.Width-1)
	sy := (-clip.Y*rw*0.5 + 0.5) * float64(r.buf.Height-1)
	// The negated comparison also rejects NaN.
	if !(math.Abs(sx) <= maxCoord && math.Abs(sy) <= maxCoord) {
		return screenVertex{}, false
	}
	return screenVertex{
		v:  vs.Scale(rw),
		rw: rw,
		x:  int64(math.Round(sx)),
		y:  int64(math.Round(sy)),
	}, true
}

// unproject undoes the reciprocal-w pre-multiplication of an interpolated
// vertex and brings its normal into world space.
func (r *Rasterizer) unproject(v Vertex, rw float64) Vertex {
	v = v.NormalizeByWeight(rw)
	v.Normal = r.uniforms.Normal.MulDir(v.Normal).Normalize()
	return v
}
