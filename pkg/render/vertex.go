package render

import "github.com/taigrr/voxetype/pkg/math3d"

// Vertex carries every attribute the rasterizer interpolates. Position is
// in object space (W=1) on input and in clip space after the vertex stage.
type Vertex struct {
	Position math3d.Vec4
	UV       math3d.Vec2
	Normal   math3d.Vec3
}

// NewVertex creates an object-space vertex.
func NewVertex(pos math3d.Vec3, uv math3d.Vec2, normal math3d.Vec3) Vertex {
	return Vertex{Position: math3d.Point(pos), UV: uv, Normal: normal}
}

// Scale multiplies every attribute, position included, by s.
func (v Vertex) Scale(s float64) Vertex {
	return Vertex{
		Position: v.Position.Scale(s),
		UV:       v.UV.Scale(s),
		Normal:   v.Normal.Scale(s),
	}
}

// Lerp3 returns the weighted sum a*wa + b*wb + c*wc.
func Lerp3(a, b, c Vertex, wa, wb, wc float64) Vertex {
	return Vertex{
		Position: math3d.Vec4{
			X: a.Position.X*wa + b.Position.X*wb + c.Position.X*wc,
			Y: a.Position.Y*wa + b.Position.Y*wb + c.Position.Y*wc,
			Z: a.Position.Z*wa + b.Position.Z*wb + c.Position.Z*wc,
			W: a.Position.W*wa + b.Position.W*wb + c.Position.W*wc,
		},
		UV: math3d.Vec2{
			X: a.UV.X*wa + b.UV.X*wb + c.UV.X*wc,
			Y: a.UV.Y*wa + b.UV.Y*wb + c.UV.Y*wc,
		},
		Normal: math3d.Vec3{
			X: a.Normal.X*wa + b.Normal.X*wb + c.Normal.X*wc,
			Y: a.Normal.Y*wa + b.Normal.Y*wb + c.Normal.Y*wc,
			Z: a.Normal.Z*wa + b.Normal.Z*wb + c.Normal.Z*wc,
		},
	}
}

// NormalizeByWeight divides every attribute by weight. It undoes the
// reciprocal-w pre-multiplication after interpolation.
func (v Vertex) NormalizeByWeight(weight float64) Vertex {
	return v.Scale(1 / weight)
}
