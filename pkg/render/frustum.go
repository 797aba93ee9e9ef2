package render

import "github.com/taigrr/voxetype/pkg/math3d"

// Plane is Normal·p + D = 0; the normal points towards the inside.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// normalize scales the plane equation so the normal has unit length.
func (p *Plane) normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// Distance returns the signed distance from the plane to point, positive
// on the inside.
func (p Plane) Distance(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum holds the six inward-facing planes of a view volume in the order
// left, right, bottom, top, near, far.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix extracts the planes of the clip volume of m using the
// Gribb/Hartmann method. For m = projection * view * model the planes are in
// object space.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	row := func(i int) (float64, float64, float64, float64) {
		return m[i], m[i+4], m[i+8], m[i+12]
	}
	x0, y0, z0, w0 := row(0)
	x1, y1, z1, w1 := row(1)
	x2, y2, z2, w2 := row(2)
	x3, y3, z3, w3 := row(3)

	f := Frustum{Planes: [6]Plane{
		{math3d.V3(x3+x0, y3+y0, z3+z0), w3 + w0}, // left
		{math3d.V3(x3-x0, y3-y0, z3-z0), w3 - w0}, // right
		{math3d.V3(x3+x1, y3+y1, z3+z1), w3 + w1}, // bottom
		{math3d.V3(x3-x1, y3-y1, z3-z1), w3 - w1}, // top
		{math3d.V3(x3+x2, y3+y2, z3+z2), w3 + w2}, // near
		{math3d.V3(x3-x2, y3-y2, z3-z2), w3 - w2}, // far
	}}
	for i := range f.Planes {
		f.Planes[i].normalize()
	}
	return f
}

// IntersectAABB reports whether any part of box may be inside the frustum.
// It tests the corner furthest along each plane normal, so it can report
// true for boxes just outside a frustum corner but never false for a
// visible box.
func (f Frustum) IntersectAABB(box AABB) bool {
	for i := range f.Planes {
		n := f.Planes[i].Normal
		p := math3d.V3(
			pick(n.X >= 0, box.Max.X, box.Min.X),
			pick(n.Y >= 0, box.Max.Y, box.Min.Y),
			pick(n.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if f.Planes[i].Distance(p) < 0 {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// BoundsOf returns the box enclosing the positions of vertices.
func BoundsOf(vertices []Vertex) AABB {
	if len(vertices) == 0 {
		return AABB{}
	}
	p := vertices[0].Position.XYZ()
	box := AABB{Min: p, Max: p}
	for _, v := range vertices[1:] {
		p = v.Position.XYZ()
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the box enclosing the eight transformed corners.
func (b AABB) Transform(m math3d.Mat4) AABB {
	var out AABB
	for i := range 8 {
		c := math3d.V3(
			pick(i&1 != 0, b.Max.X, b.Min.X),
			pick(i&2 != 0, b.Max.Y, b.Min.Y),
			pick(i&4 != 0, b.Max.Z, b.Min.Z),
		)
		p := m.MulPoint(c)
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}
