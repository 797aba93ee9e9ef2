// Package models provides 3D model loading and representation for voxetype.
package models

import (
	"image"

	"github.com/taigrr/voxetype/pkg/math3d"
	"github.com/taigrr/voxetype/pkg/render"
)

// Mesh represents a triangle mesh with per-vertex attributes and materials.
type Mesh struct {
	Name      string
	Vertices  []render.Vertex
	Faces     []Face
	Materials []Material

	// Image is the first image embedded in the source file, if any.
	Image image.Image

	bounds render.AABB
}

// Face represents a counter-clockwise triangle with a material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the subset of a glTF PBR material the terminal can show.
type Material struct {
	Name       string
	BaseColor  render.Color
	Metallic   float64 // 0 = dielectric, 1 = metal
	Roughness  float64 // 0 = smooth, 1 = rough
	HasTexture bool
}

// Group is a run of triangle indices sharing one material.
type Group struct {
	Material int // -1 for no material
	Indices  []int
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	m.bounds = render.BoundsOf(m.Vertices)
}

// Bounds returns the box computed by the last CalculateBounds.
func (m *Mesh) Bounds() render.AABB {
	return m.bounds
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// VertexBuffer returns the vertices for Rasterizer.SetVertexBuffer. The
// slice is shared with the mesh.
func (m *Mesh) VertexBuffer() []render.Vertex {
	return m.Vertices
}

// Indices returns the flat triangle index list of every face.
func (m *Mesh) Indices() []int {
	out := make([]int, 0, len(m.Faces)*3)
	for _, f := range m.Faces {
		out = append(out, f.V[0], f.V[1], f.V[2])
	}
	return out
}

// Groups splits the index list by material, in order of first use.
func (m *Mesh) Groups() []Group {
	var groups []Group
	pos := map[int]int{}
	for _, f := range m.Faces {
		i, ok := pos[f.Material]
		if !ok {
			i = len(groups)
			pos[f.Material] = i
			groups = append(groups, Group{Material: f.Material})
		}
		groups[i].Indices = append(groups[i].Indices, f.V[0], f.V[1], f.V[2])
	}
	return groups
}

// Material returns the material at index i, or nil for -1 and out of range.
func (m *Mesh) Material(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// CalculateNormals assigns each face's normal to its vertices (flat shading).
// Vertices shared between faces keep the normal of the last face.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		n := m.faceNormal(f).Normalize()
		for _, vi := range f.V {
			m.Vertices[vi].Normal = n
		}
	}
}

// CalculateSmoothNormals computes area-weighted averaged normals.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Vec3{}
	}

	// Unnormalized face normals weight larger faces more.
	for _, f := range m.Faces {
		n := m.faceNormal(f)
		for _, vi := range f.V {
			m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(n)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position.XYZ()
	v1 := m.Vertices[f.V[1]].Position.XYZ()
	v2 := m.Vertices[f.V[2]].Position.XYZ()
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// HasNormals reports whether any vertex carries a non-zero normal.
func (m *Mesh) HasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			return true
		}
	}
	return false
}

// Transform applies mat to every position and its normal matrix to every
// normal, then recomputes the bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm := mat.NormalMatrix()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = math3d.Point(mat.MulPoint(v.Position.XYZ()))
		v.Normal = nm.MulDir(v.Normal).Normalize()
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its largest
// dimension spans [-0.5, 0.5], matching the unit cube.
func (m *Mesh) Fit() {
	m.CalculateBounds()
	extent := m.bounds.Size().MaxComponent()
	if extent == 0 {
		return
	}
	center := m.bounds.Center()
	m.Transform(math3d.ScaleUniform(1 / extent).Mul(math3d.Translate(center.Negate())))
}
