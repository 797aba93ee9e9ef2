package render

import "github.com/taigrr/voxetype/pkg/math3d"

func face(normal math3d.Vec3, corners [4]math3d.Vec3) [4]Vertex {
	uvs := [4]math3d.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	var out [4]Vertex
	for i, c := range corners {
		out[i] = NewVertex(c, uvs[i], normal)
	}
	return out
}

// Cube vertices: a unit cube centered on the origin spanning [-0.5, 0.5],
// four vertices per face so every face carries its own UVs and normal.
// Each face is wound counter-clockwise when viewed from outside.
var cubeVertices = func() []Vertex {
	const h = 0.5
	faces := [][4]Vertex{
		// +Z (front)
		face(math3d.V3(0, 0, 1), [4]math3d.Vec3{{X: -h, Y: -h, Z: h}, {X: h, Y: -h, Z: h}, {X: h, Y: h, Z: h}, {X: -h, Y: h, Z: h}}),
		// -Z (back)
		face(math3d.V3(0, 0, -1), [4]math3d.Vec3{{X: h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: -h}, {X: -h, Y: h, Z: -h}, {X: h, Y: h, Z: -h}}),
		// +X (right)
		face(math3d.V3(1, 0, 0), [4]math3d.Vec3{{X: h, Y: -h, Z: h}, {X: h, Y: -h, Z: -h}, {X: h, Y: h, Z: -h}, {X: h, Y: h, Z: h}}),
		// -X (left)
		face(math3d.V3(-1, 0, 0), [4]math3d.Vec3{{X: -h, Y: -h, Z: -h}, {X: -h, Y: -h, Z: h}, {X: -h, Y: h, Z: h}, {X: -h, Y: h, Z: -h}}),
		// +Y (top)
		face(math3d.V3(0, 1, 0), [4]math3d.Vec3{{X: -h, Y: h, Z: h}, {X: h, Y: h, Z: h}, {X: h, Y: h, Z: -h}, {X: -h, Y: h, Z: -h}}),
		// -Y (bottom)
		face(math3d.V3(0, -1, 0), [4]math3d.Vec3{{X: -h, Y: -h, Z: -h}, {X: h, Y: -h, Z: -h}, {X: h, Y: -h, Z: h}, {X: -h, Y: -h, Z: h}}),
	}
	verts := make([]Vertex, 0, 24)
	for _, f := range faces {
		verts = append(verts, f[:]...)
	}
	return verts
}()

var cubeIndices = func() []int {
	idx := make([]int, 0, 36)
	for f := range 6 {
		b := f * 4
		idx = append(idx, b, b+1, b+2, b, b+2, b+3)
	}
	return idx
}()

// CubeVertices returns the 24 vertices of the unit cube.
func CubeVertices() []Vertex { return cubeVertices }

// CubeIndices returns the 36 triangle indices (12 counter-clockwise
// triangles) into CubeVertices.
func CubeIndices() []int { return cubeIndices }

// The 8 corners of the unit cube, for line and point drawing.
var cubeCorners = []Vertex{
	NewVertex(math3d.V3(-0.5, -0.5, -0.5), math3d.Vec2{}, math3d.V3(-1, -1, -1).Normalize()),
	NewVertex(math3d.V3(0.5, -0.5, -0.5), math3d.Vec2{}, math3d.V3(1, -1, -1).Normalize()),
	NewVertex(math3d.V3(0.5, 0.5, -0.5), math3d.Vec2{}, math3d.V3(1, 1, -1).Normalize()),
	NewVertex(math3d.V3(-0.5, 0.5, -0.5), math3d.Vec2{}, math3d.V3(-1, 1, -1).Normalize()),
	NewVertex(math3d.V3(-0.5, -0.5, 0.5), math3d.Vec2{}, math3d.V3(-1, -1, 1).Normalize()),
	NewVertex(math3d.V3(0.5, -0.5, 0.5), math3d.Vec2{}, math3d.V3(1, -1, 1).Normalize()),
	NewVertex(math3d.V3(0.5, 0.5, 0.5), math3d.Vec2{}, math3d.V3(1, 1, 1).Normalize()),
	NewVertex(math3d.V3(-0.5, 0.5, 0.5), math3d.Vec2{}, math3d.V3(-1, 1, 1).Normalize()),
}

var cubeEdges = []int{
	0, 1, 1, 2, 2, 3, 3, 0, // back
	4, 5, 5, 6, 6, 7, 7, 4, // front
	0, 4, 1, 5, 2, 6, 3, 7, // sides
}

// CubeCorners returns the 8 corner vertices of the unit cube.
func CubeCorners() []Vertex { return cubeCorners }

// CubeEdges returns the 24 line indices (12 edges) into CubeCorners.
func CubeEdges() []int { return cubeEdges }

var quadVertices = []Vertex{
	NewVertex(math3d.V3(-0.5, -0.5, 0), math3d.V2(0, 0), math3d.V3(0, 0, 1)),
	NewVertex(math3d.V3(0.5, -0.5, 0), math3d.V2(1, 0), math3d.V3(0, 0, 1)),
	NewVertex(math3d.V3(0.5, 0.5, 0), math3d.V2(1, 1), math3d.V3(0, 0, 1)),
	NewVertex(math3d.V3(-0.5, 0.5, 0), math3d.V2(0, 1), math3d.V3(0, 0, 1)),
}

var quadIndices = []int{0, 1, 2, 0, 2, 3}

// QuadVertices returns a unit quad in the XY plane facing +Z.
func QuadVertices() []Vertex { return quadVertices }

// QuadIndices returns the 6 triangle indices into QuadVertices.
func QuadIndices() []int { return quadIndices }
