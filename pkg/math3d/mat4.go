package math3d

import "math"

// Mat4 is a 4x4 matrix stored in column-major order, matching OpenGL.
//
// Memory layout (indices):
// | 0  4  8  12 |
// | 1  5  9  13 |
// | 2  6  10 14 |
// | 3  7  11 15 |
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = v.X, v.Y, v.Z
	return m
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// LookAt creates a right-handed view matrix looking from eye towards center.
// The camera looks down its local -Z axis.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalize() // forward
	s := f.Cross(up).Normalize()     // right
	u := s.Cross(f)                  // recomputed up

	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Perspective creates an OpenGL-style perspective projection matrix mapping
// the view volume into the [-1, 1] clip cube. fovy is the vertical field of
// view in radians and aspect is width/height.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(fovy/2)
	nf := 1 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Mul multiplies two matrices: a * b.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		for row := range 4 {
			m[row+col*4] = a[row]*b[col*4] +
				a[row+4]*b[col*4+1] +
				a[row+8]*b[col*4+2] +
				a[row+12]*b[col*4+3]
		}
	}
	return m
}

// MulVec4 transforms a Vec4.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms a Vec3 as a point (w=1) and divides by the resulting w
// when it is not zero.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	p := m.MulVec4(Point(v))
	if p.W == 0 || p.W == 1 {
		return p.XYZ()
	}
	return p.PerspectiveDivide()
}

// MulDir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for col := range 4 {
		for row := range 4 {
			t[col+row*4] = m[row+col*4]
		}
	}
	return t
}

// cofactors holds the 2x2 sub-determinants Inverse is built from.
type cofactors [12]float64

func (m Mat4) cofactors() cofactors {
	return cofactors{
		m[0]*m[5] - m[1]*m[4],
		m[0]*m[6] - m[2]*m[4],
		m[0]*m[7] - m[3]*m[4],
		m[1]*m[6] - m[2]*m[5],
		m[1]*m[7] - m[3]*m[5],
		m[2]*m[7] - m[3]*m[6],
		m[8]*m[13] - m[9]*m[12],
		m[8]*m[14] - m[10]*m[12],
		m[8]*m[15] - m[11]*m[12],
		m[9]*m[14] - m[10]*m[13],
		m[9]*m[15] - m[11]*m[13],
		m[10]*m[15] - m[11]*m[14],
	}
}

func (b cofactors) determinant() float64 {
	return b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
}

// Inverse returns the inverse of the matrix and whether it exists.
// A singular matrix yields the identity and false.
func (m Mat4) Inverse() (Mat4, bool) {
	b := m.cofactors()
	det := b.determinant()
	if det == 0 {
		return Identity(), false
	}
	d := 1 / det

	return Mat4{
		(m[5]*b[11] - m[6]*b[10] + m[7]*b[9]) * d,
		(m[2]*b[10] - m[1]*b[11] - m[3]*b[9]) * d,
		(m[13]*b[5] - m[14]*b[4] + m[15]*b[3]) * d,
		(m[10]*b[4] - m[9]*b[5] - m[11]*b[3]) * d,

		(m[6]*b[8] - m[4]*b[11] - m[7]*b[7]) * d,
		(m[0]*b[11] - m[2]*b[8] + m[3]*b[7]) * d,
		(m[14]*b[2] - m[12]*b[5] - m[15]*b[1]) * d,
		(m[8]*b[5] - m[10]*b[2] + m[11]*b[1]) * d,

		(m[4]*b[10] - m[5]*b[8] + m[7]*b[6]) * d,
		(m[1]*b[8] - m[0]*b[10] - m[3]*b[6]) * d,
		(m[12]*b[4] - m[13]*b[2] + m[15]*b[0]) * d,
		(m[9]*b[2] - m[8]*b[4] - m[11]*b[0]) * d,

		(m[5]*b[7] - m[4]*b[9] - m[6]*b[6]) * d,
		(m[0]*b[9] - m[1]*b[7] + m[2]*b[6]) * d,
		(m[13]*b[1] - m[12]*b[3] - m[14]*b[0]) * d,
		(m[8]*b[3] - m[9]*b[1] + m[10]*b[0]) * d,
	}, true
}

// NormalMatrix returns the inverse-transpose of m, the matrix that carries
// surface normals correctly under non-uniform scale. A singular m yields
// the identity.
func (m Mat4) NormalMatrix() Mat4 {
	inv, _ := m.Inverse()
	return inv.Transpose()
}
