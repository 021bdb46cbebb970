package math

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a 4x4 column-major matrix laid out as OpenGL expects:
//
//	[m0 m4 m8  m12]
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
//
// It shares its memory layout with mgl32.Mat4, which does the arithmetic.
type Mat4 [16]float32

// Vec4 is a homogeneous 4-component vector.
type Vec4 [4]float32

func (v Vec3) gl() mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4(mgl32.Ident4())
}

// Perspective returns an OpenGL projection matrix. fovY is in radians.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	return Mat4(mgl32.Perspective(fovY, aspect, near, far))
}

// LookAt returns a right-handed view matrix from eye towards center.
func LookAt(eye, center, up Vec3) Mat4 {
	return Mat4(mgl32.LookAtV(eye.gl(), center.gl(), up.gl()))
}

// Translate returns a translation matrix.
func Translate(x, y, z float32) Mat4 {
	return Mat4(mgl32.Translate3D(x, y, z))
}

// Scale returns a scale matrix.
func Scale(x, y, z float32) Mat4 {
	return Mat4(mgl32.Scale3D(x, y, z))
}

// Model returns the model matrix of an axis-aligned box: scale by its full
// size, then move it to its center. Box meshes are unit cubes centered at 0.
func Model(center, size Vec3) Mat4 {
	return Translate(center.X, center.Y, center.Z).Mul(Scale(size.X, size.Y, size.Z))
}

// Mul returns m * other.
func (m Mat4) Mul(other Mat4) Mat4 {
	return Mat4(mgl32.Mat4(m).Mul4(mgl32.Mat4(other)))
}

// MulVec4 returns m * v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4(mgl32.Mat4(m).Mul4x1(mgl32.Vec4(v)))
}

// TransformVec3 transforms a point (w=1) and applies the perspective divide.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	r := m.MulVec4(Vec4{v.X, v.Y, v.Z, 1})
	if r[3] != 0 && r[3] != 1 {
		return Vec3{r[0] / r[3], r[1] / r[3], r[2] / r[3]}
	}
	return Vec3{r[0], r[1], r[2]}
}

// Unproject maps a normalized-device-coordinate point back through m,
// which must be an inverse view-projection matrix.
func (m Mat4) Unproject(ndc Vec3) Vec3 {
	return m.TransformVec3(ndc)
}

// Inverse returns the inverse of m, or the identity when m is singular.
func (m Mat4) Inverse() Mat4 {
	g := mgl32.Mat4(m)
	if g.Det() == 0 {
		return Identity()
	}
	return Mat4(g.Inv())
}

// Ptr returns a pointer to the first element for OpenGL uniform calls.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
