package math

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity returns the identity node transform.
func Identity() mgl64.Mat4 {
	return mgl64.Ident4()
}

// TRS composes a node matrix as Translation * Rotation * Scale.
// The rotation quaternion is normalized first; a zero quaternion means no rotation.
func TRS(t r3.Vec, r mgl64.Quat, s r3.Vec) mgl64.Mat4 {
	rot := mgl64.Ident4()
	if r.Len() > 1e-12 {
		rot = r.Normalize().Mat4()
	}
	return mgl64.Translate3D(t.X, t.Y, t.Z).
		Mul4(rot).
		Mul4(mgl64.Scale3D(s.X, s.Y, s.Z))
}

// Quat builds a quaternion from x, y, z, w components (glTF order).
func Quat(x, y, z, w float64) mgl64.Quat {
	return mgl64.Quat{W: w, V: mgl64.Vec3{x, y, z}}
}

// TransformPoint applies m to p with w = 1, dividing by w when it is not 1.
func TransformPoint(m mgl64.Mat4, p r3.Vec) r3.Vec {
	v := m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	if v[3] != 0 && v[3] != 1 {
		return r3.Vec{X: v[0] / v[3], Y: v[1] / v[3], Z: v[2] / v[3]}
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// TranslationOf returns a pure translation matrix.
func TranslationOf(d r3.Vec) mgl64.Mat4 {
	return mgl64.Translate3D(d.X, d.Y, d.Z)
}

// OrIdentity returns m, or the identity when m is the zero matrix.
// Hand-built documents often leave transforms unset.
func OrIdentity(m mgl64.Mat4) mgl64.Mat4 {
	if m == (mgl64.Mat4{}) {
		return mgl64.Ident4()
	}
	return m
}
