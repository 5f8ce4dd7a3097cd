package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Transform is a 4x4 homogeneous matrix acting on column vectors.
// Composition follows the fixed-function convention: t.Then(u) applies u in
// t's local frame, so a chain written outer to inner reads left to right.
// The zero value is the identity.
type Transform struct {
	m *mat.Dense
}

func identityData() []float64 {
	return []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{m: mat.NewDense(4, 4, identityData())}
}

// FromRows builds a transform from 16 row-major values.
func FromRows(v [16]float64) Transform {
	data := make([]float64, 16)
	copy(data, v[:])
	return Transform{m: mat.NewDense(4, 4, data)}
}

func (t Transform) dense() *mat.Dense {
	if t.m == nil {
		return mat.NewDense(4, 4, identityData())
	}
	return t.m
}

// At returns the element at row i, column j.
func (t Transform) At(i, j int) float64 {
	return t.dense().At(i, j)
}

// Then returns t·u: u is applied first, inside t's frame.
func (t Transform) Then(u Transform) Transform {
	var out mat.Dense
	out.Mul(t.dense(), u.dense())
	return Transform{m: &out}
}

// Translate returns a translation by v.
func Translate(v Vec3) Transform {
	return FromRows([16]float64{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	})
}

// RotateX returns a right-handed rotation about the X axis (degrees).
func RotateX(deg float64) Transform {
	s, c := math.Sincos(Radians(deg))
	return FromRows([16]float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
}

// RotateY returns a right-handed rotation about the Y axis (degrees).
func RotateY(deg float64) Transform {
	s, c := math.Sincos(Radians(deg))
	return FromRows([16]float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})
}

// RotateZ returns a right-handed rotation about the Z axis (degrees).
func RotateZ(deg float64) Transform {
	s, c := math.Sincos(Radians(deg))
	return FromRows([16]float64{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// Apply4 transforms the homogeneous point (p, 1) and returns all four
// components without the perspective divide.
func (t Transform) Apply4(p Vec3) (x, y, z, w float64) {
	in := mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1})
	var out mat.VecDense
	out.MulVec(t.dense(), in)
	return out.AtVec(0), out.AtVec(1), out.AtVec(2), out.AtVec(3)
}

// Apply transforms a point. Affine transforms leave w at 1.
func (t Transform) Apply(p Vec3) Vec3 {
	x, y, z, w := t.Apply4(p)
	if w != 0 && w != 1 {
		return Vec3{X: x / w, Y: y / w, Z: z / w}
	}
	return Vec3{X: x, Y: y, Z: z}
}

// Origin returns where the local origin lands.
func (t Transform) Origin() Vec3 {
	return t.Apply(Vec3{})
}

// LookAt returns a view matrix placing eye at the origin looking down -Z,
// with up projected onto the view plane (gluLookAt semantics).
func LookAt(eye, target, up Vec3) Transform {
	f := target.Sub(eye).Normalized()
	s := f.Cross(up).Normalized()
	u := s.Cross(f)

	return FromRows([16]float64{
		s.X, s.Y, s.Z, -s.Dot(eye),
		u.X, u.Y, u.Z, -u.Dot(eye),
		-f.X, -f.Y, -f.Z, f.Dot(eye),
		0, 0, 0, 1,
	})
}

// Perspective returns a projection matrix for a vertical field of view in
// degrees (gluPerspective semantics). Points in front of the camera end up
// with w > 0 and, after the divide, depth in [-1, 1] between near and far.
func Perspective(fovyDeg, aspect, near, far float64) Transform {
	f := 1 / math.Tan(Radians(fovyDeg)/2)
	return FromRows([16]float64{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) / (near - far), 2 * far * near / (near - far),
		0, 0, -1, 0,
	})
}
