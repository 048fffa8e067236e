package sdf

import (
	"math"

	v3 "github.com/latticecad/latticecad/vec/v3"
	"gonum.org/v1/gonum/mat"
)

// Affine3 is a 4x4 homogeneous affine transform, backed by gonum/mat so
// that composing several transforms (geo_trans chains, lattice_symop
// operations) is a single matrix multiply rather than hand-rolled
// 3x3 + translation bookkeeping.
type Affine3 struct {
	m *mat.Dense // 4x4
}

// Identity3 returns the identity affine transform.
func Identity3() Affine3 {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return Affine3{m: m}
}

// Translate3 returns a pure translation transform.
func Translate3(t v3.Vec) Affine3 {
	a := Identity3()
	a.m.Set(0, 3, t.X)
	a.m.Set(1, 3, t.Y)
	a.m.Set(2, 3, t.Z)
	return a
}

// RotateAxis3 returns a rotation of angle radians about unit axis.
func RotateAxis3(axis v3.Vec, angle float64) Affine3 {
	a := axis.Normalize()
	s, c := sinCos(angle)
	t := 1 - c
	m := mat.NewDense(4, 4, []float64{
		t*a.X*a.X + c, t*a.X*a.Y - s*a.Z, t*a.X*a.Z + s*a.Y, 0,
		t*a.X*a.Y + s*a.Z, t*a.Y*a.Y + c, t*a.Y*a.Z - s*a.X, 0,
		t*a.X*a.Z - s*a.Y, t*a.Y*a.Z + s*a.X, t*a.Z*a.Z + c, 0,
		0, 0, 0, 1,
	})
	return Affine3{m: m}
}

// Scale3 returns a non-uniform scale transform.
func Scale3(s v3.Vec) Affine3 {
	a := Identity3()
	a.m.Set(0, 0, s.X)
	a.m.Set(1, 1, s.Y)
	a.m.Set(2, 2, s.Z)
	return a
}

// Mul composes a and b: applying the result to a point is equivalent to
// applying b first, then a.
func (a Affine3) Mul(b Affine3) Affine3 {
	var out mat.Dense
	out.Mul(a.m, b.m)
	return Affine3{m: &out}
}

// Apply transforms point p.
func (a Affine3) Apply(p v3.Vec) v3.Vec {
	v := mat.NewVecDense(4, []float64{p.X, p.Y, p.Z, 1})
	var out mat.VecDense
	out.MulVec(a.m, v)
	return v3.Vec{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}
}

// Inverse returns the inverse transform. It panics if the transform is
// singular, which should never happen for a transform built from the
// constructors above.
func (a Affine3) Inverse() Affine3 {
	var inv mat.Dense
	if err := inv.Inverse(a.m); err != nil {
		// A composition of translations/rotations/non-zero scales is
		// always invertible; a singular matrix here means the caller
		// built an Affine3 with a zero scale factor.
		panic("sdf: non-invertible transform: " + err.Error())
	}
	return Affine3{m: &inv}
}

func sinCos(a float64) (s, c float64) {
	return math.Sin(a), math.Cos(a)
}

//-----------------------------------------------------------------------------
// transform3SDF applies a continuous affine transform to an SDF3
// (geo_trans node). Distance is preserved only under rigid (rotation +
// translation) transforms; the inverse is applied to the query point
// and, for pure rotation/translation, distance is unaffected. Uniform
// scale factors are divided back out so distance stays a true metric.

type transform3SDF struct {
	sdf   SDF3
	inv   Affine3
	scale float64
	bb    Box3
}

// GeoTransform3D applies a continuous affine transform (translate,
// rotate, and/or uniform scale) to s.
func GeoTransform3D(s SDF3, t Affine3) SDF3 {
	inv := t.Inverse()
	scale := math.Cbrt(math.Abs(determinant3(t)))
	bb := s.BoundingBox()
	verts := bb.Vertices()
	nb := Box3{Min: t.Apply(verts[0]), Max: t.Apply(verts[0])}
	for _, v := range verts[1:] {
		nb = nb.Extend(t.Apply(v))
	}
	return &transform3SDF{sdf: s, inv: inv, scale: scale, bb: nb}
}

func (s *transform3SDF) Evaluate(p v3.Vec) float64 {
	return s.sdf.Evaluate(s.inv.Apply(p)) * s.scale
}
func (s *transform3SDF) BoundingBox() Box3 { return s.bb }

func determinant3(a Affine3) float64 {
	return mat.Det(a.m.Slice(0, 3, 0, 3))
}

//-----------------------------------------------------------------------------
// LatticeTransform restricts translation to integer multiples of lattice
// vectors and rotation to a lattice symmetry operation, so that the
// result stays exactly lattice-aligned (no floating point drift from
// composing arbitrary affine transforms).

// LatticeMove3D translates s by n whole lattice steps along a, b, c.
func LatticeMove3D(s SDF3, a, b, c v3.Vec, n v3.Vec) SDF3 {
	t := a.MulScalar(n.X).Add(b.MulScalar(n.Y)).Add(c.MulScalar(n.Z))
	return GeoTransform3D(s, Translate3(t))
}

// LatticeRot3D rotates s by angle (a multiple of a lattice symmetry
// angle, e.g. pi/2 for cubic) about axis.
func LatticeRot3D(s SDF3, axis v3.Vec, angle float64) SDF3 {
	return GeoTransform3D(s, RotateAxis3(axis, angle))
}

// LatticeSymop3D applies an arbitrary lattice symmetry operation
// (rotation composed with translation by a lattice vector).
func LatticeSymop3D(s SDF3, rot Affine3, translation v3.Vec) SDF3 {
	return GeoTransform3D(s, Translate3(translation).Mul(rot))
}
