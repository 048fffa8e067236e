package sdf

import v2 "github.com/latticecad/latticecad/vec/v2"

// Affine2 is a 2D rigid/uniform-scale transform (rotate, translate,
// scale), used by the 2D geo_trans node.
type Affine2 struct {
	angle float64
	scale float64
	t     v2.Vec
}

// Translate2D returns a pure translation transform.
func Translate2D(t v2.Vec) Affine2 { return Affine2{scale: 1, t: t} }

// Rotate2D returns a pure rotation transform about the origin.
func Rotate2D(angle float64) Affine2 { return Affine2{angle: angle, scale: 1} }

// ScaleUniform2D returns a pure uniform scale transform.
func ScaleUniform2D(k float64) Affine2 { return Affine2{scale: k} }

// Apply transforms point p: scale, then rotate, then translate.
func (a Affine2) Apply(p v2.Vec) v2.Vec {
	return p.MulScalar(a.scale).Rotate(a.angle).Add(a.t)
}

// inverseApply applies the inverse transform to p.
func (a Affine2) inverseApply(p v2.Vec) v2.Vec {
	q := p.Sub(a.t).Rotate(-a.angle)
	if a.scale != 0 {
		q = q.DivScalar(a.scale)
	}
	return q
}

type transform2SDF struct {
	sdf   SDF2
	inv   Affine2
	scale float64
	bb    Box2
}

// GeoTransform2D applies a continuous rigid/scale transform to s.
func GeoTransform2D(s SDF2, t Affine2) SDF2 {
	scale := t.scale
	if scale == 0 {
		scale = 1
	}
	bb := s.BoundingBox()
	corners := []v2.Vec{bb.Min, {X: bb.Max.X, Y: bb.Min.Y}, bb.Max, {X: bb.Min.X, Y: bb.Max.Y}}
	nb := Box2{Min: t.Apply(corners[0]), Max: t.Apply(corners[0])}
	for _, c := range corners[1:] {
		p := t.Apply(c)
		nb.Min = nb.Min.Min(p)
		nb.Max = nb.Max.Max(p)
	}
	return &transform2SDF{sdf: s, inv: t, scale: scale, bb: nb}
}

func (s *transform2SDF) Evaluate(p v2.Vec) float64 {
	return s.sdf.Evaluate(s.inv.inverseApply(p)) * s.scale
}
func (s *transform2SDF) BoundingBox() Box2 { return s.bb }

// LatticeMove2D translates a 2D sketch by n whole lattice steps along a, b.
func LatticeMove2D(s SDF2, a, b v2.Vec, n v2.Vec) SDF2 {
	t := a.MulScalar(n.X).Add(b.MulScalar(n.Y))
	return GeoTransform2D(s, Translate2D(t))
}
