package sdf

import (
	"math"

	v2 "github.com/latticecad/latticecad/vec/v2"
)

//-----------------------------------------------------------------------------
// union

type unionSDF2 struct {
	set []SDF2
	bb  Box2
}

// Union2D returns the union (min) of one or more SDF2 values.
func Union2D(set ...SDF2) SDF2 {
	if len(set) == 0 {
		return emptySDF2{}
	}
	if len(set) == 1 {
		return set[0]
	}
	bb := set[0].BoundingBox()
	for _, s := range set[1:] {
		bb = bb.Union(s.BoundingBox())
	}
	return &unionSDF2{set: set, bb: bb}
}

func (s *unionSDF2) Evaluate(p v2.Vec) float64 {
	d := math.Inf(1)
	for _, x := range s.set {
		d = math.Min(d, x.Evaluate(p))
	}
	return d
}
func (s *unionSDF2) BoundingBox() Box2 { return s.bb }

//-----------------------------------------------------------------------------
// intersection

type intersectSDF2 struct {
	set []SDF2
	bb  Box2
}

// Intersect2D returns the intersection (max) of one or more SDF2 values.
func Intersect2D(set ...SDF2) SDF2 {
	if len(set) == 0 {
		return emptySDF2{}
	}
	if len(set) == 1 {
		return set[0]
	}
	bb := set[0].BoundingBox()
	for _, s := range set[1:] {
		bb = bb.Union(s.BoundingBox())
	}
	return &intersectSDF2{set: set, bb: bb}
}

func (s *intersectSDF2) Evaluate(p v2.Vec) float64 {
	d := math.Inf(-1)
	for _, x := range s.set {
		d = math.Max(d, x.Evaluate(p))
	}
	return d
}
func (s *intersectSDF2) BoundingBox() Box2 { return s.bb }

//-----------------------------------------------------------------------------
// difference

type differenceSDF2 struct {
	base SDF2
	sub  SDF2
	bb   Box2
}

// Difference2D returns base minus sub, with the same array-union and
// empty-base-is-identity rules as Difference3D.
func Difference2D(base, sub []SDF2) SDF2 {
	if len(base) == 0 {
		return Union2D(sub...)
	}
	b := Union2D(base...)
	if len(sub) == 0 {
		return b
	}
	s := Union2D(sub...)
	return &differenceSDF2{base: b, sub: s, bb: b.BoundingBox()}
}

func (s *differenceSDF2) Evaluate(p v2.Vec) float64 {
	return math.Max(s.base.Evaluate(p), -s.sub.Evaluate(p))
}
func (s *differenceSDF2) BoundingBox() Box2 { return s.bb }

//-----------------------------------------------------------------------------

type emptySDF2 struct{}

func (emptySDF2) Evaluate(p v2.Vec) float64 { return math.Inf(1) }
func (emptySDF2) BoundingBox() Box2         { return Box2{} }
