package sdf

import (
	"math"

	v3 "github.com/latticecad/latticecad/vec/v3"
)

//-----------------------------------------------------------------------------
// union

type unionSDF3 struct {
	set []SDF3
	bb  Box3
}

// Union3D returns the union (min) of one or more SDF3 values.
func Union3D(set ...SDF3) SDF3 {
	if len(set) == 0 {
		return emptySDF3{}
	}
	if len(set) == 1 {
		return set[0]
	}
	bb := set[0].BoundingBox()
	for _, s := range set[1:] {
		bb = bb.Union(s.BoundingBox())
	}
	return &unionSDF3{set: set, bb: bb}
}

func (s *unionSDF3) Evaluate(p v3.Vec) float64 {
	d := math.Inf(1)
	for _, x := range s.set {
		d = math.Min(d, x.Evaluate(p))
	}
	return d
}
func (s *unionSDF3) BoundingBox() Box3 { return s.bb }

//-----------------------------------------------------------------------------
// intersection

type intersectSDF3 struct {
	set []SDF3
	bb  Box3
}

// Intersect3D returns the intersection (max) of one or more SDF3 values.
func Intersect3D(set ...SDF3) SDF3 {
	if len(set) == 0 {
		return emptySDF3{}
	}
	if len(set) == 1 {
		return set[0]
	}
	bb := set[0].BoundingBox()
	for _, s := range set[1:] {
		bb = bb.Union(s.BoundingBox())
	}
	return &intersectSDF3{set: set, bb: bb}
}

func (s *intersectSDF3) Evaluate(p v3.Vec) float64 {
	d := math.Inf(-1)
	for _, x := range s.set {
		d = math.Max(d, x.Evaluate(p))
	}
	return d
}
func (s *intersectSDF3) BoundingBox() Box3 { return s.bb }

//-----------------------------------------------------------------------------
// difference

type differenceSDF3 struct {
	base SDF3
	sub  SDF3
	bb   Box3
}

// Difference3D returns base minus sub: max(base, -sub). Per the base
// and sub arrays are implicitly unioned before subtracting, matching
// the difference node's pin semantics (spec §4.A). An empty base is
// treated as identity — no subtraction is applied — rather than the
// SDF-of-empty-set convention of +inf, which would otherwise make any
// difference against an empty base evaluate to "nothing everywhere".
func Difference3D(base, sub []SDF3) SDF3 {
	if len(base) == 0 {
		return Union3D(sub...)
	}
	b := Union3D(base...)
	if len(sub) == 0 {
		return b
	}
	s := Union3D(sub...)
	return &differenceSDF3{base: b, sub: s, bb: b.BoundingBox()}
}

func (s *differenceSDF3) Evaluate(p v3.Vec) float64 {
	return math.Max(s.base.Evaluate(p), -s.sub.Evaluate(p))
}
func (s *differenceSDF3) BoundingBox() Box3 { return s.bb }

//-----------------------------------------------------------------------------

type emptySDF3 struct{}

func (emptySDF3) Evaluate(p v3.Vec) float64 { return math.Inf(1) }
func (emptySDF3) BoundingBox() Box3 {
	return Box3{}
}
