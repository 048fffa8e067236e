package sdf

import (
	"errors"
	"math"

	v3 "github.com/latticecad/latticecad/vec/v3"
)

// ErrNonCubic is returned by FacetShell3D when the supplied lattice
// vectors do not describe a cubic cell. facet_shell is only correct for
// cubic unit cells (spec §9 design note); rather than silently producing
// incorrect geometry for other lattices, this is a hard error.
var ErrNonCubic = errors.New("sdf: facet_shell requires a cubic unit cell")

type facetShellSDF struct {
	s         SDF3
	thickness float64
	bb        Box3
}

// FacetShell3D hollows out s into a shell of the given wall thickness
// lying just inside s's surface. a, b, c must describe a cubic cell (all
// equal length, mutually orthogonal); they are only validated and do
// not otherwise shape the result, so no facets are cut along the cube
// faces.
func FacetShell3D(s SDF3, a, b, c v3.Vec, thickness float64) (SDF3, error) {
	if !isCubic(a, b, c) {
		return nil, ErrNonCubic
	}
	if thickness <= 0 {
		return nil, ErrDegenerate
	}
	return &facetShellSDF{s: s, thickness: thickness, bb: s.BoundingBox()}, nil
}

func isCubic(a, b, c v3.Vec) bool {
	const tol = 1e-6
	la, lb, lc := a.Length(), b.Length(), c.Length()
	if math.Abs(la-lb) > tol || math.Abs(lb-lc) > tol {
		return false
	}
	orth := func(u, v v3.Vec) bool { return math.Abs(u.Normalize().Dot(v.Normalize())) < tol }
	return orth(a, b) && orth(b, c) && orth(a, c)
}

func (s *facetShellSDF) Evaluate(p v3.Vec) float64 {
	d := s.s.Evaluate(p)
	return math.Max(d, -(d + s.thickness))
}
func (s *facetShellSDF) BoundingBox() Box3 { return s.bb }
