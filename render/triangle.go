// Package render materializes visible scene nodes (SDF point clouds,
// triangle meshes, 2D contours) into the boundary formats consumed by
// external tooling (a GPU renderer, a slicer, a CAD interchange format).
// Nothing in this package is part of the evaluator's core data model —
// it only ever reads a finished sdf.SDF3/SDF2 value.
package render

import v3 "github.com/latticecad/latticecad/vec/v3"

// epsilon is the tolerance used when classifying marching-cubes corner
// values as "on the surface" during edge interpolation.
const epsilon = 1e-9

// Triangle3 is a single triangle in a 3D mesh, CCW wound.
type Triangle3 struct {
	V [3]v3.Vec
}

// Degenerate reports whether the triangle has near-zero area: the
// squared length of its edge cross product (twice its area) is at most
// tol*tol.
func (t *Triangle3) Degenerate(tol float64) bool {
	e0 := t.V[1].Sub(t.V[0])
	e1 := t.V[2].Sub(t.V[0])
	n := e0.Cross(e1)
	return n.Length2() <= tol*tol
}

// Normal returns the (non-normalized) face normal of the triangle.
func (t *Triangle3) Normal() v3.Vec {
	return t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0]))
}
