// Package sdf implements the geometry kernel: signed-distance-field
// primitives, boolean combinators, affine and lattice-restricted
// transforms, and surface/ray sampling over SDF2 (2D) and SDF3 (3D)
// values.
//
// An SDF is a function from a point to the signed distance to the
// nearest surface: negative inside the solid, positive outside, zero on
// the boundary. Evaluation is pure and side-effect free; SDF values may
// be combined and transformed freely to build up a design.
package sdf

import (
	"errors"
	"math"

	v2 "github.com/latticecad/latticecad/vec/v2"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

// VolumeLimit is the half-extent (in Å) of the cube within which SDF
// evaluation is defined. Points outside [-VolumeLimit, VolumeLimit] on
// any axis are undefined for evaluator purposes.
const VolumeLimit = 800.0

// ErrDegenerate is returned when a primitive's parameters can't
// describe a solid (zero radius, zero extent on some axis, etc).
var ErrDegenerate = errors.New("sdf: degenerate parameters")

// SDF3 is a 3D signed distance field: a distance function plus its
// axis-aligned bounding box.
type SDF3 interface {
	Evaluate(p v3.Vec) float64
	BoundingBox() Box3
}

// SDF2 is a 2D signed distance field: a distance function plus its
// axis-aligned bounding box.
type SDF2 interface {
	Evaluate(p v2.Vec) float64
	BoundingBox() Box2
}

// EvaluateBatch evaluates s at every point in p, using goroutines when
// the batch is large enough to be worth the dispatch overhead.
// SamplePointCloud3D uses it to evaluate its grid of candidate points.
func EvaluateBatch(s SDF3, p []v3.Vec) []float64 {
	out := make([]float64, len(p))
	const minParallel = 256
	if len(p) < minParallel {
		for i, q := range p {
			out[i] = s.Evaluate(q)
		}
		return out
	}
	workers := numWorkers()
	chunk := (len(p) + workers - 1) / workers
	done := make(chan struct{}, workers)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if lo >= len(p) {
			done <- struct{}{}
			continue
		}
		if hi > len(p) {
			hi = len(p)
		}
		go func(lo, hi int) {
			for i := lo; i < hi; i++ {
				out[i] = s.Evaluate(p[i])
			}
			done <- struct{}{}
		}(lo, hi)
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	return out
}

func clampVolume(p v3.Vec) v3.Vec {
	c := func(x float64) float64 {
		if x > VolumeLimit {
			return VolumeLimit
		}
		if x < -VolumeLimit {
			return -VolumeLimit
		}
		return x
	}
	return v3.Vec{X: c(p.X), Y: c(p.Y), Z: c(p.Z)}
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
