package sdf

import (
	"math"

	v3 "github.com/latticecad/latticecad/vec/v3"
)

// SamplePointCloud3D walks a coarse grid over s's bounding box, keeps
// cells near the surface, and refines by gradient descent toward the
// zero contour. Used to build a quick preview point cloud without
// paying for a full marching-cubes mesh.
func SamplePointCloud3D(s SDF3, cells int) []v3.Vec {
	if cells < 1 {
		cells = 1
	}
	bb := s.BoundingBox()
	size := bb.Size()
	step := size.MaxComponent() / float64(cells)
	if step <= 0 {
		return nil
	}
	cellDiag := v3.Vec{X: step, Y: step, Z: step}.Length()

	nx := int(math.Ceil(size.X/step)) + 1
	ny := int(math.Ceil(size.Y/step)) + 1
	nz := int(math.Ceil(size.Z/step)) + 1

	var candidates []v3.Vec
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			for k := 0; k <= nz; k++ {
				p := bb.Min.Add(v3.Vec{X: float64(i) * step, Y: float64(j) * step, Z: float64(k) * step})
				candidates = append(candidates, p)
			}
		}
	}

	values := EvaluateBatch(s, candidates)
	points := make([]v3.Vec, 0, len(candidates)/4)
	for i, p := range candidates {
		if math.Abs(values[i]) < cellDiag {
			points = append(points, refineToSurface3D(s, p, cellDiag))
		}
	}
	return points
}

// refineToSurface3D nudges p toward s's zero contour by gradient
// descent on the signed distance, using a central-difference gradient.
func refineToSurface3D(s SDF3, p v3.Vec, h float64) v3.Vec {
	for i := 0; i < 8; i++ {
		d := s.Evaluate(p)
		if math.Abs(d) < 1e-4 {
			break
		}
		g := gradient3(s, p, h*0.01)
		gl := g.Length()
		if gl == 0 {
			break
		}
		p = p.Sub(g.DivScalar(gl).MulScalar(d))
	}
	return p
}

func gradient3(s SDF3, p v3.Vec, h float64) v3.Vec {
	dx := s.Evaluate(p.Add(v3.Vec{X: h})) - s.Evaluate(p.Sub(v3.Vec{X: h}))
	dy := s.Evaluate(p.Add(v3.Vec{Y: h})) - s.Evaluate(p.Sub(v3.Vec{Y: h}))
	dz := s.Evaluate(p.Add(v3.Vec{Z: h})) - s.Evaluate(p.Sub(v3.Vec{Z: h}))
	return v3.Vec{X: dx, Y: dy, Z: dz}.DivScalar(2 * h)
}

//-----------------------------------------------------------------------------
// ray tracing for interactive picking

const (
	rayMaxSteps         = 100
	rayMaxDistance      = 5000.0
	raySurfaceThreshold = 0.01
)

// RayHit is the result of a successful ray march.
type RayHit struct {
	Point    v3.Vec
	Distance float64
	Steps    int
}

// RayMarch sphere-marches from origin along (unit) direction, stepping
// by max(|distance|, epsilon) each iteration, and reports the first
// point within raySurfaceThreshold of the surface.
func RayMarch(s SDF3, origin, direction v3.Vec, epsilon float64) (*RayHit, bool) {
	if epsilon <= 0 {
		epsilon = 1e-4
	}
	dir := direction.Normalize()
	traveled := 0.0
	p := origin
	for step := 0; step < rayMaxSteps; step++ {
		d := s.Evaluate(p)
		if math.Abs(d) < raySurfaceThreshold {
			return &RayHit{Point: p, Distance: traveled, Steps: step}, true
		}
		advance := math.Max(math.Abs(d), epsilon)
		traveled += advance
		if traveled > rayMaxDistance {
			return nil, false
		}
		p = p.Add(dir.MulScalar(advance))
	}
	return nil, false
}
